// 5 Mar 2024

// Package banded runs forward-backward over a band of the pair HMM
// matrix and returns the likely aligned pairs.
// We sweep forward one anti-diagonal at a time. Every so often, where
// the band is narrow, we stop and run backward to the previous
// checkpoint, report posterior probabilities and throw away diagonals
// we no longer need. The last few diagonals before the checkpoint are
// kept and reported next time round, since their backward values are
// not yet reliable. At the very end everything is reported.
package banded

import (
	"fmt"
	"math"
	"sort"

	"github.com/andrew-torda/pairalign/pkg/band"
	"github.com/andrew-torda/pairalign/pkg/dpmat"
	"github.com/andrew-torda/pairalign/pkg/phmm"
)

// ProbScale converts a probability to the integer we report.
const ProbScale = 10000000

// AlignedPair says position X of the first sequence is aligned to Y of
// the second, with probability Prob / ProbScale.
type AlignedPair struct {
	Prob uint32
	X, Y int
}

// phase of the driver. Only used for the checkpoint callback and panics.
type phase uint8

const (
	forwardOnly phase = iota
	checkpointPending
	tracing
	done
)

var phaseNames = [...]string{"forwardOnly", "checkpointPending", "tracing", "done"}

func (p phase) String() string { return phaseNames[p] }

// checkpoint is what the driver reports after each traceback.
type checkpoint struct {
	xay      int // where the checkpoint was taken
	atEnd    bool
	fActive  int // forward diagonals still allocated
	bActive  int // backward diagonals still allocated
	nPair    int // pairs so far
	lastSeen phase
}

type driver struct {
	sX, sY   []phmm.Symbol
	p        *Params
	fwd      *dpmat.Matrix
	bwd      *dpmat.Matrix
	pairs    []AlignedPair
	tracedTo int // first diagonal not yet reported
	phase    phase
	hook     func(checkpoint)
}

// AlignedPairs returns the pairs whose posterior match probability is at
// least p.Threshold. Anchors are in sequence coordinates, strictly
// increasing in x and y. The result is sorted by X, then Y.
func AlignedPairs(anchors []band.Anchor, sX, sY []phmm.Symbol, p *Params) ([]AlignedPair, error) {
	return alignedPairs(anchors, sX, sY, p, nil)
}

func alignedPairs(anchors []band.Anchor, sX, sY []phmm.Symbol, p *Params, hook func(checkpoint)) ([]AlignedPair, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	lX, lY := len(sX), len(sY)
	it, err := band.NewIterator(anchors, lX, lY, p.DiagonalExpansion)
	if err != nil {
		return nil, err
	}
	if lX == 0 || lY == 0 {
		return nil, nil
	}
	d := &driver{
		sX: sX, sY: sY, p: p,
		fwd:  dpmat.NewMatrix(lX, lY),
		bwd:  dpmat.NewMatrix(lX, lY),
		hook: hook,
	}
	d.run(it)
	if err := d.fwd.Close(); err != nil {
		return nil, err
	}
	if err := d.bwd.Close(); err != nil {
		return nil, err
	}
	sort.Slice(d.pairs, func(i, j int) bool {
		if d.pairs[i].X != d.pairs[j].X {
			return d.pairs[i].X < d.pairs[j].X
		}
		return d.pairs[i].Y < d.pairs[j].Y
	})
	return d.pairs, nil
}

// symbols returns the characters at a matrix cell. Row and column zero
// have no character, so they get N.
func (d *driver) symbols(x, y int) (cx, cy phmm.Symbol) {
	cx, cy = phmm.N, phmm.N
	if x > 0 {
		cx = d.sX[x-1]
	}
	if y > 0 {
		cy = d.sY[y-1]
	}
	return
}

// cellPass runs the recursion over every cell of diagonal xay in m,
// with the neighbours taken from the two diagonals before it.
func (d *driver) cellPass(m *dpmat.Matrix, xay int, dir phmm.Direction) {
	cur := m.Get(xay)
	prev1, prev2 := m.Get(xay-1), m.Get(xay-2)
	b := cur.Band()
	for xmy := b.MinXmy(); xmy <= b.MaxXmy(); xmy += 2 {
		cx, cy := d.symbols(band.XCoord(xay, xmy), band.YCoord(xay, xmy))
		phmm.CalcCell(dir, cur.Cell(xmy), prev1.Cell(xmy-1), prev2.Cell(xmy), prev1.Cell(xmy+1), cx, cy)
	}
}

// totalProb is the log probability of everything that reaches the
// diagonal and stops there.
func totalProb(f *dpmat.Diagonal) float64 {
	b := f.Band()
	total := phmm.LogZero
	for xmy := b.MinXmy(); xmy <= b.MaxXmy(); xmy += 2 {
		c := f.Cell(xmy)
		for s := range c {
			total = phmm.LogAdd(total, c[s]+phmm.EndProb(phmm.State(s)))
		}
	}
	return total
}

// posteriors reports the pairs on diagonal xay.
func (d *driver) posteriors(xay int, total float64) {
	f, b := d.fwd.Get(xay), d.bwd.Get(xay)
	if f == nil {
		panic(fmt.Sprintf("no forward diagonal %d for posterior, silly programming bug", xay))
	}
	if total == phmm.LogZero {
		return
	}
	bd := f.Band()
	for xmy := bd.MinXmy(); xmy <= bd.MaxXmy(); xmy += 2 {
		x, y := band.XCoord(xay, xmy), band.YCoord(xay, xmy)
		if x == 0 || y == 0 {
			continue
		}
		fm := f.Cell(xmy)[phmm.Match]
		if fm == phmm.LogZero {
			continue
		}
		prob := math.Exp(fm + b.Cell(xmy)[phmm.Match] - total)
		if prob < d.p.Threshold {
			continue
		}
		prob = math.Min(prob, 1)
		d.pairs = append(d.pairs, AlignedPair{Prob: uint32(math.Floor(prob * ProbScale)), X: x - 1, Y: y - 1})
	}
}

// createBackward makes the backward diagonal with the same band as the
// forward one.
func (d *driver) createBackward(xay int) *dpmat.Diagonal {
	return d.bwd.Create(d.fwd.Get(xay).Band())
}

// traceback runs backward from the checkpoint at it down to d.tracedTo.
// Diagonals more than keep back from the checkpoint are reported and
// freed. Backward diagonals are always freed.
func (d *driver) traceback(it *band.Iterator, atEnd bool) {
	d.phase = tracing
	xay := it.Xay()
	total := totalProb(d.fwd.Get(xay))
	d.createBackward(xay).Init(phmm.EndProb)
	if xay-1 >= d.tracedTo {
		d.createBackward(xay - 1)
	}
	keep := d.p.TracebackDiagonals
	if atEnd {
		keep = 0
	}
	back := it.Clone()
	for {
		x2 := back.Xay()
		if want, got := back.Diagonal(), d.fwd.Get(x2).Band(); want != got {
			panic(fmt.Sprintf("band %v but forward has %v, silly programming bug", want, got))
		}
		if x2-2 >= d.tracedTo {
			d.createBackward(x2 - 2)
		}
		d.cellPass(d.bwd, x2, phmm.Backward)
		if atEnd || xay-x2 > keep {
			d.posteriors(x2, total)
			d.fwd.Delete(x2)
		}
		d.bwd.Delete(x2)
		if x2 <= d.tracedTo {
			break
		}
		back.Previous()
	}
}

// run is the main loop.
func (d *driver) run(it *band.Iterator) {
	d.phase = forwardOnly
	d.fwd.Create(it.Diagonal()).Init(phmm.StartProb)
	last, end := 0, it.Last()
	limit := 2*d.p.DiagonalExpansion + 1
	for it.Next() {
		xay := it.Xay()
		diag := it.Diagonal()
		d.fwd.Create(diag)
		d.cellPass(d.fwd, xay, phmm.Forward)

		atEnd := xay == end
		if !atEnd && (xay-last < d.p.MinDiagsBetweenTraceback || diag.Width() > limit) {
			continue
		}
		d.phase = checkpointPending
		d.traceback(it, atEnd)
		if n := d.bwd.Active(); n != 0 {
			panic(fmt.Sprintf("%d backward diagonals left after traceback, silly programming bug", n))
		}
		want := d.p.TracebackDiagonals + 1
		if atEnd {
			want = 0
		}
		if n := d.fwd.Active(); n != want {
			panic(fmt.Sprintf("%d forward diagonals after traceback at %d, wanted %d, silly programming bug", n, xay, want))
		}
		if atEnd {
			d.phase = done
		} else {
			d.phase = forwardOnly
			d.tracedTo = xay - d.p.TracebackDiagonals
			last = xay
		}
		if d.hook != nil {
			d.hook(checkpoint{xay: xay, atEnd: atEnd, fActive: d.fwd.Active(),
				bActive: d.bwd.Active(), nPair: len(d.pairs), lastSeen: d.phase})
		}
		if atEnd {
			break
		}
	}
}
