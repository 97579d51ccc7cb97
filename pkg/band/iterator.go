// 2 Mar 2024

package band

import (
	"fmt"
)

// Anchor is a trusted match between position X of the first sequence
// and Y of the second. Positions count from zero.
type Anchor struct {
	X, Y int
}

// CheckAnchors makes sure anchors are inside the sequences and strictly
// increasing in both coordinates. The band depends on this.
func CheckAnchors(anchors []Anchor, lX, lY int) error {
	const msg = "%w: anchor %d (%d, %d) with sequence lengths %d, %d"
	const order = "%w: anchor %d (%d, %d) does not follow (%d, %d)"
	for i, a := range anchors {
		if a.X < 0 || a.Y < 0 || a.X >= lX || a.Y >= lY {
			return fmt.Errorf(msg, ErrInvalidConfiguration, i, a.X, a.Y, lX, lY)
		}
		if i > 0 {
			p := anchors[i-1]
			if a.X <= p.X || a.Y <= p.Y {
				return fmt.Errorf(order, ErrInvalidConfiguration, i, a.X, a.Y, p.X, p.Y)
			}
		}
	}
	return nil
}

// Iterator walks along anti-diagonals of an (lX+1) x (lY+1) matrix.
// For each anti-diagonal it gives the band of offsets, worked out from
// the anchors either side of the current position, widened by expansion.
// It can go forwards and backwards.
type Iterator struct {
	anchors   []Anchor
	lX, lY    int
	expansion int
	xay       int
	nxt       int // index of the anchor in front of us, -1 before we start
}

// NewIterator returns an iterator sitting on anti-diagonal zero.
// expansion has to be even, otherwise band edges land between cells.
func NewIterator(anchors []Anchor, lX, lY, expansion int) (*Iterator, error) {
	if expansion%2 != 0 || expansion < 0 {
		return nil, fmt.Errorf("%w: expansion must be even and not negative, got %d",
			ErrInvalidConfiguration, expansion)
	}
	if err := CheckAnchors(anchors, lX, lY); err != nil {
		return nil, err
	}
	return &Iterator{anchors: anchors, lX: lX, lY: lY, expansion: expansion, nxt: -1}, nil
}

// Clone gives an independent iterator at the same place. The anchors
// are shared, but they are never written to.
func (it *Iterator) Clone() *Iterator {
	c := *it
	return &c
}

// Xay is the anti-diagonal we are sitting on.
func (it *Iterator) Xay() int { return it.xay }

// Last is the final anti-diagonal, lX + lY.
func (it *Iterator) Last() int { return it.lX + it.lY }

// matrixPoint returns anchor i in matrix coordinates. Matrix coordinates
// are one more than sequence coordinates. Before the first anchor is
// the origin and after the last one is the far corner.
func (it *Iterator) matrixPoint(i int) (x, y int) {
	switch {
	case i < 0:
		return 0, 0
	case i >= len(it.anchors):
		return it.lX, it.lY
	}
	a := it.anchors[i]
	return a.X + 1, a.Y + 1
}

func (it *Iterator) prevXay() int {
	x, y := it.matrixPoint(it.nxt - 1)
	return x + y
}

func (it *Iterator) nextXay() int {
	x, y := it.matrixPoint(it.nxt)
	return x + y
}

// Next moves forward one anti-diagonal. It returns false if we are
// already at the end.
func (it *Iterator) Next() bool {
	if it.xay >= it.lX+it.lY {
		return false
	}
	if it.xay == it.nextXay() { // leaving an anchor, so it becomes the
		it.nxt++ //                 one behind us
	}
	it.xay++
	return true
}

// Previous moves back one anti-diagonal. It undoes exactly what Next
// did, so the anchor index is stepped back when we land on the
// anchor's anti-diagonal.
func (it *Iterator) Previous() bool {
	if it.xay <= 0 {
		return false
	}
	it.xay--
	if it.nxt >= 0 && it.xay == it.prevXay() {
		it.nxt--
	}
	return true
}

// clampCoord keeps z inside [0, lZ].
func clampCoord(z, lZ int) int {
	if z < 0 {
		return 0
	}
	if z > lZ {
		return lZ
	}
	return z
}

// avoidOffByOne moves xmy up by one if (xay, xmy) is not a real cell.
func avoidOffByOne(xay, xmy int) int {
	if (xay+xmy)%2 == 0 {
		return xmy
	}
	return xmy + 1
}

// nudge moves *xmy by two per unit that i falls short of j. k is the
// direction.
func nudge(xmy *int, i, j, k int) {
	if i < j {
		*xmy += 2 * (j - i) * k
	}
}

// Diagonal returns the band on the current anti-diagonal.
// The box is bounded by the anchors behind (p) and in front (n), widened
// by half the expansion in x and y and cut at the matrix edge.
//   xLo from p, yHi from n:  the low xmy corner
//   xHi from n, yLo from p:  the high xmy corner
// The corners are then moved on to real cells and pulled back
// inside the box.
func (it *Iterator) Diagonal() Diagonal {
	half := it.expansion / 2
	px, py := it.matrixPoint(it.nxt - 1)
	nx, ny := it.matrixPoint(it.nxt)
	xLo := clampCoord(px-half, it.lX)
	yHi := clampCoord(ny+half, it.lY)
	xHi := clampCoord(nx+half, it.lX)
	yLo := clampCoord(py-half, it.lY)

	xay := it.xay
	xmyMin := avoidOffByOne(xay, xLo-yHi)
	xmyMax := avoidOffByOne(xay, xHi-yLo)

	nudge(&xmyMin, XCoord(xay, xmyMin), xLo, 1)
	nudge(&xmyMin, yHi, YCoord(xay, xmyMin), 1)
	nudge(&xmyMax, xHi, XCoord(xay, xmyMax), -1)
	nudge(&xmyMax, YCoord(xay, xmyMax), yLo, -1)

	return Diagonal{xay: xay, xmyMin: xmyMin, xmyMax: xmyMax}
}
