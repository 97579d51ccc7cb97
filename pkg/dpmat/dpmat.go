// 4 Mar 2024

// Package dpmat stores the dynamic programming matrix one anti-diagonal
// at a time. Each diagonal has NState floats for every offset across its
// band. Diagonals are created and deleted as the band moves along, so
// only a few are alive at once.
// Like a two dimensional matrix, we allocate one backing slice and then
// point the rows into it.
package dpmat

import (
	"fmt"

	"github.com/andrew-torda/pairalign/pkg/band"
	"github.com/andrew-torda/pairalign/pkg/phmm"
)

const nState = int(phmm.NState)

// Diagonal holds the cells of one anti-diagonal. Cells live at every
// xmy of the band, including the in-between positions which are not real
// cells. This costs a factor of two in space and makes the index
// arithmetic trivial.
type Diagonal struct {
	band     band.Diagonal
	cells    [][]float64
	fullData []float64
}

// fixSlices points each cell into the backing store.
func (d *Diagonal) fixSlices(n int) {
	tmp := d.fullData
	d.cells = make([][]float64, n)
	for i := range d.cells {
		d.cells[i] = tmp[:nState:nState]
		tmp = tmp[nState:]
	}
}

// NewDiagonal allocates space for the band. The values are all zero,
// which is not log zero. Call Fill or Init.
func NewDiagonal(b band.Diagonal) *Diagonal {
	d := &Diagonal{band: b}
	d.fullData = make([]float64, b.Width()*nState)
	d.fixSlices(b.Width())
	return d
}

// Band gives the geometry.
func (d *Diagonal) Band() band.Diagonal { return d.band }

// Cell returns the NState values at xmy. Outside the band, or at an
// offset which is not a cell, it returns nil. Callers use nil to
// recognise the edge.
func (d *Diagonal) Cell(xmy int) []float64 {
	if d == nil || !d.band.Contains(xmy) {
		return nil
	}
	return d.cells[xmy-d.band.MinXmy()]
}

// Fill sets every value.
func (d *Diagonal) Fill(v float64) {
	for i := range d.fullData {
		d.fullData[i] = v
	}
}

// Init sets each real cell from f.
func (d *Diagonal) Init(f func(phmm.State) float64) {
	for xmy := d.band.MinXmy(); xmy <= d.band.MaxXmy(); xmy += 2 {
		c := d.Cell(xmy)
		for s := range c {
			c[s] = f(phmm.State(s))
		}
	}
}

// Clone gives an independent copy.
func (d *Diagonal) Clone() *Diagonal {
	c := NewDiagonal(d.band)
	copy(c.fullData, d.fullData)
	return c
}

// String is for debugging. Values are rounded and clipped like the old
// float matrix printer.
func (d *Diagonal) String() (s string) {
	s = d.band.String() + "\n"
	for xmy := d.band.MinXmy(); xmy <= d.band.MaxXmy(); xmy += 2 {
		s += fmt.Sprintf("%4d", xmy)
		for _, v := range d.Cell(xmy) {
			if v < -50 {
				v = -50
			}
			s += fmt.Sprintf(" %7.3f", v)
		}
		s += "\n"
	}
	return s
}

// Matrix is a sparse set of diagonals, indexed by xay from 0 to lX+lY.
type Matrix struct {
	diags  []*Diagonal
	active int
}

// NewMatrix has room for every anti-diagonal of an lX by lY problem,
// but none is allocated.
func NewMatrix(lX, lY int) *Matrix {
	return &Matrix{diags: make([]*Diagonal, lX+lY+1)}
}

// Get returns the diagonal at xay or nil if it is not there.
func (m *Matrix) Get(xay int) *Diagonal {
	if xay < 0 || xay >= len(m.diags) {
		return nil
	}
	return m.diags[xay]
}

// Create allocates a diagonal for the band, filled with LogZero.
// Creating one that already exists is a bug in the caller.
func (m *Matrix) Create(b band.Diagonal) *Diagonal {
	xay := b.Xay()
	if xay < 0 || xay >= len(m.diags) {
		panic(fmt.Sprintf("dpmat Create xay %d out of range %d, silly programming bug", xay, len(m.diags)))
	}
	if m.diags[xay] != nil {
		panic(fmt.Sprintf("dpmat Create diagonal %d already exists, silly programming bug", xay))
	}
	d := NewDiagonal(b)
	d.Fill(phmm.LogZero)
	m.diags[xay] = d
	m.active++
	return d
}

// Delete frees the diagonal at xay.
func (m *Matrix) Delete(xay int) {
	if m.Get(xay) == nil {
		panic(fmt.Sprintf("dpmat Delete diagonal %d not there, silly programming bug", xay))
	}
	m.diags[xay] = nil
	m.active--
}

// Active is the number of diagonals alive.
func (m *Matrix) Active() int { return m.active }

// Len is the number of slots, lX + lY + 1.
func (m *Matrix) Len() int { return len(m.diags) }

// Close checks nothing has been left behind. It is an error, not a
// panic, so a caller can report it.
func (m *Matrix) Close() error {
	if m.active != 0 {
		return fmt.Errorf("dpmat: %d diagonals still active at close", m.active)
	}
	return nil
}
