// 2 Mar 2024

// Package band has the geometry for banded dynamic programming.
// A cell of the matrix is at (x, y). We do not store it like that.
// We work along anti-diagonals, xay = x + y, and the position along an
// anti-diagonal is xmy = x - y. Neighbours of a cell are then simple
// offsets on xay and xmy, so a band can be kept as a few diagonals rather
// than as a full matrix.
package band

import (
	"errors"
	"fmt"
)

// Error kinds. Callers check them with errors.Is.
var (
	ErrInvalidDiagonal      = errors.New("invalid diagonal")
	ErrInvalidConfiguration = errors.New("invalid configuration")
)

// Diagonal is one anti-diagonal and the range of offsets on it
// we care about. It is a value. We never change one, we just make
// a new one.
type Diagonal struct {
	xay    int // x + y
	xmyMin int // smallest x - y
	xmyMax int // largest x - y
}

// NewDiagonal checks that the coordinates can be turned into integer x, y
// and returns the diagonal.
func NewDiagonal(xay, xmyMin, xmyMax int) (Diagonal, error) {
	const msg = "%w: xay %d xmyMin %d xmyMax %d"
	if xay < 0 || (xay+xmyMin)%2 != 0 || (xay+xmyMax)%2 != 0 || xmyMin > xmyMax {
		return Diagonal{}, fmt.Errorf(msg, ErrInvalidDiagonal, xay, xmyMin, xmyMax)
	}
	return Diagonal{xay: xay, xmyMin: xmyMin, xmyMax: xmyMax}, nil
}

// Xay is the anti-diagonal index
func (d Diagonal) Xay() int { return d.xay }

// MinXmy is the lowest offset in the band
func (d Diagonal) MinXmy() int { return d.xmyMin }

// MaxXmy is the highest offset in the band
func (d Diagonal) MaxXmy() int { return d.xmyMax }

// Width is measured in xmy units, so it counts the in-between
// positions as well.
func (d Diagonal) Width() int { return d.xmyMax - d.xmyMin + 1 }

// NCell is the number of real cells on the diagonal. Only every second
// xmy value is a cell.
func (d Diagonal) NCell() int { return (d.xmyMax-d.xmyMin)/2 + 1 }

// Contains says if xmy is a cell of the diagonal.
func (d Diagonal) Contains(xmy int) bool {
	return xmy >= d.xmyMin && xmy <= d.xmyMax && (d.xay+xmy)%2 == 0
}

// String is for debugging and error messages.
func (d Diagonal) String() string {
	return fmt.Sprintf("Diagonal, xay: %d xmyMin: %d xmyMax: %d", d.xay, d.xmyMin, d.xmyMax)
}

// XCoord converts (xay, xmy) to x.
func XCoord(xay, xmy int) int { return (xay + xmy) / 2 }

// YCoord converts (xay, xmy) to y.
func YCoord(xay, xmy int) int { return (xay - xmy) / 2 }
