// 5 Mar 2024

package banded

import (
	"fmt"

	"github.com/andrew-torda/pairalign/pkg/band"
)

// ErrInvalidConfiguration is the same error as in band, so callers only
// need one.
var ErrInvalidConfiguration = band.ErrInvalidConfiguration

// Params control the banded aligner and the layers around it.
type Params struct {
	Threshold                      float64 // report pairs at least this probable
	MinDiagsBetweenTraceback       int     // forward diagonals between checkpoints
	TracebackDiagonals             int     // diagonals held back at a checkpoint
	DiagonalExpansion              int     // band widening around anchors, even
	ConstraintDiagonalTrim         int     // trimmed off each end of an anchor run
	AnchorMatrixBiggerThanThis     int64   // look for anchors above this lX*lY
	RepeatMaskMatrixBiggerThanThis int64   // reseed unmasked gaps above this area
	SplitMatrixBiggerThanThis      int64   // split at gaps above this area
}

// DefaultParams are the values we normally use.
func DefaultParams() *Params {
	return &Params{
		Threshold:                      0.01,
		MinDiagsBetweenTraceback:       1000,
		TracebackDiagonals:             20,
		DiagonalExpansion:              10,
		ConstraintDiagonalTrim:         5,
		AnchorMatrixBiggerThanThis:     500 * 500,
		RepeatMaskMatrixBiggerThanThis: 500 * 500,
		SplitMatrixBiggerThanThis:      3000 * 3000,
	}
}

// Validate checks the relations between parameters.
func (p *Params) Validate() error {
	bad := func(format string, a ...any) error {
		return fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfiguration}, a...)...)
	}
	switch {
	case p.Threshold < 0 || p.Threshold > 1:
		return bad("threshold %g not in [0,1]", p.Threshold)
	case p.MinDiagsBetweenTraceback < 1:
		return bad("minDiagsBetweenTraceback %d < 1", p.MinDiagsBetweenTraceback)
	case p.TracebackDiagonals < 2:
		return bad("tracebackDiagonals %d < 2", p.TracebackDiagonals)
	case p.TracebackDiagonals >= p.MinDiagsBetweenTraceback:
		return bad("tracebackDiagonals %d must be less than minDiagsBetweenTraceback %d",
			p.TracebackDiagonals, p.MinDiagsBetweenTraceback)
	case p.DiagonalExpansion < 0 || p.DiagonalExpansion%2 != 0:
		return bad("diagonalExpansion %d must be even and not negative", p.DiagonalExpansion)
	case p.ConstraintDiagonalTrim < 0:
		return bad("constraintDiagonalTrim %d < 0", p.ConstraintDiagonalTrim)
	case p.AnchorMatrixBiggerThanThis < 0 || p.RepeatMaskMatrixBiggerThanThis < 0 || p.SplitMatrixBiggerThanThis < 0:
		return bad("matrix size thresholds must not be negative")
	}
	return nil
}
