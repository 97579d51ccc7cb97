package banded

import (
	"github.com/andrew-torda/pairalign/pkg/band"
	"github.com/andrew-torda/pairalign/pkg/phmm"
)

// Checkpoint is what tests see of the driver after each traceback.
type Checkpoint struct {
	Xay              int
	AtEnd            bool
	FActive, BActive int
	NPair            int
	Phase            string
}

// AlignedPairsCheckpoints is AlignedPairs, but also returns the state
// of the matrices after each checkpoint.
func AlignedPairsCheckpoints(anchors []band.Anchor, sX, sY []phmm.Symbol, p *Params) ([]AlignedPair, []Checkpoint, error) {
	var cps []Checkpoint
	hook := func(c checkpoint) {
		cps = append(cps, Checkpoint{Xay: c.xay, AtEnd: c.atEnd, FActive: c.fActive,
			BActive: c.bActive, NPair: c.nPair, Phase: c.lastSeen.String()})
	}
	pairs, err := alignedPairs(anchors, sX, sY, p, hook)
	return pairs, cps, err
}
