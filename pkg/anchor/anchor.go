// 10 Mar 2024

// Package anchor finds trusted matches between two sequences. The
// banded aligner uses them to decide where its band goes.
// Anchors can come from running lastz, or from an in-process search
// for unique k-mers.
package anchor

import (
	"bytes"
	"errors"
	"fmt"
	"sort"

	"github.com/andrew-torda/pairalign/pkg/band"
	"github.com/andrew-torda/pairalign/pkg/banded"
)

// ErrSubprocess is returned when an external aligner could not be run,
// failed or wrote something we could not parse.
var ErrSubprocess = errors.New("anchor subprocess failed")

// Source gives anchors for a pair of sequences. The anchors must be
// strictly increasing in x and y. Lower case residues are soft masked.
type Source interface {
	Anchors(sX, sY []byte) ([]band.Anchor, error)
}

// ForParams gets anchors for the whole problem. Small problems get
// none. Otherwise we ask src on the sequences as they are, with any soft
// masking, and then go back to each big hole between anchors and ask
// again on the unmasked residues of the hole.
func ForParams(sX, sY []byte, p *banded.Params, src Source) ([]band.Anchor, error) {
	lX, lY := len(sX), len(sY)
	if int64(lX)*int64(lY) <= p.AnchorMatrixBiggerThanThis {
		return nil, nil
	}
	top, err := src.Anchors(sX, sY)
	if err != nil {
		return nil, err
	}
	if err := band.CheckAnchors(top, lX, lY); err != nil {
		return nil, fmt.Errorf("top level anchors: %w", err)
	}
	var all []band.Anchor
	pX, pY := 0, 0
	for _, a := range append(top, band.Anchor{X: lX, Y: lY}) {
		lX2, lY2 := a.X-pX, a.Y-pY
		if int64(lX2)*int64(lY2) > p.RepeatMaskMatrixBiggerThanThis {
			sub, err := src.Anchors(bytes.ToUpper(sX[pX:a.X]), bytes.ToUpper(sY[pY:a.Y]))
			if err != nil {
				return nil, err
			}
			if err := band.CheckAnchors(sub, lX2, lY2); err != nil {
				return nil, fmt.Errorf("anchors between (%d, %d) and (%d, %d): %w", pX, pY, a.X, a.Y, err)
			}
			for _, s := range sub {
				all = append(all, band.Anchor{X: s.X + pX, Y: s.Y + pY})
			}
		}
		if a.X < lX {
			all = append(all, a)
		}
		pX, pY = a.X+1, a.Y+1
	}
	return all, nil
}

// monotone sorts pairs by x+y and drops any which do not move forward
// in both x and y.
func monotone(pairs []band.Anchor) []band.Anchor {
	sort.SliceStable(pairs, func(i, j int) bool {
		return pairs[i].X+pairs[i].Y < pairs[j].X+pairs[j].Y
	})
	ret := pairs[:0]
	for _, p := range pairs {
		if n := len(ret); n > 0 && (p.X <= ret[n-1].X || p.Y <= ret[n-1].Y) {
			continue
		}
		ret = append(ret, p)
	}
	return ret
}
