// 12 Mar 2024

// Package split cuts a big alignment into independent pieces where the
// anchors leave a large empty rectangle. The middle of such a rectangle
// is not aligned at all. Each piece is run through the banded aligner
// on its own and the results are stuck back together.
package split

import (
	"math"

	"github.com/andrew-torda/pairalign/pkg/band"
	"github.com/andrew-torda/pairalign/pkg/banded"
	"github.com/andrew-torda/pairalign/pkg/phmm"
)

// Point is a position in both sequences.
type Point struct {
	X, Y int
}

// Region is a piece of the problem, from Start up to, but not
// including, End.
type Region struct {
	Start, End Point
}

// gapPoints adds the two points which cut the hole from (pX, pY) to
// (x, y), if it is big enough. The first ends the piece before the hole
// and the second starts the piece after it.
func gapPoints(pX, pY, x, y int, p *banded.Params, pts []Point) []Point {
	lX2, lY2 := x-pX, y-pY
	if int64(lX2)*int64(lY2) <= p.SplitMatrixBiggerThanThis {
		return pts
	}
	maxLen := int(math.Sqrt(float64(p.SplitMatrixBiggerThanThis)))
	hX, hY := min(lX2/2, maxLen), min(lY2/2, maxLen)
	end := Point{min(pX+hX+1, x-hX), min(pY+hY+1, y-hY)}
	return append(pts, end, Point{x - hX, y - hY})
}

// Regions returns the pieces to align, in order. With no large holes
// there is one region covering everything.
func Regions(anchors []band.Anchor, lX, lY int, p *banded.Params) []Region {
	pts := []Point{{0, 0}}
	pX, pY := 0, 0
	for _, a := range anchors {
		pts = gapPoints(pX, pY, a.X, a.Y, p, pts)
		pX, pY = a.X+1, a.Y+1
	}
	pts = gapPoints(pX, pY, lX, lY, p, pts)
	pts = append(pts, Point{lX, lY})

	regions := make([]Region, 0, len(pts)/2)
	for i := 0; i+1 < len(pts); i += 2 {
		regions = append(regions, Region{Start: pts[i], End: pts[i+1]})
	}
	return regions
}

// localAnchors returns the anchors inside r, moved so r starts at zero.
func localAnchors(anchors []band.Anchor, r Region) []band.Anchor {
	var ret []band.Anchor
	for _, a := range anchors {
		if a.X >= r.Start.X && a.X < r.End.X && a.Y >= r.Start.Y && a.Y < r.End.Y {
			ret = append(ret, band.Anchor{X: a.X - r.Start.X, Y: a.Y - r.Start.Y})
		}
	}
	return ret
}

// Align runs the banded aligner on each region and puts the pairs back
// into whole sequence coordinates.
func Align(anchors []band.Anchor, sX, sY []phmm.Symbol, p *banded.Params) ([]banded.AlignedPair, error) {
	if err := band.CheckAnchors(anchors, len(sX), len(sY)); err != nil {
		return nil, err
	}
	var pairs []banded.AlignedPair
	for _, r := range Regions(anchors, len(sX), len(sY), p) {
		sub, err := banded.AlignedPairs(localAnchors(anchors, r),
			sX[r.Start.X:r.End.X], sY[r.Start.Y:r.End.Y], p)
		if err != nil {
			return nil, err
		}
		for _, ap := range sub {
			ap.X += r.Start.X
			ap.Y += r.Start.Y
			pairs = append(pairs, ap)
		}
	}
	return pairs, nil
}
