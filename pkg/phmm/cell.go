// 3 Mar 2024

package phmm

// Direction says which way the recursion runs.
type Direction uint8

const (
	Forward Direction = iota
	Backward
)

// edge is one transition of the model.
type edge struct {
	from, to State
	tp       float64
}

// Edges grouped by the neighbour they come from. A cell at (xay, xmy) has
//   lower  (xay-1, xmy-1)  x moved on, so a gap in y
//   middle (xay-2, xmy)    both moved on, a match
//   upper  (xay-1, xmy+1)  y moved on, so a gap in x
// Only the gap states of the right kind can be reached from lower
// and upper.
var (
	lowerEdges = []edge{
		{Match, ShortGapX, ShortGapOpen},
		{ShortGapX, ShortGapX, ShortGapExtend},
		{ShortGapY, ShortGapX, ShortGapSwitch},
		{Match, LongGapX, LongGapOpen},
		{LongGapX, LongGapX, LongGapExtend},
	}
	middleEdges = []edge{
		{Match, Match, MatchContinue},
		{ShortGapX, Match, MatchFromShortGap},
		{ShortGapY, Match, MatchFromShortGap},
		{LongGapX, Match, MatchFromLongGap},
		{LongGapY, Match, MatchFromLongGap},
	}
	upperEdges = []edge{
		{Match, ShortGapY, ShortGapOpen},
		{ShortGapY, ShortGapY, ShortGapExtend},
		{ShortGapX, ShortGapY, ShortGapSwitch},
		{Match, LongGapY, LongGapOpen},
		{LongGapY, LongGapY, LongGapExtend},
	}
	allEdges = append(append(append([]edge{}, lowerEdges...), middleEdges...), upperEdges...)
)

// apply runs one group of edges, all with the same emission. Forward
// pulls mass from the neighbour into the cell. Backward pushes the
// cell's mass back to the neighbour.
func apply(dir Direction, cur, nbr []float64, edges []edge, emit float64) {
	if dir == Forward {
		for _, e := range edges {
			cur[e.to] = LogAdd(cur[e.to], nbr[e.from]+emit+e.tp)
		}
		return
	}
	for _, e := range edges {
		nbr[e.from] = LogAdd(nbr[e.from], cur[e.to]+emit+e.tp)
	}
}

// CalcCell does one cell of the recursion. cur and the three neighbours
// each hold NState values. A nil neighbour is off the edge of the band
// or matrix and is skipped. cx and cy are the symbols at the cell's x
// and y, or N when the coordinate is zero.
func CalcCell(dir Direction, cur, lower, middle, upper []float64, cx, cy Symbol) {
	if lower != nil {
		apply(dir, cur, lower, lowerEdges, GapProb(cx))
	}
	if middle != nil {
		apply(dir, cur, middle, middleEdges, MatchProb(cx, cy))
	}
	if upper != nil {
		apply(dir, cur, upper, upperEdges, GapProb(cy))
	}
}
