// 3 Mar 2024

package phmm

// Symbol is a nucleotide. Anything we do not recognise is an N.
type Symbol uint8

const (
	A Symbol = iota
	C
	G
	T
	N
	NSymbol
)

// symbolTable maps bytes to symbols. Filled in by init.
var symbolTable [256]Symbol

func init() {
	for i := range symbolTable {
		symbolTable[i] = N
	}
	for _, c := range []struct {
		b byte
		s Symbol
	}{
		{'A', A}, {'a', A}, {'C', C}, {'c', C},
		{'G', G}, {'g', G}, {'T', T}, {'t', T},
	} {
		symbolTable[c.b] = c.s
	}
}

// SymbolOf converts one byte, upper or lower case.
func SymbolOf(b byte) Symbol { return symbolTable[b] }

// Symbols converts a sequence.
func Symbols(s []byte) []Symbol {
	r := make([]Symbol, len(s))
	for i, b := range s {
		r[i] = symbolTable[b]
	}
	return r
}

// String gives back the letter.
func (s Symbol) String() string {
	if s >= NSymbol {
		return "?"
	}
	return string("ACGTN"[s])
}

// State of the hidden Markov model.
type State uint8

const (
	Match State = iota
	ShortGapX
	ShortGapY
	LongGapX
	LongGapY
	NState
)

var stateNames = [NState]string{"match", "shortGapX", "shortGapY", "longGapX", "longGapY"}

func (s State) String() string {
	if s >= NState {
		return "badstate"
	}
	return stateNames[s]
}

// Emission log probabilities.
const (
	emitMatch        = -2.1149196655034745
	emitTransversion = -4.5691014376830479
	emitTransition   = -3.9833860032220842
	emitWithN        = -3.2188758248682006
	emitGap          = -1.6094379124341003
)

// Transition log probabilities. A switch between the short gap states
// costs the same as opening one.
const (
	MatchContinue     = -0.030064059121770816
	MatchFromShortGap = -1.272871422049609
	MatchFromLongGap  = -5.673280173170473
	ShortGapOpen      = -4.34381910900448
	ShortGapExtend    = -0.3388262689231553
	ShortGapSwitch    = ShortGapOpen
	LongGapOpen       = -6.30810595366929
	LongGapExtend     = -0.003442492794189331
	endProb           = -1.6094379124341 // log(1/5)
)

// matchEmit is symmetric. Rows are X, columns Y.
var matchEmit = [NSymbol][NSymbol]float64{
	{emitMatch, emitTransversion, emitTransition, emitTransversion, emitWithN},
	{emitTransversion, emitMatch, emitTransversion, emitTransition, emitWithN},
	{emitTransition, emitTransversion, emitMatch, emitTransversion, emitWithN},
	{emitTransversion, emitTransition, emitTransversion, emitMatch, emitWithN},
	{emitWithN, emitWithN, emitWithN, emitWithN, emitWithN},
}

// MatchProb is the log probability of emitting x and y together.
func MatchProb(x, y Symbol) float64 { return matchEmit[x][y] }

// GapProb is the log probability of emitting s against a gap. It does
// not depend on s.
func GapProb(s Symbol) float64 { return emitGap }

// StartProb is the log probability of beginning in state s.
func StartProb(s State) float64 {
	switch s {
	case Match:
		return MatchContinue
	case ShortGapX, ShortGapY:
		return ShortGapOpen
	case LongGapX, LongGapY:
		return LongGapOpen
	}
	panic("StartProb bad state, silly programming bug")
}

// EndProb is the log probability of finishing in state s. The same for all.
func EndProb(s State) float64 {
	if s >= NState {
		panic("EndProb bad state, silly programming bug")
	}
	return endProb
}

// Transition returns the log probability of going from one state to
// another, or LogZero if there is no such edge.
func Transition(from, to State) float64 {
	for _, e := range allEdges {
		if e.from == from && e.to == to {
			return e.tp
		}
	}
	return LogZero
}
