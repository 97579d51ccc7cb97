// 11 Mar 2024

package anchor

import (
	"sort"

	"github.com/andrew-torda/pairalign/pkg/band"
)

// DefaultK is the word length if none is given.
const DefaultK = 16

// Kmer finds anchors without an outside program. It looks for words of
// length K which occur exactly once in each sequence, chains the
// biggest set of them that goes forward in both sequences and turns
// each word into a run of anchors. Words with lower case or anything
// other than ACGT are ignored, so soft masking works as it does for
// lastz.
type Kmer struct {
	K    int
	Trim int // positions cut off each end of a word, at most (K-1)/2
}

// NewKmer gives a k-mer source. k of zero or less means DefaultK.
func NewKmer(k, trim int) *Kmer {
	if k <= 0 {
		k = DefaultK
	}
	return &Kmer{K: k, Trim: trim}
}

func clean(w []byte) bool {
	for _, c := range w {
		switch c {
		case 'A', 'C', 'G', 'T':
		default:
			return false
		}
	}
	return true
}

// uniqueWords maps each word found exactly once in s to its position.
func uniqueWords(s []byte, k int) map[string]int {
	pos := make(map[string]int)
	for i := 0; i+k <= len(s); i++ {
		w := s[i : i+k]
		if !clean(w) {
			continue
		}
		if _, ok := pos[string(w)]; ok {
			pos[string(w)] = -1
		} else {
			pos[string(w)] = i
		}
	}
	for w, i := range pos {
		if i < 0 {
			delete(pos, w)
		}
	}
	return pos
}

// chain returns the longest subsequence of hits strictly increasing in
// y. hits must be sorted by x, with no repeated x.
func chain(hits []band.Anchor) []band.Anchor {
	tails := []int{} // tails[i] is the hit ending the best chain of length i+1
	prev := make([]int, len(hits))
	for i, h := range hits {
		n := sort.Search(len(tails), func(j int) bool { return hits[tails[j]].Y >= h.Y })
		prev[i] = -1
		if n > 0 {
			prev[i] = tails[n-1]
		}
		if n == len(tails) {
			tails = append(tails, i)
		} else {
			tails[n] = i
		}
	}
	if len(tails) == 0 {
		return nil
	}
	ret := make([]band.Anchor, len(tails))
	for i, j := len(tails)-1, tails[len(tails)-1]; i >= 0; i, j = i-1, prev[j] {
		ret[i] = hits[j]
	}
	return ret
}

// Anchors finds the unique shared words and returns the positions
// along them.
func (km *Kmer) Anchors(sX, sY []byte) ([]band.Anchor, error) {
	k := km.K
	if k <= 0 {
		k = DefaultK
	}
	if len(sX) < k || len(sY) < k {
		return nil, nil
	}
	wX, wY := uniqueWords(sX, k), uniqueWords(sY, k)
	var hits []band.Anchor
	for w, x := range wX {
		if y, ok := wY[w]; ok {
			hits = append(hits, band.Anchor{X: x, Y: y})
		}
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].X < hits[j].X })

	trim := min(km.Trim, (k-1)/2)
	var pairs []band.Anchor
	for _, h := range chain(hits) {
		for l := trim; l < k-trim; l++ {
			pairs = append(pairs, band.Anchor{X: h.X + l, Y: h.Y + l})
		}
	}
	return monotone(pairs), nil
}
