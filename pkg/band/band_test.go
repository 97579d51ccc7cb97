package band_test

import (
	"errors"
	"math/rand"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"

	. "github.com/andrew-torda/pairalign/pkg/band"
)

func TestNewDiagonal(t *testing.T) {
	var tests = []struct {
		xay, lo, hi int
		ok          bool
	}{
		{0, 0, 0, true},
		{4, -4, 4, true},
		{5, -3, 1, true},
		{7, 1, 1, true},
		{4, -3, 3, false}, // parity
		{4, -4, 3, false}, // parity on one side only
		{4, 2, -2, false}, // order
		{-2, 0, 0, false}, // negative xay
	}
	for _, tt := range tests {
		d, err := NewDiagonal(tt.xay, tt.lo, tt.hi)
		if !tt.ok {
			if !errors.Is(err, ErrInvalidDiagonal) {
				t.Fatalf("NewDiagonal(%d, %d, %d) wanted ErrInvalidDiagonal, got %v", tt.xay, tt.lo, tt.hi, err)
			}
			continue
		}
		if err != nil {
			t.Fatal("NewDiagonal", tt.xay, tt.lo, tt.hi, err)
		}
		if w := d.Width(); w != tt.hi-tt.lo+1 || w < 1 {
			t.Fatalf("width got %d from %v", w, d)
		}
		if d.Xay() != tt.xay || d.MinXmy() != tt.lo || d.MaxXmy() != tt.hi {
			t.Fatalf("accessors do not give back %d %d %d: %v", tt.xay, tt.lo, tt.hi, d)
		}
	}
}

func TestCoords(t *testing.T) {
	for x := 0; x < 6; x++ {
		for y := 0; y < 6; y++ {
			xay, xmy := x+y, x-y
			if gx, gy := XCoord(xay, xmy), YCoord(xay, xmy); gx != x || gy != y {
				t.Fatalf("(%d, %d) came back as (%d, %d)", x, y, gx, gy)
			}
		}
	}
	d, _ := NewDiagonal(6, -2, 4)
	if d.NCell() != 4 {
		t.Fatal("NCell wanted 4 got", d.NCell())
	}
	if d.Contains(-1) || !d.Contains(0) || d.Contains(6) {
		t.Fatal("Contains is broken for", d)
	}
}

func TestOddExpansion(t *testing.T) {
	if _, err := NewIterator(nil, 10, 10, 3); !errors.Is(err, ErrInvalidConfiguration) {
		t.Fatal("odd expansion should be refused, got", err)
	}
}

func TestBadAnchors(t *testing.T) {
	bad := [][]Anchor{
		{{3, 3}, {2, 5}},
		{{3, 3}, {5, 3}},
		{{3, 3}, {3, 4}},
		{{10, 1}},
		{{-1, 0}},
	}
	for _, a := range bad {
		if _, err := NewIterator(a, 10, 10, 2); !errors.Is(err, ErrInvalidConfiguration) {
			t.Fatal("anchors", a, "should be refused, got", err)
		}
	}
}

// walkForward returns every diagonal from zero to the end.
func walkForward(it *Iterator) []Diagonal {
	d := []Diagonal{it.Diagonal()}
	for it.Next() {
		d = append(d, it.Diagonal())
	}
	return d
}

func randAnchors(rnd *rand.Rand, lX, lY, n int) []Anchor {
	if lX == 0 || lY == 0 {
		return nil
	}
	if n > lX {
		n = lX
	}
	if n > lY {
		n = lY
	}
	xs := rnd.Perm(lX)[:n]
	ys := rnd.Perm(lY)[:n]
	sort.Ints(xs)
	sort.Ints(ys)
	a := make([]Anchor, n)
	for i := range a {
		a[i] = Anchor{xs[i], ys[i]}
	}
	return a
}

func TestEnds(t *testing.T) {
	it, err := NewIterator([]Anchor{{2, 3}}, 6, 9, 10)
	if err != nil {
		t.Fatal(err)
	}
	if d := it.Diagonal(); d.Xay() != 0 || d.MinXmy() != 0 || d.MaxXmy() != 0 {
		t.Fatal("first diagonal should be the origin, got", d)
	}
	for it.Next() {
	}
	d := it.Diagonal()
	if d.Xay() != 15 || d.MinXmy() != -3 || d.MaxXmy() != -3 {
		t.Fatal("last diagonal should be the single corner cell, got", d)
	}
	if it.Next() {
		t.Fatal("Next past the end should fail")
	}
}

// TestRoundTrip walks forwards to the end, then backwards and checks we
// see exactly the same diagonals in reverse order. Then it mixes steps
// in both directions.
func TestRoundTrip(t *testing.T) {
	rnd := rand.New(rand.NewSource(1637))
	expansions := []int{0, 2, 4, 10}
	for trial := 0; trial < 300; trial++ {
		lX, lY := rnd.Intn(60), rnd.Intn(60)
		anchors := randAnchors(rnd, lX, lY, rnd.Intn(9))
		it, err := NewIterator(anchors, lX, lY, expansions[trial%len(expansions)])
		if err != nil {
			t.Fatal(err)
		}
		fwd := walkForward(it)
		if len(fwd) != lX+lY+1 {
			t.Fatalf("got %d diagonals, wanted %d", len(fwd), lX+lY+1)
		}
		for i, d := range fwd {
			if d.Xay() != i {
				t.Fatalf("diagonal %d has xay %d", i, d.Xay())
			}
			if _, err := NewDiagonal(d.Xay(), d.MinXmy(), d.MaxXmy()); err != nil {
				t.Fatal("iterator made a bad diagonal", err)
			}
			lo, hi := d.MinXmy(), d.MaxXmy()
			if x := XCoord(i, lo); x < 0 || x > lX {
				t.Fatal("band leaves the matrix", d, lX, lY)
			}
			if y := YCoord(i, hi); y < 0 || y > lY {
				t.Fatal("band leaves the matrix", d, lX, lY)
			}
		}

		back := []Diagonal{it.Diagonal()}
		for it.Previous() {
			back = append(back, it.Diagonal())
		}
		for i, j := 0, len(back)-1; i < j; i, j = i+1, j-1 {
			back[i], back[j] = back[j], back[i]
		}
		if diff := cmp.Diff(fwd, back, cmp.AllowUnexported(Diagonal{})); diff != "" {
			t.Fatalf("backward walk differs, anchors %v (-fwd +back)\n%s", anchors, diff)
		}

		mixed, err := NewIterator(anchors, lX, lY, 4)
		if err != nil {
			t.Fatal(err)
		}
		want := walkForward(mixed.Clone())
		for step := 0; step < 200; step++ {
			if rnd.Intn(5) < 3 {
				mixed.Next()
			} else {
				mixed.Previous()
			}
			if got := mixed.Diagonal(); got != want[mixed.Xay()] {
				t.Fatalf("after mixed steps got %v wanted %v", got, want[mixed.Xay()])
			}
		}
	}
}

func TestClone(t *testing.T) {
	it, _ := NewIterator([]Anchor{{4, 4}, {10, 12}}, 20, 20, 2)
	for i := 0; i < 15; i++ {
		it.Next()
	}
	c := it.Clone()
	c.Previous()
	c.Previous()
	if it.Xay() != 15 || c.Xay() != 13 {
		t.Fatal("clone is not independent", it.Xay(), c.Xay())
	}
	it.Previous()
	it.Previous()
	if it.Diagonal() != c.Diagonal() {
		t.Fatal("clone and original disagree", it.Diagonal(), c.Diagonal())
	}
}

// TestNarrowAtAnchor checks the band closes in to 2*expansion+1 on an
// anchor's anti-diagonal.
func TestNarrowAtAnchor(t *testing.T) {
	const expansion = 4
	it, _ := NewIterator([]Anchor{{19, 19}}, 40, 40, expansion)
	for it.Xay() < 40 {
		it.Next()
	}
	d := it.Diagonal()
	if d.Width() != 2*expansion+1 || d.MinXmy() != -expansion {
		t.Fatal("band at anchor should be narrow, got", d)
	}
}
