package dotplot_test

import (
	"bytes"
	"image/png"
	"path/filepath"
	"testing"

	"github.com/andrew-torda/pairalign/pkg/banded"
	"github.com/andrew-torda/pairalign/pkg/dotplot"
)

func TestGrid(t *testing.T) {
	pairs := []banded.AlignedPair{
		{Prob: banded.ProbScale, X: 0, Y: 0},
		{Prob: banded.ProbScale / 2, X: 3, Y: 1},
		{Prob: 7, X: 40, Y: 40}, // outside, ignored
	}
	g := dotplot.NewGrid(5, 4, pairs)
	if nx, ny := g.Size(); nx != 5 || ny != 4 || g.Bin() != 1 {
		t.Fatal("grid size", nx, ny, g.Bin())
	}
	if g.At(0, 0) != 1 || g.At(3, 1) != 0.5 || g.At(1, 3) != 0 {
		t.Fatal("grid values wrong", g.At(0, 0), g.At(3, 1), g.At(1, 3))
	}
}

func TestBinned(t *testing.T) {
	n := 2*dotplot.MaxSide + 10
	pairs := []banded.AlignedPair{
		{Prob: banded.ProbScale / 4, X: 6, Y: 6},
		{Prob: banded.ProbScale / 2, X: 7, Y: 8},
	}
	g := dotplot.NewGrid(n, 10, pairs)
	if g.Bin() != 3 {
		t.Fatal("wanted bin 3 got", g.Bin())
	}
	if nx, ny := g.Size(); nx != (n+2)/3 || ny != 4 {
		t.Fatal("binned size", nx, ny)
	}
	if g.At(6, 6) != 0.5 {
		t.Fatal("bin should keep the biggest value, got", g.At(6, 6))
	}
}

func TestWritePNG(t *testing.T) {
	g := dotplot.NewGrid(30, 20, []banded.AlignedPair{{Prob: banded.ProbScale, X: 10, Y: 10}})
	var buf bytes.Buffer
	if err := g.WritePNG(&buf, "test"); err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	b := img.Bounds()
	if b.Dy() != 20+24 || b.Dx() < 30 {
		t.Fatal("picture size", b)
	}
	if r, _, _, _ := img.At(10, 10+24).RGBA(); r != 0 {
		t.Fatal("certain pair should be black, got", r)
	}
	if r, _, _, _ := img.At(11, 10+24).RGBA(); r != 0xffff {
		t.Fatal("empty cell should be white, got", r)
	}
	if err := g.WriteFile(filepath.Join(t.TempDir(), "a.png"), "file"); err != nil {
		t.Fatal(err)
	}
}
