// 14 Mar 2024

// Package dotplot draws the posterior match probabilities as a picture.
// Sequence X runs across, Y runs down. Black is certain, white is
// nothing reported. Long sequences are binned so the picture stays a
// sensible size, and each bin shows its most probable pair.
package dotplot

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"os"

	"github.com/andrew-torda/matrix"
	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/andrew-torda/pairalign/pkg/banded"
)

// MaxSide is the most bins along either axis.
const MaxSide = 1000

const (
	margin   = 24 // pixels above the plot for the title
	fontSize = 12
)

// Grid holds the binned probabilities. Rows are y, columns x.
type Grid struct {
	mat    *matrix.FMatrix2d
	bin    int
	lX, lY int
}

// NewGrid bins the pairs of an lX by lY alignment.
func NewGrid(lX, lY int, pairs []banded.AlignedPair) *Grid {
	bin := 1
	if m := max(lX, lY); m > MaxSide {
		bin = (m + MaxSide - 1) / MaxSide
	}
	nc, nr := (lX+bin-1)/bin, (lY+bin-1)/bin
	g := &Grid{mat: matrix.NewFMatrix2d(nr, nc), bin: bin, lX: lX, lY: lY}
	for _, p := range pairs {
		if p.X < 0 || p.X >= lX || p.Y < 0 || p.Y >= lY {
			continue
		}
		v := float32(p.Prob) / banded.ProbScale
		r, c := p.Y/bin, p.X/bin
		if v > g.mat.Mat[r][c] {
			g.mat.Mat[r][c] = v
		}
	}
	return g
}

// Size is the number of bins across and down.
func (g *Grid) Size() (nx, ny int) {
	nr, nc := g.mat.Size()
	return nc, nr
}

// Bin is how many residues go into one bin along each axis.
func (g *Grid) Bin() int { return g.bin }

// At gives the value of the bin holding sequence positions x and y.
func (g *Grid) At(x, y int) float32 { return g.mat.Mat[y/g.bin][x/g.bin] }

// Image draws the grid with a title above it.
func (g *Grid) Image(title string) (*image.Gray, error) {
	nx, ny := g.Size()
	img := image.NewGray(image.Rect(0, 0, max(nx, 200), ny+margin))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)
	for y := 0; y < ny; y++ {
		for x := 0; x < nx; x++ {
			v := g.mat.Mat[y][x]
			img.SetGray(x, y+margin, color.Gray{Y: uint8(255 - 255*v)})
		}
	}

	font, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("dotplot font: %w", err)
	}
	c := freetype.NewContext()
	c.SetDPI(72)
	c.SetFont(font)
	c.SetFontSize(fontSize)
	c.SetClip(img.Bounds())
	c.SetDst(img)
	c.SetSrc(image.Black)
	label := fmt.Sprintf("%s  %d x %d", title, g.lX, g.lY)
	if g.bin > 1 {
		label += fmt.Sprintf("  bin %d", g.bin)
	}
	if _, err := c.DrawString(label, freetype.Pt(2, margin-6)); err != nil {
		return nil, fmt.Errorf("dotplot label: %w", err)
	}
	return img, nil
}

// WritePNG draws the grid and encodes it to w.
func (g *Grid) WritePNG(w io.Writer, title string) error {
	img, err := g.Image(title)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

// WriteFile writes the picture to a new file.
func (g *Grid) WriteFile(fname, title string) (err error) {
	fp, err := os.Create(fname)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := fp.Close(); err == nil {
			err = cerr
		}
	}()
	return g.WritePNG(fp, title)
}
