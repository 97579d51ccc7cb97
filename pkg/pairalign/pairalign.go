// 15 Mar 2024

// Package pairalign puts the pieces together. Find anchors, split the
// problem at big holes, run the banded aligner on each piece and write
// out the pairs.
package pairalign

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/andrew-torda/pairalign/pkg/anchor"
	"github.com/andrew-torda/pairalign/pkg/banded"
	"github.com/andrew-torda/pairalign/pkg/config"
	"github.com/andrew-torda/pairalign/pkg/dotplot"
	"github.com/andrew-torda/pairalign/pkg/phmm"
	"github.com/andrew-torda/pairalign/pkg/seqin"
	"github.com/andrew-torda/pairalign/pkg/split"
)

// GetAlignedPairs returns the pairs of positions in sX and sY which are
// aligned with probability at least p.Threshold, sorted by x then y.
// Lower case in the sequences is treated as soft masked when looking
// for anchors. It makes no difference to the alignment itself.
func GetAlignedPairs(sX, sY []byte, p *banded.Params, src anchor.Source) ([]banded.AlignedPair, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	anchors, err := anchor.ForParams(sX, sY, p, src)
	if err != nil {
		return nil, err
	}
	return split.Align(anchors, phmm.Symbols(sX), phmm.Symbols(sY), p)
}

// WritePairs writes one line per pair, x and y counting from zero and
// the probability.
func WritePairs(w io.Writer, pairs []banded.AlignedPair) error {
	if _, err := fmt.Fprintln(w, `"x","y","prob"`); err != nil {
		return err
	}
	for _, p := range pairs {
		if _, err := fmt.Fprintf(w, "%d,%d,%.7f\n", p.X, p.Y, float64(p.Prob)/banded.ProbScale); err != nil {
			return err
		}
	}
	return nil
}

// readOne is run on each input file, the first in the background.
func readOne(fname string, s *seqin.Seq, err *error, wg *sync.WaitGroup) {
	if wg != nil {
		defer wg.Done()
	}
	*s, *err = seqin.ReadOne(fname)
}

// readTwo reads the two sequence files in parallel.
func readTwo(fileX, fileY string) (sX, sY seqin.Seq, err error) {
	var errX, errY error
	var wg sync.WaitGroup
	wg.Add(1)
	go readOne(fileX, &sX, &errX, &wg)
	readOne(fileY, &sY, &errY, nil)
	wg.Wait()
	if errX != nil {
		return sX, sY, errX
	}
	return sX, sY, errY
}

// Mymain reads one sequence from each file, aligns them and writes the
// pairs to outfile. An empty outfile or "-" means standard output.
func Mymain(c *config.Config, fileX, fileY, outfile string) (err error) {
	p, err := c.Params()
	if err != nil {
		return err
	}
	sX, sY, err := readTwo(fileX, fileY)
	if err != nil {
		return err
	}
	if c.Verbose {
		log.Printf("%s: %s residues, %s: %s residues", sX.Name, humanize.Comma(int64(sX.Len())),
			sY.Name, humanize.Comma(int64(sY.Len())))
	}
	start := time.Now()
	pairs, err := GetAlignedPairs(sX.Body, sY.Body, p, c.AnchorSource())
	if err != nil {
		return fmt.Errorf("aligning %s and %s: %w", sX.Name, sY.Name, err)
	}
	if c.Verbose {
		log.Printf("%s pairs above %g in %v", humanize.Comma(int64(len(pairs))), p.Threshold,
			time.Since(start).Round(time.Millisecond))
	}

	var fp io.WriteCloser
	if outfile != "" && outfile != "-" {
		if fp, err = os.Create(outfile); err != nil {
			return fmt.Errorf("output file %v: %w", outfile, err)
		}
		defer func() {
			if cerr := fp.Close(); err == nil {
				err = cerr
			}
		}()
	} else {
		fp = os.Stdout
	}
	if err = WritePairs(fp, pairs); err != nil {
		return fmt.Errorf("writing pairs: %w", err)
	}

	if c.DotPlot != "" {
		g := dotplot.NewGrid(sX.Len(), sY.Len(), pairs)
		if err = g.WriteFile(c.DotPlot, sX.Name+" v "+sY.Name); err != nil {
			return fmt.Errorf("dot plot: %w", err)
		}
		if c.Verbose {
			log.Printf("dot plot in %s", c.DotPlot)
		}
	}
	return nil
}
