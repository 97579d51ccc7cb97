// 10 Mar 2024

package anchor

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/andrew-torda/pairalign/pkg/band"
	"github.com/andrew-torda/pairalign/pkg/seqin"
)

// LastzArgs are the options we always give lastz. The two sequence
// files follow.
var LastzArgs = []string{
	"--hspthresh=800", "--chain", "--strand=plus", "--gapped",
	"--format=cigar", "--ambiguous=iupac",
}

// Lastz runs the lastz program to get anchors.
type Lastz struct {
	Path    string // the executable, found on $PATH if there is no slash
	Trim    int    // positions cut off each end of a match run
	TmpDir  string // where sequence files go, "" for the system default
	Verbose bool   // log the command line and what came back
}

// NewLastz gives a source using the executable at path.
func NewLastz(path string, trim int) *Lastz {
	if path == "" {
		path = "lastz"
	}
	return &Lastz{Path: path, Trim: trim}
}

// Anchors writes the two sequences to files called a and b, runs lastz
// on them and turns the alignments into anchors. Empty sequences give
// no anchors and nothing is run.
func (l *Lastz) Anchors(sX, sY []byte) ([]band.Anchor, error) {
	if len(sX) == 0 || len(sY) == 0 {
		return nil, nil
	}
	dir, err := os.MkdirTemp(l.TmpDir, "pairalign_lastz")
	if err != nil {
		return nil, fmt.Errorf("%w: temporary directory: %v", ErrSubprocess, err)
	}
	defer os.RemoveAll(dir)
	fX, fY := filepath.Join(dir, "a.fa"), filepath.Join(dir, "b.fa")
	if err := seqin.WriteFile(fX, "a", sX); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSubprocess, err)
	}
	if err := seqin.WriteFile(fY, "b", sY); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSubprocess, err)
	}

	args := append(append([]string{}, LastzArgs...), fX, fY)
	cmd := exec.Command(l.Path, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if l.Verbose {
		log.Printf("running %s %s", l.Path, strings.Join(args, " "))
	}
	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, fmt.Errorf("%w: %s exited with status %d: %s",
				ErrSubprocess, l.Path, exitErr.ExitCode(), strings.TrimSpace(stderr.String()))
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrSubprocess, l.Path, err)
	}

	cigars, err := ParseCigars(bytes.NewReader(out))
	if err != nil {
		return nil, err
	}
	var pairs []band.Anchor
	pxay := -1
	for i := range cigars {
		c := &cigars[i]
		if c.Contig1 != "a" || c.Contig2 != "b" || c.Strand1 != '+' || c.Strand2 != '+' {
			return nil, fmt.Errorf("%w: unexpected alignment %s%c against %s%c",
				ErrSubprocess, c.Contig1, c.Strand1, c.Contig2, c.Strand2)
		}
		p, err := c.Pairs(l.Trim, &pxay)
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, p...)
	}
	pairs = monotone(pairs)
	if err := band.CheckAnchors(pairs, len(sX), len(sY)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSubprocess, err)
	}
	if l.Verbose {
		log.Printf("%s alignments gave %s anchors", humanize.Comma(int64(len(cigars))), humanize.Comma(int64(len(pairs))))
	}
	return pairs, nil
}
