// 9 Mar 2024

// Package seqin reads and writes DNA sequences in fasta format.
// Files are mapped into memory and handed to the biogo fasta reader.
package seqin

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"
	"github.com/edsrzf/mmap-go"
)

// LineWidth is the number of residues per line we write.
const LineWidth = 60

// Seq is a named sequence. Body is the residues as they came in, so
// case is preserved. Lower case means soft masked.
type Seq struct {
	Name string
	Body []byte
}

// Len is the number of residues.
func (s Seq) Len() int { return len(s.Body) }

// Read gets all sequences from r.
func Read(r io.Reader) ([]Seq, error) {
	var seqs []Seq
	rdr := fasta.NewReader(r, linear.NewSeq("", nil, alphabet.DNA))
	for {
		s, err := rdr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("reading fasta after %d sequences: %w", len(seqs), err)
		}
		l := s.(*linear.Seq)
		body := make([]byte, len(l.Seq))
		for i, v := range l.Seq {
			body[i] = byte(v)
		}
		seqs = append(seqs, Seq{Name: l.Name(), Body: body})
	}
	return seqs, nil
}

// ReadFile maps fname read-only and reads the sequences from it.
func ReadFile(fname string) ([]Seq, error) {
	fp, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer fp.Close()
	info, err := fp.Stat()
	if err != nil {
		return nil, err
	}
	if info.Size() == 0 { // cannot map an empty file
		return nil, nil
	}
	mm, err := mmap.Map(fp, mmap.RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("mapping %s: %w", fname, err)
	}
	defer mm.Unmap()
	seqs, err := Read(bytes.NewReader(mm))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fname, err)
	}
	return seqs, nil
}

// ReadOne reads a file which must hold exactly one sequence.
func ReadOne(fname string) (Seq, error) {
	seqs, err := ReadFile(fname)
	if err != nil {
		return Seq{}, err
	}
	if len(seqs) != 1 {
		return Seq{}, fmt.Errorf("%s: wanted one sequence, found %d", fname, len(seqs))
	}
	return seqs[0], nil
}

// Write puts one sequence on w in fasta format.
func Write(w io.Writer, name string, body []byte) error {
	s := linear.NewSeq(name, alphabet.BytesToLetters(body), alphabet.DNA)
	if _, err := fasta.NewWriter(w, LineWidth).Write(s); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return nil
}

// WriteFile writes one sequence to a new file called fname.
func WriteFile(fname, name string, body []byte) (err error) {
	fp, err := os.Create(fname)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := fp.Close(); err == nil {
			err = cerr
		}
	}()
	return Write(fp, name, body)
}
