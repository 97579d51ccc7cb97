// 15 Mar 2024 from the old brokenio reader, now with a writer

// Package brokenio wraps readers and writers so they fail. It is for
// checking that errors from files get back to the caller.
// A Reader can look like a zero length file, or fail after some number
// of bytes. A Writer fails after some number of bytes.
package brokenio

import (
	"errors"
	"io"
	"math/rand"
)

// ErrBroken is what comes back from a deliberate failure.
var ErrBroken = errors.New("brokenio: deliberate failure")

// Reader passes data through from the wrapped reader until it has
// given out failAfter bytes.
type Reader struct {
	rdr       io.Reader
	failAfter int
	zeroFile  bool
	nCalled   int
	nByte     int
}

// NewReader wraps r so it fails after failAfter bytes. A negative
// failAfter means never fail.
func NewReader(r io.Reader, failAfter int) *Reader {
	return &Reader{rdr: r, failAfter: failAfter}
}

// NewRandReader fails somewhere in the first n bytes, or with probability
// probZero, looks like an empty file.
func NewRandReader(r io.Reader, n int, probZero float32, rnd *rand.Rand) *Reader {
	b := NewReader(r, rnd.Intn(n+1))
	b.zeroFile = rnd.Float32() < probZero
	return b
}

// Read is like the wrapped Read, but returns ErrBroken once the byte
// limit is reached. Some of the data from the last call is kept.
func (r *Reader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if r.nCalled == 0 && r.zeroFile {
		return 0, io.EOF
	}
	r.nCalled++
	if r.failAfter >= 0 {
		left := r.failAfter - r.nByte
		if left <= 0 {
			return 0, ErrBroken
		}
		p = p[:min(len(p), left)]
	}
	n, err := r.rdr.Read(p)
	r.nByte += n
	return n, err
}

// NByte is how much has gone through.
func (r *Reader) NByte() int { return r.nByte }

// Writer accepts failAfter bytes and then fails.
type Writer struct {
	wrtr      io.Writer
	failAfter int
	nByte     int
}

// NewWriter wraps w. If w is nil, the data is thrown away.
func NewWriter(w io.Writer, failAfter int) *Writer {
	if w == nil {
		w = io.Discard
	}
	return &Writer{wrtr: w, failAfter: failAfter}
}

// Write writes what fits under the limit and returns ErrBroken if not
// everything did.
func (w *Writer) Write(p []byte) (int, error) {
	left := w.failAfter - w.nByte
	if left >= len(p) {
		n, err := w.wrtr.Write(p)
		w.nByte += n
		return n, err
	}
	n, err := w.wrtr.Write(p[:max(left, 0)])
	w.nByte += n
	if err != nil {
		return n, err
	}
	return n, ErrBroken
}

// NByte is how much has been written.
func (w *Writer) NByte() int { return w.nByte }
