package brokenio_test

import (
	"bytes"
	"errors"
	"io"
	"math/rand"
	"strings"
	"testing"

	"github.com/andrew-torda/pairalign/pkg/brokenio"
)

var longstring = "0123456789012345678901234567890123456789"

func TestReader(t *testing.T) {
	for _, n := range []int{0, 1, 7, 39} {
		r := brokenio.NewReader(strings.NewReader(longstring), n)
		b, err := io.ReadAll(r)
		if !errors.Is(err, brokenio.ErrBroken) {
			t.Fatal("wanted failure after", n, "got", err)
		}
		if string(b) != longstring[:n] || r.NByte() != n {
			t.Fatalf("after %d got %q", n, b)
		}
	}
	b, err := io.ReadAll(brokenio.NewReader(strings.NewReader(longstring), -1))
	if err != nil || string(b) != longstring {
		t.Fatal("reader with no limit changed things", err)
	}
}

func TestZeroFile(t *testing.T) {
	rnd := rand.New(rand.NewSource(3))
	r := brokenio.NewRandReader(strings.NewReader(longstring), 10, 1, rnd)
	if b, err := io.ReadAll(r); err != nil || len(b) != 0 {
		t.Fatal("wanted an empty file, got", len(b), err)
	}
}

func TestWriter(t *testing.T) {
	var buf bytes.Buffer
	w := brokenio.NewWriter(&buf, 15)
	if _, err := io.WriteString(w, longstring[:10]); err != nil {
		t.Fatal(err)
	}
	n, err := io.WriteString(w, longstring[10:20])
	if !errors.Is(err, brokenio.ErrBroken) || n != 5 {
		t.Fatal("wanted short write and failure, got", n, err)
	}
	if buf.String() != longstring[:15] || w.NByte() != 15 {
		t.Fatal("wrong data went through", buf.String())
	}
	if _, err := io.WriteString(brokenio.NewWriter(nil, 0), "a"); !errors.Is(err, brokenio.ErrBroken) {
		t.Fatal("zero limit should fail at once")
	}
}
