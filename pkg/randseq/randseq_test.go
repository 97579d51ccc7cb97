// 31 July 2020

package randseq_test

import (
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/andrew-torda/pairalign/pkg/brokenio"
	"github.com/andrew-torda/pairalign/pkg/randseq"
)

func TestSimple(t *testing.T) {
	var sb strings.Builder
	args := randseq.RandSeqArgs{
		Wrtr:  &sb,
		Cmmt:  "testing seq",
		Len:   1600,
		Sub:   0.1,
		Indel: 0.02,
	}
	if err := randseq.RandSeqMain(&args); err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(sb.String(), ">"); n != 2 {
		t.Fatal("count >, got ", n, "expected", 2)
	}
	for _, line := range strings.Split(sb.String(), "\n") {
		if len(line) > 60 && line[0] != '>' {
			t.Fatal("line too long", len(line))
		}
	}
}

func TestMutate(t *testing.T) {
	rnd := rand.New(rand.NewSource(99))
	s := randseq.Generate(2000, rnd)
	if same := randseq.Mutate(s, 0, 0, rnd); string(same) != string(s) {
		t.Fatal("zero rates should not change the sequence")
	}
	m := randseq.Mutate(s, 0.5, 0, rnd)
	var ndiff int
	for i := range s {
		if s[i] != m[i] {
			ndiff++
		}
	}
	if ndiff < 800 || ndiff > 1200 {
		t.Fatal("substitutions at 0.5 gave", ndiff, "of 2000")
	}
	if g := randseq.Mutate(s, 0, 0.1, rnd); len(g) == len(s) {
		t.Log("indels cancelled out exactly, unlikely but possible")
	}
}

func TestBrokenWriter(t *testing.T) {
	args := randseq.RandSeqArgs{Wrtr: brokenio.NewWriter(nil, 100), Cmmt: "x", Len: 1000}
	if err := randseq.RandSeqMain(&args); !errors.Is(err, brokenio.ErrBroken) {
		t.Fatal("write error was lost, got", err)
	}
}
