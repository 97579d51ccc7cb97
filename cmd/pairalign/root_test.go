package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/andrew-torda/pairalign/pkg/seqin"
)

func writeTwo(t *testing.T, dir string) (string, string) {
	t.Helper()
	fX, fY := filepath.Join(dir, "x.fa"), filepath.Join(dir, "y.fa")
	if err := seqin.WriteFile(fX, "x", []byte("ACGTTGCAAGGCTTACG")); err != nil {
		t.Fatal(err)
	}
	if err := seqin.WriteFile(fY, "y", []byte("ACGTTGCAGGCTTACG")); err != nil {
		t.Fatal(err)
	}
	return fX, fY
}

func nLines(t *testing.T, fname string) int {
	t.Helper()
	b, err := os.ReadFile(fname)
	if err != nil {
		t.Fatal(err)
	}
	return strings.Count(string(b), "\n")
}

func TestRoot(t *testing.T) {
	dir := t.TempDir()
	fX, fY := writeTwo(t, dir)
	out := filepath.Join(dir, "out.csv")
	cmd := newRootCmd()
	cmd.SetArgs([]string{"-o", out, "--dotplot", filepath.Join(dir, "d.png"), fX, fY})
	if err := cmd.Execute(); err != nil {
		t.Fatal(err)
	}
	if n := nLines(t, out); n < 10 {
		t.Fatal("too little output", n)
	}
	if _, err := os.Stat(filepath.Join(dir, "d.png")); err != nil {
		t.Fatal(err)
	}
}

// A threshold of 1 in the settings file leaves almost nothing. The
// flag overrides it.
func TestSettingsAndFlags(t *testing.T) {
	dir := t.TempDir()
	fX, fY := writeTwo(t, dir)
	settings := filepath.Join(dir, "s.yaml")
	if err := os.WriteFile(settings, []byte("threshold: 1.0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	out1, out2 := filepath.Join(dir, "1.csv"), filepath.Join(dir, "2.csv")

	cmd := newRootCmd()
	cmd.SetArgs([]string{"-s", settings, "-o", out1, fX, fY})
	if err := cmd.Execute(); err != nil {
		t.Fatal(err)
	}
	cmd = newRootCmd()
	cmd.SetArgs([]string{"-s", settings, "-t", "0.01", "-o", out2, fX, fY})
	if err := cmd.Execute(); err != nil {
		t.Fatal(err)
	}
	if n1, n2 := nLines(t, out1), nLines(t, out2); n1 >= n2 {
		t.Fatal("flag should beat settings file", n1, n2)
	}
}

func TestBadArgs(t *testing.T) {
	dir := t.TempDir()
	fX, fY := writeTwo(t, dir)
	for _, args := range [][]string{
		{fX},
		{"-e", "3", fX, fY},
		{fX, filepath.Join(dir, "missing.fa")},
	} {
		cmd := newRootCmd()
		cmd.SetArgs(append(args, "-o", filepath.Join(dir, "o.csv")))
		if err := cmd.Execute(); err == nil {
			t.Fatal("wanted an error from", args)
		}
	}
}
