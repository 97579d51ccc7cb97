// 31 July 2020
// 8 Mar 2024 changed to DNA pairs for testing the aligner

// Package randseq makes random DNA and mutated copies of it.
package randseq

import (
	"fmt"
	"io"
	"math/rand"
	"sync"
)

const lineLen = 60 // residues per line of output

var letters = []byte{'A', 'C', 'G', 'T'}

// Generate returns a random sequence of length n.
func Generate(n int, rnd *rand.Rand) []byte {
	ret := make([]byte, n)
	for i := range ret {
		ret[i] = letters[rnd.Intn(len(letters))]
	}
	return ret
}

// Mutate returns a copy of s where each position is substituted with
// probability sub, and deleted or has a random base inserted after it
// with probability indel each.
func Mutate(s []byte, sub, indel float64, rnd *rand.Rand) []byte {
	ret := make([]byte, 0, len(s)+len(s)/10)
	for _, c := range s {
		r := rnd.Float64()
		switch {
		case r < indel: // deletion
			continue
		case r < 2*indel: // insertion
			ret = append(ret, c, letters[rnd.Intn(len(letters))])
		case r < 2*indel+sub:
			ret = append(ret, letters[(indexOf(c)+1+rnd.Intn(3))%len(letters)])
		default:
			ret = append(ret, c)
		}
	}
	return ret
}

func indexOf(c byte) int {
	for i, l := range letters {
		if l == c {
			return i
		}
	}
	return 0
}

// RandSeqArgs is the set of arguments passed to the main function
type RandSeqArgs struct {
	Iseed int64     // random number seed
	Wrtr  io.Writer // where we write to
	Cmmt  string    // Comment for the sequences
	Len   int       // Length of the first sequence
	Sub   float64   // substitution rate for the second
	Indel float64   // insertion and deletion rate for the second
}

// writeseq takes each sequence, adds a comment and breaks it into lines.
// The first is numbered 1, the second 2.
func writeseq(sChan <-chan []byte, args *RandSeqArgs, wg *sync.WaitGroup, errp *error) {
	defer wg.Done()
	var i int
	for s := range sChan {
		i++
		if *errp != nil {
			continue
		}
		if _, err := fmt.Fprintf(args.Wrtr, ">%s_%d\n", args.Cmmt, i); err != nil {
			*errp = err
			continue
		}
		for len(s) > 0 {
			n := min(lineLen, len(s))
			if _, err := fmt.Fprintf(args.Wrtr, "%s\n", s[:n]); err != nil {
				*errp = err
				break
			}
			s = s[n:]
		}
	}
}

// RandSeqMain writes a random sequence and a mutated copy of it to
// args.Wrtr in fasta format.
func RandSeqMain(args *RandSeqArgs) error {
	var wg sync.WaitGroup
	var err error
	rnd := rand.New(rand.NewSource(args.Iseed))
	sChan := make(chan []byte)
	wg.Add(1)
	go writeseq(sChan, args, &wg, &err)
	s := Generate(args.Len, rnd)
	sChan <- s
	sChan <- Mutate(s, args.Sub, args.Indel, rnd)
	close(sChan)
	wg.Wait()
	return err
}
