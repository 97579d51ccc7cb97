// 31 July 2020
// 15 Mar 2024 now writes a sequence and a mutated copy for pairalign

package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	. "github.com/andrew-torda/pairalign/pkg/common"
	"github.com/andrew-torda/pairalign/pkg/randseq"
)

func main() {
	f := flag.NewFlagSet("randseq", flag.ExitOnError)
	const iseed int64 = 1637
	var args randseq.RandSeqArgs

	f.Int64Var(&args.Iseed, "r", iseed, "random number seed")
	f.Float64Var(&args.Sub, "s", 0.1, "substitution rate for the second sequence")
	f.Float64Var(&args.Indel, "i", 0.02, "insertion and deletion rate for the second sequence")
	f.StringVar(&args.Cmmt, "c", "randseq", "comment for the sequences")
	if err := f.Parse(os.Args[1:]); err != nil {
		fmt.Fprintln(f.Output(), err)
		os.Exit(ExitUsageError)
	}
	if f.NArg() != 2 {
		fmt.Fprintln(f.Output(), "Wrong number of args\nrandseq [..] file length")
		f.Usage()
		os.Exit(ExitUsageError)
	}

	fname := f.Args()[0]
	if fname == "-" || fname == "" {
		args.Wrtr = os.Stdout
	} else {
		if ft, err := os.Create(fname); err != nil {
			fmt.Fprintln(os.Stderr, "File for output:", err)
			os.Exit(ExitFailure)
		} else {
			defer ft.Close()
			args.Wrtr = ft
		}
	}

	const emsg = "Failed converting %s to positive integer\n"
	if nlen, err := strconv.ParseUint(f.Args()[1], 10, 32); err != nil {
		fmt.Fprintf(os.Stderr, emsg, f.Args()[1])
		os.Exit(ExitFailure)
	} else {
		args.Len = int(nlen)
	}
	if err := randseq.RandSeqMain(&args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(ExitFailure)
	}
}
