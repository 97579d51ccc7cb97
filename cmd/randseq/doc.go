// 31 July 2020

/*
Randseq makes test data for pairalign.
Usage:

	randseq [options] fname length

writes a random DNA sequence of the given length to fname, followed by
a mutated copy of it. "-" means stdout.

Flags:

	-r
		random number seed
	-s
		substitution rate for the copy
	-i
		insertion and deletion rate for the copy
	-c
		comment for the sequence names

The two sequences are in one file, so split them before handing them
to pairalign.
*/
package main
