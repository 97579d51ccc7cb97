// 15 Mar 2024

/*
Pairalign reads one DNA sequence from each of two fasta files and
writes the pairs of positions which are aligned with a posterior
probability at least the threshold.

Usage:

	pairalign [flags] x.fa y.fa

Output is one line per pair, x and y counting from zero, then the
probability. It goes to stdout unless there is a -o flag.

Flags:

	-s, --settings
		a yaml, toml or json file with any of the settings below.
		Flags on the command line win.
	-o, --out
		output file
	-t, --threshold
		smallest probability to report, default 0.01
	-e, --diagonal-expansion
		how far the band is widened around anchors. Must be even.
	--min-diags-between-traceback, --traceback-diagonals
		how often the backward pass runs and how much of each pass is
		thrown away. Memory grows with the first.
	--lastz
		path to lastz for finding anchors. Without it, anchors come from
		unique 16-mers.
	-k, --kmer
		word length for the k-mer anchors
	--dotplot
		write a picture of the probabilities to this png file
	-v, --verbose

Small problems get no anchors at all and the band is the whole matrix.
Big ones are split where the anchors leave a big enough hole, and the
middle of the hole is not aligned.
*/
package main
