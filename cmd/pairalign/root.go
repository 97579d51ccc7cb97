// 15 Mar 2024

package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/andrew-torda/pairalign/pkg/banded"
	"github.com/andrew-torda/pairalign/pkg/common"
	"github.com/andrew-torda/pairalign/pkg/config"
	"github.com/andrew-torda/pairalign/pkg/pairalign"
)

// newRootCmd builds the command with its own viper, so tests can make
// as many as they like.
func newRootCmd() *cobra.Command {
	v := viper.New()
	config.SetDefaults(v)
	p := banded.DefaultParams()

	cmd := &cobra.Command{
		Use:   "pairalign [flags] x.fa y.fa",
		Short: "Posterior probabilities of aligned pairs between two DNA sequences",
		Long: `Run a banded pair hidden Markov model forwards and backwards over
two sequences and write every pair of positions whose posterior match
probability is at least the threshold.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, _ := cmd.Flags().GetString("settings")
			outfile, _ := cmd.Flags().GetString("out")
			c, err := config.New(v, settings)
			if err != nil {
				return err
			}
			return pairalign.Mymain(c, args[0], args[1], outfile)
		},
	}

	f := cmd.Flags()
	f.StringP("settings", "s", "", "settings file, yaml, toml or json")
	f.StringP("out", "o", "", "output file name, default stdout")
	f.Float64P(config.KeyThreshold, "t", p.Threshold, "smallest posterior probability to report")
	f.Int(config.KeyMinDiags, p.MinDiagsBetweenTraceback, "diagonals between tracebacks")
	f.Int(config.KeyTracebackDiags, p.TracebackDiagonals, "diagonals held back at each traceback")
	f.IntP(config.KeyExpansion, "e", p.DiagonalExpansion, "band widening around anchors, must be even")
	f.Int(config.KeyTrim, p.ConstraintDiagonalTrim, "residues trimmed off each end of an anchor run")
	f.Int64(config.KeyAnchorMatrix, p.AnchorMatrixBiggerThanThis, "look for anchors if lX*lY is bigger than this")
	f.Int64(config.KeyRepeatMaskMatrix, p.RepeatMaskMatrixBiggerThanThis, "search holes again, unmasked, if bigger than this")
	f.Int64(config.KeySplitMatrix, p.SplitMatrixBiggerThanThis, "split the problem at holes bigger than this")
	f.String(config.KeyLastz, "", "path to lastz, default is the built in k-mer search")
	f.IntP(config.KeyKmer, "k", v.GetInt(config.KeyKmer), "word length for the k-mer search")
	f.String(config.KeyDotPlot, "", "write a png of the probabilities here")
	f.BoolP(config.KeyVerbose, "v", false, "say what is happening")

	for _, key := range []string{
		config.KeyThreshold, config.KeyMinDiags, config.KeyTracebackDiags, config.KeyExpansion,
		config.KeyTrim, config.KeyAnchorMatrix, config.KeyRepeatMaskMatrix, config.KeySplitMatrix,
		config.KeyLastz, config.KeyKmer, config.KeyDotPlot, config.KeyVerbose,
	} {
		if err := v.BindPFlag(key, f.Lookup(key)); err != nil {
			panic("binding flag " + key + ", silly programming bug: " + err.Error())
		}
	}
	return cmd
}

// Execute runs the command line and exits with a usage error on bad
// arguments, failure on anything else.
func Execute() {
	cmd := newRootCmd()
	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		c.Usage()
		log.Println(err)
		os.Exit(common.ExitUsageError)
		return nil
	})
	if err := cmd.Execute(); err != nil {
		log.Fatalf("%v", err)
	}
}
