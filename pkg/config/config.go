// Package config is for settings of the aligner. They are unmarshalled
// from viper, so they can come from a settings file or the command line.
package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/andrew-torda/pairalign/pkg/anchor"
	"github.com/andrew-torda/pairalign/pkg/banded"
)

// Keys of the settings.
const (
	KeyThreshold        = "threshold"
	KeyMinDiags         = "min-diags-between-traceback"
	KeyTracebackDiags   = "traceback-diagonals"
	KeyExpansion        = "diagonal-expansion"
	KeyTrim             = "constraint-diagonal-trim"
	KeyAnchorMatrix     = "anchor-matrix-bigger-than"
	KeyRepeatMaskMatrix = "repeat-mask-matrix-bigger-than"
	KeySplitMatrix      = "split-matrix-bigger-than"
	KeyLastz            = "lastz"
	KeyKmer             = "kmer"
	KeyVerbose          = "verbose"
	KeyDotPlot          = "dotplot"
)

// Config is the root-level settings struct, a mix of what is in the
// settings file and what came from the command line.
type Config struct {
	// posterior probability below which pairs are not reported
	Threshold float64 `mapstructure:"threshold"`

	// forward diagonals between tracebacks, and how many are held back
	MinDiagsBetweenTraceback int `mapstructure:"min-diags-between-traceback"`
	TracebackDiagonals       int `mapstructure:"traceback-diagonals"`

	// band widening around anchors
	DiagonalExpansion int `mapstructure:"diagonal-expansion"`

	// trimmed off each end of an anchor run
	ConstraintDiagonalTrim int `mapstructure:"constraint-diagonal-trim"`

	// matrix sizes, lX*lY, above which we look for anchors, search
	// holes again without masking, and split at holes
	AnchorMatrixBiggerThan     int64 `mapstructure:"anchor-matrix-bigger-than"`
	RepeatMaskMatrixBiggerThan int64 `mapstructure:"repeat-mask-matrix-bigger-than"`
	SplitMatrixBiggerThan      int64 `mapstructure:"split-matrix-bigger-than"`

	// path to lastz. Empty means use the built in k-mer search.
	Lastz string `mapstructure:"lastz"`

	// word length for the k-mer search
	Kmer int `mapstructure:"kmer"`

	Verbose bool `mapstructure:"verbose"`

	// if set, write a picture of the posterior probabilities here
	DotPlot string `mapstructure:"dotplot"`
}

// SetDefaults puts the standard values into v.
func SetDefaults(v *viper.Viper) {
	p := banded.DefaultParams()
	v.SetDefault(KeyThreshold, p.Threshold)
	v.SetDefault(KeyMinDiags, p.MinDiagsBetweenTraceback)
	v.SetDefault(KeyTracebackDiags, p.TracebackDiagonals)
	v.SetDefault(KeyExpansion, p.DiagonalExpansion)
	v.SetDefault(KeyTrim, p.ConstraintDiagonalTrim)
	v.SetDefault(KeyAnchorMatrix, p.AnchorMatrixBiggerThanThis)
	v.SetDefault(KeyRepeatMaskMatrix, p.RepeatMaskMatrixBiggerThanThis)
	v.SetDefault(KeySplitMatrix, p.SplitMatrixBiggerThanThis)
	v.SetDefault(KeyLastz, "")
	v.SetDefault(KeyKmer, anchor.DefaultK)
	v.SetDefault(KeyVerbose, false)
	v.SetDefault(KeyDotPlot, "")
}

// New returns a Config populated from v. If settingsFile is not empty,
// it is read first. Its type comes from the extension.
func New(v *viper.Viper, settingsFile string) (*Config, error) {
	if settingsFile != "" {
		v.SetConfigFile(settingsFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading settings %s: %w", settingsFile, err)
		}
	}
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unable to decode settings: %w", err)
	}
	return &c, nil
}

// Default is the Config you get with no file and no flags.
func Default() *Config {
	v := viper.New()
	SetDefaults(v)
	c, err := New(v, "")
	if err != nil {
		panic("default settings do not decode, silly programming bug: " + err.Error())
	}
	return c
}

// Params returns the aligner parameters, after checking them.
func (c *Config) Params() (*banded.Params, error) {
	p := &banded.Params{
		Threshold:                      c.Threshold,
		MinDiagsBetweenTraceback:       c.MinDiagsBetweenTraceback,
		TracebackDiagonals:             c.TracebackDiagonals,
		DiagonalExpansion:              c.DiagonalExpansion,
		ConstraintDiagonalTrim:         c.ConstraintDiagonalTrim,
		AnchorMatrixBiggerThanThis:     c.AnchorMatrixBiggerThan,
		RepeatMaskMatrixBiggerThanThis: c.RepeatMaskMatrixBiggerThan,
		SplitMatrixBiggerThanThis:      c.SplitMatrixBiggerThan,
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// AnchorSource is lastz if a path was given, otherwise the k-mer search.
func (c *Config) AnchorSource() anchor.Source {
	if c.Lastz != "" {
		l := anchor.NewLastz(c.Lastz, c.ConstraintDiagonalTrim)
		l.Verbose = c.Verbose
		return l
	}
	return anchor.NewKmer(c.Kmer, c.ConstraintDiagonalTrim)
}
