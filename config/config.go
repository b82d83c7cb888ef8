// Package config is for app wide settings that are unmarshalled
// from Viper (see: /cmd)
package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config is the root-level settings struct, a mix of command line flags and
// defaults. Zero thresholds mean "no constraint" where noted.
type Config struct {
	// path to the positive sequences FASTA file
	In string `mapstructure:"in"`

	// path to an explicit negative FASTA file; synthesized when empty
	Neg string `mapstructure:"neg"`

	// path to a prebuilt model; fitting is skipped when present
	Model string `mapstructure:"model"`

	// output directory
	Out string `mapstructure:"out"`

	// shuffle multiplicity for the synthesized background
	Times int `mapstructure:"times"`

	// clustering complexity (feature resolution)
	Complexity int `mapstructure:"complexity"`

	// number of clusters of the learned partition
	NClusters int `mapstructure:"n-clusters"`

	// decomposition p-value threshold
	PValue float64 `mapstructure:"p-value"`

	// window size bounds
	MinSubarraySize int `mapstructure:"min-subarray-size"`
	MaxSubarraySize int `mapstructure:"max-subarray-size"`

	// cluster merge threshold (1 - relative edit distance)
	SimilarityTh float64 `mapstructure:"similarity-th"`

	// alignment trimming thresholds
	MinScore int     `mapstructure:"min-score"`
	MinFreq  float64 `mapstructure:"min-freq"`

	// minimum motif support in originating sequences
	MinClusterSize int `mapstructure:"min-cluster-size"`

	// consensus residue inclusion threshold
	RegexTh float64 `mapstructure:"regex-th"`

	// alignment sample cap
	SampleSize int `mapstructure:"sample-size"`

	// quality filter thresholds; 0 disables either
	FreqTh float64 `mapstructure:"freq-th"`
	StdTh  float64 `mapstructure:"std-th"`

	// worker pool size; 0 means detected parallelism
	Workers int `mapstructure:"workers"`

	// sequences per feature-extraction chunk; 0 picks a default
	PosBlockSize int `mapstructure:"pos-block-size"`
	NegBlockSize int `mapstructure:"neg-block-size"`

	// random seed for shuffling and sampling
	Seed int64 `mapstructure:"seed"`
}

// New returns a Config populated by Viper from bound command line flags.
func New() Config {
	var c Config
	if err := viper.Unmarshal(&c); err != nil {
		log.Fatalf("unable to decode settings, %v", err)
	}
	return c
}

// FreqThreshold is the quality filter frequency constraint; nil when disabled.
func (c Config) FreqThreshold() *float64 {
	if c.FreqTh <= 0 {
		return nil
	}
	th := c.FreqTh
	return &th
}

// StdThreshold is the positional spread constraint; nil when disabled.
func (c Config) StdThreshold() *float64 {
	if c.StdTh <= 0 {
		return nil
	}
	th := c.StdTh
	return &th
}
