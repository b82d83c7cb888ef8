// Package cmd is for command line interactions with the smod application
package cmd

import (
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// stderr is for logging to Stderr (without an annoying timestamp)
var stderr = log.New(os.Stderr, "", 0)

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use: "smod",
	Short: `Discover statistically enriched sequence motifs against a shuffled
background and decompose sequences into scored motif occurrences`,
	Version: "0.1.0",
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		stderr.Fatalf("%v", err)
	}
}

// addPipelineFlags registers the flags shared by the pipeline commands.
func addPipelineFlags(cmd *cobra.Command) {
	f := cmd.Flags()

	f.StringP("in", "i", "", "positive sequences FASTA file (required)")
	f.String("neg", "", "negative sequences FASTA file; synthesized when omitted")
	f.StringP("model", "m", "", "prebuilt model path; skips fitting when present")
	f.StringP("out", "o", "out", "output directory")

	f.IntP("times", "t", 1, "shuffle multiplicity for the synthesized background")
	f.IntP("complexity", "c", 5, "clustering complexity")
	f.Float64P("p-value", "p", 0.05, "decomposition p-value threshold")
	f.IntP("n-clusters", "n", 20, "number of clusters")

	f.Int("min-subarray-size", 4, "minimum window size")
	f.Int("max-subarray-size", 10, "maximum window size")

	f.Float64("similarity-th", 0.5, "merge threshold (1 - relative edit distance)")
	f.Int("min-score", 4, "minimum trimmed alignment width in columns")
	f.Float64("min-freq", 0.5, "column residue frequency for a confident column")
	f.Int("min-cluster-size", 10, "minimum motif support in originating sequences")
	f.Float64("regex-th", 0.3, "consensus residue inclusion threshold")
	f.Int("sample-size", 200, "alignment sample cap")

	f.Float64("freq-th", 0.03, "quality filter occurrence frequency threshold (0 disables)")
	f.Float64("std-th", 25, "quality filter positional spread threshold (0 disables)")

	f.Int("workers", 0, "worker pool size (0 uses detected parallelism)")
	f.Int("pos-block-size", 0, "positive sequences per feature-extraction chunk")
	f.Int("neg-block-size", 0, "background sequences per feature-extraction chunk")
	f.Int64("seed", 1, "random seed for shuffling and sampling")
}

// bindFlags rebinds the invoked command's flags into viper. Done per
// invocation (not at init) because the pipeline commands share flag names
// and only the running command's values should win.
func bindFlags(cmd *cobra.Command, args []string) {
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		stderr.Fatalf("failed to bind flags: %v", err)
	}
}
