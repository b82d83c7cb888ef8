package cmd

import (
	"log"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/fabriziocosta/SMoD/config"
	"github.com/fabriziocosta/SMoD/internal/smod"
	"github.com/spf13/cobra"
)

// findCmd runs the full discovery pipeline: background synthesis,
// discriminative clustering, merging, quality filtering, and reporting.
var findCmd = &cobra.Command{
	Use:   "find",
	Short: "Discover enriched motifs in a FASTA file of sequences",
	Long: `Discover short sequence motifs that are statistically enriched against
a randomized background.

"smod find" shuffles the input sequences into a negative population (or uses
--neg verbatim), clusters candidate subsequences that are enriched in the
input versus that background, merges similar clusters into consensus motives,
and filters them by occurrence frequency and positional stability. The fitted
model, a Markdown report, per-motif FASTA files, and a decomposition of the
input against the final motives are written to the output directory.

A model from an earlier run can be reused with -m to skip fitting.`,
	PreRun: bindFlags,
	Run:    runFind,
}

func init() {
	RootCmd.AddCommand(findCmd)
	addPipelineFlags(findCmd)
	findCmd.MarkFlagRequired("in")
}

func runFind(cmd *cobra.Command, args []string) {
	c := config.New()

	logger, err := smod.NewLogger(c.Out)
	if err != nil {
		stderr.Fatalf("failed to open log in %s: %v", c.Out, err)
	}
	runID := smod.NewRunID()

	logger.Printf("run %s: reading positives from %s", runID, c.In)
	pos, err := smod.ReadFasta(c.In, smod.Positive)
	if err != nil {
		stderr.Fatalf("%v", err)
	}

	rng := rand.New(rand.NewSource(c.Seed))

	var model *smod.Model
	if c.Model != "" {
		logger.Printf("run %s: loading model from %s", runID, c.Model)
		if model, err = smod.Load(c.Model); err != nil {
			stderr.Fatalf("%v", err)
		}
	} else {
		neg, err := backgroundSet(c, pos, rng, logger)
		if err != nil {
			stderr.Fatalf("%v", err)
		}
		logger.Printf("run %s: fitting %d positive vs %d background sequences",
			runID, len(pos.Seqs), len(neg.Seqs))
		if model, err = smod.Fit(pos, neg, clusterParams(c)); err != nil {
			stderr.Fatalf("%v", err)
		}
	}

	logger.Printf("run %s: merging and filtering motives", runID)
	motives, err := model.SelectMotives(pos.Seqs, mergeParams(c), c.FreqThreshold(), c.StdThreshold(), rng)
	if err != nil {
		stderr.Fatalf("%v", err)
	}
	logger.Printf("run %s: %d motives selected", runID, len(motives))

	writeArtifacts(c, model, pos, runID, logger)
}

// backgroundSet loads the explicit negative file when one was given and
// synthesizes shuffled negatives otherwise.
func backgroundSet(c config.Config, pos smod.SequenceSet, rng *rand.Rand, logger *log.Logger) (smod.SequenceSet, error) {
	if c.Neg != "" {
		logger.Printf("reading background from %s", c.Neg)
		return smod.ReadFasta(c.Neg, smod.Background)
	}
	logger.Printf("synthesizing background, %d shuffles per sequence and order", c.Times)
	return smod.MakeBackground(pos, c.Times, rng)
}

// writeArtifacts persists the model and renders every report in one pass,
// after all fallible computation has finished.
func writeArtifacts(c config.Config, model *smod.Model, pos smod.SequenceSet, runID string, logger *log.Logger) {
	modelPath := filepath.Join(c.Out, "model.smod")
	if err := model.Save(modelPath); err != nil {
		stderr.Fatalf("%v", err)
	}
	logger.Printf("run %s: model written to %s", runID, modelPath)

	reportPath := filepath.Join(c.Out, "report.md")
	rf, err := os.Create(reportPath)
	if err != nil {
		stderr.Fatalf("failed to create %s: %v", reportPath, err)
	}
	if err := smod.Report(rf, model.Motives, runID); err != nil {
		stderr.Fatalf("failed to write report: %v", err)
	}
	if err := rf.Close(); err != nil {
		stderr.Fatalf("failed to write report: %v", err)
	}

	if err := smod.WriteMotifFiles(c.Out, model.Motives); err != nil {
		stderr.Fatalf("failed to write motif files: %v", err)
	}

	hitsPath := filepath.Join(c.Out, "decomposition.txt")
	hf, err := os.Create(hitsPath)
	if err != nil {
		stderr.Fatalf("failed to create %s: %v", hitsPath, err)
	}
	n, err := smod.WriteHits(hf, model.Decompose(pos.Seqs, c.PValue))
	if err != nil {
		stderr.Fatalf("failed to write decomposition: %v", err)
	}
	if err := hf.Close(); err != nil {
		stderr.Fatalf("failed to write decomposition: %v", err)
	}
	logger.Printf("run %s: %d decomposition hits written to %s", runID, n, hitsPath)
}

// clusterParams maps settings onto the clusterer.
func clusterParams(c config.Config) smod.Params {
	return smod.Params{
		MinSubarraySize: c.MinSubarraySize,
		MaxSubarraySize: c.MaxSubarraySize,
		Complexity:      c.Complexity,
		NClusters:       c.NClusters,
		PosBlockSize:    c.PosBlockSize,
		NegBlockSize:    c.NegBlockSize,
		Workers:         c.Workers,
	}
}

// mergeParams maps settings onto the merger/aligner.
func mergeParams(c config.Config) smod.MergeParams {
	return smod.MergeParams{
		SimilarityTh:   c.SimilarityTh,
		MinScore:       c.MinScore,
		MinFreq:        c.MinFreq,
		MinClusterSize: c.MinClusterSize,
		RegexTh:        c.RegexTh,
		SampleSize:     c.SampleSize,
	}
}
