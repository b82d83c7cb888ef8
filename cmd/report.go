package cmd

import (
	"os"
	"path/filepath"

	"github.com/fabriziocosta/SMoD/config"
	"github.com/fabriziocosta/SMoD/internal/smod"
	"github.com/spf13/cobra"
)

// reportCmd re-renders the reports of a saved model without refitting.
var reportCmd = &cobra.Command{
	Use:   "report",
	Short:  "Regenerate the Markdown report and motif FASTA files from a saved model",
	PreRun: bindFlags,
	Run:    runReport,
}

func init() {
	RootCmd.AddCommand(reportCmd)
	addPipelineFlags(reportCmd)
	reportCmd.MarkFlagRequired("model")
}

func runReport(cmd *cobra.Command, args []string) {
	c := config.New()

	logger, err := smod.NewLogger(c.Out)
	if err != nil {
		stderr.Fatalf("failed to open log in %s: %v", c.Out, err)
	}
	runID := smod.NewRunID()

	model, err := smod.Load(c.Model)
	if err != nil {
		stderr.Fatalf("%v", err)
	}
	if len(model.Motives) == 0 {
		stderr.Fatalf("model %s holds no motives; run \"smod find\" first", c.Model)
	}

	reportPath := filepath.Join(c.Out, "report.md")
	f, err := os.Create(reportPath)
	if err != nil {
		stderr.Fatalf("failed to create %s: %v", reportPath, err)
	}
	if err := smod.Report(f, model.Motives, runID); err != nil {
		stderr.Fatalf("failed to write report: %v", err)
	}
	if err := f.Close(); err != nil {
		stderr.Fatalf("failed to write report: %v", err)
	}

	if err := smod.WriteMotifFiles(c.Out, model.Motives); err != nil {
		stderr.Fatalf("failed to write motif files: %v", err)
	}
	logger.Printf("run %s: report regenerated for %d motives in %s", runID, len(model.Motives), c.Out)
}
