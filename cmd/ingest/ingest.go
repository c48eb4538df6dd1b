// Package ingest handles the statement import command
package ingest

import (
	"os"

	"concilia/cmd/root"
	"concilia/internal/amountutils"
	"concilia/internal/common"
	"concilia/internal/importer"
	"concilia/internal/logging"
	"concilia/internal/statement"

	"github.com/spf13/cobra"
)

var submit bool

// Cmd represents the import command
var Cmd = &cobra.Command{
	Use:   "import",
	Short: "Parse a bank statement report",
	Long: `Parse a bank statement report into transaction candidates. The
candidates can be exported to CSV, submitted to the ledger, or both.`,
	Run: importFunc,
}

func init() {
	Cmd.Flags().BoolVar(&submit, "submit", false, "Submit parsed candidates to the ledger")
}

func importFunc(cmd *cobra.Command, args []string) {
	if root.SharedFlags.Input == "" {
		root.Log.Fatal("Input file is required")
	}

	file, err := os.Open(root.SharedFlags.Input) // #nosec G304 -- CLI tool requires user-provided file paths
	if err != nil {
		root.Log.Fatalf("Error opening input file: %v", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			root.Log.WithError(err).Warn("Failed to close file")
		}
	}()

	opts := amountutils.Options{PlausibilityCorrection: root.Cfg.Amounts.PlausibilityCorrection}
	parser := statement.NewParser(root.Log, opts)

	batch, err := parser.Parse(file, root.SharedFlags.AccountID)
	if err != nil {
		root.Log.Fatalf("Error parsing statement: %v", err)
	}

	root.Log.Info("Parsed statement",
		logging.Field{Key: "layout", Value: string(batch.Layout.Kind)},
		logging.Field{Key: "candidates", Value: len(batch.Candidates)},
		logging.Field{Key: "skipped", Value: len(batch.Skipped)})
	for _, skipped := range batch.Skipped {
		root.Log.Warn("Skipped row",
			logging.Field{Key: "line", Value: skipped.LineNumber},
			logging.Field{Key: "reason", Value: skipped.Reason})
	}

	if root.SharedFlags.Output != "" {
		if err := common.WriteCandidatesToCSV(batch.Candidates, root.SharedFlags.Output, root.Log); err != nil {
			root.Log.Fatalf("Error writing CSV: %v", err)
		}
	}

	if submit {
		coordinator := importer.NewCoordinator(
			root.NewStore(),
			root.NewSuggester(),
			root.Cfg.Categorization.ConfidenceThreshold,
			root.Log,
		)
		summary, err := coordinator.Submit(cmd.Context(), batch.Candidates, root.SharedFlags.AccountID)
		if err != nil {
			root.Log.Fatalf("Error submitting candidates: %v", err)
		}
		root.Log.Info("Import finished",
			logging.Field{Key: "imported", Value: summary.Imported},
			logging.Field{Key: "duplicates", Value: summary.AlreadyExisted},
			logging.Field{Key: "errors", Value: len(summary.Errors)},
			logging.Field{Key: "outcome", Value: string(summary.Outcome)})
		for _, e := range summary.Errors {
			root.Log.Warn("Rejected candidate", logging.Field{Key: "error", Value: e})
		}
	}
}
