// Package common provides shared CSV export helpers used by the CLI.
package common

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"concilia/internal/logging"
	"concilia/internal/models"

	"github.com/gocarina/gocsv"
)

// Delimiter is the rune used between CSV fields on export.
var Delimiter rune = ','

// SetDelimiter allows setting the delimiter for CSV output
func SetDelimiter(delim rune) {
	Delimiter = delim
	gocsv.TagSeparator = fmt.Sprintf("%c", delim)
}

// WriteCandidatesToCSV writes parsed transaction candidates to a CSV
// file. Amounts are fixed to two decimal places before writing.
func WriteCandidatesToCSV(candidates []models.TransactionCandidate, csvFile string, logger logging.Logger) error {
	if candidates == nil {
		return fmt.Errorf("cannot write nil candidates to CSV")
	}
	if logger == nil {
		logger = logging.Default()
	}

	logger.Info("Writing candidates to CSV file",
		logging.Field{Key: "file", Value: csvFile},
		logging.Field{Key: "count", Value: len(candidates)})

	dir := filepath.Dir(csvFile)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}

	file, err := os.Create(csvFile) // #nosec G304 -- CLI tool writes user-provided output paths
	if err != nil {
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.WithError(err).Warn("Failed to close file")
		}
	}()

	for i := range candidates {
		candidates[i].Amount = candidates[i].Amount.Round(2)
		if candidates[i].HasGross() {
			candidates[i].GrossAmount = candidates[i].GrossAmount.Round(2)
		}
	}

	csvWriter := csv.NewWriter(file)
	csvWriter.Comma = Delimiter

	if err := gocsv.MarshalCSV(candidates, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		return fmt.Errorf("error writing CSV data: %w", err)
	}

	logger.Info("Successfully wrote candidates to CSV file",
		logging.Field{Key: "file", Value: csvFile},
		logging.Field{Key: "count", Value: len(candidates)})
	return nil
}
