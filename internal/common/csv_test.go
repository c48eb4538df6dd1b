package common

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"concilia/internal/logging"
	"concilia/internal/models"
)

func TestWriteCandidatesToCSV(t *testing.T) {
	SetDelimiter(',')
	path := filepath.Join(t.TempDir(), "out", "candidates.csv")

	candidates := []models.TransactionCandidate{
		{
			Date:        "2025-12-06",
			Time:        "15:49:20",
			Description: "Pix Maria Silva",
			Amount:      decimal.RequireFromString("30.00"),
			Direction:   models.DirectionCredit,
			Category:    models.CategoryTransfer,
		},
	}

	err := WriteCandidatesToCSV(candidates, path, logging.NewLogrusAdapter("error", "text"))
	require.NoError(t, err)

	data, err := os.ReadFile(path) // #nosec G304 -- test-owned temp path
	require.NoError(t, err)
	content := string(data)

	lines := strings.Split(strings.TrimSpace(content), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "Date")
	assert.Contains(t, lines[0], "Amount")
	assert.Contains(t, lines[1], "2025-12-06")
	assert.Contains(t, lines[1], "Pix Maria Silva")
	assert.Contains(t, lines[1], "credit")
}

func TestWriteCandidatesToCSV_NilInput(t *testing.T) {
	err := WriteCandidatesToCSV(nil, filepath.Join(t.TempDir(), "out.csv"), nil)
	assert.Error(t, err)
}

func TestWriteCandidatesToCSV_EmptySlice(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	err := WriteCandidatesToCSV([]models.TransactionCandidate{}, path, logging.NewLogrusAdapter("error", "text"))
	require.NoError(t, err)

	data, err := os.ReadFile(path) // #nosec G304 -- test-owned temp path
	require.NoError(t, err)
	assert.Contains(t, string(data), "Date")
}
