package ledger

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"concilia/internal/logging"
	"concilia/internal/models"
	"concilia/internal/parsererror"
)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ledger.yaml")
	return NewFileStore(path, logging.NewLogrusAdapter("error", "text"))
}

func candidate(date, description, amount string, direction models.Direction) models.TransactionCandidate {
	return models.TransactionCandidate{
		Date:        date,
		Description: description,
		Amount:      decimal.RequireFromString(amount),
		Direction:   direction,
		MethodLabel: "Pix",
	}
}

func TestFileStore_MissingFileIsEmptyLedger(t *testing.T) {
	store := newTestStore(t)

	transactions, err := store.ListTransactions(context.Background())
	require.NoError(t, err)
	assert.Empty(t, transactions)

	accounts, err := store.ListAccounts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, accounts)
}

func TestFileStore_CreateTransactionsBatch(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	result, err := store.CreateTransactionsBatch(ctx, []models.TransactionCandidate{
		candidate("2025-12-06", "Pix Maria", "30.00", models.DirectionCredit),
		candidate("2025-12-06", "Pix Bruno", "45.90", models.DirectionDebit),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Imported)
	assert.Zero(t, result.SkippedDuplicates)
	assert.Empty(t, result.Errors)

	transactions, err := store.ListTransactions(ctx)
	require.NoError(t, err)
	require.Len(t, transactions, 2)
	assert.Equal(t, int64(1), transactions[0].ID)
	assert.Equal(t, int64(2), transactions[1].ID)
	assert.Equal(t, models.StatusPaid, transactions[0].Status)
	assert.Equal(t, "30", transactions[0].Amount.String())
}

func TestFileStore_DuplicateDetection(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first, err := store.CreateTransactionsBatch(ctx, []models.TransactionCandidate{
		candidate("2025-12-06", "Pix Maria", "30.00", models.DirectionCredit),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, first.Imported)

	// Same date, direction, amount and description, case-insensitively.
	second, err := store.CreateTransactionsBatch(ctx, []models.TransactionCandidate{
		candidate("2025-12-06", "PIX MARIA", "30.00", models.DirectionCredit),
		candidate("2025-12-07", "Pix Maria", "30.00", models.DirectionCredit),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, second.Imported)
	assert.Equal(t, 1, second.SkippedDuplicates)
}

func TestFileStore_DuplicateInsideSameBatch(t *testing.T) {
	store := newTestStore(t)

	result, err := store.CreateTransactionsBatch(context.Background(), []models.TransactionCandidate{
		candidate("2025-12-06", "Pix Maria", "30.00", models.DirectionCredit),
		candidate("2025-12-06", "Pix Maria", "30.00", models.DirectionCredit),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, 1, result.SkippedDuplicates)
}

func TestFileStore_InvalidCandidateReported(t *testing.T) {
	store := newTestStore(t)

	result, err := store.CreateTransactionsBatch(context.Background(), []models.TransactionCandidate{
		candidate("2025-12-06", "Pix Maria", "30.00", models.DirectionCredit),
		candidate("2025-12-06", "", "30.00", models.DirectionCredit),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "description")
}

func TestFileStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.yaml")
	logger := logging.NewLogrusAdapter("error", "text")
	ctx := context.Background()

	store := NewFileStore(path, logger)
	_, err := store.CreateTransactionsBatch(ctx, []models.TransactionCandidate{
		candidate("2025-12-06", "Pix Maria", "30.00", models.DirectionCredit),
	})
	require.NoError(t, err)

	reopened := NewFileStore(path, logger)
	transactions, err := reopened.ListTransactions(ctx)
	require.NoError(t, err)
	require.Len(t, transactions, 1)
	assert.Equal(t, "Pix Maria", transactions[0].Description)
	assert.Equal(t, "30", transactions[0].Amount.String())
}

func TestFileStore_UpdateTransaction(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.CreateTransactionsBatch(ctx, []models.TransactionCandidate{
		candidate("2025-12-06", "Pix Maria", "30.00", models.DirectionCredit),
	})
	require.NoError(t, err)

	notes := "verified by hand"
	updated, err := store.UpdateTransaction(ctx, 1, TransactionUpdate{Notes: &notes})
	require.NoError(t, err)
	assert.Equal(t, "verified by hand", updated.Notes)

	category := "Fees"
	updated, err = store.UpdateTransaction(ctx, 1, TransactionUpdate{Category: &category})
	require.NoError(t, err)
	assert.Equal(t, "Fees", updated.Category)
	assert.Equal(t, "verified by hand", updated.Notes)
}

func TestFileStore_UpdateUnknownTransaction(t *testing.T) {
	store := newTestStore(t)

	notes := "x"
	_, err := store.UpdateTransaction(context.Background(), 999, TransactionUpdate{Notes: &notes})
	require.Error(t, err)

	var nfErr *parsererror.NotFoundError
	assert.ErrorAs(t, err, &nfErr)
}

func TestFileStore_Seed(t *testing.T) {
	store := newTestStore(t)

	err := store.Seed(
		[]models.LedgerTransaction{{
			ID:     42,
			Amount: decimal.RequireFromString("10.00"),
			Status: models.StatusPaid,
		}},
		[]models.Account{{ID: 7, Name: "Banco Azul", Status: "active"}},
	)
	require.NoError(t, err)

	accounts, err := store.ListAccounts(context.Background())
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, "Banco Azul", accounts[0].Name)
}
