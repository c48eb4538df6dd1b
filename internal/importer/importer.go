// Package importer submits parsed transaction candidates to the ledger
// collaborator and classifies the overall result of each batch.
package importer

import (
	"context"

	"concilia/internal/categorizer"
	"concilia/internal/ledger"
	"concilia/internal/logging"
	"concilia/internal/models"
	"concilia/internal/parsererror"
)

// Outcome classifies what happened to a submitted batch as a whole.
type Outcome string

const (
	// OutcomeAllImported means every candidate became a new transaction.
	OutcomeAllImported Outcome = "all_imported"

	// OutcomeAllDuplicates means every candidate already existed.
	OutcomeAllDuplicates Outcome = "all_duplicates"

	// OutcomePartial means some candidates were imported and the rest
	// were duplicates, with no per-row errors.
	OutcomePartial Outcome = "partial"

	// OutcomePartialWithErrors means at least one candidate was rejected
	// by the ledger with an error.
	OutcomePartialWithErrors Outcome = "partial_with_errors"

	// OutcomeEmpty means the batch contained no candidates to submit.
	OutcomeEmpty Outcome = "empty"
)

// Summary reports the result of submitting one batch.
type Summary struct {
	Imported       int
	AlreadyExisted int
	Errors         []string
	Outcome        Outcome
}

// Coordinator pre-fills categories and hands candidate batches to the
// ledger store. It holds no state between submissions.
type Coordinator struct {
	store     ledger.Store
	suggester categorizer.Suggester
	threshold float64
	logger    logging.Logger
}

// NewCoordinator creates a Coordinator. The suggester may be nil, in
// which case candidates keep their seed categories.
func NewCoordinator(store ledger.Store, suggester categorizer.Suggester, threshold float64, logger logging.Logger) *Coordinator {
	if logger == nil {
		logger = logging.Default()
	}
	return &Coordinator{
		store:     store,
		suggester: suggester,
		threshold: threshold,
		logger:    logger,
	}
}

// Submit pre-fills candidate categories, sends the batch to the ledger
// and classifies the result. Per-row errors reported by the ledger are
// carried through verbatim; a failure of the ledger call itself is
// returned as a CollaboratorError alongside whatever partial summary
// the ledger produced.
func (c *Coordinator) Submit(ctx context.Context, candidates []models.TransactionCandidate, accountID int64) (Summary, error) {
	if len(candidates) == 0 {
		return Summary{Outcome: OutcomeEmpty}, nil
	}

	for i := range candidates {
		candidates[i].AccountID = accountID
		c.suggestCategory(ctx, &candidates[i])
	}

	result, err := c.store.CreateTransactionsBatch(ctx, candidates)
	summary := Summary{
		Imported:       result.Imported,
		AlreadyExisted: result.SkippedDuplicates,
		Errors:         result.Errors,
	}
	summary.Outcome = classify(len(candidates), summary)

	if err != nil {
		return summary, &parsererror.CollaboratorError{
			Collaborator: "ledger",
			Operation:    "create transactions batch",
			Err:          err,
		}
	}

	c.logger.Info("Submitted candidate batch",
		logging.Field{Key: "candidates", Value: len(candidates)},
		logging.Field{Key: "imported", Value: summary.Imported},
		logging.Field{Key: "duplicates", Value: summary.AlreadyExisted},
		logging.Field{Key: "errors", Value: len(summary.Errors)},
		logging.Field{Key: "outcome", Value: string(summary.Outcome)})
	return summary, nil
}

// suggestCategory replaces the seed category when the suggester is
// confident enough. Suggestion failures never block the import.
func (c *Coordinator) suggestCategory(ctx context.Context, candidate *models.TransactionCandidate) {
	if c.suggester == nil {
		return
	}

	suggestion, ok, err := c.suggester.Suggest(ctx, candidate.Description, candidate.Direction)
	if err != nil {
		c.logger.WithError(err).Warn("Category suggestion failed",
			logging.Field{Key: "strategy", Value: c.suggester.Name()},
			logging.Field{Key: "description", Value: candidate.Description})
		return
	}
	if !ok || suggestion.Confidence < c.threshold {
		return
	}
	candidate.Category = suggestion.Category
}

func classify(submitted int, s Summary) Outcome {
	switch {
	case len(s.Errors) > 0:
		return OutcomePartialWithErrors
	case s.Imported == submitted:
		return OutcomeAllImported
	case s.AlreadyExisted == submitted:
		return OutcomeAllDuplicates
	default:
		return OutcomePartial
	}
}
