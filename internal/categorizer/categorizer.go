// Package categorizer provides the category suggestion collaborator
// consumed by the import coordinator. The engine only depends on the
// Suggester interface; the keyword and Gemini strategies are reference
// implementations selected by configuration.
package categorizer

import (
	"context"

	"concilia/internal/models"
)

// Suggestion is a category proposal with the strategy's confidence in it.
type Suggestion struct {
	Category   string
	Confidence float64
}

// Suggester proposes a category for a transaction description. The second
// return value reports whether a suggestion was produced at all.
type Suggester interface {
	Suggest(ctx context.Context, description string, direction models.Direction) (Suggestion, bool, error)

	// Name identifies the strategy for logging and debugging.
	Name() string
}
