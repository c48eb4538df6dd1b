package categorizer

import (
	"context"
	"strings"

	"concilia/internal/logging"
	"concilia/internal/models"
)

// keywordConfidence is the fixed confidence reported for a keyword hit.
// Keyword matches are deterministic but coarse, so they sit just above
// the usual pre-fill threshold.
const keywordConfidence = 0.9

// KeywordSuggester categorizes by substring-matching configured keywords
// against the transaction description.
type KeywordSuggester struct {
	categories []models.CategoryConfig
	logger     logging.Logger
}

// NewKeywordSuggester creates a KeywordSuggester from the category store.
// A load failure is logged and leaves the suggester with the built-in
// defaults rather than failing construction.
func NewKeywordSuggester(store *CategoryStore, logger logging.Logger) *KeywordSuggester {
	if logger == nil {
		logger = logging.Default()
	}

	s := &KeywordSuggester{logger: logger}
	categories, err := store.LoadCategories()
	if err != nil {
		logger.WithError(err).Warn("Failed to load categories, using defaults")
		categories = defaultCategories()
	}
	s.categories = categories

	logger.WithField("count", len(s.categories)).Debug("Loaded keyword categories")
	return s
}

// Name identifies the strategy.
func (s *KeywordSuggester) Name() string {
	return "Keyword"
}

// Suggest matches configured keywords against the description,
// case-insensitively. The first matching category wins.
func (s *KeywordSuggester) Suggest(ctx context.Context, description string, direction models.Direction) (Suggestion, bool, error) {
	if strings.TrimSpace(description) == "" {
		return Suggestion{}, false, nil
	}

	upper := strings.ToUpper(description)
	for _, category := range s.categories {
		for _, keyword := range category.Keywords {
			if strings.Contains(upper, strings.ToUpper(keyword)) {
				s.logger.WithFields(
					logging.Field{Key: "strategy", Value: s.Name()},
					logging.Field{Key: "keyword", Value: keyword},
					logging.Field{Key: "category", Value: category.Name},
				).Debug("Description categorized by keyword")
				return Suggestion{Category: category.Name, Confidence: keywordConfidence}, true, nil
			}
		}
	}

	return Suggestion{}, false, nil
}

// defaultCategories is the built-in keyword table used when no YAML file
// is available.
func defaultCategories() []models.CategoryConfig {
	return []models.CategoryConfig{
		{Name: models.CategorySales, Keywords: []string{"venda", "sale", "deposito", "deposit"}},
		{Name: models.CategoryTransfer, Keywords: []string{"pix", "ted", "doc", "transfer"}},
		{Name: "Fees", Keywords: []string{"tarifa", "taxa", "fee"}},
		{Name: "Groceries", Keywords: []string{"mercado", "supermercado", "padaria"}},
		{Name: "Transportation", Keywords: []string{"uber", "99", "combustivel", "posto"}},
	}
}
