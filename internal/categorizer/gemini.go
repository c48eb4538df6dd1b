package categorizer

import (
	"context"
	"fmt"
	"strings"

	"concilia/internal/logging"
	"concilia/internal/models"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// geminiConfidence is the confidence reported for a Gemini suggestion.
// The model is asked to pick from a closed category list, so a parsed
// answer is trusted fairly highly.
const geminiConfidence = 0.85

// GeminiSuggester asks the Gemini API to pick a category from the
// configured list. The client is created lazily on first use so that a
// missing API key only fails when the strategy actually runs.
type GeminiSuggester struct {
	apiKey     string
	modelName  string
	categories []string
	logger     logging.Logger

	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGeminiSuggester creates a GeminiSuggester. The category names give
// the model its closed answer set; an empty list falls back to the
// built-in defaults.
func NewGeminiSuggester(apiKey, modelName string, categories []string, logger logging.Logger) *GeminiSuggester {
	if logger == nil {
		logger = logging.Default()
	}
	if len(categories) == 0 {
		for _, c := range defaultCategories() {
			categories = append(categories, c.Name)
		}
	}
	return &GeminiSuggester{
		apiKey:     apiKey,
		modelName:  modelName,
		categories: categories,
		logger:     logger,
	}
}

// Name identifies the strategy.
func (s *GeminiSuggester) Name() string {
	return "Gemini"
}

func (s *GeminiSuggester) ensureClient(ctx context.Context) error {
	if s.client != nil {
		return nil
	}
	if s.apiKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(s.apiKey))
	if err != nil {
		return fmt.Errorf("failed to create Gemini client: %w", err)
	}
	s.client = client
	s.model = client.GenerativeModel(s.modelName)
	return nil
}

// Suggest asks the model to assign one of the configured categories to
// the transaction description.
func (s *GeminiSuggester) Suggest(ctx context.Context, description string, direction models.Direction) (Suggestion, bool, error) {
	if strings.TrimSpace(description) == "" {
		return Suggestion{}, false, nil
	}
	if err := s.ensureClient(ctx); err != nil {
		return Suggestion{}, false, err
	}

	prompt := fmt.Sprintf(`Categorize the following financial transaction:
Description: %s
Direction: %s

Please assign this transaction to exactly one of the following categories:
%s

Respond in this format:
Category: [Selected Category Name]`,
		description,
		direction,
		strings.Join(s.categories, ", "))

	resp, err := s.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return Suggestion{}, false, fmt.Errorf("Gemini API error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return Suggestion{}, false, fmt.Errorf("no response from Gemini API")
	}

	responseText := fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0])
	category := s.extractCategory(responseText)
	if category == "" {
		return Suggestion{}, false, nil
	}

	s.logger.WithFields(
		logging.Field{Key: "strategy", Value: s.Name()},
		logging.Field{Key: "category", Value: category},
	).Debug("Description categorized by Gemini")

	return Suggestion{Category: category, Confidence: geminiConfidence}, true, nil
}

// extractCategory parses the model response, preferring the structured
// "Category:" line and falling back to scanning for a known name.
func (s *GeminiSuggester) extractCategory(response string) string {
	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "Category:") {
			name := strings.TrimSpace(strings.TrimPrefix(line, "Category:"))
			name = strings.Trim(name, "[]")
			if name != "" {
				return name
			}
		}
	}
	for _, known := range s.categories {
		if strings.Contains(response, known) {
			return known
		}
	}
	return ""
}
