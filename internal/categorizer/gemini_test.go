package categorizer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"concilia/internal/models"
)

func TestGeminiSuggester_ExtractCategory(t *testing.T) {
	s := NewGeminiSuggester("key", "gemini-2.0-flash", []string{"Sales", "Transfer", "Fees"}, testLogger())

	tests := []struct {
		name     string
		response string
		expected string
	}{
		{
			name:     "structured category line",
			response: "Category: Transfer",
			expected: "Transfer",
		},
		{
			name:     "bracketed answer",
			response: "Category: [Fees]",
			expected: "Fees",
		},
		{
			name:     "category line among prose",
			response: "Based on the description this looks like a sale.\nCategory: Sales\nConfidence is high.",
			expected: "Sales",
		},
		{
			name:     "fallback scan for known name",
			response: "This transaction is clearly a Transfer between accounts.",
			expected: "Transfer",
		},
		{
			name:     "no category recognized",
			response: "I cannot determine this.",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, s.extractCategory(tt.response))
		})
	}
}

func TestGeminiSuggester_MissingAPIKey(t *testing.T) {
	s := NewGeminiSuggester("", "gemini-2.0-flash", nil, testLogger())

	_, _, err := s.Suggest(context.Background(), "Pix recebido", models.DirectionCredit)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GEMINI_API_KEY")
}

func TestGeminiSuggester_BlankDescription(t *testing.T) {
	s := NewGeminiSuggester("", "gemini-2.0-flash", nil, testLogger())

	_, ok, err := s.Suggest(context.Background(), "  ", models.DirectionCredit)
	require.NoError(t, err)
	assert.False(t, ok)
}
