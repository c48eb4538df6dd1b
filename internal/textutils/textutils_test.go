package textutils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"concilia/internal/parsererror"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "repairs double-encoded cedilla",
			input:    "TransferÃªncia concluÃ­da",
			expected: "Transferência concluída",
		},
		{
			name:     "repairs tilde a",
			input:    "Tipo de transaÃ§Ã£o",
			expected: "Tipo de transação",
		},
		{
			name:     "clean text passes through unchanged",
			input:    "Pagamento de cartão",
			expected: "Pagamento de cartão",
		},
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "ascii only",
			input:    "Data,Hora,Valor",
			expected: "Data,Hora,Valor",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.input))
		})
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	input := "TransaÃ§Ã£o recebida"
	once := Normalize(input)
	twice := Normalize(once)
	assert.Equal(t, once, twice)
}

func TestFoldHeader(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "lowercases and strips accents",
			input:    "Tipo de Transação",
			expected: "tipo de transacao",
		},
		{
			name:     "repairs mojibake before folding",
			input:    "Tipo de TransaÃ§Ã£o",
			expected: "tipo de transacao",
		},
		{
			name:     "collapses whitespace runs",
			input:    "  Valor   Líquido ",
			expected: "valor liquido",
		},
		{
			name:     "currency marker preserved",
			input:    "Valor (R$)",
			expected: "valor (r$)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FoldHeader(tt.input))
		})
	}
}

func TestDecodeUpload_UTF8(t *testing.T) {
	text, err := DecodeUpload([]byte("Data,Hora,Valor\n2025-12-06,10:00:00,30,00\n"))
	require.NoError(t, err)
	assert.Contains(t, text, "2025-12-06")
}

func TestDecodeUpload_Latin1(t *testing.T) {
	// "Transação" encoded as ISO-8859-1: ç=0xE7, ã=0xE3.
	raw := []byte{'T', 'r', 'a', 'n', 's', 'a', 0xE7, 0xE3, 'o'}
	text, err := DecodeUpload(raw)
	require.NoError(t, err)
	assert.Equal(t, "Transação", text)
}

func TestDecodeUpload_RepairsMojibake(t *testing.T) {
	text, err := DecodeUpload([]byte("TransaÃ§Ã£o"))
	require.NoError(t, err)
	assert.Equal(t, "Transação", text)
}

func TestDecodeUpload_Oversized(t *testing.T) {
	data := []byte(strings.Repeat("a", MaxUploadBytes+1))
	_, err := DecodeUpload(data)
	require.Error(t, err)

	var verr *parsererror.ValidationError
	assert.ErrorAs(t, err, &verr)
}
