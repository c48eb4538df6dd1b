package statement

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"concilia/internal/amountutils"
	"concilia/internal/logging"
	"concilia/internal/models"
	"concilia/internal/parsererror"
)

func newTestParser() *Parser {
	return NewParser(logging.NewLogrusAdapter("error", "text"), amountutils.DefaultOptions())
}

func TestParse_ProviderNativeRow(t *testing.T) {
	doc := "Data,Hora,Tipo de transação,Nome,Detalhe,Valor (R$)\n" +
		"2025-12-06,15:49:20,Pix,Maria Silva,Recebido,30,00\n"

	batch, err := newTestParser().Parse(strings.NewReader(doc), 7)
	require.NoError(t, err)
	require.Len(t, batch.Candidates, 1)
	assert.Empty(t, batch.Skipped)

	c := batch.Candidates[0]
	assert.Equal(t, "2025-12-06", c.Date)
	assert.Equal(t, "15:49:20", c.Time)
	assert.Equal(t, models.DirectionCredit, c.Direction)
	assert.Equal(t, "30", c.Amount.String())
	assert.Equal(t, models.CategoryTransfer, c.Category)
	assert.Contains(t, c.Description, "Maria Silva")
	assert.Equal(t, int64(7), c.AccountID)
	assert.Contains(t, c.AuditNote, "value=30,00")
}

func TestParse_ParenthesizedValueIsDebit(t *testing.T) {
	doc := "Data,Hora,Tipo de transação,Nome,Detalhe,Valor (R$)\n" +
		`2025-12-06,10:00:00,Pagamento,Loja Central,Compra,"(45,90)"` + "\n"

	batch, err := newTestParser().Parse(strings.NewReader(doc), 0)
	require.NoError(t, err)
	require.Len(t, batch.Candidates, 1)

	c := batch.Candidates[0]
	assert.Equal(t, models.DirectionDebit, c.Direction)
	assert.Equal(t, "45.9", c.Amount.String())
}

func TestParse_GrossNetReportRow(t *testing.T) {
	doc := "Data,Nome,Tipo,Valor (R$),Valor líquido (R$)\n" +
		`2025-12-06,Cliente A,Cartão,"100,00","95,00"` + "\n"

	batch, err := newTestParser().Parse(strings.NewReader(doc), 0)
	require.NoError(t, err)
	require.Len(t, batch.Candidates, 1)

	c := batch.Candidates[0]
	assert.Equal(t, "95", c.Amount.String())
	assert.Equal(t, "100", c.GrossAmount.String())
	assert.Equal(t, "5.00", c.Fee().StringFixed(2))
	assert.Contains(t, c.AuditNote, "fee=5.00")
	assert.Equal(t, models.DirectionCredit, c.Direction)
}

func TestParse_SkipsMalformedRowWithoutAbortingBatch(t *testing.T) {
	doc := "Data,Hora,Tipo de transação,Nome,Detalhe,Valor (R$)\n" +
		"2025-12-01,09:00:00,Pix,Ana,Recebido,10,00\n" +
		"2025-12-02,09:30:00,Pix,Bruno,Recebido,20,00\n" +
		"2025-12-03,broken\n" +
		"2025-12-04,11:00:00,Pix,Carla,Recebido,40,00\n" +
		"2025-12-05,12:00:00,Pix,Davi,Recebido,50,00\n"

	batch, err := newTestParser().Parse(strings.NewReader(doc), 0)
	require.NoError(t, err)
	assert.Len(t, batch.Candidates, 4)
	require.Len(t, batch.Skipped, 1)
	assert.Equal(t, ReasonTooFewColumns, batch.Skipped[0].Reason)
	assert.Equal(t, 4, batch.Skipped[0].LineNumber)
}

func TestParse_EveryRowAccountedFor(t *testing.T) {
	doc := "Data,Hora,Tipo de transação,Nome,Detalhe,Valor (R$)\n" +
		"2025-12-01,09:00:00,Pix,Ana,Recebido,10,00\n" +
		",09:30:00,Pix,Bruno,Recebido,20,00\n" +
		"2025-12-03,10:00:00,Pix,Carla,Recebido,abc\n" +
		"\n" +
		"2025-12-05,12:00:00,Pix,Davi,Recebido,50,00\n"

	batch, err := newTestParser().Parse(strings.NewReader(doc), 0)
	require.NoError(t, err)

	// 4 non-blank data rows: 2 candidates, 2 skipped with reasons.
	assert.Len(t, batch.Candidates, 2)
	require.Len(t, batch.Skipped, 2)
	assert.Equal(t, ReasonMissingDate, batch.Skipped[0].Reason)
	assert.Equal(t, ReasonInvalidValue, batch.Skipped[1].Reason)
}

func TestParse_AllRowsMalformedFailsBatch(t *testing.T) {
	doc := "Data,Hora,Tipo de transação,Nome,Detalhe,Valor (R$)\n" +
		"garbage\n" +
		"more,garbage\n"

	batch, err := newTestParser().Parse(strings.NewReader(doc), 0)
	require.Error(t, err)

	var batchErr *parsererror.EmptyBatchError
	require.ErrorAs(t, err, &batchErr)
	assert.Equal(t, 2, batchErr.RowCount)
	assert.NotEmpty(t, batchErr.Guidance)
	assert.Len(t, batch.Skipped, 2)
}

func TestParse_EmptyDocument(t *testing.T) {
	_, err := newTestParser().Parse(strings.NewReader(""), 0)
	require.Error(t, err)

	var verr *parsererror.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestParse_GenericLayoutWithEmbeddedDateTime(t *testing.T) {
	doc := "When,Who,What,HowMuch\n" +
		`2025-12-06 15:49:20,Maria,transfer received,"30,00"` + "\n"

	batch, err := newTestParser().Parse(strings.NewReader(doc), 0)
	require.NoError(t, err)
	require.Len(t, batch.Candidates, 1)

	c := batch.Candidates[0]
	assert.Equal(t, "2025-12-06", c.Date)
	assert.Equal(t, "15:49:20", c.Time)
	assert.Equal(t, models.DirectionCredit, c.Direction)
}

func TestParse_LatinOneDocument(t *testing.T) {
	header := "Data,Hora,Tipo de transa\xe7\xe3o,Nome,Detalhe,Valor (R$)\n"
	row := "2025-12-06,15:49:20,Pix,Jo\xe3o,Recebido,30,00\n"

	batch, err := newTestParser().Parse(strings.NewReader(header+row), 0)
	require.NoError(t, err)
	require.Len(t, batch.Candidates, 1)
	assert.Equal(t, models.LayoutProviderNative, batch.Layout.Kind)
	assert.Equal(t, "João", batch.Candidates[0].Description)
}

func TestParse_DescriptionFallsBackToTypeAndDetail(t *testing.T) {
	doc := "Data,Hora,Tipo de transação,Nome,Detalhe,Valor (R$)\n" +
		"2025-12-06,10:00:00,Pix,,Recebido,30,00\n"

	batch, err := newTestParser().Parse(strings.NewReader(doc), 0)
	require.NoError(t, err)
	require.Len(t, batch.Candidates, 1)
	assert.Equal(t, "Pix Recebido", batch.Candidates[0].Description)
}
