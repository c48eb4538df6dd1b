// Package statement turns raw statement text into typed, signed,
// classified transaction candidates: layout detection, row tokenization
// and batch assembly.
package statement

import (
	"fmt"
	"io"
	"strings"
	"time"

	"concilia/internal/amountutils"
	"concilia/internal/classifier"
	"concilia/internal/dateutils"
	"concilia/internal/logging"
	"concilia/internal/models"
	"concilia/internal/parsererror"
	"concilia/internal/textutils"
)

// SkippedRow records one malformed row that was skipped without aborting
// the batch.
type SkippedRow struct {
	LineNumber int
	Reason     string
}

// Batch is the result of assembling one document: every data row is
// accounted for either as a candidate or as a skipped entry.
type Batch struct {
	Layout     models.DetectedLayout
	Candidates []models.TransactionCandidate
	Skipped    []SkippedRow
}

// Skip reasons surfaced per row.
const (
	ReasonTooFewColumns = "too few columns"
	ReasonMissingDate   = "missing date"
	ReasonInvalidValue  = "invalid value"
)

// minColumns is the minimum number of tokens for a row to be parseable.
const minColumns = 4

// Parser assembles statement documents into candidate batches.
type Parser struct {
	logger  logging.Logger
	amounts amountutils.Options
	now     func() time.Time
}

// NewParser creates a Parser. A nil logger falls back to the default
// logrus adapter.
func NewParser(logger logging.Logger, amounts amountutils.Options) *Parser {
	if logger == nil {
		logger = logging.Default()
	}
	return &Parser{
		logger:  logger,
		amounts: amounts,
		now:     time.Now,
	}
}

// Parse reads a whole statement document: decodes and repairs the text,
// detects the layout from the first non-blank line and assembles every
// following data row.
func (p *Parser) Parse(r io.Reader, accountID int64) (*Batch, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading input: %w", err)
	}

	text, err := textutils.DecodeUpload(data)
	if err != nil {
		return nil, err
	}

	lines := splitLines(text)
	if len(lines) == 0 {
		return nil, &parsererror.ValidationError{
			Source: "upload",
			Reason: "document is empty",
		}
	}

	layout := DetectLayout(lines[0])
	p.logger.Info("Detected statement layout",
		logging.Field{Key: "layout", Value: string(layout.Kind)},
		logging.Field{Key: "delimiter", Value: string(layout.Delimiter)})

	return p.Assemble(lines[1:], layout, accountID)
}

// Assemble drives per-row parsing over the data lines of a document. A
// single row's failure never aborts the batch: the row is skipped with a
// reason and every other row is still attempted. A non-empty input that
// yields zero candidates is a whole-batch failure.
func (p *Parser) Assemble(lines []string, layout models.DetectedLayout, accountID int64) (*Batch, error) {
	batch := &Batch{Layout: layout}

	lineNumber := 1 // header is line 1
	for _, line := range lines {
		lineNumber++
		if strings.TrimSpace(line) == "" {
			continue
		}

		candidate, reason := p.parseRow(line, layout, accountID)
		if reason != "" {
			p.logger.Warn("Skipping malformed statement row",
				logging.Field{Key: "line", Value: lineNumber},
				logging.Field{Key: "reason", Value: reason})
			batch.Skipped = append(batch.Skipped, SkippedRow{LineNumber: lineNumber, Reason: reason})
			continue
		}
		batch.Candidates = append(batch.Candidates, *candidate)
	}

	if len(batch.Candidates) == 0 && len(batch.Skipped) > 0 {
		return batch, &parsererror.EmptyBatchError{
			RowCount: len(batch.Skipped),
			Guidance: "expected a delimited statement with at least date, description and value columns, e.g. \"Data,Hora,Tipo de transação,Nome,Detalhe,Valor (R$)\"",
		}
	}

	return batch, nil
}

// parseRow parses one data row. It returns a candidate, or a non-empty
// skip reason.
func (p *Parser) parseRow(line string, layout models.DetectedLayout, accountID int64) (*models.TransactionCandidate, string) {
	tokens := TokenizeRow(line, layout.Delimiter)
	if len(tokens) < minColumns {
		return nil, ReasonTooFewColumns
	}

	cols := layout.Columns
	field := func(idx int) string {
		if idx >= 0 && idx < len(tokens) {
			return tokens[idx]
		}
		return ""
	}

	rawDate := field(cols.Date)
	if strings.TrimSpace(rawDate) == "" {
		return nil, ReasonMissingDate
	}

	valueToken := p.valueToken(tokens, cols, layout.Delimiter)
	magnitude, negative := amountutils.Extract(valueToken, p.amounts)
	if magnitude.IsZero() {
		return nil, ReasonInvalidValue
	}

	typeLabel := field(cols.Type)
	detailLabel := field(cols.Detail)
	counterparty := field(cols.Counterparty)

	grossToken := field(cols.Gross)
	gross, _ := amountutils.Extract(grossToken, p.amounts)

	datePart, embeddedTime := dateutils.SplitDateTime(rawDate)
	timeOfDay := field(cols.Time)
	if timeOfDay == "" {
		timeOfDay = embeddedTime
	}

	direction := classifier.DetermineDirection(layout.Kind, typeLabel, detailLabel, negative, gross.IsPositive())

	description := strings.TrimSpace(counterparty)
	if description == "" {
		description = strings.TrimSpace(typeLabel + " " + detailLabel)
	}
	if description == "" {
		description = "Imported transaction"
	}
	if len(description) > models.DescriptionMaxLen {
		description = description[:models.DescriptionMaxLen]
	}

	candidate := &models.TransactionCandidate{
		Date:             dateutils.NormalizeDate(datePart),
		Time:             timeOfDay,
		Description:      description,
		Amount:           magnitude,
		GrossAmount:      gross,
		Direction:        direction,
		CounterpartyName: counterparty,
		MethodLabel:      typeLabel,
		DetailLabel:      detailLabel,
		Category:         classifier.SeedCategory(typeLabel),
		AccountID:        accountID,
	}
	candidate.AuditNote = p.auditNote(candidate, rawDate, valueToken, grossToken)

	return candidate, ""
}

// valueToken extracts the raw value field. When the value column is the
// last resolved column, trailing tokens are rejoined: an unquoted
// comma-decimal value ("30,00") splits under a comma delimiter.
func (p *Parser) valueToken(tokens []string, cols models.ReportColumns, delimiter rune) string {
	if cols.Net == models.ColumnUnresolved || cols.Net >= len(tokens) {
		return ""
	}
	if cols.Net == maxColumn(cols) && cols.Net < len(tokens)-1 {
		return strings.Join(tokens[cols.Net:], string(delimiter))
	}
	return tokens[cols.Net]
}

func maxColumn(cols models.ReportColumns) int {
	max := cols.Net
	for _, idx := range []int{cols.Date, cols.Time, cols.Type, cols.Counterparty, cols.Detail, cols.Gross} {
		if idx > max {
			max = idx
		}
	}
	return max
}

// auditNote assembles the free-text audit trail: every raw field, the fee
// computation and the import timestamp, for human traceability.
func (p *Parser) auditNote(c *models.TransactionCandidate, rawDate, valueToken, grossToken string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Imported %s", p.now().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, " | date=%s", rawDate)
	if c.Time != "" {
		fmt.Fprintf(&b, " | time=%s", c.Time)
	}
	fmt.Fprintf(&b, " | type=%s | name=%s | detail=%s | value=%s",
		c.MethodLabel, c.CounterpartyName, c.DetailLabel, valueToken)
	if c.HasGross() {
		fmt.Fprintf(&b, " | gross=%s | fee=%s", grossToken, c.Fee().StringFixed(2))
	}
	return b.String()
}

// splitLines breaks the document into lines, tolerating CRLF endings and
// dropping a trailing empty line.
func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.TrimRight(text, "\n")
	if strings.TrimSpace(text) == "" {
		return nil
	}
	return strings.Split(text, "\n")
}
