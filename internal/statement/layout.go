package statement

import (
	"strings"

	"concilia/internal/models"
	"concilia/internal/textutils"
)

// layoutRule pairs a header predicate with the builder for its layout.
// Rules are evaluated in order; the first match wins, so the more specific
// provider-native rule sits above the gross/net report rule.
type layoutRule struct {
	name    string
	matches func(folded []string, joined string) bool
	build   func(folded []string, delimiter rune) models.DetectedLayout
}

var layoutRules = []layoutRule{
	{
		name: "provider-native",
		matches: func(_ []string, joined string) bool {
			for _, required := range []string{"data", "hora", "tipo de transa", "nome", "detalhe", "valor"} {
				if !strings.Contains(joined, required) {
					return false
				}
			}
			return true
		},
		build: buildProviderNative,
	},
	{
		name: "gross-net-report",
		matches: func(_ []string, joined string) bool {
			if strings.Contains(joined, "relatorio") {
				return true
			}
			return strings.Contains(joined, "valor") &&
				(strings.Contains(joined, "liquido") || strings.Contains(joined, "bruto"))
		},
		build: buildGrossNetReport,
	},
}

// DetectLayout determines the field delimiter and column layout of a
// document from its header line. It never fails: an unrecognized header
// yields the generic fallback layout.
func DetectLayout(headerLine string) models.DetectedLayout {
	delimiter := ','
	if strings.Count(headerLine, ";") > strings.Count(headerLine, ",") {
		delimiter = ';'
	}

	fields := TokenizeRow(headerLine, delimiter)
	folded := make([]string, len(fields))
	for i, f := range fields {
		folded[i] = textutils.FoldHeader(f)
	}
	joined := strings.Join(folded, ";")

	for _, rule := range layoutRules {
		if rule.matches(folded, joined) {
			return rule.build(folded, delimiter)
		}
	}

	return buildGeneric(delimiter)
}

// findColumn returns the index of the first folded header cell satisfying
// the predicate, or ColumnUnresolved.
func findColumn(folded []string, pred func(string) bool) int {
	for i, cell := range folded {
		if pred(cell) {
			return i
		}
	}
	return models.ColumnUnresolved
}

func contains(sub string) func(string) bool {
	return func(cell string) bool { return strings.Contains(cell, sub) }
}

func buildProviderNative(folded []string, delimiter rune) models.DetectedLayout {
	return models.DetectedLayout{
		Kind:      models.LayoutProviderNative,
		Delimiter: delimiter,
		Columns: models.ReportColumns{
			Date: findColumn(folded, func(c string) bool {
				return strings.Contains(c, "data") && !strings.Contains(c, "hora")
			}),
			Time:         findColumn(folded, contains("hora")),
			Type:         findColumn(folded, contains("tipo")),
			Counterparty: findColumn(folded, contains("nome")),
			Detail:       findColumn(folded, contains("detalhe")),
			Gross:        models.ColumnUnresolved,
			Net:          findColumn(folded, contains("valor")),
		},
	}
}

func buildGrossNetReport(folded []string, delimiter rune) models.DetectedLayout {
	net := findColumn(folded, contains("liquido"))
	gross := findColumn(folded, func(c string) bool {
		return strings.Contains(c, "valor") &&
			!strings.Contains(c, "liquido") &&
			(strings.Contains(c, "r$") || strings.Contains(c, "$") || strings.Contains(c, "bruto"))
	})
	date := findColumn(folded, contains("data"))
	timeCol := findColumn(folded, func(c string) bool {
		return strings.Contains(c, "hora") && !strings.Contains(c, "data")
	})
	typeCol := findColumn(folded, func(c string) bool {
		return strings.Contains(c, "tipo") || strings.Contains(c, "bandeira") || strings.Contains(c, "meio")
	})
	counterparty := findColumn(folded, func(c string) bool {
		return strings.Contains(c, "nome") || strings.Contains(c, "descricao") ||
			strings.Contains(c, "cliente") || strings.Contains(c, "origem")
	})
	detail := findColumn(folded, contains("detalhe"))

	return models.DetectedLayout{
		Kind:      models.LayoutGrossNetReport,
		Delimiter: delimiter,
		Columns: models.ReportColumns{
			Date:         date,
			Time:         timeCol,
			Type:         typeCol,
			Counterparty: counterparty,
			Detail:       detail,
			Gross:        gross,
			Net:          net,
		},
	}
}

// buildGeneric assumes the minimal four-column shape: date, description,
// detail, value.
func buildGeneric(delimiter rune) models.DetectedLayout {
	return models.DetectedLayout{
		Kind:      models.LayoutGeneric,
		Delimiter: delimiter,
		Columns: models.ReportColumns{
			Date:         0,
			Time:         models.ColumnUnresolved,
			Type:         models.ColumnUnresolved,
			Counterparty: 1,
			Detail:       2,
			Gross:        models.ColumnUnresolved,
			Net:          3,
		},
	}
}
