// Package classifier maps a row's textual hints to a credit/debit
// direction and a coarse seed category. Explicit textual cues always
// outrank the bare numeric sign because export sign conventions vary by
// provider and are the least reliable signal.
package classifier

import (
	"strings"

	"concilia/internal/models"
	"concilia/internal/textutils"
)

var (
	creditTypeHints = []string{"deposit", "deposito", "sales", "venda"}
	cardRailHints   = []string{"card", "cartao", "deposit", "deposito"}

	creditDetailHints = []string{"received", "recebido", "recebida", "inflow", "entrada", "refunded", "reembols", "estorn"}
	debitDetailHints  = []string{"sent", "enviado", "enviada", "outflow", "saida", "payment", "pagamento"}
)

func containsAny(folded string, hints []string) bool {
	for _, hint := range hints {
		if strings.Contains(folded, hint) {
			return true
		}
	}
	return false
}

// DetermineDirection resolves the direction of a parsed row from its type
// and detail labels, falling back to the extracted numeric sign when no
// textual cue matches. grossPositive reports whether the row carried a
// positive gross amount, a credit cue under report layouts.
func DetermineDirection(kind models.LayoutKind, typeLabel, detailLabel string, negative, grossPositive bool) models.Direction {
	typeFolded := textutils.FoldHeader(typeLabel)
	detailFolded := textutils.FoldHeader(detailLabel)

	if kind == models.LayoutProviderNative {
		if containsAny(typeFolded, creditTypeHints) {
			return models.DirectionCredit
		}
		if containsAny(detailFolded, creditDetailHints) {
			return models.DirectionCredit
		}
		if containsAny(detailFolded, debitDetailHints) {
			return models.DirectionDebit
		}
		return directionFromSign(negative)
	}

	// GrossNetReport and Generic share the same rules.
	if containsAny(detailFolded, debitDetailHints) {
		return models.DirectionDebit
	}
	if containsAny(detailFolded, creditDetailHints) ||
		containsAny(typeFolded, cardRailHints) ||
		grossPositive {
		return models.DirectionCredit
	}
	return directionFromSign(negative)
}

func directionFromSign(negative bool) models.Direction {
	if negative {
		return models.DirectionDebit
	}
	return models.DirectionCredit
}

// SeedCategory infers a coarse category from the transaction type label.
// It is a seed value only; the category suggestion collaborator may
// override it downstream.
func SeedCategory(typeLabel string) string {
	folded := textutils.FoldHeader(typeLabel)
	switch {
	case containsAny(folded, creditTypeHints):
		return models.CategorySales
	case strings.Contains(folded, "pix"):
		return models.CategoryTransfer
	default:
		return models.CategoryOther
	}
}
