package models

import (
	"strings"

	"quickpay-backend/utils"
)

// TaxRate is the fixed VAT rate applied to every invoice (16%).
const TaxRate = 0.16

// ComputeTotals derives subtotal, tax and the rounded grand total from a
// sequence of line items. Pure; an empty sequence yields all zeros.
func ComputeTotals(items []InvoiceLineItem) (subtotal, tax, total float64) {
	for _, it := range items {
		subtotal += it.LineTotal()
	}
	tax = subtotal * TaxRate
	total = utils.Round2(subtotal + tax)
	return subtotal, tax, total
}

// ComputeTotal returns only the tax-inclusive total, rounded to 2 decimals.
func ComputeTotal(items []InvoiceLineItem) float64 {
	_, _, total := ComputeTotals(items)
	return total
}

// ValidItem reports whether a line item survives a save: non-empty
// description, positive quantity, non-negative unit price.
func ValidItem(it InvoiceLineItem) bool {
	return strings.TrimSpace(it.Description) != "" && it.Quantity > 0 && it.UnitPrice >= 0
}

// FilterValidItems drops invalid rows before persisting. Callers must treat an
// empty result as a rejected save; an invoice never persists with zero items.
func FilterValidItems(items []InvoiceLineItem) []InvoiceLineItem {
	out := make([]InvoiceLineItem, 0, len(items))
	for _, it := range items {
		if ValidItem(it) {
			it.Description = strings.TrimSpace(it.Description)
			out = append(out, it)
		}
	}
	return out
}
