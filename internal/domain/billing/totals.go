// Package billing holds the pure invoice math: bill totals, the fixed tax
// rate, and bill number generation. No I/O here.
package billing

import "github.com/clinicore/clinic-api/internal/domain/entity"

// TaxRatePercent is the flat tax applied to every bill subtotal.
// Fixed by the clinic's jurisdiction, not configurable per line.
const TaxRatePercent = 10

// Totals is the derived monetary state of a bill.
type Totals struct {
	SubtotalCents int64
	TaxCents      int64
	TotalCents    int64
}

// TaxFromSubtotal computes the tax in cents, rounding half up once on the
// tax amount (not per line).
func TaxFromSubtotal(subtotalCents int64) int64 {
	return (subtotalCents*TaxRatePercent + 50) / 100
}

// ComputeTotals derives subtotal, tax and total from the bill's current lines.
func ComputeTotals(items []*entity.BillItem) Totals {
	var subtotal int64
	for _, it := range items {
		subtotal += it.LineTotalCents
	}
	tax := TaxFromSubtotal(subtotal)
	return Totals{
		SubtotalCents: subtotal,
		TaxCents:      tax,
		TotalCents:    subtotal + tax,
	}
}

// LineTotal is quantity × unit price, fixed at line creation.
func LineTotal(quantity, unitPriceCents int64) int64 {
	return quantity * unitPriceCents
}
