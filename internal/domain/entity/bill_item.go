package entity

import "time"

// BillItem is one priced line entry on a bill. Treatment-only lines carry no
// product reference. Description is a snapshot taken at billing time, not a
// live join. LineTotalCents is fixed at creation (quantity × unit price);
// lines are deleted and recreated rather than edited.
type BillItem struct {
	ID             string
	BillID         string
	ProductID      string // empty for treatment lines
	Description    string
	Quantity       int64
	UnitPriceCents int64
	LineTotalCents int64
	CreatedAt      time.Time
}
