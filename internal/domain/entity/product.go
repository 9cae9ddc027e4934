package entity

import "time"

// Product is an inventory-tracked item sold on bills.
// StockQuantity never goes negative: reservations use a conditional decrement.
type Product struct {
	ID             string
	Name           string
	Description    string
	UnitPriceCents int64
	StockQuantity  int64
	MinStock       int64 // threshold for the derived low-stock flag, not enforced
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// LowStock reports whether the product is at or below its minimum threshold.
func (p *Product) LowStock() bool {
	return p.StockQuantity <= p.MinStock
}
