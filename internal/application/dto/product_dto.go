package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest body for POST /api/products.
// UnitPrice is in major units and converted to cents at this boundary.
type CreateProductRequest struct {
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	StockQuantity int64           `json:"stock_quantity"`
	MinStock      int64           `json:"min_stock"`
}

// UpdateProductRequest body for PUT /api/products/:id (partial; stock is
// mutated only through billing or restock, never here).
type UpdateProductRequest struct {
	Name        *string          `json:"name,omitempty"`
	Description *string          `json:"description,omitempty"`
	UnitPrice   *decimal.Decimal `json:"unit_price,omitempty"`
	MinStock    *int64           `json:"min_stock,omitempty"`
}

// RestockProductRequest body for POST /api/products/:id/restock.
type RestockProductRequest struct {
	Quantity int64 `json:"quantity"`
}

// ProductResponse product in responses.
type ProductResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description,omitempty"`
	UnitPriceCents int64     `json:"unit_price_cents"`
	UnitPrice      string    `json:"unit_price"` // major units, for display
	StockQuantity  int64     `json:"stock_quantity"`
	MinStock       int64     `json:"min_stock"`
	LowStock       bool      `json:"low_stock"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
