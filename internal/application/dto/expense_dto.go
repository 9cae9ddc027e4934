package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateExpenseRequest body for POST /api/expenses.
// Amount is in major units and converted to cents at this boundary.
type CreateExpenseRequest struct {
	Category    string          `json:"category"`
	Description string          `json:"description,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	IncurredOn  string          `json:"incurred_on,omitempty"` // YYYY-MM-DD, defaults to today
}

// ExpenseResponse expense in responses.
type ExpenseResponse struct {
	ID          string    `json:"id"`
	Category    string    `json:"category"`
	Description string    `json:"description,omitempty"`
	AmountCents int64     `json:"amount_cents"`
	Amount      string    `json:"amount"` // major units, for display
	IncurredOn  string    `json:"incurred_on"`
	CreatedAt   time.Time `json:"created_at"`
}
