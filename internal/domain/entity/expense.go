package entity

import "time"

// Expense is an operating cost entry used by the revenue dashboard.
type Expense struct {
	ID          string
	Category    string
	Description string
	AmountCents int64
	IncurredOn  time.Time
	CreatedAt   time.Time
}
