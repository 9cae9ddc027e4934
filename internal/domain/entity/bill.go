package entity

import "time"

// Payment statuses of a bill. Cancellation is a status change, never a row delete.
const (
	BillStatusPending   = "pending"
	BillStatusPaid      = "paid"
	BillStatusOverdue   = "overdue"
	BillStatusCancelled = "cancelled"
)

// ValidBillStatus reports whether s is a known payment status.
func ValidBillStatus(s string) bool {
	switch s {
	case BillStatusPending, BillStatusPaid, BillStatusOverdue, BillStatusCancelled:
		return true
	}
	return false
}

// Bill is one invoice for a visit or an ad-hoc purchase.
// Invariant: TotalCents == SubtotalCents + TaxCents, with
// TaxCents == round-half-up(SubtotalCents * 10%).
type Bill struct {
	ID            string
	PatientID     string
	VisitID       string // empty for ad-hoc bills
	Number        string // human-readable, unique, generated at creation
	SubtotalCents int64
	TaxCents      int64
	TotalCents    int64
	Status        string
	PaymentMethod string // empty until paid
	DocumentRef   string // reference to the last rendered invoice document
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
