package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateBillRequest body for POST /api/bills.
// VisitID is required; the patient is resolved from the visit.
type CreateBillRequest struct {
	VisitID string `json:"visit_id"`
}

// BillItemRequest one line to add to a bill.
// ProductID is empty for treatment lines; then Description and UnitPrice are
// required. For product lines, Description and UnitPrice default to the
// product snapshot. UnitPrice is in major units (e.g. "50.00") and is
// converted to cents at this boundary.
type BillItemRequest struct {
	ProductID          string          `json:"product_id,omitempty"`
	Description        string          `json:"description,omitempty"`
	Quantity           int64           `json:"quantity"`
	UnitPrice          decimal.Decimal `json:"unit_price"`
	UpdateProductPrice bool            `json:"update_product_price,omitempty"` // persist the override onto the product
}

// AddBillItemsRequest body for POST /api/bills/:id/items.
type AddBillItemsRequest struct {
	Items []BillItemRequest `json:"items"`
}

// BillItemResponse one line in responses.
type BillItemResponse struct {
	ID             string `json:"id"`
	ProductID      string `json:"product_id,omitempty"`
	Description    string `json:"description"`
	Quantity       int64  `json:"quantity"`
	UnitPriceCents int64  `json:"unit_price_cents"`
	LineTotalCents int64  `json:"line_total_cents"`
}

// SkippedItemResponse a line rejected for insufficient stock during a batch add.
type SkippedItemResponse struct {
	ProductID string `json:"product_id"`
	Requested int64  `json:"requested"`
	Available int64  `json:"available"`
	Reason    string `json:"reason"`
}

// AddItemsResult batch outcome: partial success is expected behavior.
type AddItemsResult struct {
	Added   []BillItemResponse    `json:"added"`
	Skipped []SkippedItemResponse `json:"skipped"`
	Totals  TotalsResponse        `json:"totals"`
}

// TotalsResponse derived monetary state of a bill.
type TotalsResponse struct {
	SubtotalCents int64  `json:"subtotal_cents"`
	TaxCents      int64  `json:"tax_cents"`
	TotalCents    int64  `json:"total_cents"`
	Subtotal      string `json:"subtotal"` // major units, for display
	Tax           string `json:"tax"`
	Total         string `json:"total"`
}

// BillResponse bill with lines for GET /api/bills/:id.
type BillResponse struct {
	ID            string             `json:"id"`
	PatientID     string             `json:"patient_id"`
	PatientName   string             `json:"patient_name,omitempty"`
	VisitID       string             `json:"visit_id,omitempty"`
	Number        string             `json:"number"`
	Status        string             `json:"status"`
	PaymentMethod string             `json:"payment_method,omitempty"`
	Totals        TotalsResponse     `json:"totals"`
	Items         []BillItemResponse `json:"items"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

// UpdateBillStatusRequest body for PUT /api/bills/:id/status.
type UpdateBillStatusRequest struct {
	Status        string `json:"status"`
	PaymentMethod string `json:"payment_method,omitempty"`
}

// SendInvoiceResult outcome of POST /api/bills/:id/send.
type SendInvoiceResult struct {
	Success bool   `json:"success"`
	Method  string `json:"method"` // "sms" | "email"
}
