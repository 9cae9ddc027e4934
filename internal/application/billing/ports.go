package billing

import (
	"context"

	"github.com/clinicore/clinic-api/internal/domain/entity"
	"github.com/clinicore/clinic-api/internal/domain/repository"
)

// TxRunner runs a function inside one DB transaction, handing it repositories
// bound to that transaction. Item writes, stock adjustments and the totals
// recalculation of a bill mutation all commit or roll back together.
type TxRunner interface {
	RunBilling(ctx context.Context, fn func(
		billRepo repository.BillRepository,
		itemRepo repository.BillItemRepository,
		productRepo repository.ProductRepository,
	) error) error
}

// StockAdjuster integrates billing with inventory. The InTx variants operate
// on the caller's transaction-bound repository so a rolled-back bill mutation
// also rolls back its stock effect.
type StockAdjuster interface {
	ReserveInTx(productRepo repository.ProductRepository, productID string, quantity int64) error
	ReleaseInTx(productRepo repository.ProductRepository, productID string, quantity int64) error
}

// InvoicePDFGenerator renders the printable invoice. Failures are reported to
// the caller, never retried here.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(ctx context.Context, bill *entity.Bill, patient *entity.Patient, items []*entity.BillItem) ([]byte, error)
}

// OutgoingInvoice is the rendered document handed to a delivery channel.
type OutgoingInvoice struct {
	Bill     *entity.Bill
	Patient  *entity.Patient
	PDF      []byte
	Filename string
}

// NotificationChannel one way to deliver an invoice (SMS gateway, email).
// Recipient returns the usable address for the patient, or "" when the
// channel cannot reach them.
type NotificationChannel interface {
	Name() string // entity.ChannelSMS | entity.ChannelEmail
	Recipient(patient *entity.Patient) string
	Send(ctx context.Context, recipient string, inv *OutgoingInvoice) error
}
