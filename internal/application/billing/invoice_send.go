package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/clinicore/clinic-api/internal/application/dto"
	"github.com/clinicore/clinic-api/internal/domain"
	"github.com/clinicore/clinic-api/internal/domain/entity"
	"github.com/clinicore/clinic-api/internal/domain/repository"
	"github.com/clinicore/clinic-api/pkg/logger"
)

// SendInvoiceUseCase renders a bill's invoice and delivers it through the
// first channel that can reach the patient. Channel order is fixed by the
// slice passed at construction (SMS first, email fallback). Every attempt is
// audited whether it succeeds or not.
type SendInvoiceUseCase struct {
	billRepo    repository.BillRepository
	itemRepo    repository.BillItemRepository
	patientRepo repository.PatientRepository
	notifRepo   repository.NotificationRepository
	generator   InvoicePDFGenerator
	channels    []NotificationChannel
	log         *logger.Logger
}

// NewSendInvoiceUseCase constructs the use case.
func NewSendInvoiceUseCase(
	billRepo repository.BillRepository,
	itemRepo repository.BillItemRepository,
	patientRepo repository.PatientRepository,
	notifRepo repository.NotificationRepository,
	generator InvoicePDFGenerator,
	channels []NotificationChannel,
	log *logger.Logger,
) *SendInvoiceUseCase {
	return &SendInvoiceUseCase{
		billRepo:    billRepo,
		itemRepo:    itemRepo,
		patientRepo: patientRepo,
		notifRepo:   notifRepo,
		generator:   generator,
		channels:    channels,
		log:         log,
	}
}

// Send renders and dispatches the invoice for a bill.
// Returns domain.ErrNoContactMethod when no channel has a usable address.
func (uc *SendInvoiceUseCase) Send(ctx context.Context, billID string) (*dto.SendInvoiceResult, error) {
	bill, err := uc.billRepo.GetByID(billID)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, domain.ErrNotFound
	}
	patient, err := uc.patientRepo.GetByID(bill.PatientID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.itemRepo.ListByBill(billID)
	if err != nil {
		return nil, err
	}

	pdfBytes, err := uc.generator.GenerateInvoicePDF(ctx, bill, patient, items)
	if err != nil {
		return nil, fmt.Errorf("%w: render invoice: %v", domain.ErrUpstream, err)
	}
	outgoing := &OutgoingInvoice{
		Bill:     bill,
		Patient:  patient,
		PDF:      pdfBytes,
		Filename: fmt.Sprintf("invoice_%s.pdf", bill.Number),
	}

	reachable := false
	var lastErr error
	for _, ch := range uc.channels {
		recipient := ch.Recipient(patient)
		if recipient == "" {
			continue
		}
		reachable = true

		sendErr := ch.Send(ctx, recipient, outgoing)
		uc.audit(bill.ID, ch.Name(), recipient, sendErr)
		if sendErr == nil {
			if err := uc.billRepo.UpdateDocumentRef(bill.ID, outgoing.Filename); err != nil {
				uc.log.Warn().Err(err).Str("bill_id", bill.ID).Msg("update document ref")
			}
			return &dto.SendInvoiceResult{Success: true, Method: ch.Name()}, nil
		}
		uc.log.Warn().Err(sendErr).
			Str("bill_id", bill.ID).
			Str("channel", ch.Name()).
			Msg("invoice delivery failed, trying next channel")
		lastErr = sendErr
	}

	if !reachable {
		return nil, domain.ErrNoContactMethod
	}
	return nil, fmt.Errorf("%w: all delivery channels failed: %v", domain.ErrUpstream, lastErr)
}

// audit records the attempt; an audit failure must not mask the send outcome.
func (uc *SendInvoiceUseCase) audit(billID, channel, recipient string, sendErr error) {
	detail := ""
	if sendErr != nil {
		detail = sendErr.Error()
	}
	attempt := &entity.NotificationAttempt{
		ID:          uuid.New().String(),
		BillID:      billID,
		Channel:     channel,
		Recipient:   recipient,
		Success:     sendErr == nil,
		ErrorDetail: detail,
		AttemptedAt: time.Now(),
	}
	if err := uc.notifRepo.CreateAttempt(attempt); err != nil {
		uc.log.Error().Err(err).Str("bill_id", billID).Msg("persist notification attempt")
	}
}

// ListAttempts returns the delivery audit trail of a bill.
func (uc *SendInvoiceUseCase) ListAttempts(ctx context.Context, billID string) ([]*entity.NotificationAttempt, error) {
	bill, err := uc.billRepo.GetByID(billID)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, domain.ErrNotFound
	}
	return uc.notifRepo.ListByBill(billID)
}
