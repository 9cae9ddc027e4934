package billing

import (
	"context"

	"github.com/google/uuid"

	"github.com/clinicore/clinic-api/internal/application/dto"
	"github.com/clinicore/clinic-api/internal/domain"
	domainbilling "github.com/clinicore/clinic-api/internal/domain/billing"
	"github.com/clinicore/clinic-api/internal/domain/entity"
	"github.com/clinicore/clinic-api/internal/domain/repository"
	"github.com/clinicore/clinic-api/pkg/money"
	"time"
)

// BillUseCase creates and reads bills. Line mutations live in LineItemUseCase.
type BillUseCase struct {
	billRepo    repository.BillRepository
	itemRepo    repository.BillItemRepository
	patientRepo repository.PatientRepository
	visitRepo   repository.VisitRepository
	numbers     *domainbilling.NumberGenerator
}

// NewBillUseCase constructs the use case.
func NewBillUseCase(
	billRepo repository.BillRepository,
	itemRepo repository.BillItemRepository,
	patientRepo repository.PatientRepository,
	visitRepo repository.VisitRepository,
	numbers *domainbilling.NumberGenerator,
) *BillUseCase {
	return &BillUseCase{
		billRepo:    billRepo,
		itemRepo:    itemRepo,
		patientRepo: patientRepo,
		visitRepo:   visitRepo,
		numbers:     numbers,
	}
}

// CreateForVisit starts a bill for a clinical visit: resolves the patient,
// generates the bill number, persists with empty totals in pending status.
func (uc *BillUseCase) CreateForVisit(ctx context.Context, in dto.CreateBillRequest) (*dto.BillResponse, error) {
	if in.VisitID == "" {
		return nil, domain.ErrInvalidInput
	}
	visit, err := uc.visitRepo.GetByID(in.VisitID)
	if err != nil {
		return nil, err
	}
	if visit == nil {
		return nil, domain.ErrNotFound
	}
	patient, err := uc.patientRepo.GetByID(visit.PatientID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, domain.ErrNotFound
	}

	number, err := uc.numbers.Generate()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	bill := &entity.Bill{
		ID:        uuid.New().String(),
		PatientID: patient.ID,
		VisitID:   visit.ID,
		Number:    number,
		Status:    entity.BillStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.billRepo.Create(bill); err != nil {
		return nil, err
	}
	return uc.toResponse(bill, patient.FullName(), nil), nil
}

// GetBill returns a bill with its lines.
func (uc *BillUseCase) GetBill(ctx context.Context, id string) (*dto.BillResponse, error) {
	bill, err := uc.billRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.itemRepo.ListByBill(id)
	if err != nil {
		return nil, err
	}
	patientName := ""
	if patient, _ := uc.patientRepo.GetByID(bill.PatientID); patient != nil {
		patientName = patient.FullName()
	}
	return uc.toResponse(bill, patientName, items), nil
}

// ListBills returns bill headers, newest first.
func (uc *BillUseCase) ListBills(ctx context.Context, page dto.PageRequest) ([]dto.BillResponse, error) {
	page.DefaultPage()
	bills, err := uc.billRepo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.BillResponse, 0, len(bills))
	for _, b := range bills {
		out = append(out, *uc.toResponse(b, "", nil))
	}
	return out, nil
}

// ListByPatient returns one patient's bill headers, newest first.
func (uc *BillUseCase) ListByPatient(ctx context.Context, patientID string, page dto.PageRequest) ([]dto.BillResponse, error) {
	if patientID == "" {
		return nil, domain.ErrInvalidInput
	}
	page.DefaultPage()
	bills, err := uc.billRepo.ListByPatient(patientID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.BillResponse, 0, len(bills))
	for _, b := range bills {
		out = append(out, *uc.toResponse(b, "", nil))
	}
	return out, nil
}

// UpdateStatus changes the payment status. Cancellation goes through here as
// well: bills are never deleted.
func (uc *BillUseCase) UpdateStatus(ctx context.Context, id string, in dto.UpdateBillStatusRequest) (*dto.BillResponse, error) {
	if !entity.ValidBillStatus(in.Status) {
		return nil, domain.ErrInvalidInput
	}
	bill, err := uc.billRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.billRepo.UpdateStatus(id, in.Status, in.PaymentMethod); err != nil {
		return nil, err
	}
	bill.Status = in.Status
	bill.PaymentMethod = in.PaymentMethod
	return uc.toResponse(bill, "", nil), nil
}

func (uc *BillUseCase) toResponse(b *entity.Bill, patientName string, items []*entity.BillItem) *dto.BillResponse {
	resp := &dto.BillResponse{
		ID:            b.ID,
		PatientID:     b.PatientID,
		PatientName:   patientName,
		VisitID:       b.VisitID,
		Number:        b.Number,
		Status:        b.Status,
		PaymentMethod: b.PaymentMethod,
		Totals: dto.TotalsResponse{
			SubtotalCents: b.SubtotalCents,
			TaxCents:      b.TaxCents,
			TotalCents:    b.TotalCents,
			Subtotal:      money.FormatMajor(b.SubtotalCents),
			Tax:           money.FormatMajor(b.TaxCents),
			Total:         money.FormatMajor(b.TotalCents),
		},
		Items:     make([]dto.BillItemResponse, 0, len(items)),
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
	for _, it := range items {
		resp.Items = append(resp.Items, toItemResponse(it))
	}
	return resp
}
