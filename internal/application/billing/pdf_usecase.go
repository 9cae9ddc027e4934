package billing

import (
	"context"
	"fmt"

	"github.com/clinicore/clinic-api/internal/domain"
	"github.com/clinicore/clinic-api/internal/domain/repository"
)

// PDFUseCase produces the printable invoice for download.
type PDFUseCase struct {
	billRepo    repository.BillRepository
	itemRepo    repository.BillItemRepository
	patientRepo repository.PatientRepository
	generator   InvoicePDFGenerator
}

// NewPDFUseCase constructs the use case.
func NewPDFUseCase(
	billRepo repository.BillRepository,
	itemRepo repository.BillItemRepository,
	patientRepo repository.PatientRepository,
	generator InvoicePDFGenerator,
) *PDFUseCase {
	return &PDFUseCase{
		billRepo:    billRepo,
		itemRepo:    itemRepo,
		patientRepo: patientRepo,
		generator:   generator,
	}
}

// DownloadInvoicePDF loads the bill, patient and lines and renders the PDF.
//
// Returns:
//   - (pdfBytes, filename, nil) on success
//   - domain.ErrNotFound when the bill or patient does not exist
func (uc *PDFUseCase) DownloadInvoicePDF(ctx context.Context, billID string) (pdfBytes []byte, filename string, err error) {
	bill, err := uc.billRepo.GetByID(billID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: load bill: %w", err)
	}
	if bill == nil {
		return nil, "", domain.ErrNotFound
	}

	patient, err := uc.patientRepo.GetByID(bill.PatientID)
	if err != nil || patient == nil {
		return nil, "", fmt.Errorf("pdf: load patient: %w", domain.ErrNotFound)
	}

	items, err := uc.itemRepo.ListByBill(billID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: load items: %w", err)
	}

	pdfBytes, err = uc.generator.GenerateInvoicePDF(ctx, bill, patient, items)
	if err != nil {
		return nil, "", fmt.Errorf("%w: render invoice: %v", domain.ErrUpstream, err)
	}

	filename = fmt.Sprintf("invoice_%s.pdf", bill.Number)
	if err := uc.billRepo.UpdateDocumentRef(bill.ID, filename); err != nil {
		// the PDF is already rendered; a stale ref is tolerable
		return pdfBytes, filename, nil
	}
	return pdfBytes, filename, nil
}
