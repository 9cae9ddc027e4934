package repository

import "github.com/clinicore/clinic-api/internal/domain/entity"

// BillRepository persistence port for bill headers.
type BillRepository interface {
	Create(bill *entity.Bill) error
	GetByID(id string) (*entity.Bill, error) // nil, nil when absent
	List(limit, offset int) ([]*entity.Bill, error)
	ListByPatient(patientID string, limit, offset int) ([]*entity.Bill, error)
	UpdateTotals(id string, subtotalCents, taxCents, totalCents int64) error
	UpdateStatus(id, status, paymentMethod string) error
	UpdateDocumentRef(id, documentRef string) error
}
