package repository

import "github.com/clinicore/clinic-api/internal/domain/entity"

// VisitRepository persistence port for clinical visits.
type VisitRepository interface {
	Create(visit *entity.Visit) error
	GetByID(id string) (*entity.Visit, error) // nil, nil when absent
	ListByPatient(patientID string, limit, offset int) ([]*entity.Visit, error)
}
