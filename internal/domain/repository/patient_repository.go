package repository

import "github.com/clinicore/clinic-api/internal/domain/entity"

// PatientRepository persistence port for patients.
type PatientRepository interface {
	Create(patient *entity.Patient) error
	GetByID(id string) (*entity.Patient, error) // nil, nil when absent
	List(limit, offset int) ([]*entity.Patient, error)
	Update(patient *entity.Patient) error
	Delete(id string) error
}
