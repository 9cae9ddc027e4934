// Package usecase holds the plain CRUD application services.
package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/clinicore/clinic-api/internal/application/dto"
	"github.com/clinicore/clinic-api/internal/domain"
	"github.com/clinicore/clinic-api/internal/domain/entity"
	"github.com/clinicore/clinic-api/internal/domain/repository"
)

const dateLayout = "2006-01-02"

// PatientUseCase CRUD over patients.
type PatientUseCase struct {
	patientRepo repository.PatientRepository
}

// NewPatientUseCase constructs the use case.
func NewPatientUseCase(patientRepo repository.PatientRepository) *PatientUseCase {
	return &PatientUseCase{patientRepo: patientRepo}
}

// Create registers a patient. At least one name part is required.
func (uc *PatientUseCase) Create(ctx context.Context, in dto.CreatePatientRequest) (*dto.PatientResponse, error) {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	if in.FirstName == "" && in.LastName == "" {
		return nil, domain.ErrInvalidInput
	}

	var dob time.Time
	if in.DateOfBirth != "" {
		var err error
		dob, err = time.Parse(dateLayout, in.DateOfBirth)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
	}

	now := time.Now()
	p := &entity.Patient{
		ID:          uuid.New().String(),
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		Phone:       strings.TrimSpace(in.Phone),
		Email:       strings.TrimSpace(in.Email),
		Address:     in.Address,
		DateOfBirth: dob,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.patientRepo.Create(p); err != nil {
		return nil, err
	}
	return toPatientResponse(p), nil
}

// Get returns one patient.
func (uc *PatientUseCase) Get(ctx context.Context, id string) (*dto.PatientResponse, error) {
	p, err := uc.patientRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return toPatientResponse(p), nil
}

// List returns a page of patients.
func (uc *PatientUseCase) List(ctx context.Context, page dto.PageRequest) ([]dto.PatientResponse, error) {
	page.DefaultPage()
	patients, err := uc.patientRepo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PatientResponse, 0, len(patients))
	for _, p := range patients {
		out = append(out, *toPatientResponse(p))
	}
	return out, nil
}

// Update applies a partial update; nil fields are left untouched.
func (uc *PatientUseCase) Update(ctx context.Context, id string, in dto.UpdatePatientRequest) (*dto.PatientResponse, error) {
	p, err := uc.patientRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}

	if in.FirstName != nil {
		p.FirstName = strings.TrimSpace(*in.FirstName)
	}
	if in.LastName != nil {
		p.LastName = strings.TrimSpace(*in.LastName)
	}
	if p.FirstName == "" && p.LastName == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Phone != nil {
		p.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.Email != nil {
		p.Email = strings.TrimSpace(*in.Email)
	}
	if in.Address != nil {
		p.Address = *in.Address
	}
	p.UpdatedAt = time.Now()

	if err := uc.patientRepo.Update(p); err != nil {
		return nil, err
	}
	return toPatientResponse(p), nil
}

// Delete removes a patient.
func (uc *PatientUseCase) Delete(ctx context.Context, id string) error {
	p, err := uc.patientRepo.GetByID(id)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.ErrNotFound
	}
	return uc.patientRepo.Delete(id)
}

func toPatientResponse(p *entity.Patient) *dto.PatientResponse {
	dob := ""
	if !p.DateOfBirth.IsZero() {
		dob = p.DateOfBirth.Format(dateLayout)
	}
	return &dto.PatientResponse{
		ID:          p.ID,
		FirstName:   p.FirstName,
		LastName:    p.LastName,
		Phone:       p.Phone,
		Email:       p.Email,
		Address:     p.Address,
		DateOfBirth: dob,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
