package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/clinicore/clinic-api/internal/application/dto"
	"github.com/clinicore/clinic-api/internal/domain"
	"github.com/clinicore/clinic-api/internal/domain/entity"
	"github.com/clinicore/clinic-api/internal/domain/repository"
)

// VisitUseCase records clinical encounters.
type VisitUseCase struct {
	visitRepo   repository.VisitRepository
	patientRepo repository.PatientRepository
}

// NewVisitUseCase constructs the use case.
func NewVisitUseCase(visitRepo repository.VisitRepository, patientRepo repository.PatientRepository) *VisitUseCase {
	return &VisitUseCase{visitRepo: visitRepo, patientRepo: patientRepo}
}

// Create records a visit for an existing patient. VisitDate defaults to today.
func (uc *VisitUseCase) Create(ctx context.Context, in dto.CreateVisitRequest) (*dto.VisitResponse, error) {
	if in.PatientID == "" {
		return nil, domain.ErrInvalidInput
	}
	patient, err := uc.patientRepo.GetByID(in.PatientID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, domain.ErrNotFound
	}

	visitDate := time.Now()
	if in.VisitDate != "" {
		visitDate, err = time.Parse(dateLayout, in.VisitDate)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
	}

	now := time.Now()
	v := &entity.Visit{
		ID:        uuid.New().String(),
		PatientID: in.PatientID,
		VisitDate: visitDate,
		Notes:     in.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.visitRepo.Create(v); err != nil {
		return nil, err
	}
	return toVisitResponse(v), nil
}

// Get returns one visit.
func (uc *VisitUseCase) Get(ctx context.Context, id string) (*dto.VisitResponse, error) {
	v, err := uc.visitRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, domain.ErrNotFound
	}
	return toVisitResponse(v), nil
}

// ListByPatient returns a patient's visit history, newest first.
func (uc *VisitUseCase) ListByPatient(ctx context.Context, patientID string, page dto.PageRequest) ([]dto.VisitResponse, error) {
	if patientID == "" {
		return nil, domain.ErrInvalidInput
	}
	page.DefaultPage()
	visits, err := uc.visitRepo.ListByPatient(patientID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.VisitResponse, 0, len(visits))
	for _, v := range visits {
		out = append(out, *toVisitResponse(v))
	}
	return out, nil
}

func toVisitResponse(v *entity.Visit) *dto.VisitResponse {
	return &dto.VisitResponse{
		ID:        v.ID,
		PatientID: v.PatientID,
		VisitDate: v.VisitDate.Format(dateLayout),
		Notes:     v.Notes,
		CreatedAt: v.CreatedAt,
	}
}
