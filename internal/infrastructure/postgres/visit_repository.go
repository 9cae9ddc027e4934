package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/clinicore/clinic-api/internal/domain/entity"
	"github.com/clinicore/clinic-api/internal/domain/repository"
)

var _ repository.VisitRepository = (*VisitRepo)(nil)

// VisitRepo VisitRepository port over PostgreSQL (usable with pool or tx).
type VisitRepo struct {
	q Querier
}

// NewVisitRepository constructs the persistence adapter for visits. Pass pool or tx (Querier).
func NewVisitRepository(q Querier) *VisitRepo {
	return &VisitRepo{q: q}
}

// Create persists a new visit.
func (r *VisitRepo) Create(visit *entity.Visit) error {
	query := `
		INSERT INTO visits (id, patient_id, visit_date, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		visit.ID, visit.PatientID, visit.VisitDate, visit.Notes,
		visit.CreatedAt, visit.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert visit: %w", err)
	}
	return nil
}

// GetByID fetches one visit by ID.
func (r *VisitRepo) GetByID(id string) (*entity.Visit, error) {
	query := `
		SELECT id, patient_id, visit_date, notes, created_at, updated_at
		FROM visits WHERE id = $1`
	var v entity.Visit
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&v.ID, &v.PatientID, &v.VisitDate, &v.Notes, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get visit: %w", err)
	}
	return &v, nil
}

// ListByPatient fetches a patient's visits, newest first, with pagination.
func (r *VisitRepo) ListByPatient(patientID string, limit, offset int) ([]*entity.Visit, error) {
	query := `
		SELECT id, patient_id, visit_date, notes, created_at, updated_at
		FROM visits WHERE patient_id = $1 ORDER BY visit_date DESC, created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, patientID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list visits: %w", err)
	}
	defer rows.Close()
	var list []*entity.Visit
	for rows.Next() {
		var v entity.Visit
		if err := rows.Scan(&v.ID, &v.PatientID, &v.VisitDate, &v.Notes, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan visit: %w", err)
		}
		list = append(list, &v)
	}
	return list, rows.Err()
}
