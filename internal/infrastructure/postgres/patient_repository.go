package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/clinicore/clinic-api/internal/domain"
	"github.com/clinicore/clinic-api/internal/domain/entity"
	"github.com/clinicore/clinic-api/internal/domain/repository"
)

var _ repository.PatientRepository = (*PatientRepo)(nil)

// PatientRepo PatientRepository port over PostgreSQL (usable with pool or tx).
type PatientRepo struct {
	q Querier
}

// NewPatientRepository constructs the persistence adapter for patients. Pass pool or tx (Querier).
func NewPatientRepository(q Querier) *PatientRepo {
	return &PatientRepo{q: q}
}

// Create persists a new patient. A zero DateOfBirth is stored as NULL.
func (r *PatientRepo) Create(patient *entity.Patient) error {
	query := `
		INSERT INTO patients (id, first_name, last_name, phone, email, address, date_of_birth, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, '0001-01-01'::date), $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		patient.ID, patient.FirstName, patient.LastName, patient.Phone,
		patient.Email, patient.Address, patient.DateOfBirth,
		patient.CreatedAt, patient.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert patient: %w", err)
	}
	return nil
}

// GetByID fetches one patient by ID.
func (r *PatientRepo) GetByID(id string) (*entity.Patient, error) {
	query := `
		SELECT id, first_name, last_name, phone, email, address, COALESCE(date_of_birth, '0001-01-01'::date), created_at, updated_at
		FROM patients WHERE id = $1`
	var p entity.Patient
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.FirstName, &p.LastName, &p.Phone, &p.Email,
		&p.Address, &p.DateOfBirth, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get patient: %w", err)
	}
	return &p, nil
}

// List fetches patients with pagination, last names first.
func (r *PatientRepo) List(limit, offset int) ([]*entity.Patient, error) {
	query := `
		SELECT id, first_name, last_name, phone, email, address, COALESCE(date_of_birth, '0001-01-01'::date), created_at, updated_at
		FROM patients ORDER BY last_name, first_name LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list patients: %w", err)
	}
	defer rows.Close()
	var list []*entity.Patient
	for rows.Next() {
		var p entity.Patient
		if err := rows.Scan(
			&p.ID, &p.FirstName, &p.LastName, &p.Phone, &p.Email,
			&p.Address, &p.DateOfBirth, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan patient: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Update overwrites a patient's contact and identity fields.
func (r *PatientRepo) Update(patient *entity.Patient) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE patients SET first_name = $2, last_name = $3, phone = $4, email = $5, address = $6, updated_at = $7 WHERE id = $1`,
		patient.ID, patient.FirstName, patient.LastName, patient.Phone,
		patient.Email, patient.Address, patient.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update patient: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes a patient.
func (r *PatientRepo) Delete(id string) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM patients WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete patient: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
