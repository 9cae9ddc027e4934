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

var _ repository.BillRepository = (*BillRepo)(nil)

// BillRepo BillRepository port over PostgreSQL (usable with pool or tx).
type BillRepo struct {
	q Querier
}

// NewBillRepository constructs the persistence adapter for bills. Pass pool or tx (Querier).
func NewBillRepository(q Querier) *BillRepo {
	return &BillRepo{q: q}
}

const billColumns = `id, patient_id, visit_id, number, subtotal_cents, tax_cents, total_cents, status, payment_method, document_ref, created_at, updated_at`

// Create persists a new bill. The bill number carries a unique constraint.
func (r *BillRepo) Create(bill *entity.Bill) error {
	query := `
		INSERT INTO bills (` + billColumns + `)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		bill.ID, bill.PatientID, bill.VisitID, bill.Number,
		bill.SubtotalCents, bill.TaxCents, bill.TotalCents,
		bill.Status, bill.PaymentMethod, bill.DocumentRef,
		bill.CreatedAt, bill.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert bill: %w", err)
	}
	return nil
}

// GetByID fetches one bill by ID.
func (r *BillRepo) GetByID(id string) (*entity.Bill, error) {
	query := `
		SELECT id, patient_id, COALESCE(visit_id::text, ''), number, subtotal_cents, tax_cents, total_cents, status, payment_method, document_ref, created_at, updated_at
		FROM bills WHERE id = $1`
	var b entity.Bill
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&b.ID, &b.PatientID, &b.VisitID, &b.Number,
		&b.SubtotalCents, &b.TaxCents, &b.TotalCents,
		&b.Status, &b.PaymentMethod, &b.DocumentRef,
		&b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get bill: %w", err)
	}
	return &b, nil
}

// List fetches bill headers, newest first, with pagination.
func (r *BillRepo) List(limit, offset int) ([]*entity.Bill, error) {
	query := `
		SELECT id, patient_id, COALESCE(visit_id::text, ''), number, subtotal_cents, tax_cents, total_cents, status, payment_method, document_ref, created_at, updated_at
		FROM bills ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list bills: %w", err)
	}
	defer rows.Close()
	return scanBills(rows)
}

// ListByPatient fetches a patient's bills, newest first, with pagination.
func (r *BillRepo) ListByPatient(patientID string, limit, offset int) ([]*entity.Bill, error) {
	query := `
		SELECT id, patient_id, COALESCE(visit_id::text, ''), number, subtotal_cents, tax_cents, total_cents, status, payment_method, document_ref, created_at, updated_at
		FROM bills WHERE patient_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, patientID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list bills by patient: %w", err)
	}
	defer rows.Close()
	return scanBills(rows)
}

func scanBills(rows pgx.Rows) ([]*entity.Bill, error) {
	var list []*entity.Bill
	for rows.Next() {
		var b entity.Bill
		if err := rows.Scan(
			&b.ID, &b.PatientID, &b.VisitID, &b.Number,
			&b.SubtotalCents, &b.TaxCents, &b.TotalCents,
			&b.Status, &b.PaymentMethod, &b.DocumentRef,
			&b.CreatedAt, &b.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan bill: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}

// UpdateTotals overwrites the three totals of a bill.
func (r *BillRepo) UpdateTotals(id string, subtotalCents, taxCents, totalCents int64) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE bills SET subtotal_cents = $2, tax_cents = $3, total_cents = $4, updated_at = now() WHERE id = $1`,
		id, subtotalCents, taxCents, totalCents,
	)
	if err != nil {
		return fmt.Errorf("update bill totals: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateStatus changes the payment status and method.
func (r *BillRepo) UpdateStatus(id, status, paymentMethod string) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE bills SET status = $2, payment_method = $3, updated_at = now() WHERE id = $1`,
		id, status, paymentMethod,
	)
	if err != nil {
		return fmt.Errorf("update bill status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateDocumentRef stores the reference of the last rendered invoice document.
func (r *BillRepo) UpdateDocumentRef(id, documentRef string) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE bills SET document_ref = $2, updated_at = now() WHERE id = $1`,
		id, documentRef,
	)
	if err != nil {
		return fmt.Errorf("update bill document ref: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
