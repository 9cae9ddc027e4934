package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/clinicore/clinic-api/internal/domain"
	"github.com/clinicore/clinic-api/internal/domain/entity"
	"github.com/clinicore/clinic-api/internal/domain/repository"
)

var _ repository.ExpenseRepository = (*ExpenseRepo)(nil)

// ExpenseRepo ExpenseRepository port over PostgreSQL (usable with pool or tx).
type ExpenseRepo struct {
	q Querier
}

// NewExpenseRepository constructs the persistence adapter for expenses. Pass pool or tx (Querier).
func NewExpenseRepository(q Querier) *ExpenseRepo {
	return &ExpenseRepo{q: q}
}

// Create persists a new expense.
func (r *ExpenseRepo) Create(expense *entity.Expense) error {
	query := `
		INSERT INTO expenses (id, category, description, amount_cents, incurred_on, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		expense.ID, expense.Category, expense.Description,
		expense.AmountCents, expense.IncurredOn, expense.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert expense: %w", err)
	}
	return nil
}

// List fetches expenses in a date range, newest first. Zero bounds are open.
func (r *ExpenseRepo) List(from, to time.Time, limit, offset int) ([]*entity.Expense, error) {
	query := `
		SELECT id, category, description, amount_cents, incurred_on, created_at
		FROM expenses
		WHERE ($1::date IS NULL OR incurred_on >= $1)
		  AND ($2::date IS NULL OR incurred_on <= $2)
		ORDER BY incurred_on DESC, created_at DESC LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, nullableDate(from), nullableDate(to), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()
	var list []*entity.Expense
	for rows.Next() {
		var e entity.Expense
		if err := rows.Scan(&e.ID, &e.Category, &e.Description, &e.AmountCents, &e.IncurredOn, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}

// Delete removes an expense.
func (r *ExpenseRepo) Delete(id string) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func nullableDate(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
