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

var _ repository.BillItemRepository = (*BillItemRepo)(nil)

// BillItemRepo BillItemRepository port over PostgreSQL (usable with pool or tx).
type BillItemRepo struct {
	q Querier
}

// NewBillItemRepository constructs the persistence adapter for bill lines. Pass pool or tx (Querier).
func NewBillItemRepository(q Querier) *BillItemRepo {
	return &BillItemRepo{q: q}
}

// Create persists a new line. Description and price are snapshots, never joins.
func (r *BillItemRepo) Create(item *entity.BillItem) error {
	query := `
		INSERT INTO bill_items (id, bill_id, product_id, description, quantity, unit_price_cents, line_total_cents, created_at)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.BillID, item.ProductID, item.Description,
		item.Quantity, item.UnitPriceCents, item.LineTotalCents, item.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert bill item: %w", err)
	}
	return nil
}

// GetByID fetches one line by ID.
func (r *BillItemRepo) GetByID(id string) (*entity.BillItem, error) {
	query := `
		SELECT id, bill_id, COALESCE(product_id::text, ''), description, quantity, unit_price_cents, line_total_cents, created_at
		FROM bill_items WHERE id = $1`
	var it entity.BillItem
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&it.ID, &it.BillID, &it.ProductID, &it.Description,
		&it.Quantity, &it.UnitPriceCents, &it.LineTotalCents, &it.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get bill item: %w", err)
	}
	return &it, nil
}

// ListByBill fetches a bill's lines in creation order.
func (r *BillItemRepo) ListByBill(billID string) ([]*entity.BillItem, error) {
	query := `
		SELECT id, bill_id, COALESCE(product_id::text, ''), description, quantity, unit_price_cents, line_total_cents, created_at
		FROM bill_items WHERE bill_id = $1 ORDER BY created_at, id`
	rows, err := r.q.Query(context.Background(), query, billID)
	if err != nil {
		return nil, fmt.Errorf("list bill items: %w", err)
	}
	defer rows.Close()
	var list []*entity.BillItem
	for rows.Next() {
		var it entity.BillItem
		if err := rows.Scan(
			&it.ID, &it.BillID, &it.ProductID, &it.Description,
			&it.Quantity, &it.UnitPriceCents, &it.LineTotalCents, &it.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan bill item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// Delete removes one line.
func (r *BillItemRepo) Delete(id string) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM bill_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete bill item: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
