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

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo ProductRepository port over PostgreSQL (usable with pool or tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository constructs the persistence adapter for products. Pass pool or tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persists a new product.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (id, name, description, unit_price_cents, stock_quantity, min_stock, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Name, product.Description, product.UnitPriceCents,
		product.StockQuantity, product.MinStock, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID fetches one product by ID.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	query := `
		SELECT id, name, description, unit_price_cents, stock_quantity, min_stock, created_at, updated_at
		FROM products WHERE id = $1`
	var p entity.Product
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.Name, &p.Description, &p.UnitPriceCents,
		&p.StockQuantity, &p.MinStock, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// List fetches products with pagination, newest first.
func (r *ProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	query := `
		SELECT id, name, description, unit_price_cents, stock_quantity, min_stock, created_at, updated_at
		FROM products ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	return scanProducts(rows)
}

// ListLowStock fetches products at or below their minimum threshold.
func (r *ProductRepo) ListLowStock() ([]*entity.Product, error) {
	query := `
		SELECT id, name, description, unit_price_cents, stock_quantity, min_stock, created_at, updated_at
		FROM products WHERE stock_quantity <= min_stock ORDER BY stock_quantity ASC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list low stock products: %w", err)
	}
	defer rows.Close()
	return scanProducts(rows)
}

func scanProducts(rows pgx.Rows) ([]*entity.Product, error) {
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Description, &p.UnitPriceCents,
			&p.StockQuantity, &p.MinStock, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Update overwrites the catalog fields. Stock is never written here.
func (r *ProductRepo) Update(product *entity.Product) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE products SET name = $2, description = $3, unit_price_cents = $4, min_stock = $5, updated_at = $6 WHERE id = $1`,
		product.ID, product.Name, product.Description, product.UnitPriceCents,
		product.MinStock, product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdatePrice overwrites only the unit price (billing price override).
func (r *ProductRepo) UpdatePrice(id string, unitPriceCents int64) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE products SET unit_price_cents = $2, updated_at = now() WHERE id = $1`,
		id, unitPriceCents,
	)
	if err != nil {
		return fmt.Errorf("update product price: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ReserveStock decrements stock with one conditional UPDATE, so two
// concurrent reservations can never drive it negative. On shortfall the
// follow-up SELECT distinguishes a missing row from insufficient stock.
func (r *ProductRepo) ReserveStock(id string, quantity int64) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE products SET stock_quantity = stock_quantity - $2, updated_at = now()
		 WHERE id = $1 AND stock_quantity >= $2`,
		id, quantity,
	)
	if err != nil {
		return fmt.Errorf("reserve stock: %w", err)
	}
	if cmd.RowsAffected() > 0 {
		return nil
	}

	var available int64
	err = r.q.QueryRow(context.Background(),
		`SELECT stock_quantity FROM products WHERE id = $1`, id,
	).Scan(&available)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("reserve stock: read available: %w", err)
	}
	return &domain.InsufficientStockError{ProductID: id, Requested: quantity, Available: available}
}

// ReleaseStock increments stock (line deletion, restock).
func (r *ProductRepo) ReleaseStock(id string, quantity int64) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE products SET stock_quantity = stock_quantity + $2, updated_at = now() WHERE id = $1`,
		id, quantity,
	)
	if err != nil {
		return fmt.Errorf("release stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes a product. Bill lines keep their snapshots (FK is SET NULL).
func (r *ProductRepo) Delete(id string) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
