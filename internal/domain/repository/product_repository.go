package repository

import "github.com/clinicore/clinic-api/internal/domain/entity"

// ProductRepository persistence port for inventory products.
//
// ReserveStock is the only stock decrement: a single conditional UPDATE
// (stock_quantity >= qty) so two concurrent reservations can never oversell.
// ReleaseStock increments without an upper bound.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error) // nil, nil when absent
	List(limit, offset int) ([]*entity.Product, error)
	ListLowStock() ([]*entity.Product, error)
	Update(product *entity.Product) error
	UpdatePrice(id string, unitPriceCents int64) error
	// ReserveStock decrements atomically; on shortfall it returns
	// *domain.InsufficientStockError carrying the available quantity and
	// leaves the row unchanged.
	ReserveStock(id string, quantity int64) error
	ReleaseStock(id string, quantity int64) error
	Delete(id string) error
}
