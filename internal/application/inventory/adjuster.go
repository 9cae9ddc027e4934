// Package inventory keeps product stock consistent with billed quantities.
package inventory

import (
	"context"

	"github.com/clinicore/clinic-api/internal/domain"
	"github.com/clinicore/clinic-api/internal/domain/repository"
)

// Adjuster applies stock deltas to products. Reservations go through a single
// conditional decrement in the repository, so a concurrent pair of
// reservations can never drive stock negative; releases are unbounded
// increments (stock may be restored past its original ceiling).
type Adjuster struct {
	productRepo repository.ProductRepository
}

// NewAdjuster constructs the adjuster with the pool-bound product repository.
func NewAdjuster(productRepo repository.ProductRepository) *Adjuster {
	return &Adjuster{productRepo: productRepo}
}

// Reserve decrements stock for a sale. Returns *domain.InsufficientStockError
// (carrying the available amount) when quantity exceeds stock; stock is left
// unchanged in that case.
func (a *Adjuster) Reserve(ctx context.Context, productID string, quantity int64) error {
	if productID == "" || quantity <= 0 {
		return domain.ErrInvalidInput
	}
	return a.productRepo.ReserveStock(productID, quantity)
}

// Release returns previously reserved stock, used when a bill item is deleted.
func (a *Adjuster) Release(ctx context.Context, productID string, quantity int64) error {
	if productID == "" || quantity <= 0 {
		return domain.ErrInvalidInput
	}
	return a.productRepo.ReleaseStock(productID, quantity)
}

// UpdatePrice persists a price override made while billing. Independent of stock.
func (a *Adjuster) UpdatePrice(ctx context.Context, productID string, unitPriceCents int64) error {
	if productID == "" || unitPriceCents < 0 {
		return domain.ErrInvalidInput
	}
	return a.productRepo.UpdatePrice(productID, unitPriceCents)
}

// ReserveInTx runs the reservation on the caller's transaction-bound
// repository (billing integration; implements billing.StockAdjuster).
func (a *Adjuster) ReserveInTx(productRepo repository.ProductRepository, productID string, quantity int64) error {
	if productID == "" || quantity <= 0 {
		return domain.ErrInvalidInput
	}
	return productRepo.ReserveStock(productID, quantity)
}

// ReleaseInTx runs the release on the caller's transaction-bound repository.
func (a *Adjuster) ReleaseInTx(productRepo repository.ProductRepository, productID string, quantity int64) error {
	if productID == "" || quantity <= 0 {
		return domain.ErrInvalidInput
	}
	return productRepo.ReleaseStock(productID, quantity)
}
