package inventory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicore/clinic-api/internal/application/inventory"
	"github.com/clinicore/clinic-api/internal/domain"
	"github.com/clinicore/clinic-api/internal/domain/entity"
)

type stockRepo struct {
	products map[string]*entity.Product
}

func newStockRepo(products ...*entity.Product) *stockRepo {
	r := &stockRepo{products: map[string]*entity.Product{}}
	for _, p := range products {
		cp := *p
		r.products[p.ID] = &cp
	}
	return r
}

func (r *stockRepo) Create(p *entity.Product) error { return nil }

func (r *stockRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *stockRepo) List(limit, offset int) ([]*entity.Product, error) { return nil, nil }
func (r *stockRepo) ListLowStock() ([]*entity.Product, error)          { return nil, nil }
func (r *stockRepo) Update(p *entity.Product) error                    { return nil }
func (r *stockRepo) Delete(id string) error                            { return nil }

func (r *stockRepo) UpdatePrice(id string, cents int64) error {
	p, ok := r.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.UnitPriceCents = cents
	return nil
}

func (r *stockRepo) ReserveStock(id string, qty int64) error {
	p, ok := r.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	if p.StockQuantity < qty {
		return &domain.InsufficientStockError{ProductID: id, Requested: qty, Available: p.StockQuantity}
	}
	p.StockQuantity -= qty
	return nil
}

func (r *stockRepo) ReleaseStock(id string, qty int64) error {
	p, ok := r.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.StockQuantity += qty
	return nil
}

func TestReserveReleaseRoundTrip(t *testing.T) {
	repo := newStockRepo(&entity.Product{ID: "p1", StockQuantity: 10})
	adj := inventory.NewAdjuster(repo)
	ctx := context.Background()

	require.NoError(t, adj.Reserve(ctx, "p1", 4))
	p, _ := repo.GetByID("p1")
	assert.Equal(t, int64(6), p.StockQuantity)

	require.NoError(t, adj.Release(ctx, "p1", 4))
	p, _ = repo.GetByID("p1")
	assert.Equal(t, int64(10), p.StockQuantity)
}

func TestReserveShortfallLeavesStockUnchanged(t *testing.T) {
	repo := newStockRepo(&entity.Product{ID: "p1", StockQuantity: 3})
	adj := inventory.NewAdjuster(repo)

	err := adj.Reserve(context.Background(), "p1", 5)
	var insufficient *domain.InsufficientStockError
	require.True(t, errors.As(err, &insufficient))
	assert.Equal(t, int64(5), insufficient.Requested)
	assert.Equal(t, int64(3), insufficient.Available)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	p, _ := repo.GetByID("p1")
	assert.Equal(t, int64(3), p.StockQuantity)
}

func TestReserveExactStockDrainsToZero(t *testing.T) {
	repo := newStockRepo(&entity.Product{ID: "p1", StockQuantity: 3})
	adj := inventory.NewAdjuster(repo)

	require.NoError(t, adj.Reserve(context.Background(), "p1", 3))
	p, _ := repo.GetByID("p1")
	assert.Equal(t, int64(0), p.StockQuantity)
}

func TestAdjusterInputValidation(t *testing.T) {
	repo := newStockRepo(&entity.Product{ID: "p1", StockQuantity: 10})
	adj := inventory.NewAdjuster(repo)
	ctx := context.Background()

	assert.ErrorIs(t, adj.Reserve(ctx, "", 1), domain.ErrInvalidInput)
	assert.ErrorIs(t, adj.Reserve(ctx, "p1", 0), domain.ErrInvalidInput)
	assert.ErrorIs(t, adj.Release(ctx, "p1", -2), domain.ErrInvalidInput)
	assert.ErrorIs(t, adj.UpdatePrice(ctx, "p1", -1), domain.ErrInvalidInput)
}

func TestUpdatePrice(t *testing.T) {
	repo := newStockRepo(&entity.Product{ID: "p1", UnitPriceCents: 1000})
	adj := inventory.NewAdjuster(repo)

	require.NoError(t, adj.UpdatePrice(context.Background(), "p1", 1250))
	p, _ := repo.GetByID("p1")
	assert.Equal(t, int64(1250), p.UnitPriceCents)
}
