package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/clinicore/clinic-api/internal/application/dto"
	"github.com/clinicore/clinic-api/internal/application/inventory"
	"github.com/clinicore/clinic-api/internal/domain"
	"github.com/clinicore/clinic-api/internal/domain/entity"
	"github.com/clinicore/clinic-api/internal/domain/repository"
	"github.com/clinicore/clinic-api/pkg/money"
)

// ProductUseCase CRUD over inventory products. Stock mutations go through the
// adjuster; Update never touches stock.
type ProductUseCase struct {
	productRepo repository.ProductRepository
	adjuster    *inventory.Adjuster
}

// NewProductUseCase constructs the use case.
func NewProductUseCase(productRepo repository.ProductRepository, adjuster *inventory.Adjuster) *ProductUseCase {
	return &ProductUseCase{productRepo: productRepo, adjuster: adjuster}
}

// Create registers a product.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" || in.StockQuantity < 0 || in.MinStock < 0 {
		return nil, domain.ErrInvalidInput
	}
	priceCents, err := money.FromMajor(in.UnitPrice)
	if err != nil || priceCents < 0 {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	p := &entity.Product{
		ID:             uuid.New().String(),
		Name:           in.Name,
		Description:    in.Description,
		UnitPriceCents: priceCents,
		StockQuantity:  in.StockQuantity,
		MinStock:       in.MinStock,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.productRepo.Create(p); err != nil {
		return nil, err
	}
	return toProductResponse(p), nil
}

// Get returns one product.
func (uc *ProductUseCase) Get(ctx context.Context, id string) (*dto.ProductResponse, error) {
	p, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(p), nil
}

// List returns a page of products.
func (uc *ProductUseCase) List(ctx context.Context, page dto.PageRequest) ([]dto.ProductResponse, error) {
	page.DefaultPage()
	products, err := uc.productRepo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, *toProductResponse(p))
	}
	return out, nil
}

// ListLowStock returns products at or below their minimum threshold.
func (uc *ProductUseCase) ListLowStock(ctx context.Context) ([]dto.ProductResponse, error) {
	products, err := uc.productRepo.ListLowStock()
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, *toProductResponse(p))
	}
	return out, nil
}

// Update applies a partial update of the catalog fields.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		p.Name = name
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.UnitPrice != nil {
		cents, err := money.FromMajor(*in.UnitPrice)
		if err != nil || cents < 0 {
			return nil, domain.ErrInvalidInput
		}
		p.UnitPriceCents = cents
	}
	if in.MinStock != nil {
		if *in.MinStock < 0 {
			return nil, domain.ErrInvalidInput
		}
		p.MinStock = *in.MinStock
	}
	p.UpdatedAt = time.Now()

	if err := uc.productRepo.Update(p); err != nil {
		return nil, err
	}
	return toProductResponse(p), nil
}

// Restock increases stock by the received quantity.
func (uc *ProductUseCase) Restock(ctx context.Context, id string, in dto.RestockProductRequest) (*dto.ProductResponse, error) {
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	p, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.adjuster.Release(ctx, id, in.Quantity); err != nil {
		return nil, err
	}
	return uc.Get(ctx, id)
}

// Delete removes a product from the catalog. Existing bill lines keep their
// snapshot description and price.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	p, err := uc.productRepo.GetByID(id)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.ErrNotFound
	}
	return uc.productRepo.Delete(id)
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:             p.ID,
		Name:           p.Name,
		Description:    p.Description,
		UnitPriceCents: p.UnitPriceCents,
		UnitPrice:      money.FormatMajor(p.UnitPriceCents),
		StockQuantity:  p.StockQuantity,
		MinStock:       p.MinStock,
		LowStock:       p.LowStock(),
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}
