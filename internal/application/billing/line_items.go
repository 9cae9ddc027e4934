package billing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/clinicore/clinic-api/internal/application/dto"
	"github.com/clinicore/clinic-api/internal/domain"
	domainbilling "github.com/clinicore/clinic-api/internal/domain/billing"
	"github.com/clinicore/clinic-api/internal/domain/entity"
	"github.com/clinicore/clinic-api/internal/domain/repository"
	"github.com/clinicore/clinic-api/pkg/money"
)

// LineItemUseCase mutates a bill's lines. Every mutation runs item write,
// stock adjustment and totals recalculation inside one transaction, so call
// sites cannot forget the recalculation step or leave stock dangling.
type LineItemUseCase struct {
	txRunner    TxRunner
	billRepo    repository.BillRepository
	itemRepo    repository.BillItemRepository
	productRepo repository.ProductRepository
	stock       StockAdjuster
}

// NewLineItemUseCase constructs the use case.
func NewLineItemUseCase(
	txRunner TxRunner,
	billRepo repository.BillRepository,
	itemRepo repository.BillItemRepository,
	productRepo repository.ProductRepository,
	stock StockAdjuster,
) *LineItemUseCase {
	return &LineItemUseCase{
		txRunner:    txRunner,
		billRepo:    billRepo,
		itemRepo:    itemRepo,
		productRepo: productRepo,
		stock:       stock,
	}
}

// AddItems adds a batch of lines to a bill. Lines whose product has
// insufficient stock are skipped and reported, not fatal; partial success is
// the expected outcome of a mixed batch. Validation errors and persistence
// failures abort and roll back the whole batch.
func (uc *LineItemUseCase) AddItems(ctx context.Context, billID string, in dto.AddBillItemsRequest) (*dto.AddItemsResult, error) {
	if billID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}

	// Validate shape and convert prices before touching the DB.
	for i := range in.Items {
		item := &in.Items[i]
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("%w: quantity must be positive", domain.ErrInvalidInput)
		}
		if item.UnitPrice.IsNegative() {
			return nil, fmt.Errorf("%w: unit price must not be negative", domain.ErrInvalidInput)
		}
		if item.ProductID == "" && item.Description == "" {
			return nil, fmt.Errorf("%w: treatment lines need a description", domain.ErrInvalidInput)
		}
	}

	bill, err := uc.billRepo.GetByID(billID)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, domain.ErrNotFound
	}
	if bill.Status == entity.BillStatusCancelled {
		return nil, domain.ErrConflict
	}

	result := &dto.AddItemsResult{
		Added:   []dto.BillItemResponse{},
		Skipped: []dto.SkippedItemResponse{},
	}

	err = uc.txRunner.RunBilling(ctx, func(
		billRepo repository.BillRepository,
		itemRepo repository.BillItemRepository,
		productRepo repository.ProductRepository,
	) error {
		now := time.Now()
		for i := range in.Items {
			req := &in.Items[i]

			description := req.Description
			unitPriceCents, convErr := money.FromMajor(req.UnitPrice)
			if convErr != nil {
				return fmt.Errorf("%w: %v", domain.ErrInvalidInput, convErr)
			}

			if req.ProductID != "" {
				product, pErr := productRepo.GetByID(req.ProductID)
				if pErr != nil {
					return pErr
				}
				if product == nil {
					return domain.ErrNotFound
				}
				if description == "" {
					description = product.Name
				}
				if req.UnitPrice.IsZero() {
					unitPriceCents = product.UnitPriceCents
				} else if req.UpdateProductPrice && unitPriceCents != product.UnitPriceCents {
					if pErr := productRepo.UpdatePrice(product.ID, unitPriceCents); pErr != nil {
						return pErr
					}
				}

				// Reserve stock; a shortfall skips this line and continues.
				if rErr := uc.stock.ReserveInTx(productRepo, req.ProductID, req.Quantity); rErr != nil {
					var insufficient *domain.InsufficientStockError
					if errors.As(rErr, &insufficient) {
						result.Skipped = append(result.Skipped, dto.SkippedItemResponse{
							ProductID: insufficient.ProductID,
							Requested: insufficient.Requested,
							Available: insufficient.Available,
							Reason:    "insufficient stock",
						})
						continue
					}
					return rErr
				}
			}

			line := &entity.BillItem{
				ID:             uuid.New().String(),
				BillID:         billID,
				ProductID:      req.ProductID,
				Description:    description,
				Quantity:       req.Quantity,
				UnitPriceCents: unitPriceCents,
				LineTotalCents: domainbilling.LineTotal(req.Quantity, unitPriceCents),
				CreatedAt:      now,
			}
			if cErr := itemRepo.Create(line); cErr != nil {
				return cErr
			}
			result.Added = append(result.Added, toItemResponse(line))
		}

		totals, tErr := recalcInTx(billRepo, itemRepo, billID)
		if tErr != nil {
			return tErr
		}
		result.Totals = toTotalsResponse(totals)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// RemoveItem deletes one line, releases its stock reservation when it was
// product-linked, and refreshes the bill totals, all in one transaction.
func (uc *LineItemUseCase) RemoveItem(ctx context.Context, billID, itemID string) (*dto.TotalsResponse, error) {
	if billID == "" || itemID == "" {
		return nil, domain.ErrInvalidInput
	}

	var totals dto.TotalsResponse
	err := uc.txRunner.RunBilling(ctx, func(
		billRepo repository.BillRepository,
		itemRepo repository.BillItemRepository,
		productRepo repository.ProductRepository,
	) error {
		item, err := itemRepo.GetByID(itemID)
		if err != nil {
			return err
		}
		if item == nil || item.BillID != billID {
			return domain.ErrNotFound
		}
		if err := itemRepo.Delete(itemID); err != nil {
			return err
		}
		if item.ProductID != "" {
			if err := uc.stock.ReleaseInTx(productRepo, item.ProductID, item.Quantity); err != nil {
				return err
			}
		}
		t, err := recalcInTx(billRepo, itemRepo, billID)
		if err != nil {
			return err
		}
		totals = toTotalsResponse(t)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &totals, nil
}

// Recalculate re-derives and persists the bill totals from its current lines.
// Mutations already do this internally; the endpoint remains for repairing
// bills imported with stale totals.
func (uc *LineItemUseCase) Recalculate(ctx context.Context, billID string) (*dto.TotalsResponse, error) {
	bill, err := uc.billRepo.GetByID(billID)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, domain.ErrNotFound
	}

	var totals dto.TotalsResponse
	err = uc.txRunner.RunBilling(ctx, func(
		billRepo repository.BillRepository,
		itemRepo repository.BillItemRepository,
		_ repository.ProductRepository,
	) error {
		t, err := recalcInTx(billRepo, itemRepo, billID)
		if err != nil {
			return err
		}
		totals = toTotalsResponse(t)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &totals, nil
}

// ListItems returns the bill's lines in creation order.
func (uc *LineItemUseCase) ListItems(ctx context.Context, billID string) ([]dto.BillItemResponse, error) {
	bill, err := uc.billRepo.GetByID(billID)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.itemRepo.ListByBill(billID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.BillItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, toItemResponse(it))
	}
	return out, nil
}

// recalcInTx sums the current lines and persists the derived totals.
func recalcInTx(billRepo repository.BillRepository, itemRepo repository.BillItemRepository, billID string) (domainbilling.Totals, error) {
	items, err := itemRepo.ListByBill(billID)
	if err != nil {
		return domainbilling.Totals{}, err
	}
	totals := domainbilling.ComputeTotals(items)
	if err := billRepo.UpdateTotals(billID, totals.SubtotalCents, totals.TaxCents, totals.TotalCents); err != nil {
		return domainbilling.Totals{}, err
	}
	return totals, nil
}

func toItemResponse(it *entity.BillItem) dto.BillItemResponse {
	return dto.BillItemResponse{
		ID:             it.ID,
		ProductID:      it.ProductID,
		Description:    it.Description,
		Quantity:       it.Quantity,
		UnitPriceCents: it.UnitPriceCents,
		LineTotalCents: it.LineTotalCents,
	}
}

func toTotalsResponse(t domainbilling.Totals) dto.TotalsResponse {
	return dto.TotalsResponse{
		SubtotalCents: t.SubtotalCents,
		TaxCents:      t.TaxCents,
		TotalCents:    t.TotalCents,
		Subtotal:      money.FormatMajor(t.SubtotalCents),
		Tax:           money.FormatMajor(t.TaxCents),
		Total:         money.FormatMajor(t.TotalCents),
	}
}
