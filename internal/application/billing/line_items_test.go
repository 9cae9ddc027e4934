package billing_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appbilling "github.com/clinicore/clinic-api/internal/application/billing"
	"github.com/clinicore/clinic-api/internal/application/dto"
	"github.com/clinicore/clinic-api/internal/application/inventory"
	"github.com/clinicore/clinic-api/internal/domain"
	"github.com/clinicore/clinic-api/internal/domain/entity"
)

type fixture struct {
	bills    *memBillRepo
	items    *memItemRepo
	products *memProductRepo
	uc       *appbilling.LineItemUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	bills := newMemBillRepo()
	items := newMemItemRepo()
	products := newMemProductRepo()
	tx := &fakeTxRunner{billRepo: bills, itemRepo: items, productRepo: products}
	adjuster := inventory.NewAdjuster(products)
	uc := appbilling.NewLineItemUseCase(tx, bills, items, products, adjuster)
	return &fixture{bills: bills, items: items, products: products, uc: uc}
}

func (f *fixture) seedBill(id string) {
	_ = f.bills.Create(&entity.Bill{
		ID:        id,
		PatientID: "patient-1",
		Number:    "BILL-TEST",
		Status:    entity.BillStatusPending,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	})
}

func (f *fixture) seedProduct(id string, priceCents, stock int64) {
	_ = f.products.Create(&entity.Product{
		ID:             id,
		Name:           "Ibuprofen 400mg",
		UnitPriceCents: priceCents,
		StockQuantity:  stock,
	})
}

func major(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestAddItems_SingleItemTotals(t *testing.T) {
	f := newFixture(t)
	f.seedBill("bill-1")
	f.seedProduct("prod-1", 5000, 10)

	res, err := f.uc.AddItems(context.Background(), "bill-1", dto.AddBillItemsRequest{
		Items: []dto.BillItemRequest{
			{ProductID: "prod-1", Quantity: 2, UnitPrice: major("50.00")},
		},
	})
	require.NoError(t, err)
	require.Len(t, res.Added, 1)
	assert.Empty(t, res.Skipped)

	assert.Equal(t, int64(10000), res.Added[0].LineTotalCents)
	assert.Equal(t, int64(10000), res.Totals.SubtotalCents)
	assert.Equal(t, int64(1000), res.Totals.TaxCents)
	assert.Equal(t, int64(11000), res.Totals.TotalCents)

	// totals persisted onto the bill
	bill, err := f.bills.GetByID("bill-1")
	require.NoError(t, err)
	assert.Equal(t, int64(11000), bill.TotalCents)

	// stock reserved
	p, _ := f.products.GetByID("prod-1")
	assert.Equal(t, int64(8), p.StockQuantity)
}

func TestAddItems_InsufficientStockSkipsAndContinues(t *testing.T) {
	f := newFixture(t)
	f.seedBill("bill-1")
	f.seedProduct("scarce", 1000, 3)
	f.seedProduct("plenty", 2000, 50)

	res, err := f.uc.AddItems(context.Background(), "bill-1", dto.AddBillItemsRequest{
		Items: []dto.BillItemRequest{
			{ProductID: "scarce", Quantity: 5, UnitPrice: major("10.00")},
			{ProductID: "plenty", Quantity: 1, UnitPrice: major("20.00")},
		},
	})
	require.NoError(t, err, "insufficient stock must not abort the batch")

	require.Len(t, res.Skipped, 1)
	assert.Equal(t, "scarce", res.Skipped[0].ProductID)
	assert.Equal(t, int64(5), res.Skipped[0].Requested)
	assert.Equal(t, int64(3), res.Skipped[0].Available)

	require.Len(t, res.Added, 1)
	assert.Equal(t, "plenty", res.Added[0].ProductID)

	// the scarce product's stock is untouched and no line was created for it
	p, _ := f.products.GetByID("scarce")
	assert.Equal(t, int64(3), p.StockQuantity)
	items, _ := f.items.ListByBill("bill-1")
	require.Len(t, items, 1)
	assert.Equal(t, "plenty", items[0].ProductID)

	// totals reflect only the added line
	assert.Equal(t, int64(2000), res.Totals.SubtotalCents)
	assert.Equal(t, int64(200), res.Totals.TaxCents)
	assert.Equal(t, int64(2200), res.Totals.TotalCents)
}

func TestAddItems_TreatmentLineWithoutProduct(t *testing.T) {
	f := newFixture(t)
	f.seedBill("bill-1")

	res, err := f.uc.AddItems(context.Background(), "bill-1", dto.AddBillItemsRequest{
		Items: []dto.BillItemRequest{
			{Description: "Dental cleaning", Quantity: 1, UnitPrice: major("80.00")},
		},
	})
	require.NoError(t, err)
	require.Len(t, res.Added, 1)
	assert.Equal(t, "Dental cleaning", res.Added[0].Description)
	assert.Equal(t, int64(8000), res.Added[0].LineTotalCents)
}

func TestAddItems_DefaultsFromProductSnapshot(t *testing.T) {
	f := newFixture(t)
	f.seedBill("bill-1")
	f.seedProduct("prod-1", 2500, 10)

	res, err := f.uc.AddItems(context.Background(), "bill-1", dto.AddBillItemsRequest{
		Items: []dto.BillItemRequest{
			{ProductID: "prod-1", Quantity: 2}, // no description, zero price
		},
	})
	require.NoError(t, err)
	require.Len(t, res.Added, 1)
	assert.Equal(t, "Ibuprofen 400mg", res.Added[0].Description)
	assert.Equal(t, int64(2500), res.Added[0].UnitPriceCents)
	assert.Equal(t, int64(5000), res.Added[0].LineTotalCents)
}

func TestAddItems_PriceOverridePersistsWhenRequested(t *testing.T) {
	f := newFixture(t)
	f.seedBill("bill-1")
	f.seedProduct("prod-1", 2500, 10)

	_, err := f.uc.AddItems(context.Background(), "bill-1", dto.AddBillItemsRequest{
		Items: []dto.BillItemRequest{
			{ProductID: "prod-1", Quantity: 1, UnitPrice: major("30.00"), UpdateProductPrice: true},
		},
	})
	require.NoError(t, err)

	p, _ := f.products.GetByID("prod-1")
	assert.Equal(t, int64(3000), p.UnitPriceCents, "price override must be persisted")
}

func TestAddItems_Validation(t *testing.T) {
	f := newFixture(t)
	f.seedBill("bill-1")

	cases := []dto.BillItemRequest{
		{Description: "x", Quantity: 0, UnitPrice: major("1.00")},  // zero quantity
		{Description: "x", Quantity: -1, UnitPrice: major("1.00")}, // negative quantity
		{Description: "x", Quantity: 1, UnitPrice: major("-1.00")}, // negative price
		{Quantity: 1, UnitPrice: major("1.00")},                    // no product, no description
	}
	for _, c := range cases {
		_, err := f.uc.AddItems(context.Background(), "bill-1", dto.AddBillItemsRequest{
			Items: []dto.BillItemRequest{c},
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
}

func TestAddItems_UnknownBill(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.AddItems(context.Background(), "nope", dto.AddBillItemsRequest{
		Items: []dto.BillItemRequest{{Description: "x", Quantity: 1, UnitPrice: major("1.00")}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRemoveItem_ReleasesStockAndRecalculates(t *testing.T) {
	f := newFixture(t)
	f.seedBill("bill-1")
	f.seedProduct("prod-1", 2000, 10)

	res, err := f.uc.AddItems(context.Background(), "bill-1", dto.AddBillItemsRequest{
		Items: []dto.BillItemRequest{
			{ProductID: "prod-1", Quantity: 1, UnitPrice: major("20.00")},
			{Description: "Consultation", Quantity: 1, UnitPrice: major("30.00")},
		},
	})
	require.NoError(t, err)
	require.Len(t, res.Added, 2)

	p, _ := f.products.GetByID("prod-1")
	require.Equal(t, int64(9), p.StockQuantity)

	// delete the product line: stock restored, totals as if it was never added
	totals, err := f.uc.RemoveItem(context.Background(), "bill-1", res.Added[0].ID)
	require.NoError(t, err)

	p, _ = f.products.GetByID("prod-1")
	assert.Equal(t, int64(10), p.StockQuantity, "release must restore the exact reserved quantity")

	assert.Equal(t, int64(3000), totals.SubtotalCents)
	assert.Equal(t, int64(300), totals.TaxCents)
	assert.Equal(t, int64(3300), totals.TotalCents)
}

func TestRemoveItem_NotFound(t *testing.T) {
	f := newFixture(t)
	f.seedBill("bill-1")

	_, err := f.uc.RemoveItem(context.Background(), "bill-1", "missing-item")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRecalculate_EmptyBillIsAllZero(t *testing.T) {
	f := newFixture(t)
	f.seedBill("bill-1")

	totals, err := f.uc.Recalculate(context.Background(), "bill-1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), totals.SubtotalCents)
	assert.Equal(t, int64(0), totals.TaxCents)
	assert.Equal(t, int64(0), totals.TotalCents)
}

func TestAddItems_CancelledBillRejected(t *testing.T) {
	f := newFixture(t)
	_ = f.bills.Create(&entity.Bill{ID: "bill-1", Status: entity.BillStatusCancelled})

	_, err := f.uc.AddItems(context.Background(), "bill-1", dto.AddBillItemsRequest{
		Items: []dto.BillItemRequest{{Description: "x", Quantity: 1, UnitPrice: major("1.00")}},
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
}
