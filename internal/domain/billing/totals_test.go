package billing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/clinicore/clinic-api/internal/domain/billing"
	"github.com/clinicore/clinic-api/internal/domain/entity"
)

func item(qty, unitPriceCents int64) *entity.BillItem {
	return &entity.BillItem{
		Quantity:       qty,
		UnitPriceCents: unitPriceCents,
		LineTotalCents: billing.LineTotal(qty, unitPriceCents),
	}
}

func TestComputeTotals_EmptyBill(t *testing.T) {
	got := billing.ComputeTotals(nil)
	assert.Equal(t, int64(0), got.SubtotalCents)
	assert.Equal(t, int64(0), got.TaxCents)
	assert.Equal(t, int64(0), got.TotalCents)
}

func TestComputeTotals_SingleItem(t *testing.T) {
	// quantity=2, unitPrice=5000 -> lineTotal=10000, tax=1000, total=11000
	got := billing.ComputeTotals([]*entity.BillItem{item(2, 5000)})
	assert.Equal(t, int64(10000), got.SubtotalCents)
	assert.Equal(t, int64(1000), got.TaxCents)
	assert.Equal(t, int64(11000), got.TotalCents)
}

func TestComputeTotals_SubtotalIsSumOfLineTotals(t *testing.T) {
	items := []*entity.BillItem{item(1, 2000), item(3, 1000), item(2, 250)}
	got := billing.ComputeTotals(items)

	var want int64
	for _, it := range items {
		want += it.LineTotalCents
	}
	assert.Equal(t, want, got.SubtotalCents)
	assert.Equal(t, got.SubtotalCents+got.TaxCents, got.TotalCents)
}

func TestComputeTotals_RemovingItemMatchesNeverAdded(t *testing.T) {
	// add 2000 + 3000, then drop the first: same totals as billing 3000 alone
	remaining := []*entity.BillItem{item(1, 3000)}
	got := billing.ComputeTotals(remaining)
	assert.Equal(t, int64(3000), got.SubtotalCents)
	assert.Equal(t, int64(300), got.TaxCents)
	assert.Equal(t, int64(3300), got.TotalCents)
}

func TestTaxFromSubtotal_RoundsHalfUp(t *testing.T) {
	cases := []struct {
		subtotal int64
		tax      int64
	}{
		{0, 0},
		{4, 0},    // 0.4 -> 0
		{5, 1},    // 0.5 -> 1 (half up)
		{6, 1},    // 0.6 -> 1
		{14, 1},   // 1.4 -> 1
		{15, 2},   // 1.5 -> 2
		{10000, 1000},
		{10004, 1000},
		{10005, 1001},
	}
	for _, c := range cases {
		assert.Equalf(t, c.tax, billing.TaxFromSubtotal(c.subtotal),
			"subtotal=%d", c.subtotal)
	}
}
