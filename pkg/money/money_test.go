package money_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicore/clinic-api/pkg/money"
)

func TestToMajorAndBack(t *testing.T) {
	cases := []int64{0, 1, 99, 100, 12345, 1_000_000_00}
	for _, cents := range cases {
		d := money.ToMajor(cents)
		got, err := money.FromMajor(d)
		require.NoError(t, err)
		assert.Equal(t, cents, got)
	}
}

func TestFromMajor_SubCentPrecisionFails(t *testing.T) {
	d := decimal.RequireFromString("10.005")
	_, err := money.FromMajor(d)
	assert.Error(t, err, "fractions of a cent must be rejected")
}

func TestParseMajor(t *testing.T) {
	got, err := money.ParseMajor("49.90")
	require.NoError(t, err)
	assert.Equal(t, int64(4990), got)

	_, err = money.ParseMajor("not-a-number")
	assert.Error(t, err)
}

func TestFormatMajor(t *testing.T) {
	assert.Equal(t, "0.00", money.FormatMajor(0))
	assert.Equal(t, "0.05", money.FormatMajor(5))
	assert.Equal(t, "123.45", money.FormatMajor(12345))
}

func TestDisplay(t *testing.T) {
	assert.Equal(t, "1,234.50", money.Display(123450))
	assert.Equal(t, "0.09", money.Display(9))
	assert.Equal(t, "-12.00", money.Display(-1200))
}
