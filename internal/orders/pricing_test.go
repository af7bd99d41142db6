package orders

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/camfab-erp/camfab-erp/internal/shared"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestPriceLineItem(t *testing.T) {
	t.Run("two square metre panel times three", func(t *testing.T) {
		unit, total, err := PriceLineItem(dec("100.00"), 1000, 2000, 3)
		require.NoError(t, err)
		assert.True(t, unit.Equal(dec("100.00")), "unit price %s", unit)
		assert.True(t, total.Equal(dec("600.00")), "total price %s", total)
	})

	t.Run("sub square metre rounds half up", func(t *testing.T) {
		// 333×333 mm = 0.110889 m²; 75.50 × 0.110889 = 8.3721...
		_, total, err := PriceLineItem(dec("75.50"), 333, 333, 1)
		require.NoError(t, err)
		assert.True(t, total.Equal(dec("8.37")), "total price %s", total)
	})

	t.Run("exact area uses no floating point", func(t *testing.T) {
		// 1 mm × 1 mm at a high rate stays exact where float math would drift.
		_, total, err := PriceLineItem(dec("1000000.00"), 1, 1, 1)
		require.NoError(t, err)
		assert.True(t, total.Equal(dec("1.00")), "total price %s", total)
	})

	t.Run("rejects non positive dimensions", func(t *testing.T) {
		for _, tc := range []struct{ w, h, qty int }{
			{0, 2000, 3},
			{1000, 0, 3},
			{-5, 2000, 3},
			{1000, -5, 3},
		} {
			_, _, err := PriceLineItem(dec("100.00"), tc.w, tc.h, tc.qty)
			assert.True(t, errors.Is(err, shared.ErrValidation), "w=%d h=%d", tc.w, tc.h)
		}
	})

	t.Run("rejects non positive quantity", func(t *testing.T) {
		_, _, err := PriceLineItem(dec("100.00"), 1000, 2000, 0)
		assert.True(t, errors.Is(err, shared.ErrValidation))
		_, _, err = PriceLineItem(dec("100.00"), 1000, 2000, -1)
		assert.True(t, errors.Is(err, shared.ErrValidation))
	})

	t.Run("rejects negative rate", func(t *testing.T) {
		_, _, err := PriceLineItem(dec("-1.00"), 1000, 2000, 1)
		assert.True(t, errors.Is(err, shared.ErrValidation))
	})
}

func TestPriceOrder(t *testing.T) {
	t.Run("totals with eighteen percent tax", func(t *testing.T) {
		items := []OrderItem{
			{TotalPrice: dec("600.00")},
			{TotalPrice: dec("400.00")},
		}
		total, tax, grand := PriceOrder(items)
		assert.True(t, total.Equal(dec("1000.00")), "total %s", total)
		assert.True(t, tax.Equal(dec("180.00")), "tax %s", tax)
		assert.True(t, grand.Equal(dec("1180.00")), "grand %s", grand)
	})

	t.Run("empty order is all zero", func(t *testing.T) {
		total, tax, grand := PriceOrder(nil)
		assert.True(t, total.IsZero())
		assert.True(t, tax.IsZero())
		assert.True(t, grand.IsZero())
	})

	t.Run("sum independent of item order", func(t *testing.T) {
		forward := []OrderItem{
			{TotalPrice: dec("10.01")},
			{TotalPrice: dec("20.02")},
			{TotalPrice: dec("30.03")},
		}
		reversed := []OrderItem{forward[2], forward[1], forward[0]}

		totalA, taxA, grandA := PriceOrder(forward)
		totalB, taxB, grandB := PriceOrder(reversed)
		assert.True(t, totalA.Equal(totalB))
		assert.True(t, taxA.Equal(taxB))
		assert.True(t, grandA.Equal(grandB))
	})
}
