package orders

import (
	"github.com/shopspring/decimal"

	"github.com/camfab-erp/camfab-erp/internal/shared"
)

// TaxRate is the fixed VAT rate applied to order totals.
var TaxRate = decimal.New(18, -2)

// PriceLineItem computes the unit and total price for one line item.
// Dimensions are integer millimetres; the area conversion to square metres is
// an exact decimal shift, not a floating-point division. The total is rounded
// to 2 fractional digits, half-up.
func PriceLineItem(rate decimal.Decimal, width, height, quantity int) (unitPrice, totalPrice decimal.Decimal, err error) {
	if width <= 0 || height <= 0 {
		return decimal.Zero, decimal.Zero, shared.Invalid("width and height must be positive millimetres")
	}
	if quantity <= 0 {
		return decimal.Zero, decimal.Zero, shared.Invalid("quantity must be positive")
	}
	if rate.IsNegative() {
		return decimal.Zero, decimal.Zero, shared.Invalid("product rate must not be negative")
	}

	// (width × height) mm² / 1,000,000 = m², exact.
	areaSqm := decimal.New(int64(width)*int64(height), -6)
	totalPrice = rate.Mul(areaSqm).Mul(decimal.New(int64(quantity), 0)).Round(2)
	return rate, totalPrice, nil
}

// PriceOrder aggregates already-priced items into order totals. Summation is
// commutative over the rounded per-item totals, so the result does not depend
// on iteration order.
func PriceOrder(items []OrderItem) (totalAmount, taxAmount, grandTotal decimal.Decimal) {
	totalAmount = decimal.Zero
	for _, item := range items {
		totalAmount = totalAmount.Add(item.TotalPrice)
	}
	taxAmount = totalAmount.Mul(TaxRate).Round(2)
	grandTotal = totalAmount.Add(taxAmount)
	return totalAmount, taxAmount, grandTotal
}
