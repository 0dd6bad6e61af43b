// Package analytics implements the retail metrics aggregator and the order
// total calculator. Everything here is a pure function over plain data:
// no storage handles, no logging, no package state. Callers load rows from
// wherever they live (database, CSV extract) and hand them in.
//
// Monetary amounts are decimal.Decimal throughout. Arithmetic is exact;
// rounding to two decimal places is the caller's job at the point of storage
// or display.
package analytics

import (
	"fmt"

	"github.com/shopspring/decimal"

	"retail-analytics/internal/apperror"
)

// LineItem is one order line as needed for total computation.
type LineItem struct {
	Quantity  int
	UnitPrice decimal.Decimal
	Discount  decimal.Decimal
}

// OrderTotals holds the computed monetary totals of an order.
type OrderTotals struct {
	Subtotal decimal.Decimal
	Total    decimal.Decimal
}

// ComputeLineTotal returns quantity*unitPrice - discount for a single line.
// It fails with a validation error when the quantity is not positive, the
// unit price or discount is negative, or the discount exceeds the
// undiscounted line value. A discount equal to the line value is legal and
// yields a zero line total.
func ComputeLineTotal(quantity int, unitPrice, discount decimal.Decimal) (decimal.Decimal, error) {
	if quantity <= 0 {
		return decimal.Zero, apperror.Validationf("quantity must be positive, got %d", quantity)
	}
	if unitPrice.IsNegative() {
		return decimal.Zero, apperror.Validationf("unit price must not be negative, got %s", unitPrice)
	}
	if discount.IsNegative() {
		return decimal.Zero, apperror.Validationf("discount must not be negative, got %s", discount)
	}
	gross := unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
	if discount.GreaterThan(gross) {
		return decimal.Zero, apperror.Validationf("discount %s exceeds line value %s", discount, gross)
	}
	return gross.Sub(discount), nil
}

// ComputeOrderTotals derives an order's subtotal and grand total from its
// line items. The subtotal is the exact sum of per-line totals; the total
// adds tax and shipping. Line validation failures propagate with the
// offending item's position. Orders with no items are legal and subtotal
// to zero.
func ComputeOrderTotals(items []LineItem, tax, shipping decimal.Decimal) (OrderTotals, error) {
	if tax.IsNegative() {
		return OrderTotals{}, apperror.Validationf("tax amount must not be negative, got %s", tax)
	}
	if shipping.IsNegative() {
		return OrderTotals{}, apperror.Validationf("shipping cost must not be negative, got %s", shipping)
	}
	subtotal := decimal.Zero
	for i, item := range items {
		line, err := ComputeLineTotal(item.Quantity, item.UnitPrice, item.Discount)
		if err != nil {
			return OrderTotals{}, fmt.Errorf("item %d: %w", i, err)
		}
		subtotal = subtotal.Add(line)
	}
	return OrderTotals{
		Subtotal: subtotal,
		Total:    subtotal.Add(tax).Add(shipping),
	}, nil
}
