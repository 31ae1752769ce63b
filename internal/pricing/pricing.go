package pricing

import (
	"strings"

	"github.com/rjbuenaventura/kusina-pos/internal/cart"
	pkgerrors "github.com/rjbuenaventura/kusina-pos/pkg/errors"
	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// Totals are derived from the ledger on every read, never stored, so the
// displayed and submitted numbers cannot drift apart. Values stay at full
// precision; rendering rounds to two fraction digits at the boundary.
type Totals struct {
	Subtotal       decimal.Decimal
	DiscountAmount decimal.Decimal
	Total          decimal.Decimal
}

// Compute derives subtotal, discount amount and total from the cart.
// A nil discount percent prices the same as zero.
func Compute(c cart.Cart) Totals {
	subtotal := decimal.Zero
	for _, line := range c.Lines() {
		subtotal = subtotal.Add(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}

	percent := 0
	if p := c.DiscountPercent(); p != nil {
		percent = *p
	}
	discount := subtotal.Mul(decimal.NewFromInt(int64(percent))).Div(oneHundred)

	return Totals{
		Subtotal:       subtotal,
		DiscountAmount: discount,
		Total:          subtotal.Sub(discount),
	}
}

// ParseAmountPaid parses the cashier-entered tender. The raw value is a
// free-form input field, so empty and malformed strings are validation
// outcomes rather than faults.
func ParseAmountPaid(raw string) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, "amount paid is required")
	}
	amount, err := decimal.NewFromString(trimmed)
	if err != nil {
		return decimal.Zero, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "amount paid must be a number")
	}
	if amount.IsNegative() {
		return decimal.Zero, pkgerrors.New(pkgerrors.CodeValidation, "amount paid cannot be negative")
	}
	return amount, nil
}

// Change returns amountPaid minus the total due.
func Change(amountPaid decimal.Decimal, totals Totals) decimal.Decimal {
	return amountPaid.Sub(totals.Total)
}

// Sufficient reports whether the tender covers the total. Submission is
// blocked, not failed, while this is false.
func Sufficient(amountPaid decimal.Decimal, totals Totals) bool {
	return amountPaid.GreaterThanOrEqual(totals.Total)
}
