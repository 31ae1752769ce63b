package cart

import (
	"github.com/rjbuenaventura/kusina-pos/internal/catalog"
	"github.com/shopspring/decimal"
)

// AddOutcome reports how the ledger responded to an add or increment
// intent. Blocked intents are ordinary outcomes the presentation layer
// turns into "out of stock" / "max reached" messaging, never errors.
type AddOutcome string

const (
	OutcomeAdded       AddOutcome = "added"
	OutcomeAtLimit     AddOutcome = "at_limit"
	OutcomeUnavailable AddOutcome = "unavailable"
)

// Line is one product entry in the cart. Name, unit price and image are
// captured when the product is first added and are immune to later
// catalog changes. The availability descriptor is snapshotted the same
// way: the mode is fixed for the item's lifetime within a session.
type Line struct {
	ProductID int64
	Name      string
	UnitPrice decimal.Decimal
	ImagePath string
	Quantity  int

	availability catalog.Availability
}

// RemainingCapacity returns how many more units of this line's product
// may still be added.
func (l Line) RemainingCapacity() int {
	return catalog.RemainingCapacity(l.availability, l.Quantity)
}

// Cart is the ordered ledger of line items for one unsubmitted order.
// Lines are unique by product id and always carry quantity >= 1. All
// mutation methods return a new Cart value; callers decide what to keep.
type Cart struct {
	lines           []Line
	discountPercent *int
}

// Lines returns a copy of the ledger in insertion order.
func (c Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// Len returns the number of distinct lines.
func (c Cart) Len() int {
	return len(c.lines)
}

// LineFor returns the line holding the given product, if any.
func (c Cart) LineFor(productID int64) (Line, bool) {
	for _, line := range c.lines {
		if line.ProductID == productID {
			return line, true
		}
	}
	return Line{}, false
}

// DiscountPercent returns the entered discount, nil when none was set.
func (c Cart) DiscountPercent() *int {
	if c.discountPercent == nil {
		return nil
	}
	v := *c.discountPercent
	return &v
}

// AddItem puts one unit of the item into the cart. A product already in
// the cart is incremented instead; a brand-new product enters with
// quantity 1 when the availability policy allows a first unit.
func (c Cart) AddItem(item catalog.Item) (Cart, AddOutcome) {
	if _, ok := c.LineFor(item.ID); ok {
		return c.IncrementLine(item.ID)
	}

	if !catalog.CanAdd(item.Availability, 0) {
		return c, OutcomeUnavailable
	}

	lines := c.copyLines()
	lines = append(lines, Line{
		ProductID:    item.ID,
		Name:         item.Name,
		UnitPrice:    item.UnitPrice.Decimal,
		ImagePath:    item.ImagePath,
		Quantity:     1,
		availability: item.Availability,
	})
	return Cart{lines: lines, discountPercent: c.discountPercent}, OutcomeAdded
}

// IncrementLine raises an existing line's quantity by one, re-checking
// the availability ceiling against the quantity already held.
func (c Cart) IncrementLine(productID int64) (Cart, AddOutcome) {
	idx := c.indexOf(productID)
	if idx < 0 {
		return c, OutcomeUnavailable
	}

	line := c.lines[idx]
	if !catalog.CanAdd(line.availability, line.Quantity) {
		return c, OutcomeAtLimit
	}

	lines := c.copyLines()
	lines[idx].Quantity++
	return Cart{lines: lines, discountPercent: c.discountPercent}, OutcomeAdded
}

// DecrementLine lowers a line's quantity by one, removing the line the
// instant it reaches zero. Decrements are never gated by availability;
// a missing product is a no-op.
func (c Cart) DecrementLine(productID int64) Cart {
	idx := c.indexOf(productID)
	if idx < 0 {
		return c
	}

	lines := c.copyLines()
	lines[idx].Quantity--
	if lines[idx].Quantity <= 0 {
		lines = append(lines[:idx], lines[idx+1:]...)
	}
	return Cart{lines: lines, discountPercent: c.discountPercent}
}

// SetDiscountPercent records the cashier-entered discount, clamped to
// [0, 100]. Nil means "no discount entered", which prices the same as an
// explicit 0% but keeps the distinction for display.
func (c Cart) SetDiscountPercent(percent *int) Cart {
	if percent == nil {
		return Cart{lines: c.lines, discountPercent: nil}
	}
	v := *percent
	if v < 0 {
		v = 0
	}
	if v > 100 {
		v = 100
	}
	return Cart{lines: c.lines, discountPercent: &v}
}

// Clear drops every line and resets the discount.
func (c Cart) Clear() Cart {
	return Cart{}
}

func (c Cart) indexOf(productID int64) int {
	for i, line := range c.lines {
		if line.ProductID == productID {
			return i
		}
	}
	return -1
}

func (c Cart) copyLines() []Line {
	lines := make([]Line, len(c.lines))
	copy(lines, c.lines)
	return lines
}
