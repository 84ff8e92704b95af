package cart

import (
	"github.com/google/uuid"

	"github.com/ruenthai/backend-pos/internal/catalog"
	"github.com/ruenthai/backend-pos/internal/pricing"
)

// Line is one cart entry. The unit price is snapshotted when the item is
// first added, so later menu price changes never alter an open cart.
type Line struct {
	ItemID    uuid.UUID     `json:"itemId"`
	NameEN    string        `json:"nameEn"`
	NameTH    string        `json:"nameTh"`
	UnitPrice pricing.Money `json:"unitPrice"`
	Qty       int           `json:"qty"`
}

// Total returns the line total.
func (l Line) Total() pricing.Money {
	return pricing.Money(l.Qty) * l.UnitPrice
}

// Cart is an ordered collection of lines, at most one per menu item. It is a
// plain value type with no external calls; a Service serialises access to it.
type Cart struct {
	lines []Line
}

// AddItem increments an existing line or appends a new quantity-1 line with
// the item's current price captured.
func (c *Cart) AddItem(item catalog.Item) {
	for i := range c.lines {
		if c.lines[i].ItemID == item.ID {
			c.lines[i].Qty++
			return
		}
	}
	c.lines = append(c.lines, Line{
		ItemID:    item.ID,
		NameEN:    item.NameEN,
		NameTH:    item.NameTH,
		UnitPrice: item.Price,
		Qty:       1,
	})
}

// ChangeQuantity adjusts a line's quantity by delta, clamping at zero. A line
// reaching zero is removed. Unknown item ids are a no-op.
func (c *Cart) ChangeQuantity(itemID uuid.UUID, delta int) {
	for i := range c.lines {
		if c.lines[i].ItemID != itemID {
			continue
		}
		qty := c.lines[i].Qty + delta
		if qty <= 0 {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
		c.lines[i].Qty = qty
		return
	}
}

// RemoveItem drops the line for itemID if present.
func (c *Cart) RemoveItem(itemID uuid.UUID) {
	for i := range c.lines {
		if c.lines[i].ItemID == itemID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.lines = nil
}

// Empty reports whether the cart has no lines.
func (c *Cart) Empty() bool {
	return len(c.lines) == 0
}

// Subtotal sums line totals; zero for an empty cart.
func (c *Cart) Subtotal() pricing.Money {
	var subtotal pricing.Money
	for _, l := range c.lines {
		subtotal += l.Total()
	}
	return subtotal
}

// Lines returns a copy of the cart's lines in insertion order.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// PricingItems converts the lines for the settlement engine.
func (c *Cart) PricingItems() []pricing.Item {
	items := make([]pricing.Item, 0, len(c.lines))
	for _, l := range c.lines {
		items = append(items, pricing.Item{Qty: l.Qty, UnitPrice: l.UnitPrice})
	}
	return items
}
