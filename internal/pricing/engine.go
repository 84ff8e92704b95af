package pricing

// Money represents a monetary value stored in minor units.
type Money = int64

// Item describes a line item used for settlement calculation.
type Item struct {
	Qty       int
	UnitPrice Money
}

// Summary aggregates the computed settlement components for a cart.
type Summary struct {
	Subtotal Money `json:"subtotal"`
	Tax      Money `json:"tax"`
	Total    Money `json:"total"`
}

// Subtotal sums line totals. Lines with non-positive quantity contribute
// nothing.
func Subtotal(items []Item) Money {
	var subtotal Money
	for _, it := range items {
		if it.Qty <= 0 || it.UnitPrice < 0 {
			continue
		}
		subtotal += Money(it.Qty) * it.UnitPrice
	}
	return subtotal
}

// Compute calculates subtotal, tax and total for the given lines. Tax is
// expressed in basis points and rounded half-up to the currency's minor unit,
// so Total >= Subtotal always holds for taxBps >= 0.
func Compute(items []Item, taxBps int) Summary {
	subtotal := Subtotal(items)
	tax := TaxOn(subtotal, taxBps)
	return Summary{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal + tax,
	}
}

// TaxOn applies a basis-point tax rate to an amount, rounding half-up.
func TaxOn(amount Money, taxBps int) Money {
	if amount <= 0 || taxBps <= 0 {
		return 0
	}
	return (amount*Money(taxBps) + 5000) / 10000
}
