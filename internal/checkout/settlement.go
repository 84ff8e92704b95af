package checkout

import (
	"errors"

	"github.com/ruenthai/backend-pos/internal/cart"
	"github.com/ruenthai/backend-pos/internal/pricing"
)

// ErrEmptyCart rejects settlement of a cart with no lines. Every entry point
// into settlement enforces this, so an empty order can never be finalised.
var ErrEmptyCart = errors.New("cart is empty")

// Settlement is the priced view of a cart at checkout time. It is a pure
// computation; nothing is persisted until FinalizeOrder.
type Settlement struct {
	Lines   []cart.Line     `json:"lines"`
	Summary pricing.Summary `json:"summary"`
}

// ComputeSettlement prices the given cart lines. Calling it twice on the
// same lines always yields the same result.
func ComputeSettlement(lines []cart.Line, taxBps int) (Settlement, error) {
	if len(lines) == 0 {
		return Settlement{}, ErrEmptyCart
	}
	items := make([]pricing.Item, 0, len(lines))
	for _, line := range lines {
		items = append(items, pricing.Item{Qty: line.Qty, UnitPrice: line.UnitPrice})
	}
	return Settlement{
		Lines:   lines,
		Summary: pricing.Compute(items, taxBps),
	}, nil
}
