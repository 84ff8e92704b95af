package order

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/ruenthai/backend-pos/internal/payment"
	"github.com/ruenthai/backend-pos/internal/pricing"
)

var ErrNotFound = errors.New("order not found")

// Line is one snapshotted order line. Prices are frozen at the moment the
// item entered the cart; later menu edits never rewrite history.
type Line struct {
	ItemID    uuid.UUID     `json:"itemId"`
	NameEN    string        `json:"nameEn"`
	NameTH    string        `json:"nameTh,omitempty"`
	UnitPrice pricing.Money `json:"unitPrice"`
	Qty       int           `json:"qty"`
	LineTotal pricing.Money `json:"lineTotal"`
}

// Order is an immutable completed order. Only checkout constructs these.
type Order struct {
	ID       uuid.UUID      `json:"id"`
	Number   string         `json:"number"`
	Terminal string         `json:"terminal"`
	ShiftID  uuid.UUID      `json:"shiftId"`
	Lines    []Line         `json:"lines"`
	Subtotal pricing.Money  `json:"subtotal"`
	Tax      pricing.Money  `json:"tax"`
	Total    pricing.Money  `json:"total"`
	Payment  payment.Result `json:"payment"`
	PlacedAt time.Time      `json:"placedAt"`
}

// Store persists completed orders. InsertOrder writes the order and all of
// its lines atomically. DeleteOrder exists solely so checkout can void an
// order whose drawer entry failed; nothing else may remove history.
type Store interface {
	InsertOrder(ctx context.Context, o Order) error
	DeleteOrder(ctx context.Context, id uuid.UUID) error
	GetOrder(ctx context.Context, id uuid.UUID) (Order, error)
	ListOrders(ctx context.Context, terminal string, limit int) ([]Order, error)
	ListOrdersBetween(ctx context.Context, from, to time.Time) ([]Order, error)
	// NextSequence returns the next per-day order counter, starting at 1.
	NextSequence(ctx context.Context, day string) (int, error)
}
