package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Store persists stock levels plus the set of order numbers whose
// deductions have already been applied.
type Store interface {
	UpsertStock(ctx context.Context, item StockItem) (StockItem, error)
	GetStock(ctx context.Context, itemID uuid.UUID) (StockItem, error)
	ListStock(ctx context.Context) ([]StockItem, error)
	// ApplyOrder deducts the lines and marks the order number processed in
	// one atomic step. It returns false without touching stock when the
	// order number was already processed.
	ApplyOrder(ctx context.Context, orderNumber string, lines []Deduction, at time.Time) (bool, error)
}

// Service manages stock levels. Order deductions are idempotent per order
// number so a redelivered order.completed event cannot deduct twice.
type Service struct {
	Store Store
	Log   zerolog.Logger
	Now   func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

// SetLevel creates or replaces the stock record for a menu item.
func (s *Service) SetLevel(ctx context.Context, item StockItem) (StockItem, error) {
	if s == nil || s.Store == nil {
		return StockItem{}, fmt.Errorf("inventory: service not configured")
	}
	if item.ItemID == uuid.Nil {
		return StockItem{}, fmt.Errorf("%w: item id is required", ErrInvalidInput)
	}
	if item.OnHand < 0 || item.ReorderLevel < 0 {
		return StockItem{}, fmt.Errorf("%w: quantities must not be negative", ErrInvalidInput)
	}
	item.NameEN = strings.TrimSpace(item.NameEN)
	item.UpdatedAt = s.now()
	return s.Store.UpsertStock(ctx, item)
}

// List returns all tracked stock items.
func (s *Service) List(ctx context.Context) ([]StockItem, error) {
	if s == nil || s.Store == nil {
		return nil, fmt.Errorf("inventory: service not configured")
	}
	return s.Store.ListStock(ctx)
}

// LowStock returns items at or below their reorder level.
func (s *Service) LowStock(ctx context.Context) ([]StockItem, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	var out []StockItem
	for _, item := range all {
		if item.Low() {
			out = append(out, item)
		}
	}
	return out, nil
}

// ApplyOrder deducts stock for a completed order exactly once. Lines for
// untracked items are skipped; on-hand never goes below zero.
func (s *Service) ApplyOrder(ctx context.Context, orderNumber string, lines []Deduction) error {
	if s == nil || s.Store == nil {
		return fmt.Errorf("inventory: service not configured")
	}
	orderNumber = strings.TrimSpace(orderNumber)
	if orderNumber == "" {
		return fmt.Errorf("%w: order number is required", ErrInvalidInput)
	}
	applied, err := s.Store.ApplyOrder(ctx, orderNumber, lines, s.now())
	if err != nil {
		return fmt.Errorf("inventory: apply order %s: %w", orderNumber, err)
	}
	if !applied {
		s.Log.Debug().Str("order", orderNumber).Msg("inventory deduction already applied")
	}
	return nil
}
