package cart

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/ruenthai/backend-pos/internal/catalog"
)

// ErrNotFound indicates the referenced menu item does not exist.
var ErrNotFound = errors.New("menu item not found")

// ErrUnavailable indicates the menu item is currently not for sale.
var ErrUnavailable = errors.New("menu item unavailable")

// ErrInvalidInput is returned when the provided payload is invalid.
var ErrInvalidInput = errors.New("invalid input")

// Service owns the open cart of each POS terminal. Carts are ephemeral,
// matching the front-of-house flow: created empty, discarded on checkout.
// One cashier drives one terminal, so a single mutex per service is enough.
type Service struct {
	Catalog *catalog.Service

	mu    sync.Mutex
	carts map[string]*Cart
}

// NewService constructs a cart service backed by the given catalog.
func NewService(catalogSvc *catalog.Service) *Service {
	return &Service{Catalog: catalogSvc, carts: map[string]*Cart{}}
}

// With runs fn while holding the terminal's cart, serialising all access.
// The cart is created on first use.
func (s *Service) With(terminal string, fn func(c *Cart) error) error {
	if s == nil {
		return errors.New("cart service not configured")
	}
	if terminal == "" {
		return fmt.Errorf("terminal is required: %w", ErrInvalidInput)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.carts[terminal]
	if !ok {
		c = &Cart{}
		s.carts[terminal] = c
	}
	return fn(c)
}

// AddItem resolves the menu item and adds it to the terminal's cart.
func (s *Service) AddItem(ctx context.Context, terminal string, itemID uuid.UUID) error {
	if s == nil || s.Catalog == nil {
		return errors.New("cart service not configured")
	}
	item, err := s.Catalog.Item(ctx, itemID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	if !item.Available {
		return fmt.Errorf("%w: %s", ErrUnavailable, itemID)
	}
	return s.With(terminal, func(c *Cart) error {
		c.AddItem(item)
		return nil
	})
}

// ChangeQuantity adjusts a line's quantity; unknown lines are a no-op.
func (s *Service) ChangeQuantity(terminal string, itemID uuid.UUID, delta int) error {
	return s.With(terminal, func(c *Cart) error {
		c.ChangeQuantity(itemID, delta)
		return nil
	})
}

// RemoveItem drops a line unconditionally.
func (s *Service) RemoveItem(terminal string, itemID uuid.UUID) error {
	return s.With(terminal, func(c *Cart) error {
		c.RemoveItem(itemID)
		return nil
	})
}

// Clear empties the terminal's cart.
func (s *Service) Clear(terminal string) error {
	return s.With(terminal, func(c *Cart) error {
		c.Clear()
		return nil
	})
}

// Snapshot returns a copy of the terminal's cart lines.
func (s *Service) Snapshot(terminal string) ([]Line, error) {
	var lines []Line
	err := s.With(terminal, func(c *Cart) error {
		lines = c.Lines()
		return nil
	})
	return lines, err
}
