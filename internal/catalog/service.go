package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Service encapsulates menu maintenance and lookup. Mutations belong to the
// back-office CMS; the POS and cart layers only read from it.
type Service struct {
	Store Store
}

// Categories lists all categories, active or not; the POS client filters.
func (s *Service) Categories(ctx context.Context) ([]Category, error) {
	if s == nil || s.Store == nil {
		return nil, errors.New("catalog service not configured")
	}
	return s.Store.ListCategories(ctx)
}

// Items lists menu items, optionally restricted to one category.
func (s *Service) Items(ctx context.Context, categoryID *uuid.UUID) ([]Item, error) {
	if s == nil || s.Store == nil {
		return nil, errors.New("catalog service not configured")
	}
	return s.Store.ListItems(ctx, categoryID)
}

// Item returns a single menu item by id.
func (s *Service) Item(ctx context.Context, id uuid.UUID) (Item, error) {
	if s == nil || s.Store == nil {
		return Item{}, errors.New("catalog service not configured")
	}
	return s.Store.GetItem(ctx, id)
}

// CreateItem validates and persists a new menu item.
func (s *Service) CreateItem(ctx context.Context, in ItemInput) (Item, error) {
	if s == nil || s.Store == nil {
		return Item{}, errors.New("catalog service not configured")
	}
	if err := validateItem(in); err != nil {
		return Item{}, err
	}
	return s.Store.CreateItem(ctx, in)
}

// UpdateItem validates and persists changes to an existing menu item.
func (s *Service) UpdateItem(ctx context.Context, id uuid.UUID, in ItemInput) (Item, error) {
	if s == nil || s.Store == nil {
		return Item{}, errors.New("catalog service not configured")
	}
	if err := validateItem(in); err != nil {
		return Item{}, err
	}
	return s.Store.UpdateItem(ctx, id, in)
}

// DeleteItem removes a menu item. Completed orders keep their own snapshot
// of name and price, so deletion never rewrites sales history.
func (s *Service) DeleteItem(ctx context.Context, id uuid.UUID) error {
	if s == nil || s.Store == nil {
		return errors.New("catalog service not configured")
	}
	return s.Store.DeleteItem(ctx, id)
}

// CreateCategory persists a new category.
func (s *Service) CreateCategory(ctx context.Context, in CategoryInput) (Category, error) {
	if s == nil || s.Store == nil {
		return Category{}, errors.New("catalog service not configured")
	}
	if strings.TrimSpace(in.NameEN) == "" && strings.TrimSpace(in.NameTH) == "" {
		return Category{}, fmt.Errorf("category name required: %w", ErrInvalidInput)
	}
	return s.Store.CreateCategory(ctx, in)
}

// UpdateCategory persists changes to an existing category.
func (s *Service) UpdateCategory(ctx context.Context, id uuid.UUID, in CategoryInput) (Category, error) {
	if s == nil || s.Store == nil {
		return Category{}, errors.New("catalog service not configured")
	}
	if strings.TrimSpace(in.NameEN) == "" && strings.TrimSpace(in.NameTH) == "" {
		return Category{}, fmt.Errorf("category name required: %w", ErrInvalidInput)
	}
	return s.Store.UpdateCategory(ctx, id, in)
}

func validateItem(in ItemInput) error {
	if strings.TrimSpace(in.NameEN) == "" && strings.TrimSpace(in.NameTH) == "" {
		return fmt.Errorf("item name required: %w", ErrInvalidInput)
	}
	if in.Price < 0 {
		return fmt.Errorf("price must not be negative: %w", ErrInvalidInput)
	}
	if in.CategoryID == uuid.Nil {
		return fmt.Errorf("category is required: %w", ErrInvalidInput)
	}
	return nil
}
