package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/ruenthai/backend-pos/internal/pricing"
)

// ErrNotFound indicates the requested menu entity could not be located.
var ErrNotFound = errors.New("catalog entity not found")

// ErrInvalidInput is returned when the provided payload is invalid.
var ErrInvalidInput = errors.New("invalid input")

// Category groups menu items for the POS grid.
type Category struct {
	ID        uuid.UUID `json:"id"`
	NameEN    string    `json:"nameEn"`
	NameTH    string    `json:"nameTh"`
	SortOrder int       `json:"sortOrder"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Item is a sellable menu entry. Price is stored in minor units; the
// localised names are opaque display data as far as settlement is concerned.
type Item struct {
	ID         uuid.UUID     `json:"id"`
	CategoryID uuid.UUID     `json:"categoryId"`
	NameEN     string        `json:"nameEn"`
	NameTH     string        `json:"nameTh"`
	Price      pricing.Money `json:"price"`
	Available  bool          `json:"available"`
	SortOrder  int           `json:"sortOrder"`
	CreatedAt  time.Time     `json:"createdAt"`
	UpdatedAt  time.Time     `json:"updatedAt"`
}

// ItemInput captures payload for creating or updating a menu item.
type ItemInput struct {
	CategoryID uuid.UUID
	NameEN     string
	NameTH     string
	Price      pricing.Money
	Available  bool
	SortOrder  int
}

// CategoryInput captures payload for creating or updating a category.
type CategoryInput struct {
	NameEN    string
	NameTH    string
	SortOrder int
	Active    bool
}

// Store defines the persistence operations the catalog service relies on.
type Store interface {
	ListCategories(ctx context.Context) ([]Category, error)
	CreateCategory(ctx context.Context, in CategoryInput) (Category, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, in CategoryInput) (Category, error)

	ListItems(ctx context.Context, categoryID *uuid.UUID) ([]Item, error)
	GetItem(ctx context.Context, id uuid.UUID) (Item, error)
	CreateItem(ctx context.Context, in ItemInput) (Item, error)
	UpdateItem(ctx context.Context, id uuid.UUID, in ItemInput) (Item, error)
	DeleteItem(ctx context.Context, id uuid.UUID) error
}
