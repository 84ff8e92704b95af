package inventory

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound     = errors.New("stock item not found")
	ErrInvalidInput = errors.New("invalid inventory input")
)

// StockItem tracks on-hand quantity for one menu item.
type StockItem struct {
	ItemID       uuid.UUID `json:"itemId"`
	NameEN       string    `json:"nameEn"`
	OnHand       int       `json:"onHand"`
	ReorderLevel int       `json:"reorderLevel"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Low reports whether the item is at or below its reorder level.
func (s StockItem) Low() bool {
	return s.OnHand <= s.ReorderLevel
}

// Deduction is one line of stock to remove when an order completes.
type Deduction struct {
	ItemID uuid.UUID `json:"itemId"`
	Qty    int       `json:"qty"`
}
