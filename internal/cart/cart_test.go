package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/ruenthai/backend-pos/internal/catalog"
	"github.com/ruenthai/backend-pos/internal/pricing"
)

func menuItem(price pricing.Money) catalog.Item {
	return catalog.Item{ID: uuid.New(), NameEN: "item", Price: price, Available: true}
}

func TestAddItemMergesLines(t *testing.T) {
	var c Cart
	item := menuItem(12000)
	c.AddItem(item)
	c.AddItem(item)
	lines := c.Lines()
	if len(lines) != 1 {
		t.Fatalf("expected one line, got %d", len(lines))
	}
	if lines[0].Qty != 2 {
		t.Fatalf("qty %d, want 2", lines[0].Qty)
	}
	if c.Subtotal() != 24000 {
		t.Fatalf("subtotal %d, want 24000", c.Subtotal())
	}
}

func TestPriceSnapshotSurvivesCatalogChange(t *testing.T) {
	var c Cart
	item := menuItem(10000)
	c.AddItem(item)
	item.Price = 99000
	c.AddItem(item)
	if c.Subtotal() != 20000 {
		t.Fatalf("subtotal %d, want 20000 (snapshotted price)", c.Subtotal())
	}
}

func TestChangeQuantityClampsAtZero(t *testing.T) {
	var c Cart
	item := menuItem(5000)
	c.AddItem(item)
	c.ChangeQuantity(item.ID, -5)
	if !c.Empty() {
		t.Fatal("line should be removed when quantity reaches zero")
	}
	// unknown id is a silent no-op
	c.ChangeQuantity(uuid.New(), 3)
	if !c.Empty() {
		t.Fatal("unknown item must not create a line")
	}
}

func TestRemoveAndClear(t *testing.T) {
	var c Cart
	a, b := menuItem(100), menuItem(200)
	c.AddItem(a)
	c.AddItem(b)
	c.RemoveItem(a.ID)
	if len(c.Lines()) != 1 {
		t.Fatalf("expected one line after removal")
	}
	c.Clear()
	if !c.Empty() || c.Subtotal() != 0 {
		t.Fatal("cleared cart should be empty with zero subtotal")
	}
}

func TestSubtotalMatchesIndependentRecomputation(t *testing.T) {
	var c Cart
	items := []catalog.Item{menuItem(120), menuItem(340), menuItem(995)}
	for i, it := range items {
		for range i + 1 {
			c.AddItem(it)
		}
	}
	c.ChangeQuantity(items[2].ID, -1)
	var want pricing.Money
	for _, l := range c.Lines() {
		want += pricing.Money(l.Qty) * l.UnitPrice
	}
	if got := c.Subtotal(); got != want {
		t.Fatalf("subtotal %d, want %d", got, want)
	}
}

func TestServiceAddItemChecksAvailability(t *testing.T) {
	store := catalog.NewMemoryStore()
	ctx := context.Background()
	category, err := store.CreateCategory(ctx, catalog.CategoryInput{NameEN: "Drinks", Active: true})
	if err != nil {
		t.Fatalf("seed category: %v", err)
	}
	sold, err := store.CreateItem(ctx, catalog.ItemInput{CategoryID: category.ID, NameEN: "Thai Tea", Price: 4500, Available: false})
	if err != nil {
		t.Fatalf("seed item: %v", err)
	}
	svc := NewService(&catalog.Service{Store: store})
	if err := svc.AddItem(ctx, "t1", sold.ID); err == nil {
		t.Fatal("expected unavailable item to be rejected")
	}
	if err := svc.AddItem(ctx, "t1", uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestServiceIsolatesTerminals(t *testing.T) {
	store := catalog.NewMemoryStore()
	ctx := context.Background()
	category, _ := store.CreateCategory(ctx, catalog.CategoryInput{NameEN: "Mains", Active: true})
	item, _ := store.CreateItem(ctx, catalog.ItemInput{CategoryID: category.ID, NameEN: "Fried Rice", Price: 8000, Available: true})

	svc := NewService(&catalog.Service{Store: store})
	if err := svc.AddItem(ctx, "front", item.ID); err != nil {
		t.Fatalf("add: %v", err)
	}
	lines, err := svc.Snapshot("back")
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if len(lines) != 0 {
		t.Fatal("terminal carts must be independent")
	}
}
