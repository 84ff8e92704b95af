package inventory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

func newTestService() *Service {
	return &Service{
		Store: NewMemoryStore(),
		Log:   zerolog.Nop(),
		Now:   func() time.Time { return time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC) },
	}
}

func TestApplyOrderIsIdempotentPerOrderNumber(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	itemID := uuid.New()
	if _, err := svc.SetLevel(ctx, StockItem{ItemID: itemID, NameEN: "Pad Thai", OnHand: 10, ReorderLevel: 2}); err != nil {
		t.Fatalf("set level: %v", err)
	}

	lines := []Deduction{{ItemID: itemID, Qty: 3}}
	for i := 0; i < 3; i++ {
		if err := svc.ApplyOrder(ctx, "POS-20240115-0001", lines); err != nil {
			t.Fatalf("apply %d: %v", i, err)
		}
	}
	item, err := svc.Store.GetStock(ctx, itemID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if item.OnHand != 7 {
		t.Fatalf("on hand %d, want 7 (deducted exactly once)", item.OnHand)
	}

	// a different order number deducts again
	if err := svc.ApplyOrder(ctx, "POS-20240115-0002", lines); err != nil {
		t.Fatalf("second order: %v", err)
	}
	item, _ = svc.Store.GetStock(ctx, itemID)
	if item.OnHand != 4 {
		t.Fatalf("on hand %d, want 4", item.OnHand)
	}
}

func TestApplyOrderClampsAtZeroAndSkipsUntracked(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	itemID := uuid.New()
	if _, err := svc.SetLevel(ctx, StockItem{ItemID: itemID, OnHand: 2}); err != nil {
		t.Fatalf("set level: %v", err)
	}
	err := svc.ApplyOrder(ctx, "POS-1", []Deduction{
		{ItemID: itemID, Qty: 5},
		{ItemID: uuid.New(), Qty: 1}, // not tracked
	})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	item, _ := svc.Store.GetStock(ctx, itemID)
	if item.OnHand != 0 {
		t.Fatalf("on hand %d, want 0", item.OnHand)
	}
}

func TestLowStock(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	low := uuid.New()
	ok := uuid.New()
	if _, err := svc.SetLevel(ctx, StockItem{ItemID: low, NameEN: "Green Curry", OnHand: 2, ReorderLevel: 5}); err != nil {
		t.Fatalf("set: %v", err)
	}
	if _, err := svc.SetLevel(ctx, StockItem{ItemID: ok, NameEN: "Tom Yum", OnHand: 20, ReorderLevel: 5}); err != nil {
		t.Fatalf("set: %v", err)
	}
	items, err := svc.LowStock(ctx)
	if err != nil {
		t.Fatalf("low stock: %v", err)
	}
	if len(items) != 1 || items[0].ItemID != low {
		t.Fatalf("expected only the low item, got %+v", items)
	}
}

func TestSetLevelRejectsNegativeQuantities(t *testing.T) {
	svc := newTestService()
	if _, err := svc.SetLevel(context.Background(), StockItem{ItemID: uuid.New(), OnHand: -1}); err == nil {
		t.Fatal("expected error for negative on-hand")
	}
}
