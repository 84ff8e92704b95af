package order

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ruenthai/backend-pos/internal/payment"
)

func TestMemoryStoreListAndGet(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	base := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

	ids := make([]uuid.UUID, 3)
	for i := range ids {
		ids[i] = uuid.New()
		err := store.InsertOrder(ctx, Order{
			ID:       ids[i],
			Number:   "POS-x",
			Terminal: "t1",
			Total:    int64(1000 * (i + 1)),
			Payment:  payment.Result{Kind: payment.KindCash},
			PlacedAt: base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("insert %d: %v", i, err)
		}
	}

	got, err := store.GetOrder(ctx, ids[1])
	if err != nil || got.Total != 2000 {
		t.Fatalf("get: %+v err %v", got, err)
	}
	if _, err := store.GetOrder(ctx, uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	listed, err := store.ListOrders(ctx, "t1", 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(listed) != 2 || listed[0].Total != 3000 {
		t.Fatalf("list should be newest first and limited, got %+v", listed)
	}

	other, _ := store.ListOrders(ctx, "t2", 10)
	if len(other) != 0 {
		t.Fatal("terminal filter leaked orders")
	}
}

func TestMemoryStoreSequencesPerDay(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	for want := 1; want <= 3; want++ {
		seq, err := store.NextSequence(ctx, "20240115")
		if err != nil || seq != want {
			t.Fatalf("seq %d err %v, want %d", seq, err, want)
		}
	}
	seq, _ := store.NextSequence(ctx, "20240116")
	if seq != 1 {
		t.Fatalf("new day should restart at 1, got %d", seq)
	}
}
