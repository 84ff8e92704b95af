package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/ruenthai/backend-pos/internal/order"
	"github.com/ruenthai/backend-pos/internal/payment"
)

func seedOrders(t *testing.T, store *order.MemoryStore, day time.Time) {
	t.Helper()
	ctx := context.Background()
	entries := []struct {
		kind  payment.Kind
		total int64
		tax   int64
		at    time.Time
	}{
		{payment.KindCash, 36380, 2380, day.Add(10 * time.Hour)},
		{payment.KindCard, 45000, 2944, day.Add(12 * time.Hour)},
		{payment.KindQR, 28000, 1832, day.Add(13 * time.Hour)},
		// previous day, must not be counted
		{payment.KindCash, 99999, 0, day.Add(-2 * time.Hour)},
	}
	for _, e := range entries {
		err := store.InsertOrder(ctx, order.Order{
			ID:       uuid.New(),
			Number:   "POS-x",
			Terminal: "t1",
			Total:    e.total,
			Tax:      e.tax,
			Payment:  payment.Result{Kind: e.kind, Tendered: e.total},
			PlacedAt: e.at,
		})
		if err != nil {
			t.Fatalf("insert: %v", err)
		}
	}
}

func TestDailySummary(t *testing.T) {
	day := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	store := order.NewMemoryStore()
	seedOrders(t, store, day)

	svc := &Service{
		Orders: store,
		Log:    zerolog.Nop(),
		Now:    func() time.Time { return day.Add(20 * time.Hour) },
	}
	summary, err := svc.Daily(context.Background(), day)
	if err != nil {
		t.Fatalf("daily: %v", err)
	}
	if summary.Orders != 3 {
		t.Fatalf("orders %d, want 3", summary.Orders)
	}
	if summary.Revenue != 36380+45000+28000 {
		t.Fatalf("revenue %d", summary.Revenue)
	}
	if summary.ByMethod[payment.KindCard] != 45000 {
		t.Fatalf("card %d", summary.ByMethod[payment.KindCard])
	}
	if summary.AvgTicket != summary.Revenue/3 {
		t.Fatalf("avg %d", summary.AvgTicket)
	}
}

func TestDailyCachesFinishedDays(t *testing.T) {
	day := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	store := order.NewMemoryStore()
	seedOrders(t, store, day)

	mr := miniredis.RunT(t)
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = cache.Close() })

	svc := &Service{
		Orders: store,
		Cache:  cache,
		TTL:    time.Hour,
		Log:    zerolog.Nop(),
		// two days later, so the 15th is finished
		Now: func() time.Time { return day.AddDate(0, 0, 2) },
	}
	ctx := context.Background()
	first, err := svc.Daily(ctx, day)
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	if !mr.Exists("analytics:daily:2024-01-15") {
		t.Fatal("finished day should be cached")
	}

	// new orders for a finished day must not change the cached answer
	seedOrders(t, store, day)
	second, err := svc.Daily(ctx, day)
	if err != nil {
		t.Fatalf("second: %v", err)
	}
	if second.Orders != first.Orders {
		t.Fatalf("cached day recomputed: %d vs %d", second.Orders, first.Orders)
	}
}

func TestDailyCurrentDayNotCached(t *testing.T) {
	day := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	store := order.NewMemoryStore()
	seedOrders(t, store, day)

	mr := miniredis.RunT(t)
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = cache.Close() })

	svc := &Service{
		Orders: store,
		Cache:  cache,
		Log:    zerolog.Nop(),
		Now:    func() time.Time { return day.Add(15 * time.Hour) },
	}
	if _, err := svc.Daily(context.Background(), day); err != nil {
		t.Fatalf("daily: %v", err)
	}
	if mr.Exists("analytics:daily:2024-01-15") {
		t.Fatal("the live day must not be cached")
	}
}
