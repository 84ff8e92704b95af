package drawer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ruenthai/backend-pos/internal/payment"
	"github.com/ruenthai/backend-pos/internal/pricing"
)

func newTestService() *Service {
	base := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	tick := 0
	return &Service{
		Store: NewMemoryStore(),
		Now: func() time.Time {
			tick++
			return base.Add(time.Duration(tick) * time.Minute)
		},
	}
}

func TestOpenShiftTwiceFails(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	if _, err := svc.OpenShift(ctx, "t1", "malee", 500000); err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := svc.OpenShift(ctx, "t1", "malee", 100); !errors.Is(err, ErrShiftOpen) {
		t.Fatalf("expected ErrShiftOpen, got %v", err)
	}
	// a second terminal is an independent drawer
	if _, err := svc.OpenShift(ctx, "t2", "chai", 0); err != nil {
		t.Fatalf("second terminal open: %v", err)
	}
}

func TestShiftScenario(t *testing.T) {
	// opening 5000.00, sales 350/450/280 by cash/card/qr, withdraw 500.00
	svc := newTestService()
	ctx := context.Background()
	if _, err := svc.OpenShift(ctx, "t1", "malee", 500000); err != nil {
		t.Fatalf("open: %v", err)
	}
	sales := []struct {
		method payment.Kind
		amount pricing.Money
	}{
		{payment.KindCash, 35000},
		{payment.KindCard, 45000},
		{payment.KindQR, 28000},
	}
	for _, sale := range sales {
		if _, err := svc.RecordSale(ctx, "t1", sale.method, sale.amount); err != nil {
			t.Fatalf("record sale %s: %v", sale.method, err)
		}
	}
	if _, err := svc.RecordWithdrawal(ctx, "t1", 50000, "restock"); err != nil {
		t.Fatalf("withdraw: %v", err)
	}

	balance, err := svc.CurrentBalance(ctx, "t1")
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if balance != 485000 {
		t.Fatalf("balance %d, want 485000", balance)
	}

	summary, err := svc.Summarize(ctx, "t1")
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	want := map[payment.Kind]pricing.Money{
		payment.KindCash: 35000,
		payment.KindCard: 45000,
		payment.KindQR:   28000,
	}
	for kind, amount := range want {
		if summary.Totals[kind] != amount {
			t.Fatalf("totals[%s] = %d, want %d", kind, summary.Totals[kind], amount)
		}
	}
}

func TestWithdrawalExceedingBalanceLeavesLogUnchanged(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	if _, err := svc.OpenShift(ctx, "t1", "", 10000); err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := svc.RecordWithdrawal(ctx, "t1", 10001, "too much"); !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}
	summary, err := svc.Summarize(ctx, "t1")
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if len(summary.Movements) != 0 {
		t.Fatalf("rejected withdrawal must not append a movement, got %d", len(summary.Movements))
	}
	if summary.CashBalance != 10000 {
		t.Fatalf("balance %d, want 10000", summary.CashBalance)
	}
}

func TestNonCashSalesDoNotAffectCashBalance(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	if _, err := svc.OpenShift(ctx, "t1", "", 0); err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := svc.RecordSale(ctx, "t1", payment.KindCard, 99999); err != nil {
		t.Fatalf("sale: %v", err)
	}
	balance, err := svc.CurrentBalance(ctx, "t1")
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if balance != 0 {
		t.Fatalf("card revenue must not enter the cash balance, got %d", balance)
	}
	// drawer holds no cash, so nothing can be withdrawn
	if _, err := svc.RecordWithdrawal(ctx, "t1", 1, ""); !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}
}

func TestRecordSaleRejectsNonPositiveAmount(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	if _, err := svc.OpenShift(ctx, "t1", "", 0); err != nil {
		t.Fatalf("open: %v", err)
	}
	for _, amount := range []pricing.Money{0, -100} {
		if _, err := svc.RecordSale(ctx, "t1", payment.KindCash, amount); !errors.Is(err, ErrInvalidAmount) {
			t.Fatalf("amount %d: expected ErrInvalidAmount, got %v", amount, err)
		}
	}
}

func TestCloseShiftRecordsDifferenceAndFreezes(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	if _, err := svc.OpenShift(ctx, "t1", "malee", 500000); err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := svc.RecordSale(ctx, "t1", payment.KindCash, 35000); err != nil {
		t.Fatalf("sale: %v", err)
	}
	if _, err := svc.RecordWithdrawal(ctx, "t1", 50000, "restock"); err != nil {
		t.Fatalf("withdraw: %v", err)
	}
	// expected 4850.00, counted 4800.00 -> difference -50.00
	closed, err := svc.CloseShift(ctx, "t1", 480000)
	if err != nil {
		t.Fatalf("close: %v", err)
	}
	if !closed.Closed || closed.ClosedAt == nil {
		t.Fatal("shift should be marked closed")
	}
	if closed.CashDifference != -5000 {
		t.Fatalf("difference %d, want -5000", closed.CashDifference)
	}
	// closed shifts are immutable: no further movements, no re-close
	if _, err := svc.RecordSale(ctx, "t1", payment.KindCash, 100); !errors.Is(err, ErrNoOpenShift) {
		t.Fatalf("expected ErrNoOpenShift after close, got %v", err)
	}
	if _, err := svc.CloseShift(ctx, "t1", 0); !errors.Is(err, ErrNoOpenShift) {
		t.Fatalf("expected ErrNoOpenShift on re-close, got %v", err)
	}
	// a fresh shift can be opened afterwards
	if _, err := svc.OpenShift(ctx, "t1", "chai", 300000); err != nil {
		t.Fatalf("reopen: %v", err)
	}
}

func TestBalanceMatchesReplayAfterManyMovements(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	if _, err := svc.OpenShift(ctx, "t1", "", 123450); err != nil {
		t.Fatalf("open: %v", err)
	}
	amounts := []pricing.Money{1200, 50, 999, 42, 31337, 7}
	kinds := []payment.Kind{payment.KindCash, payment.KindCard, payment.KindQR}
	for i, amount := range amounts {
		if _, err := svc.RecordSale(ctx, "t1", kinds[i%len(kinds)], amount); err != nil {
			t.Fatalf("sale %d: %v", i, err)
		}
	}
	if _, err := svc.RecordWithdrawal(ctx, "t1", 2000, ""); err != nil {
		t.Fatalf("withdraw: %v", err)
	}
	summary, err := svc.Summarize(ctx, "t1")
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	replayed := Balance(summary.Shift.OpeningBalance, summary.Movements)
	if summary.CashBalance != replayed {
		t.Fatalf("service balance %d != replayed %d", summary.CashBalance, replayed)
	}
}
