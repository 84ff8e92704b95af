package payment

import (
	"errors"
	"testing"
)

func TestCashConfirmShortTender(t *testing.T) {
	_, err := Cash{Tendered: 36000}.Confirm(36380)
	if !errors.Is(err, ErrInsufficientPayment) {
		t.Fatalf("expected ErrInsufficientPayment, got %v", err)
	}
}

func TestCashConfirmExactTender(t *testing.T) {
	res, err := Cash{Tendered: 36380}.Confirm(36380)
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if res.Change != 0 {
		t.Fatalf("change %d, want 0", res.Change)
	}
}

func TestCashConfirmChange(t *testing.T) {
	// total 363.80 tendered 400.00 -> change 36.20
	res, err := Cash{Tendered: 40000}.Confirm(36380)
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if res.Change != 3620 {
		t.Fatalf("change %d, want 3620", res.Change)
	}
	if res.Kind != KindCash {
		t.Fatalf("kind %q", res.Kind)
	}
}

func TestNonCashConfirmNoChange(t *testing.T) {
	for _, m := range []Method{Card{}, QR{}} {
		res, err := m.Confirm(36380)
		if err != nil {
			t.Fatalf("%s confirm: %v", m.Kind(), err)
		}
		if res.Change != 0 || res.Tendered != 0 {
			t.Fatalf("%s unexpected result %+v", m.Kind(), res)
		}
	}
}

func TestParseKind(t *testing.T) {
	if k, err := ParseKind("credit"); err != nil || k != KindCard {
		t.Fatalf("credit alias: %v %v", k, err)
	}
	if _, err := ParseKind("barter"); !errors.Is(err, ErrUnknownMethod) {
		t.Fatalf("expected ErrUnknownMethod, got %v", err)
	}
}

func TestFromRequest(t *testing.T) {
	m, err := FromRequest("cash", 5000)
	if err != nil {
		t.Fatalf("from request: %v", err)
	}
	cash, ok := m.(Cash)
	if !ok || cash.Tendered != 5000 {
		t.Fatalf("unexpected method %#v", m)
	}
}
