package checkout

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCancelLeavesCartUntouched(t *testing.T) {
	f := newFixture(t)
	f.fillCart(t, "t1")
	h := &Handler{Svc: f.svc}

	req := httptest.NewRequest(http.MethodPost, "/checkout/cancel", nil)
	req.Header.Set("X-Terminal-ID", "t1")
	rr := httptest.NewRecorder()
	h.Cancel(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status %d, want 200", rr.Code)
	}
	lines, err := f.carts.Snapshot("t1")
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("cancel must not touch the cart, found %d lines", len(lines))
	}
}
