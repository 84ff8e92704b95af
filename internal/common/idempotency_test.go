package common

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	redis "github.com/redis/go-redis/v9"
)

func newTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func TestIdemPassthroughWithoutKey(t *testing.T) {
	idem := Idem{R: newTestRedis(t), TTL: time.Minute}
	called := 0
	handler := idem.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called++
		w.WriteHeader(http.StatusNoContent)
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/checkout", nil))
	if called != 1 {
		t.Fatalf("expected handler call, got %d", called)
	}
	if rr.Code != http.StatusNoContent {
		t.Fatalf("unexpected status %d", rr.Code)
	}
}

func TestIdemRejectsReplay(t *testing.T) {
	idem := Idem{R: newTestRedis(t), TTL: time.Minute}
	called := 0
	handler := idem.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called++
		w.WriteHeader(http.StatusCreated)
	}))

	first := httptest.NewRequest(http.MethodPost, "/checkout", nil)
	first.Header.Set("Idempotency-Key", "order-42")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, first)
	if rr.Code != http.StatusCreated {
		t.Fatalf("first request should pass, got %d", rr.Code)
	}

	second := httptest.NewRequest(http.MethodPost, "/checkout", nil)
	second.Header.Set("Idempotency-Key", "order-42")
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, second)
	if rr.Code != http.StatusConflict {
		t.Fatalf("replay should conflict, got %d", rr.Code)
	}
	if called != 1 {
		t.Fatalf("handler should run once, ran %d times", called)
	}
}
