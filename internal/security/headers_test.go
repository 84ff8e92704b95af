package security

import (
	"crypto/tls"
	"net/http"
	"net/http/httptest"
	"testing"
)

func serve(t *testing.T, h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestHeadersStampedOnTLSRequests(t *testing.T) {
	mw := Headers{Enable: true, EnableHSTS: true, HSTSMaxAge: 31536000, HSTSIncludeSubdomains: true}
	handler := mw.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "https://pos.local/api/v1/menu/items", nil)
	req.TLS = &tls.ConnectionState{}
	rr := serve(t, handler, req)

	got := rr.Result().Header
	if v := got.Get("X-Content-Type-Options"); v != "nosniff" {
		t.Fatalf("X-Content-Type-Options = %q, want nosniff", v)
	}
	if v := got.Get("X-Frame-Options"); v != "DENY" {
		t.Fatalf("X-Frame-Options = %q, want DENY", v)
	}
	if got.Get("Strict-Transport-Security") == "" {
		t.Fatal("HSTS header missing on a TLS request")
	}
}

func TestHeadersSkippedWhenDisabled(t *testing.T) {
	mw := Headers{Enable: false, EnableHSTS: true}
	handler := mw.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	rr := serve(t, handler, httptest.NewRequest(http.MethodGet, "http://pos.local/", nil))
	if rr.Header().Get("X-Content-Type-Options") != "" {
		t.Fatal("headers must stay off when the middleware is disabled")
	}
}

func TestAllowCORSEnforcesAllowlist(t *testing.T) {
	mw := AllowCORS("https://terminal.pos.local")
	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	preflight := httptest.NewRequest(http.MethodOptions, "http://localhost/api/v1/cart", nil)
	preflight.Header.Set("Origin", "https://terminal.pos.local")
	rr := serve(t, handler, preflight)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("allowed origin preflight: status %d, want 204", rr.Code)
	}
	if v := rr.Header().Get("Access-Control-Allow-Origin"); v != "https://terminal.pos.local" {
		t.Fatalf("Allow-Origin = %q", v)
	}

	stranger := httptest.NewRequest(http.MethodOptions, "http://localhost/api/v1/cart", nil)
	stranger.Header.Set("Origin", "https://somewhere.else")
	rr = serve(t, handler, stranger)
	if rr.Code != http.StatusForbidden {
		t.Fatalf("unknown origin preflight: status %d, want 403", rr.Code)
	}
}
