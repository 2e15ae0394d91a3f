package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestShouldTraceRequest(t *testing.T) {
	t.Parallel()

	for path, want := range map[string]bool{
		"/healthz":      false,
		"/HEALTHZ":      false,
		"/readyz":       false,
		"/v1/imports":   true,
		"/healthz/deep": true,
	} {
		if got := shouldTraceRequest(path); got != want {
			t.Fatalf("shouldTraceRequest(%q): got=%t want=%t", path, got, want)
		}
	}
}

func TestCORS_Allowlist(t *testing.T) {
	t.Parallel()

	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	wrapped := CORS([]string{"https://tools.example.com"}, next)

	req := httptest.NewRequest(http.MethodGet, "/v1/scopes/2025-14/pool", nil)
	req.Header.Set("Origin", "https://tools.example.com")
	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, req)
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://tools.example.com" {
		t.Fatalf("allowlisted origin must be echoed, got=%q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/v1/scopes/2025-14/pool", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rec = httptest.NewRecorder()
	wrapped.ServeHTTP(rec, req)
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("unknown origin must get no CORS headers, got=%q", got)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("request itself still passes through, got=%d", rec.Code)
	}
}
