package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestCORSMiddleware_AllowedOrigin(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/districts", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rr := httptest.NewRecorder()

	CORSMiddleware(okHandler()).ServeHTTP(rr, req)

	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Errorf("Allow-Origin: got %q", got)
	}
	if got := rr.Header().Get("Vary"); got != "Origin" {
		t.Errorf("Vary: got %q", got)
	}
	if rr.Code != http.StatusOK {
		t.Errorf("status: got %d", rr.Code)
	}
}

func TestCORSMiddleware_UnknownOrigin(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/districts", nil)
	req.Header.Set("Origin", "http://evil.example")
	rr := httptest.NewRecorder()

	CORSMiddleware(okHandler()).ServeHTTP(rr, req)

	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("unknown origin must not be echoed, got %q", got)
	}
	// The request itself still goes through; CORS is enforced by the browser.
	if rr.Code != http.StatusOK {
		t.Errorf("status: got %d", rr.Code)
	}
}

func TestCORSMiddleware_Preflight(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/mgnrega/sync", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rr := httptest.NewRecorder()

	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true })

	CORSMiddleware(next).ServeHTTP(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Errorf("preflight status: got %d, want 204", rr.Code)
	}
	if called {
		t.Error("preflight must not reach the next handler")
	}
	if got := rr.Header().Get("Access-Control-Allow-Methods"); got == "" {
		t.Error("expected Allow-Methods on preflight")
	}
}
