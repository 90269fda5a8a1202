package observability

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestPprofMux_ServesNamedProfiles(t *testing.T) {
	mux := pprofMux()

	req := httptest.NewRequest(http.MethodGet, "/debug/pprof/goroutine?debug=1", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for goroutine profile, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodDelete, "/debug/pprof/cmdline", nil)
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405 for DELETE, got %d", rec.Code)
	}
}
