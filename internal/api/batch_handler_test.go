package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
)

func TestJobResultsHandlerRequiresID(t *testing.T) {
	a := &API{logger: zap.NewNop()}

	rec := httptest.NewRecorder()
	a.JobResultsHandler(rec, httptest.NewRequest(http.MethodGet, "/api/batch/results", nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without an id, got %d", rec.Code)
	}
}

func TestJobResultsHandlerMethod(t *testing.T) {
	a := &API{logger: zap.NewNop()}

	rec := httptest.NewRecorder()
	a.JobResultsHandler(rec, httptest.NewRequest(http.MethodPost, "/api/batch/results?id=x", nil))

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rec.Code)
	}
}

func TestRouterServesJobResults(t *testing.T) {
	router := NewRouter(&API{logger: zap.NewNop()})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/batch/results", nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("route not wired, got %d", rec.Code)
	}
}
