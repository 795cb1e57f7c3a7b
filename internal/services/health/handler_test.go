package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func newTestRouter(checker Checker) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc, _ := newTestService(checker)
	router := gin.New()
	NewHandler(svc).RegisterRoutes(router)
	return router
}

func TestServiceStatusAlwaysReturns200(t *testing.T) {
	router := newTestRouter(CheckerFunc(func(context.Context) error {
		return errors.New("connection refused")
	}))

	req := httptest.NewRequest(http.MethodGet, "/service-status", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var body ServiceStatusResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Status != StatusFailure || body.Database != StatusDown {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestReadyMapsFailureTo503(t *testing.T) {
	router := newTestRouter(CheckerFunc(func(context.Context) error {
		return errors.New("connection refused")
	}))

	req := httptest.NewRequest(http.MethodGet, "/ready", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", resp.Code)
	}
}

func TestReadyOK(t *testing.T) {
	router := newTestRouter(CheckerFunc(func(context.Context) error { return nil }))

	req := httptest.NewRequest(http.MethodGet, "/ready", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
}

func TestHealthPayloadShape(t *testing.T) {
	router := newTestRouter(CheckerFunc(func(context.Context) error { return nil }))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	for _, key := range []string{"status", "version", "uptime", "service", "database"} {
		if _, ok := body[key]; !ok {
			t.Fatalf("missing key %s in %v", key, body)
		}
	}
}
