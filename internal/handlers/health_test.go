package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/animecove/storefront-api/internal/catalog"
)

type stubCatalogService struct {
	sources       []string
	defaultSource string
	page          catalog.Page
	product       catalog.Product
	err           error
	checks        map[string]error
}

func (s *stubCatalogService) ListProducts(ctx context.Context, source string, opts catalog.ListOptions) (catalog.Page, error) {
	if s.err != nil {
		return catalog.Page{}, s.err
	}
	return s.page, nil
}

func (s *stubCatalogService) GetProduct(ctx context.Context, source, id string) (catalog.Product, error) {
	if s.err != nil {
		return catalog.Product{}, s.err
	}
	return s.product, nil
}

func (s *stubCatalogService) Sources() []string {
	return s.sources
}

func (s *stubCatalogService) DefaultSource() string {
	return s.defaultSource
}

func (s *stubCatalogService) CheckSources(ctx context.Context) map[string]error {
	return s.checks
}

func TestHealthzIncludesBuildInfo(t *testing.T) {
	started := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	now := started.Add(90 * time.Second)

	h := NewHealthHandlers(
		WithHealthBuildInfo(BuildInfo{
			Version:     "1.4.0",
			CommitSHA:   "abc1234",
			Environment: "test",
			StartedAt:   started,
		}),
		WithHealthClock(func() time.Time { return now }),
	)

	rec := httptest.NewRecorder()
	h.Healthz(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var payload map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload["status"] != "ok" {
		t.Fatalf("expected ok status, got %v", payload["status"])
	}
	if payload["version"] != "1.4.0" {
		t.Fatalf("expected version 1.4.0, got %v", payload["version"])
	}
	if payload["commitSha"] != "abc1234" {
		t.Fatalf("expected commit abc1234, got %v", payload["commitSha"])
	}
	if payload["environment"] != "test" {
		t.Fatalf("expected environment test, got %v", payload["environment"])
	}
	if payload["uptime"] != "1m30s" {
		t.Fatalf("expected uptime 1m30s, got %v", payload["uptime"])
	}
}

func TestReadyzReportsHealthySources(t *testing.T) {
	svc := &stubCatalogService{
		checks: map[string]error{"square": nil, "printify": nil},
	}
	h := NewHealthHandlers(WithHealthCatalogService(svc))

	rec := httptest.NewRecorder()
	h.Readyz(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var payload struct {
		Status string                    `json:"status"`
		Checks map[string]readinessCheck `json:"checks"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Status != "ok" {
		t.Fatalf("expected ok status, got %s", payload.Status)
	}
	if len(payload.Checks) != 2 {
		t.Fatalf("expected two checks, got %d", len(payload.Checks))
	}
	if payload.Checks["square"].Status != "ok" {
		t.Fatalf("expected square check ok, got %s", payload.Checks["square"].Status)
	}
}

func TestReadyzDegradedWhenSourceFails(t *testing.T) {
	svc := &stubCatalogService{
		checks: map[string]error{
			"square":   nil,
			"printify": errors.New("connection refused"),
		},
	}
	h := NewHealthHandlers(WithHealthCatalogService(svc))

	rec := httptest.NewRecorder()
	h.Readyz(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}

	var payload struct {
		Status  string                    `json:"status"`
		Checks  map[string]readinessCheck `json:"checks"`
		Details []string                  `json:"details"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Status != "degraded" {
		t.Fatalf("expected degraded status, got %s", payload.Status)
	}
	if payload.Checks["printify"].Status != "degraded" {
		t.Fatalf("expected printify check degraded, got %s", payload.Checks["printify"].Status)
	}
	if payload.Checks["printify"].Error != "connection refused" {
		t.Fatalf("unexpected check error: %s", payload.Checks["printify"].Error)
	}
	if len(payload.Details) != 1 {
		t.Fatalf("expected one detail entry, got %d", len(payload.Details))
	}
}

func TestReadyzWithoutCatalogServiceIsOK(t *testing.T) {
	h := NewHealthHandlers()

	rec := httptest.NewRecorder()
	h.Readyz(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
