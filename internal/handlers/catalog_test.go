package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/animecove/storefront-api/internal/catalog"
	"github.com/animecove/storefront-api/internal/services"
	"github.com/animecove/storefront-api/internal/upstream"
)

func newCatalogTestServer(svc services.CatalogService) *httptest.Server {
	h := NewCatalogHandlers(CatalogHandlersDeps{Catalog: svc})
	router := NewRouter(
		WithCatalogRoutes(h.Routes),
		WithProductRoutes(h.ProductRoutes),
	)
	return httptest.NewServer(router)
}

func TestListProductsReturnsPage(t *testing.T) {
	svc := &stubCatalogService{
		sources:       []string{"square", "printify"},
		defaultSource: "square",
		page: catalog.Page{
			Items: []catalog.Product{
				{ID: "item-1", Name: "Mug", Images: []string{}, Tags: []string{}},
			},
			Total:  1,
			Limit:  20,
			Offset: 0,
		},
	}
	ts := newCatalogTestServer(svc)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/v1/catalog/square/products?search=mug")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var payload struct {
		Data  []catalog.Product `json:"data"`
		Total int               `json:"total"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Total != 1 || len(payload.Data) != 1 {
		t.Fatalf("unexpected page: total=%d items=%d", payload.Total, len(payload.Data))
	}
	if payload.Data[0].ID != "item-1" {
		t.Fatalf("unexpected product id %s", payload.Data[0].ID)
	}
}

func TestGetProductWrapsData(t *testing.T) {
	svc := &stubCatalogService{
		product: catalog.Product{ID: "item-9", Name: "Poster"},
	}
	ts := newCatalogTestServer(svc)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/v1/products/item-9")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var payload struct {
		Data catalog.Product `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.Data.ID != "item-9" {
		t.Fatalf("unexpected product id %s", payload.Data.ID)
	}
}

func TestListSources(t *testing.T) {
	svc := &stubCatalogService{
		sources:       []string{"square", "woocommerce", "printify"},
		defaultSource: "square",
	}
	ts := newCatalogTestServer(svc)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/v1/catalog/sources")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	var payload struct {
		Data    []string `json:"data"`
		Default string   `json:"default"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(payload.Data) != 3 || payload.Default != "square" {
		t.Fatalf("unexpected sources payload: %+v", payload)
	}
}

func TestCatalogErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "unknown source",
			err:        fmt.Errorf("%w: etsy", services.ErrUnknownSource),
			wantStatus: http.StatusNotFound,
			wantCode:   "unknown_source",
		},
		{
			name:       "product not found",
			err:        fmt.Errorf("%w: item-404", services.ErrProductNotFound),
			wantStatus: http.StatusNotFound,
			wantCode:   "product_not_found",
		},
		{
			name:       "invalid input",
			err:        fmt.Errorf("%w: product id is required", services.ErrCatalogInvalidInput),
			wantStatus: http.StatusBadRequest,
			wantCode:   "invalid_request",
		},
		{
			name:       "upstream failure",
			err:        fmt.Errorf("list products: %w", &upstream.Error{Source: "square", Status: 500, Body: "boom"}),
			wantStatus: http.StatusBadGateway,
			wantCode:   "upstream_error",
		},
		{
			name:       "unexpected failure",
			err:        fmt.Errorf("catastrophe"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "internal_error",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ts := newCatalogTestServer(&stubCatalogService{err: tc.err})
			defer ts.Close()

			resp, err := http.Get(ts.URL + "/api/v1/catalog/square/products")
			if err != nil {
				t.Fatalf("request failed: %v", err)
			}
			defer resp.Body.Close()

			if resp.StatusCode != tc.wantStatus {
				t.Fatalf("expected %d, got %d", tc.wantStatus, resp.StatusCode)
			}

			var payload map[string]any
			if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if payload["error"] != tc.wantCode {
				t.Fatalf("expected code %q, got %v", tc.wantCode, payload["error"])
			}
		})
	}
}

func TestUpstreamErrorIncludesDiagnostics(t *testing.T) {
	ts := newCatalogTestServer(&stubCatalogService{
		err: &upstream.Error{Source: "printify", Status: 503, Body: "maintenance"},
	})
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/api/v1/products/")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", resp.StatusCode)
	}

	var payload map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload["upstream"] != "printify" {
		t.Fatalf("expected upstream printify, got %v", payload["upstream"])
	}
	if payload["upstream_status"] != float64(503) {
		t.Fatalf("expected upstream_status 503, got %v", payload["upstream_status"])
	}
}
