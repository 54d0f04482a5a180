package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/animecove/storefront-api/internal/platform/httpx"
	"github.com/animecove/storefront-api/internal/platform/requestctx"
	"github.com/animecove/storefront-api/internal/services"
	"github.com/animecove/storefront-api/internal/upstream"

	catalogpkg "github.com/animecove/storefront-api/internal/catalog"
)

// CatalogHandlers exposes normalized product listings over HTTP.
type CatalogHandlers struct {
	catalog services.CatalogService
}

// CatalogHandlersDeps wires the dependencies required by CatalogHandlers.
type CatalogHandlersDeps struct {
	Catalog services.CatalogService
}

// NewCatalogHandlers constructs the catalog HTTP handlers.
func NewCatalogHandlers(deps CatalogHandlersDeps) *CatalogHandlers {
	return &CatalogHandlers{catalog: deps.Catalog}
}

// Routes registers source-scoped catalog endpoints.
func (h *CatalogHandlers) Routes(r chi.Router) {
	r.Get("/sources", h.listSources)
	r.Get("/{source}/products", h.listProducts)
	r.Get("/{source}/products/{productID}", h.getProduct)
}

// ProductRoutes registers the default-source alias endpoints.
func (h *CatalogHandlers) ProductRoutes(r chi.Router) {
	r.Get("/", h.listDefaultProducts)
	r.Get("/{productID}", h.getDefaultProduct)
}

func (h *CatalogHandlers) listSources(w http.ResponseWriter, r *http.Request) {
	writeJSONResponse(w, http.StatusOK, map[string]any{
		"data":    h.catalog.Sources(),
		"default": h.catalog.DefaultSource(),
	})
}

func (h *CatalogHandlers) listProducts(w http.ResponseWriter, r *http.Request) {
	h.serveList(w, r, chi.URLParam(r, "source"))
}

func (h *CatalogHandlers) listDefaultProducts(w http.ResponseWriter, r *http.Request) {
	h.serveList(w, r, "")
}

func (h *CatalogHandlers) getProduct(w http.ResponseWriter, r *http.Request) {
	h.serveProduct(w, r, chi.URLParam(r, "source"), chi.URLParam(r, "productID"))
}

func (h *CatalogHandlers) getDefaultProduct(w http.ResponseWriter, r *http.Request) {
	h.serveProduct(w, r, "", chi.URLParam(r, "productID"))
}

func (h *CatalogHandlers) serveList(w http.ResponseWriter, r *http.Request, source string) {
	ctx := r.Context()
	opts := catalogpkg.ParseListOptions(r.URL.Query())

	page, err := h.catalog.ListProducts(ctx, source, opts)
	if err != nil {
		h.writeCatalogError(w, r, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, page)
}

func (h *CatalogHandlers) serveProduct(w http.ResponseWriter, r *http.Request, source, productID string) {
	ctx := r.Context()

	product, err := h.catalog.GetProduct(ctx, source, productID)
	if err != nil {
		h.writeCatalogError(w, r, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, map[string]any{"data": product})
}

func (h *CatalogHandlers) writeCatalogError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()
	logger := requestctx.Logger(ctx)

	switch {
	case errors.Is(err, services.ErrUnknownSource):
		httpx.WriteError(ctx, w, httpx.NewError("unknown_source", err.Error(), http.StatusNotFound))
	case errors.Is(err, services.ErrProductNotFound):
		httpx.WriteError(ctx, w, httpx.NewError("product_not_found", err.Error(), http.StatusNotFound))
	case errors.Is(err, services.ErrCatalogInvalidInput):
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", err.Error(), http.StatusBadRequest))
	default:
		var upstreamErr *upstream.Error
		if errors.As(err, &upstreamErr) {
			logger.Warn("upstream request failed",
				zap.String("upstream", upstreamErr.Source),
				zap.Int("upstream_status", upstreamErr.Status),
			)
			httpx.WriteError(ctx, w, httpx.NewError("upstream_error", "upstream catalog request failed", http.StatusBadGateway).
				WithDetails(map[string]any{
					"upstream":        upstreamErr.Source,
					"upstream_status": upstreamErr.Status,
				}))
			return
		}
		logger.Error("catalog request failed", zap.Error(err))
		httpx.WriteError(ctx, w, httpx.NewError("internal_error", "internal server error", http.StatusInternalServerError))
	}
}
