package handlers

import (
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/animecove/storefront-api/internal/platform/httpx"
	"github.com/animecove/storefront-api/internal/platform/requestctx"
	"github.com/animecove/storefront-api/internal/upstream"
)

const proxyBodySampleBytes = 300

// wcCategory mirrors the WooCommerce category shape expected by storefront
// clients that still speak the wc API.
type wcCategory struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Count int    `json:"count"`
}

// Printify has no category endpoint, so the proxy answers the wc categories
// route from a fixed list matching the shop's tag taxonomy.
var wcStaticCategories = []wcCategory{
	{ID: 1, Name: "Back to School", Slug: "back-to-school", Count: 1},
	{ID: 2, Name: "New", Slug: "new", Count: 2},
	{ID: 3, Name: "Accessories", Slug: "accessories", Count: 1},
	{ID: 4, Name: "Bags", Slug: "bags", Count: 2},
	{ID: 5, Name: "Gaming", Slug: "gaming", Count: 4},
	{ID: 6, Name: "Journal", Slug: "journal", Count: 2},
	{ID: 7, Name: "Shirts", Slug: "shirts", Count: 3},
}

// ProxyHandlers forwards wc-shaped storefront requests to Printify.
type ProxyHandlers struct {
	printify *upstream.PrintifyClient
}

// ProxyHandlersDeps wires the dependencies required by ProxyHandlers.
type ProxyHandlersDeps struct {
	Printify *upstream.PrintifyClient
}

// NewProxyHandlers constructs the wc passthrough proxy.
func NewProxyHandlers(deps ProxyHandlersDeps) *ProxyHandlers {
	return &ProxyHandlers{printify: deps.Printify}
}

// Routes registers the proxy wildcard.
func (h *ProxyHandlers) Routes(r chi.Router) {
	r.Get("/*", h.proxy)
}

func (h *ProxyHandlers) proxy(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if h.printify == nil {
		httpx.WriteError(ctx, w, httpx.NewError("proxy_unconfigured", "printify upstream is not configured", http.StatusServiceUnavailable))
		return
	}

	subPath := strings.Trim(chi.URLParam(r, "*"), "/")

	query := r.URL.Query()
	if debug := query.Get("debug"); debug == "1" || debug == "true" {
		h.debugProbe(w, r)
		return
	}

	if subPath == "products/categories" {
		writeJSONResponse(w, http.StatusOK, wcStaticCategories)
		return
	}

	target := subPath
	switch {
	case subPath == "products":
		target = h.printify.ProductsPath()
	case strings.HasPrefix(subPath, "products/"):
		target = h.printify.ProductPath(strings.TrimPrefix(subPath, "products/"))
	}

	resp, err := h.printify.Forward(ctx, http.MethodGet, target, query, nil)
	if err != nil {
		requestctx.Logger(ctx).Warn("proxy upstream unreachable",
			zap.String("target", target),
			zap.Error(err),
		)
		httpx.WriteError(ctx, w, httpx.NewError("upstream_error", "upstream request failed", http.StatusBadGateway))
		return
	}
	defer func() { _ = resp.Body.Close() }()

	if contentType := resp.Header.Get("Content-Type"); contentType != "" {
		w.Header().Set("Content-Type", contentType)
	}
	w.WriteHeader(resp.StatusCode)
	_, _ = io.Copy(w, resp.Body)
}

// debugProbe reports proxy configuration and the result of a one-item listing
// request without exposing the full credential.
func (h *ProxyHandlers) debugProbe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	payload := map[string]any{
		"ok":           true,
		"shopId":       h.printify.ShopID(),
		"tokenPresent": h.printify.TokenConfigured(),
		"tokenPrefix":  h.printify.TokenPrefix(),
	}

	probe := map[string]any{}
	resp, err := h.printify.Forward(ctx, http.MethodGet, h.printify.ProductsPath(), url.Values{"limit": {"1"}}, nil)
	if err != nil {
		payload["ok"] = false
		probe["ok"] = false
		probe["error"] = err.Error()
	} else {
		defer func() { _ = resp.Body.Close() }()
		sample, _ := io.ReadAll(io.LimitReader(resp.Body, proxyBodySampleBytes))
		probe["url"] = resp.Request.URL.String()
		probe["status"] = resp.StatusCode
		probe["ok"] = resp.StatusCode >= 200 && resp.StatusCode < 300
		probe["contentType"] = resp.Header.Get("Content-Type")
		probe["bodySample"] = string(sample)
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			payload["ok"] = false
		}
	}
	payload["probe"] = probe

	writeJSONResponse(w, http.StatusOK, payload)
}
