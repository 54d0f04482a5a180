package upstream

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/oklog/ulid/v2"

	"github.com/animecove/storefront-api/internal/catalog"
	"github.com/animecove/storefront-api/internal/platform/config"
)

// SourcePrintify identifies the Printify upstream.
const SourcePrintify = "printify"

// Printify rejects requests with non-browser user agents on some plans.
const printifyUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// PrintifyClient fetches product payloads from the Printify API for a single
// shop.
type PrintifyClient struct {
	baseURL  string
	apiToken string
	shopID   string
	hc       *http.Client
}

// NewPrintifyClient constructs a client from the Printify configuration.
func NewPrintifyClient(cfg config.PrintifyConfig, opts ...Option) *PrintifyClient {
	options := buildClientOptions(opts)
	return &PrintifyClient{
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		apiToken: cfg.APIToken,
		shopID:   cfg.ShopID,
		hc:       options.httpClient,
	}
}

// ShopID exposes the configured shop identifier for diagnostics.
func (c *PrintifyClient) ShopID() string { return c.shopID }

// TokenConfigured reports whether an API token is present without exposing it.
func (c *PrintifyClient) TokenConfigured() bool { return c.apiToken != "" }

// TokenPrefix returns a short redacted prefix of the token for diagnostics.
func (c *PrintifyClient) TokenPrefix() string {
	if len(c.apiToken) <= 10 {
		return c.apiToken
	}
	return c.apiToken[:10] + "..."
}

func (c *PrintifyClient) decorate(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.apiToken)
	req.Header.Set("User-Agent", printifyUserAgent)
}

// ListProducts fetches the shop's product list.
func (c *PrintifyClient) ListProducts(ctx context.Context) (catalog.PrintifyListPayload, error) {
	var payload catalog.PrintifyListPayload
	target := joinURL(c.baseURL, fmt.Sprintf("/shops/%s/products.json", url.PathEscape(c.shopID)), nil)
	if err := getJSON(ctx, c.hc, SourcePrintify, target, c.decorate, &payload); err != nil {
		return catalog.PrintifyListPayload{}, err
	}
	return payload, nil
}

// GetProduct fetches a single product by id.
func (c *PrintifyClient) GetProduct(ctx context.Context, id string) (catalog.PrintifyProduct, error) {
	var payload catalog.PrintifyProduct
	target := joinURL(c.baseURL, fmt.Sprintf("/shops/%s/products/%s.json", url.PathEscape(c.shopID), url.PathEscape(id)), nil)
	if err := getJSON(ctx, c.hc, SourcePrintify, target, c.decorate, &payload); err != nil {
		return catalog.PrintifyProduct{}, err
	}
	return payload, nil
}

// Ping performs a lightweight request to verify connectivity and credentials.
func (c *PrintifyClient) Ping(ctx context.Context) error {
	query := url.Values{"limit": {"1"}}
	target := joinURL(c.baseURL, fmt.Sprintf("/shops/%s/products.json", url.PathEscape(c.shopID)), query)
	return getJSON(ctx, c.hc, SourcePrintify, target, c.decorate, nil)
}

// Forward relays an arbitrary request to the Printify API, injecting the
// shop credentials. The subPath is relative to the API base (the shop prefix
// is the caller's responsibility) and the returned response body is the
// caller's to close.
func (c *PrintifyClient) Forward(ctx context.Context, method, subPath string, query url.Values, body io.Reader) (*http.Response, error) {
	target := joinURL(c.baseURL, "/"+strings.TrimLeft(subPath, "/"), query)
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("upstream %s: build request: %w", SourcePrintify, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(correlationHeader, ulid.Make().String())
	c.decorate(req)

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upstream %s: %w", SourcePrintify, err)
	}
	return resp, nil
}

// ProductsPath returns the shop-scoped product-list path used by Forward.
func (c *PrintifyClient) ProductsPath() string {
	return fmt.Sprintf("shops/%s/products.json", url.PathEscape(c.shopID))
}

// ProductPath returns the shop-scoped single-product path used by Forward.
func (c *PrintifyClient) ProductPath(id string) string {
	return fmt.Sprintf("shops/%s/products/%s.json", url.PathEscape(c.shopID), url.PathEscape(id))
}
