package upstream

import (
	"context"
	"net/http"
	"net/url"

	"github.com/animecove/storefront-api/internal/catalog"
	"github.com/animecove/storefront-api/internal/platform/config"
)

// SourceSquare identifies the Square Catalog upstream.
const SourceSquare = "square"

// SquareClient fetches raw catalog payloads from the Square Catalog API.
type SquareClient struct {
	baseURL     string
	accessToken string
	version     string
	hc          *http.Client
}

// NewSquareClient constructs a client from the Square configuration.
func NewSquareClient(cfg config.SquareConfig, opts ...Option) *SquareClient {
	options := buildClientOptions(opts)
	return &SquareClient{
		baseURL:     cfg.BaseURL,
		accessToken: cfg.AccessToken,
		version:     cfg.Version,
		hc:          options.httpClient,
	}
}

func (c *SquareClient) decorate(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("Square-Version", c.version)
}

// ListCatalog fetches the flat catalog object list.
func (c *SquareClient) ListCatalog(ctx context.Context) (catalog.SquareListPayload, error) {
	var payload catalog.SquareListPayload
	target := joinURL(c.baseURL, "/v2/catalog/list", nil)
	if err := getJSON(ctx, c.hc, SourceSquare, target, c.decorate, &payload); err != nil {
		return catalog.SquareListPayload{}, err
	}
	return payload, nil
}

// GetCatalogObject fetches a single catalog object with its related objects.
func (c *SquareClient) GetCatalogObject(ctx context.Context, id string) (catalog.SquareObjectPayload, error) {
	var payload catalog.SquareObjectPayload
	target := joinURL(c.baseURL, "/v2/catalog/object/"+url.PathEscape(id), nil)
	if err := getJSON(ctx, c.hc, SourceSquare, target, c.decorate, &payload); err != nil {
		return catalog.SquareObjectPayload{}, err
	}
	return payload, nil
}

// Ping performs a lightweight request to verify connectivity and credentials.
func (c *SquareClient) Ping(ctx context.Context) error {
	query := url.Values{"types": {"ITEM"}}
	target := joinURL(c.baseURL, "/v2/catalog/list", query)
	return getJSON(ctx, c.hc, SourceSquare, target, c.decorate, nil)
}
