package upstream

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/animecove/storefront-api/internal/catalog"
	"github.com/animecove/storefront-api/internal/platform/config"
)

// SourceWooCommerce identifies the WooCommerce REST upstream.
const SourceWooCommerce = "woocommerce"

const wooAPIPrefix = "/wp-json/wc/v3"

// WooCommerceClient fetches product payloads from a WooCommerce store using
// consumer key/secret basic auth.
type WooCommerceClient struct {
	storeURL       string
	consumerKey    string
	consumerSecret string
	hc             *http.Client
}

// NewWooCommerceClient constructs a client from the WooCommerce
// configuration.
func NewWooCommerceClient(cfg config.WooCommerceConfig, opts ...Option) *WooCommerceClient {
	options := buildClientOptions(opts)
	return &WooCommerceClient{
		storeURL:       strings.TrimRight(cfg.StoreURL, "/"),
		consumerKey:    cfg.ConsumerKey,
		consumerSecret: cfg.ConsumerSecret,
		hc:             options.httpClient,
	}
}

func (c *WooCommerceClient) decorate(req *http.Request) {
	req.SetBasicAuth(c.consumerKey, c.consumerSecret)
}

// ListProducts fetches the store's product list.
func (c *WooCommerceClient) ListProducts(ctx context.Context) ([]catalog.WooProduct, error) {
	var payload []catalog.WooProduct
	query := url.Values{"per_page": {"100"}}
	target := joinURL(c.storeURL, wooAPIPrefix+"/products", query)
	if err := getJSON(ctx, c.hc, SourceWooCommerce, target, c.decorate, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// GetProduct fetches a single product by id.
func (c *WooCommerceClient) GetProduct(ctx context.Context, id string) (catalog.WooProduct, error) {
	var payload catalog.WooProduct
	target := joinURL(c.storeURL, wooAPIPrefix+"/products/"+url.PathEscape(id), nil)
	if err := getJSON(ctx, c.hc, SourceWooCommerce, target, c.decorate, &payload); err != nil {
		return catalog.WooProduct{}, err
	}
	return payload, nil
}

// Ping performs a lightweight request to verify connectivity and credentials.
func (c *WooCommerceClient) Ping(ctx context.Context) error {
	query := url.Values{"per_page": {"1"}}
	target := joinURL(c.storeURL, wooAPIPrefix+"/products", query)
	return getJSON(ctx, c.hc, SourceWooCommerce, target, c.decorate, nil)
}
