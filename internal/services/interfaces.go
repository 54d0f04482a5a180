package services

import (
	"context"

	"github.com/animecove/storefront-api/internal/catalog"
)

// ProductSource is the per-upstream capability the catalog service composes:
// one implementation per commerce platform, each pairing a fetch client with
// the normaliser.
type ProductSource interface {
	// Name returns the stable source identifier used in routes.
	Name() string
	// List fetches and normalises the source's full product list.
	List(ctx context.Context) ([]catalog.Product, error)
	// Get fetches and normalises a single product by upstream id.
	Get(ctx context.Context, id string) (catalog.Product, error)
	// Ping verifies connectivity and credentials for readiness checks.
	Ping(ctx context.Context) error
}

// CatalogService exposes the normalised, filterable catalog across all
// configured sources.
type CatalogService interface {
	// ListProducts returns one filtered, paginated page of the source's
	// catalog. An empty source selects the configured default.
	ListProducts(ctx context.Context, source string, opts catalog.ListOptions) (catalog.Page, error)
	// GetProduct returns a single normalised product.
	GetProduct(ctx context.Context, source, id string) (catalog.Product, error)
	// Sources lists the configured source names in registration order.
	Sources() []string
	// DefaultSource names the source used when a request does not pick one.
	DefaultSource() string
	// CheckSources runs every source's readiness ping.
	CheckSources(ctx context.Context) map[string]error
}
