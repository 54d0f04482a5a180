package services

import (
	"context"
	"fmt"

	"github.com/animecove/storefront-api/internal/catalog"
	"github.com/animecove/storefront-api/internal/upstream"
)

// SquareSourceClient is the slice of the Square client used by the source
// adapter.
type SquareSourceClient interface {
	ListCatalog(ctx context.Context) (catalog.SquareListPayload, error)
	GetCatalogObject(ctx context.Context, id string) (catalog.SquareObjectPayload, error)
	Ping(ctx context.Context) error
}

// WooCommerceSourceClient is the slice of the WooCommerce client used by the
// source adapter.
type WooCommerceSourceClient interface {
	ListProducts(ctx context.Context) ([]catalog.WooProduct, error)
	GetProduct(ctx context.Context, id string) (catalog.WooProduct, error)
	Ping(ctx context.Context) error
}

// PrintifySourceClient is the slice of the Printify client used by the
// source adapter.
type PrintifySourceClient interface {
	ListProducts(ctx context.Context) (catalog.PrintifyListPayload, error)
	GetProduct(ctx context.Context, id string) (catalog.PrintifyProduct, error)
	Ping(ctx context.Context) error
}

type squareSource struct {
	client     SquareSourceClient
	normalizer *catalog.Normalizer
}

// NewSquareSource adapts the Square client into a ProductSource.
func NewSquareSource(client SquareSourceClient, normalizer *catalog.Normalizer) ProductSource {
	if normalizer == nil {
		normalizer = catalog.NewNormalizer()
	}
	return &squareSource{client: client, normalizer: normalizer}
}

func (s *squareSource) Name() string { return upstream.SourceSquare }

func (s *squareSource) List(ctx context.Context) ([]catalog.Product, error) {
	payload, err := s.client.ListCatalog(ctx)
	if err != nil {
		return nil, err
	}
	return s.normalizer.SquareList(payload), nil
}

func (s *squareSource) Get(ctx context.Context, id string) (catalog.Product, error) {
	payload, err := s.client.GetCatalogObject(ctx, id)
	if err != nil {
		return catalog.Product{}, err
	}
	product, ok := s.normalizer.SquareObjectResult(payload)
	if !ok {
		// Non-item objects are indistinguishable from missing products to
		// the storefront.
		return catalog.Product{}, fmt.Errorf("%w: %s", ErrProductNotFound, id)
	}
	return product, nil
}

func (s *squareSource) Ping(ctx context.Context) error {
	return s.client.Ping(ctx)
}

type wooCommerceSource struct {
	client     WooCommerceSourceClient
	normalizer *catalog.Normalizer
}

// NewWooCommerceSource adapts the WooCommerce client into a ProductSource.
func NewWooCommerceSource(client WooCommerceSourceClient, normalizer *catalog.Normalizer) ProductSource {
	if normalizer == nil {
		normalizer = catalog.NewNormalizer()
	}
	return &wooCommerceSource{client: client, normalizer: normalizer}
}

func (s *wooCommerceSource) Name() string { return upstream.SourceWooCommerce }

func (s *wooCommerceSource) List(ctx context.Context) ([]catalog.Product, error) {
	payload, err := s.client.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	return s.normalizer.WooProducts(payload), nil
}

func (s *wooCommerceSource) Get(ctx context.Context, id string) (catalog.Product, error) {
	payload, err := s.client.GetProduct(ctx, id)
	if err != nil {
		return catalog.Product{}, err
	}
	return s.normalizer.WooProduct(payload), nil
}

func (s *wooCommerceSource) Ping(ctx context.Context) error {
	return s.client.Ping(ctx)
}

type printifySource struct {
	client     PrintifySourceClient
	normalizer *catalog.Normalizer
}

// NewPrintifySource adapts the Printify client into a ProductSource.
func NewPrintifySource(client PrintifySourceClient, normalizer *catalog.Normalizer) ProductSource {
	if normalizer == nil {
		normalizer = catalog.NewNormalizer()
	}
	return &printifySource{client: client, normalizer: normalizer}
}

func (s *printifySource) Name() string { return upstream.SourcePrintify }

func (s *printifySource) List(ctx context.Context) ([]catalog.Product, error) {
	payload, err := s.client.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	return s.normalizer.PrintifyProducts(payload), nil
}

func (s *printifySource) Get(ctx context.Context, id string) (catalog.Product, error) {
	payload, err := s.client.GetProduct(ctx, id)
	if err != nil {
		return catalog.Product{}, err
	}
	return s.normalizer.PrintifyProduct(payload), nil
}

func (s *printifySource) Ping(ctx context.Context) error {
	return s.client.Ping(ctx)
}
