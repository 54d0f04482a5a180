package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/animecove/storefront-api/internal/catalog"
	"github.com/animecove/storefront-api/internal/upstream"
)

var (
	// ErrUnknownSource indicates the requested catalog source is not configured.
	ErrUnknownSource = errors.New("catalog: unknown source")
	// ErrProductNotFound indicates the product does not exist upstream or is
	// not a sellable item.
	ErrProductNotFound = errors.New("catalog: product not found")
	// ErrCatalogInvalidInput indicates the caller provided an invalid argument.
	ErrCatalogInvalidInput = errors.New("catalog: invalid input")
)

// CatalogServiceDeps wires dependencies for the catalog service.
type CatalogServiceDeps struct {
	Sources       []ProductSource
	DefaultSource string
}

type catalogService struct {
	sources       map[string]ProductSource
	order         []string
	defaultSource string
}

// NewCatalogService validates and assembles the catalog service.
func NewCatalogService(deps CatalogServiceDeps) (CatalogService, error) {
	if len(deps.Sources) == 0 {
		return nil, fmt.Errorf("%w: at least one product source is required", ErrCatalogInvalidInput)
	}

	sources := make(map[string]ProductSource, len(deps.Sources))
	order := make([]string, 0, len(deps.Sources))
	for _, source := range deps.Sources {
		if source == nil {
			return nil, fmt.Errorf("%w: nil product source", ErrCatalogInvalidInput)
		}
		name := strings.ToLower(strings.TrimSpace(source.Name()))
		if name == "" {
			return nil, fmt.Errorf("%w: product source with empty name", ErrCatalogInvalidInput)
		}
		if _, exists := sources[name]; exists {
			return nil, fmt.Errorf("%w: duplicate product source %q", ErrCatalogInvalidInput, name)
		}
		sources[name] = source
		order = append(order, name)
	}

	defaultSource := strings.ToLower(strings.TrimSpace(deps.DefaultSource))
	if defaultSource == "" {
		defaultSource = order[0]
	}
	if _, ok := sources[defaultSource]; !ok {
		return nil, fmt.Errorf("%w: default source %q is not configured", ErrCatalogInvalidInput, defaultSource)
	}

	return &catalogService{
		sources:       sources,
		order:         order,
		defaultSource: defaultSource,
	}, nil
}

func (s *catalogService) resolve(source string) (ProductSource, error) {
	name := strings.ToLower(strings.TrimSpace(source))
	if name == "" {
		name = s.defaultSource
	}
	src, ok := s.sources[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSource, name)
	}
	return src, nil
}

func (s *catalogService) ListProducts(ctx context.Context, source string, opts catalog.ListOptions) (catalog.Page, error) {
	src, err := s.resolve(source)
	if err != nil {
		return catalog.Page{}, err
	}

	products, err := src.List(ctx)
	if err != nil {
		return catalog.Page{}, err
	}

	// An empty catalog is a valid result, not an error; callers distinguish
	// empty pages from fetch failures.
	return catalog.FilterAndPage(products, opts), nil
}

func (s *catalogService) GetProduct(ctx context.Context, source, id string) (catalog.Product, error) {
	if strings.TrimSpace(id) == "" {
		return catalog.Product{}, fmt.Errorf("%w: product id is required", ErrCatalogInvalidInput)
	}

	src, err := s.resolve(source)
	if err != nil {
		return catalog.Product{}, err
	}

	product, err := src.Get(ctx, id)
	if err != nil {
		if upstream.IsNotFound(err) {
			return catalog.Product{}, fmt.Errorf("%w: %s", ErrProductNotFound, id)
		}
		return catalog.Product{}, err
	}
	return product, nil
}

func (s *catalogService) Sources() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

func (s *catalogService) DefaultSource() string {
	return s.defaultSource
}

func (s *catalogService) CheckSources(ctx context.Context) map[string]error {
	results := make(map[string]error, len(s.order))
	for _, name := range s.order {
		results[name] = s.sources[name].Ping(ctx)
	}
	return results
}
