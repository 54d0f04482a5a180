package catalog

import (
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
)

const (
	// DefaultListLimit is applied when a request carries no usable limit.
	DefaultListLimit = 20
)

// ListOptions hold the filter and pagination parameters for a catalog
// listing.
type ListOptions struct {
	Search   string
	Category string
	Featured bool
	Limit    int
	Offset   int
}

// ParseListOptions decodes list options from a URL query string. Parsing is
// permissive and never fails: non-numeric or non-positive limits fall back
// to the default, negative offsets to zero.
func ParseListOptions(query url.Values) ListOptions {
	opts := ListOptions{
		Search:   strings.TrimSpace(query.Get("search")),
		Category: strings.TrimSpace(query.Get("category")),
		Featured: query.Get("featured") == "true",
		Limit:    DefaultListLimit,
		Offset:   0,
	}

	if raw := query.Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			opts.Limit = parsed
		}
	}
	if raw := query.Get("offset"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed >= 0 {
			opts.Offset = parsed
		}
	}

	return opts
}

// Page is one slice of a filtered catalog listing together with its paging
// metadata.
type Page struct {
	Items   []Product `json:"data"`
	Total   int       `json:"total"`
	Limit   int       `json:"limit"`
	Offset  int       `json:"offset"`
	HasMore bool      `json:"hasMore"`
}

// FilterAndPage applies the search, category and featured filters in that
// order, preserving the input ordering, then slices out the requested page.
// Total counts the post-filter, pre-page list.
func FilterAndPage(products []Product, opts ListOptions) Page {
	if opts.Limit <= 0 {
		opts.Limit = DefaultListLimit
	}
	if opts.Offset < 0 {
		opts.Offset = 0
	}

	filtered := products
	if opts.Search != "" {
		needle := foldString(opts.Search)
		filtered = filterProducts(filtered, func(p Product) bool {
			if strings.Contains(foldString(p.Name), needle) {
				return true
			}
			if strings.Contains(foldString(p.Description), needle) {
				return true
			}
			for _, tag := range p.Tags {
				if strings.Contains(foldString(tag), needle) {
					return true
				}
			}
			return false
		})
	}
	if opts.Category != "" {
		wanted := foldString(opts.Category)
		filtered = filterProducts(filtered, func(p Product) bool {
			return foldString(p.Category) == wanted
		})
	}
	if opts.Featured {
		filtered = filterProducts(filtered, func(p Product) bool {
			return p.Featured
		})
	}

	total := len(filtered)
	start := opts.Offset
	if start > total {
		start = total
	}
	end := start + opts.Limit
	if end > total {
		end = total
	}

	items := make([]Product, end-start)
	copy(items, filtered[start:end])

	return Page{
		Items:   items,
		Total:   total,
		Limit:   opts.Limit,
		Offset:  opts.Offset,
		HasMore: opts.Offset+opts.Limit < total,
	}
}

func filterProducts(products []Product, keep func(Product) bool) []Product {
	out := make([]Product, 0, len(products))
	for _, p := range products {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}

// foldString normalises a string for caseless comparison. A fresh caser is
// used per call since cases.Caser values are not safe for concurrent use.
func foldString(value string) string {
	return cases.Fold().String(value)
}
