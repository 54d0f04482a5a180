package catalog

// Product is the canonical client-facing product shape shared by every
// upstream source. Instances are value objects: constructed fresh per fetch
// and never mutated afterwards.
type Product struct {
	ID            string      `json:"id"`
	Name          string      `json:"name"`
	Description   string      `json:"description"`
	Price         float64     `json:"price"`
	OriginalPrice float64     `json:"originalPrice"`
	Image         string      `json:"image"`
	Images        []string    `json:"images"`
	Category      string      `json:"category"`
	Categories    []Category  `json:"categories"`
	InStock       bool        `json:"inStock"`
	Featured      bool        `json:"featured"`
	Tags          []string    `json:"tags"`
	SKU           string      `json:"sku"`
	Variations    []Variation `json:"variations"`
}

// Variation is a purchasable variant of a product.
type Variation struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	Price      float64           `json:"price"`
	InStock    bool              `json:"inStock"`
	Attributes map[string]string `json:"attributes"`
}

// Category names a product grouping together with its URL slug.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

const (
	// UnnamedProduct is substituted when an upstream item carries no name.
	UnnamedProduct = "Unnamed Product"

	// DefaultVariationName is substituted when a variation carries no name.
	DefaultVariationName = "Default"

	// DefaultPlaceholderImage is served when no upstream image resolves.
	DefaultPlaceholderImage = "/placeholder-product.jpg"
)
