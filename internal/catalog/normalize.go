package catalog

import "github.com/microcosm-cc/bluemonday"

// Normalizer turns source-specific raw payloads into canonical products.
// The per-source entry points extract fields into a productSeed; assemble
// applies the shared fallback rules so the three sources cannot drift.
type Normalizer struct {
	placeholder string
	html        *bluemonday.Policy
}

// NormalizerOption customises Normalizer construction.
type NormalizerOption func(*Normalizer)

// WithPlaceholderImage overrides the image served when nothing resolves.
func WithPlaceholderImage(path string) NormalizerOption {
	return func(n *Normalizer) {
		if path != "" {
			n.placeholder = path
		}
	}
}

// WithHTMLPolicy overrides the sanitizer applied to HTML descriptions.
func WithHTMLPolicy(policy *bluemonday.Policy) NormalizerOption {
	return func(n *Normalizer) {
		if policy != nil {
			n.html = policy
		}
	}
}

// NewNormalizer constructs a Normalizer with the default placeholder image
// and a UGC sanitisation policy for upstream HTML.
func NewNormalizer(opts ...NormalizerOption) *Normalizer {
	n := &Normalizer{
		placeholder: DefaultPlaceholderImage,
		html:        bluemonday.UGCPolicy(),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// productSeed carries the raw per-source field extraction before the shared
// fallback rules run.
type productSeed struct {
	id            string
	name          string
	description   string
	price         float64
	originalPrice float64
	images        []string
	category      Category
	categories    []Category
	featured      bool
	tags          []string
	sku           string
	variations    []Variation
	inStock       bool
}

// assemble applies the defaults every source shares: placeholder name and
// image, empty-safe slices, a never-empty category list, and the sku
// fallback to the product id.
func (n *Normalizer) assemble(seed productSeed) Product {
	name := seed.name
	if name == "" {
		name = UnnamedProduct
	}

	images := seed.images
	if images == nil {
		images = []string{}
	}
	image := n.placeholder
	if len(images) > 0 {
		image = images[0]
	}

	categories := seed.categories
	if len(categories) == 0 {
		fallback := seed.category
		if fallback.Name == "" {
			fallback = ResolveCategoryRef("")
		}
		categories = []Category{fallback}
	}
	category := seed.category.Name
	if category == "" {
		category = categories[0].Name
	}

	tags := seed.tags
	if tags == nil {
		tags = []string{}
	}

	variations := seed.variations
	if variations == nil {
		variations = []Variation{}
	}

	sku := seed.sku
	if sku == "" {
		sku = seed.id
	}

	return Product{
		ID:            seed.id,
		Name:          name,
		Description:   seed.description,
		Price:         seed.price,
		OriginalPrice: seed.originalPrice,
		Image:         image,
		Images:        images,
		Category:      category,
		Categories:    categories,
		InStock:       seed.inStock,
		Featured:      seed.featured,
		Tags:          tags,
		SKU:           sku,
		Variations:    variations,
	}
}

// sanitizeHTML strips disallowed markup from upstream-supplied rich text.
func (n *Normalizer) sanitizeHTML(value string) string {
	if value == "" {
		return ""
	}
	return n.html.Sanitize(value)
}
