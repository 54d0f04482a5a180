package catalog

import (
	"strconv"
	"strings"

	"github.com/animecove/storefront-api/internal/platform/textutil"
)

const printifyFeaturedTag = "featured"

// PrintifyListPayload is the decoded body of GET /shops/{id}/products.json.
type PrintifyListPayload struct {
	Data []PrintifyProduct `json:"data"`
}

// PrintifyProduct is the subset of the Printify product record used for
// normalisation. Variant prices are minor-unit integers.
type PrintifyProduct struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Tags        []string          `json:"tags"`
	Options     []PrintifyOption  `json:"options"`
	Variants    []PrintifyVariant `json:"variants"`
	Images      []PrintifyImage   `json:"images"`
	Visible     bool              `json:"visible"`
}

// PrintifyOption describes a variant axis (e.g. color, size) and its values.
type PrintifyOption struct {
	Name   string                `json:"name"`
	Type   string                `json:"type"`
	Values []PrintifyOptionValue `json:"values"`
}

// PrintifyOptionValue is one selectable value of an option axis.
type PrintifyOptionValue struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

// PrintifyVariant is a purchasable print variant.
type PrintifyVariant struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	SKU         string  `json:"sku"`
	Price       int64   `json:"price"`
	IsEnabled   bool    `json:"is_enabled"`
	IsDefault   bool    `json:"is_default"`
	IsAvailable bool    `json:"is_available"`
	Quantity    int64   `json:"quantity"`
	Options     []int64 `json:"options"`
}

// PrintifyImage is a hosted mockup image.
type PrintifyImage struct {
	Src       string  `json:"src"`
	Position  string  `json:"position"`
	IsDefault bool    `json:"is_default"`
	Variants  []int64 `json:"variant_ids"`
}

// PrintifyProducts normalises a product-list payload.
func (n *Normalizer) PrintifyProducts(payload PrintifyListPayload) []Product {
	products := make([]Product, 0, len(payload.Data))
	for _, raw := range payload.Data {
		products = append(products, n.PrintifyProduct(raw))
	}
	return products
}

// PrintifyProduct normalises one Printify product. The base price comes from
// the default variant when one is flagged, otherwise the first variant. The
// first tag doubles as the category since Printify has no category concept.
func (n *Normalizer) PrintifyProduct(raw PrintifyProduct) Product {
	optionValues := printifyOptionIndex(raw.Options)

	variations := make([]Variation, 0, len(raw.Variants))
	defaultIdx := -1
	for i, variant := range raw.Variants {
		if defaultIdx < 0 && variant.IsDefault {
			defaultIdx = i
		}
		variations = append(variations, mapPrintifyVariant(variant, optionValues))
	}
	if defaultIdx < 0 {
		defaultIdx = 0
	}

	var price float64
	if len(variations) > 0 {
		price = variations[defaultIdx].Price
	}

	var inStock bool
	for _, variant := range raw.Variants {
		if variant.IsAvailable && variant.Quantity > 0 {
			inStock = true
			break
		}
	}

	images := make([]string, 0, len(raw.Images))
	defaultImage := ""
	for _, img := range raw.Images {
		if img.Src == "" {
			continue
		}
		if defaultImage == "" && img.IsDefault {
			defaultImage = img.Src
		}
		images = append(images, img.Src)
	}
	if defaultImage != "" && len(images) > 0 && images[0] != defaultImage {
		// The default mockup leads so Image always matches Images[0].
		reordered := make([]string, 0, len(images))
		reordered = append(reordered, defaultImage)
		for _, src := range images {
			if src != defaultImage {
				reordered = append(reordered, src)
			}
		}
		images = reordered
	}

	var category Category
	categories := make([]Category, 0, len(raw.Tags))
	for i, tag := range raw.Tags {
		mapped := Category{
			ID:   strconv.Itoa(i + 1),
			Name: tag,
			Slug: Slugify(tag),
		}
		if i == 0 {
			category = mapped
		}
		categories = append(categories, mapped)
	}
	if category.Name == "" {
		category = Category{ID: categoryFallbackID, Name: categoryNameGeneral, Slug: Slugify(categoryNameGeneral)}
	}

	featured := false
	for _, tag := range raw.Tags {
		if strings.EqualFold(tag, printifyFeaturedTag) {
			featured = true
			break
		}
	}

	return n.assemble(productSeed{
		id:            raw.ID,
		name:          raw.Title,
		description:   n.sanitizeHTML(raw.Description),
		price:         price,
		originalPrice: price,
		images:        images,
		category:      category,
		categories:    categories,
		featured:      featured,
		tags:          raw.Tags,
		sku:           skuFromPrintifyVariants(raw.Variants),
		variations:    variations,
		inStock:       inStock,
	})
}

func printifyOptionIndex(options []PrintifyOption) map[int64]printifyOptionValue {
	index := make(map[int64]printifyOptionValue)
	for _, option := range options {
		for _, value := range option.Values {
			index[value.ID] = printifyOptionValue{name: option.Name, title: value.Title}
		}
	}
	return index
}

type printifyOptionValue struct {
	name  string
	title string
}

func mapPrintifyVariant(variant PrintifyVariant, optionValues map[int64]printifyOptionValue) Variation {
	attributes := map[string]string{
		"sku": variant.SKU,
		"upc": "",
	}
	for _, optionID := range variant.Options {
		if value, ok := optionValues[optionID]; ok && value.name != "" {
			attributes[strings.ToLower(value.name)] = value.title
		}
	}

	name := variant.Title
	if name == "" {
		name = DefaultVariationName
	}

	return Variation{
		ID:         strconv.FormatInt(variant.ID, 10),
		Name:       name,
		Price:      DollarsFromCents(variant.Price),
		InStock:    variant.IsAvailable && variant.Quantity > 0,
		Attributes: textutil.NormalizeStringMap(attributes),
	}
}

func skuFromPrintifyVariants(variants []PrintifyVariant) string {
	for _, variant := range variants {
		if variant.IsDefault && variant.SKU != "" {
			return variant.SKU
		}
	}
	if len(variants) > 0 {
		return variants[0].SKU
	}
	return ""
}
