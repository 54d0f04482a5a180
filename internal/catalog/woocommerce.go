package catalog

import "strconv"

const wooStockStatusInStock = "instock"

// WooProduct is the subset of the WooCommerce REST v3 product record used
// for normalisation. Prices arrive as decimal strings and descriptions as
// HTML.
type WooProduct struct {
	ID               int64             `json:"id"`
	Name             string            `json:"name"`
	Slug             string            `json:"slug"`
	Featured         bool              `json:"featured"`
	Description      string            `json:"description"`
	ShortDescription string            `json:"short_description"`
	SKU              string            `json:"sku"`
	Price            string            `json:"price"`
	RegularPrice     string            `json:"regular_price"`
	SalePrice        string            `json:"sale_price"`
	OnSale           bool              `json:"on_sale"`
	StockStatus      string            `json:"stock_status"`
	Categories       []WooCategoryRef  `json:"categories"`
	Tags             []WooCategoryRef  `json:"tags"`
	Images           []WooImage        `json:"images"`
	Attributes       []WooAttribute    `json:"attributes"`
}

// WooCategoryRef names a WooCommerce category or tag.
type WooCategoryRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// WooImage is a WooCommerce product image record.
type WooImage struct {
	ID  int64  `json:"id"`
	Src string `json:"src"`
	Alt string `json:"alt"`
}

// WooAttribute is a WooCommerce product attribute record.
type WooAttribute struct {
	ID      int64    `json:"id"`
	Name    string   `json:"name"`
	Options []string `json:"options"`
}

// WooProducts normalises a product-list payload.
func (n *Normalizer) WooProducts(payload []WooProduct) []Product {
	products := make([]Product, 0, len(payload))
	for _, raw := range payload {
		products = append(products, n.WooProduct(raw))
	}
	return products
}

// WooProduct normalises one WooCommerce product. The base price comes from
// the parsed price string rather than a variation, and the regular price
// feeds originalPrice when it differs.
func (n *Normalizer) WooProduct(raw WooProduct) Product {
	price := ParsePrice(raw.Price)
	originalPrice := ParsePrice(raw.RegularPrice)
	if originalPrice == 0 {
		originalPrice = price
	}

	images := make([]string, 0, len(raw.Images))
	for _, img := range raw.Images {
		if img.Src != "" {
			images = append(images, img.Src)
		}
	}

	var category Category
	categories := make([]Category, 0, len(raw.Categories))
	for i, ref := range raw.Categories {
		mapped := Category{
			ID:   strconv.FormatInt(ref.ID, 10),
			Name: ref.Name,
			Slug: ref.Slug,
		}
		if mapped.Slug == "" {
			mapped.Slug = Slugify(ref.Name)
		}
		if i == 0 {
			category = mapped
		}
		categories = append(categories, mapped)
	}
	if category.Name == "" {
		category = Category{ID: categoryFallbackID, Name: categoryNameGeneral, Slug: Slugify(categoryNameGeneral)}
	}

	tags := make([]string, 0, len(raw.Tags))
	for _, tag := range raw.Tags {
		if tag.Name != "" {
			tags = append(tags, tag.Name)
		}
	}

	return n.assemble(productSeed{
		id:            strconv.FormatInt(raw.ID, 10),
		name:          raw.Name,
		description:   n.sanitizeHTML(raw.Description),
		price:         price,
		originalPrice: originalPrice,
		images:        images,
		category:      category,
		categories:    categories,
		featured:      raw.Featured,
		tags:          tags,
		sku:           raw.SKU,
		inStock:       raw.StockStatus == wooStockStatusInStock,
	})
}
