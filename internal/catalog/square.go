package catalog

const (
	squareTypeItem  = "ITEM"
	squareTypeImage = "IMAGE"

	squareFeaturedLabelColor = "FF0000"
)

// SquareListPayload is the decoded body of GET /v2/catalog/list: a flat
// mixed list of item and image objects.
type SquareListPayload struct {
	Objects []SquareObject `json:"objects"`
	Cursor  string         `json:"cursor"`
}

// SquareObjectPayload is the decoded body of GET /v2/catalog/object/{id}.
type SquareObjectPayload struct {
	Object         SquareObject   `json:"object"`
	RelatedObjects []SquareObject `json:"related_objects"`
}

// SquareObject is a discriminated catalog record; Type selects which of the
// nested data fields is populated.
type SquareObject struct {
	Type      string           `json:"type"`
	ID        string           `json:"id"`
	ItemData  *SquareItemData  `json:"item_data,omitempty"`
	ImageData *SquareImageData `json:"image_data,omitempty"`
}

// SquareItemData carries the item fields used for normalisation.
type SquareItemData struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	CategoryID  string            `json:"category_id"`
	LabelColor  string            `json:"label_color"`
	Categories  []string          `json:"categories"`
	ImageIDs    []string          `json:"image_ids"`
	Variations  []SquareVariation `json:"variations"`
}

// SquareImageData carries the hosted image URL.
type SquareImageData struct {
	URL string `json:"url"`
}

// SquareVariation wraps the nested variation record.
type SquareVariation struct {
	ID                string               `json:"id"`
	ItemVariationData *SquareVariationData `json:"item_variation_data,omitempty"`
}

// SquareVariationData carries the variation fields used for normalisation.
type SquareVariationData struct {
	Name                    string       `json:"name"`
	SKU                     string       `json:"sku"`
	UPC                     string       `json:"upc"`
	Color                   string       `json:"color"`
	Size                    string       `json:"size"`
	TrackInventory          bool         `json:"track_inventory"`
	InventoryAlertThreshold int64        `json:"inventory_alert_threshold"`
	PriceMoney              *SquareMoney `json:"price_money,omitempty"`
}

// SquareMoney is a minor-unit monetary amount.
type SquareMoney struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// SquareList normalises a full catalog-list payload: the image index is
// built once across the flat object list, then every ITEM object is
// normalised against it. Non-item objects are skipped.
func (n *Normalizer) SquareList(payload SquareListPayload) []Product {
	index := BuildImageIndex(payload.Objects)
	products := make([]Product, 0, len(payload.Objects))
	for _, obj := range payload.Objects {
		if product, ok := n.SquareItem(obj, index); ok {
			products = append(products, product)
		}
	}
	return products
}

// SquareObjectResult normalises a single-object payload, resolving images
// from the related objects. The second return is false when the object is
// not an item.
func (n *Normalizer) SquareObjectResult(payload SquareObjectPayload) (Product, bool) {
	index := BuildImageIndex(payload.RelatedObjects)
	return n.SquareItem(payload.Object, index)
}

// SquareItem normalises one catalog object. Objects whose type is not ITEM
// yield ok=false; this is a filter, not an error.
func (n *Normalizer) SquareItem(obj SquareObject, images map[string]string) (Product, bool) {
	if obj.Type != squareTypeItem {
		return Product{}, false
	}

	var item SquareItemData
	if obj.ItemData != nil {
		item = *obj.ItemData
	}

	variations := make([]Variation, 0, len(item.Variations))
	var baseSKU string
	for i, raw := range item.Variations {
		mapped := mapSquareVariation(raw)
		if i == 0 {
			baseSKU = mapped.Attributes["sku"]
		}
		variations = append(variations, mapped)
	}

	var price float64
	if len(variations) > 0 {
		price = variations[0].Price
	}

	category := ResolveCategoryRef(item.CategoryID)

	return n.assemble(productSeed{
		id:            obj.ID,
		name:          item.Name,
		description:   item.Description,
		price:         price,
		originalPrice: price,
		images:        ResolveImages(item.ImageIDs, images),
		category:      category,
		categories:    []Category{category},
		featured:      item.LabelColor == squareFeaturedLabelColor,
		tags:          item.Categories,
		sku:           baseSKU,
		variations:    variations,
		inStock:       AnyInStock(variations),
	}), true
}

func mapSquareVariation(raw SquareVariation) Variation {
	var data SquareVariationData
	if raw.ItemVariationData != nil {
		data = *raw.ItemVariationData
	}

	var price float64
	if data.PriceMoney != nil {
		price = DollarsFromCents(data.PriceMoney.Amount)
	}

	attributes := map[string]string{
		"sku": data.SKU,
		"upc": data.UPC,
	}
	if data.Color != "" {
		attributes["color"] = data.Color
	}
	if data.Size != "" {
		attributes["size"] = data.Size
	}

	name := data.Name
	if name == "" {
		name = DefaultVariationName
	}

	return Variation{
		ID:         raw.ID,
		Name:       name,
		Price:      price,
		InStock:    VariationInStock(data.TrackInventory, data.InventoryAlertThreshold),
		Attributes: attributes,
	}
}
