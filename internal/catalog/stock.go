package catalog

// VariationInStock derives per-variation availability. Variations without
// inventory tracking are always in stock; tracked variations are in stock
// only while the alert threshold is positive. This reproduces the upstream
// heuristic as-is, even though the threshold is a reorder alarm rather than
// an on-hand quantity.
func VariationInStock(trackInventory bool, alertThreshold int64) bool {
	if !trackInventory {
		return true
	}
	return alertThreshold > 0
}

// AnyInStock reports whether at least one variation is in stock. An empty
// list is out of stock.
func AnyInStock(variations []Variation) bool {
	for _, v := range variations {
		if v.InStock {
			return true
		}
	}
	return false
}
