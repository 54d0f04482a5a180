package catalog

import (
	"strconv"
	"strings"
)

// DollarsFromCents converts a minor-unit integer amount (cents) into a
// decimal currency value. Display formatting is the caller's concern.
func DollarsFromCents(minor int64) float64 {
	return float64(minor) / 100
}

// ParsePrice parses a decimal price string as supplied by WooCommerce.
// Empty or unparseable input yields 0.
func ParsePrice(value string) float64 {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0
	}
	return parsed
}
