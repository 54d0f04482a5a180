package catalog

import "strings"

const (
	categoryNameGeneral       = "General"
	categoryNameUncategorized = "Uncategorized"
	categoryFallbackID        = "general"
)

// ResolveCategoryRef maps an opaque upstream category reference to a display
// category. The list and single-object catalog calls do not resolve real
// category names, so any non-empty reference yields the static "General"
// label and an absent reference yields "Uncategorized".
func ResolveCategoryRef(id string) Category {
	name := categoryNameUncategorized
	categoryID := categoryFallbackID
	if id != "" {
		name = categoryNameGeneral
		categoryID = id
	}
	return Category{
		ID:   categoryID,
		Name: name,
		Slug: Slugify(name),
	}
}

// Slugify lowercases the name and collapses whitespace runs into single
// hyphens.
func Slugify(name string) string {
	lowered := strings.ToLower(name)
	return strings.Join(strings.Fields(lowered), "-")
}
