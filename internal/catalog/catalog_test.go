package catalog

import "testing"

func TestDollarsFromCents(t *testing.T) {
	cases := []struct {
		name  string
		minor int64
		want  float64
	}{
		{"zero", 0, 0},
		{"whole dollars", 2000, 20},
		{"cents", 1999, 19.99},
		{"single cent", 1, 0.01},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DollarsFromCents(tc.minor); got != tc.want {
				t.Errorf("DollarsFromCents(%d) = %v, want %v", tc.minor, got, tc.want)
			}
		})
	}
}

func TestParsePrice(t *testing.T) {
	cases := []struct {
		name  string
		value string
		want  float64
	}{
		{"plain", "24.99", 24.99},
		{"integer", "15", 15},
		{"padded", " 9.50 ", 9.5},
		{"empty", "", 0},
		{"garbage", "free", 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ParsePrice(tc.value); got != tc.want {
				t.Errorf("ParsePrice(%q) = %v, want %v", tc.value, got, tc.want)
			}
		})
	}
}

func TestVariationInStock(t *testing.T) {
	cases := []struct {
		name      string
		track     bool
		threshold int64
		want      bool
	}{
		{"untracked always in stock", false, 0, true},
		{"tracked zero threshold", true, 0, false},
		{"tracked positive threshold", true, 5, true},
		{"tracked negative threshold", true, -1, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := VariationInStock(tc.track, tc.threshold); got != tc.want {
				t.Errorf("VariationInStock(%v, %d) = %v, want %v", tc.track, tc.threshold, got, tc.want)
			}
		})
	}
}

func TestAnyInStock(t *testing.T) {
	if AnyInStock(nil) {
		t.Error("expected empty variation list to be out of stock")
	}
	if AnyInStock([]Variation{{InStock: false}, {InStock: false}}) {
		t.Error("expected all-out-of-stock list to be out of stock")
	}
	if !AnyInStock([]Variation{{InStock: false}, {InStock: true}}) {
		t.Error("expected one in-stock variation to suffice")
	}
}

func TestResolveCategoryRef(t *testing.T) {
	withRef := ResolveCategoryRef("CAT123")
	if withRef.Name != "General" {
		t.Errorf("expected General for non-empty ref, got %s", withRef.Name)
	}
	if withRef.ID != "CAT123" {
		t.Errorf("expected ref id preserved, got %s", withRef.ID)
	}
	if withRef.Slug != "general" {
		t.Errorf("unexpected slug: %s", withRef.Slug)
	}

	withoutRef := ResolveCategoryRef("")
	if withoutRef.Name != "Uncategorized" {
		t.Errorf("expected Uncategorized for empty ref, got %s", withoutRef.Name)
	}
	if withoutRef.ID != "general" {
		t.Errorf("expected fallback id, got %s", withoutRef.ID)
	}
	if withoutRef.Slug != "uncategorized" {
		t.Errorf("unexpected slug: %s", withoutRef.Slug)
	}
}

func TestSlugify(t *testing.T) {
	cases := []struct {
		name  string
		value string
		want  string
	}{
		{"single word", "Gaming", "gaming"},
		{"spaces", "Back to School", "back-to-school"},
		{"whitespace run", "New  Arrivals", "new-arrivals"},
		{"mixed case", "Coffee Mugs", "coffee-mugs"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Slugify(tc.value); got != tc.want {
				t.Errorf("Slugify(%q) = %q, want %q", tc.value, got, tc.want)
			}
		})
	}
}

func TestBuildImageIndex(t *testing.T) {
	objects := []SquareObject{
		{Type: "IMAGE", ID: "img1", ImageData: &SquareImageData{URL: "https://cdn.example.com/1.png"}},
		{Type: "IMAGE", ID: "", ImageData: &SquareImageData{URL: "https://cdn.example.com/2.png"}},
		{Type: "IMAGE", ID: "img3", ImageData: &SquareImageData{URL: ""}},
		{Type: "IMAGE", ID: "img4", ImageData: nil},
		{Type: "ITEM", ID: "item1"},
	}

	index := BuildImageIndex(objects)
	if len(index) != 1 {
		t.Fatalf("expected single index entry, got %d", len(index))
	}
	if index["img1"] != "https://cdn.example.com/1.png" {
		t.Errorf("unexpected url for img1: %s", index["img1"])
	}
}

func TestResolveImagesDropsUnresolved(t *testing.T) {
	index := map[string]string{
		"a": "https://cdn.example.com/a.png",
		"c": "https://cdn.example.com/c.png",
	}

	got := ResolveImages([]string{"a", "b", "c", "d"}, index)
	if len(got) != 2 {
		t.Fatalf("expected 2 resolved urls, got %d", len(got))
	}
	if got[0] != "https://cdn.example.com/a.png" || got[1] != "https://cdn.example.com/c.png" {
		t.Errorf("order not preserved: %v", got)
	}
	for _, url := range got {
		if url == "" {
			t.Error("resolved list contains empty entry")
		}
	}
}
