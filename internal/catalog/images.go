package catalog

// BuildImageIndex walks a flat Square catalog object list once and records
// id -> url for every IMAGE object carrying both a non-empty id and url.
// Objects missing either are skipped silently.
func BuildImageIndex(objects []SquareObject) map[string]string {
	index := make(map[string]string)
	for _, obj := range objects {
		if obj.Type != squareTypeImage || obj.ID == "" {
			continue
		}
		if obj.ImageData == nil || obj.ImageData.URL == "" {
			continue
		}
		index[obj.ID] = obj.ImageData.URL
	}
	return index
}

// ResolveImages maps image ids through the index, preserving input order and
// dropping ids with no match. The result never contains empty entries.
func ResolveImages(ids []string, index map[string]string) []string {
	urls := make([]string, 0, len(ids))
	for _, id := range ids {
		if url, ok := index[id]; ok && url != "" {
			urls = append(urls, url)
		}
	}
	return urls
}
