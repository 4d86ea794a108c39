package pipeline

// SearchType tags a global search result so the client knows where to
// navigate: shop -> shop details, product -> product details, offer -> offers.
type SearchType string

const (
	SearchTypeShop    SearchType = "shop"
	SearchTypeProduct SearchType = "product"
	SearchTypeOffer   SearchType = "offer"
)

// SearchItem is one entry of the flattened shop/product/offer index the
// header search runs over.
type SearchItem struct {
	Type     SearchType `json:"type"`
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	Category string     `json:"category,omitempty"`
	Shop     string     `json:"shop,omitempty"`
}

// GlobalSearch matches the query against name/title, category name and shop
// name of every item. Results keep insertion order; there is no relevance
// ranking. An empty query returns an empty result set (the search panel is
// closed), not the whole index.
func GlobalSearch(items []SearchItem, query string) []SearchItem {
	needle := searchNeedle(query)
	out := []SearchItem{}
	if needle == "" {
		return out
	}
	for _, item := range items {
		if containsFold(item.Name, needle) ||
			(item.Category != "" && containsFold(item.Category, needle)) ||
			(item.Shop != "" && containsFold(item.Shop, needle)) {
			out = append(out, item)
		}
	}
	return out
}
