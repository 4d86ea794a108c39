package pipeline

import (
	"math"
	"sort"

	"github.com/supermall-dev/supermall-golang/internal/models"
)

type ProductSortKey string

const (
	ProductSortNameAsc   ProductSortKey = "name-asc"
	ProductSortNameDesc  ProductSortKey = "name-desc"
	ProductSortPriceAsc  ProductSortKey = "price-asc"
	ProductSortPriceDesc ProductSortKey = "price-desc"
)

type ProductQuery struct {
	Search     string
	ShopID     string
	CategoryID string
	SortKey    ProductSortKey
}

// FilterProducts runs the pipeline over a product list: search across name
// and description, exact-match shop and category filters, then one sort.
func FilterProducts(products []models.Product, q ProductQuery) []models.Product {
	needle := searchNeedle(q.Search)
	out := make([]models.Product, 0, len(products))
	for _, product := range products {
		if needle != "" &&
			!containsFold(product.Name, needle) &&
			!containsFold(product.Description, needle) {
			continue
		}
		if !filterDisabled(q.ShopID) && product.ShopID != q.ShopID {
			continue
		}
		if !filterDisabled(q.CategoryID) && product.CategoryID != q.CategoryID {
			continue
		}
		out = append(out, product)
	}
	sortProducts(out, q.SortKey)
	return out
}

// ProductStatsResult is computed over the UNFILTERED product set.
type ProductStatsResult struct {
	Total      int     `json:"total"`
	Shops      int     `json:"shops"`
	Categories int     `json:"categories"`
	AvgPrice   float64 `json:"avgPrice"`
}

func ProductStats(products []models.Product) ProductStatsResult {
	stats := ProductStatsResult{Total: len(products)}
	shops := make(map[string]struct{})
	categories := make(map[string]struct{})
	var sum float64
	for _, product := range products {
		shops[product.ShopID] = struct{}{}
		categories[product.CategoryID] = struct{}{}
		sum += product.Price
	}
	stats.Shops = len(shops)
	stats.Categories = len(categories)
	if stats.Total > 0 {
		stats.AvgPrice = math.Round(sum/float64(stats.Total)*100) / 100
	}
	return stats
}

func sortProducts(products []models.Product, key ProductSortKey) {
	switch key {
	case ProductSortNameAsc:
		coll := newNameCollator()
		sort.SliceStable(products, func(i, j int) bool {
			return coll.CompareString(products[i].Name, products[j].Name) < 0
		})
	case ProductSortNameDesc:
		coll := newNameCollator()
		sort.SliceStable(products, func(i, j int) bool {
			return coll.CompareString(products[j].Name, products[i].Name) < 0
		})
	case ProductSortPriceAsc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price < products[j].Price
		})
	case ProductSortPriceDesc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price > products[j].Price
		})
	}
}
