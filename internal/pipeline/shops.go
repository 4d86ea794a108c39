package pipeline

import (
	"sort"

	"github.com/supermall-dev/supermall-golang/internal/models"
)

// ShopSortKey picks the comparator for shop lists. An empty key leaves the
// fetch order untouched.
type ShopSortKey string

const (
	ShopSortName   ShopSortKey = "name"
	ShopSortFloor  ShopSortKey = "floor"
	ShopSortRating ShopSortKey = "rating"
)

type ShopQuery struct {
	Search     string
	CategoryID string
	FloorID    string
	Status     StatusFilter
	SortKey    ShopSortKey
}

// FilterShops runs the full pipeline over a shop list: search across name,
// description and owner, exact-match category/floor filters, the status
// filter, then one sort over the surviving set.
func FilterShops(shops []models.Shop, q ShopQuery) []models.Shop {
	needle := searchNeedle(q.Search)
	out := make([]models.Shop, 0, len(shops))
	for _, shop := range shops {
		if needle != "" &&
			!containsFold(shop.Name, needle) &&
			!containsFold(shop.Description, needle) &&
			!containsFold(shop.Owner, needle) {
			continue
		}
		if !filterDisabled(q.CategoryID) && shop.CategoryID != q.CategoryID {
			continue
		}
		if !filterDisabled(q.FloorID) && shop.FloorID != q.FloorID {
			continue
		}
		if !q.Status.matches(shop.IsActive) {
			continue
		}
		out = append(out, shop)
	}
	sortShops(out, q.SortKey)
	return out
}

func sortShops(shops []models.Shop, key ShopSortKey) {
	switch key {
	case ShopSortName:
		coll := newNameCollator()
		sort.SliceStable(shops, func(i, j int) bool {
			return coll.CompareString(shops[i].Name, shops[j].Name) < 0
		})
	case ShopSortFloor:
		sort.SliceStable(shops, func(i, j int) bool {
			return shops[i].FloorLevel < shops[j].FloorLevel
		})
	case ShopSortRating:
		sort.SliceStable(shops, func(i, j int) bool {
			return shops[i].Rating > shops[j].Rating
		})
	}
}

type ShopStatsResult struct {
	Total    int `json:"total"`
	Active   int `json:"active"`
	Inactive int `json:"inactive"`
	// Number of distinct categories shops belong to.
	Categories int `json:"categories"`
}

func ShopStats(shops []models.Shop) ShopStatsResult {
	stats := ShopStatsResult{Total: len(shops)}
	seen := make(map[string]struct{})
	for _, shop := range shops {
		if shop.IsActive {
			stats.Active++
		} else {
			stats.Inactive++
		}
		if shop.CategoryID != "" {
			seen[shop.CategoryID] = struct{}{}
		}
	}
	stats.Categories = len(seen)
	return stats
}
