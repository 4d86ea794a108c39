package pipeline

import "github.com/supermall-dev/supermall-golang/internal/models"

// CategoryQuery holds the UI-controlled parameters of the category manager.
type CategoryQuery struct {
	Search string
	Status StatusFilter
}

// FilterCategories matches the search text against name and description and
// applies the status filter. Order is preserved (the manager shows
// categories as fetched).
func FilterCategories(categories []models.Category, q CategoryQuery) []models.Category {
	needle := searchNeedle(q.Search)
	out := make([]models.Category, 0, len(categories))
	for _, cat := range categories {
		if needle != "" && !containsFold(cat.Name, needle) && !containsFold(cat.Description, needle) {
			continue
		}
		if !q.Status.matches(cat.IsActive) {
			continue
		}
		out = append(out, cat)
	}
	return out
}

// CategoryStatsResult is computed over the UNFILTERED category set; the
// cards at the top of the manager must not react to the search box.
type CategoryStatsResult struct {
	Total    int `json:"total"`
	Active   int `json:"active"`
	Inactive int `json:"inactive"`
	Products int `json:"products"`
}

func CategoryStats(categories []models.Category) CategoryStatsResult {
	stats := CategoryStatsResult{Total: len(categories)}
	for _, cat := range categories {
		if cat.IsActive {
			stats.Active++
		} else {
			stats.Inactive++
		}
		stats.Products += cat.ProductCount
	}
	return stats
}
