package pipeline

import (
	"sort"

	"github.com/supermall-dev/supermall-golang/internal/models"
)

type FloorQuery struct {
	Search string
	Status StatusFilter
}

// FilterFloors matches search text against name and description, applies the
// status filter, and always orders the result by level ascending so basements
// come first.
func FilterFloors(floors []models.Floor, q FloorQuery) []models.Floor {
	needle := searchNeedle(q.Search)
	out := make([]models.Floor, 0, len(floors))
	for _, floor := range floors {
		if needle != "" && !containsFold(floor.Name, needle) && !containsFold(floor.Description, needle) {
			continue
		}
		if !q.Status.matches(floor.IsActive) {
			continue
		}
		out = append(out, floor)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Level < out[j].Level
	})
	return out
}

type FloorStatsResult struct {
	Total    int `json:"total"`
	Active   int `json:"active"`
	Inactive int `json:"inactive"`
	Stores   int `json:"stores"`
}

func FloorStats(floors []models.Floor) FloorStatsResult {
	stats := FloorStatsResult{Total: len(floors)}
	for _, floor := range floors {
		if floor.IsActive {
			stats.Active++
		} else {
			stats.Inactive++
		}
		stats.Stores += floor.StoreCount
	}
	return stats
}
