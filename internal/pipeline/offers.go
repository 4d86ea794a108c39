package pipeline

import (
	"math"
	"sort"
	"time"

	"github.com/supermall-dev/supermall-golang/internal/models"
)

type OfferSortKey string

const (
	// Highest discount first.
	OfferSortDiscount OfferSortKey = "discount"
	// Newest first.
	OfferSortDate OfferSortKey = "date"
	// Cheapest original price first.
	OfferSortPrice OfferSortKey = "price"
)

type OfferQuery struct {
	Search  string
	ShopID  string
	Status  OfferStatusFilter
	SortKey OfferSortKey
}

// FilterOffers runs the pipeline over an offer list at time now. Search
// covers title, description and the resolved shop name (callers populate
// the ShopName virtual field first). The status filter compares against the
// derived status, so the same offer can move between buckets from one call
// to the next without any write.
func FilterOffers(offers []models.Offer, now time.Time, q OfferQuery) []models.Offer {
	needle := searchNeedle(q.Search)
	out := make([]models.Offer, 0, len(offers))
	for _, offer := range offers {
		if needle != "" &&
			!containsFold(offer.Title, needle) &&
			!containsFold(offer.Description, needle) &&
			!containsFold(offer.ShopName, needle) {
			continue
		}
		if !filterDisabled(q.ShopID) && offer.ShopID != q.ShopID {
			continue
		}
		if !q.Status.matches(DeriveOfferStatus(offer, now)) {
			continue
		}
		out = append(out, offer)
	}
	sortOffers(out, q.SortKey)
	return out
}

func sortOffers(offers []models.Offer, key OfferSortKey) {
	switch key {
	case OfferSortDiscount:
		sort.SliceStable(offers, func(i, j int) bool {
			return discountOf(offers[i]) > discountOf(offers[j])
		})
	case OfferSortDate:
		sort.SliceStable(offers, func(i, j int) bool {
			return offers[i].CreatedAt.After(offers[j].CreatedAt)
		})
	case OfferSortPrice:
		sort.SliceStable(offers, func(i, j int) bool {
			return offers[i].OriginalPrice < offers[j].OriginalPrice
		})
	}
}

// discountOf sorts on the derived percentage, not a stored one.
func discountOf(offer models.Offer) float64 {
	return DiscountPercentage(offer.OriginalPrice, offer.DiscountedPrice)
}

// OfferStatsResult is computed over the UNFILTERED offer set.
type OfferStatsResult struct {
	Total         int     `json:"total"`
	Active        int     `json:"active"`
	Upcoming      int     `json:"upcoming"`
	Expired       int     `json:"expired"`
	Inactive      int     `json:"inactive"`
	TotalDiscount float64 `json:"totalDiscount"`
	AvgDiscount   float64 `json:"avgDiscount"`
}

func OfferStats(offers []models.Offer, now time.Time) OfferStatsResult {
	stats := OfferStatsResult{Total: len(offers)}
	for _, offer := range offers {
		switch DeriveOfferStatus(offer, now) {
		case OfferStatusActive:
			stats.Active++
		case OfferStatusUpcoming:
			stats.Upcoming++
		case OfferStatusExpired:
			stats.Expired++
		case OfferStatusInactive:
			stats.Inactive++
		}
		stats.TotalDiscount += discountOf(offer)
	}
	if stats.Total > 0 {
		stats.AvgDiscount = math.Round(stats.TotalDiscount/float64(stats.Total)*100) / 100
	}
	return stats
}
