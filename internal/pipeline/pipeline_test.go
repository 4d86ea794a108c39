package pipeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/supermall-dev/supermall-golang/internal/models"
)

func sampleShops() []models.Shop {
	return []models.Shop{
		{ID: "s1", Name: "banana republic outlet", Owner: "Priya Sharma", Description: "Outlet fashion", CategoryID: "c1", FloorID: "f1", FloorLevel: 1, Rating: 4.2, IsActive: true},
		{ID: "s2", Name: "Apple Repair Corner", Owner: "Omar Haddad", Description: "Phone repairs", CategoryID: "c2", FloorID: "f2", FloorLevel: 2, Rating: 4.8, IsActive: true},
		{ID: "s3", Name: "cherry Florist", Owner: "Mei Lin", Description: "Fresh flowers", CategoryID: "c1", FloorID: "f1", FloorLevel: 1, Rating: 3.9, IsActive: false},
	}
}

func TestFilterShopsEmptySearchReturnsAllInOrder(t *testing.T) {
	shops := sampleShops()
	got := FilterShops(shops, ShopQuery{})

	require.Len(t, got, len(shops))
	for i := range shops {
		assert.Equal(t, shops[i].ID, got[i].ID)
	}
}

func TestFilterShopsDoesNotMutateInput(t *testing.T) {
	shops := sampleShops()
	FilterShops(shops, ShopQuery{SortKey: ShopSortRating})

	assert.Equal(t, "s1", shops[0].ID)
	assert.Equal(t, "s2", shops[1].ID)
	assert.Equal(t, "s3", shops[2].ID)
}

func TestFilterShopsUniqueNameMatch(t *testing.T) {
	got := FilterShops(sampleShops(), ShopQuery{Search: "florist"})

	require.Len(t, got, 1)
	assert.Equal(t, "s3", got[0].ID)
}

func TestFilterShopsSearchCoversOwner(t *testing.T) {
	got := FilterShops(sampleShops(), ShopQuery{Search: "priya"})

	require.Len(t, got, 1)
	assert.Equal(t, "s1", got[0].ID)
}

func TestFilterShopsPredicatesAreANDed(t *testing.T) {
	// c1 matches two shops, but only one of them is active.
	got := FilterShops(sampleShops(), ShopQuery{CategoryID: "c1", Status: StatusActive})

	require.Len(t, got, 1)
	assert.Equal(t, "s1", got[0].ID)
}

func TestFilterShopsAllSentinelDisablesFilter(t *testing.T) {
	assert.Len(t, FilterShops(sampleShops(), ShopQuery{CategoryID: "ALL"}), 3)
	assert.Len(t, FilterShops(sampleShops(), ShopQuery{CategoryID: "all"}), 3)
	assert.Len(t, FilterShops(sampleShops(), ShopQuery{Status: ParseStatusFilter("ALL")}), 3)
}

func TestSortShopsByNameIsCaseInsensitiveLocaleOrder(t *testing.T) {
	got := FilterShops(sampleShops(), ShopQuery{SortKey: ShopSortName})

	require.Len(t, got, 3)
	assert.Equal(t, "Apple Repair Corner", got[0].Name)
	assert.Equal(t, "banana republic outlet", got[1].Name)
	assert.Equal(t, "cherry Florist", got[2].Name)
}

func TestSortShopsByRatingDescending(t *testing.T) {
	got := FilterShops(sampleShops(), ShopQuery{SortKey: ShopSortRating})

	require.Len(t, got, 3)
	assert.Equal(t, "s2", got[0].ID)
	assert.Equal(t, "s1", got[1].ID)
	assert.Equal(t, "s3", got[2].ID)
}

func TestShopStatsIgnoreAnyFilter(t *testing.T) {
	shops := make([]models.Shop, 0, 10)
	for i := 0; i < 6; i++ {
		shops = append(shops, models.Shop{ID: string(rune('a' + i)), Name: "Active Shop", CategoryID: "c1", IsActive: true})
	}
	for i := 0; i < 4; i++ {
		shops = append(shops, models.Shop{ID: string(rune('k' + i)), Name: "Closed Shop", CategoryID: "c2", IsActive: false})
	}

	// A live search narrows the rendered list...
	filtered := FilterShops(shops, ShopQuery{Search: "closed"})
	assert.Len(t, filtered, 4)

	// ...but the stat cards still describe the whole set.
	stats := ShopStats(shops)
	assert.Equal(t, 10, stats.Total)
	assert.Equal(t, 6, stats.Active)
	assert.Equal(t, 4, stats.Inactive)
	assert.Equal(t, 2, stats.Categories)
}

func TestFilterFloorsSortsByLevelAscending(t *testing.T) {
	floors := []models.Floor{
		{ID: "f1", Name: "Ground Court", Level: 0, IsActive: true},
		{ID: "f2", Name: "Basement", Level: -1, IsActive: true},
		{ID: "f3", Name: "Tech Hub", Level: 3, IsActive: true},
	}

	got := FilterFloors(floors, FloorQuery{})

	require.Len(t, got, 3)
	assert.Equal(t, "Basement", got[0].Name)
	assert.Equal(t, "Ground Court", got[1].Name)
	assert.Equal(t, "Tech Hub", got[2].Name)
}

func TestFilterFloorsStatusAndSearch(t *testing.T) {
	floors := []models.Floor{
		{ID: "f1", Name: "Fashion District", Description: "Trend floors", Level: 2, IsActive: true},
		{ID: "f2", Name: "Food Court", Description: "Dining", Level: 4, IsActive: false},
	}

	got := FilterFloors(floors, FloorQuery{Status: ParseStatusFilter("inactive")})
	require.Len(t, got, 1)
	assert.Equal(t, "Food Court", got[0].Name)

	got = FilterFloors(floors, FloorQuery{Search: "dining"})
	require.Len(t, got, 1)
	assert.Equal(t, "f2", got[0].ID)
}

func TestFilterCategoriesMissingDescriptionNeverMatchesNorPanics(t *testing.T) {
	categories := []models.Category{
		{ID: "c1", Name: "Fashion & Apparel", IsActive: true},
		{ID: "c2", Name: "Electronics", Description: "Gadgets and tech", IsActive: true},
	}

	got := FilterCategories(categories, CategoryQuery{Search: "gadgets"})

	require.Len(t, got, 1)
	assert.Equal(t, "c2", got[0].ID)
}

func TestFilterOffersByDerivedStatus(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	offers := []models.Offer{
		{ID: "o1", Title: "Running Now", IsActive: true, StartDate: "2025-06-01", EndDate: "2025-06-30"},
		{ID: "o2", Title: "Coming Soon", IsActive: true, StartDate: "2025-07-01", EndDate: "2025-07-31"},
		{ID: "o3", Title: "Long Gone", IsActive: true, StartDate: "2025-01-01", EndDate: "2025-01-31"},
		{ID: "o4", Title: "Switched Off", IsActive: false, StartDate: "2025-06-01", EndDate: "2025-06-30"},
	}

	got := FilterOffers(offers, now, OfferQuery{Status: ParseOfferStatusFilter("active")})
	require.Len(t, got, 1)
	assert.Equal(t, "o1", got[0].ID)

	got = FilterOffers(offers, now, OfferQuery{Status: ParseOfferStatusFilter("upcoming")})
	require.Len(t, got, 1)
	assert.Equal(t, "o2", got[0].ID)

	got = FilterOffers(offers, now, OfferQuery{Status: ParseOfferStatusFilter("expired")})
	require.Len(t, got, 1)
	assert.Equal(t, "o3", got[0].ID)

	got = FilterOffers(offers, now, OfferQuery{Status: ParseOfferStatusFilter("inactive")})
	require.Len(t, got, 1)
	assert.Equal(t, "o4", got[0].ID)
}

func TestFilterOffersSearchCoversResolvedShopName(t *testing.T) {
	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	offers := []models.Offer{
		{ID: "o1", Title: "Smartphone Sale", ShopID: "s1", ShopName: "TechTrend Mobile Store", IsActive: true},
		{ID: "o2", Title: "Pottery Discount", ShopID: "s2", ShopName: "Village Pottery Studio", IsActive: true},
	}

	got := FilterOffers(offers, now, OfferQuery{Search: "techtrend"})

	require.Len(t, got, 1)
	assert.Equal(t, "o1", got[0].ID)
}

func TestSortOffersByDiscountUsesDerivedPercentage(t *testing.T) {
	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	offers := []models.Offer{
		{ID: "small", OriginalPrice: 100, DiscountedPrice: 90, IsActive: true},
		{ID: "big", OriginalPrice: 100, DiscountedPrice: 40, IsActive: true},
		{ID: "mid", OriginalPrice: 200, DiscountedPrice: 150, IsActive: true},
	}

	got := FilterOffers(offers, now, OfferQuery{SortKey: OfferSortDiscount})

	require.Len(t, got, 3)
	assert.Equal(t, "big", got[0].ID)
	assert.Equal(t, "mid", got[1].ID)
	assert.Equal(t, "small", got[2].ID)
}

func TestSortOffersMissingPricesCompareAsZero(t *testing.T) {
	now := time.Now()
	offers := []models.Offer{
		{ID: "priced", OriginalPrice: 50, DiscountedPrice: 25, IsActive: true},
		{ID: "blank", IsActive: true},
	}

	got := FilterOffers(offers, now, OfferQuery{SortKey: OfferSortDiscount})

	require.Len(t, got, 2)
	assert.Equal(t, "priced", got[0].ID)
}

func TestOfferStatsCountEveryBucket(t *testing.T) {
	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	offers := []models.Offer{
		{IsActive: true, StartDate: "2025-06-01", EndDate: "2025-06-30", OriginalPrice: 100, DiscountedPrice: 80},
		{IsActive: true, StartDate: "2025-07-01", EndDate: "2025-07-31", OriginalPrice: 100, DiscountedPrice: 60},
		{IsActive: true, StartDate: "2025-01-01", EndDate: "2025-01-31", OriginalPrice: 100, DiscountedPrice: 50},
		{IsActive: false, StartDate: "2025-06-01", EndDate: "2025-06-30", OriginalPrice: 100, DiscountedPrice: 90},
	}

	stats := OfferStats(offers, now)

	assert.Equal(t, 4, stats.Total)
	assert.Equal(t, 1, stats.Active)
	assert.Equal(t, 1, stats.Upcoming)
	assert.Equal(t, 1, stats.Expired)
	assert.Equal(t, 1, stats.Inactive)
	assert.Equal(t, 20.0+40.0+50.0+10.0, stats.TotalDiscount)
	assert.Equal(t, 30.0, stats.AvgDiscount)
}

func TestFilterProductsSortVariants(t *testing.T) {
	products := []models.Product{
		{ID: "p1", Name: "banana basket", Price: 12, CategoryID: "c1"},
		{ID: "p2", Name: "Apple slicer", Price: 30, CategoryID: "c1"},
		{ID: "p3", Name: "cherry jam", Price: 8, CategoryID: "c2"},
	}

	byName := FilterProducts(products, ProductQuery{SortKey: ProductSortNameAsc})
	require.Len(t, byName, 3)
	assert.Equal(t, "Apple slicer", byName[0].Name)
	assert.Equal(t, "banana basket", byName[1].Name)
	assert.Equal(t, "cherry jam", byName[2].Name)

	byPriceDesc := FilterProducts(products, ProductQuery{SortKey: ProductSortPriceDesc})
	assert.Equal(t, "p2", byPriceDesc[0].ID)
	assert.Equal(t, "p3", byPriceDesc[2].ID)

	onlyC1 := FilterProducts(products, ProductQuery{CategoryID: "c1"})
	assert.Len(t, onlyC1, 2)
}
