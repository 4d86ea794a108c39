package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/supermall-dev/supermall-golang/internal/pipeline"
)

// --- Global Search ---

// GlobalSearch backs the header search box: one query across shops, products
// and offers. GET /v1/search?q=coffee
// The index is built fresh per request in shops, products, offers order so
// results group by type the way the dropdown renders them.
func (h *Handlers) GlobalSearch(c *gin.Context) {
	query := c.Query("q")

	// Empty query short-circuits before any DB work.
	if query == "" {
		c.JSON(http.StatusOK, gin.H{"results": []pipeline.SearchItem{}})
		return
	}

	shops, err := h.fetchShops(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	categoryNames, _, err := h.fetchNameMaps(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	products, err := h.fetchProducts(c, "")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	offers, err := h.fetchOffers(c, "")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if err := h.resolveOfferShopNames(c, offers); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	items := make([]pipeline.SearchItem, 0, len(shops)+len(products)+len(offers))
	for _, shop := range shops {
		items = append(items, pipeline.SearchItem{
			Type:     pipeline.SearchTypeShop,
			ID:       shop.ID,
			Name:     shop.Name,
			Category: categoryNames[shop.CategoryID],
		})
	}
	for _, product := range products {
		items = append(items, pipeline.SearchItem{
			Type:     pipeline.SearchTypeProduct,
			ID:       product.ID,
			Name:     product.Name,
			Category: product.CategoryName,
			Shop:     product.ShopName,
		})
	}
	for _, offer := range offers {
		items = append(items, pipeline.SearchItem{
			Type: pipeline.SearchTypeOffer,
			ID:   offer.ID,
			Name: offer.Title,
			Shop: offer.ShopName,
		})
	}

	c.JSON(http.StatusOK, gin.H{"results": pipeline.GlobalSearch(items, query)})
}
