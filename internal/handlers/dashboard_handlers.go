package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/supermall-dev/supermall-golang/internal/pipeline"
)

//
// --- Admin Dashboard Stats ---
//

type DashboardStats struct {
	Categories      int `json:"categories"`
	Floors          int `json:"floors"`
	Shops           int `json:"shops"`
	ActiveShops     int `json:"activeShops"`
	Offers          int `json:"offers"`
	ActiveOffers    int `json:"activeOffers"`
	Products        int `json:"products"`
	RegisteredUsers int `json:"registeredUsers"`
}

// GetDashboardStats returns KPI data for the admin console landing page.
// GET /v1/admin/dashboard-stats
func (h *Handlers) GetDashboardStats(c *gin.Context) {
	ctx := c.Request.Context()
	stats := DashboardStats{}

	counts := []struct {
		query string
		dest  *int
	}{
		{"SELECT COUNT(*) FROM categories", &stats.Categories},
		{"SELECT COUNT(*) FROM floors", &stats.Floors},
		{"SELECT COUNT(*) FROM shops", &stats.Shops},
		{"SELECT COUNT(*) FROM shops WHERE is_active = TRUE", &stats.ActiveShops},
		{"SELECT COUNT(*) FROM offers", &stats.Offers},
		{"SELECT COUNT(*) FROM products", &stats.Products},
		{"SELECT COUNT(*) FROM users", &stats.RegisteredUsers},
	}
	for _, count := range counts {
		if err := h.DB.QueryRowContext(ctx, count.query).Scan(count.dest); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load dashboard stats"})
			return
		}
	}

	// Active offers depend on the date window, so the count goes through the
	// same derivation the public list uses instead of a WHERE clause.
	offers, err := h.fetchOffers(c, "")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load dashboard stats"})
		return
	}
	stats.ActiveOffers = pipeline.OfferStats(offers, time.Now()).Active

	c.JSON(http.StatusOK, stats)
}
