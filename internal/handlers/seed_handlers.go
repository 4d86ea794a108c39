package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/supermall-dev/supermall-golang/internal/seed"
)

// --- Demo Data ---

// SeedDatabase loads the demo fixtures. POST /v1/admin/seed
// Pass ?clear=true to wipe the mall collections first; without it the seed
// refuses to run over existing data.
func (h *Handlers) SeedDatabase(c *gin.Context) {
	ctx := c.Request.Context()

	if clear, _ := strconv.ParseBool(c.Query("clear")); clear {
		if err := seed.Clear(ctx, h.DB); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear data: " + err.Error()})
			return
		}
	}

	if err := seed.Run(ctx, h.DB); err != nil {
		counts, checkErr := seed.CheckExisting(ctx, h.DB)
		if checkErr == nil && counts.HasData() {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "existingData": counts})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to seed data: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Demo data seeded"})
}
