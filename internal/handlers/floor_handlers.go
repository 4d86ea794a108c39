package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gosimple/slug"

	"github.com/supermall-dev/supermall-golang/internal/models"
	"github.com/supermall-dev/supermall-golang/internal/pipeline"
)

// --- Floor Handlers ---

// CreateFloor (Admin Only)
func (h *Handlers) CreateFloor(c *gin.Context) {
	var input models.FloorInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := input.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	now := time.Now()
	floor := models.Floor{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		Level:       *input.Level,
		IsActive:    input.Active(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	floor.Slug = slug.Make(floor.Name)

	query := `INSERT INTO floors (id, name, slug, description, level, is_active, store_count, created_at, updated_at)
	          VALUES (?, ?, ?, ?, ?, ?, 0, ?, ?)`
	_, err := h.DB.ExecContext(c.Request.Context(), query,
		floor.ID, floor.Name, floor.Slug, floor.Description, floor.Level, floor.IsActive, floor.CreatedAt, floor.UpdatedAt)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create floor: " + err.Error()})
		return
	}

	slog.Info("floor created", "id", floor.ID, "name", floor.Name, "level", floor.Level)
	c.JSON(http.StatusCreated, gin.H{"message": "Floor created", "floor": floor})
}

// GetAllFloors (Public)
// The pipeline always returns floors ordered by level ascending, so basements
// show up before the ground floor.
func (h *Handlers) GetAllFloors(c *gin.Context) {
	floors, err := h.fetchFloors(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	q := pipeline.FloorQuery{
		Search: c.Query("q"),
		Status: pipeline.ParseStatusFilter(c.Query("status")),
	}

	c.JSON(http.StatusOK, gin.H{
		"floors": pipeline.FilterFloors(floors, q),
		"stats":  pipeline.FloorStats(floors),
	})
}

// UpdateFloor (Admin Only)
func (h *Handlers) UpdateFloor(c *gin.Context) {
	id := c.Param("id")

	var input models.FloorInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := input.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	name := strings.TrimSpace(input.Name)
	query := `UPDATE floors SET name = ?, slug = ?, description = ?, level = ?, is_active = ?, updated_at = ?
	          WHERE id = ?`
	result, err := h.DB.ExecContext(c.Request.Context(), query,
		name, slug.Make(name), input.Description, *input.Level, input.Active(), time.Now(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update floor"})
		return
	}

	if rows, _ := result.RowsAffected(); rows == 0 {
		if !h.floorExists(c, id) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Floor not found"})
			return
		}
	}

	slog.Info("floor updated", "id", id)
	c.JSON(http.StatusOK, gin.H{"message": "Floor updated"})
}

// DeleteFloor (Admin Only)
// Floors do not cascade: shops keep their floorId and simply resolve to an
// unknown floor name until reassigned.
func (h *Handlers) DeleteFloor(c *gin.Context) {
	id := c.Param("id")

	result, err := h.DB.ExecContext(c.Request.Context(), "DELETE FROM floors WHERE id = ?", id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete floor"})
		return
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Floor not found"})
		return
	}

	slog.Info("floor deleted", "id", id)
	c.JSON(http.StatusOK, gin.H{"message": "Floor deleted"})
}

func (h *Handlers) fetchFloors(c *gin.Context) ([]models.Floor, error) {
	rows, err := h.DB.QueryContext(c.Request.Context(),
		`SELECT id, name, slug, description, level, is_active, store_count, created_at, updated_at
		 FROM floors ORDER BY level ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var floors []models.Floor
	for rows.Next() {
		var floor models.Floor
		if err := rows.Scan(&floor.ID, &floor.Name, &floor.Slug, &floor.Description, &floor.Level,
			&floor.IsActive, &floor.StoreCount, &floor.CreatedAt, &floor.UpdatedAt); err != nil {
			slog.Warn("skipping unreadable floor row", "error", err)
			continue
		}
		floors = append(floors, floor)
	}
	return floors, rows.Err()
}

func (h *Handlers) floorExists(c *gin.Context, id string) bool {
	var one int
	err := h.DB.QueryRowContext(c.Request.Context(), "SELECT 1 FROM floors WHERE id = ?", id).Scan(&one)
	return !errors.Is(err, sql.ErrNoRows)
}
