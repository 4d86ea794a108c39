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

// --- Category Handlers ---

// CreateCategory (Admin Only)
func (h *Handlers) CreateCategory(c *gin.Context) {
	var input models.CategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := input.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	now := time.Now()
	cat := models.Category{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		Icon:        input.Icon,
		Color:       input.Color,
		IsActive:    input.Active(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	cat.Slug = slug.Make(cat.Name)

	query := `INSERT INTO categories (id, name, slug, description, icon, color, is_active, product_count, created_at, updated_at)
	          VALUES (?, ?, ?, ?, ?, ?, ?, 0, ?, ?)`
	_, err := h.DB.ExecContext(c.Request.Context(), query,
		cat.ID, cat.Name, cat.Slug, cat.Description, cat.Icon, cat.Color, cat.IsActive, cat.CreatedAt, cat.UpdatedAt)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create category: " + err.Error()})
		return
	}

	slog.Info("category created", "id", cat.ID, "name", cat.Name)
	c.JSON(http.StatusCreated, gin.H{"message": "Category created", "category": cat})
}

// GetAllCategories (Public)
// Fetches the whole collection, then runs the search/status pipeline in
// memory. The stats block always describes the unfiltered set.
func (h *Handlers) GetAllCategories(c *gin.Context) {
	categories, err := h.fetchCategories(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	q := pipeline.CategoryQuery{
		Search: c.Query("q"),
		Status: pipeline.ParseStatusFilter(c.Query("status")),
	}

	c.JSON(http.StatusOK, gin.H{
		"categories": pipeline.FilterCategories(categories, q),
		"stats":      pipeline.CategoryStats(categories),
	})
}

// UpdateCategory (Admin Only)
func (h *Handlers) UpdateCategory(c *gin.Context) {
	id := c.Param("id")

	var input models.CategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := input.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	name := strings.TrimSpace(input.Name)
	query := `UPDATE categories SET name = ?, slug = ?, description = ?, icon = ?, color = ?, is_active = ?, updated_at = ?
	          WHERE id = ?`
	result, err := h.DB.ExecContext(c.Request.Context(), query,
		name, slug.Make(name), input.Description, input.Icon, input.Color, input.Active(), time.Now(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update category"})
		return
	}

	if rows, _ := result.RowsAffected(); rows == 0 {
		if !h.categoryExists(c, id) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			return
		}
	}

	slog.Info("category updated", "id", id)
	c.JSON(http.StatusOK, gin.H{"message": "Category updated"})
}

// DeleteCategory (Admin Only)
func (h *Handlers) DeleteCategory(c *gin.Context) {
	id := c.Param("id")

	result, err := h.DB.ExecContext(c.Request.Context(), "DELETE FROM categories WHERE id = ?", id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete category"})
		return
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
		return
	}

	slog.Info("category deleted", "id", id)
	c.JSON(http.StatusOK, gin.H{"message": "Category deleted"})
}

// --- Shared fetch helpers ---

func (h *Handlers) fetchCategories(c *gin.Context) ([]models.Category, error) {
	rows, err := h.DB.QueryContext(c.Request.Context(),
		`SELECT id, name, slug, description, icon, color, is_active, product_count, created_at, updated_at
		 FROM categories ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var cat models.Category
		if err := rows.Scan(&cat.ID, &cat.Name, &cat.Slug, &cat.Description, &cat.Icon, &cat.Color,
			&cat.IsActive, &cat.ProductCount, &cat.CreatedAt, &cat.UpdatedAt); err != nil {
			slog.Warn("skipping unreadable category row", "error", err)
			continue
		}
		categories = append(categories, cat)
	}
	return categories, rows.Err()
}

func (h *Handlers) categoryExists(c *gin.Context, id string) bool {
	var one int
	err := h.DB.QueryRowContext(c.Request.Context(), "SELECT 1 FROM categories WHERE id = ?", id).Scan(&one)
	return !errors.Is(err, sql.ErrNoRows)
}
