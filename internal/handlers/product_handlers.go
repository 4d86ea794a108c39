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

	"github.com/supermall-dev/supermall-golang/internal/models"
	"github.com/supermall-dev/supermall-golang/internal/pipeline"
)

// --- Product Handlers ---

// CreateProduct (Admin Only)
// The owning shop's name and the category's name are cached on the row at
// create time, and the category's product counter is bumped in the same
// transaction.
func (h *Handlers) CreateProduct(c *gin.Context) {
	var input models.ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := input.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()

	var shopName string
	err := h.DB.QueryRowContext(ctx, "SELECT name FROM shops WHERE id = ?", input.ShopID).Scan(&shopName)
	if errors.Is(err, sql.ErrNoRows) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Selected shop does not exist"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	var categoryName string
	err = h.DB.QueryRowContext(ctx, "SELECT name FROM categories WHERE id = ?", input.CategoryID).Scan(&categoryName)
	if errors.Is(err, sql.ErrNoRows) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Selected category does not exist"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	now := time.Now()
	product := models.Product{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(input.Name),
		Description:  input.Description,
		Price:        input.Price,
		Image:        input.Image,
		ShopID:       input.ShopID,
		CategoryID:   input.CategoryID,
		ShopName:     shopName,
		CategoryName: categoryName,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	tx, err := h.DB.BeginTx(ctx, nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "DB Transaction failed"})
		return
	}
	defer tx.Rollback()

	query := `INSERT INTO products (id, name, description, price, image, shop_id, category_id,
	                                shop_name, category_name, created_at, updated_at)
	          VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	if _, err := tx.ExecContext(ctx, query,
		product.ID, product.Name, product.Description, product.Price, product.Image,
		product.ShopID, product.CategoryID, product.ShopName, product.CategoryName,
		product.CreatedAt, product.UpdatedAt); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product: " + err.Error()})
		return
	}

	if _, err := tx.ExecContext(ctx,
		"UPDATE categories SET product_count = product_count + 1 WHERE id = ?", product.CategoryID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update category counters"})
		return
	}

	if err := tx.Commit(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
		return
	}

	slog.Info("product created", "id", product.ID, "name", product.Name)
	c.JSON(http.StatusCreated, gin.H{"message": "Product created", "product": product})
}

// GetAllProducts (Public)
func (h *Handlers) GetAllProducts(c *gin.Context) {
	products, err := h.fetchProducts(c, "")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	q := pipeline.ProductQuery{
		Search:     c.Query("q"),
		ShopID:     c.Query("shop"),
		CategoryID: c.Query("category"),
		SortKey:    pipeline.ProductSortKey(c.Query("sort")),
	}

	c.JSON(http.StatusOK, gin.H{
		"products": pipeline.FilterProducts(products, q),
		"stats":    pipeline.ProductStats(products),
	})
}

// GetProductDetails (Public)
// Returns the product together with its owning shop so the detail page can
// render contact info without a second round trip.
func (h *Handlers) GetProductDetails(c *gin.Context) {
	id := c.Param("id")

	products, err := h.fetchProducts(c, "WHERE id = ?", id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if len(products) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	product := products[0]

	response := gin.H{"product": product}
	if shop, err := h.fetchShopByID(c, product.ShopID); err == nil {
		response["shop"] = shop
	}

	c.JSON(http.StatusOK, response)
}

// UpdateProduct (Admin Only)
// A full update re-resolves the cached shop and category names, so renames
// upstream propagate on the next edit.
func (h *Handlers) UpdateProduct(c *gin.Context) {
	id := c.Param("id")
	ctx := c.Request.Context()

	var input models.ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := input.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var shopName string
	err := h.DB.QueryRowContext(ctx, "SELECT name FROM shops WHERE id = ?", input.ShopID).Scan(&shopName)
	if errors.Is(err, sql.ErrNoRows) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Selected shop does not exist"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	var categoryName string
	err = h.DB.QueryRowContext(ctx, "SELECT name FROM categories WHERE id = ?", input.CategoryID).Scan(&categoryName)
	if errors.Is(err, sql.ErrNoRows) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Selected category does not exist"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	query := `UPDATE products SET name = ?, description = ?, price = ?, image = ?, shop_id = ?,
	          category_id = ?, shop_name = ?, category_name = ?, updated_at = ?
	          WHERE id = ?`
	result, err := h.DB.ExecContext(ctx, query,
		strings.TrimSpace(input.Name), input.Description, input.Price, input.Image,
		input.ShopID, input.CategoryID, shopName, categoryName, time.Now(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
		return
	}

	if rows, _ := result.RowsAffected(); rows == 0 {
		if !h.productExists(c, id) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
	}

	slog.Info("product updated", "id", id)
	c.JSON(http.StatusOK, gin.H{"message": "Product updated"})
}

// UpdateProductInfo (Admin Only)
// PATCH with any subset of price, description and image. Absent fields are
// left alone rather than blanked.
func (h *Handlers) UpdateProductInfo(c *gin.Context) {
	id := c.Param("id")

	var input models.ProductInfoInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := input.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var builder strings.Builder
	builder.WriteString("UPDATE products SET ")
	args := []any{}
	if input.Price != nil {
		builder.WriteString("price = ?, ")
		args = append(args, *input.Price)
	}
	if input.Description != nil {
		builder.WriteString("description = ?, ")
		args = append(args, *input.Description)
	}
	if input.Image != nil {
		builder.WriteString("image = ?, ")
		args = append(args, *input.Image)
	}
	builder.WriteString("updated_at = ? WHERE id = ?")
	args = append(args, time.Now(), id)

	result, err := h.DB.ExecContext(c.Request.Context(), builder.String(), args...)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
		return
	}

	if rows, _ := result.RowsAffected(); rows == 0 {
		if !h.productExists(c, id) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
	}

	slog.Info("product info updated", "id", id)
	c.JSON(http.StatusOK, gin.H{"message": "Product updated"})
}

// DeleteProduct (Admin Only)
func (h *Handlers) DeleteProduct(c *gin.Context) {
	id := c.Param("id")
	ctx := c.Request.Context()

	var categoryID string
	err := h.DB.QueryRowContext(ctx, "SELECT category_id FROM products WHERE id = ?", id).Scan(&categoryID)
	if errors.Is(err, sql.ErrNoRows) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	tx, err := h.DB.BeginTx(ctx, nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "DB Transaction failed"})
		return
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM products WHERE id = ?", id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
		return
	}
	if _, err := tx.ExecContext(ctx,
		"UPDATE categories SET product_count = GREATEST(product_count - 1, 0) WHERE id = ?", categoryID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update category counters"})
		return
	}

	if err := tx.Commit(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
		return
	}

	slog.Info("product deleted", "id", id)
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
}

// --- Shared fetch helpers ---

const productColumns = `id, name, description, price, image, shop_id, category_id,
	shop_name, category_name, created_at, updated_at`

func (h *Handlers) fetchProducts(c *gin.Context, where string, args ...any) ([]models.Product, error) {
	query := "SELECT " + productColumns + " FROM products"
	if where != "" {
		query += " " + where
	}
	query += " ORDER BY created_at ASC"

	rows, err := h.DB.QueryContext(c.Request.Context(), query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []models.Product
	for rows.Next() {
		var p models.Product
		err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Image, &p.ShopID,
			&p.CategoryID, &p.ShopName, &p.CategoryName, &p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			slog.Warn("skipping unreadable product row", "error", err)
			continue
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (h *Handlers) productExists(c *gin.Context, id string) bool {
	var one int
	err := h.DB.QueryRowContext(c.Request.Context(), "SELECT 1 FROM products WHERE id = ?", id).Scan(&one)
	return !errors.Is(err, sql.ErrNoRows)
}
