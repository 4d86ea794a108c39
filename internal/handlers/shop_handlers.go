package handlers

import (
	"database/sql"
	"encoding/json"
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

// --- Shop Handlers ---

// CreateShop (Admin Only)
// Shops reference category and floor by id only. Both references are checked
// against live rows before the write; the floor's level is cached on the shop
// and its store counter bumped in the same transaction.
func (h *Handlers) CreateShop(c *gin.Context) {
	var input models.ShopInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := input.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()

	if !h.categoryExists(c, input.CategoryID) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Selected category does not exist"})
		return
	}

	var floorLevel int
	err := h.DB.QueryRowContext(ctx, "SELECT level FROM floors WHERE id = ?", input.FloorID).Scan(&floorLevel)
	if errors.Is(err, sql.ErrNoRows) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Selected floor does not exist"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	now := time.Now()
	shop := models.Shop{
		ID:            uuid.NewString(),
		Name:          strings.TrimSpace(input.Name),
		Owner:         strings.TrimSpace(input.Owner),
		Email:         strings.TrimSpace(input.Email),
		Phone:         strings.TrimSpace(input.Phone),
		Address:       input.Address,
		Description:   input.Description,
		CategoryID:    input.CategoryID,
		FloorID:       input.FloorID,
		FloorLevel:    floorLevel,
		ShopNumber:    input.ShopNumber,
		Rating:        input.Rating,
		BusinessHours: input.BusinessHours,
		IsActive:      input.Active(),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	hoursJSON, _ := json.Marshal(shop.BusinessHours)

	tx, err := h.DB.BeginTx(ctx, nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "DB Transaction failed"})
		return
	}
	defer tx.Rollback()

	query := `INSERT INTO shops (id, name, owner, email, phone, address, description, category_id, floor_id,
	                             floor_level, shop_number, rating, business_hours, is_active, created_at, updated_at)
	          VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	if _, err := tx.ExecContext(ctx, query,
		shop.ID, shop.Name, shop.Owner, shop.Email, shop.Phone, shop.Address, shop.Description,
		shop.CategoryID, shop.FloorID, shop.FloorLevel, shop.ShopNumber, shop.Rating,
		string(hoursJSON), shop.IsActive, shop.CreatedAt, shop.UpdatedAt); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create shop: " + err.Error()})
		return
	}

	if _, err := tx.ExecContext(ctx,
		"UPDATE floors SET store_count = store_count + 1 WHERE id = ?", shop.FloorID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update floor counters"})
		return
	}

	if err := tx.Commit(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create shop"})
		return
	}

	slog.Info("shop created", "id", shop.ID, "name", shop.Name)
	c.JSON(http.StatusCreated, gin.H{"message": "Shop created", "shop": shop})
}

// GetAllShops (Public)
// Fetches the whole collection plus the category/floor name maps, resolves
// display names, then runs the pipeline. Stats describe the unfiltered set.
func (h *Handlers) GetAllShops(c *gin.Context) {
	shops, err := h.fetchShops(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	categoryNames, floorNames, err := h.fetchNameMaps(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	for i := range shops {
		shops[i].CategoryName = categoryNames[shops[i].CategoryID]
		shops[i].FloorName = floorNames[shops[i].FloorID]
	}

	q := pipeline.ShopQuery{
		Search:     c.Query("q"),
		CategoryID: c.Query("category"),
		FloorID:    c.Query("floor"),
		Status:     pipeline.ParseStatusFilter(c.Query("status")),
		SortKey:    pipeline.ShopSortKey(c.Query("sort")),
	}

	c.JSON(http.StatusOK, gin.H{
		"shops": pipeline.FilterShops(shops, q),
		"stats": pipeline.ShopStats(shops),
	})
}

// GetShopDetails (Public)
// Returns the shop with resolved names plus its offers, newest first. A
// missing id renders as a 404 placeholder, not an exception.
func (h *Handlers) GetShopDetails(c *gin.Context) {
	id := c.Param("id")
	ctx := c.Request.Context()

	shop, err := h.fetchShopByID(c, id)
	if errors.Is(err, sql.ErrNoRows) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Shop not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	var categoryName, floorName string
	_ = h.DB.QueryRowContext(ctx, "SELECT name FROM categories WHERE id = ?", shop.CategoryID).Scan(&categoryName)
	_ = h.DB.QueryRowContext(ctx, "SELECT name FROM floors WHERE id = ?", shop.FloorID).Scan(&floorName)
	shop.CategoryName = categoryName
	shop.FloorName = floorName

	offers, err := h.fetchOffers(c, "WHERE shop_id = ?", id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	for i := range offers {
		offers[i].ShopName = shop.Name
		offers[i].DiscountPercentage = pipeline.DiscountPercentage(offers[i].OriginalPrice, offers[i].DiscountedPrice)
	}
	// Newest offers first.
	sorted := pipeline.FilterOffers(offers, time.Now(), pipeline.OfferQuery{SortKey: pipeline.OfferSortDate})

	c.JSON(http.StatusOK, gin.H{"shop": shop, "offers": sorted})
}

// UpdateShop (Admin Only)
// Both references get the same live-row checks CreateShop does, and a move
// to a different floor shifts the cached store counters from the old floor
// to the new one in the same transaction as the update.
func (h *Handlers) UpdateShop(c *gin.Context) {
	id := c.Param("id")
	ctx := c.Request.Context()

	var input models.ShopInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := input.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !h.categoryExists(c, input.CategoryID) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Selected category does not exist"})
		return
	}

	var floorLevel int
	err := h.DB.QueryRowContext(ctx, "SELECT level FROM floors WHERE id = ?", input.FloorID).Scan(&floorLevel)
	if errors.Is(err, sql.ErrNoRows) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Selected floor does not exist"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	var currentFloorID string
	err = h.DB.QueryRowContext(ctx, "SELECT floor_id FROM shops WHERE id = ?", id).Scan(&currentFloorID)
	if errors.Is(err, sql.ErrNoRows) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Shop not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	hoursJSON, _ := json.Marshal(input.BusinessHours)

	tx, err := h.DB.BeginTx(ctx, nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "DB Transaction failed"})
		return
	}
	defer tx.Rollback()

	query := `UPDATE shops SET name = ?, owner = ?, email = ?, phone = ?, address = ?, description = ?,
	          category_id = ?, floor_id = ?, floor_level = ?, shop_number = ?, rating = ?,
	          business_hours = ?, is_active = ?, updated_at = ?
	          WHERE id = ?`
	if _, err := tx.ExecContext(ctx, query,
		strings.TrimSpace(input.Name), strings.TrimSpace(input.Owner), strings.TrimSpace(input.Email),
		strings.TrimSpace(input.Phone), input.Address, input.Description, input.CategoryID, input.FloorID,
		floorLevel, input.ShopNumber, input.Rating, string(hoursJSON), input.Active(), time.Now(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update shop"})
		return
	}

	if currentFloorID != input.FloorID {
		if _, err := tx.ExecContext(ctx,
			"UPDATE floors SET store_count = GREATEST(store_count - 1, 0) WHERE id = ?", currentFloorID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update floor counters"})
			return
		}
		if _, err := tx.ExecContext(ctx,
			"UPDATE floors SET store_count = store_count + 1 WHERE id = ?", input.FloorID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update floor counters"})
			return
		}
	}

	if err := tx.Commit(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update shop"})
		return
	}

	slog.Info("shop updated", "id", id)
	c.JSON(http.StatusOK, gin.H{"message": "Shop updated"})
}

// DeleteShop (Admin Only)
// Deleting a shop cascades: its offers and products go with it in one
// transaction, so no orphaned shopId references remain.
func (h *Handlers) DeleteShop(c *gin.Context) {
	id := c.Param("id")
	ctx := c.Request.Context()

	var floorID string
	err := h.DB.QueryRowContext(ctx, "SELECT floor_id FROM shops WHERE id = ?", id).Scan(&floorID)
	if errors.Is(err, sql.ErrNoRows) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Shop not found"})
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

	if _, err := tx.ExecContext(ctx, "DELETE FROM offers WHERE shop_id = ?", id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete shop offers"})
		return
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM products WHERE shop_id = ?", id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete shop products"})
		return
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM shops WHERE id = ?", id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete shop"})
		return
	}
	if _, err := tx.ExecContext(ctx,
		"UPDATE floors SET store_count = GREATEST(store_count - 1, 0) WHERE id = ?", floorID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update floor counters"})
		return
	}

	if err := tx.Commit(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete shop"})
		return
	}

	slog.Info("shop deleted with offers and products", "id", id)
	c.JSON(http.StatusOK, gin.H{"message": "Shop deleted"})
}

// --- Shared fetch helpers ---

const shopColumns = `id, name, owner, email, phone, address, description, category_id, floor_id,
	floor_level, shop_number, rating, business_hours, is_active, created_at, updated_at`

func (h *Handlers) fetchShops(c *gin.Context) ([]models.Shop, error) {
	rows, err := h.DB.QueryContext(c.Request.Context(),
		"SELECT "+shopColumns+" FROM shops ORDER BY created_at ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var shops []models.Shop
	for rows.Next() {
		shop, err := scanShop(rows.Scan)
		if err != nil {
			slog.Warn("skipping unreadable shop row", "error", err)
			continue
		}
		shops = append(shops, shop)
	}
	return shops, rows.Err()
}

func (h *Handlers) fetchShopByID(c *gin.Context, id string) (models.Shop, error) {
	row := h.DB.QueryRowContext(c.Request.Context(),
		"SELECT "+shopColumns+" FROM shops WHERE id = ?", id)
	return scanShop(row.Scan)
}

// scanShop works for both *sql.Row and *sql.Rows via their Scan func.
func scanShop(scan func(dest ...any) error) (models.Shop, error) {
	var shop models.Shop
	var hours sql.NullString
	err := scan(&shop.ID, &shop.Name, &shop.Owner, &shop.Email, &shop.Phone, &shop.Address,
		&shop.Description, &shop.CategoryID, &shop.FloorID, &shop.FloorLevel, &shop.ShopNumber,
		&shop.Rating, &hours, &shop.IsActive, &shop.CreatedAt, &shop.UpdatedAt)
	if err != nil {
		return models.Shop{}, err
	}
	if hours.Valid && hours.String != "" && hours.String != "null" {
		_ = json.Unmarshal([]byte(hours.String), &shop.BusinessHours)
	}
	return shop, nil
}

// fetchNameMaps loads id -> name for categories and floors so list endpoints
// can resolve display names without a join per row.
func (h *Handlers) fetchNameMaps(c *gin.Context) (map[string]string, map[string]string, error) {
	ctx := c.Request.Context()

	categoryNames := make(map[string]string)
	rows, err := h.DB.QueryContext(ctx, "SELECT id, name FROM categories")
	if err != nil {
		return nil, nil, err
	}
	for rows.Next() {
		var id, name string
		if err := rows.Scan(&id, &name); err == nil {
			categoryNames[id] = name
		}
	}
	rows.Close()

	floorNames := make(map[string]string)
	rows, err = h.DB.QueryContext(ctx, "SELECT id, name FROM floors")
	if err != nil {
		return nil, nil, err
	}
	for rows.Next() {
		var id, name string
		if err := rows.Scan(&id, &name); err == nil {
			floorNames[id] = name
		}
	}
	rows.Close()

	return categoryNames, floorNames, nil
}

func (h *Handlers) shopExists(c *gin.Context, id string) bool {
	var one int
	err := h.DB.QueryRowContext(c.Request.Context(), "SELECT 1 FROM shops WHERE id = ?", id).Scan(&one)
	return !errors.Is(err, sql.ErrNoRows)
}
