package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/supermall-dev/supermall-golang/internal/models"
	"github.com/supermall-dev/supermall-golang/internal/pipeline"
)

// --- Offer Handlers ---

// CreateOffer (Admin Only)
func (h *Handlers) CreateOffer(c *gin.Context) {
	var input models.OfferInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := input.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()

	if !h.shopExists(c, input.ShopID) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Selected shop does not exist"})
		return
	}

	now := time.Now()
	offer := models.Offer{
		ID:              uuid.NewString(),
		Title:           strings.TrimSpace(input.Title),
		Description:     input.Description,
		ShopID:          input.ShopID,
		OriginalPrice:   input.OriginalPrice,
		DiscountedPrice: input.DiscountedPrice,
		StartDate:       input.StartDate,
		EndDate:         input.EndDate,
		Terms:           input.Terms,
		Features:        input.Features,
		IsActive:        input.Active(),
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	featuresJSON, _ := json.Marshal(offer.Features)

	query := `INSERT INTO offers (id, title, description, shop_id, original_price, discounted_price,
	                              start_date, end_date, terms, features, is_active, created_at, updated_at)
	          VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	if _, err := h.DB.ExecContext(ctx, query,
		offer.ID, offer.Title, offer.Description, offer.ShopID, offer.OriginalPrice, offer.DiscountedPrice,
		offer.StartDate, offer.EndDate, offer.Terms, string(featuresJSON), offer.IsActive, offer.CreatedAt, offer.UpdatedAt); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create offer: " + err.Error()})
		return
	}

	offer.DiscountPercentage = pipeline.DiscountPercentage(offer.OriginalPrice, offer.DiscountedPrice)

	slog.Info("offer created", "id", offer.ID, "title", offer.Title)
	c.JSON(http.StatusCreated, gin.H{"message": "Offer created", "offer": offer})
}

// GetAllOffers (Public)
// The status filter here matches DERIVED status, not the stored flag: an
// offer whose window has passed reads as expired even while is_active is set.
func (h *Handlers) GetAllOffers(c *gin.Context) {
	offers, err := h.fetchOffers(c, "")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if err := h.resolveOfferShopNames(c, offers); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	for i := range offers {
		offers[i].DiscountPercentage = pipeline.DiscountPercentage(offers[i].OriginalPrice, offers[i].DiscountedPrice)
	}

	now := time.Now()
	q := pipeline.OfferQuery{
		Search:  c.Query("q"),
		ShopID:  c.Query("shop"),
		Status:  pipeline.ParseOfferStatusFilter(c.Query("status")),
		SortKey: pipeline.OfferSortKey(c.Query("sort")),
	}

	c.JSON(http.StatusOK, gin.H{
		"offers": pipeline.FilterOffers(offers, now, q),
		"stats":  pipeline.OfferStats(offers, now),
	})
}

// UpdateOffer (Admin Only)
func (h *Handlers) UpdateOffer(c *gin.Context) {
	id := c.Param("id")

	var input models.OfferInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := input.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !h.shopExists(c, input.ShopID) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Selected shop does not exist"})
		return
	}

	featuresJSON, _ := json.Marshal(input.Features)

	query := `UPDATE offers SET title = ?, description = ?, shop_id = ?, original_price = ?, discounted_price = ?,
	          start_date = ?, end_date = ?, terms = ?, features = ?, is_active = ?, updated_at = ?
	          WHERE id = ?`
	result, err := h.DB.ExecContext(c.Request.Context(), query,
		strings.TrimSpace(input.Title), input.Description, input.ShopID, input.OriginalPrice, input.DiscountedPrice,
		input.StartDate, input.EndDate, input.Terms, string(featuresJSON), input.Active(), time.Now(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update offer"})
		return
	}

	if rows, _ := result.RowsAffected(); rows == 0 {
		if !h.offerExists(c, id) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Offer not found"})
			return
		}
	}

	slog.Info("offer updated", "id", id)
	c.JSON(http.StatusOK, gin.H{"message": "Offer updated"})
}

// DeleteOffer (Admin Only)
func (h *Handlers) DeleteOffer(c *gin.Context) {
	id := c.Param("id")

	result, err := h.DB.ExecContext(c.Request.Context(), "DELETE FROM offers WHERE id = ?", id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete offer"})
		return
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Offer not found"})
		return
	}

	slog.Info("offer deleted", "id", id)
	c.JSON(http.StatusOK, gin.H{"message": "Offer deleted"})
}

// CompareOffers (Public)
// GET /v1/offers/compare?ids=a,b,c returns a comparison table for the
// selected offers. Savings is the absolute price gap; the best-value row is
// the one with the highest savings. Unknown ids are skipped.
func (h *Handlers) CompareOffers(c *gin.Context) {
	raw := strings.TrimSpace(c.Query("ids"))

	ids := []string{}
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			ids = append(ids, part)
		}
	}
	if len(ids) == 0 {
		c.JSON(http.StatusOK, gin.H{"rows": []gin.H{}})
		return
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(ids)), ", ")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	offers, err := h.fetchOffers(c, "WHERE id IN ("+placeholders+")", args...)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if err := h.resolveOfferShopNames(c, offers); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	now := time.Now()
	bestValue := ""
	bestSavings := -1.0
	for _, offer := range offers {
		savings := offer.OriginalPrice - offer.DiscountedPrice
		if savings > bestSavings {
			bestSavings = savings
			bestValue = offer.ID
		}
	}

	rows := make([]gin.H, 0, len(offers))
	for _, offer := range offers {
		rows = append(rows, gin.H{
			"id":                 offer.ID,
			"title":              offer.Title,
			"shopName":           offer.ShopName,
			"originalPrice":      offer.OriginalPrice,
			"discountedPrice":    offer.DiscountedPrice,
			"discountPercentage": pipeline.DiscountPercentage(offer.OriginalPrice, offer.DiscountedPrice),
			"savings":            offer.OriginalPrice - offer.DiscountedPrice,
			"status":             pipeline.DeriveOfferStatus(offer, now),
			"bestValue":          offer.ID == bestValue,
		})
	}

	c.JSON(http.StatusOK, gin.H{"rows": rows})
}

// DiscountPreview (Public)
// GET /v1/offers/discount-preview?originalPrice=100&discountedPrice=75
// lets the admin form show the computed percentage before saving.
func (h *Handlers) DiscountPreview(c *gin.Context) {
	original, err := strconv.ParseFloat(c.Query("originalPrice"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "originalPrice must be a number"})
		return
	}
	discounted, err := strconv.ParseFloat(c.Query("discountedPrice"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "discountedPrice must be a number"})
		return
	}
	if original <= 0 || discounted < 0 || discounted >= original {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Discounted price must be less than original price"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"originalPrice":      original,
		"discountedPrice":    discounted,
		"discountPercentage": pipeline.DiscountPercentage(original, discounted),
		"savings":            original - discounted,
	})
}

// --- Shared fetch helpers ---

const offerColumns = `id, title, description, shop_id, original_price, discounted_price,
	start_date, end_date, terms, features, is_active, created_at, updated_at`

// fetchOffers accepts an optional WHERE clause with its args.
func (h *Handlers) fetchOffers(c *gin.Context, where string, args ...any) ([]models.Offer, error) {
	query := "SELECT " + offerColumns + " FROM offers"
	if where != "" {
		query += " " + where
	}
	query += " ORDER BY created_at ASC"

	rows, err := h.DB.QueryContext(c.Request.Context(), query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var offers []models.Offer
	for rows.Next() {
		var offer models.Offer
		var features sql.NullString
		err := rows.Scan(&offer.ID, &offer.Title, &offer.Description, &offer.ShopID,
			&offer.OriginalPrice, &offer.DiscountedPrice, &offer.StartDate, &offer.EndDate,
			&offer.Terms, &features, &offer.IsActive, &offer.CreatedAt, &offer.UpdatedAt)
		if err != nil {
			slog.Warn("skipping unreadable offer row", "error", err)
			continue
		}
		if features.Valid && features.String != "" && features.String != "null" {
			_ = json.Unmarshal([]byte(features.String), &offer.Features)
		}
		offers = append(offers, offer)
	}
	return offers, rows.Err()
}

func (h *Handlers) resolveOfferShopNames(c *gin.Context, offers []models.Offer) error {
	if len(offers) == 0 {
		return nil
	}
	shopNames := make(map[string]string)
	rows, err := h.DB.QueryContext(c.Request.Context(), "SELECT id, name FROM shops")
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var id, name string
		if err := rows.Scan(&id, &name); err == nil {
			shopNames[id] = name
		}
	}
	for i := range offers {
		offers[i].ShopName = shopNames[offers[i].ShopID]
	}
	return rows.Err()
}

func (h *Handlers) offerExists(c *gin.Context, id string) bool {
	var one int
	err := h.DB.QueryRowContext(c.Request.Context(), "SELECT 1 FROM offers WHERE id = ?", id).Scan(&one)
	return !errors.Is(err, sql.ErrNoRows)
}
