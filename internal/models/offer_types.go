package models

import (
	"errors"
	"strings"
	"time"
)

// OfferDateLayout is the wire format for offer date ranges (form date inputs).
const OfferDateLayout = "2006-01-02"

// Offer defines the struct for the 'offers' collection.
// DiscountPercentage is never stored: it is derived from the two prices on
// every read, so editing a price can no longer leave a stale percentage
// behind.
type Offer struct {
	ID              string   `json:"id" db:"id"`
	Title           string   `json:"title" db:"title"`
	Description     string   `json:"description" db:"description"`
	ShopID          string   `json:"shopId" db:"shop_id"`
	OriginalPrice   float64  `json:"originalPrice" db:"original_price"`
	DiscountedPrice float64  `json:"discountedPrice" db:"discounted_price"`
	StartDate       string   `json:"startDate" db:"start_date"`
	EndDate         string   `json:"endDate" db:"end_date"`
	Terms           string   `json:"terms" db:"terms"`
	Features        []string `json:"features" db:"features"`
	IsActive        bool     `json:"isActive" db:"is_active"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time `json:"updatedAt" db:"updated_at"`

	// Virtual fields (not in DB)
	DiscountPercentage float64 `json:"discountPercentage" db:"-"`
	ShopName           string  `json:"shopName,omitempty" db:"-"`
}

type OfferInput struct {
	Title           string   `json:"title" binding:"required"`
	Description     string   `json:"description"`
	ShopID          string   `json:"shopId" binding:"required"`
	OriginalPrice   float64  `json:"originalPrice"`
	DiscountedPrice float64  `json:"discountedPrice"`
	StartDate       string   `json:"startDate"`
	EndDate         string   `json:"endDate"`
	Terms           string   `json:"terms"`
	Features        []string `json:"features"`
	IsActive        *bool    `json:"isActive"`
}

func (in *OfferInput) Validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return errors.New("Offer title is required")
	}
	if in.ShopID == "" {
		return errors.New("Please select a shop")
	}
	if in.OriginalPrice <= 0 || in.DiscountedPrice <= 0 {
		return errors.New("Both original and discounted prices are required")
	}
	if in.OriginalPrice <= in.DiscountedPrice {
		return errors.New("Discounted price must be less than original price")
	}
	if in.StartDate == "" || in.EndDate == "" {
		return errors.New("Start and end dates are required")
	}
	start, err := time.Parse(OfferDateLayout, in.StartDate)
	if err != nil {
		return errors.New("Start date must be a valid date (YYYY-MM-DD)")
	}
	end, err := time.Parse(OfferDateLayout, in.EndDate)
	if err != nil {
		return errors.New("End date must be a valid date (YYYY-MM-DD)")
	}
	if !start.Before(end) {
		return errors.New("End date must be after start date")
	}
	return nil
}

func (in *OfferInput) Active() bool {
	return in.IsActive == nil || *in.IsActive
}
