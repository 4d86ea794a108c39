package models

import (
	"errors"
	"strings"
	"time"
)

// Product defines the struct for the 'products' collection.
// ShopName and CategoryName are deliberately denormalized: they are cached
// at creation time from the owning shop and category, so product cards render
// without extra lookups.
type Product struct {
	ID           string    `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Description  string    `json:"description" db:"description"`
	Price        float64   `json:"price" db:"price"`
	Image        string    `json:"image" db:"image"`
	ShopID       string    `json:"shopId" db:"shop_id"`
	CategoryID   string    `json:"categoryId" db:"category_id"`
	ShopName     string    `json:"shopName" db:"shop_name"`
	CategoryName string    `json:"categoryName" db:"category_name"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

type ProductInput struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
	ShopID      string  `json:"shopId" binding:"required"`
	CategoryID  string  `json:"categoryId" binding:"required"`
}

func (in *ProductInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return errors.New("Product name is required")
	}
	if in.Price <= 0 {
		return errors.New("Product price must be greater than zero")
	}
	return nil
}

// ProductInfoInput is the partial update used by the product info screen.
// Only the provided fields are written.
type ProductInfoInput struct {
	Price       *float64 `json:"price" binding:"omitempty,gt=0"`
	Description *string  `json:"description"`
	Image       *string  `json:"image"`
}

func (in *ProductInfoInput) Validate() error {
	if in.Price == nil && in.Description == nil && in.Image == nil {
		return errors.New("Nothing to update")
	}
	return nil
}
