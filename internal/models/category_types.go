package models

import (
	"errors"
	"strings"
	"time"
)

// Category defines the struct for the 'categories' collection
type Category struct {
	ID          string `json:"id" db:"id"`
	Name        string `json:"name" db:"name"`
	Slug        string `json:"slug" db:"slug"`
	Description string `json:"description" db:"description"`
	Icon        string `json:"icon" db:"icon"`
	Color       string `json:"color" db:"color"`
	IsActive    bool   `json:"isActive" db:"is_active"`
	// Cached count of products referencing this category.
	// Refreshed on product writes, surfaced on the admin cards.
	ProductCount int       `json:"productCount" db:"product_count"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

// CategoryInput is shared by create and update. We never accept an 'id',
// 'slug' or timestamps from the client.
type CategoryInput struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`
	IsActive    *bool  `json:"isActive"`
}

// Validate applies the rules the store itself does not enforce.
func (in *CategoryInput) Validate() error {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return errors.New("Category name is required")
	}
	if len(name) < 2 {
		return errors.New("Category name must be at least 2 characters long")
	}
	return nil
}

// Active returns the effective flag: a category is active unless the
// client explicitly said otherwise.
func (in *CategoryInput) Active() bool {
	return in.IsActive == nil || *in.IsActive
}
