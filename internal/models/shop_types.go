package models

import (
	"errors"
	"strings"
	"time"
)

// Shop defines the struct for the 'shops' collection.
// Shops reference their category and floor by id only; the legacy free-text
// 'category'/'floor' strings from the old admin form are gone. Display names
// are resolved at read time and carried on the virtual fields below.
type Shop struct {
	ID          string  `json:"id" db:"id"`
	Name        string  `json:"name" db:"name"`
	Owner       string  `json:"owner" db:"owner"`
	Email       string  `json:"email" db:"email"`
	Phone       string  `json:"phone" db:"phone"`
	Address     string  `json:"address" db:"address"`
	Description string  `json:"description" db:"description"`
	CategoryID  string  `json:"categoryId" db:"category_id"`
	FloorID     string  `json:"floorId" db:"floor_id"`
	FloorLevel  int     `json:"floorLevel" db:"floor_level"`
	ShopNumber  string  `json:"shopNumber" db:"shop_number"`
	Rating      float64 `json:"rating" db:"rating"`
	// Opening hours per weekday, e.g. {"monday": "9:00 AM - 8:00 PM"}.
	// Stored as a JSON blob; the store has no schema for it anyway.
	BusinessHours map[string]string `json:"businessHours" db:"business_hours"`
	IsActive      bool              `json:"isActive" db:"is_active"`
	CreatedAt     time.Time         `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time         `json:"updatedAt" db:"updated_at"`

	// Virtual fields (not in DB) - resolved from categories/floors at read time
	CategoryName string `json:"categoryName,omitempty" db:"-"`
	FloorName    string `json:"floorName,omitempty" db:"-"`
}

type ShopInput struct {
	Name          string            `json:"name" binding:"required"`
	Owner         string            `json:"owner" binding:"required"`
	Email         string            `json:"email" binding:"required,email"`
	Phone         string            `json:"phone" binding:"required"`
	Address       string            `json:"address"`
	Description   string            `json:"description"`
	CategoryID    string            `json:"categoryId" binding:"required"`
	FloorID       string            `json:"floorId" binding:"required"`
	ShopNumber    string            `json:"shopNumber"`
	Rating        float64           `json:"rating" binding:"omitempty,gte=0,lte=5"`
	BusinessHours map[string]string `json:"businessHours"`
	IsActive      *bool             `json:"isActive"`
}

func (in *ShopInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return errors.New("Shop name is required")
	}
	if strings.TrimSpace(in.Owner) == "" {
		return errors.New("Owner name is required")
	}
	if strings.TrimSpace(in.Email) == "" {
		return errors.New("Email is required")
	}
	if strings.TrimSpace(in.Phone) == "" {
		return errors.New("Phone number is required")
	}
	return nil
}

func (in *ShopInput) Active() bool {
	return in.IsActive == nil || *in.IsActive
}
