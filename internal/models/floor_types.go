package models

import (
	"errors"
	"strings"
	"time"
)

// Floor levels are free-form signed integers (basements are negative).
// The form constrains them to this window; nothing else does.
const (
	MinFloorLevel = -5
	MaxFloorLevel = 50
)

// Floor defines the struct for the 'floors' collection
type Floor struct {
	ID          string `json:"id" db:"id"`
	Name        string `json:"name" db:"name"`
	Slug        string `json:"slug" db:"slug"`
	Description string `json:"description" db:"description"`
	Level       int    `json:"level" db:"level"`
	IsActive    bool   `json:"isActive" db:"is_active"`
	// Cached count of shops placed on this floor.
	StoreCount int       `json:"storeCount" db:"store_count"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time `json:"updatedAt" db:"updated_at"`
}

type FloorInput struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	// Pointer so that level 0 (ground floor) survives binding.
	Level    *int  `json:"level" binding:"required"`
	IsActive *bool `json:"isActive"`
}

func (in *FloorInput) Validate() error {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return errors.New("Floor name is required")
	}
	if len(name) < 2 {
		return errors.New("Floor name must be at least 2 characters long")
	}
	if in.Level == nil {
		return errors.New("Floor level is required")
	}
	if *in.Level < MinFloorLevel || *in.Level > MaxFloorLevel {
		return errors.New("Floor level must be between -5 and 50")
	}
	return nil
}

func (in *FloorInput) Active() bool {
	return in.IsActive == nil || *in.IsActive
}
