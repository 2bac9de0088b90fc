// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// OwnerType represents the type of owner for a category.
type OwnerType string

const (
	// OwnerTypeUser marks a category created and fully owned by one user.
	OwnerTypeUser OwnerType = "user"
	// OwnerTypeGlobal marks a default category, read-only to end users.
	OwnerTypeGlobal OwnerType = "global"
)

// DefaultCategoryColor is the default color for categories.
const DefaultCategoryColor = "#6366F1"

// DefaultCategoryIcon is the default icon for categories.
const DefaultCategoryIcon = "tag"

// Category represents a transaction category in the Dimdim system.
type Category struct {
	ID        uuid.UUID
	Name      string
	Color     string
	Icon      string
	OwnerType OwnerType
	OwnerID   *uuid.UUID // nil for global categories
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time // Soft-delete support
}

// NewCategory creates a new user-owned Category entity.
// Defaulting logic for color and icon is applied in the use case layer
// before calling this constructor.
func NewCategory(name, color, icon string, ownerID uuid.UUID) *Category {
	now := time.Now().UTC()

	return &Category{
		ID:        uuid.New(),
		Name:      name,
		Color:     color,
		Icon:      icon,
		OwnerType: OwnerTypeUser,
		OwnerID:   &ownerID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsGlobal reports whether the category is a read-only default category.
func (c *Category) IsGlobal() bool {
	return c.OwnerType == OwnerTypeGlobal
}

// BelongsTo reports whether the category is owned by the given user.
func (c *Category) BelongsTo(userID uuid.UUID) bool {
	return c.OwnerType == OwnerTypeUser && c.OwnerID != nil && *c.OwnerID == userID
}
