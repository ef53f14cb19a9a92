package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// Category represents a scoped prompt grouping.
// (ScopeType, ScopeID, Name) is unique among active rows.
type Category struct {
	ID          uuid.UUID   `json:"id"`
	Name        string      `json:"name"`
	Description null.String `json:"description,omitempty"`
	Color       null.String `json:"color,omitempty"`
	ScopeType   ScopeType   `json:"scopeType"`
	ScopeID     *uuid.UUID  `json:"scopeId,omitempty"`
	CreatedBy   uuid.UUID   `json:"createdBy"`
	IsActive    bool        `json:"isActive"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
	DeletedAt   *time.Time  `json:"-"`
}

// CreateCategoryInput represents input for creating a category
type CreateCategoryInput struct {
	Name        string    `json:"name" binding:"required,min=1,max=100"`
	Description string    `json:"description"`
	Color       string    `json:"color"`
	ScopeType   ScopeType `json:"scopeType" binding:"required"`
	// TeamID is required when ScopeType is TEAM and ignored otherwise.
	TeamID *uuid.UUID `json:"teamId,omitempty"`
}

// UpdateCategoryInput represents input for updating a category.
// Nil fields are left unchanged.
type UpdateCategoryInput struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Color       *string `json:"color,omitempty"`
}
