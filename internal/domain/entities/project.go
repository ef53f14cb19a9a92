package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// Project represents a prompt workspace owned by a user, optionally shared
// with a team, optionally public.
type Project struct {
	ID          uuid.UUID   `json:"id"`
	Name        string      `json:"name"`
	Description null.String `json:"description,omitempty"`
	OwnerID     uuid.UUID   `json:"ownerId"`
	TeamID      *uuid.UUID  `json:"teamId,omitempty"`
	IsPublic    bool        `json:"isPublic"`
	IsActive    bool        `json:"isActive"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
	DeletedAt   *time.Time  `json:"-"`
}

// CreateProjectInput represents input for creating a project
type CreateProjectInput struct {
	Name        string     `json:"name" binding:"required,min=1,max=100"`
	Description string     `json:"description"`
	TeamID      *uuid.UUID `json:"teamId,omitempty"`
	IsPublic    bool       `json:"isPublic"`
}

// UpdateProjectInput represents input for updating a project.
// Nil fields are left unchanged.
type UpdateProjectInput struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	IsPublic    *bool   `json:"isPublic,omitempty"`
}
