package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// PromptContent is the full content snapshot of a prompt. The same value
// lives in every version record and, materialized, on the prompt row itself;
// the ledger's highest-numbered record is the source of truth.
type PromptContent struct {
	Title       string      `json:"title"`
	Content     string      `json:"content"`
	Description null.String `json:"description,omitempty"`
	Category    null.String `json:"category,omitempty"`
	Tags        []string    `json:"tags,omitempty"`
}

// Prompt represents a prompt and its materialized current content
type Prompt struct {
	ID             uuid.UUID  `json:"id"`
	OwnerID        uuid.UUID  `json:"ownerId"`
	TeamID         *uuid.UUID `json:"teamId,omitempty"`
	ProjectID      *uuid.UUID `json:"projectId,omitempty"`
	ParentID       *uuid.UUID `json:"parentId,omitempty"`
	IsPublic       bool       `json:"isPublic"`
	CurrentVersion int        `json:"currentVersion"`
	Content        PromptContent
	IsActive       bool       `json:"isActive"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
	DeletedAt      *time.Time `json:"-"`
}

// PromptVersion is one immutable entry of a prompt's version ledger.
// Versions per prompt are the contiguous integers 1..CurrentVersion.
type PromptVersion struct {
	ID        uuid.UUID   `json:"id"`
	PromptID  uuid.UUID   `json:"promptId"`
	Version   int         `json:"version"`
	Content   PromptContent
	AuthorID  uuid.UUID   `json:"authorId"`
	ChangeLog null.String `json:"changeLog,omitempty"`
	CreatedAt time.Time   `json:"createdAt"`
}

// CreatePromptInput represents input for creating a prompt
type CreatePromptInput struct {
	Title       string     `json:"title" binding:"required,min=1,max=200"`
	Content     string     `json:"content" binding:"required"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Tags        []string   `json:"tags"`
	TeamID      *uuid.UUID `json:"teamId,omitempty"`
	ProjectID   *uuid.UUID `json:"projectId,omitempty"`
	IsPublic    bool       `json:"isPublic"`
}

// PromptPatch represents a partial content update. Nil fields inherit the
// previous snapshot's value.
type PromptPatch struct {
	Title       *string   `json:"title,omitempty"`
	Content     *string   `json:"content,omitempty"`
	Description *string   `json:"description,omitempty"`
	Category    *string   `json:"category,omitempty"`
	Tags        *[]string `json:"tags,omitempty"`
}

// Overlay returns base with the patch's non-nil fields applied.
func (p PromptPatch) Overlay(base PromptContent) PromptContent {
	next := base
	if p.Title != nil {
		next.Title = *p.Title
	}
	if p.Content != nil {
		next.Content = *p.Content
	}
	if p.Description != nil {
		next.Description = null.StringFrom(*p.Description)
	}
	if p.Category != nil {
		next.Category = null.StringFrom(*p.Category)
	}
	if p.Tags != nil {
		next.Tags = append([]string(nil), (*p.Tags)...)
	}
	return next
}

// ListPromptsFilter narrows a prompt listing
type ListPromptsFilter struct {
	ProjectID *uuid.UUID
}
