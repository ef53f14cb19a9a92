package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
)

type Prompt struct {
	ID             uuid.UUID   `gorm:"type:uuid;primaryKey;default:uuid_generate_v7()"`
	OwnerID        uuid.UUID   `gorm:"type:uuid;not null;index"`
	TeamID         *uuid.UUID  `gorm:"type:uuid;index"`
	ProjectID      *uuid.UUID  `gorm:"type:uuid;index"`
	ParentID       *uuid.UUID  `gorm:"type:uuid;index"`
	IsPublic       bool        `gorm:"not null;default:false"`
	CurrentVersion int         `gorm:"not null;default:1"`
	Title          string      `gorm:"type:varchar(200);not null"`
	Content        string      `gorm:"type:text;not null"`
	Description    null.String `gorm:"type:text"`
	Category       null.String `gorm:"type:varchar(100)"`
	Tags           null.JSON   `gorm:"type:jsonb"`
	IsActive       bool        `gorm:"not null;default:true"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}

// PromptVersion rows are append-only; the composite unique index is the
// backstop that turns a lost version race into a constraint violation.
type PromptVersion struct {
	ID          uuid.UUID   `gorm:"type:uuid;primaryKey;default:uuid_generate_v7()"`
	PromptID    uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex:idx_prompt_versions_prompt_version"`
	Version     int         `gorm:"not null;uniqueIndex:idx_prompt_versions_prompt_version"`
	Title       string      `gorm:"type:varchar(200);not null"`
	Content     string      `gorm:"type:text;not null"`
	Description null.String `gorm:"type:text"`
	Category    null.String `gorm:"type:varchar(100)"`
	Tags        null.JSON   `gorm:"type:jsonb"`
	AuthorID    uuid.UUID   `gorm:"type:uuid;not null;index"`
	ChangeLog   null.String `gorm:"type:text"`
	CreatedAt   time.Time
}
