package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
)

// Category name uniqueness holds per active scope partition. The partial
// unique index backstops the repository's pre-check under concurrency while
// leaving soft-deleted names re-creatable. NULL scope ids (PUBLIC) compare
// distinct in the index, so the pre-check stays the guard for that partition.
type Category struct {
	ID          uuid.UUID   `gorm:"type:uuid;primaryKey;default:uuid_generate_v7()"`
	Name        string      `gorm:"type:varchar(100);not null;uniqueIndex:udx_categories_active_scope_name,where:is_active"`
	Description null.String `gorm:"type:text"`
	Color       null.String `gorm:"type:varchar(7)"`
	ScopeType   string      `gorm:"type:varchar(20);not null;uniqueIndex:udx_categories_active_scope_name,where:is_active"`
	ScopeID     *uuid.UUID  `gorm:"type:uuid;uniqueIndex:udx_categories_active_scope_name,where:is_active"`
	CreatedBy   uuid.UUID   `gorm:"type:uuid;not null;index"`
	IsActive    bool        `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}
