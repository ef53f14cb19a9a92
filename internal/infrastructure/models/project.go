package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
)

type Project struct {
	ID          uuid.UUID   `gorm:"type:uuid;primaryKey;default:uuid_generate_v7()"`
	Name        string      `gorm:"type:varchar(100);not null"`
	Description null.String `gorm:"type:text"`
	OwnerID     uuid.UUID   `gorm:"type:uuid;not null;index"`
	TeamID      *uuid.UUID  `gorm:"type:uuid;index"`
	IsPublic    bool        `gorm:"not null;default:false"`
	IsActive    bool        `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}
