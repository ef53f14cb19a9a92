package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Team struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v7()"`
	Name        string    `gorm:"type:varchar(100);not null"`
	Description string    `gorm:"type:text"`
	OwnerID     uuid.UUID `gorm:"type:uuid;not null;index"`
	IsActive    bool      `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

// Membership rows are history once deactivated; the partial unique index
// keeps at most one active row per (team, user) pairing while deactivated
// rows never block a re-invitation.
type Membership struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v7()"`
	TeamID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:udx_memberships_active_team_user,where:is_active"`
	UserID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:udx_memberships_active_team_user,where:is_active"`
	Role     string    `gorm:"type:varchar(20);not null"`
	IsActive bool      `gorm:"not null;default:true"`
	JoinedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time
}

func (Membership) TableName() string {
	return "memberships"
}
