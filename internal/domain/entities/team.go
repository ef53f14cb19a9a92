package entities

import (
	"time"

	"github.com/google/uuid"
)

// TeamRole represents a member's role within a team
type TeamRole string

const (
	TeamRoleOwner  TeamRole = "OWNER"
	TeamRoleAdmin  TeamRole = "ADMIN"
	TeamRoleEditor TeamRole = "EDITOR"
	TeamRoleViewer TeamRole = "VIEWER"
	// TeamRoleNone is the virtual role of a non-member.
	TeamRoleNone TeamRole = "NONE"
)

var roleRank = map[TeamRole]int{
	TeamRoleNone:   0,
	TeamRoleViewer: 1,
	TeamRoleEditor: 2,
	TeamRoleAdmin:  3,
	TeamRoleOwner:  4,
}

// Valid reports whether the role is an assignable membership role.
// NONE is a query result, never a stored role.
func (r TeamRole) Valid() bool {
	return r == TeamRoleOwner || r == TeamRoleAdmin || r == TeamRoleEditor || r == TeamRoleViewer
}

// AtLeast compares roles on the single OWNER>ADMIN>EDITOR>VIEWER ordering.
// Every permission check goes through this helper.
func (r TeamRole) AtLeast(other TeamRole) bool {
	return roleRank[r] >= roleRank[other]
}

// Team represents a collaboration tenant
type Team struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	OwnerID     uuid.UUID  `json:"ownerId"`
	IsActive    bool       `json:"isActive"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	DeletedAt   *time.Time `json:"-"`
}

// Membership represents an active (team, user) role pairing
type Membership struct {
	ID       uuid.UUID `json:"id"`
	TeamID   uuid.UUID `json:"teamId"`
	UserID   uuid.UUID `json:"userId"`
	Role     TeamRole  `json:"role"`
	IsActive bool      `json:"isActive"`
	JoinedAt time.Time `json:"joinedAt"`
}

// CreateTeamInput represents input for creating a team
type CreateTeamInput struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Description string `json:"description"`
}
