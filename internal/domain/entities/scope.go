package entities

import "github.com/google/uuid"

// ScopeType represents the visibility partition of a scoped resource
type ScopeType string

const (
	ScopePersonal ScopeType = "PERSONAL"
	ScopeTeam     ScopeType = "TEAM"
	ScopePublic   ScopeType = "PUBLIC"
)

// Valid reports whether the scope type is a member of the enum.
func (s ScopeType) Valid() bool {
	return s == ScopePersonal || s == ScopeTeam || s == ScopePublic
}

// ResolveScopeID returns the scope discriminant for a scope type: the
// principal for PERSONAL, the supplied team for TEAM, nil for PUBLIC.
// Exactly one of the two ids is consulted, matching the invariant that a
// scoped resource has one non-null discriminant consistent with its type.
func ResolveScopeID(scopeType ScopeType, principalID uuid.UUID, teamID *uuid.UUID) *uuid.UUID {
	switch scopeType {
	case ScopePersonal:
		id := principalID
		return &id
	case ScopeTeam:
		return teamID
	default:
		return nil
	}
}
