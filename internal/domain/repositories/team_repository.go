package repositories

import (
	"context"

	"github.com/google/uuid"
	"prompthub.backend/internal/domain/entities"
)

type TeamRepository interface {
	Create(ctx context.Context, team *entities.Team) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Team, error)
	ListByMember(ctx context.Context, userID uuid.UUID) ([]*entities.Team, error)
}

// MembershipRepository is the only write path to membership rows; every
// other component sees memberships through the directory built on top of it.
type MembershipRepository interface {
	Create(ctx context.Context, membership *entities.Membership) error
	// GetActive returns the active membership or ErrNotFound.
	GetActive(ctx context.Context, teamID, userID uuid.UUID) (*entities.Membership, error)
	ListByTeam(ctx context.Context, teamID uuid.UUID) ([]*entities.Membership, error)
	// ListTeamIDsByUser returns ids of teams where the user holds any active role.
	ListTeamIDsByUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	UpdateRole(ctx context.Context, teamID, userID uuid.UUID, role entities.TeamRole) error
	Deactivate(ctx context.Context, teamID, userID uuid.UUID) error
}
