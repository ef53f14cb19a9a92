package usecases

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"prompthub.backend/internal/domain/entities"
	domainerrors "prompthub.backend/internal/domain/errors"
	"prompthub.backend/internal/domain/repositories"
	"prompthub.backend/internal/metrics"
)

// RoleCache caches (team, user) → role lookups. Implementations may be
// backed by redis; a nil cache disables caching entirely.
type RoleCache interface {
	GetRole(ctx context.Context, teamID, userID uuid.UUID) (string, bool)
	SetRole(ctx context.Context, teamID, userID uuid.UUID, role string)
	Invalidate(ctx context.Context, teamID, userID uuid.UUID)
}

// ScopeResolver computes visibility and mutation rights for a principal over
// scoped resources. Mutation rights are creator-only throughout: holding a
// role in a resource's team grants read access, never write access.
type ScopeResolver struct {
	membershipRepo repositories.MembershipRepository
	roleCache      RoleCache
}

// NewScopeResolver creates a new scope resolver. roleCache may be nil.
func NewScopeResolver(membershipRepo repositories.MembershipRepository, roleCache RoleCache) *ScopeResolver {
	return &ScopeResolver{
		membershipRepo: membershipRepo,
		roleCache:      roleCache,
	}
}

// RoleOf returns the principal's active role in the team, or TeamRoleNone.
func (r *ScopeResolver) RoleOf(ctx context.Context, teamID, userID uuid.UUID) (entities.TeamRole, error) {
	if r.roleCache != nil {
		if cached, ok := r.roleCache.GetRole(ctx, teamID, userID); ok {
			return entities.TeamRole(cached), nil
		}
	}

	membership, err := r.membershipRepo.GetActive(ctx, teamID, userID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			if r.roleCache != nil {
				r.roleCache.SetRole(ctx, teamID, userID, string(entities.TeamRoleNone))
			}
			return entities.TeamRoleNone, nil
		}
		return entities.TeamRoleNone, err
	}

	if r.roleCache != nil {
		r.roleCache.SetRole(ctx, teamID, userID, string(membership.Role))
	}
	return membership.Role, nil
}

// HasActiveMembership reports whether the principal holds any active role in
// the team.
func (r *ScopeResolver) HasActiveMembership(ctx context.Context, teamID, userID uuid.UUID) (bool, error) {
	role, err := r.RoleOf(ctx, teamID, userID)
	if err != nil {
		return false, err
	}
	return role != entities.TeamRoleNone, nil
}

// ActiveTeamIDs returns the teams in which the principal holds any active
// membership; used to assemble visible sets.
func (r *ScopeResolver) ActiveTeamIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	return r.membershipRepo.ListTeamIDsByUser(ctx, userID)
}

// CanReadCategory reports whether the principal may see the category:
// public, own personal scope, or member of the team scope.
func (r *ScopeResolver) CanReadCategory(ctx context.Context, principalID uuid.UUID, category *entities.Category) (bool, error) {
	allowed, err := r.canReadScoped(ctx, principalID, category)
	if err != nil {
		return false, err
	}
	metrics.RecordAuthzDecision("category", "read", allowed)
	return allowed, nil
}

func (r *ScopeResolver) canReadScoped(ctx context.Context, principalID uuid.UUID, category *entities.Category) (bool, error) {
	switch category.ScopeType {
	case entities.ScopePublic:
		return true, nil
	case entities.ScopePersonal:
		return category.ScopeID != nil && *category.ScopeID == principalID, nil
	case entities.ScopeTeam:
		if category.CreatedBy == principalID {
			return true, nil
		}
		if category.ScopeID == nil {
			return false, nil
		}
		return r.HasActiveMembership(ctx, *category.ScopeID, principalID)
	default:
		return false, nil
	}
}

// CanWriteCategory reports whether the principal may mutate the category.
// Creator-only: team roles grant no mutation rights.
func (r *ScopeResolver) CanWriteCategory(principalID uuid.UUID, category *entities.Category) bool {
	allowed := category.CreatedBy == principalID
	metrics.RecordAuthzDecision("category", "write", allowed)
	return allowed
}

// CanReadProject reports whether the principal may see the project: public,
// owner, or active member of the project's team.
func (r *ScopeResolver) CanReadProject(ctx context.Context, principalID uuid.UUID, project *entities.Project) (bool, error) {
	allowed, err := r.canReadProject(ctx, principalID, project)
	if err != nil {
		return false, err
	}
	metrics.RecordAuthzDecision("project", "read", allowed)
	return allowed, nil
}

func (r *ScopeResolver) canReadProject(ctx context.Context, principalID uuid.UUID, project *entities.Project) (bool, error) {
	if project.IsPublic || project.OwnerID == principalID {
		return true, nil
	}
	if project.TeamID == nil {
		return false, nil
	}
	return r.HasActiveMembership(ctx, *project.TeamID, principalID)
}

// CanWriteProject reports whether the principal may mutate the project.
// Owner-only, even for team-scoped projects.
func (r *ScopeResolver) CanWriteProject(principalID uuid.UUID, project *entities.Project) bool {
	allowed := project.OwnerID == principalID
	metrics.RecordAuthzDecision("project", "write", allowed)
	return allowed
}

// CanReadPrompt reports whether the principal may see the prompt: public,
// owner, or active member of the prompt's team.
func (r *ScopeResolver) CanReadPrompt(ctx context.Context, principalID uuid.UUID, prompt *entities.Prompt) (bool, error) {
	allowed, err := r.canReadPrompt(ctx, principalID, prompt)
	if err != nil {
		return false, err
	}
	metrics.RecordAuthzDecision("prompt", "read", allowed)
	return allowed, nil
}

func (r *ScopeResolver) canReadPrompt(ctx context.Context, principalID uuid.UUID, prompt *entities.Prompt) (bool, error) {
	if prompt.IsPublic || prompt.OwnerID == principalID {
		return true, nil
	}
	if prompt.TeamID == nil {
		return false, nil
	}
	return r.HasActiveMembership(ctx, *prompt.TeamID, principalID)
}

// CanWritePrompt reports whether the principal may mutate the prompt.
// Owner-only.
func (r *ScopeResolver) CanWritePrompt(principalID uuid.UUID, prompt *entities.Prompt) bool {
	allowed := prompt.OwnerID == principalID
	metrics.RecordAuthzDecision("prompt", "write", allowed)
	return allowed
}
