package usecases

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"prompthub.backend/internal/domain/entities"
	domainerrors "prompthub.backend/internal/domain/errors"
	"prompthub.backend/internal/domain/repositories"
)

// TeamUsecase is the membership directory: the source of truth for
// (team, user) role pairings and the only mutation path to membership rows.
type TeamUsecase struct {
	teamRepo       repositories.TeamRepository
	membershipRepo repositories.MembershipRepository
	userRepo       repositories.UserRepository
	uow            repositories.UnitOfWork
	roleCache      RoleCache
}

// NewTeamUsecase creates a new team usecase. roleCache may be nil.
func NewTeamUsecase(
	teamRepo repositories.TeamRepository,
	membershipRepo repositories.MembershipRepository,
	userRepo repositories.UserRepository,
	uow repositories.UnitOfWork,
	roleCache RoleCache,
) *TeamUsecase {
	return &TeamUsecase{
		teamRepo:       teamRepo,
		membershipRepo: membershipRepo,
		userRepo:       userRepo,
		uow:            uow,
		roleCache:      roleCache,
	}
}

// CreateTeam creates a team and the creator's OWNER membership atomically.
func (u *TeamUsecase) CreateTeam(ctx context.Context, ownerID uuid.UUID, input *entities.CreateTeamInput) (*entities.Team, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" || utf8.RuneCountInString(name) > MaxNameLength {
		return nil, domainerrors.Validation("team name must be between 1 and 100 characters")
	}

	if _, err := u.userRepo.GetByID(ctx, ownerID); err != nil {
		return nil, err
	}

	team := &entities.Team{
		Name:        name,
		Description: input.Description,
		OwnerID:     ownerID,
		IsActive:    true,
	}

	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.teamRepo.Create(txCtx, team); err != nil {
			return err
		}
		return u.Register(txCtx, team.ID, ownerID, entities.TeamRoleOwner)
	})
	if err != nil {
		return nil, err
	}
	return team, nil
}

// Register creates an active membership with the given role. Fails with
// ErrConflict when an active membership for the pairing already exists.
func (u *TeamUsecase) Register(ctx context.Context, teamID, userID uuid.UUID, role entities.TeamRole) error {
	if !role.Valid() {
		return domainerrors.Validation("invalid team role")
	}

	membership := &entities.Membership{
		TeamID: teamID,
		UserID: userID,
		Role:   role,
	}
	if err := u.membershipRepo.Create(ctx, membership); err != nil {
		return err
	}
	if u.roleCache != nil {
		u.roleCache.Invalidate(ctx, teamID, userID)
	}
	return nil
}

// InviteMember registers a new member on behalf of an executor. The executor
// must hold OWNER or ADMIN; granting OWNER requires an existing OWNER.
func (u *TeamUsecase) InviteMember(ctx context.Context, executorID, teamID, userID uuid.UUID, role entities.TeamRole) error {
	if !role.Valid() {
		return domainerrors.Validation("invalid team role")
	}

	if _, err := u.teamRepo.GetByID(ctx, teamID); err != nil {
		return err
	}
	if _, err := u.userRepo.GetByID(ctx, userID); err != nil {
		return err
	}

	executorRole, err := u.RoleOf(ctx, teamID, executorID)
	if err != nil {
		return err
	}
	if !executorRole.AtLeast(entities.TeamRoleAdmin) {
		return domainerrors.Forbidden("only team owners and admins can invite members")
	}
	if role == entities.TeamRoleOwner && executorRole != entities.TeamRoleOwner {
		return domainerrors.Forbidden("only the team owner can grant the owner role")
	}

	return u.Register(ctx, teamID, userID, role)
}

// RoleOf returns the active role for the pairing, or TeamRoleNone.
func (u *TeamUsecase) RoleOf(ctx context.Context, teamID, userID uuid.UUID) (entities.TeamRole, error) {
	membership, err := u.membershipRepo.GetActive(ctx, teamID, userID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return entities.TeamRoleNone, nil
		}
		return entities.TeamRoleNone, err
	}
	return membership.Role, nil
}

// SetRole changes a member's role. The executor must hold OWNER or ADMIN; a
// target currently holding OWNER cannot be demoted through this path; only
// an existing OWNER may grant OWNER.
func (u *TeamUsecase) SetRole(ctx context.Context, executorID, teamID, targetID uuid.UUID, newRole entities.TeamRole) error {
	if !newRole.Valid() {
		return domainerrors.Validation("invalid team role")
	}

	executorRole, err := u.RoleOf(ctx, teamID, executorID)
	if err != nil {
		return err
	}
	if !executorRole.AtLeast(entities.TeamRoleAdmin) {
		return domainerrors.Forbidden("only team owners and admins can change roles")
	}

	targetRole, err := u.RoleOf(ctx, teamID, targetID)
	if err != nil {
		return err
	}
	if targetRole == entities.TeamRoleNone {
		return domainerrors.NotFound("membership not found")
	}
	if targetRole == entities.TeamRoleOwner && newRole != entities.TeamRoleOwner {
		return domainerrors.Forbidden("cannot demote the team owner")
	}
	if newRole == entities.TeamRoleOwner && executorRole != entities.TeamRoleOwner {
		return domainerrors.Forbidden("only the team owner can grant the owner role")
	}

	if err := u.membershipRepo.UpdateRole(ctx, teamID, targetID, newRole); err != nil {
		return err
	}
	if u.roleCache != nil {
		u.roleCache.Invalidate(ctx, teamID, targetID)
	}
	return nil
}

// Deactivate removes a member. Self-departure is always permitted, including
// for the owner (the team may end up ownerless; an ownership-transfer
// precondition would slot in here). Otherwise the executor must hold OWNER
// or ADMIN and the target must not hold OWNER.
func (u *TeamUsecase) Deactivate(ctx context.Context, executorID, teamID, targetID uuid.UUID) error {
	if executorID != targetID {
		executorRole, err := u.RoleOf(ctx, teamID, executorID)
		if err != nil {
			return err
		}
		if !executorRole.AtLeast(entities.TeamRoleAdmin) {
			return domainerrors.Forbidden("only team owners and admins can remove members")
		}

		targetRole, err := u.RoleOf(ctx, teamID, targetID)
		if err != nil {
			return err
		}
		if targetRole == entities.TeamRoleOwner {
			return domainerrors.Forbidden("cannot remove team owner")
		}
	}

	if err := u.membershipRepo.Deactivate(ctx, teamID, targetID); err != nil {
		return err
	}
	if u.roleCache != nil {
		u.roleCache.Invalidate(ctx, teamID, targetID)
	}
	return nil
}

// ListTeams returns the teams where the principal holds an active membership.
func (u *TeamUsecase) ListTeams(ctx context.Context, userID uuid.UUID) ([]*entities.Team, error) {
	return u.teamRepo.ListByMember(ctx, userID)
}

// Members returns the active memberships of a team. The caller must be an
// active member.
func (u *TeamUsecase) Members(ctx context.Context, callerID, teamID uuid.UUID) ([]*entities.Membership, error) {
	if _, err := u.teamRepo.GetByID(ctx, teamID); err != nil {
		return nil, err
	}

	callerRole, err := u.RoleOf(ctx, teamID, callerID)
	if err != nil {
		return nil, err
	}
	if callerRole == entities.TeamRoleNone {
		return nil, domainerrors.Forbidden("not a member of this team")
	}

	return u.membershipRepo.ListByTeam(ctx, teamID)
}
