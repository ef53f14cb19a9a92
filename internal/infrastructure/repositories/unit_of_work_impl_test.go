package repositories

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"prompthub.backend/internal/domain/entities"
	domainerrors "prompthub.backend/internal/domain/errors"
)

func TestUnitOfWork_CommitsOnSuccess(t *testing.T) {
	db := newTestDB(t)
	createTeamTables(t, db)
	uow := NewUnitOfWork(db)
	teamRepo := NewTeamRepository(db)
	membershipRepo := NewMembershipRepository(db)

	ownerID := uuid.New()
	team := &entities.Team{Name: "Platform", OwnerID: ownerID, IsActive: true}

	err := uow.Do(context.Background(), func(ctx context.Context) error {
		if err := teamRepo.Create(ctx, team); err != nil {
			return err
		}
		return membershipRepo.Create(ctx, &entities.Membership{
			TeamID: team.ID,
			UserID: ownerID,
			Role:   entities.TeamRoleOwner,
		})
	})
	require.NoError(t, err)

	got, err := teamRepo.GetByID(context.Background(), team.ID)
	require.NoError(t, err)
	require.Equal(t, "Platform", got.Name)

	m, err := membershipRepo.GetActive(context.Background(), team.ID, ownerID)
	require.NoError(t, err)
	require.Equal(t, entities.TeamRoleOwner, m.Role)
}

func TestUnitOfWork_RollsBackOnError(t *testing.T) {
	db := newTestDB(t)
	createTeamTables(t, db)
	uow := NewUnitOfWork(db)
	teamRepo := NewTeamRepository(db)

	team := &entities.Team{Name: "Doomed", OwnerID: uuid.New(), IsActive: true}
	boom := errors.New("boom")

	err := uow.Do(context.Background(), func(ctx context.Context) error {
		if err := teamRepo.Create(ctx, team); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = teamRepo.GetByID(context.Background(), team.ID)
	require.ErrorIs(t, err, domainerrors.ErrNotFound, "the team write is rolled back with the failure")
}
