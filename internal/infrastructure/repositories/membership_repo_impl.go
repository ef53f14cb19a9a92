package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"prompthub.backend/internal/domain/entities"
	domainerrors "prompthub.backend/internal/domain/errors"
	"prompthub.backend/internal/infrastructure/models"
	"prompthub.backend/pkg/utils"
)

type MembershipRepositoryImpl struct {
	db *gorm.DB
}

func NewMembershipRepository(db *gorm.DB) *MembershipRepositoryImpl {
	return &MembershipRepositoryImpl{db: db}
}

func (r *MembershipRepositoryImpl) Create(ctx context.Context, membership *entities.Membership) error {
	db := GetDB(ctx, r.db).WithContext(ctx)

	// An active pairing must stay unique; deactivated rows are history and
	// do not block a re-invitation.
	var count int64
	if err := db.Model(&models.Membership{}).
		Where("team_id = ? AND user_id = ? AND is_active = ?", membership.TeamID, membership.UserID, true).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return domainerrors.ErrConflict
	}

	m := &models.Membership{
		ID:       utils.EnsureUUID(membership.ID),
		TeamID:   membership.TeamID,
		UserID:   membership.UserID,
		Role:     string(membership.Role),
		IsActive: true,
		JoinedAt: time.Now(),
	}
	if err := db.Create(m).Error; err != nil {
		if isDuplicateKey(err) {
			return domainerrors.ErrConflict
		}
		return err
	}
	membership.ID = m.ID
	membership.IsActive = true
	membership.JoinedAt = m.JoinedAt
	return nil
}

func (r *MembershipRepositoryImpl) GetActive(ctx context.Context, teamID, userID uuid.UUID) (*entities.Membership, error) {
	var m models.Membership
	if err := GetDB(ctx, r.db).WithContext(ctx).
		Where("team_id = ? AND user_id = ? AND is_active = ?", teamID, userID, true).
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

func (r *MembershipRepositoryImpl) ListByTeam(ctx context.Context, teamID uuid.UUID) ([]*entities.Membership, error) {
	var ms []models.Membership
	if err := GetDB(ctx, r.db).WithContext(ctx).
		Where("team_id = ? AND is_active = ?", teamID, true).
		Order("joined_at ASC").
		Find(&ms).Error; err != nil {
		return nil, err
	}

	items := make([]*entities.Membership, 0, len(ms))
	for i := range ms {
		items = append(items, r.toEntity(&ms[i]))
	}
	return items, nil
}

func (r *MembershipRepositoryImpl) ListTeamIDsByUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.Membership{}).
		Where("user_id = ? AND is_active = ?", userID, true).
		Pluck("team_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *MembershipRepositoryImpl) UpdateRole(ctx context.Context, teamID, userID uuid.UUID, role entities.TeamRole) error {
	result := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.Membership{}).
		Where("team_id = ? AND user_id = ? AND is_active = ?", teamID, userID, true).
		Updates(map[string]interface{}{
			"role":       string(role),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *MembershipRepositoryImpl) Deactivate(ctx context.Context, teamID, userID uuid.UUID) error {
	result := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.Membership{}).
		Where("team_id = ? AND user_id = ? AND is_active = ?", teamID, userID, true).
		Updates(map[string]interface{}{
			"is_active":  false,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *MembershipRepositoryImpl) toEntity(m *models.Membership) *entities.Membership {
	return &entities.Membership{
		ID:       m.ID,
		TeamID:   m.TeamID,
		UserID:   m.UserID,
		Role:     entities.TeamRole(m.Role),
		IsActive: m.IsActive,
		JoinedAt: m.JoinedAt,
	}
}
