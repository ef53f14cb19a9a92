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

type ProjectRepositoryImpl struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *ProjectRepositoryImpl {
	return &ProjectRepositoryImpl{db: db}
}

func (r *ProjectRepositoryImpl) Create(ctx context.Context, project *entities.Project) error {
	m := r.toModel(project)
	if err := GetDB(ctx, r.db).WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	project.ID = m.ID
	project.CreatedAt = m.CreatedAt
	project.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *ProjectRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*entities.Project, error) {
	var m models.Project
	if err := GetDB(ctx, r.db).WithContext(ctx).
		Where("id = ? AND is_active = ?", id, true).
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

func (r *ProjectRepositoryImpl) Update(ctx context.Context, project *entities.Project) error {
	updates := map[string]interface{}{
		"name":        project.Name,
		"description": project.Description,
		"is_public":   project.IsPublic,
		"updated_at":  time.Now(),
	}

	result := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.Project{}).
		Where("id = ? AND is_active = ?", project.ID, true).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *ProjectRepositoryImpl) SoftDelete(ctx context.Context, id uuid.UUID) error {
	result := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.Project{}).
		Where("id = ? AND is_active = ?", id, true).
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

func (r *ProjectRepositoryImpl) ListVisible(ctx context.Context, userID uuid.UUID, teamIDs []uuid.UUID) ([]*entities.Project, error) {
	db := GetDB(ctx, r.db).WithContext(ctx).Where("is_active = ?", true)

	if len(teamIDs) > 0 {
		db = db.Where("is_public = ? OR owner_id = ? OR team_id IN ?", true, userID, teamIDs)
	} else {
		db = db.Where("is_public = ? OR owner_id = ?", true, userID)
	}

	var ms []models.Project
	if err := db.Order("created_at DESC").Find(&ms).Error; err != nil {
		return nil, err
	}

	items := make([]*entities.Project, 0, len(ms))
	for i := range ms {
		items = append(items, r.toEntity(&ms[i]))
	}
	return items, nil
}

func (r *ProjectRepositoryImpl) toEntity(m *models.Project) *entities.Project {
	var deletedAt *time.Time
	if m.DeletedAt.Valid {
		deletedAt = &m.DeletedAt.Time
	}
	return &entities.Project{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		OwnerID:     m.OwnerID,
		TeamID:      m.TeamID,
		IsPublic:    m.IsPublic,
		IsActive:    m.IsActive,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
		DeletedAt:   deletedAt,
	}
}

func (r *ProjectRepositoryImpl) toModel(e *entities.Project) *models.Project {
	return &models.Project{
		ID:          utils.EnsureUUID(e.ID),
		Name:        e.Name,
		Description: e.Description,
		OwnerID:     e.OwnerID,
		TeamID:      e.TeamID,
		IsPublic:    e.IsPublic,
		IsActive:    true,
	}
}
