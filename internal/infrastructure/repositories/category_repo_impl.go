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

type CategoryRepositoryImpl struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepositoryImpl {
	return &CategoryRepositoryImpl{db: db}
}

func (r *CategoryRepositoryImpl) Create(ctx context.Context, category *entities.Category) error {
	db := GetDB(ctx, r.db).WithContext(ctx)

	return db.Transaction(func(tx *gorm.DB) error {
		// Name uniqueness holds per active (scopeType, scopeID) partition.
		query := tx.Model(&models.Category{}).
			Where("scope_type = ? AND name = ? AND is_active = ?", string(category.ScopeType), category.Name, true)
		if category.ScopeID != nil {
			query = query.Where("scope_id = ?", *category.ScopeID)
		} else {
			query = query.Where("scope_id IS NULL")
		}

		var count int64
		if err := query.Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return domainerrors.ErrConflict
		}

		m := r.toModel(category)
		if err := tx.Create(m).Error; err != nil {
			if isDuplicateKey(err) {
				return domainerrors.ErrConflict
			}
			return err
		}
		category.ID = m.ID
		category.CreatedAt = m.CreatedAt
		category.UpdatedAt = m.UpdatedAt
		return nil
	})
}

func (r *CategoryRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*entities.Category, error) {
	var m models.Category
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

func (r *CategoryRepositoryImpl) Update(ctx context.Context, category *entities.Category) error {
	db := GetDB(ctx, r.db).WithContext(ctx)

	return db.Transaction(func(tx *gorm.DB) error {
		// A rename must honor the same per-scope uniqueness as create: an
		// active sibling already holding the name refuses the update.
		query := tx.Model(&models.Category{}).
			Where("scope_type = ? AND name = ? AND is_active = ? AND id <> ?",
				string(category.ScopeType), category.Name, true, category.ID)
		if category.ScopeID != nil {
			query = query.Where("scope_id = ?", *category.ScopeID)
		} else {
			query = query.Where("scope_id IS NULL")
		}

		var count int64
		if err := query.Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return domainerrors.ErrConflict
		}

		result := tx.Model(&models.Category{}).
			Where("id = ? AND is_active = ?", category.ID, true).
			Updates(map[string]interface{}{
				"name":        category.Name,
				"description": category.Description,
				"color":       category.Color,
				"updated_at":  time.Now(),
			})
		if result.Error != nil {
			if isDuplicateKey(result.Error) {
				return domainerrors.ErrConflict
			}
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerrors.ErrNotFound
		}
		return nil
	})
}

func (r *CategoryRepositoryImpl) SoftDelete(ctx context.Context, id uuid.UUID) error {
	result := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.Category{}).
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

func (r *CategoryRepositoryImpl) ListVisible(ctx context.Context, userID uuid.UUID, teamIDs []uuid.UUID) ([]*entities.Category, error) {
	db := GetDB(ctx, r.db).WithContext(ctx).Where("is_active = ?", true)

	// The three scope partitions are disjoint, so the union has no duplicates.
	if len(teamIDs) > 0 {
		db = db.Where(
			"scope_type = ? OR (scope_type = ? AND scope_id = ?) OR (scope_type = ? AND scope_id IN ?)",
			string(entities.ScopePublic),
			string(entities.ScopePersonal), userID,
			string(entities.ScopeTeam), teamIDs,
		)
	} else {
		db = db.Where(
			"scope_type = ? OR (scope_type = ? AND scope_id = ?)",
			string(entities.ScopePublic),
			string(entities.ScopePersonal), userID,
		)
	}

	var ms []models.Category
	if err := db.Order("name ASC").Find(&ms).Error; err != nil {
		return nil, err
	}

	items := make([]*entities.Category, 0, len(ms))
	for i := range ms {
		items = append(items, r.toEntity(&ms[i]))
	}
	return items, nil
}

func (r *CategoryRepositoryImpl) toEntity(m *models.Category) *entities.Category {
	var deletedAt *time.Time
	if m.DeletedAt.Valid {
		deletedAt = &m.DeletedAt.Time
	}
	return &entities.Category{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		Color:       m.Color,
		ScopeType:   entities.ScopeType(m.ScopeType),
		ScopeID:     m.ScopeID,
		CreatedBy:   m.CreatedBy,
		IsActive:    m.IsActive,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
		DeletedAt:   deletedAt,
	}
}

func (r *CategoryRepositoryImpl) toModel(e *entities.Category) *models.Category {
	return &models.Category{
		ID:          utils.EnsureUUID(e.ID),
		Name:        e.Name,
		Description: e.Description,
		Color:       e.Color,
		ScopeType:   string(e.ScopeType),
		ScopeID:     e.ScopeID,
		CreatedBy:   e.CreatedBy,
		IsActive:    true,
	}
}
