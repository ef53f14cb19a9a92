package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"prompthub.backend/internal/domain/entities"
	domainerrors "prompthub.backend/internal/domain/errors"
	"prompthub.backend/internal/infrastructure/models"
	"prompthub.backend/pkg/utils"
)

type PromptRepositoryImpl struct {
	db *gorm.DB
}

func NewPromptRepository(db *gorm.DB) *PromptRepositoryImpl {
	return &PromptRepositoryImpl{db: db}
}

func (r *PromptRepositoryImpl) CreateWithVersion(ctx context.Context, prompt *entities.Prompt, changeLog null.String) error {
	db := GetDB(ctx, r.db).WithContext(ctx)

	return db.Transaction(func(tx *gorm.DB) error {
		m := r.toModel(prompt)
		m.CurrentVersion = 1
		if err := tx.Create(m).Error; err != nil {
			return err
		}

		v := &models.PromptVersion{
			ID:          utils.GenerateUUIDv7(),
			PromptID:    m.ID,
			Version:     1,
			Title:       m.Title,
			Content:     m.Content,
			Description: m.Description,
			Category:    m.Category,
			Tags:        m.Tags,
			AuthorID:    prompt.OwnerID,
			ChangeLog:   changeLog,
		}
		if err := tx.Create(v).Error; err != nil {
			if isDuplicateKey(err) {
				return domainerrors.ErrConflict
			}
			return err
		}

		prompt.ID = m.ID
		prompt.CurrentVersion = 1
		prompt.CreatedAt = m.CreatedAt
		prompt.UpdatedAt = m.UpdatedAt
		return nil
	})
}

func (r *PromptRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*entities.Prompt, error) {
	var m models.Prompt
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

func (r *PromptRepositoryImpl) List(ctx context.Context, userID uuid.UUID, filter entities.ListPromptsFilter, limit, offset int) ([]*entities.Prompt, int64, error) {
	db := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.Prompt{}).
		Where("is_active = ?", true).
		Where("owner_id = ? OR is_public = ?", userID, true)
	if filter.ProjectID != nil {
		db = db.Where("project_id = ?", *filter.ProjectID)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ms []models.Prompt
	query := db.Order("created_at DESC").Offset(offset)
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&ms).Error; err != nil {
		return nil, 0, err
	}

	items := make([]*entities.Prompt, 0, len(ms))
	for i := range ms {
		items = append(items, r.toEntity(&ms[i]))
	}
	return items, total, nil
}

func (r *PromptRepositoryImpl) SoftDelete(ctx context.Context, id uuid.UUID) error {
	result := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.Prompt{}).
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

// AppendVersion linearizes version assignment per prompt: the prompt row is
// locked for the duration of the read-max-then-insert step, and the
// (prompt_id, version) unique index turns any race that slips through into
// ErrConflict. The materialized content columns are refreshed in the same
// transaction so they can never drift from the ledger.
func (r *PromptRepositoryImpl) AppendVersion(ctx context.Context, promptID, authorID uuid.UUID, content entities.PromptContent, changeLog null.String) (*entities.PromptVersion, error) {
	db := GetDB(ctx, r.db).WithContext(ctx)

	var out *entities.PromptVersion
	err := db.Transaction(func(tx *gorm.DB) error {
		query := tx.Where("id = ? AND is_active = ?", promptID, true)
		if tx.Dialector.Name() == "postgres" {
			// sqlite (tests) serializes writers already and rejects FOR UPDATE.
			query = query.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var m models.Prompt
		if err := query.First(&m).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerrors.ErrNotFound
			}
			return err
		}

		var maxVersion int
		if err := tx.Model(&models.PromptVersion{}).
			Where("prompt_id = ?", promptID).
			Select("COALESCE(MAX(version), 0)").
			Scan(&maxVersion).Error; err != nil {
			return err
		}
		if maxVersion != m.CurrentVersion {
			return domainerrors.ErrInvariantViolation
		}

		next := maxVersion + 1
		tags := tagsToJSON(content.Tags)
		v := &models.PromptVersion{
			ID:          utils.GenerateUUIDv7(),
			PromptID:    promptID,
			Version:     next,
			Title:       content.Title,
			Content:     content.Content,
			Description: content.Description,
			Category:    content.Category,
			Tags:        tags,
			AuthorID:    authorID,
			ChangeLog:   changeLog,
		}
		if err := tx.Create(v).Error; err != nil {
			if isDuplicateKey(err) {
				return domainerrors.ErrConflict
			}
			return err
		}

		updates := map[string]interface{}{
			"current_version": next,
			"title":           content.Title,
			"content":         content.Content,
			"description":     content.Description,
			"category":        content.Category,
			"tags":            tags,
			"updated_at":      time.Now(),
		}
		if err := tx.Model(&models.Prompt{}).
			Where("id = ?", promptID).
			Updates(updates).Error; err != nil {
			return err
		}

		out = r.versionToEntity(v)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PromptRepositoryImpl) GetVersion(ctx context.Context, promptID uuid.UUID, version int) (*entities.PromptVersion, error) {
	var m models.PromptVersion
	if err := GetDB(ctx, r.db).WithContext(ctx).
		Where("prompt_id = ? AND version = ?", promptID, version).
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.versionToEntity(&m), nil
}

func (r *PromptRepositoryImpl) ListVersions(ctx context.Context, promptID uuid.UUID, limit, offset int) ([]*entities.PromptVersion, int64, error) {
	db := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.PromptVersion{}).
		Where("prompt_id = ?", promptID)

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ms []models.PromptVersion
	query := db.Order("version DESC").Offset(offset)
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&ms).Error; err != nil {
		return nil, 0, err
	}

	items := make([]*entities.PromptVersion, 0, len(ms))
	for i := range ms {
		items = append(items, r.versionToEntity(&ms[i]))
	}
	return items, total, nil
}

func (r *PromptRepositoryImpl) toEntity(m *models.Prompt) *entities.Prompt {
	var deletedAt *time.Time
	if m.DeletedAt.Valid {
		deletedAt = &m.DeletedAt.Time
	}
	return &entities.Prompt{
		ID:             m.ID,
		OwnerID:        m.OwnerID,
		TeamID:         m.TeamID,
		ProjectID:      m.ProjectID,
		ParentID:       m.ParentID,
		IsPublic:       m.IsPublic,
		CurrentVersion: m.CurrentVersion,
		Content: entities.PromptContent{
			Title:       m.Title,
			Content:     m.Content,
			Description: m.Description,
			Category:    m.Category,
			Tags:        tagsFromJSON(m.Tags),
		},
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
		DeletedAt: deletedAt,
	}
}

func (r *PromptRepositoryImpl) toModel(e *entities.Prompt) *models.Prompt {
	return &models.Prompt{
		ID:             utils.EnsureUUID(e.ID),
		OwnerID:        e.OwnerID,
		TeamID:         e.TeamID,
		ProjectID:      e.ProjectID,
		ParentID:       e.ParentID,
		IsPublic:       e.IsPublic,
		CurrentVersion: e.CurrentVersion,
		Title:          e.Content.Title,
		Content:        e.Content.Content,
		Description:    e.Content.Description,
		Category:       e.Content.Category,
		Tags:           tagsToJSON(e.Content.Tags),
		IsActive:       true,
	}
}

func (r *PromptRepositoryImpl) versionToEntity(m *models.PromptVersion) *entities.PromptVersion {
	return &entities.PromptVersion{
		ID:       m.ID,
		PromptID: m.PromptID,
		Version:  m.Version,
		Content: entities.PromptContent{
			Title:       m.Title,
			Content:     m.Content,
			Description: m.Description,
			Category:    m.Category,
			Tags:        tagsFromJSON(m.Tags),
		},
		AuthorID:  m.AuthorID,
		ChangeLog: m.ChangeLog,
		CreatedAt: m.CreatedAt,
	}
}

func tagsToJSON(tags []string) null.JSON {
	if len(tags) == 0 {
		return null.JSON{}
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return null.JSON{}
	}
	return null.JSONFrom(b)
}

func tagsFromJSON(j null.JSON) []string {
	if !j.Valid {
		return nil
	}
	var tags []string
	if err := json.Unmarshal(j.JSON, &tags); err != nil {
		return nil
	}
	return tags
}
