package repositories

import (
	"context"

	"github.com/google/uuid"
	"prompthub.backend/internal/domain/entities"
)

type CategoryRepository interface {
	// Create fails with ErrConflict when an active row with the same
	// (scopeType, scopeID, name) already exists.
	Create(ctx context.Context, category *entities.Category) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Category, error)
	Update(ctx context.Context, category *entities.Category) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	// ListVisible returns the union of public categories, the principal's
	// personal categories, and team categories for the given team ids.
	ListVisible(ctx context.Context, userID uuid.UUID, teamIDs []uuid.UUID) ([]*entities.Category, error)
}
