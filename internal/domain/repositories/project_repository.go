package repositories

import (
	"context"

	"github.com/google/uuid"
	"prompthub.backend/internal/domain/entities"
)

type ProjectRepository interface {
	Create(ctx context.Context, project *entities.Project) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Project, error)
	Update(ctx context.Context, project *entities.Project) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	ListVisible(ctx context.Context, userID uuid.UUID, teamIDs []uuid.UUID) ([]*entities.Project, error)
}
