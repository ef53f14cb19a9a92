package repositories

import (
	"context"

	"github.com/google/uuid"
	"prompthub.backend/internal/domain/entities"
)

type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
}
