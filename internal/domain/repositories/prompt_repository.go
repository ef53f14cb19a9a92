package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"prompthub.backend/internal/domain/entities"
)

type PromptRepository interface {
	// CreateWithVersion inserts the prompt row and its version-1 ledger
	// entry atomically and sets CurrentVersion to 1.
	CreateWithVersion(ctx context.Context, prompt *entities.Prompt, changeLog null.String) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Prompt, error)
	List(ctx context.Context, userID uuid.UUID, filter entities.ListPromptsFilter, limit, offset int) ([]*entities.Prompt, int64, error)
	SoftDelete(ctx context.Context, id uuid.UUID) error

	// AppendVersion assigns the next version number for the prompt, inserts
	// the ledger entry, and refreshes the materialized content fields, all
	// inside one per-prompt linearized unit. Two concurrent appends on the
	// same prompt never receive the same number; the loser gets ErrConflict.
	AppendVersion(ctx context.Context, promptID, authorID uuid.UUID, content entities.PromptContent, changeLog null.String) (*entities.PromptVersion, error)
	GetVersion(ctx context.Context, promptID uuid.UUID, version int) (*entities.PromptVersion, error)
	// ListVersions returns the ledger most recent first.
	ListVersions(ctx context.Context, promptID uuid.UUID, limit, offset int) ([]*entities.PromptVersion, int64, error)
}
