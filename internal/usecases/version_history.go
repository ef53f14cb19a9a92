package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
	"prompthub.backend/internal/domain/entities"
	domainerrors "prompthub.backend/internal/domain/errors"
	"prompthub.backend/internal/domain/repositories"
	"prompthub.backend/internal/metrics"
	"prompthub.backend/pkg/logger"
	"prompthub.backend/pkg/utils"
)

// VersionHistoryEngine maintains the append-only per-prompt snapshot ledger.
// Version numbers per prompt are the contiguous integers 1..CurrentVersion,
// strictly increasing and never reused; the materialized content on the
// prompt row is a projection of the highest-numbered ledger entry and is
// refreshed inside the same atomic unit as every append.
type VersionHistoryEngine struct {
	promptRepo repositories.PromptRepository
	resolver   *ScopeResolver
}

// NewVersionHistoryEngine creates a new version history engine
func NewVersionHistoryEngine(promptRepo repositories.PromptRepository, resolver *ScopeResolver) *VersionHistoryEngine {
	return &VersionHistoryEngine{promptRepo: promptRepo, resolver: resolver}
}

// CreateInitial writes the prompt together with its version-1 ledger entry.
func (e *VersionHistoryEngine) CreateInitial(ctx context.Context, prompt *entities.Prompt, changeLog null.String) error {
	if err := e.promptRepo.CreateWithVersion(ctx, prompt, changeLog); err != nil {
		metrics.RecordVersionWrite("create", writeStatus(err))
		return err
	}
	metrics.RecordVersionWrite("create", "success")
	return nil
}

// Amend appends a new version whose snapshot is the current one with the
// patch overlaid; unspecified fields inherit the previous value. Owner-only.
func (e *VersionHistoryEngine) Amend(ctx context.Context, principalID uuid.UUID, prompt *entities.Prompt, patch entities.PromptPatch, changeLog null.String) (*entities.PromptVersion, error) {
	if !e.resolver.CanWritePrompt(principalID, prompt) {
		return nil, domainerrors.Forbidden("only the prompt owner can update it")
	}

	next := patch.Overlay(prompt.Content)
	return e.append(ctx, "amend", prompt.ID, principalID, next, changeLog)
}

// Revert appends a new version that is a verbatim copy of the target
// snapshot. The new entry gets max+1, never the target's number. Owner-only.
func (e *VersionHistoryEngine) Revert(ctx context.Context, principalID uuid.UUID, prompt *entities.Prompt, targetVersion int, changeLog null.String) (*entities.PromptVersion, error) {
	if !e.resolver.CanWritePrompt(principalID, prompt) {
		return nil, domainerrors.Forbidden("only the prompt owner can revert it")
	}

	target, err := e.promptRepo.GetVersion(ctx, prompt.ID, targetVersion)
	if err != nil {
		return nil, err
	}

	if !changeLog.Valid {
		changeLog = null.StringFrom(fmt.Sprintf("Reverted to version %d", targetVersion))
	}
	return e.append(ctx, "revert", prompt.ID, principalID, target.Content, changeLog)
}

// History returns the ledger most recent first.
func (e *VersionHistoryEngine) History(ctx context.Context, promptID uuid.UUID, page, limit int) ([]*entities.PromptVersion, utils.PaginationMeta, error) {
	if limit <= 0 {
		limit = DefaultHistoryPageSize
	}
	params := utils.GetPaginationParams(page, limit)

	versions, total, err := e.promptRepo.ListVersions(ctx, promptID, params.Limit, params.CalculateOffset())
	if err != nil {
		return nil, utils.PaginationMeta{}, err
	}
	return versions, utils.CalculateMeta(total, params.Page, params.Limit), nil
}

func (e *VersionHistoryEngine) append(ctx context.Context, operation string, promptID, authorID uuid.UUID, content entities.PromptContent, changeLog null.String) (*entities.PromptVersion, error) {
	version, err := e.promptRepo.AppendVersion(ctx, promptID, authorID, content, changeLog)
	if err != nil {
		metrics.RecordVersionWrite(operation, writeStatus(err))
		if errors.Is(err, domainerrors.ErrInvariantViolation) {
			// A non-monotonic write attempt is a defect, never retried here.
			metrics.InvariantViolationsTotal.Inc()
			logger.Error(ctx, "version ledger invariant violation",
				zap.String("prompt_id", promptID.String()),
				zap.String("operation", operation),
			)
			return nil, domainerrors.InternalError(err)
		}
		return nil, err
	}
	metrics.RecordVersionWrite(operation, "success")
	return version, nil
}

func writeStatus(err error) string {
	if errors.Is(err, domainerrors.ErrConflict) {
		return "conflict"
	}
	return "error"
}
