package usecases

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"prompthub.backend/internal/domain/entities"
	domainerrors "prompthub.backend/internal/domain/errors"
	"prompthub.backend/internal/domain/repositories"
	"prompthub.backend/pkg/utils"
)

// PromptUsecase coordinates prompt operations: authorization through the
// resolver, content evolution through the version history engine.
type PromptUsecase struct {
	promptRepo  repositories.PromptRepository
	projectRepo repositories.ProjectRepository
	resolver    *ScopeResolver
	engine      *VersionHistoryEngine
}

// NewPromptUsecase creates a new prompt usecase
func NewPromptUsecase(
	promptRepo repositories.PromptRepository,
	projectRepo repositories.ProjectRepository,
	resolver *ScopeResolver,
	engine *VersionHistoryEngine,
) *PromptUsecase {
	return &PromptUsecase{
		promptRepo:  promptRepo,
		projectRepo: projectRepo,
		resolver:    resolver,
		engine:      engine,
	}
}

// CreatePrompt validates input and creates the prompt with its version-1
// ledger entry.
func (u *PromptUsecase) CreatePrompt(ctx context.Context, principalID uuid.UUID, input *entities.CreatePromptInput) (*entities.Prompt, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" || utf8.RuneCountInString(title) > MaxTitleLength {
		return nil, domainerrors.Validation("prompt title must be between 1 and 200 characters")
	}
	if strings.TrimSpace(input.Content) == "" {
		return nil, domainerrors.Validation("prompt content must not be empty")
	}

	if input.TeamID != nil {
		member, err := u.resolver.HasActiveMembership(ctx, *input.TeamID, principalID)
		if err != nil {
			return nil, err
		}
		if !member {
			return nil, domainerrors.Forbidden("not a member of this team")
		}
	}
	if input.ProjectID != nil {
		project, err := u.projectRepo.GetByID(ctx, *input.ProjectID)
		if err != nil {
			return nil, err
		}
		allowed, err := u.resolver.CanReadProject(ctx, principalID, project)
		if err != nil {
			return nil, err
		}
		if !allowed {
			return nil, domainerrors.Forbidden("no access to this project")
		}
	}

	content := entities.PromptContent{
		Title:   title,
		Content: input.Content,
		Tags:    input.Tags,
	}
	if input.Description != "" {
		content.Description = null.StringFrom(input.Description)
	}
	if input.Category != "" {
		content.Category = null.StringFrom(input.Category)
	}

	prompt := &entities.Prompt{
		OwnerID:   principalID,
		TeamID:    input.TeamID,
		ProjectID: input.ProjectID,
		IsPublic:  input.IsPublic,
		Content:   content,
		IsActive:  true,
	}

	if err := u.engine.CreateInitial(ctx, prompt, null.StringFrom("Initial version")); err != nil {
		return nil, err
	}
	return prompt, nil
}

// GetPrompt returns the prompt when the principal may see it.
func (u *PromptUsecase) GetPrompt(ctx context.Context, principalID, promptID uuid.UUID) (*entities.Prompt, error) {
	prompt, err := u.promptRepo.GetByID(ctx, promptID)
	if err != nil {
		return nil, err
	}

	allowed, err := u.resolver.CanReadPrompt(ctx, principalID, prompt)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, domainerrors.Forbidden("no access to this prompt")
	}
	return prompt, nil
}

// ListPrompts returns the principal's own prompts plus public ones.
func (u *PromptUsecase) ListPrompts(ctx context.Context, principalID uuid.UUID, filter entities.ListPromptsFilter, page, limit int) ([]*entities.Prompt, utils.PaginationMeta, error) {
	params := utils.GetPaginationParams(page, limit)
	prompts, total, err := u.promptRepo.List(ctx, principalID, filter, params.Limit, params.CalculateOffset())
	if err != nil {
		return nil, utils.PaginationMeta{}, err
	}
	return prompts, utils.CalculateMeta(total, params.Page, params.Limit), nil
}

// UpdatePrompt appends a new version with the patch applied. Owner-only;
// the patch must change at least one field.
func (u *PromptUsecase) UpdatePrompt(ctx context.Context, principalID, promptID uuid.UUID, patch entities.PromptPatch, changeLog string) (*entities.PromptVersion, error) {
	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" || utf8.RuneCountInString(title) > MaxTitleLength {
			return nil, domainerrors.Validation("prompt title must be between 1 and 200 characters")
		}
	}
	if patch.Content != nil && strings.TrimSpace(*patch.Content) == "" {
		return nil, domainerrors.Validation("prompt content must not be empty")
	}

	prompt, err := u.promptRepo.GetByID(ctx, promptID)
	if err != nil {
		return nil, err
	}

	var log null.String
	if changeLog != "" {
		log = null.StringFrom(changeLog)
	}
	return u.engine.Amend(ctx, principalID, prompt, patch, log)
}

// RevertPrompt appends a new version copying the target snapshot. Owner-only.
func (u *PromptUsecase) RevertPrompt(ctx context.Context, principalID, promptID uuid.UUID, targetVersion int, changeLog string) (*entities.PromptVersion, error) {
	if targetVersion < 1 {
		return nil, domainerrors.Validation("target version must be a positive integer")
	}

	prompt, err := u.promptRepo.GetByID(ctx, promptID)
	if err != nil {
		return nil, err
	}

	var log null.String
	if changeLog != "" {
		log = null.StringFrom(changeLog)
	}
	return u.engine.Revert(ctx, principalID, prompt, targetVersion, log)
}

// History returns the prompt's version ledger, most recent first. Requires
// read access.
func (u *PromptUsecase) History(ctx context.Context, principalID, promptID uuid.UUID, page, limit int) ([]*entities.PromptVersion, utils.PaginationMeta, error) {
	prompt, err := u.promptRepo.GetByID(ctx, promptID)
	if err != nil {
		return nil, utils.PaginationMeta{}, err
	}

	allowed, err := u.resolver.CanReadPrompt(ctx, principalID, prompt)
	if err != nil {
		return nil, utils.PaginationMeta{}, err
	}
	if !allowed {
		return nil, utils.PaginationMeta{}, domainerrors.Forbidden("no access to this prompt")
	}

	return u.engine.History(ctx, promptID, page, limit)
}

// DeletePrompt soft-deletes the prompt; the ledger stays as audit history.
// Owner-only.
func (u *PromptUsecase) DeletePrompt(ctx context.Context, principalID, promptID uuid.UUID) error {
	prompt, err := u.promptRepo.GetByID(ctx, promptID)
	if err != nil {
		return err
	}
	if !u.resolver.CanWritePrompt(principalID, prompt) {
		return domainerrors.Forbidden("only the prompt owner can delete it")
	}
	return u.promptRepo.SoftDelete(ctx, promptID)
}

// ForkPrompt creates a new prompt owned by the principal, seeded from the
// source's current content with ParentID pointing back. Requires read access
// to the source.
func (u *PromptUsecase) ForkPrompt(ctx context.Context, principalID, promptID uuid.UUID) (*entities.Prompt, error) {
	source, err := u.promptRepo.GetByID(ctx, promptID)
	if err != nil {
		return nil, err
	}

	allowed, err := u.resolver.CanReadPrompt(ctx, principalID, source)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, domainerrors.Forbidden("no access to this prompt")
	}

	parentID := source.ID
	fork := &entities.Prompt{
		OwnerID:  principalID,
		ParentID: &parentID,
		IsPublic: false,
		Content:  source.Content,
		IsActive: true,
	}

	changeLog := null.StringFrom(fmt.Sprintf("Forked from prompt %s at version %d", source.ID, source.CurrentVersion))
	if err := u.engine.CreateInitial(ctx, fork, changeLog); err != nil {
		return nil, err
	}
	return fork, nil
}
