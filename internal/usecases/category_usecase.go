package usecases

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"prompthub.backend/internal/domain/entities"
	domainerrors "prompthub.backend/internal/domain/errors"
	"prompthub.backend/internal/domain/repositories"
)

// CategoryUsecase coordinates category operations: input validation, scope
// resolution through the resolver, and persistence.
type CategoryUsecase struct {
	categoryRepo repositories.CategoryRepository
	resolver     *ScopeResolver
}

// NewCategoryUsecase creates a new category usecase
func NewCategoryUsecase(categoryRepo repositories.CategoryRepository, resolver *ScopeResolver) *CategoryUsecase {
	return &CategoryUsecase{
		categoryRepo: categoryRepo,
		resolver:     resolver,
	}
}

// CreateCategory validates input, resolves the scope discriminant and
// creates the category. Duplicate (scopeType, scopeID, name) is ErrConflict.
func (u *CategoryUsecase) CreateCategory(ctx context.Context, principalID uuid.UUID, input *entities.CreateCategoryInput) (*entities.Category, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" || utf8.RuneCountInString(name) > MaxNameLength {
		return nil, domainerrors.Validation("category name must be between 1 and 100 characters")
	}
	if !input.ScopeType.Valid() {
		return nil, domainerrors.Validation("invalid scope type")
	}
	if input.Color != "" && !colorPattern.MatchString(input.Color) {
		return nil, domainerrors.Validation("color must be a hex value like #1A2B3C")
	}

	if input.ScopeType == entities.ScopeTeam {
		if input.TeamID == nil {
			return nil, domainerrors.Validation("team id is required for team-scoped categories")
		}
		member, err := u.resolver.HasActiveMembership(ctx, *input.TeamID, principalID)
		if err != nil {
			return nil, err
		}
		if !member {
			return nil, domainerrors.Forbidden("not a member of this team")
		}
	}

	category := &entities.Category{
		Name:      name,
		ScopeType: input.ScopeType,
		ScopeID:   entities.ResolveScopeID(input.ScopeType, principalID, input.TeamID),
		CreatedBy: principalID,
		IsActive:  true,
	}
	if input.Description != "" {
		category.Description = null.StringFrom(input.Description)
	}
	if input.Color != "" {
		category.Color = null.StringFrom(input.Color)
	}

	if err := u.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// GetCategory returns the category when the principal may see it.
func (u *CategoryUsecase) GetCategory(ctx context.Context, principalID, categoryID uuid.UUID) (*entities.Category, error) {
	category, err := u.categoryRepo.GetByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	allowed, err := u.resolver.CanReadCategory(ctx, principalID, category)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, domainerrors.Forbidden("no access to this category")
	}
	return category, nil
}

// ListCategories returns the principal's visible set: public categories,
// own personal categories, and categories of teams the principal is in.
func (u *CategoryUsecase) ListCategories(ctx context.Context, principalID uuid.UUID) ([]*entities.Category, error) {
	teamIDs, err := u.resolver.ActiveTeamIDs(ctx, principalID)
	if err != nil {
		return nil, err
	}
	return u.categoryRepo.ListVisible(ctx, principalID, teamIDs)
}

// UpdateCategory applies a partial update. Creator-only.
func (u *CategoryUsecase) UpdateCategory(ctx context.Context, principalID, categoryID uuid.UUID, input *entities.UpdateCategoryInput) (*entities.Category, error) {
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" || utf8.RuneCountInString(name) > MaxNameLength {
			return nil, domainerrors.Validation("category name must be between 1 and 100 characters")
		}
	}
	if input.Color != nil && *input.Color != "" && !colorPattern.MatchString(*input.Color) {
		return nil, domainerrors.Validation("color must be a hex value like #1A2B3C")
	}

	category, err := u.categoryRepo.GetByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if !u.resolver.CanWriteCategory(principalID, category) {
		return nil, domainerrors.Forbidden("only the category creator can update it")
	}

	if input.Name != nil {
		category.Name = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		category.Description = null.StringFrom(*input.Description)
	}
	if input.Color != nil {
		if *input.Color == "" {
			category.Color = null.String{}
		} else {
			category.Color = null.StringFrom(*input.Color)
		}
	}

	if err := u.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory soft-deletes the category. Creator-only.
func (u *CategoryUsecase) DeleteCategory(ctx context.Context, principalID, categoryID uuid.UUID) error {
	category, err := u.categoryRepo.GetByID(ctx, categoryID)
	if err != nil {
		return err
	}
	if !u.resolver.CanWriteCategory(principalID, category) {
		return domainerrors.Forbidden("only the category creator can delete it")
	}
	return u.categoryRepo.SoftDelete(ctx, categoryID)
}
