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

// ProjectUsecase coordinates project operations
type ProjectUsecase struct {
	projectRepo repositories.ProjectRepository
	resolver    *ScopeResolver
}

// NewProjectUsecase creates a new project usecase
func NewProjectUsecase(projectRepo repositories.ProjectRepository, resolver *ScopeResolver) *ProjectUsecase {
	return &ProjectUsecase{
		projectRepo: projectRepo,
		resolver:    resolver,
	}
}

// CreateProject creates a project owned by the principal. Attaching a team
// requires an active membership in it.
func (u *ProjectUsecase) CreateProject(ctx context.Context, principalID uuid.UUID, input *entities.CreateProjectInput) (*entities.Project, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" || utf8.RuneCountInString(name) > MaxNameLength {
		return nil, domainerrors.Validation("project name must be between 1 and 100 characters")
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

	project := &entities.Project{
		Name:     name,
		OwnerID:  principalID,
		TeamID:   input.TeamID,
		IsPublic: input.IsPublic,
		IsActive: true,
	}
	if input.Description != "" {
		project.Description = null.StringFrom(input.Description)
	}

	if err := u.projectRepo.Create(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// GetProject returns the project when the principal may see it: public, own,
// or shared with a team the principal is in.
func (u *ProjectUsecase) GetProject(ctx context.Context, principalID, projectID uuid.UUID) (*entities.Project, error) {
	project, err := u.projectRepo.GetByID(ctx, projectID)
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
	return project, nil
}

// ListProjects returns the principal's visible projects.
func (u *ProjectUsecase) ListProjects(ctx context.Context, principalID uuid.UUID) ([]*entities.Project, error) {
	teamIDs, err := u.resolver.ActiveTeamIDs(ctx, principalID)
	if err != nil {
		return nil, err
	}
	return u.projectRepo.ListVisible(ctx, principalID, teamIDs)
}

// UpdateProject applies a partial update. Owner-only, even for team-scoped
// projects.
func (u *ProjectUsecase) UpdateProject(ctx context.Context, principalID, projectID uuid.UUID, input *entities.UpdateProjectInput) (*entities.Project, error) {
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" || utf8.RuneCountInString(name) > MaxNameLength {
			return nil, domainerrors.Validation("project name must be between 1 and 100 characters")
		}
	}

	project, err := u.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if !u.resolver.CanWriteProject(principalID, project) {
		return nil, domainerrors.Forbidden("only the project owner can update it")
	}

	if input.Name != nil {
		project.Name = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		project.Description = null.StringFrom(*input.Description)
	}
	if input.IsPublic != nil {
		project.IsPublic = *input.IsPublic
	}

	if err := u.projectRepo.Update(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// DeleteProject soft-deletes the project. Owner-only.
func (u *ProjectUsecase) DeleteProject(ctx context.Context, principalID, projectID uuid.UUID) error {
	project, err := u.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return err
	}
	if !u.resolver.CanWriteProject(principalID, project) {
		return domainerrors.Forbidden("only the project owner can delete it")
	}
	return u.projectRepo.SoftDelete(ctx, projectID)
}
