package usecases_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"prompthub.backend/internal/domain/entities"
	domainerrors "prompthub.backend/internal/domain/errors"
	"prompthub.backend/internal/usecases"
)

func newCategoryUsecase(categoryRepo *MockCategoryRepository, membershipRepo *MockMembershipRepository) *usecases.CategoryUsecase {
	resolver := usecases.NewScopeResolver(membershipRepo, nil)
	return usecases.NewCategoryUsecase(categoryRepo, resolver)
}

func TestCategoryUsecase_CreateCategory_Personal(t *testing.T) {
	categoryRepo := new(MockCategoryRepository)
	uc := newCategoryUsecase(categoryRepo, new(MockMembershipRepository))

	principalID := uuid.New()
	categoryRepo.On("Create", mock.Anything, mock.MatchedBy(func(c *entities.Category) bool {
		return c.ScopeType == entities.ScopePersonal &&
			c.ScopeID != nil && *c.ScopeID == principalID &&
			c.CreatedBy == principalID
	})).Return(nil).Once()

	category, err := uc.CreateCategory(context.Background(), principalID, &entities.CreateCategoryInput{
		Name:      "Dev",
		ScopeType: entities.ScopePersonal,
		Color:     "#1A2B3C",
	})
	assert.NoError(t, err)
	assert.Equal(t, "Dev", category.Name)
	assert.Equal(t, "#1A2B3C", category.Color.String)
	categoryRepo.AssertExpectations(t)
}

// Name length is counted in characters, not bytes: a 60-character CJK name
// is 180 bytes but well within the 100-character bound.
func TestCategoryUsecase_CreateCategory_MultibyteNameLength(t *testing.T) {
	categoryRepo := new(MockCategoryRepository)
	uc := newCategoryUsecase(categoryRepo, new(MockMembershipRepository))
	principalID := uuid.New()

	categoryRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

	name := strings.Repeat("語", 60)
	category, err := uc.CreateCategory(context.Background(), principalID, &entities.CreateCategoryInput{
		Name:      name,
		ScopeType: entities.ScopePersonal,
	})
	assert.NoError(t, err)
	assert.Equal(t, name, category.Name)

	_, err = uc.CreateCategory(context.Background(), principalID, &entities.CreateCategoryInput{
		Name:      strings.Repeat("語", 101),
		ScopeType: entities.ScopePersonal,
	})
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
	categoryRepo.AssertExpectations(t)
}

func TestCategoryUsecase_CreateCategory_Validation(t *testing.T) {
	categoryRepo := new(MockCategoryRepository)
	uc := newCategoryUsecase(categoryRepo, new(MockMembershipRepository))
	principalID := uuid.New()

	cases := []struct {
		name  string
		input entities.CreateCategoryInput
	}{
		{"empty name", entities.CreateCategoryInput{Name: "  ", ScopeType: entities.ScopePersonal}},
		{"name too long", entities.CreateCategoryInput{Name: string(make([]byte, 101)), ScopeType: entities.ScopePersonal}},
		{"invalid scope", entities.CreateCategoryInput{Name: "Dev", ScopeType: entities.ScopeType("GLOBAL")}},
		{"bad color", entities.CreateCategoryInput{Name: "Dev", ScopeType: entities.ScopePersonal, Color: "#12345"}},
		{"bad color hex", entities.CreateCategoryInput{Name: "Dev", ScopeType: entities.ScopePersonal, Color: "#GGGGGG"}},
		{"team scope without team", entities.CreateCategoryInput{Name: "Dev", ScopeType: entities.ScopeTeam}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.CreateCategory(context.Background(), principalID, &tc.input)
			assert.ErrorIs(t, err, domainerrors.ErrValidation)
		})
	}
	// Validation fails before any persistence call.
	categoryRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCategoryUsecase_CreateCategory_TeamScopeRequiresMembership(t *testing.T) {
	categoryRepo := new(MockCategoryRepository)
	membershipRepo := new(MockMembershipRepository)
	uc := newCategoryUsecase(categoryRepo, membershipRepo)

	principalID, teamID := uuid.New(), uuid.New()
	membershipRepo.On("GetActive", mock.Anything, teamID, principalID).
		Return(nil, domainerrors.ErrNotFound).Once()

	_, err := uc.CreateCategory(context.Background(), principalID, &entities.CreateCategoryInput{
		Name:      "Team cat",
		ScopeType: entities.ScopeTeam,
		TeamID:    &teamID,
	})
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func TestCategoryUsecase_CreateCategory_DuplicateConflict(t *testing.T) {
	categoryRepo := new(MockCategoryRepository)
	uc := newCategoryUsecase(categoryRepo, new(MockMembershipRepository))

	principalID := uuid.New()
	input := &entities.CreateCategoryInput{Name: "Dev", ScopeType: entities.ScopePersonal}

	categoryRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()
	categoryRepo.On("Create", mock.Anything, mock.Anything).Return(domainerrors.ErrConflict).Once()

	_, err := uc.CreateCategory(context.Background(), principalID, input)
	assert.NoError(t, err)

	_, err = uc.CreateCategory(context.Background(), principalID, input)
	assert.ErrorIs(t, err, domainerrors.ErrConflict)
}

func TestCategoryUsecase_UpdateCategory_CreatorOnly(t *testing.T) {
	categoryRepo := new(MockCategoryRepository)
	uc := newCategoryUsecase(categoryRepo, new(MockMembershipRepository))

	creatorID, otherID := uuid.New(), uuid.New()
	category := personalCategory(creatorID)
	categoryRepo.On("GetByID", mock.Anything, category.ID).Return(category, nil).Once()

	name := "Renamed"
	_, err := uc.UpdateCategory(context.Background(), otherID, category.ID, &entities.UpdateCategoryInput{Name: &name})
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
	categoryRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestCategoryUsecase_DeleteCategory_CreatorOnly(t *testing.T) {
	categoryRepo := new(MockCategoryRepository)
	uc := newCategoryUsecase(categoryRepo, new(MockMembershipRepository))

	creatorID := uuid.New()
	category := personalCategory(creatorID)

	categoryRepo.On("GetByID", mock.Anything, category.ID).Return(category, nil).Twice()
	categoryRepo.On("SoftDelete", mock.Anything, category.ID).Return(nil).Once()

	err := uc.DeleteCategory(context.Background(), uuid.New(), category.ID)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)

	err = uc.DeleteCategory(context.Background(), creatorID, category.ID)
	assert.NoError(t, err)
	categoryRepo.AssertExpectations(t)
}

func TestCategoryUsecase_GetCategory_SoftDeletedIsNotFound(t *testing.T) {
	categoryRepo := new(MockCategoryRepository)
	uc := newCategoryUsecase(categoryRepo, new(MockMembershipRepository))

	categoryID := uuid.New()
	categoryRepo.On("GetByID", mock.Anything, categoryID).Return(nil, domainerrors.ErrNotFound).Once()

	_, err := uc.GetCategory(context.Background(), uuid.New(), categoryID)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestCategoryUsecase_ListCategories_UsesVisibleSet(t *testing.T) {
	categoryRepo := new(MockCategoryRepository)
	membershipRepo := new(MockMembershipRepository)
	uc := newCategoryUsecase(categoryRepo, membershipRepo)

	principalID := uuid.New()
	teamID := uuid.New()
	teamIDs := []uuid.UUID{teamID}

	membershipRepo.On("ListTeamIDsByUser", mock.Anything, principalID).Return(teamIDs, nil).Once()
	categoryRepo.On("ListVisible", mock.Anything, principalID, teamIDs).
		Return([]*entities.Category{personalCategory(principalID)}, nil).Once()

	items, err := uc.ListCategories(context.Background(), principalID)
	assert.NoError(t, err)
	assert.Len(t, items, 1)
	categoryRepo.AssertExpectations(t)
}
