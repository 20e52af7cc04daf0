package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/schoolkart/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newCategoryFixture() (*MockCategoryRepository, *CategoryService) {
	categories := new(MockCategoryRepository)
	service := NewCategoryService(categories, zap.NewNop())
	return categories, service
}

func TestCategoryService_Create(t *testing.T) {
	t.Run("create category", func(t *testing.T) {
		categories, service := newCategoryFixture()
		ctx := context.Background()

		categories.On("ExistsByName", ctx, "Stationery").Return(false, nil)
		categories.On("Save", ctx, mock.AnythingOfType("*catalog.Category")).Return(nil)

		result, err := service.Create(ctx, testScope(), CreateCategoryRequest{
			Name:        "Stationery",
			Description: "Notebooks, pens and paper",
		})

		require.NoError(t, err)
		assert.Equal(t, "Stationery", result.Name)
		assert.False(t, result.IsGlobal)
		categories.AssertExpectations(t)
	})

	t.Run("reject duplicate name", func(t *testing.T) {
		categories, service := newCategoryFixture()
		ctx := context.Background()

		categories.On("ExistsByName", ctx, "Stationery").Return(true, nil)

		_, err := service.Create(ctx, testScope(), CreateCategoryRequest{Name: "Stationery"})

		var derr *shared.DomainError
		require.True(t, errors.As(err, &derr))
		assert.Equal(t, "ALREADY_EXISTS", derr.Code)
		categories.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestCategoryService_Update(t *testing.T) {
	t.Run("update owned category", func(t *testing.T) {
		categories, service := newCategoryFixture()
		ctx := context.Background()
		category := newTestCategory()

		categories.On("FindByIDUnscoped", ctx, category.ID).Return(category, nil)
		categories.On("Save", ctx, category).Return(nil)

		inactive := false
		result, err := service.Update(ctx, testScope(), category.ID, UpdateCategoryRequest{
			Name:     "School Stationery",
			IsActive: &inactive,
		})

		require.NoError(t, err)
		assert.Equal(t, "School Stationery", result.Name)
		assert.False(t, result.IsActive)
	})

	t.Run("global categories are superadmin-only", func(t *testing.T) {
		categories, service := newCategoryFixture()
		ctx := context.Background()
		category := newTestCategory()
		category.CreatedBy = nil

		categories.On("FindByIDUnscoped", ctx, category.ID).Return(category, nil)

		_, err := service.Update(ctx, testScope(), category.ID, UpdateCategoryRequest{Name: "Books"})

		assert.True(t, errors.Is(err, shared.ErrForbidden))
		categories.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestCategoryService_Delete(t *testing.T) {
	t.Run("delete empty category", func(t *testing.T) {
		categories, service := newCategoryFixture()
		ctx := context.Background()
		category := newTestCategory()

		categories.On("FindByIDUnscoped", ctx, category.ID).Return(category, nil)
		categories.On("CountProducts", ctx, category.ID).Return(int64(0), nil)
		categories.On("Delete", ctx, category.ID).Return(nil)

		err := service.Delete(ctx, testScope(), category.ID)

		require.NoError(t, err)
		categories.AssertExpectations(t)
	})

	t.Run("reject when products still reference it", func(t *testing.T) {
		categories, service := newCategoryFixture()
		ctx := context.Background()
		category := newTestCategory()

		categories.On("FindByIDUnscoped", ctx, category.ID).Return(category, nil)
		categories.On("CountProducts", ctx, category.ID).Return(int64(4), nil)

		err := service.Delete(ctx, testScope(), category.ID)

		var derr *shared.DomainError
		require.True(t, errors.As(err, &derr))
		assert.Equal(t, "BUSINESS_RULE", derr.Code)
		categories.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("unknown category", func(t *testing.T) {
		categories, service := newCategoryFixture()
		ctx := context.Background()
		missing := uuid.New()

		categories.On("FindByIDUnscoped", ctx, missing).Return(nil, shared.ErrNotFound)

		err := service.Delete(ctx, testScope(), missing)

		assert.True(t, errors.Is(err, shared.ErrNotFound))
	})
}
