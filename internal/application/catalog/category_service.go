package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/schoolkart/backend/internal/domain/catalog"
	"github.com/schoolkart/backend/internal/domain/identity"
	"github.com/schoolkart/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// CategoryService handles category management
type CategoryService struct {
	categoryRepo catalog.CategoryRepository
	logger       *zap.Logger
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categoryRepo catalog.CategoryRepository, logger *zap.Logger) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		logger:       logger.Named("category"),
	}
}

// Create registers a new category
func (s *CategoryService) Create(ctx context.Context, scope identity.Scope, req CreateCategoryRequest) (*CategoryResponse, error) {
	exists, err := s.categoryRepo.ExistsByName(ctx, req.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A category with this name already exists")
	}

	category, err := catalog.NewCategory(scope.AdminID, req.Name, req.Description)
	if err != nil {
		return nil, err
	}
	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}

	resp := ToCategoryResponse(category)
	return &resp, nil
}

// GetByID retrieves a category visible to the scope
func (s *CategoryService) GetByID(ctx context.Context, scope identity.Scope, id uuid.UUID) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	resp := ToCategoryResponse(category)
	return &resp, nil
}

// List retrieves categories visible to the scope, global ones included
func (s *CategoryService) List(ctx context.Context, scope identity.Scope, filter shared.Filter) (shared.Paginated[CategoryResponse], error) {
	page, err := s.categoryRepo.FindAll(ctx, scope, filter)
	if err != nil {
		return shared.Paginated[CategoryResponse]{}, err
	}

	items := make([]CategoryResponse, len(page.Items))
	for i, category := range page.Items {
		items[i] = ToCategoryResponse(category)
	}
	return shared.NewPaginated(items, page.Total, page.Page, page.Limit), nil
}

// Update updates a category. Global categories can only be changed by
// superadmins.
func (s *CategoryService) Update(ctx context.Context, scope identity.Scope, id uuid.UUID, req UpdateCategoryRequest) (*CategoryResponse, error) {
	category, err := s.findOwned(ctx, scope, id)
	if err != nil {
		return nil, err
	}

	if err := category.Update(req.Name, req.Description); err != nil {
		return nil, err
	}
	if req.IsActive != nil {
		category.SetActive(*req.IsActive)
	}

	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}

	resp := ToCategoryResponse(category)
	return &resp, nil
}

// Delete removes a category. Categories with products cannot be deleted.
func (s *CategoryService) Delete(ctx context.Context, scope identity.Scope, id uuid.UUID) error {
	category, err := s.findOwned(ctx, scope, id)
	if err != nil {
		return err
	}

	count, err := s.categoryRepo.CountProducts(ctx, category.ID)
	if err != nil {
		return err
	}
	if count > 0 {
		return shared.NewDomainError("BUSINESS_RULE", "Category has products and cannot be deleted")
	}

	if err := s.categoryRepo.Delete(ctx, category.ID); err != nil {
		return err
	}

	s.logger.Info("category deleted", zap.String("category_id", id.String()))
	return nil
}

func (s *CategoryService) findOwned(ctx context.Context, scope identity.Scope, id uuid.UUID) (*catalog.Category, error) {
	category, err := s.categoryRepo.FindByIDUnscoped(ctx, id)
	if err != nil {
		return nil, err
	}
	if !scope.Owns(category.CreatedBy) {
		return nil, shared.ErrForbidden
	}
	return category, nil
}
