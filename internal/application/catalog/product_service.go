package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/schoolkart/backend/internal/domain/catalog"
	"github.com/schoolkart/backend/internal/domain/identity"
	"github.com/schoolkart/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var defaultGstRate = decimal.NewFromInt(18)

// ProductService handles product and stock management
type ProductService struct {
	productRepo  catalog.ProductRepository
	categoryRepo catalog.CategoryRepository
	logger       *zap.Logger
}

// NewProductService creates a new ProductService
func NewProductService(productRepo catalog.ProductRepository, categoryRepo catalog.CategoryRepository, logger *zap.Logger) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		logger:       logger.Named("product"),
	}
}

// Create registers a new product
func (s *ProductService) Create(ctx context.Context, scope identity.Scope, req CreateProductRequest) (*ProductResponse, error) {
	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Invalid category ID")
	}
	if _, err := s.categoryRepo.FindByID(ctx, scope, categoryID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("VALIDATION_ERROR", "Category not found")
		}
		return nil, err
	}

	gstRate := defaultGstRate
	if req.GstRate != nil {
		gstRate = *req.GstRate
	}

	product, err := catalog.NewProduct(scope.AdminID, req.Name, categoryID, req.BasePrice, gstRate, catalog.Unit(req.Unit))
	if err != nil {
		return nil, err
	}
	product.Description = req.Description
	if req.Stock > 0 {
		product.Stock = req.Stock
	}
	if req.MinStockLevel != nil {
		product.MinStockLevel = *req.MinStockLevel
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info("product created",
		zap.String("product_id", product.ID.String()),
		zap.String("name", product.Name))

	resp := ToProductResponse(product)
	return &resp, nil
}

// GetByID retrieves a product visible to the scope
func (s *ProductService) GetByID(ctx context.Context, scope identity.Scope, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	resp := ToProductResponse(product)
	return &resp, nil
}

// List retrieves products visible to the scope
func (s *ProductService) List(ctx context.Context, scope identity.Scope, filter shared.Filter) (shared.Paginated[ProductResponse], error) {
	page, err := s.productRepo.FindAll(ctx, scope, filter)
	if err != nil {
		return shared.Paginated[ProductResponse]{}, err
	}

	items := make([]ProductResponse, len(page.Items))
	for i, product := range page.Items {
		items[i] = ToProductResponse(product)
	}
	return shared.NewPaginated(items, page.Total, page.Page, page.Limit), nil
}

// ListLowStock retrieves active products at or below their reorder level
func (s *ProductService) ListLowStock(ctx context.Context, scope identity.Scope) ([]ProductResponse, error) {
	products, err := s.productRepo.FindLowStock(ctx, scope)
	if err != nil {
		return nil, err
	}
	items := make([]ProductResponse, len(products))
	for i, product := range products {
		items[i] = ToProductResponse(product)
	}
	return items, nil
}

// Update updates a product's details
func (s *ProductService) Update(ctx context.Context, scope identity.Scope, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.findOwned(ctx, scope, id)
	if err != nil {
		return nil, err
	}

	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Invalid category ID")
	}
	if categoryID != product.CategoryID {
		if _, err := s.categoryRepo.FindByID(ctx, scope, categoryID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("VALIDATION_ERROR", "Category not found")
			}
			return nil, err
		}
	}

	if err := product.Update(req.Name, req.Description, categoryID, req.BasePrice, req.GstRate,
		catalog.Unit(req.Unit), req.MinStockLevel); err != nil {
		return nil, err
	}
	if req.IsActive != nil {
		product.SetActive(*req.IsActive)
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	resp := ToProductResponse(product)
	return &resp, nil
}

// AdjustStock applies a manual stock correction. Negative quantities
// cannot drive stock below zero.
func (s *ProductService) AdjustStock(ctx context.Context, scope identity.Scope, id uuid.UUID, quantity int) (*ProductResponse, error) {
	product, err := s.findOwned(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	if quantity == 0 {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Quantity cannot be zero")
	}

	if quantity > 0 {
		err = s.productRepo.AddStock(ctx, product.ID, quantity)
	} else {
		err = s.productRepo.ReserveStock(ctx, product.ID, -quantity)
	}
	if err != nil {
		return nil, err
	}

	s.logger.Info("stock adjusted",
		zap.String("product_id", product.ID.String()),
		zap.Int("quantity", quantity))

	return s.GetByID(ctx, scope, id)
}

// Delete removes a product
func (s *ProductService) Delete(ctx context.Context, scope identity.Scope, id uuid.UUID) error {
	product, err := s.findOwned(ctx, scope, id)
	if err != nil {
		return err
	}
	if err := s.productRepo.Delete(ctx, product.ID); err != nil {
		return err
	}
	s.logger.Info("product deleted", zap.String("product_id", id.String()))
	return nil
}

func (s *ProductService) findOwned(ctx context.Context, scope identity.Scope, id uuid.UUID) (*catalog.Product, error) {
	product, err := s.productRepo.FindByIDUnscoped(ctx, id)
	if err != nil {
		return nil, err
	}
	if !scope.Owns(product.CreatedBy) {
		return nil, shared.ErrForbidden
	}
	return product, nil
}
