package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/schoolkart/backend/internal/domain/catalog"
	"github.com/schoolkart/backend/internal/domain/identity"
	"github.com/schoolkart/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormProductRepository implements catalog.ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindByID finds a product visible to the scope
func (r *GormProductRepository) FindByID(ctx context.Context, scope identity.Scope, id uuid.UUID) (*catalog.Product, error) {
	var product catalog.Product
	if err := scoped(r.db.WithContext(ctx), scope).
		Preload("Category").
		First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// FindByIDUnscoped finds a product regardless of ownership
func (r *GormProductRepository) FindByIDUnscoped(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	var product catalog.Product
	if err := r.db.WithContext(ctx).
		Preload("Category").
		First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// FindByIDs finds products by IDs within the scope. Missing or foreign
// IDs are simply absent from the result.
func (r *GormProductRepository) FindByIDs(ctx context.Context, scope identity.Scope, ids []uuid.UUID) ([]*catalog.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var products []*catalog.Product
	if err := scoped(r.db.WithContext(ctx), scope).
		Where("id IN ?", ids).
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// FindAll finds products visible to the scope with filtering
func (r *GormProductRepository) FindAll(ctx context.Context, scope identity.Scope, filter shared.Filter) (shared.Paginated[*catalog.Product], error) {
	filter.Normalize()

	query := scoped(r.db.WithContext(ctx).Model(&catalog.Product{}), scope)
	query = r.applyFilter(query, filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return shared.Paginated[*catalog.Product]{}, err
	}

	var products []*catalog.Product
	if err := query.
		Preload("Category").
		Order("name ASC").
		Offset(filter.Offset()).
		Limit(filter.Limit).
		Find(&products).Error; err != nil {
		return shared.Paginated[*catalog.Product]{}, err
	}

	return shared.NewPaginated(products, total, filter.Page, filter.Limit), nil
}

// FindLowStock finds active products at or below their minimum stock level
func (r *GormProductRepository) FindLowStock(ctx context.Context, scope identity.Scope) ([]*catalog.Product, error) {
	var products []*catalog.Product
	if err := scoped(r.db.WithContext(ctx), scope).
		Preload("Category").
		Where("is_active = ? AND stock <= min_stock_level", true).
		Order("stock ASC").
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// Save creates or updates a product
func (r *GormProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	return r.db.WithContext(ctx).Omit("Category").Save(product).Error
}

// Delete deletes a product
func (r *GormProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&catalog.Product{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// ReserveStock atomically decrements stock. The conditional update closes
// the race between concurrent sales: zero rows affected means not enough
// stock remained.
func (r *GormProductRepository) ReserveStock(ctx context.Context, productID uuid.UUID, quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError("VALIDATION_ERROR", "Quantity must be positive")
	}
	result := r.db.WithContext(ctx).
		Model(&catalog.Product{}).
		Where("id = ? AND stock >= ?", productID, quantity).
		UpdateColumn("stock", gorm.Expr("stock - ?", quantity))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).
			Model(&catalog.Product{}).
			Where("id = ?", productID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return shared.ErrNotFound
		}
		return shared.ErrInsufficientStock
	}
	return nil
}

// ReleaseStock returns previously reserved units to stock
func (r *GormProductRepository) ReleaseStock(ctx context.Context, productID uuid.UUID, quantity int) error {
	return r.addStock(ctx, productID, quantity)
}

// AddStock increments stock on goods receipt
func (r *GormProductRepository) AddStock(ctx context.Context, productID uuid.UUID, quantity int) error {
	return r.addStock(ctx, productID, quantity)
}

func (r *GormProductRepository) addStock(ctx context.Context, productID uuid.UUID, quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError("VALIDATION_ERROR", "Quantity must be positive")
	}
	result := r.db.WithContext(ctx).
		Model(&catalog.Product{}).
		Where("id = ?", productID).
		UpdateColumn("stock", gorm.Expr("stock + ?", quantity))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormProductRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}
	for key, value := range filter.Filters {
		switch key {
		case "category_id":
			query = query.Where("category_id = ?", value)
		case "is_active":
			query = query.Where("is_active = ?", value)
		case "low_stock":
			if b, ok := value.(bool); ok && b {
				query = query.Where("stock <= min_stock_level")
			}
		}
	}
	return query
}
