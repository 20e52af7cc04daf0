package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/schoolkart/backend/internal/domain/billing"
	"github.com/schoolkart/backend/internal/domain/identity"
	"github.com/schoolkart/backend/internal/domain/partner"
	"github.com/schoolkart/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormSupplierRepository implements partner.SupplierRepository using GORM
type GormSupplierRepository struct {
	db *gorm.DB
}

// NewGormSupplierRepository creates a new GormSupplierRepository
func NewGormSupplierRepository(db *gorm.DB) *GormSupplierRepository {
	return &GormSupplierRepository{db: db}
}

// FindByID finds a supplier visible to the scope
func (r *GormSupplierRepository) FindByID(ctx context.Context, scope identity.Scope, id uuid.UUID) (*partner.Supplier, error) {
	var supplier partner.Supplier
	if err := scoped(r.db.WithContext(ctx), scope).
		First(&supplier, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &supplier, nil
}

// FindByIDUnscoped finds a supplier regardless of ownership
func (r *GormSupplierRepository) FindByIDUnscoped(ctx context.Context, id uuid.UUID) (*partner.Supplier, error) {
	var supplier partner.Supplier
	if err := r.db.WithContext(ctx).First(&supplier, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &supplier, nil
}

// FindAll finds suppliers visible to the scope with filtering
func (r *GormSupplierRepository) FindAll(ctx context.Context, scope identity.Scope, filter shared.Filter) (shared.Paginated[*partner.Supplier], error) {
	filter.Normalize()

	query := scoped(r.db.WithContext(ctx).Model(&partner.Supplier{}), scope)
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR contact_person ILIKE ? OR gstin ILIKE ?", pattern, pattern, pattern)
	}
	if v, ok := filter.Filters["is_active"]; ok {
		query = query.Where("is_active = ?", v)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return shared.Paginated[*partner.Supplier]{}, err
	}

	var suppliers []*partner.Supplier
	if err := query.
		Order("name ASC").
		Offset(filter.Offset()).
		Limit(filter.Limit).
		Find(&suppliers).Error; err != nil {
		return shared.Paginated[*partner.Supplier]{}, err
	}

	return shared.NewPaginated(suppliers, total, filter.Page, filter.Limit), nil
}

// CountPurchases counts purchase orders raised against a supplier
func (r *GormSupplierRepository) CountPurchases(ctx context.Context, supplierID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&billing.Purchase{}).
		Where("supplier_id = ?", supplierID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a supplier
func (r *GormSupplierRepository) Save(ctx context.Context, supplier *partner.Supplier) error {
	return r.db.WithContext(ctx).Save(supplier).Error
}

// Delete deletes a supplier
func (r *GormSupplierRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&partner.Supplier{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
