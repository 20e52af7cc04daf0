package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/schoolkart/backend/internal/domain/billing"
	"github.com/schoolkart/backend/internal/domain/identity"
	"github.com/schoolkart/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormPurchaseRepository implements billing.PurchaseRepository using GORM
type GormPurchaseRepository struct {
	db *gorm.DB
}

// NewGormPurchaseRepository creates a new GormPurchaseRepository
func NewGormPurchaseRepository(db *gorm.DB) *GormPurchaseRepository {
	return &GormPurchaseRepository{db: db}
}

// FindByID finds a purchase visible to the scope
func (r *GormPurchaseRepository) FindByID(ctx context.Context, scope identity.Scope, id uuid.UUID) (*billing.Purchase, error) {
	var purchase billing.Purchase
	if err := scoped(r.db.WithContext(ctx), scope).
		Preload("Items").
		First(&purchase, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &purchase, nil
}

// FindByIDUnscoped finds a purchase regardless of ownership
func (r *GormPurchaseRepository) FindByIDUnscoped(ctx context.Context, id uuid.UUID) (*billing.Purchase, error) {
	var purchase billing.Purchase
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&purchase, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &purchase, nil
}

// FindAll finds purchases visible to the scope with filtering
func (r *GormPurchaseRepository) FindAll(ctx context.Context, scope identity.Scope, filter shared.Filter) (shared.Paginated[*billing.Purchase], error) {
	filter.Normalize()

	query := scoped(r.db.WithContext(ctx).Model(&billing.Purchase{}), scope)
	query = r.applyFilter(query, filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return shared.Paginated[*billing.Purchase]{}, err
	}

	var purchases []*billing.Purchase
	if err := query.
		Preload("Items").
		Order("purchase_date DESC").
		Offset(filter.Offset()).
		Limit(filter.Limit).
		Find(&purchases).Error; err != nil {
		return shared.Paginated[*billing.Purchase]{}, err
	}

	return shared.NewPaginated(purchases, total, filter.Page, filter.Limit), nil
}

// NextNumber returns the next free purchase number for the current month.
// Format: PO{YY}{MM}{NNNN}, resetting each month.
func (r *GormPurchaseRepository) NextNumber(ctx context.Context) (string, error) {
	now := time.Now()
	prefix := fmt.Sprintf("PO%02d%02d", now.Year()%100, int(now.Month()))

	var lastNumber string
	err := r.db.WithContext(ctx).
		Model(&billing.Purchase{}).
		Where("purchase_number LIKE ?", prefix+"%").
		Order("purchase_number DESC").
		Limit(1).
		Pluck("purchase_number", &lastNumber).Error
	if err != nil {
		return "", err
	}

	var nextNum int64 = 1
	if lastNumber != "" {
		var num int64
		if _, parseErr := fmt.Sscanf(lastNumber[len(prefix):], "%d", &num); parseErr == nil {
			nextNum = num + 1
		}
	}

	number := fmt.Sprintf("%s%04d", prefix, nextNum)

	for i := 0; i < 100; i++ {
		var count int64
		if err := r.db.WithContext(ctx).
			Model(&billing.Purchase{}).
			Where("purchase_number = ?", number).
			Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			break
		}
		nextNum++
		number = fmt.Sprintf("%s%04d", prefix, nextNum)
	}

	return number, nil
}

// Save creates or updates a purchase and reconciles its items
func (r *GormPurchaseRepository) Save(ctx context.Context, purchase *billing.Purchase) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Save(purchase).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return shared.ErrDuplicateKey
			}
			return err
		}

		currentItemIDs := make([]uuid.UUID, len(purchase.Items))
		for i, item := range purchase.Items {
			currentItemIDs[i] = item.ID
		}

		if len(currentItemIDs) > 0 {
			if err := tx.Where("purchase_id = ? AND id NOT IN ?", purchase.ID, currentItemIDs).
				Delete(&billing.PurchaseItem{}).Error; err != nil {
				return err
			}
		} else {
			if err := tx.Where("purchase_id = ?", purchase.ID).
				Delete(&billing.PurchaseItem{}).Error; err != nil {
				return err
			}
		}

		for i := range purchase.Items {
			purchase.Items[i].PurchaseID = purchase.ID
			if err := tx.Save(&purchase.Items[i]).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// Delete deletes a purchase and its items
func (r *GormPurchaseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("purchase_id = ?", id).Delete(&billing.PurchaseItem{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&billing.Purchase{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

func (r *GormPurchaseRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("purchase_number ILIKE ?", "%"+filter.Search+"%")
	}
	for key, value := range filter.Filters {
		switch key {
		case "supplier_id":
			query = query.Where("supplier_id = ?", value)
		case "payment_status":
			query = query.Where("payment_status = ?", value)
		case "start_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("purchase_date >= ?", t)
			}
		case "end_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("purchase_date <= ?", t)
			}
		}
	}
	return query
}
