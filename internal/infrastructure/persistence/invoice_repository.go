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

// GormInvoiceRepository implements billing.InvoiceRepository using GORM
type GormInvoiceRepository struct {
	db *gorm.DB
}

// NewGormInvoiceRepository creates a new GormInvoiceRepository
func NewGormInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

// FindByID finds an invoice visible to the scope
func (r *GormInvoiceRepository) FindByID(ctx context.Context, scope identity.Scope, id uuid.UUID) (*billing.Invoice, error) {
	var invoice billing.Invoice
	if err := scoped(r.db.WithContext(ctx), scope).
		Preload("Items").
		First(&invoice, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &invoice, nil
}

// FindByIDUnscoped finds an invoice regardless of ownership
func (r *GormInvoiceRepository) FindByIDUnscoped(ctx context.Context, id uuid.UUID) (*billing.Invoice, error) {
	var invoice billing.Invoice
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&invoice, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &invoice, nil
}

// FindAll finds invoices visible to the scope with filtering
func (r *GormInvoiceRepository) FindAll(ctx context.Context, scope identity.Scope, filter shared.Filter) (shared.Paginated[*billing.Invoice], error) {
	filter.Normalize()

	query := scoped(r.db.WithContext(ctx).Model(&billing.Invoice{}), scope)
	query = r.applyFilter(query, filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return shared.Paginated[*billing.Invoice]{}, err
	}

	var invoices []*billing.Invoice
	if err := query.
		Preload("Items").
		Order("invoice_date DESC").
		Offset(filter.Offset()).
		Limit(filter.Limit).
		Find(&invoices).Error; err != nil {
		return shared.Paginated[*billing.Invoice]{}, err
	}

	return shared.NewPaginated(invoices, total, filter.Page, filter.Limit), nil
}

// NextNumber returns the next free invoice number for the current month.
// Format: INV{YY}{MM}{NNNN}, resetting each month.
func (r *GormInvoiceRepository) NextNumber(ctx context.Context) (string, error) {
	now := time.Now()
	prefix := fmt.Sprintf("INV%02d%02d", now.Year()%100, int(now.Month()))

	var lastNumber string
	err := r.db.WithContext(ctx).
		Model(&billing.Invoice{}).
		Where("invoice_number LIKE ?", prefix+"%").
		Order("invoice_number DESC").
		Limit(1).
		Pluck("invoice_number", &lastNumber).Error
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

	// Re-check uniqueness in case a concurrent insert took the number
	for i := 0; i < 100; i++ {
		var count int64
		if err := r.db.WithContext(ctx).
			Model(&billing.Invoice{}).
			Where("invoice_number = ?", number).
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

// Save creates or updates an invoice and reconciles its items
func (r *GormInvoiceRepository) Save(ctx context.Context, invoice *billing.Invoice) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Save(invoice).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return shared.ErrDuplicateKey
			}
			return err
		}

		currentItemIDs := make([]uuid.UUID, len(invoice.Items))
		for i, item := range invoice.Items {
			currentItemIDs[i] = item.ID
		}

		if len(currentItemIDs) > 0 {
			if err := tx.Where("invoice_id = ? AND id NOT IN ?", invoice.ID, currentItemIDs).
				Delete(&billing.InvoiceItem{}).Error; err != nil {
				return err
			}
		} else {
			if err := tx.Where("invoice_id = ?", invoice.ID).
				Delete(&billing.InvoiceItem{}).Error; err != nil {
				return err
			}
		}

		for i := range invoice.Items {
			invoice.Items[i].InvoiceID = invoice.ID
			if err := tx.Save(&invoice.Items[i]).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// Delete deletes an invoice and its items
func (r *GormInvoiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("invoice_id = ?", id).Delete(&billing.InvoiceItem{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&billing.Invoice{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

func (r *GormInvoiceRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("invoice_number ILIKE ?", "%"+filter.Search+"%")
	}
	for key, value := range filter.Filters {
		switch key {
		case "student_id":
			query = query.Where("student_id = ?", value)
		case "school_id":
			query = query.Where("school_id = ?", value)
		case "payment_status":
			query = query.Where("payment_status = ?", value)
		case "start_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("invoice_date >= ?", t)
			}
		case "end_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("invoice_date <= ?", t)
			}
		}
	}
	return query
}
