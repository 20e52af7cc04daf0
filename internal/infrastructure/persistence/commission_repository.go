package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/schoolkart/backend/internal/domain/billing"
	"github.com/schoolkart/backend/internal/domain/identity"
	"github.com/schoolkart/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormCommissionRepository implements billing.CommissionRepository using
// GORM. Commissions are scoped through the school they belong to.
type GormCommissionRepository struct {
	db *gorm.DB
}

// NewGormCommissionRepository creates a new GormCommissionRepository
func NewGormCommissionRepository(db *gorm.DB) *GormCommissionRepository {
	return &GormCommissionRepository{db: db}
}

func (r *GormCommissionRepository) scopedQuery(ctx context.Context, scope identity.Scope) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&billing.Commission{})
	if scope.Unrestricted {
		return query
	}
	return query.Where("school_id IN (?)", ownedSchools(r.db, scope))
}

// FindByID finds a commission visible to the scope
func (r *GormCommissionRepository) FindByID(ctx context.Context, scope identity.Scope, id uuid.UUID) (*billing.Commission, error) {
	var commission billing.Commission
	if err := r.scopedQuery(ctx, scope).
		First(&commission, "commissions.id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &commission, nil
}

// FindByInvoiceID finds the commission accrued for an invoice
func (r *GormCommissionRepository) FindByInvoiceID(ctx context.Context, invoiceID uuid.UUID) (*billing.Commission, error) {
	var commission billing.Commission
	if err := r.db.WithContext(ctx).
		First(&commission, "invoice_id = ?", invoiceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &commission, nil
}

// FindAll finds commissions visible to the scope with filtering
func (r *GormCommissionRepository) FindAll(ctx context.Context, scope identity.Scope, filter shared.Filter) (shared.Paginated[*billing.Commission], error) {
	filter.Normalize()

	query := r.applyFilter(r.scopedQuery(ctx, scope), filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return shared.Paginated[*billing.Commission]{}, err
	}

	var commissions []*billing.Commission
	if err := query.
		Order("year DESC, month DESC, created_at DESC").
		Offset(filter.Offset()).
		Limit(filter.Limit).
		Find(&commissions).Error; err != nil {
		return shared.Paginated[*billing.Commission]{}, err
	}

	return shared.NewPaginated(commissions, total, filter.Page, filter.Limit), nil
}

// FindBySchool finds commissions for one school within the scope
func (r *GormCommissionRepository) FindBySchool(ctx context.Context, scope identity.Scope, schoolID uuid.UUID, filter shared.Filter) (shared.Paginated[*billing.Commission], error) {
	if filter.Filters == nil {
		filter.Filters = make(map[string]interface{})
	}
	filter.Filters["school_id"] = schoolID
	return r.FindAll(ctx, scope, filter)
}

// Summarize aggregates commissions per school for a month. Month or year
// of zero means all periods.
func (r *GormCommissionRepository) Summarize(ctx context.Context, scope identity.Scope, month, year int) ([]billing.CommissionPeriodSummary, error) {
	query := r.scopedQuery(ctx, scope).
		Select(`commissions.school_id,
			schools.name AS school_name,
			commissions.month,
			commissions.year,
			COUNT(*) FILTER (WHERE commissions.status = 'pending') AS pending_count,
			COUNT(*) FILTER (WHERE commissions.status = 'settled') AS settled_count,
			COALESCE(SUM(commissions.amount) FILTER (WHERE commissions.status = 'pending'), 0) AS pending_amount,
			COALESCE(SUM(commissions.amount) FILTER (WHERE commissions.status = 'settled'), 0) AS settled_amount`).
		Joins("JOIN schools ON schools.id = commissions.school_id").
		Group("commissions.school_id, schools.name, commissions.month, commissions.year").
		Order("commissions.year DESC, commissions.month DESC, schools.name ASC")

	if month > 0 {
		query = query.Where("commissions.month = ?", month)
	}
	if year > 0 {
		query = query.Where("commissions.year = ?", year)
	}

	var summaries []billing.CommissionPeriodSummary
	if err := query.Scan(&summaries).Error; err != nil {
		return nil, err
	}
	return summaries, nil
}

// Save creates or updates a commission
func (r *GormCommissionRepository) Save(ctx context.Context, commission *billing.Commission) error {
	return r.db.WithContext(ctx).Save(commission).Error
}

// DeleteByInvoiceID removes the commission accrued for an invoice
func (r *GormCommissionRepository) DeleteByInvoiceID(ctx context.Context, invoiceID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Delete(&billing.Commission{}, "invoice_id = ?", invoiceID).Error
}

func (r *GormCommissionRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "school_id":
			query = query.Where("school_id = ?", value)
		case "status":
			query = query.Where("status = ?", value)
		case "month":
			query = query.Where("month = ?", value)
		case "year":
			query = query.Where("year = ?", value)
		}
	}
	return query
}
