package persistence

import (
	"context"

	"github.com/schoolkart/backend/internal/domain/billing"
	"gorm.io/gorm"
)

// GormUnitOfWork implements billing.UnitOfWork over a GORM transaction
type GormUnitOfWork struct {
	db *gorm.DB
}

// NewGormUnitOfWork creates a new GormUnitOfWork
func NewGormUnitOfWork(db *gorm.DB) *GormUnitOfWork {
	return &GormUnitOfWork{db: db}
}

// InTransaction runs fn with repositories bound to one transaction
func (u *GormUnitOfWork) InTransaction(ctx context.Context, fn func(repos billing.TxRepos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(billing.TxRepos{
			Invoices:    NewGormInvoiceRepository(tx),
			Purchases:   NewGormPurchaseRepository(tx),
			Commissions: NewGormCommissionRepository(tx),
			Products:    NewGormProductRepository(tx),
		})
	})
}
