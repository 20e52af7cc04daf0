package persistence

import (
	"github.com/schoolkart/backend/internal/domain/billing"
	"github.com/schoolkart/backend/internal/domain/catalog"
	"github.com/schoolkart/backend/internal/domain/education"
	"github.com/schoolkart/backend/internal/domain/identity"
	"github.com/schoolkart/backend/internal/domain/partner"
	"gorm.io/gorm"
)

// AutoMigrate creates or updates the schema for all domain models
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&identity.Admin{},
		&education.School{},
		&education.Student{},
		&catalog.Category{},
		&catalog.Product{},
		&partner.Supplier{},
		&billing.Invoice{},
		&billing.InvoiceItem{},
		&billing.Purchase{},
		&billing.PurchaseItem{},
		&billing.Commission{},
	)
}
