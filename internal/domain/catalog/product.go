package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/schoolkart/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Unit is the unit a product is sold in
type Unit string

const (
	UnitPiece Unit = "piece"
	UnitBox   Unit = "box"
	UnitSet   Unit = "set"
	UnitKg    Unit = "kg"
	UnitLiter Unit = "liter"
)

// IsValid reports whether the unit is a known unit
func (u Unit) IsValid() bool {
	switch u {
	case UnitPiece, UnitBox, UnitSet, UnitKg, UnitLiter:
		return true
	}
	return false
}

// Product represents a sellable item. BasePrice is the authoritative sale
// price: invoice lines are always priced from it, never from the caller.
type Product struct {
	shared.OwnedEntity
	Name          string          `gorm:"type:varchar(200);not null"`
	CategoryID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Category      *Category       `gorm:"foreignKey:CategoryID"`
	Description   string          `gorm:"type:text"`
	BasePrice     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	GstRate       decimal.Decimal `gorm:"type:decimal(5,2);not null;default:18"`
	Unit          Unit            `gorm:"type:varchar(20);not null;default:'piece'"`
	Stock         int             `gorm:"not null;default:0"`
	MinStockLevel int             `gorm:"not null;default:10"`
	IsActive      bool            `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product owned by the given admin
func NewProduct(createdBy uuid.UUID, name string, categoryID uuid.UUID, basePrice, gstRate decimal.Decimal, unit Unit) (*Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Product name is required")
	}
	if categoryID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Category is required")
	}
	if basePrice.IsNegative() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Base price cannot be negative")
	}
	if err := validateGstRate(gstRate); err != nil {
		return nil, err
	}
	if unit == "" {
		unit = UnitPiece
	}
	if !unit.IsValid() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Unknown unit")
	}

	return &Product{
		OwnedEntity:   shared.NewOwnedEntity(createdBy),
		Name:          name,
		CategoryID:    categoryID,
		BasePrice:     basePrice,
		GstRate:       gstRate,
		Unit:          unit,
		MinStockLevel: 10,
		IsActive:      true,
	}, nil
}

// Update updates the product's details
func (p *Product) Update(name, description string, categoryID uuid.UUID, basePrice, gstRate decimal.Decimal, unit Unit, minStockLevel int) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("VALIDATION_ERROR", "Product name is required")
	}
	if categoryID == uuid.Nil {
		return shared.NewDomainError("VALIDATION_ERROR", "Category is required")
	}
	if basePrice.IsNegative() {
		return shared.NewDomainError("VALIDATION_ERROR", "Base price cannot be negative")
	}
	if err := validateGstRate(gstRate); err != nil {
		return err
	}
	if !unit.IsValid() {
		return shared.NewDomainError("VALIDATION_ERROR", "Unknown unit")
	}
	if minStockLevel < 0 {
		return shared.NewDomainError("VALIDATION_ERROR", "Minimum stock level cannot be negative")
	}
	p.Name = name
	p.Description = strings.TrimSpace(description)
	p.CategoryID = categoryID
	p.Category = nil
	p.BasePrice = basePrice
	p.GstRate = gstRate
	p.Unit = unit
	p.MinStockLevel = minStockLevel
	p.UpdatedAt = time.Now()
	return nil
}

// IsLowStock reports whether stock has fallen to or below the threshold
func (p *Product) IsLowStock() bool {
	return p.Stock <= p.MinStockLevel
}

// SetActive toggles the active flag
func (p *Product) SetActive(active bool) {
	p.IsActive = active
	p.UpdatedAt = time.Now()
}

func validateGstRate(rate decimal.Decimal) error {
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(100)) {
		return shared.NewDomainError("VALIDATION_ERROR", "GST rate must be between 0 and 100")
	}
	return nil
}
