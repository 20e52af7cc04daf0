package education

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/schoolkart/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Address is a postal address embedded in schools and students
type Address struct {
	Street  string `gorm:"type:varchar(200)" json:"street"`
	City    string `gorm:"type:varchar(100)" json:"city"`
	State   string `gorm:"type:varchar(100)" json:"state"`
	Pincode string `gorm:"type:varchar(20)" json:"pincode"`
}

// Contact holds phone/email contact details
type Contact struct {
	Phone string `gorm:"type:varchar(20)" json:"phone"`
	Email string `gorm:"type:varchar(200)" json:"email"`
}

// School represents a partner school. Its commission rate is copied onto
// every invoice and commission at creation time; later rate changes never
// touch already-issued documents.
type School struct {
	shared.OwnedEntity
	Name           string          `gorm:"type:varchar(200);not null"`
	Code           string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	Address        Address         `gorm:"embedded;embeddedPrefix:address_"`
	Contact        Contact         `gorm:"embedded;embeddedPrefix:contact_"`
	PrincipalName  string          `gorm:"type:varchar(200)"`
	CommissionRate decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	IsActive       bool            `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (School) TableName() string {
	return "schools"
}

// NewSchool creates a new school owned by the given admin
func NewSchool(createdBy uuid.UUID, name, code string, commissionRate decimal.Decimal) (*School, error) {
	name = strings.TrimSpace(name)
	code = strings.ToUpper(strings.TrimSpace(code))
	if name == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "School name is required")
	}
	if code == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "School code is required")
	}
	if err := validateCommissionRate(commissionRate); err != nil {
		return nil, err
	}

	return &School{
		OwnedEntity:    shared.NewOwnedEntity(createdBy),
		Name:           name,
		Code:           code,
		CommissionRate: commissionRate,
		IsActive:       true,
	}, nil
}

// Update updates the school's basic information
func (s *School) Update(name, principalName string, address Address, contact Contact) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("VALIDATION_ERROR", "School name is required")
	}
	s.Name = name
	s.PrincipalName = principalName
	s.Address = address
	s.Contact = contact
	s.UpdatedAt = time.Now()
	return nil
}

// SetCommissionRate changes the rate used for future invoices
func (s *School) SetCommissionRate(rate decimal.Decimal) error {
	if err := validateCommissionRate(rate); err != nil {
		return err
	}
	s.CommissionRate = rate
	s.UpdatedAt = time.Now()
	return nil
}

// SetActive toggles the active flag
func (s *School) SetActive(active bool) {
	s.IsActive = active
	s.UpdatedAt = time.Now()
}

func validateCommissionRate(rate decimal.Decimal) error {
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(100)) {
		return shared.NewDomainError("VALIDATION_ERROR", "Commission rate must be between 0 and 100")
	}
	return nil
}
