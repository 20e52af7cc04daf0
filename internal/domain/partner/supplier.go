package partner

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/schoolkart/backend/internal/domain/shared"
)

// BankDetails holds a supplier's payout account
type BankDetails struct {
	AccountName   string `gorm:"type:varchar(200)" json:"accountName"`
	AccountNumber string `gorm:"type:varchar(50)" json:"accountNumber"`
	IFSC          string `gorm:"type:varchar(20);column:ifsc" json:"ifsc"`
	BankName      string `gorm:"type:varchar(200)" json:"bankName"`
}

// Supplier represents a vendor that purchase orders are raised against
type Supplier struct {
	shared.OwnedEntity
	Name          string      `gorm:"type:varchar(200);not null"`
	ContactPerson string      `gorm:"type:varchar(200)"`
	Phone         string      `gorm:"type:varchar(20)"`
	Email         string      `gorm:"type:varchar(200)"`
	Address       string      `gorm:"type:text"`
	GSTIN         string      `gorm:"type:varchar(20);column:gstin"`
	BankDetails   BankDetails `gorm:"embedded;embeddedPrefix:bank_"`
	IsActive      bool        `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Supplier) TableName() string {
	return "suppliers"
}

// NewSupplier creates a new supplier owned by the given admin
func NewSupplier(createdBy uuid.UUID, name, contactPerson, phone string) (*Supplier, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Supplier name is required")
	}

	return &Supplier{
		OwnedEntity:   shared.NewOwnedEntity(createdBy),
		Name:          name,
		ContactPerson: strings.TrimSpace(contactPerson),
		Phone:         strings.TrimSpace(phone),
		IsActive:      true,
	}, nil
}

// Update updates the supplier's details
func (s *Supplier) Update(name, contactPerson, phone, email, address, gstin string, bank BankDetails) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("VALIDATION_ERROR", "Supplier name is required")
	}
	s.Name = name
	s.ContactPerson = strings.TrimSpace(contactPerson)
	s.Phone = strings.TrimSpace(phone)
	s.Email = strings.ToLower(strings.TrimSpace(email))
	s.Address = strings.TrimSpace(address)
	s.GSTIN = strings.ToUpper(strings.TrimSpace(gstin))
	s.BankDetails = bank
	s.UpdatedAt = time.Now()
	return nil
}

// SetActive toggles the active flag
func (s *Supplier) SetActive(active bool) {
	s.IsActive = active
	s.UpdatedAt = time.Now()
}
