package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/schoolkart/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// CommissionStatus is the settlement state of a commission
type CommissionStatus string

const (
	CommissionPending CommissionStatus = "pending"
	CommissionSettled CommissionStatus = "settled"
)

// Commission is a school's cut of one invoice. Exactly one commission
// exists per school invoice; the rate is snapshotted from the school at
// invoice time and the base is the invoice's pre-tax subtotal.
type Commission struct {
	shared.OwnedEntity
	InvoiceID        uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex"`
	SchoolID         uuid.UUID        `gorm:"type:uuid;not null;index"`
	BaseAmount       decimal.Decimal  `gorm:"type:decimal(12,2);not null"`
	Rate             decimal.Decimal  `gorm:"type:decimal(5,2);not null"`
	Amount           decimal.Decimal  `gorm:"type:decimal(12,2);not null"`
	Month            int              `gorm:"not null;index:idx_commissions_period"`
	Year             int              `gorm:"not null;index:idx_commissions_period"`
	Status           CommissionStatus `gorm:"type:varchar(20);not null;default:'pending'"`
	SettlementDate   *time.Time
	PaymentReference string `gorm:"type:varchar(100)"`
	Notes            string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Commission) TableName() string {
	return "commissions"
}

// NewCommission accrues a commission for a school invoice. Month and year
// come from the invoice date so settlements group by billing period.
func NewCommission(createdBy uuid.UUID, invoiceID, schoolID uuid.UUID, baseAmount, rate decimal.Decimal, invoiceDate time.Time) (*Commission, error) {
	if invoiceID == uuid.Nil || schoolID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Invoice and school are required")
	}
	if baseAmount.IsNegative() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Base amount cannot be negative")
	}
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(100)) {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Commission rate must be between 0 and 100")
	}

	return &Commission{
		OwnedEntity: shared.NewOwnedEntity(createdBy),
		InvoiceID:   invoiceID,
		SchoolID:    schoolID,
		BaseAmount:  baseAmount.Round(2),
		Rate:        rate,
		Amount:      commissionAmount(baseAmount, rate),
		Month:       int(invoiceDate.Month()),
		Year:        invoiceDate.Year(),
		Status:      CommissionPending,
	}, nil
}

// Rebase recomputes the commission after its invoice was edited. The
// snapshotted rate is kept; only the base changes. Settled commissions
// are immutable.
func (c *Commission) Rebase(baseAmount decimal.Decimal) error {
	if c.Status == CommissionSettled {
		return shared.NewDomainError("ALREADY_SETTLED", "Commission is already settled")
	}
	if baseAmount.IsNegative() {
		return shared.NewDomainError("VALIDATION_ERROR", "Base amount cannot be negative")
	}
	c.BaseAmount = baseAmount.Round(2)
	c.Amount = commissionAmount(baseAmount, c.Rate)
	c.UpdatedAt = time.Now()
	return nil
}

// Settle marks the commission paid out, recording the payout reference.
// A zero settlementDate means now. Settling twice is an error.
func (c *Commission) Settle(paymentReference string, settlementDate time.Time, notes string) error {
	if c.Status == CommissionSettled {
		return shared.NewDomainError("ALREADY_SETTLED", "Commission is already settled")
	}
	if paymentReference == "" {
		return shared.NewDomainError("VALIDATION_ERROR", "Payment reference is required")
	}
	if settlementDate.IsZero() {
		settlementDate = time.Now()
	}
	c.Status = CommissionSettled
	c.SettlementDate = &settlementDate
	c.PaymentReference = paymentReference
	c.Notes = notes
	c.UpdatedAt = time.Now()
	return nil
}

func commissionAmount(base, rate decimal.Decimal) decimal.Decimal {
	return base.Mul(rate).Div(decimal.NewFromInt(100)).Round(2)
}
