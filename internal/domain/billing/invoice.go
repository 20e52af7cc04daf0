package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/schoolkart/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PaymentStatus tracks how much of a document has been paid
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentPartial PaymentStatus = "partial"
	PaymentPaid    PaymentStatus = "paid"
)

// IsValid reports whether the status is a known payment status
func (s PaymentStatus) IsValid() bool {
	return s == PaymentPending || s == PaymentPartial || s == PaymentPaid
}

// PaymentMethod is how an invoice was paid
type PaymentMethod string

const (
	MethodCash PaymentMethod = "cash"
	MethodCard PaymentMethod = "card"
	MethodUPI  PaymentMethod = "upi"
	MethodBank PaymentMethod = "bank_transfer"
)

// IsValid reports whether the method is a known payment method
func (m PaymentMethod) IsValid() bool {
	switch m {
	case MethodCash, MethodCard, MethodUPI, MethodBank:
		return true
	}
	return false
}

// InvoiceItem is one priced line of an invoice. Unit price and GST rate are
// snapshots of the product at sale time.
type InvoiceItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	InvoiceID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null"`
	ProductName string          `gorm:"type:varchar(200);not null"`
	Quantity    int             `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	GstRate     decimal.Decimal `gorm:"type:decimal(5,2);not null"`
	Subtotal    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	GstAmount   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Total       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
}

// TableName returns the table name for GORM
func (InvoiceItem) TableName() string {
	return "invoice_items"
}

// NewInvoiceItem prices a line from the product snapshot
func NewInvoiceItem(productID uuid.UUID, productName string, quantity int, unitPrice, gstRate decimal.Decimal) (InvoiceItem, error) {
	if quantity <= 0 {
		return InvoiceItem{}, shared.NewDomainError("VALIDATION_ERROR", "Quantity must be positive")
	}
	subtotal := unitPrice.Mul(decimal.NewFromInt(int64(quantity))).Round(2)
	gst := subtotal.Mul(gstRate).Div(decimal.NewFromInt(100)).Round(2)
	return InvoiceItem{
		ID:          uuid.New(),
		ProductID:   productID,
		ProductName: productName,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		GstRate:     gstRate,
		Subtotal:    subtotal,
		GstAmount:   gst,
		Total:       subtotal.Add(gst),
	}, nil
}

// Invoice is a sale to a student. The student's school rides along so the
// school's commission can accrue, and the rate and amount in force at sale
// time are snapshotted onto the invoice itself.
type Invoice struct {
	shared.OwnedEntity
	InvoiceNumber    string          `gorm:"type:varchar(20);not null;uniqueIndex"`
	StudentID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	SchoolID         *uuid.UUID      `gorm:"type:uuid;index"`
	Items            []InvoiceItem   `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE"`
	Subtotal         decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	GstAmount        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Discount         decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	TotalAmount      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CommissionRate   decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	CommissionAmount decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	PaymentStatus    PaymentStatus   `gorm:"type:varchar(20);not null;default:'paid'"`
	PaymentMethod    PaymentMethod   `gorm:"type:varchar(20);not null;default:'cash'"`
	InvoiceDate      time.Time       `gorm:"not null;index"`
	Notes            string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Invoice) TableName() string {
	return "invoices"
}

// NewInvoice creates an invoice for a student with priced items. Counter
// sales are paid in cash by default.
func NewInvoice(createdBy uuid.UUID, number string, studentID uuid.UUID, items []InvoiceItem, discount decimal.Decimal) (*Invoice, error) {
	if number == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Invoice number is required")
	}
	if studentID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Student is required")
	}
	if len(items) == 0 {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Invoice must have at least one item")
	}
	if discount.IsNegative() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Discount cannot be negative")
	}

	inv := &Invoice{
		OwnedEntity:   shared.NewOwnedEntity(createdBy),
		InvoiceNumber: number,
		StudentID:     studentID,
		Discount:      discount.Round(2),
		PaymentStatus: PaymentPaid,
		PaymentMethod: MethodCash,
		InvoiceDate:   time.Now(),
	}
	inv.replaceItems(items)
	if inv.TotalAmount.IsNegative() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Discount exceeds invoice amount")
	}
	return inv, nil
}

// AttachSchool links the invoice to the student's school and snapshots
// the school's commission rate against the current subtotal
func (i *Invoice) AttachSchool(schoolID uuid.UUID, commissionRate decimal.Decimal) {
	i.SchoolID = &schoolID
	i.CommissionRate = commissionRate
	i.CommissionAmount = commissionAmount(i.Subtotal, commissionRate)
}

// IsEditable reports whether the invoice can still be changed. Paid
// invoices are frozen.
func (i *Invoice) IsEditable() bool {
	return i.PaymentStatus != PaymentPaid
}

// ReplaceItems swaps the invoice's lines and recomputes totals. The caller
// is responsible for releasing the old stock and reserving the new.
func (i *Invoice) ReplaceItems(items []InvoiceItem, discount decimal.Decimal) error {
	if !i.IsEditable() {
		return shared.NewDomainError("INVALID_STATE", "Paid invoices cannot be edited")
	}
	if len(items) == 0 {
		return shared.NewDomainError("VALIDATION_ERROR", "Invoice must have at least one item")
	}
	if discount.IsNegative() {
		return shared.NewDomainError("VALIDATION_ERROR", "Discount cannot be negative")
	}
	i.Discount = discount.Round(2)
	i.replaceItems(items)
	if i.TotalAmount.IsNegative() {
		return shared.NewDomainError("VALIDATION_ERROR", "Discount exceeds invoice amount")
	}
	i.UpdatedAt = time.Now()
	return nil
}

// SetPayment records the payment status and method
func (i *Invoice) SetPayment(status PaymentStatus, method PaymentMethod) error {
	if !status.IsValid() {
		return shared.NewDomainError("VALIDATION_ERROR", "Unknown payment status")
	}
	if !method.IsValid() {
		return shared.NewDomainError("VALIDATION_ERROR", "Unknown payment method")
	}
	i.PaymentStatus = status
	i.PaymentMethod = method
	i.UpdatedAt = time.Now()
	return nil
}

func (i *Invoice) replaceItems(items []InvoiceItem) {
	subtotal := decimal.Zero
	gst := decimal.Zero
	for idx := range items {
		items[idx].InvoiceID = i.ID
		subtotal = subtotal.Add(items[idx].Subtotal)
		gst = gst.Add(items[idx].GstAmount)
	}
	i.Items = items
	i.Subtotal = subtotal.Round(2)
	i.GstAmount = gst.Round(2)
	i.TotalAmount = i.Subtotal.Add(i.GstAmount).Sub(i.Discount).Round(2)
	// The snapshotted rate follows the new subtotal
	i.CommissionAmount = commissionAmount(i.Subtotal, i.CommissionRate)
}
