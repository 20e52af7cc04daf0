package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/schoolkart/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PurchaseItem is one line of a purchase. Unlike invoice lines the unit
// price comes from the caller (the supplier's quote); only the GST rate
// is taken from the product.
type PurchaseItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	PurchaseID  uuid.UUID       `gorm:"type:uuid;not null;index"`
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
func (PurchaseItem) TableName() string {
	return "purchase_items"
}

// NewPurchaseItem prices a purchase line from the supplier's quote
func NewPurchaseItem(productID uuid.UUID, productName string, quantity int, unitPrice, gstRate decimal.Decimal) (PurchaseItem, error) {
	if quantity <= 0 {
		return PurchaseItem{}, shared.NewDomainError("VALIDATION_ERROR", "Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return PurchaseItem{}, shared.NewDomainError("VALIDATION_ERROR", "Unit price cannot be negative")
	}
	subtotal := unitPrice.Mul(decimal.NewFromInt(int64(quantity))).Round(2)
	gst := subtotal.Mul(gstRate).Div(decimal.NewFromInt(100)).Round(2)
	return PurchaseItem{
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

// Purchase records goods bought from a supplier. The goods are on hand
// when the purchase is recorded, so stock is incremented in the same
// transaction that persists it.
type Purchase struct {
	shared.OwnedEntity
	PurchaseNumber string          `gorm:"type:varchar(20);not null;uniqueIndex"`
	SupplierID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Items          []PurchaseItem  `gorm:"foreignKey:PurchaseID;constraint:OnDelete:CASCADE"`
	Subtotal       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	GstAmount      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TotalAmount    decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PaidAmount     decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	PaymentStatus  PaymentStatus   `gorm:"type:varchar(20);not null;default:'pending'"`
	PaymentDate    *time.Time
	PurchaseDate   time.Time `gorm:"not null;index"`
	Notes          string    `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Purchase) TableName() string {
	return "purchases"
}

// NewPurchase creates a purchase with priced items, unpaid
func NewPurchase(createdBy uuid.UUID, number string, supplierID uuid.UUID, items []PurchaseItem) (*Purchase, error) {
	if number == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Purchase number is required")
	}
	if supplierID == uuid.Nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Supplier is required")
	}
	if len(items) == 0 {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Purchase must have at least one item")
	}

	p := &Purchase{
		OwnedEntity:    shared.NewOwnedEntity(createdBy),
		PurchaseNumber: number,
		SupplierID:     supplierID,
		PaidAmount:     decimal.Zero,
		PaymentStatus:  PaymentPending,
		PurchaseDate:   time.Now(),
	}
	p.replaceItems(items)
	return p, nil
}

// ReplaceItems swaps the purchase's lines and recomputes totals and the
// payment status against the new total
func (p *Purchase) ReplaceItems(items []PurchaseItem) error {
	if len(items) == 0 {
		return shared.NewDomainError("VALIDATION_ERROR", "Purchase must have at least one item")
	}
	p.replaceItems(items)
	p.recalculatePaymentStatus()
	p.UpdatedAt = time.Now()
	return nil
}

// RecordPayment adds a payment, stamps the payment date and recomputes
// the payment status
func (p *Purchase) RecordPayment(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return shared.NewDomainError("VALIDATION_ERROR", "Payment amount must be positive")
	}
	now := time.Now()
	p.PaidAmount = p.PaidAmount.Add(amount).Round(2)
	p.PaymentDate = &now
	p.recalculatePaymentStatus()
	p.UpdatedAt = now
	return nil
}

func (p *Purchase) recalculatePaymentStatus() {
	switch {
	case p.PaidAmount.GreaterThanOrEqual(p.TotalAmount):
		p.PaymentStatus = PaymentPaid
	case p.PaidAmount.IsPositive():
		p.PaymentStatus = PaymentPartial
	default:
		p.PaymentStatus = PaymentPending
	}
}

func (p *Purchase) replaceItems(items []PurchaseItem) {
	subtotal := decimal.Zero
	gst := decimal.Zero
	for idx := range items {
		items[idx].PurchaseID = p.ID
		subtotal = subtotal.Add(items[idx].Subtotal)
		gst = gst.Add(items[idx].GstAmount)
	}
	p.Items = items
	p.Subtotal = subtotal.Round(2)
	p.GstAmount = gst.Round(2)
	p.TotalAmount = p.Subtotal.Add(p.GstAmount).Round(2)
}
