package billing

import (
	"time"

	"github.com/schoolkart/backend/internal/domain/billing"
	"github.com/shopspring/decimal"
)

// InvoiceItemRequest is one requested invoice line. Pricing always comes
// from the product, never from the caller.
type InvoiceItemRequest struct {
	ProductID string `json:"productId" binding:"required,uuid"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

// CreateInvoiceRequest creates an invoice
type CreateInvoiceRequest struct {
	StudentID     string               `json:"studentId" binding:"required,uuid"`
	Items         []InvoiceItemRequest `json:"items" binding:"required,min=1,dive"`
	Discount      decimal.Decimal      `json:"discount"`
	PaymentStatus string               `json:"paymentStatus" binding:"omitempty,oneof=pending partial paid"`
	PaymentMethod string               `json:"paymentMethod" binding:"omitempty,oneof=cash card upi bank_transfer"`
	Notes         string               `json:"notes"`
}

// UpdateInvoiceRequest replaces an unpaid invoice's lines
type UpdateInvoiceRequest struct {
	Items         []InvoiceItemRequest `json:"items" binding:"required,min=1,dive"`
	Discount      decimal.Decimal      `json:"discount"`
	PaymentStatus string               `json:"paymentStatus" binding:"omitempty,oneof=pending partial paid"`
	PaymentMethod string               `json:"paymentMethod" binding:"omitempty,oneof=cash card upi bank_transfer"`
	Notes         string               `json:"notes"`
}

// InvoiceItemResponse is one priced invoice line
type InvoiceItemResponse struct {
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	GstRate     decimal.Decimal `json:"gstRate"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	GstAmount   decimal.Decimal `json:"gstAmount"`
	Total       decimal.Decimal `json:"total"`
}

// InvoiceResponse is the public view of an invoice
type InvoiceResponse struct {
	ID               string                `json:"id"`
	InvoiceNumber    string                `json:"invoiceNumber"`
	StudentID        string                `json:"studentId"`
	SchoolID         *string               `json:"schoolId,omitempty"`
	Items            []InvoiceItemResponse `json:"items"`
	Subtotal         decimal.Decimal       `json:"subtotal"`
	GstAmount        decimal.Decimal       `json:"gstAmount"`
	Discount         decimal.Decimal       `json:"discount"`
	TotalAmount      decimal.Decimal       `json:"totalAmount"`
	CommissionRate   decimal.Decimal       `json:"commissionRate"`
	CommissionAmount decimal.Decimal       `json:"commissionAmount"`
	PaymentStatus    string                `json:"paymentStatus"`
	PaymentMethod    string                `json:"paymentMethod"`
	InvoiceDate      time.Time             `json:"invoiceDate"`
	Notes            string                `json:"notes,omitempty"`
	CreatedAt        time.Time             `json:"createdAt"`
}

// ToInvoiceResponse maps an invoice to its public view
func ToInvoiceResponse(inv *billing.Invoice) InvoiceResponse {
	items := make([]InvoiceItemResponse, len(inv.Items))
	for i, item := range inv.Items {
		items[i] = InvoiceItemResponse{
			ProductID:   item.ProductID.String(),
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			GstRate:     item.GstRate,
			Subtotal:    item.Subtotal,
			GstAmount:   item.GstAmount,
			Total:       item.Total,
		}
	}

	resp := InvoiceResponse{
		ID:               inv.ID.String(),
		InvoiceNumber:    inv.InvoiceNumber,
		StudentID:        inv.StudentID.String(),
		Items:            items,
		Subtotal:         inv.Subtotal,
		GstAmount:        inv.GstAmount,
		Discount:         inv.Discount,
		TotalAmount:      inv.TotalAmount,
		CommissionRate:   inv.CommissionRate,
		CommissionAmount: inv.CommissionAmount,
		PaymentStatus:    string(inv.PaymentStatus),
		PaymentMethod:    string(inv.PaymentMethod),
		InvoiceDate:      inv.InvoiceDate,
		Notes:            inv.Notes,
		CreatedAt:        inv.CreatedAt,
	}
	if inv.SchoolID != nil {
		id := inv.SchoolID.String()
		resp.SchoolID = &id
	}
	return resp
}

// PurchaseItemRequest is one requested purchase line. The unit price is
// the supplier's quote.
type PurchaseItemRequest struct {
	ProductID string          `json:"productId" binding:"required,uuid"`
	Quantity  int             `json:"quantity" binding:"required,min=1"`
	UnitPrice decimal.Decimal `json:"unitPrice" binding:"required"`
}

// CreatePurchaseRequest raises a purchase order
type CreatePurchaseRequest struct {
	SupplierID string                `json:"supplierId" binding:"required,uuid"`
	Items      []PurchaseItemRequest `json:"items" binding:"required,min=1,dive"`
	Notes      string                `json:"notes"`
}

// UpdatePurchaseRequest replaces an ordered purchase's lines
type UpdatePurchaseRequest struct {
	Items []PurchaseItemRequest `json:"items" binding:"required,min=1,dive"`
	Notes string                `json:"notes"`
}

// RecordPaymentRequest records a payment against a purchase
type RecordPaymentRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// PurchaseItemResponse is one priced purchase line
type PurchaseItemResponse struct {
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	GstRate     decimal.Decimal `json:"gstRate"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	GstAmount   decimal.Decimal `json:"gstAmount"`
	Total       decimal.Decimal `json:"total"`
}

// PurchaseResponse is the public view of a purchase
type PurchaseResponse struct {
	ID             string                 `json:"id"`
	PurchaseNumber string                 `json:"purchaseNumber"`
	SupplierID     string                 `json:"supplierId"`
	Items          []PurchaseItemResponse `json:"items"`
	Subtotal       decimal.Decimal        `json:"subtotal"`
	GstAmount      decimal.Decimal        `json:"gstAmount"`
	TotalAmount    decimal.Decimal        `json:"totalAmount"`
	PaidAmount     decimal.Decimal        `json:"paidAmount"`
	PaymentStatus  string                 `json:"paymentStatus"`
	PaymentDate    *time.Time             `json:"paymentDate,omitempty"`
	PurchaseDate   time.Time              `json:"purchaseDate"`
	Notes          string                 `json:"notes,omitempty"`
	CreatedAt      time.Time              `json:"createdAt"`
}

// ToPurchaseResponse maps a purchase to its public view
func ToPurchaseResponse(p *billing.Purchase) PurchaseResponse {
	items := make([]PurchaseItemResponse, len(p.Items))
	for i, item := range p.Items {
		items[i] = PurchaseItemResponse{
			ProductID:   item.ProductID.String(),
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			GstRate:     item.GstRate,
			Subtotal:    item.Subtotal,
			GstAmount:   item.GstAmount,
			Total:       item.Total,
		}
	}

	return PurchaseResponse{
		ID:             p.ID.String(),
		PurchaseNumber: p.PurchaseNumber,
		SupplierID:     p.SupplierID.String(),
		Items:          items,
		Subtotal:       p.Subtotal,
		GstAmount:      p.GstAmount,
		TotalAmount:    p.TotalAmount,
		PaidAmount:     p.PaidAmount,
		PaymentStatus:  string(p.PaymentStatus),
		PaymentDate:    p.PaymentDate,
		PurchaseDate:   p.PurchaseDate,
		Notes:          p.Notes,
		CreatedAt:      p.CreatedAt,
	}
}

// SettleCommissionRequest settles a commission. The payment reference is
// the bank or UPI transaction that paid the school.
type SettleCommissionRequest struct {
	PaymentReference string     `json:"paymentReference" binding:"required"`
	SettlementDate   *time.Time `json:"settlementDate"`
	Notes            string     `json:"notes"`
}

// CommissionResponse is the public view of a commission
type CommissionResponse struct {
	ID               string          `json:"id"`
	InvoiceID        string          `json:"invoiceId"`
	SchoolID         string          `json:"schoolId"`
	BaseAmount       decimal.Decimal `json:"baseAmount"`
	Rate             decimal.Decimal `json:"rate"`
	Amount           decimal.Decimal `json:"amount"`
	Month            int             `json:"month"`
	Year             int             `json:"year"`
	Status           string          `json:"status"`
	SettlementDate   *time.Time      `json:"settlementDate,omitempty"`
	PaymentReference string          `json:"paymentReference,omitempty"`
	Notes            string          `json:"notes,omitempty"`
	CreatedAt        time.Time       `json:"createdAt"`
}

// ToCommissionResponse maps a commission to its public view
func ToCommissionResponse(c *billing.Commission) CommissionResponse {
	return CommissionResponse{
		ID:               c.ID.String(),
		InvoiceID:        c.InvoiceID.String(),
		SchoolID:         c.SchoolID.String(),
		BaseAmount:       c.BaseAmount,
		Rate:             c.Rate,
		Amount:           c.Amount,
		Month:            c.Month,
		Year:             c.Year,
		Status:           string(c.Status),
		SettlementDate:   c.SettlementDate,
		PaymentReference: c.PaymentReference,
		Notes:            c.Notes,
		CreatedAt:        c.CreatedAt,
	}
}

// CommissionSummaryResponse aggregates one school's commissions for a
// period
type CommissionSummaryResponse struct {
	SchoolID      string          `json:"schoolId"`
	SchoolName    string          `json:"schoolName"`
	Month         int             `json:"month"`
	Year          int             `json:"year"`
	PendingCount  int64           `json:"pendingCount"`
	SettledCount  int64           `json:"settledCount"`
	PendingAmount decimal.Decimal `json:"pendingAmount"`
	SettledAmount decimal.Decimal `json:"settledAmount"`
}

// ToCommissionSummaryResponses maps period summaries to their public view
func ToCommissionSummaryResponses(summaries []billing.CommissionPeriodSummary) []CommissionSummaryResponse {
	out := make([]CommissionSummaryResponse, len(summaries))
	for i, s := range summaries {
		out[i] = CommissionSummaryResponse{
			SchoolID:      s.SchoolID.String(),
			SchoolName:    s.SchoolName,
			Month:         s.Month,
			Year:          s.Year,
			PendingCount:  s.PendingCount,
			SettledCount:  s.SettledCount,
			PendingAmount: s.PendingAmount,
			SettledAmount: s.SettledAmount,
		}
	}
	return out
}
