package billing

import (
	"context"

	"github.com/google/uuid"
	"github.com/schoolkart/backend/internal/domain/identity"
	"github.com/schoolkart/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// InvoiceRepository provides persistence for invoices. Number generation
// lives here because uniqueness is a storage concern.
type InvoiceRepository interface {
	FindByID(ctx context.Context, scope identity.Scope, id uuid.UUID) (*Invoice, error)
	FindByIDUnscoped(ctx context.Context, id uuid.UUID) (*Invoice, error)
	FindAll(ctx context.Context, scope identity.Scope, filter shared.Filter) (shared.Paginated[*Invoice], error)
	// NextNumber returns the next free invoice number for the current
	// month, e.g. INV25080042.
	NextNumber(ctx context.Context) (string, error)
	Save(ctx context.Context, invoice *Invoice) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// PurchaseRepository provides persistence for purchase orders
type PurchaseRepository interface {
	FindByID(ctx context.Context, scope identity.Scope, id uuid.UUID) (*Purchase, error)
	FindByIDUnscoped(ctx context.Context, id uuid.UUID) (*Purchase, error)
	FindAll(ctx context.Context, scope identity.Scope, filter shared.Filter) (shared.Paginated[*Purchase], error)
	// NextNumber returns the next free purchase number for the current
	// month, e.g. PO25080007.
	NextNumber(ctx context.Context) (string, error)
	Save(ctx context.Context, purchase *Purchase) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// CommissionPeriodSummary aggregates commissions for one school and month
type CommissionPeriodSummary struct {
	SchoolID      uuid.UUID
	SchoolName    string
	Month         int
	Year          int
	PendingCount  int64
	SettledCount  int64
	PendingAmount decimal.Decimal
	SettledAmount decimal.Decimal
}

// CommissionRepository provides persistence for commissions. Commissions
// are scoped through the school they belong to.
type CommissionRepository interface {
	FindByID(ctx context.Context, scope identity.Scope, id uuid.UUID) (*Commission, error)
	FindByInvoiceID(ctx context.Context, invoiceID uuid.UUID) (*Commission, error)
	FindAll(ctx context.Context, scope identity.Scope, filter shared.Filter) (shared.Paginated[*Commission], error)
	FindBySchool(ctx context.Context, scope identity.Scope, schoolID uuid.UUID, filter shared.Filter) (shared.Paginated[*Commission], error)
	Summarize(ctx context.Context, scope identity.Scope, month, year int) ([]CommissionPeriodSummary, error)
	Save(ctx context.Context, commission *Commission) error
	DeleteByInvoiceID(ctx context.Context, invoiceID uuid.UUID) error
}
