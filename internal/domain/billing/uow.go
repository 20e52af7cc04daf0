package billing

import (
	"context"

	"github.com/schoolkart/backend/internal/domain/catalog"
)

// TxRepos bundles the repositories that participate in a billing
// transaction
type TxRepos struct {
	Invoices    InvoiceRepository
	Purchases   PurchaseRepository
	Commissions CommissionRepository
	Products    catalog.ProductRepository
}

// UnitOfWork runs a function with repositories bound to one database
// transaction. Stock movements, document writes and commission accrual
// commit or roll back together.
type UnitOfWork interface {
	InTransaction(ctx context.Context, fn func(repos TxRepos) error) error
}
