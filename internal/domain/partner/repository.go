package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/schoolkart/backend/internal/domain/identity"
	"github.com/schoolkart/backend/internal/domain/shared"
)

// SupplierRepository provides persistence for suppliers
type SupplierRepository interface {
	FindByID(ctx context.Context, scope identity.Scope, id uuid.UUID) (*Supplier, error)
	FindByIDUnscoped(ctx context.Context, id uuid.UUID) (*Supplier, error)
	FindAll(ctx context.Context, scope identity.Scope, filter shared.Filter) (shared.Paginated[*Supplier], error)
	CountPurchases(ctx context.Context, supplierID uuid.UUID) (int64, error)
	Save(ctx context.Context, supplier *Supplier) error
	Delete(ctx context.Context, id uuid.UUID) error
}
