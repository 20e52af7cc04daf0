package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/schoolkart/backend/internal/domain/identity"
	"github.com/schoolkart/backend/internal/domain/shared"
)

// CategoryRepository provides persistence for categories. Restricted scopes
// see their own categories plus the global ones (nil creator).
type CategoryRepository interface {
	FindByID(ctx context.Context, scope identity.Scope, id uuid.UUID) (*Category, error)
	FindByIDUnscoped(ctx context.Context, id uuid.UUID) (*Category, error)
	FindAll(ctx context.Context, scope identity.Scope, filter shared.Filter) (shared.Paginated[*Category], error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	CountProducts(ctx context.Context, categoryID uuid.UUID) (int64, error)
	Save(ctx context.Context, category *Category) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ProductRepository provides persistence for products. Stock movements go
// through ReserveStock/ReleaseStock so concurrent sales can never drive
// stock negative.
type ProductRepository interface {
	FindByID(ctx context.Context, scope identity.Scope, id uuid.UUID) (*Product, error)
	FindByIDUnscoped(ctx context.Context, id uuid.UUID) (*Product, error)
	FindByIDs(ctx context.Context, scope identity.Scope, ids []uuid.UUID) ([]*Product, error)
	FindAll(ctx context.Context, scope identity.Scope, filter shared.Filter) (shared.Paginated[*Product], error)
	FindLowStock(ctx context.Context, scope identity.Scope) ([]*Product, error)
	Save(ctx context.Context, product *Product) error
	Delete(ctx context.Context, id uuid.UUID) error

	// ReserveStock atomically decrements stock, failing with
	// INSUFFICIENT_STOCK when fewer than quantity units remain.
	ReserveStock(ctx context.Context, productID uuid.UUID, quantity int) error
	// ReleaseStock returns previously reserved units to stock.
	ReleaseStock(ctx context.Context, productID uuid.UUID, quantity int) error
	// AddStock increments stock on goods receipt.
	AddStock(ctx context.Context, productID uuid.UUID, quantity int) error
}
