package identity

import (
	"context"

	"github.com/google/uuid"
)

// AdminRepository provides persistence for admin accounts
type AdminRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Admin, error)
	FindByEmail(ctx context.Context, email string) (*Admin, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Save(ctx context.Context, admin *Admin) error
}
