package education

import (
	"context"

	"github.com/google/uuid"
	"github.com/schoolkart/backend/internal/domain/identity"
	"github.com/schoolkart/backend/internal/domain/shared"
)

// SchoolRepository provides persistence for schools. Every read takes a
// scope; restricted scopes only ever see the caller's own schools.
type SchoolRepository interface {
	FindByID(ctx context.Context, scope identity.Scope, id uuid.UUID) (*School, error)
	FindByIDUnscoped(ctx context.Context, id uuid.UUID) (*School, error)
	FindAll(ctx context.Context, scope identity.Scope, filter shared.Filter) (shared.Paginated[*School], error)
	OwnedIDs(ctx context.Context, scope identity.Scope) ([]uuid.UUID, error)
	ExistsByCode(ctx context.Context, code string) (bool, error)
	CountStudents(ctx context.Context, schoolID uuid.UUID) (int64, error)
	Save(ctx context.Context, school *School) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// StudentRepository provides persistence for students. Students are scoped
// through the schools they belong to, not through their own creator.
type StudentRepository interface {
	FindByID(ctx context.Context, scope identity.Scope, id uuid.UUID) (*Student, error)
	FindByIDUnscoped(ctx context.Context, id uuid.UUID) (*Student, error)
	FindByRollNumber(ctx context.Context, scope identity.Scope, rollNumber string) (*Student, error)
	FindAll(ctx context.Context, scope identity.Scope, filter shared.Filter) (shared.Paginated[*Student], error)
	Search(ctx context.Context, scope identity.Scope, query string, limit int) ([]*Student, error)
	ExistsByRollNumber(ctx context.Context, rollNumber string) (bool, error)
	Save(ctx context.Context, student *Student) error
	SaveAll(ctx context.Context, students []*Student) error
	Delete(ctx context.Context, id uuid.UUID) error
}
