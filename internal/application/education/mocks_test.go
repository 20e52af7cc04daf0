package education

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/schoolkart/backend/internal/domain/education"
	"github.com/schoolkart/backend/internal/domain/identity"
	"github.com/schoolkart/backend/internal/domain/reporting"
	"github.com/schoolkart/backend/internal/domain/shared"
	"github.com/stretchr/testify/mock"
)

// MockSchoolRepository is a mock implementation of education.SchoolRepository
type MockSchoolRepository struct {
	mock.Mock
}

func (m *MockSchoolRepository) FindByID(ctx context.Context, scope identity.Scope, id uuid.UUID) (*education.School, error) {
	args := m.Called(ctx, scope, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*education.School), args.Error(1)
}

func (m *MockSchoolRepository) FindByIDUnscoped(ctx context.Context, id uuid.UUID) (*education.School, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*education.School), args.Error(1)
}

func (m *MockSchoolRepository) FindAll(ctx context.Context, scope identity.Scope, filter shared.Filter) (shared.Paginated[*education.School], error) {
	args := m.Called(ctx, scope, filter)
	return args.Get(0).(shared.Paginated[*education.School]), args.Error(1)
}

func (m *MockSchoolRepository) OwnedIDs(ctx context.Context, scope identity.Scope) ([]uuid.UUID, error) {
	args := m.Called(ctx, scope)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *MockSchoolRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockSchoolRepository) CountStudents(ctx context.Context, schoolID uuid.UUID) (int64, error) {
	args := m.Called(ctx, schoolID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSchoolRepository) Save(ctx context.Context, school *education.School) error {
	args := m.Called(ctx, school)
	return args.Error(0)
}

func (m *MockSchoolRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockStudentRepository is a mock implementation of education.StudentRepository
type MockStudentRepository struct {
	mock.Mock
}

func (m *MockStudentRepository) FindByID(ctx context.Context, scope identity.Scope, id uuid.UUID) (*education.Student, error) {
	args := m.Called(ctx, scope, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*education.Student), args.Error(1)
}

func (m *MockStudentRepository) FindByIDUnscoped(ctx context.Context, id uuid.UUID) (*education.Student, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*education.Student), args.Error(1)
}

func (m *MockStudentRepository) FindByRollNumber(ctx context.Context, scope identity.Scope, rollNumber string) (*education.Student, error) {
	args := m.Called(ctx, scope, rollNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*education.Student), args.Error(1)
}

func (m *MockStudentRepository) FindAll(ctx context.Context, scope identity.Scope, filter shared.Filter) (shared.Paginated[*education.Student], error) {
	args := m.Called(ctx, scope, filter)
	return args.Get(0).(shared.Paginated[*education.Student]), args.Error(1)
}

func (m *MockStudentRepository) Search(ctx context.Context, scope identity.Scope, query string, limit int) ([]*education.Student, error) {
	args := m.Called(ctx, scope, query, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*education.Student), args.Error(1)
}

func (m *MockStudentRepository) ExistsByRollNumber(ctx context.Context, rollNumber string) (bool, error) {
	args := m.Called(ctx, rollNumber)
	return args.Bool(0), args.Error(1)
}

func (m *MockStudentRepository) Save(ctx context.Context, student *education.Student) error {
	args := m.Called(ctx, student)
	return args.Error(0)
}

func (m *MockStudentRepository) SaveAll(ctx context.Context, students []*education.Student) error {
	args := m.Called(ctx, students)
	return args.Error(0)
}

func (m *MockStudentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockReportRepository is a mock implementation of reporting.Repository
type MockReportRepository struct {
	mock.Mock
}

func (m *MockReportRepository) SalesReport(ctx context.Context, scope identity.Scope, from, to time.Time) (*reporting.SalesReport, error) {
	args := m.Called(ctx, scope, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reporting.SalesReport), args.Error(1)
}

func (m *MockReportRepository) SchoolPerformance(ctx context.Context, scope identity.Scope, from, to time.Time) ([]reporting.SchoolPerformanceRow, error) {
	args := m.Called(ctx, scope, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]reporting.SchoolPerformanceRow), args.Error(1)
}

func (m *MockReportRepository) InventoryValuation(ctx context.Context, scope identity.Scope) (*reporting.InventoryValuation, error) {
	args := m.Called(ctx, scope)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reporting.InventoryValuation), args.Error(1)
}

func (m *MockReportRepository) Dashboard(ctx context.Context, scope identity.Scope) (*reporting.DashboardSummary, error) {
	args := m.Called(ctx, scope)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reporting.DashboardSummary), args.Error(1)
}

func (m *MockReportRepository) SchoolDashboard(ctx context.Context, scope identity.Scope, schoolID uuid.UUID) (*reporting.SchoolDashboard, error) {
	args := m.Called(ctx, scope, schoolID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reporting.SchoolDashboard), args.Error(1)
}
