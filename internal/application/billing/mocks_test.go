package billing

import (
	"context"

	"github.com/google/uuid"
	"github.com/schoolkart/backend/internal/domain/billing"
	"github.com/schoolkart/backend/internal/domain/catalog"
	"github.com/schoolkart/backend/internal/domain/education"
	"github.com/schoolkart/backend/internal/domain/identity"
	"github.com/schoolkart/backend/internal/domain/partner"
	"github.com/schoolkart/backend/internal/domain/shared"
	"github.com/stretchr/testify/mock"
)

// MockInvoiceRepository is a mock implementation of billing.InvoiceRepository
type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) FindByID(ctx context.Context, scope identity.Scope, id uuid.UUID) (*billing.Invoice, error) {
	args := m.Called(ctx, scope, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindByIDUnscoped(ctx context.Context, id uuid.UUID) (*billing.Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindAll(ctx context.Context, scope identity.Scope, filter shared.Filter) (shared.Paginated[*billing.Invoice], error) {
	args := m.Called(ctx, scope, filter)
	return args.Get(0).(shared.Paginated[*billing.Invoice]), args.Error(1)
}

func (m *MockInvoiceRepository) NextNumber(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockInvoiceRepository) Save(ctx context.Context, invoice *billing.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockPurchaseRepository is a mock implementation of billing.PurchaseRepository
type MockPurchaseRepository struct {
	mock.Mock
}

func (m *MockPurchaseRepository) FindByID(ctx context.Context, scope identity.Scope, id uuid.UUID) (*billing.Purchase, error) {
	args := m.Called(ctx, scope, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Purchase), args.Error(1)
}

func (m *MockPurchaseRepository) FindByIDUnscoped(ctx context.Context, id uuid.UUID) (*billing.Purchase, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Purchase), args.Error(1)
}

func (m *MockPurchaseRepository) FindAll(ctx context.Context, scope identity.Scope, filter shared.Filter) (shared.Paginated[*billing.Purchase], error) {
	args := m.Called(ctx, scope, filter)
	return args.Get(0).(shared.Paginated[*billing.Purchase]), args.Error(1)
}

func (m *MockPurchaseRepository) NextNumber(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockPurchaseRepository) Save(ctx context.Context, purchase *billing.Purchase) error {
	args := m.Called(ctx, purchase)
	return args.Error(0)
}

func (m *MockPurchaseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockCommissionRepository is a mock implementation of billing.CommissionRepository
type MockCommissionRepository struct {
	mock.Mock
}

func (m *MockCommissionRepository) FindByID(ctx context.Context, scope identity.Scope, id uuid.UUID) (*billing.Commission, error) {
	args := m.Called(ctx, scope, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Commission), args.Error(1)
}

func (m *MockCommissionRepository) FindByInvoiceID(ctx context.Context, invoiceID uuid.UUID) (*billing.Commission, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Commission), args.Error(1)
}

func (m *MockCommissionRepository) FindAll(ctx context.Context, scope identity.Scope, filter shared.Filter) (shared.Paginated[*billing.Commission], error) {
	args := m.Called(ctx, scope, filter)
	return args.Get(0).(shared.Paginated[*billing.Commission]), args.Error(1)
}

func (m *MockCommissionRepository) FindBySchool(ctx context.Context, scope identity.Scope, schoolID uuid.UUID, filter shared.Filter) (shared.Paginated[*billing.Commission], error) {
	args := m.Called(ctx, scope, schoolID, filter)
	return args.Get(0).(shared.Paginated[*billing.Commission]), args.Error(1)
}

func (m *MockCommissionRepository) Summarize(ctx context.Context, scope identity.Scope, month, year int) ([]billing.CommissionPeriodSummary, error) {
	args := m.Called(ctx, scope, month, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.CommissionPeriodSummary), args.Error(1)
}

func (m *MockCommissionRepository) Save(ctx context.Context, commission *billing.Commission) error {
	args := m.Called(ctx, commission)
	return args.Error(0)
}

func (m *MockCommissionRepository) DeleteByInvoiceID(ctx context.Context, invoiceID uuid.UUID) error {
	args := m.Called(ctx, invoiceID)
	return args.Error(0)
}

// MockProductRepository is a mock implementation of catalog.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, scope identity.Scope, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, scope, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDUnscoped(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDs(ctx context.Context, scope identity.Scope, ids []uuid.UUID) ([]*catalog.Product, error) {
	args := m.Called(ctx, scope, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, scope identity.Scope, filter shared.Filter) (shared.Paginated[*catalog.Product], error) {
	args := m.Called(ctx, scope, filter)
	return args.Get(0).(shared.Paginated[*catalog.Product]), args.Error(1)
}

func (m *MockProductRepository) FindLowStock(ctx context.Context, scope identity.Scope) ([]*catalog.Product, error) {
	args := m.Called(ctx, scope)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) ReserveStock(ctx context.Context, productID uuid.UUID, quantity int) error {
	args := m.Called(ctx, productID, quantity)
	return args.Error(0)
}

func (m *MockProductRepository) ReleaseStock(ctx context.Context, productID uuid.UUID, quantity int) error {
	args := m.Called(ctx, productID, quantity)
	return args.Error(0)
}

func (m *MockProductRepository) AddStock(ctx context.Context, productID uuid.UUID, quantity int) error {
	args := m.Called(ctx, productID, quantity)
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

// MockSupplierRepository is a mock implementation of partner.SupplierRepository
type MockSupplierRepository struct {
	mock.Mock
}

func (m *MockSupplierRepository) FindByID(ctx context.Context, scope identity.Scope, id uuid.UUID) (*partner.Supplier, error) {
	args := m.Called(ctx, scope, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) FindByIDUnscoped(ctx context.Context, id uuid.UUID) (*partner.Supplier, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Supplier), args.Error(1)
}

func (m *MockSupplierRepository) FindAll(ctx context.Context, scope identity.Scope, filter shared.Filter) (shared.Paginated[*partner.Supplier], error) {
	args := m.Called(ctx, scope, filter)
	return args.Get(0).(shared.Paginated[*partner.Supplier]), args.Error(1)
}

func (m *MockSupplierRepository) CountPurchases(ctx context.Context, supplierID uuid.UUID) (int64, error) {
	args := m.Called(ctx, supplierID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSupplierRepository) Save(ctx context.Context, supplier *partner.Supplier) error {
	args := m.Called(ctx, supplier)
	return args.Error(0)
}

func (m *MockSupplierRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// fakeUnitOfWork runs the transactional function against the same mocks
// the service was built with, without a real transaction
type fakeUnitOfWork struct {
	repos billing.TxRepos
}

func (f *fakeUnitOfWork) InTransaction(ctx context.Context, fn func(repos billing.TxRepos) error) error {
	return fn(f.repos)
}
