package report

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/schoolkart/backend/internal/domain/identity"
	"github.com/schoolkart/backend/internal/domain/reporting"
	"github.com/schoolkart/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testAdminID = uuid.New()

func testScope() identity.Scope {
	return identity.Scope{AdminID: testAdminID}
}

// MockReportRepository mocks reporting.Repository
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

func newReportFixture() (*MockReportRepository, *ReportService) {
	reports := new(MockReportRepository)
	service := NewReportService(reports, zap.NewNop())
	return reports, service
}

func TestReportService_SalesReport(t *testing.T) {
	t.Run("explicit range is passed through", func(t *testing.T) {
		reports, service := newReportFixture()
		ctx := context.Background()
		from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

		notebookID := uuid.New()
		reports.On("SalesReport", ctx, testScope(), from, to).Return(&reporting.SalesReport{
			From: from,
			To:   to,
			Rows: []reporting.SalesReportRow{{Date: from, InvoiceCount: 3, Total: decimal.NewFromInt(4500)}},
			TopProducts: []reporting.TopProductRow{
				{ProductID: notebookID, ProductName: "Notebook", QuantitySold: 90, Revenue: decimal.NewFromInt(2700)},
			},
			InvoiceCount: 3,
			TotalSales:   decimal.NewFromInt(4500),
		}, nil)

		result, err := service.SalesReport(ctx, testScope(), from, to)

		require.NoError(t, err)
		assert.Equal(t, "2026-08-01", result.From)
		assert.Equal(t, int64(3), result.InvoiceCount)
		require.Len(t, result.Rows, 1)
		assert.Equal(t, "2026-08-01", result.Rows[0].Date)
		require.Len(t, result.TopProducts, 1)
		assert.Equal(t, notebookID.String(), result.TopProducts[0].ProductID)
		assert.Equal(t, int64(90), result.TopProducts[0].QuantitySold)
	})

	t.Run("empty range defaults to the current month", func(t *testing.T) {
		reports, service := newReportFixture()
		ctx := context.Background()

		reports.On("SalesReport", ctx, testScope(),
			mock.MatchedBy(func(from time.Time) bool {
				now := time.Now()
				return from.Day() == 1 && from.Month() == now.Month() && from.Year() == now.Year()
			}),
			mock.MatchedBy(func(to time.Time) bool {
				return time.Since(to) < time.Minute
			}),
		).Return(&reporting.SalesReport{}, nil)

		_, err := service.SalesReport(ctx, testScope(), time.Time{}, time.Time{})

		require.NoError(t, err)
		reports.AssertExpectations(t)
	})

	t.Run("reject inverted range", func(t *testing.T) {
		reports, service := newReportFixture()
		ctx := context.Background()
		from := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
		to := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

		_, err := service.SalesReport(ctx, testScope(), from, to)

		var derr *shared.DomainError
		require.True(t, errors.As(err, &derr))
		assert.Equal(t, "VALIDATION_ERROR", derr.Code)
		reports.AssertNotCalled(t, "SalesReport", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("reject ranges over a year", func(t *testing.T) {
		_, service := newReportFixture()
		ctx := context.Background()
		from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

		_, err := service.SalesReport(ctx, testScope(), from, to)

		var derr *shared.DomainError
		require.True(t, errors.As(err, &derr))
		assert.Contains(t, derr.Message, "one year")
	})
}

func TestReportService_SchoolPerformance(t *testing.T) {
	reports, service := newReportFixture()
	ctx := context.Background()
	from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	schoolID := uuid.New()

	reports.On("SchoolPerformance", ctx, testScope(), from, to).Return([]reporting.SchoolPerformanceRow{
		{
			SchoolID:          schoolID,
			SchoolName:        "Green Valley Public School",
			StudentCount:      240,
			InvoiceCount:      18,
			TotalSales:        decimal.NewFromInt(54000),
			CommissionPending: decimal.NewFromInt(2700),
			ClassSales: []reporting.ClassSalesRow{
				{SchoolID: schoolID, Class: "5", StudentCount: 40, InvoiceCount: 10, TotalSales: decimal.NewFromInt(30000)},
				{SchoolID: schoolID, Class: "6", StudentCount: 38, InvoiceCount: 8, TotalSales: decimal.NewFromInt(24000)},
			},
		},
	}, nil)

	result, err := service.SchoolPerformance(ctx, testScope(), from, to)

	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, schoolID.String(), result[0].SchoolID)
	assert.True(t, result[0].CommissionPending.Equal(decimal.NewFromInt(2700)))
	assert.True(t, result[0].AverageSale.Equal(decimal.NewFromInt(3000)), "average %s", result[0].AverageSale)
	require.Len(t, result[0].ClassSales, 2)
	assert.Equal(t, "5", result[0].ClassSales[0].Class)
	assert.True(t, result[0].ClassSales[0].TotalSales.Equal(decimal.NewFromInt(30000)))
}

func TestReportService_InventoryValuation(t *testing.T) {
	reports, service := newReportFixture()
	ctx := context.Background()
	categoryID := uuid.New()
	pencilID := uuid.New()

	reports.On("InventoryValuation", ctx, testScope()).Return(&reporting.InventoryValuation{
		Categories: []reporting.InventoryValuationRow{
			{CategoryID: categoryID, CategoryName: "Stationery", ProductCount: 12, UnitsInStock: 900, StockValue: decimal.NewFromInt(45000)},
		},
		LowStock: []reporting.LowStockRow{
			{ProductID: pencilID, ProductName: "HB Pencil", Stock: 4, MinStockLevel: 50},
		},
		TotalUnits: 900,
		TotalValue: decimal.NewFromInt(45000),
	}, nil)

	result, err := service.InventoryValuation(ctx, testScope())

	require.NoError(t, err)
	require.Len(t, result.Categories, 1)
	assert.Equal(t, categoryID.String(), result.Categories[0].CategoryID)
	require.Len(t, result.LowStock, 1)
	assert.Equal(t, pencilID.String(), result.LowStock[0].ProductID)
	assert.Equal(t, int64(4), result.LowStock[0].Stock)
	assert.True(t, result.TotalValue.Equal(decimal.NewFromInt(45000)))
}

func TestReportService_Dashboard(t *testing.T) {
	reports, service := newReportFixture()
	ctx := context.Background()

	invoiceID := uuid.New()
	schoolID := uuid.New()
	reports.On("Dashboard", ctx, testScope()).Return(&reporting.DashboardSummary{
		TodaySales:    decimal.NewFromInt(8200),
		TodayInvoices: 4,
		SchoolCount:   6,
		LowStockCount: 2,
		RecentInvoices: []reporting.RecentInvoiceRow{
			{InvoiceID: invoiceID, InvoiceNumber: "INV26080042", StudentName: "Asha Verma",
				TotalAmount: decimal.NewFromInt(1180), PaymentStatus: "paid"},
		},
		TopSchools: []reporting.TopSchoolRow{
			{SchoolID: schoolID, SchoolName: "Green Valley Public School",
				InvoiceCount: 12, TotalSales: decimal.NewFromInt(36000)},
		},
	}, nil)

	result, err := service.Dashboard(ctx, testScope())

	require.NoError(t, err)
	assert.True(t, result.TodaySales.Equal(decimal.NewFromInt(8200)))
	assert.Equal(t, int64(2), result.LowStockCount)
	require.Len(t, result.RecentInvoices, 1)
	assert.Equal(t, "INV26080042", result.RecentInvoices[0].InvoiceNumber)
	assert.Equal(t, "Asha Verma", result.RecentInvoices[0].StudentName)
	require.Len(t, result.TopSchools, 1)
	assert.Equal(t, schoolID.String(), result.TopSchools[0].SchoolID)
	assert.True(t, result.TopSchools[0].TotalSales.Equal(decimal.NewFromInt(36000)))
}
