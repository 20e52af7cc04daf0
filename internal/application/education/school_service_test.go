package education

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/schoolkart/backend/internal/domain/reporting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newSchoolFixture() (*MockSchoolRepository, *MockReportRepository, *SchoolService) {
	schools := new(MockSchoolRepository)
	reports := new(MockReportRepository)
	service := NewSchoolService(schools, reports, zap.NewNop())
	return schools, reports, service
}

func TestSchoolService_Dashboard(t *testing.T) {
	schools, reports, service := newSchoolFixture()
	ctx := context.Background()
	school := newTestSchool()
	settledOn := time.Date(2026, time.August, 20, 0, 0, 0, 0, time.UTC)
	commissionID := uuid.New()
	invoiceID := uuid.New()

	schools.On("FindByIDUnscoped", ctx, school.ID).Return(school, nil)
	reports.On("SchoolDashboard", ctx, testScope(), school.ID).Return(&reporting.SchoolDashboard{
		SchoolID:          school.ID,
		StudentCount:      240,
		InvoiceCount:      18,
		TotalSales:        decimal.NewFromInt(54000),
		CommissionPending: decimal.NewFromInt(2700),
		CommissionSettled: decimal.NewFromInt(1800),
		ClassBreakdown: []reporting.ClassSalesRow{
			{SchoolID: school.ID, Class: "5", StudentCount: 40, InvoiceCount: 10, TotalSales: decimal.NewFromInt(30000)},
			{SchoolID: school.ID, Class: "6", StudentCount: 38, InvoiceCount: 8, TotalSales: decimal.NewFromInt(24000)},
		},
		RecentSettlements: []reporting.SettlementRow{
			{CommissionID: commissionID, InvoiceID: invoiceID, Amount: decimal.NewFromInt(1800),
				SettlementDate: settledOn, PaymentReference: "NEFT-20260820-0007"},
		},
	}, nil)

	result, err := service.Dashboard(ctx, testScope(), school.ID)

	require.NoError(t, err)
	assert.Equal(t, school.ID.String(), result.School.ID)
	assert.Equal(t, int64(240), result.StudentCount)
	assert.True(t, result.TotalSales.Equal(decimal.NewFromInt(54000)))
	require.Len(t, result.ClassBreakdown, 2)
	assert.Equal(t, "5", result.ClassBreakdown[0].Class)
	assert.Equal(t, int64(40), result.ClassBreakdown[0].StudentCount)
	assert.True(t, result.ClassBreakdown[0].TotalSales.Equal(decimal.NewFromInt(30000)))
	require.Len(t, result.RecentSettlements, 1)
	assert.Equal(t, commissionID.String(), result.RecentSettlements[0].CommissionID)
	assert.Equal(t, "NEFT-20260820-0007", result.RecentSettlements[0].PaymentReference)
	assert.True(t, settledOn.Equal(result.RecentSettlements[0].SettlementDate))
}
