package reporting

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/schoolkart/backend/internal/domain/identity"
	"github.com/shopspring/decimal"
)

// SalesReportRow is one day of sales
type SalesReportRow struct {
	Date         time.Time
	InvoiceCount int64
	Subtotal     decimal.Decimal
	GstAmount    decimal.Decimal
	Total        decimal.Decimal
}

// TopProductRow ranks one product by revenue over the report range
type TopProductRow struct {
	ProductID    uuid.UUID
	ProductName  string
	QuantitySold int64
	Revenue      decimal.Decimal
}

// SalesReport summarizes sales over a date range
type SalesReport struct {
	From         time.Time
	To           time.Time
	Rows         []SalesReportRow
	TopProducts  []TopProductRow
	InvoiceCount int64
	TotalSales   decimal.Decimal
	TotalGst     decimal.Decimal
}

// ClassSalesRow is one class's share of a school's sales
type ClassSalesRow struct {
	SchoolID     uuid.UUID
	Class        string
	StudentCount int64
	InvoiceCount int64
	TotalSales   decimal.Decimal
}

// SchoolPerformanceRow summarizes one school's contribution
type SchoolPerformanceRow struct {
	SchoolID          uuid.UUID
	SchoolName        string
	StudentCount      int64
	InvoiceCount      int64
	TotalSales        decimal.Decimal
	CommissionPending decimal.Decimal
	CommissionSettled decimal.Decimal
	ClassSales        []ClassSalesRow
}

// InventoryValuationRow values one category's stock at base price
type InventoryValuationRow struct {
	CategoryID   uuid.UUID
	CategoryName string
	ProductCount int64
	UnitsInStock int64
	StockValue   decimal.Decimal
}

// LowStockRow flags a product at or below its reorder level
type LowStockRow struct {
	ProductID     uuid.UUID
	ProductName   string
	Stock         int64
	MinStockLevel int64
}

// InventoryValuation values stock on hand and lists products to reorder
type InventoryValuation struct {
	Categories []InventoryValuationRow
	LowStock   []LowStockRow
	TotalUnits int64
	TotalValue decimal.Decimal
}

// RecentInvoiceRow is one line of the dashboard's latest-sales feed
type RecentInvoiceRow struct {
	InvoiceID     uuid.UUID
	InvoiceNumber string
	StudentName   string
	InvoiceDate   time.Time
	TotalAmount   decimal.Decimal
	PaymentStatus string
}

// TopSchoolRow ranks one school by sales for the current month
type TopSchoolRow struct {
	SchoolID     uuid.UUID
	SchoolName   string
	InvoiceCount int64
	TotalSales   decimal.Decimal
}

// DashboardSummary is the landing page snapshot
type DashboardSummary struct {
	TodaySales        decimal.Decimal
	TodayInvoices     int64
	MonthSales        decimal.Decimal
	MonthInvoices     int64
	SchoolCount       int64
	StudentCount      int64
	ProductCount      int64
	LowStockCount     int64
	PendingCommission decimal.Decimal
	PendingCount      int64
	RecentInvoices    []RecentInvoiceRow
	TopSchools        []TopSchoolRow
}

// SettlementRow is one settled commission payout
type SettlementRow struct {
	CommissionID     uuid.UUID
	InvoiceID        uuid.UUID
	Amount           decimal.Decimal
	SettlementDate   time.Time
	PaymentReference string
}

// SchoolDashboard is the per-school detail snapshot
type SchoolDashboard struct {
	SchoolID          uuid.UUID
	StudentCount      int64
	InvoiceCount      int64
	TotalSales        decimal.Decimal
	CommissionPending decimal.Decimal
	CommissionSettled decimal.Decimal
	ClassBreakdown    []ClassSalesRow
	RecentSettlements []SettlementRow
}

// Repository runs the read-only aggregations behind reports and
// dashboards. All queries respect the caller's scope.
type Repository interface {
	SalesReport(ctx context.Context, scope identity.Scope, from, to time.Time) (*SalesReport, error)
	SchoolPerformance(ctx context.Context, scope identity.Scope, from, to time.Time) ([]SchoolPerformanceRow, error)
	InventoryValuation(ctx context.Context, scope identity.Scope) (*InventoryValuation, error)
	Dashboard(ctx context.Context, scope identity.Scope) (*DashboardSummary, error)
	SchoolDashboard(ctx context.Context, scope identity.Scope, schoolID uuid.UUID) (*SchoolDashboard, error)
}
