package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/schoolkart/backend/internal/domain/billing"
	"github.com/schoolkart/backend/internal/domain/catalog"
	"github.com/schoolkart/backend/internal/domain/education"
	"github.com/schoolkart/backend/internal/domain/identity"
	"github.com/schoolkart/backend/internal/domain/reporting"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormReportRepository implements reporting.Repository using GORM
type GormReportRepository struct {
	db *gorm.DB
}

// NewGormReportRepository creates a new GormReportRepository
func NewGormReportRepository(db *gorm.DB) *GormReportRepository {
	return &GormReportRepository{db: db}
}

// SalesReport summarizes invoices per day over a date range
func (r *GormReportRepository) SalesReport(ctx context.Context, scope identity.Scope, from, to time.Time) (*reporting.SalesReport, error) {
	query := scoped(r.db.WithContext(ctx).Model(&billing.Invoice{}), scope).
		Select(`DATE(invoice_date) AS date,
			COUNT(*) AS invoice_count,
			COALESCE(SUM(subtotal), 0) AS subtotal,
			COALESCE(SUM(gst_amount), 0) AS gst_amount,
			COALESCE(SUM(total_amount), 0) AS total`).
		Where("invoice_date >= ? AND invoice_date <= ?", from, to).
		Group("DATE(invoice_date)").
		Order("date ASC")

	var rows []reporting.SalesReportRow
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}

	topQuery := scoped(r.db.WithContext(ctx).Model(&billing.Invoice{}), scope).
		Select(`invoice_items.product_id,
			invoice_items.product_name,
			COALESCE(SUM(invoice_items.quantity), 0) AS quantity_sold,
			COALESCE(SUM(invoice_items.total), 0) AS revenue`).
		Joins("JOIN invoice_items ON invoice_items.invoice_id = invoices.id").
		Where("invoice_date >= ? AND invoice_date <= ?", from, to).
		Group("invoice_items.product_id, invoice_items.product_name").
		Order("revenue DESC").
		Limit(10)

	var topProducts []reporting.TopProductRow
	if err := topQuery.Scan(&topProducts).Error; err != nil {
		return nil, err
	}

	report := &reporting.SalesReport{
		From:        from,
		To:          to,
		Rows:        rows,
		TopProducts: topProducts,
		TotalSales:  decimal.Zero,
		TotalGst:    decimal.Zero,
	}
	for _, row := range rows {
		report.InvoiceCount += row.InvoiceCount
		report.TotalSales = report.TotalSales.Add(row.Total)
		report.TotalGst = report.TotalGst.Add(row.GstAmount)
	}
	return report, nil
}

// SchoolPerformance summarizes invoice and commission totals per school,
// with a class-wise breakdown of each school's sales
func (r *GormReportRepository) SchoolPerformance(ctx context.Context, scope identity.Scope, from, to time.Time) ([]reporting.SchoolPerformanceRow, error) {
	query := r.db.WithContext(ctx).Model(&education.School{}).
		Select(`schools.id AS school_id,
			schools.name AS school_name,
			(SELECT COUNT(*) FROM students WHERE students.school_id = schools.id) AS student_count,
			COUNT(invoices.id) AS invoice_count,
			COALESCE(SUM(invoices.total_amount), 0) AS total_sales,
			COALESCE((SELECT SUM(amount) FROM commissions
				WHERE commissions.school_id = schools.id AND commissions.status = 'pending'), 0) AS commission_pending,
			COALESCE((SELECT SUM(amount) FROM commissions
				WHERE commissions.school_id = schools.id AND commissions.status = 'settled'), 0) AS commission_settled`).
		Joins("LEFT JOIN invoices ON invoices.school_id = schools.id AND invoices.invoice_date >= ? AND invoices.invoice_date <= ?", from, to).
		Group("schools.id, schools.name").
		Order("total_sales DESC")
	if !scope.Unrestricted {
		query = query.Where("schools.created_by = ?", scope.AdminID)
	}

	var rows []reporting.SchoolPerformanceRow
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}

	classQuery := r.db.WithContext(ctx).Model(&billing.Invoice{}).
		Select(`invoices.school_id,
			students.class,
			COUNT(DISTINCT students.id) AS student_count,
			COUNT(*) AS invoice_count,
			COALESCE(SUM(invoices.total_amount), 0) AS total_sales`).
		Joins("JOIN students ON students.id = invoices.student_id").
		Where("invoices.invoice_date >= ? AND invoices.invoice_date <= ?", from, to).
		Group("invoices.school_id, students.class").
		Order("invoices.school_id, students.class")
	if !scope.Unrestricted {
		classQuery = classQuery.Where("invoices.created_by = ?", scope.AdminID)
	}

	var classRows []reporting.ClassSalesRow
	if err := classQuery.Scan(&classRows).Error; err != nil {
		return nil, err
	}

	bySchool := make(map[uuid.UUID][]reporting.ClassSalesRow, len(rows))
	for _, cr := range classRows {
		bySchool[cr.SchoolID] = append(bySchool[cr.SchoolID], cr)
	}
	for i := range rows {
		rows[i].ClassSales = bySchool[rows[i].SchoolID]
	}
	return rows, nil
}

// InventoryValuation values stock on hand at base price per category and
// lists products at or below their reorder level
func (r *GormReportRepository) InventoryValuation(ctx context.Context, scope identity.Scope) (*reporting.InventoryValuation, error) {
	query := r.db.WithContext(ctx).Model(&catalog.Product{}).
		Select(`products.category_id,
			categories.name AS category_name,
			COUNT(*) AS product_count,
			COALESCE(SUM(products.stock), 0) AS units_in_stock,
			COALESCE(SUM(products.stock * products.base_price), 0) AS stock_value`).
		Joins("JOIN categories ON categories.id = products.category_id").
		Where("products.is_active = ?", true).
		Group("products.category_id, categories.name").
		Order("stock_value DESC")
	if !scope.Unrestricted {
		query = query.Where("products.created_by = ?", scope.AdminID)
	}

	var rows []reporting.InventoryValuationRow
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}

	lowQuery := scoped(r.db.WithContext(ctx).Model(&catalog.Product{}), scope).
		Select("id AS product_id, name AS product_name, stock, min_stock_level").
		Where("is_active = ? AND stock <= min_stock_level", true).
		Order("stock ASC")

	var lowStock []reporting.LowStockRow
	if err := lowQuery.Scan(&lowStock).Error; err != nil {
		return nil, err
	}

	valuation := &reporting.InventoryValuation{
		Categories: rows,
		LowStock:   lowStock,
		TotalValue: decimal.Zero,
	}
	for _, row := range rows {
		valuation.TotalUnits += row.UnitsInStock
		valuation.TotalValue = valuation.TotalValue.Add(row.StockValue)
	}
	return valuation, nil
}

// Dashboard builds the landing page snapshot
func (r *GormReportRepository) Dashboard(ctx context.Context, scope identity.Scope) (*reporting.DashboardSummary, error) {
	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	summary := &reporting.DashboardSummary{
		TodaySales:        decimal.Zero,
		MonthSales:        decimal.Zero,
		PendingCommission: decimal.Zero,
	}

	type salesAgg struct {
		Count int64
		Total decimal.Decimal
	}

	var today salesAgg
	if err := scoped(r.db.WithContext(ctx).Model(&billing.Invoice{}), scope).
		Select("COUNT(*) AS count, COALESCE(SUM(total_amount), 0) AS total").
		Where("invoice_date >= ?", startOfDay).
		Scan(&today).Error; err != nil {
		return nil, err
	}
	summary.TodayInvoices = today.Count
	summary.TodaySales = today.Total

	var month salesAgg
	if err := scoped(r.db.WithContext(ctx).Model(&billing.Invoice{}), scope).
		Select("COUNT(*) AS count, COALESCE(SUM(total_amount), 0) AS total").
		Where("invoice_date >= ?", startOfMonth).
		Scan(&month).Error; err != nil {
		return nil, err
	}
	summary.MonthInvoices = month.Count
	summary.MonthSales = month.Total

	if err := scoped(r.db.WithContext(ctx).Model(&education.School{}), scope).
		Count(&summary.SchoolCount).Error; err != nil {
		return nil, err
	}

	studentQuery := r.db.WithContext(ctx).Model(&education.Student{})
	if !scope.Unrestricted {
		studentQuery = studentQuery.Where("school_id IN (?)", ownedSchools(r.db, scope))
	}
	if err := studentQuery.Count(&summary.StudentCount).Error; err != nil {
		return nil, err
	}

	if err := scoped(r.db.WithContext(ctx).Model(&catalog.Product{}), scope).
		Where("is_active = ?", true).
		Count(&summary.ProductCount).Error; err != nil {
		return nil, err
	}

	if err := scoped(r.db.WithContext(ctx).Model(&catalog.Product{}), scope).
		Where("is_active = ? AND stock <= min_stock_level", true).
		Count(&summary.LowStockCount).Error; err != nil {
		return nil, err
	}

	var pending salesAgg
	commissionQuery := r.db.WithContext(ctx).Model(&billing.Commission{}).
		Select("COUNT(*) AS count, COALESCE(SUM(amount), 0) AS total").
		Where("status = ?", billing.CommissionPending)
	if !scope.Unrestricted {
		commissionQuery = commissionQuery.Where("school_id IN (?)", ownedSchools(r.db, scope))
	}
	if err := commissionQuery.Scan(&pending).Error; err != nil {
		return nil, err
	}
	summary.PendingCount = pending.Count
	summary.PendingCommission = pending.Total

	recentQuery := r.db.WithContext(ctx).Model(&billing.Invoice{}).
		Select(`invoices.id AS invoice_id,
			invoices.invoice_number,
			students.name AS student_name,
			invoices.invoice_date,
			invoices.total_amount,
			invoices.payment_status`).
		Joins("JOIN students ON students.id = invoices.student_id").
		Order("invoices.invoice_date DESC").
		Limit(10)
	if !scope.Unrestricted {
		recentQuery = recentQuery.Where("invoices.created_by = ?", scope.AdminID)
	}
	if err := recentQuery.Scan(&summary.RecentInvoices).Error; err != nil {
		return nil, err
	}

	topQuery := r.db.WithContext(ctx).Model(&billing.Invoice{}).
		Select(`invoices.school_id,
			schools.name AS school_name,
			COUNT(*) AS invoice_count,
			COALESCE(SUM(invoices.total_amount), 0) AS total_sales`).
		Joins("JOIN schools ON schools.id = invoices.school_id").
		Where("invoices.invoice_date >= ?", startOfMonth).
		Group("invoices.school_id, schools.name").
		Order("total_sales DESC").
		Limit(10)
	if !scope.Unrestricted {
		topQuery = topQuery.Where("invoices.created_by = ?", scope.AdminID)
	}
	if err := topQuery.Scan(&summary.TopSchools).Error; err != nil {
		return nil, err
	}

	return summary, nil
}

// SchoolDashboard builds the per-school detail snapshot
func (r *GormReportRepository) SchoolDashboard(ctx context.Context, scope identity.Scope, schoolID uuid.UUID) (*reporting.SchoolDashboard, error) {
	dash := &reporting.SchoolDashboard{
		SchoolID:          schoolID,
		TotalSales:        decimal.Zero,
		CommissionPending: decimal.Zero,
		CommissionSettled: decimal.Zero,
	}

	if err := r.db.WithContext(ctx).Model(&education.Student{}).
		Where("school_id = ?", schoolID).
		Count(&dash.StudentCount).Error; err != nil {
		return nil, err
	}

	type salesAgg struct {
		Count int64
		Total decimal.Decimal
	}
	var sales salesAgg
	if err := r.db.WithContext(ctx).Model(&billing.Invoice{}).
		Select("COUNT(*) AS count, COALESCE(SUM(total_amount), 0) AS total").
		Where("school_id = ?", schoolID).
		Scan(&sales).Error; err != nil {
		return nil, err
	}
	dash.InvoiceCount = sales.Count
	dash.TotalSales = sales.Total

	type commissionAgg struct {
		Status billing.CommissionStatus
		Total  decimal.Decimal
	}
	var commissions []commissionAgg
	if err := r.db.WithContext(ctx).Model(&billing.Commission{}).
		Select("status, COALESCE(SUM(amount), 0) AS total").
		Where("school_id = ?", schoolID).
		Group("status").
		Scan(&commissions).Error; err != nil {
		return nil, err
	}
	for _, c := range commissions {
		switch c.Status {
		case billing.CommissionPending:
			dash.CommissionPending = c.Total
		case billing.CommissionSettled:
			dash.CommissionSettled = c.Total
		}
	}

	classQuery := r.db.WithContext(ctx).Model(&education.Student{}).
		Select(`students.school_id,
			students.class,
			COUNT(DISTINCT students.id) AS student_count,
			COUNT(invoices.id) AS invoice_count,
			COALESCE(SUM(invoices.total_amount), 0) AS total_sales`).
		Joins("LEFT JOIN invoices ON invoices.student_id = students.id").
		Where("students.school_id = ?", schoolID).
		Group("students.school_id, students.class").
		Order("students.class ASC")
	if err := classQuery.Scan(&dash.ClassBreakdown).Error; err != nil {
		return nil, err
	}

	settlementQuery := r.db.WithContext(ctx).Model(&billing.Commission{}).
		Select("id AS commission_id, invoice_id, amount, settlement_date, payment_reference").
		Where("school_id = ? AND status = ?", schoolID, billing.CommissionSettled).
		Order("settlement_date DESC").
		Limit(10)
	if err := settlementQuery.Scan(&dash.RecentSettlements).Error; err != nil {
		return nil, err
	}

	return dash, nil
}
