package report

import (
	"time"

	"github.com/schoolkart/backend/internal/domain/reporting"
	"github.com/shopspring/decimal"
)

// SalesReportRowResponse is one day of the sales report
type SalesReportRowResponse struct {
	Date         string          `json:"date"`
	InvoiceCount int64           `json:"invoiceCount"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	GstAmount    decimal.Decimal `json:"gstAmount"`
	Total        decimal.Decimal `json:"total"`
}

// TopProductResponse ranks one product by revenue
type TopProductResponse struct {
	ProductID    string          `json:"productId"`
	ProductName  string          `json:"productName"`
	QuantitySold int64           `json:"quantitySold"`
	Revenue      decimal.Decimal `json:"revenue"`
}

// SalesReportResponse summarizes sales over a date range
type SalesReportResponse struct {
	From         string                   `json:"from"`
	To           string                   `json:"to"`
	Rows         []SalesReportRowResponse `json:"rows"`
	TopProducts  []TopProductResponse     `json:"topProducts"`
	InvoiceCount int64                    `json:"invoiceCount"`
	TotalSales   decimal.Decimal          `json:"totalSales"`
	TotalGst     decimal.Decimal          `json:"totalGst"`
}

// ToSalesReportResponse maps a sales report to its public view
func ToSalesReportResponse(r *reporting.SalesReport) SalesReportResponse {
	rows := make([]SalesReportRowResponse, len(r.Rows))
	for i, row := range r.Rows {
		rows[i] = SalesReportRowResponse{
			Date:         row.Date.Format("2006-01-02"),
			InvoiceCount: row.InvoiceCount,
			Subtotal:     row.Subtotal,
			GstAmount:    row.GstAmount,
			Total:        row.Total,
		}
	}
	topProducts := make([]TopProductResponse, len(r.TopProducts))
	for i, p := range r.TopProducts {
		topProducts[i] = TopProductResponse{
			ProductID:    p.ProductID.String(),
			ProductName:  p.ProductName,
			QuantitySold: p.QuantitySold,
			Revenue:      p.Revenue,
		}
	}
	return SalesReportResponse{
		From:         r.From.Format("2006-01-02"),
		To:           r.To.Format("2006-01-02"),
		Rows:         rows,
		TopProducts:  topProducts,
		InvoiceCount: r.InvoiceCount,
		TotalSales:   r.TotalSales,
		TotalGst:     r.TotalGst,
	}
}

// ClassSalesResponse is one class's share of a school's sales
type ClassSalesResponse struct {
	Class        string          `json:"class"`
	StudentCount int64           `json:"studentCount"`
	InvoiceCount int64           `json:"invoiceCount"`
	TotalSales   decimal.Decimal `json:"totalSales"`
}

// ToClassSalesResponses maps class rows to their public view
func ToClassSalesResponses(rows []reporting.ClassSalesRow) []ClassSalesResponse {
	out := make([]ClassSalesResponse, len(rows))
	for i, row := range rows {
		out[i] = ClassSalesResponse{
			Class:        row.Class,
			StudentCount: row.StudentCount,
			InvoiceCount: row.InvoiceCount,
			TotalSales:   row.TotalSales,
		}
	}
	return out
}

// SchoolPerformanceResponse summarizes one school's contribution
type SchoolPerformanceResponse struct {
	SchoolID          string               `json:"schoolId"`
	SchoolName        string               `json:"schoolName"`
	StudentCount      int64                `json:"studentCount"`
	InvoiceCount      int64                `json:"invoiceCount"`
	TotalSales        decimal.Decimal      `json:"totalSales"`
	AverageSale       decimal.Decimal      `json:"averageSale"`
	CommissionPending decimal.Decimal      `json:"commissionPending"`
	CommissionSettled decimal.Decimal      `json:"commissionSettled"`
	ClassSales        []ClassSalesResponse `json:"classSales"`
}

// ToSchoolPerformanceResponses maps performance rows to their public view
func ToSchoolPerformanceResponses(rows []reporting.SchoolPerformanceRow) []SchoolPerformanceResponse {
	out := make([]SchoolPerformanceResponse, len(rows))
	for i, row := range rows {
		average := decimal.Zero
		if row.InvoiceCount > 0 {
			average = row.TotalSales.Div(decimal.NewFromInt(row.InvoiceCount)).Round(2)
		}
		out[i] = SchoolPerformanceResponse{
			SchoolID:          row.SchoolID.String(),
			SchoolName:        row.SchoolName,
			StudentCount:      row.StudentCount,
			InvoiceCount:      row.InvoiceCount,
			TotalSales:        row.TotalSales,
			AverageSale:       average,
			CommissionPending: row.CommissionPending,
			CommissionSettled: row.CommissionSettled,
			ClassSales:        ToClassSalesResponses(row.ClassSales),
		}
	}
	return out
}

// InventoryValuationResponse values one category's stock at base price
type InventoryValuationResponse struct {
	CategoryID   string          `json:"categoryId"`
	CategoryName string          `json:"categoryName"`
	ProductCount int64           `json:"productCount"`
	UnitsInStock int64           `json:"unitsInStock"`
	StockValue   decimal.Decimal `json:"stockValue"`
}

// LowStockResponse flags a product at or below its reorder level
type LowStockResponse struct {
	ProductID     string `json:"productId"`
	ProductName   string `json:"productName"`
	Stock         int64  `json:"stock"`
	MinStockLevel int64  `json:"minStockLevel"`
}

// InventoryReportResponse is the full valuation with reorder flags
type InventoryReportResponse struct {
	Categories []InventoryValuationResponse `json:"categories"`
	LowStock   []LowStockResponse           `json:"lowStock"`
	TotalUnits int64                        `json:"totalUnits"`
	TotalValue decimal.Decimal              `json:"totalValue"`
}

// ToInventoryReportResponse maps the valuation to its public view
func ToInventoryReportResponse(v *reporting.InventoryValuation) InventoryReportResponse {
	categories := make([]InventoryValuationResponse, len(v.Categories))
	for i, row := range v.Categories {
		categories[i] = InventoryValuationResponse{
			CategoryID:   row.CategoryID.String(),
			CategoryName: row.CategoryName,
			ProductCount: row.ProductCount,
			UnitsInStock: row.UnitsInStock,
			StockValue:   row.StockValue,
		}
	}
	lowStock := make([]LowStockResponse, len(v.LowStock))
	for i, row := range v.LowStock {
		lowStock[i] = LowStockResponse{
			ProductID:     row.ProductID.String(),
			ProductName:   row.ProductName,
			Stock:         row.Stock,
			MinStockLevel: row.MinStockLevel,
		}
	}
	return InventoryReportResponse{
		Categories: categories,
		LowStock:   lowStock,
		TotalUnits: v.TotalUnits,
		TotalValue: v.TotalValue,
	}
}

// RecentInvoiceResponse is one line of the dashboard's latest-sales feed
type RecentInvoiceResponse struct {
	InvoiceID     string          `json:"invoiceId"`
	InvoiceNumber string          `json:"invoiceNumber"`
	StudentName   string          `json:"studentName"`
	InvoiceDate   time.Time       `json:"invoiceDate"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	PaymentStatus string          `json:"paymentStatus"`
}

// TopSchoolResponse ranks one school by sales for the current month
type TopSchoolResponse struct {
	SchoolID     string          `json:"schoolId"`
	SchoolName   string          `json:"schoolName"`
	InvoiceCount int64           `json:"invoiceCount"`
	TotalSales   decimal.Decimal `json:"totalSales"`
}

// DashboardResponse is the landing page snapshot
type DashboardResponse struct {
	TodaySales        decimal.Decimal         `json:"todaySales"`
	TodayInvoices     int64                   `json:"todayInvoices"`
	MonthSales        decimal.Decimal         `json:"monthSales"`
	MonthInvoices     int64                   `json:"monthInvoices"`
	SchoolCount       int64                   `json:"schoolCount"`
	StudentCount      int64                   `json:"studentCount"`
	ProductCount      int64                   `json:"productCount"`
	LowStockCount     int64                   `json:"lowStockCount"`
	PendingCommission decimal.Decimal         `json:"pendingCommission"`
	PendingCount      int64                   `json:"pendingCount"`
	RecentInvoices    []RecentInvoiceResponse `json:"recentInvoices"`
	TopSchools        []TopSchoolResponse     `json:"topSchools"`
}

// ToDashboardResponse maps the dashboard summary to its public view
func ToDashboardResponse(d *reporting.DashboardSummary) DashboardResponse {
	recent := make([]RecentInvoiceResponse, len(d.RecentInvoices))
	for i, inv := range d.RecentInvoices {
		recent[i] = RecentInvoiceResponse{
			InvoiceID:     inv.InvoiceID.String(),
			InvoiceNumber: inv.InvoiceNumber,
			StudentName:   inv.StudentName,
			InvoiceDate:   inv.InvoiceDate,
			TotalAmount:   inv.TotalAmount,
			PaymentStatus: inv.PaymentStatus,
		}
	}
	topSchools := make([]TopSchoolResponse, len(d.TopSchools))
	for i, s := range d.TopSchools {
		topSchools[i] = TopSchoolResponse{
			SchoolID:     s.SchoolID.String(),
			SchoolName:   s.SchoolName,
			InvoiceCount: s.InvoiceCount,
			TotalSales:   s.TotalSales,
		}
	}
	return DashboardResponse{
		TodaySales:        d.TodaySales,
		TodayInvoices:     d.TodayInvoices,
		MonthSales:        d.MonthSales,
		MonthInvoices:     d.MonthInvoices,
		SchoolCount:       d.SchoolCount,
		StudentCount:      d.StudentCount,
		ProductCount:      d.ProductCount,
		LowStockCount:     d.LowStockCount,
		PendingCommission: d.PendingCommission,
		PendingCount:      d.PendingCount,
		RecentInvoices:    recent,
		TopSchools:        topSchools,
	}
}

// DateRange is the parsed from/to pair of a report query
type DateRange struct {
	From time.Time
	To   time.Time
}
