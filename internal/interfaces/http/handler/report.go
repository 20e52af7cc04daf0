package handler

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	reportapp "github.com/schoolkart/backend/internal/application/report"
)

// ReportHandler handles reporting and dashboard endpoints
type ReportHandler struct {
	BaseHandler
	reportService *reportapp.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *reportapp.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// RegisterRoutes registers report routes
func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/dashboard", h.Dashboard)

	reports := rg.Group("/reports")
	reports.GET("/sales", h.Sales)
	reports.GET("/school-performance", h.SchoolPerformance)
	reports.GET("/inventory-valuation", h.InventoryValuation)
}

// Dashboard returns the business-wide snapshot
func (h *ReportHandler) Dashboard(c *gin.Context) {
	scope, ok := h.requestScope(c)
	if !ok {
		return
	}

	result, err := h.reportService.Dashboard(c.Request.Context(), scope)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Sales returns daily sales totals for a date range
func (h *ReportHandler) Sales(c *gin.Context) {
	scope, ok := h.requestScope(c)
	if !ok {
		return
	}
	from, to, ok := h.dateRange(c)
	if !ok {
		return
	}

	result, err := h.reportService.SalesReport(c.Request.Context(), scope, from, to)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// SchoolPerformance ranks schools by revenue for a date range
func (h *ReportHandler) SchoolPerformance(c *gin.Context) {
	scope, ok := h.requestScope(c)
	if !ok {
		return
	}
	from, to, ok := h.dateRange(c)
	if !ok {
		return
	}

	results, err := h.reportService.SchoolPerformance(c.Request.Context(), scope, from, to)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, results)
}

// InventoryValuation returns stock value per category with reorder flags
func (h *ReportHandler) InventoryValuation(c *gin.Context) {
	scope, ok := h.requestScope(c)
	if !ok {
		return
	}

	results, err := h.reportService.InventoryValuation(c.Request.Context(), scope)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, results)
}

// dateRange parses optional from and to query parameters. Zero values
// are defaulted by the service.
func (h *ReportHandler) dateRange(c *gin.Context) (from, to time.Time, ok bool) {
	parse := func(key string) (time.Time, bool) {
		v := c.Query(key)
		if v == "" {
			return time.Time{}, true
		}
		t, err := time.Parse(dateLayout, v)
		if err != nil {
			h.BadRequest(c, fmt.Sprintf("Invalid %s, expected YYYY-MM-DD", key))
			return time.Time{}, false
		}
		return t, true
	}

	if from, ok = parse("from"); !ok {
		return
	}
	if to, ok = parse("to"); !ok {
		return
	}
	return from, to, true
}
