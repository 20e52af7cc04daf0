package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	billingapp "github.com/schoolkart/backend/internal/application/billing"
)

// CommissionHandler handles school commission endpoints
type CommissionHandler struct {
	BaseHandler
	commissionService *billingapp.CommissionService
}

// NewCommissionHandler creates a new CommissionHandler
func NewCommissionHandler(commissionService *billingapp.CommissionService) *CommissionHandler {
	return &CommissionHandler{commissionService: commissionService}
}

// RegisterRoutes registers commission routes
func (h *CommissionHandler) RegisterRoutes(rg *gin.RouterGroup) {
	commissions := rg.Group("/commissions")
	commissions.GET("", h.List)
	commissions.GET("/summary", h.Summary)
	commissions.GET("/:id", h.Get)
	commissions.POST("/:id/settle", h.Settle)

	rg.GET("/schools/:id/commissions", h.ListBySchool)
}

// List lists commissions visible to the caller
func (h *CommissionHandler) List(c *gin.Context) {
	scope, ok := h.requestScope(c)
	if !ok {
		return
	}

	filter := h.listFilter(c)
	if schoolID := c.Query("school_id"); schoolID != "" {
		filter.Filters["school_id"] = schoolID
	}
	if status := c.Query("status"); status != "" {
		filter.Filters["status"] = status
	}
	if v := c.Query("month"); v != "" {
		if month, err := strconv.Atoi(v); err == nil {
			filter.Filters["month"] = month
		}
	}
	if v := c.Query("year"); v != "" {
		if year, err := strconv.Atoi(v); err == nil {
			filter.Filters["year"] = year
		}
	}

	page, err := h.commissionService.List(c.Request.Context(), scope, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.Limit)
}

// ListBySchool lists one school's commissions
func (h *CommissionHandler) ListBySchool(c *gin.Context) {
	scope, ok := h.requestScope(c)
	if !ok {
		return
	}
	schoolID, ok := h.pathID(c)
	if !ok {
		return
	}

	filter := h.listFilter(c)
	if status := c.Query("status"); status != "" {
		filter.Filters["status"] = status
	}

	page, err := h.commissionService.ListBySchool(c.Request.Context(), scope, schoolID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.Limit)
}

// Summary aggregates commissions per school for a period. Defaults to
// the current month.
func (h *CommissionHandler) Summary(c *gin.Context) {
	scope, ok := h.requestScope(c)
	if !ok {
		return
	}

	now := time.Now()
	month := int(now.Month())
	year := now.Year()
	if v := c.Query("month"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			month = n
		}
	}
	if v := c.Query("year"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			year = n
		}
	}

	results, err := h.commissionService.Summarize(c.Request.Context(), scope, month, year)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, results)
}

// Get retrieves one commission
func (h *CommissionHandler) Get(c *gin.Context) {
	scope, ok := h.requestScope(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	result, err := h.commissionService.GetByID(c.Request.Context(), scope, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Settle marks a commission as paid out to the school
func (h *CommissionHandler) Settle(c *gin.Context) {
	scope, ok := h.requestScope(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	var req billingapp.SettleCommissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.commissionService.Settle(c.Request.Context(), scope, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
