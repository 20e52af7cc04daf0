package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	billingapp "github.com/schoolkart/backend/internal/application/billing"
)

// InvoiceHandler handles sales invoice endpoints
type InvoiceHandler struct {
	BaseHandler
	invoiceService *billingapp.InvoiceService
}

// NewInvoiceHandler creates a new InvoiceHandler
func NewInvoiceHandler(invoiceService *billingapp.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// RegisterRoutes registers invoice routes
func (h *InvoiceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	invoices := rg.Group("/invoices")
	invoices.POST("", h.Create)
	invoices.GET("", h.List)
	invoices.GET("/:id", h.Get)
	invoices.PUT("/:id", h.Update)
	invoices.DELETE("/:id", h.Delete)
	invoices.GET("/:id/pdf", h.DownloadPDF)
}

// Create creates an invoice, reserving stock and recording commission
func (h *InvoiceHandler) Create(c *gin.Context) {
	scope, ok := h.requestScope(c)
	if !ok {
		return
	}

	var req billingapp.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.invoiceService.Create(c.Request.Context(), scope, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// List lists invoices visible to the caller
func (h *InvoiceHandler) List(c *gin.Context) {
	scope, ok := h.requestScope(c)
	if !ok {
		return
	}

	filter := h.listFilter(c)
	if studentID := c.Query("student_id"); studentID != "" {
		filter.Filters["student_id"] = studentID
	}
	if schoolID := c.Query("school_id"); schoolID != "" {
		filter.Filters["school_id"] = schoolID
	}
	if status := c.Query("payment_status"); status != "" {
		filter.Filters["payment_status"] = status
	}
	if !bindDateFilter(c, &h.BaseHandler, filter.Filters) {
		return
	}

	page, err := h.invoiceService.List(c.Request.Context(), scope, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.Limit)
}

// Get retrieves one invoice with its line items
func (h *InvoiceHandler) Get(c *gin.Context) {
	scope, ok := h.requestScope(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	result, err := h.invoiceService.GetByID(c.Request.Context(), scope, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Update replaces an unpaid invoice's items and payment details
func (h *InvoiceHandler) Update(c *gin.Context) {
	scope, ok := h.requestScope(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	var req billingapp.UpdateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.invoiceService.Update(c.Request.Context(), scope, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Delete removes an invoice, restoring stock
func (h *InvoiceHandler) Delete(c *gin.Context) {
	scope, ok := h.requestScope(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	if err := h.invoiceService.Delete(c.Request.Context(), scope, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// DownloadPDF renders the invoice as a PDF document
func (h *InvoiceHandler) DownloadPDF(c *gin.Context) {
	scope, ok := h.requestScope(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	pdf, err := h.invoiceService.RenderPDF(c.Request.Context(), scope, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=invoice-%s.pdf", id))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
