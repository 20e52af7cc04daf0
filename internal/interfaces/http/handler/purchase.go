package handler

import (
	"github.com/gin-gonic/gin"
	billingapp "github.com/schoolkart/backend/internal/application/billing"
)

// PurchaseHandler handles supplier purchase endpoints
type PurchaseHandler struct {
	BaseHandler
	purchaseService *billingapp.PurchaseService
}

// NewPurchaseHandler creates a new PurchaseHandler
func NewPurchaseHandler(purchaseService *billingapp.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{purchaseService: purchaseService}
}

// RegisterRoutes registers purchase routes
func (h *PurchaseHandler) RegisterRoutes(rg *gin.RouterGroup) {
	purchases := rg.Group("/purchases")
	purchases.POST("", h.Create)
	purchases.GET("", h.List)
	purchases.GET("/:id", h.Get)
	purchases.PUT("/:id", h.Update)
	purchases.POST("/:id/payments", h.RecordPayment)
}

// Create records a purchase, adding the bought quantities to stock
func (h *PurchaseHandler) Create(c *gin.Context) {
	scope, ok := h.requestScope(c)
	if !ok {
		return
	}

	var req billingapp.CreatePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.purchaseService.Create(c.Request.Context(), scope, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// List lists purchases visible to the caller
func (h *PurchaseHandler) List(c *gin.Context) {
	scope, ok := h.requestScope(c)
	if !ok {
		return
	}

	filter := h.listFilter(c)
	if supplierID := c.Query("supplier_id"); supplierID != "" {
		filter.Filters["supplier_id"] = supplierID
	}
	// "status" is an accepted alias for the payment status
	if status := c.Query("status"); status != "" {
		filter.Filters["payment_status"] = status
	}
	if status := c.Query("payment_status"); status != "" {
		filter.Filters["payment_status"] = status
	}
	if !bindDateFilter(c, &h.BaseHandler, filter.Filters) {
		return
	}

	page, err := h.purchaseService.List(c.Request.Context(), scope, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.Limit)
}

// Get retrieves one purchase with its line items
func (h *PurchaseHandler) Get(c *gin.Context) {
	scope, ok := h.requestScope(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	result, err := h.purchaseService.GetByID(c.Request.Context(), scope, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Update replaces a purchase's items
func (h *PurchaseHandler) Update(c *gin.Context) {
	scope, ok := h.requestScope(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	var req billingapp.UpdatePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.purchaseService.Update(c.Request.Context(), scope, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// RecordPayment applies a payment towards a purchase
func (h *PurchaseHandler) RecordPayment(c *gin.Context) {
	scope, ok := h.requestScope(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	var req billingapp.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.purchaseService.RecordPayment(c.Request.Context(), scope, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
