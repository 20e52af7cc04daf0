package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	partnerapp "github.com/schoolkart/backend/internal/application/partner"
	"github.com/schoolkart/backend/internal/infrastructure/gst"
)

// SupplierHandler handles supplier and GSTIN lookup endpoints
type SupplierHandler struct {
	BaseHandler
	supplierService *partnerapp.SupplierService
	gstClient       *gst.Client
}

// NewSupplierHandler creates a new SupplierHandler
func NewSupplierHandler(supplierService *partnerapp.SupplierService, gstClient *gst.Client) *SupplierHandler {
	return &SupplierHandler{supplierService: supplierService, gstClient: gstClient}
}

// RegisterRoutes registers supplier routes
func (h *SupplierHandler) RegisterRoutes(rg *gin.RouterGroup) {
	suppliers := rg.Group("/suppliers")
	suppliers.POST("", h.Create)
	suppliers.GET("", h.List)
	suppliers.GET("/:id", h.Get)
	suppliers.PUT("/:id", h.Update)
	suppliers.DELETE("/:id", h.Delete)

	rg.GET("/gst/:gstin", h.LookupGSTIN)
}

// Create registers a new supplier
func (h *SupplierHandler) Create(c *gin.Context) {
	scope, ok := h.requestScope(c)
	if !ok {
		return
	}

	var req partnerapp.CreateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.supplierService.Create(c.Request.Context(), scope, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// List lists suppliers visible to the caller
func (h *SupplierHandler) List(c *gin.Context) {
	scope, ok := h.requestScope(c)
	if !ok {
		return
	}

	filter := h.listFilter(c)
	if v := c.Query("is_active"); v != "" {
		if active, err := strconv.ParseBool(v); err == nil {
			filter.Filters["is_active"] = active
		}
	}

	page, err := h.supplierService.List(c.Request.Context(), scope, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.Limit)
}

// Get retrieves one supplier
func (h *SupplierHandler) Get(c *gin.Context) {
	scope, ok := h.requestScope(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	result, err := h.supplierService.GetByID(c.Request.Context(), scope, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Update updates a supplier's details
func (h *SupplierHandler) Update(c *gin.Context) {
	scope, ok := h.requestScope(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	var req partnerapp.UpdateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.supplierService.Update(c.Request.Context(), scope, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Delete removes a supplier
func (h *SupplierHandler) Delete(c *gin.Context) {
	scope, ok := h.requestScope(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	if err := h.supplierService.Delete(c.Request.Context(), scope, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// LookupGSTIN fetches taxpayer details for a GSTIN from the provider
func (h *SupplierHandler) LookupGSTIN(c *gin.Context) {
	if _, ok := h.requestScope(c); !ok {
		return
	}

	info, err := h.gstClient.Lookup(c.Request.Context(), c.Param("gstin"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, info)
}
