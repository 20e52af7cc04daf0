package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	catalogapp "github.com/schoolkart/backend/internal/application/catalog"
)

// ProductHandler handles product and stock endpoints
type ProductHandler struct {
	BaseHandler
	productService *catalogapp.ProductService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService *catalogapp.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// RegisterRoutes registers product routes
func (h *ProductHandler) RegisterRoutes(rg *gin.RouterGroup) {
	products := rg.Group("/products")
	products.POST("", h.Create)
	products.GET("", h.List)
	products.GET("/low-stock", h.LowStock)
	products.GET("/:id", h.Get)
	products.PUT("/:id", h.Update)
	products.DELETE("/:id", h.Delete)
	products.POST("/:id/stock", h.AdjustStock)
}

// Create adds a new product
func (h *ProductHandler) Create(c *gin.Context) {
	scope, ok := h.requestScope(c)
	if !ok {
		return
	}

	var req catalogapp.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.productService.Create(c.Request.Context(), scope, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// List lists products visible to the caller
func (h *ProductHandler) List(c *gin.Context) {
	scope, ok := h.requestScope(c)
	if !ok {
		return
	}

	filter := h.listFilter(c)
	if categoryID := c.Query("category_id"); categoryID != "" {
		filter.Filters["category_id"] = categoryID
	}
	if v := c.Query("is_active"); v != "" {
		if active, err := strconv.ParseBool(v); err == nil {
			filter.Filters["is_active"] = active
		}
	}
	if v := c.Query("low_stock"); v != "" {
		if low, err := strconv.ParseBool(v); err == nil {
			filter.Filters["low_stock"] = low
		}
	}

	page, err := h.productService.List(c.Request.Context(), scope, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.Limit)
}

// LowStock lists products at or below their minimum stock level
func (h *ProductHandler) LowStock(c *gin.Context) {
	scope, ok := h.requestScope(c)
	if !ok {
		return
	}

	results, err := h.productService.ListLowStock(c.Request.Context(), scope)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, results)
}

// Get retrieves one product
func (h *ProductHandler) Get(c *gin.Context) {
	scope, ok := h.requestScope(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	result, err := h.productService.GetByID(c.Request.Context(), scope, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Update updates a product's details
func (h *ProductHandler) Update(c *gin.Context) {
	scope, ok := h.requestScope(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	var req catalogapp.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.productService.Update(c.Request.Context(), scope, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Delete removes a product
func (h *ProductHandler) Delete(c *gin.Context) {
	scope, ok := h.requestScope(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	if err := h.productService.Delete(c.Request.Context(), scope, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// AdjustStock changes a product's stock by a signed quantity
func (h *ProductHandler) AdjustStock(c *gin.Context) {
	scope, ok := h.requestScope(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	var req catalogapp.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.productService.AdjustStock(c.Request.Context(), scope, id, req.Quantity)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
