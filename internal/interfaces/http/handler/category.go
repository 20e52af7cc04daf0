package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	catalogapp "github.com/schoolkart/backend/internal/application/catalog"
)

// CategoryHandler handles product category endpoints
type CategoryHandler struct {
	BaseHandler
	categoryService *catalogapp.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService *catalogapp.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// RegisterRoutes registers category routes
func (h *CategoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	categories := rg.Group("/categories")
	categories.POST("", h.Create)
	categories.GET("", h.List)
	categories.GET("/:id", h.Get)
	categories.PUT("/:id", h.Update)
	categories.DELETE("/:id", h.Delete)
}

// Create adds a new category
func (h *CategoryHandler) Create(c *gin.Context) {
	scope, ok := h.requestScope(c)
	if !ok {
		return
	}

	var req catalogapp.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.categoryService.Create(c.Request.Context(), scope, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// List lists categories visible to the caller
func (h *CategoryHandler) List(c *gin.Context) {
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

	page, err := h.categoryService.List(c.Request.Context(), scope, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.Limit)
}

// Get retrieves one category
func (h *CategoryHandler) Get(c *gin.Context) {
	scope, ok := h.requestScope(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	result, err := h.categoryService.GetByID(c.Request.Context(), scope, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Update updates a category
func (h *CategoryHandler) Update(c *gin.Context) {
	scope, ok := h.requestScope(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	var req catalogapp.UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.categoryService.Update(c.Request.Context(), scope, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Delete removes a category without products
func (h *CategoryHandler) Delete(c *gin.Context) {
	scope, ok := h.requestScope(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	if err := h.categoryService.Delete(c.Request.Context(), scope, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
