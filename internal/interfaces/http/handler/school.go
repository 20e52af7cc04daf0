package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	educationapp "github.com/schoolkart/backend/internal/application/education"
)

// SchoolHandler handles partner school endpoints
type SchoolHandler struct {
	BaseHandler
	schoolService *educationapp.SchoolService
}

// NewSchoolHandler creates a new SchoolHandler
func NewSchoolHandler(schoolService *educationapp.SchoolService) *SchoolHandler {
	return &SchoolHandler{schoolService: schoolService}
}

// RegisterRoutes registers school routes
func (h *SchoolHandler) RegisterRoutes(rg *gin.RouterGroup) {
	schools := rg.Group("/schools")
	schools.POST("", h.Create)
	schools.GET("", h.List)
	schools.GET("/:id", h.Get)
	schools.PUT("/:id", h.Update)
	schools.DELETE("/:id", h.Delete)
	schools.GET("/:id/dashboard", h.Dashboard)
}

// Create registers a new partner school
func (h *SchoolHandler) Create(c *gin.Context) {
	scope, ok := h.requestScope(c)
	if !ok {
		return
	}

	var req educationapp.CreateSchoolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.schoolService.Create(c.Request.Context(), scope, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// List lists schools visible to the caller
func (h *SchoolHandler) List(c *gin.Context) {
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
	if city := c.Query("city"); city != "" {
		filter.Filters["city"] = city
	}

	page, err := h.schoolService.List(c.Request.Context(), scope, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.Limit)
}

// Get retrieves one school
func (h *SchoolHandler) Get(c *gin.Context) {
	scope, ok := h.requestScope(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	result, err := h.schoolService.GetByID(c.Request.Context(), scope, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Update updates a school's details
func (h *SchoolHandler) Update(c *gin.Context) {
	scope, ok := h.requestScope(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	var req educationapp.UpdateSchoolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.schoolService.Update(c.Request.Context(), scope, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Delete removes a school without enrolled students
func (h *SchoolHandler) Delete(c *gin.Context) {
	scope, ok := h.requestScope(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	if err := h.schoolService.Delete(c.Request.Context(), scope, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Dashboard returns the per-school snapshot
func (h *SchoolHandler) Dashboard(c *gin.Context) {
	scope, ok := h.requestScope(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	result, err := h.schoolService.Dashboard(c.Request.Context(), scope, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
