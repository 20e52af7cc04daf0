package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	educationapp "github.com/schoolkart/backend/internal/application/education"
)

// defaultSearchLimit caps typeahead results
const defaultSearchLimit = 20

// StudentHandler handles student endpoints
type StudentHandler struct {
	BaseHandler
	studentService *educationapp.StudentService
}

// NewStudentHandler creates a new StudentHandler
func NewStudentHandler(studentService *educationapp.StudentService) *StudentHandler {
	return &StudentHandler{studentService: studentService}
}

// RegisterRoutes registers student routes
func (h *StudentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	students := rg.Group("/students")
	students.POST("", h.Create)
	students.GET("", h.List)
	students.GET("/search", h.Search)
	students.GET("/:id", h.Get)
	students.PUT("/:id", h.Update)
	students.DELETE("/:id", h.Delete)

	rg.POST("/schools/:id/students/import", h.Import)
}

// Create enrolls a new student
func (h *StudentHandler) Create(c *gin.Context) {
	scope, ok := h.requestScope(c)
	if !ok {
		return
	}

	var req educationapp.CreateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.studentService.Create(c.Request.Context(), scope, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// List lists students visible to the caller
func (h *StudentHandler) List(c *gin.Context) {
	scope, ok := h.requestScope(c)
	if !ok {
		return
	}

	filter := h.listFilter(c)
	if schoolID := c.Query("school_id"); schoolID != "" {
		filter.Filters["school_id"] = schoolID
	}
	if class := c.Query("class"); class != "" {
		filter.Filters["class"] = class
	}
	if section := c.Query("section"); section != "" {
		filter.Filters["section"] = section
	}
	if v := c.Query("is_active"); v != "" {
		if active, err := strconv.ParseBool(v); err == nil {
			filter.Filters["is_active"] = active
		}
	}

	page, err := h.studentService.List(c.Request.Context(), scope, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.Limit)
}

// Search finds students by name or roll number fragment
func (h *StudentHandler) Search(c *gin.Context) {
	scope, ok := h.requestScope(c)
	if !ok {
		return
	}

	limit := defaultSearchLimit
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}

	results, err := h.studentService.Search(c.Request.Context(), scope, c.Query("q"), limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, results)
}

// Get retrieves one student
func (h *StudentHandler) Get(c *gin.Context) {
	scope, ok := h.requestScope(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	result, err := h.studentService.GetByID(c.Request.Context(), scope, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Update updates a student's details
func (h *StudentHandler) Update(c *gin.Context) {
	scope, ok := h.requestScope(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	var req educationapp.UpdateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.studentService.Update(c.Request.Context(), scope, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Delete removes a student
func (h *StudentHandler) Delete(c *gin.Context) {
	scope, ok := h.requestScope(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	if err := h.studentService.Delete(c.Request.Context(), scope, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Import enrolls students from an uploaded CSV file
func (h *StudentHandler) Import(c *gin.Context) {
	scope, ok := h.requestScope(c)
	if !ok {
		return
	}
	schoolID, ok := h.pathID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.BadRequest(c, "A CSV file is required in the 'file' field")
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		h.BadRequest(c, "Unable to read uploaded file")
		return
	}
	defer file.Close()

	result, err := h.studentService.BulkImport(c.Request.Context(), scope, schoolID, file)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
