package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/schoolkart/backend/internal/domain/identity"
	"github.com/schoolkart/backend/internal/domain/shared"
	"github.com/schoolkart/backend/internal/interfaces/http/dto"
	"github.com/schoolkart/backend/internal/interfaces/http/middleware"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// Success sends a 200 response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// SuccessWithMeta sends a 200 response with pagination meta
func (h *BaseHandler) SuccessWithMeta(c *gin.Context, data any, total int64, page, limit int) {
	c.JSON(http.StatusOK, dto.NewSuccessResponseWithMeta(data, total, page, limit))
}

// Created sends a 201 response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// NoContent sends a 204 response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// BadRequest sends a 400 response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.ErrCodeBadRequest, message))
}

// HandleError maps domain errors to HTTP responses. Unknown errors
// become opaque 500s.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		c.JSON(dto.GetHTTPStatus(domainErr.Code),
			dto.NewErrorResponse(domainErr.Code, domainErr.Message))
		return
	}

	c.JSON(http.StatusInternalServerError,
		dto.NewErrorResponse(dto.ErrCodeInternal, "An unexpected error occurred"))
}

// requestScope returns the authenticated caller's scope, aborting with
// 401 when the auth middleware did not run
func (h *BaseHandler) requestScope(c *gin.Context) (identity.Scope, bool) {
	scope, ok := middleware.GetScope(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized,
			dto.NewErrorResponse(dto.ErrCodeUnauthorized, "Authentication required"))
		return identity.Scope{}, false
	}
	return scope, true
}

// pathID parses the :id path parameter
func (h *BaseHandler) pathID(c *gin.Context) (uuid.UUID, bool) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid ID")
		return uuid.Nil, false
	}
	id, err := uuid.Parse(req.ID)
	if err != nil {
		h.BadRequest(c, "Invalid ID")
		return uuid.Nil, false
	}
	return id, true
}

// dateLayout is the expected format for date query parameters
const dateLayout = "2006-01-02"

// bindDateFilter parses start_date and end_date query parameters into
// the filter map, rejecting malformed values
func bindDateFilter(c *gin.Context, h *BaseHandler, filters map[string]interface{}) bool {
	for _, key := range []string{"start_date", "end_date"} {
		v := c.Query(key)
		if v == "" {
			continue
		}
		t, err := time.Parse(dateLayout, v)
		if err != nil {
			h.BadRequest(c, fmt.Sprintf("Invalid %s, expected YYYY-MM-DD", key))
			return false
		}
		filters[key] = t
	}
	return true
}

// listFilter builds a shared.Filter from the common query parameters
func (h *BaseHandler) listFilter(c *gin.Context) shared.Filter {
	var req dto.ListRequest
	_ = c.ShouldBindQuery(&req)

	filter := shared.DefaultFilter()
	if req.Page > 0 {
		filter.Page = req.Page
	}
	if req.Limit > 0 {
		filter.Limit = req.Limit
	}
	filter.Search = req.Search
	return filter
}
