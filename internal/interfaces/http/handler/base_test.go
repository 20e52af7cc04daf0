package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/schoolkart/backend/internal/domain/shared"
	"github.com/schoolkart/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func decodeResponse(t *testing.T, body []byte) dto.Response {
	t.Helper()

	var resp dto.Response
	require.NoError(t, json.Unmarshal(body, &resp))
	return resp
}

func TestBaseHandler_HandleError(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedCode   string
	}{
		{"not found", shared.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"forbidden", shared.ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
		{"insufficient stock", shared.ErrInsufficientStock, http.StatusBadRequest, "INSUFFICIENT_STOCK"},
		{"business rule", shared.NewDomainError("BUSINESS_RULE", "Category has products"), http.StatusBadRequest, "BUSINESS_RULE"},
		{"unknown errors become opaque 500s", errors.New("pq: connection refused"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	h := &BaseHandler{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			h.HandleError(c, tt.err)

			assert.Equal(t, tt.expectedStatus, w.Code)
			resp := decodeResponse(t, w.Body.Bytes())
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.expectedCode, resp.Error.Code)
			if tt.expectedCode == "INTERNAL_ERROR" {
				assert.NotContains(t, resp.Error.Message, "pq:")
			}
		})
	}
}

func TestBaseHandler_PathID(t *testing.T) {
	h := &BaseHandler{}

	t.Run("valid uuid", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		want := uuid.New()
		c.Params = gin.Params{{Key: "id", Value: want.String()}}

		id, ok := h.pathID(c)

		assert.True(t, ok)
		assert.Equal(t, want, id)
	})

	t.Run("malformed id responds 400", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Params = gin.Params{{Key: "id", Value: "42"}}

		_, ok := h.pathID(c)

		assert.False(t, ok)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestBaseHandler_ListFilter(t *testing.T) {
	h := &BaseHandler{}

	t.Run("defaults", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/products", nil)

		filter := h.listFilter(c)

		assert.Equal(t, 1, filter.Page)
		assert.Equal(t, 10, filter.Limit)
		assert.Empty(t, filter.Search)
	})

	t.Run("query parameters override defaults", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/products?page=3&limit=50&search=notebook", nil)

		filter := h.listFilter(c)

		assert.Equal(t, 3, filter.Page)
		assert.Equal(t, 50, filter.Limit)
		assert.Equal(t, "notebook", filter.Search)
	})
}

func TestBindDateFilter(t *testing.T) {
	h := &BaseHandler{}

	t.Run("parses both bounds", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/invoices?start_date=2026-08-01&end_date=2026-08-31", nil)
		filters := map[string]interface{}{}

		ok := bindDateFilter(c, h, filters)

		require.True(t, ok)
		assert.Equal(t, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), filters["start_date"])
		assert.Equal(t, time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC), filters["end_date"])
	})

	t.Run("missing bounds are left out", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/invoices", nil)
		filters := map[string]interface{}{}

		ok := bindDateFilter(c, h, filters)

		require.True(t, ok)
		assert.Empty(t, filters)
	})

	t.Run("malformed date responds 400", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/invoices?start_date=31-08-2026", nil)

		ok := bindDateFilter(c, h, map[string]interface{}{})

		assert.False(t, ok)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "YYYY-MM-DD")
	})
}
