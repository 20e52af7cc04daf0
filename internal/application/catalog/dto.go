package catalog

import (
	"time"

	"github.com/schoolkart/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// CreateCategoryRequest creates a category
type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// UpdateCategoryRequest updates a category
type UpdateCategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	IsActive    *bool  `json:"isActive"`
}

// CategoryResponse is the public view of a category
type CategoryResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	IsGlobal    bool      `json:"isGlobal"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ToCategoryResponse maps a category to its public view
func ToCategoryResponse(c *catalog.Category) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID.String(),
		Name:        c.Name,
		Description: c.Description,
		IsGlobal:    c.CreatedBy == nil,
		IsActive:    c.IsActive,
		CreatedAt:   c.CreatedAt,
	}
}

// CreateProductRequest creates a product
type CreateProductRequest struct {
	Name          string          `json:"name" binding:"required"`
	CategoryID    string          `json:"categoryId" binding:"required,uuid"`
	Description   string          `json:"description"`
	BasePrice     decimal.Decimal `json:"basePrice" binding:"required"`
	GstRate       *decimal.Decimal `json:"gstRate"`
	Unit          string          `json:"unit" binding:"omitempty,oneof=piece box set kg liter"`
	Stock         int             `json:"stock" binding:"omitempty,min=0"`
	MinStockLevel *int            `json:"minStockLevel" binding:"omitempty,min=0"`
}

// UpdateProductRequest updates a product
type UpdateProductRequest struct {
	Name          string          `json:"name" binding:"required"`
	CategoryID    string          `json:"categoryId" binding:"required,uuid"`
	Description   string          `json:"description"`
	BasePrice     decimal.Decimal `json:"basePrice" binding:"required"`
	GstRate       decimal.Decimal `json:"gstRate"`
	Unit          string          `json:"unit" binding:"required,oneof=piece box set kg liter"`
	MinStockLevel int             `json:"minStockLevel" binding:"min=0"`
	IsActive      *bool           `json:"isActive"`
}

// AdjustStockRequest changes a product's stock by a signed quantity
type AdjustStockRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

// ProductResponse is the public view of a product
type ProductResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	CategoryID    string          `json:"categoryId"`
	CategoryName  string          `json:"categoryName,omitempty"`
	Description   string          `json:"description"`
	BasePrice     decimal.Decimal `json:"basePrice"`
	GstRate       decimal.Decimal `json:"gstRate"`
	Unit          string          `json:"unit"`
	Stock         int             `json:"stock"`
	MinStockLevel int             `json:"minStockLevel"`
	LowStock      bool            `json:"lowStock"`
	IsActive      bool            `json:"isActive"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// ToProductResponse maps a product to its public view
func ToProductResponse(p *catalog.Product) ProductResponse {
	resp := ProductResponse{
		ID:            p.ID.String(),
		Name:          p.Name,
		CategoryID:    p.CategoryID.String(),
		Description:   p.Description,
		BasePrice:     p.BasePrice,
		GstRate:       p.GstRate,
		Unit:          string(p.Unit),
		Stock:         p.Stock,
		MinStockLevel: p.MinStockLevel,
		LowStock:      p.IsLowStock(),
		IsActive:      p.IsActive,
		CreatedAt:     p.CreatedAt,
	}
	if p.Category != nil {
		resp.CategoryName = p.Category.Name
	}
	return resp
}
