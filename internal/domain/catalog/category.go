package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/schoolkart/backend/internal/domain/shared"
)

// Category groups products. Categories with a nil creator are global and
// visible to every admin; admin-created categories follow the usual
// ownership scoping.
type Category struct {
	shared.OwnedEntity
	Name        string `gorm:"type:varchar(100);not null;uniqueIndex"`
	Description string `gorm:"type:text"`
	IsActive    bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Category) TableName() string {
	return "categories"
}

// NewCategory creates a new category owned by the given admin
func NewCategory(createdBy uuid.UUID, name, description string) (*Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Category name is required")
	}

	return &Category{
		OwnedEntity: shared.NewOwnedEntity(createdBy),
		Name:        name,
		Description: strings.TrimSpace(description),
		IsActive:    true,
	}, nil
}

// Update updates the category's details
func (c *Category) Update(name, description string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("VALIDATION_ERROR", "Category name is required")
	}
	c.Name = name
	c.Description = strings.TrimSpace(description)
	c.UpdatedAt = time.Now()
	return nil
}

// SetActive toggles the active flag
func (c *Category) SetActive(active bool) {
	c.IsActive = active
	c.UpdatedAt = time.Now()
}
