package shared

import (
	"time"

	"github.com/google/uuid"
)

// Entity is the base interface for all domain entities
type Entity interface {
	GetID() uuid.UUID
	GetCreatedAt() time.Time
	GetUpdatedAt() time.Time
}

// BaseEntity provides common fields for all entities
type BaseEntity struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// GetID returns the entity ID
func (e *BaseEntity) GetID() uuid.UUID {
	return e.ID
}

// GetCreatedAt returns the creation timestamp
func (e *BaseEntity) GetCreatedAt() time.Time {
	return e.CreatedAt
}

// GetUpdatedAt returns the last update timestamp
func (e *BaseEntity) GetUpdatedAt() time.Time {
	return e.UpdatedAt
}

// NewBaseEntity creates a new base entity with generated ID
func NewBaseEntity() BaseEntity {
	now := time.Now()
	return BaseEntity{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// OwnedEntity extends BaseEntity with a creator reference.
// CreatedBy drives ownership scoping: non-superadmin callers only see
// records they created. A nil CreatedBy marks a global/seeded record.
type OwnedEntity struct {
	BaseEntity
	CreatedBy *uuid.UUID `gorm:"type:uuid;index"`
}

// NewOwnedEntity creates a new entity owned by the given admin
func NewOwnedEntity(createdBy uuid.UUID) OwnedEntity {
	return OwnedEntity{
		BaseEntity: NewBaseEntity(),
		CreatedBy:  &createdBy,
	}
}

// IsOwnedBy reports whether the entity was created by the given admin
func (e *OwnedEntity) IsOwnedBy(adminID uuid.UUID) bool {
	return e.CreatedBy != nil && *e.CreatedBy == adminID
}

// GetCreatedBy returns the creator admin ID
func (e *OwnedEntity) GetCreatedBy() *uuid.UUID {
	return e.CreatedBy
}
