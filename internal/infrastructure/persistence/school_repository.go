package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/schoolkart/backend/internal/domain/education"
	"github.com/schoolkart/backend/internal/domain/identity"
	"github.com/schoolkart/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormSchoolRepository implements education.SchoolRepository using GORM
type GormSchoolRepository struct {
	db *gorm.DB
}

// NewGormSchoolRepository creates a new GormSchoolRepository
func NewGormSchoolRepository(db *gorm.DB) *GormSchoolRepository {
	return &GormSchoolRepository{db: db}
}

// FindByID finds a school visible to the scope
func (r *GormSchoolRepository) FindByID(ctx context.Context, scope identity.Scope, id uuid.UUID) (*education.School, error) {
	var school education.School
	if err := scoped(r.db.WithContext(ctx), scope).
		First(&school, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &school, nil
}

// FindByIDUnscoped finds a school regardless of ownership. Callers use it
// to distinguish not-found from forbidden.
func (r *GormSchoolRepository) FindByIDUnscoped(ctx context.Context, id uuid.UUID) (*education.School, error) {
	var school education.School
	if err := r.db.WithContext(ctx).First(&school, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &school, nil
}

// FindAll finds schools visible to the scope with filtering
func (r *GormSchoolRepository) FindAll(ctx context.Context, scope identity.Scope, filter shared.Filter) (shared.Paginated[*education.School], error) {
	filter.Normalize()

	query := scoped(r.db.WithContext(ctx).Model(&education.School{}), scope)
	query = r.applyFilter(query, filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return shared.Paginated[*education.School]{}, err
	}

	var schools []*education.School
	if err := query.
		Order("name ASC").
		Offset(filter.Offset()).
		Limit(filter.Limit).
		Find(&schools).Error; err != nil {
		return shared.Paginated[*education.School]{}, err
	}

	return shared.NewPaginated(schools, total, filter.Page, filter.Limit), nil
}

// OwnedIDs returns the IDs of all schools visible to the scope
func (r *GormSchoolRepository) OwnedIDs(ctx context.Context, scope identity.Scope) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := scoped(r.db.WithContext(ctx).Model(&education.School{}), scope).
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// ExistsByCode checks whether a school with the code exists
func (r *GormSchoolRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&education.School{}).
		Where("code = ?", strings.ToUpper(code)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountStudents counts students enrolled at a school
func (r *GormSchoolRepository) CountStudents(ctx context.Context, schoolID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&education.Student{}).
		Where("school_id = ?", schoolID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a school
func (r *GormSchoolRepository) Save(ctx context.Context, school *education.School) error {
	return r.db.WithContext(ctx).Save(school).Error
}

// Delete deletes a school
func (r *GormSchoolRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&education.School{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormSchoolRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR code ILIKE ?", pattern, pattern)
	}
	for key, value := range filter.Filters {
		switch key {
		case "is_active":
			query = query.Where("is_active = ?", value)
		case "city":
			query = query.Where("address_city ILIKE ?", value)
		}
	}
	return query
}
