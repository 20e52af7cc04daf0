package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/schoolkart/backend/internal/domain/education"
	"github.com/schoolkart/backend/internal/domain/identity"
	"github.com/schoolkart/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormStudentRepository implements education.StudentRepository using GORM.
// Students are scoped through school ownership, not their own creator.
type GormStudentRepository struct {
	db *gorm.DB
}

// NewGormStudentRepository creates a new GormStudentRepository
func NewGormStudentRepository(db *gorm.DB) *GormStudentRepository {
	return &GormStudentRepository{db: db}
}

func (r *GormStudentRepository) scopedQuery(ctx context.Context, scope identity.Scope) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&education.Student{})
	if scope.Unrestricted {
		return query
	}
	return query.Where("school_id IN (?)", ownedSchools(r.db, scope))
}

// FindByID finds a student visible to the scope
func (r *GormStudentRepository) FindByID(ctx context.Context, scope identity.Scope, id uuid.UUID) (*education.Student, error) {
	var student education.Student
	if err := r.scopedQuery(ctx, scope).
		Preload("School").
		First(&student, "students.id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &student, nil
}

// FindByIDUnscoped finds a student regardless of ownership
func (r *GormStudentRepository) FindByIDUnscoped(ctx context.Context, id uuid.UUID) (*education.Student, error) {
	var student education.Student
	if err := r.db.WithContext(ctx).
		Preload("School").
		First(&student, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &student, nil
}

// FindByRollNumber finds a student by roll number within the scope
func (r *GormStudentRepository) FindByRollNumber(ctx context.Context, scope identity.Scope, rollNumber string) (*education.Student, error) {
	var student education.Student
	if err := r.scopedQuery(ctx, scope).
		Preload("School").
		Where("roll_number = ?", rollNumber).
		First(&student).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &student, nil
}

// FindAll finds students visible to the scope with filtering
func (r *GormStudentRepository) FindAll(ctx context.Context, scope identity.Scope, filter shared.Filter) (shared.Paginated[*education.Student], error) {
	filter.Normalize()

	query := r.applyFilter(r.scopedQuery(ctx, scope), filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return shared.Paginated[*education.Student]{}, err
	}

	var students []*education.Student
	if err := query.
		Preload("School").
		Order("name ASC").
		Offset(filter.Offset()).
		Limit(filter.Limit).
		Find(&students).Error; err != nil {
		return shared.Paginated[*education.Student]{}, err
	}

	return shared.NewPaginated(students, total, filter.Page, filter.Limit), nil
}

// Search finds students matching a name or roll number fragment, for the
// invoice screen's typeahead
func (r *GormStudentRepository) Search(ctx context.Context, scope identity.Scope, query string, limit int) ([]*education.Student, error) {
	if limit <= 0 || limit > 50 {
		limit = 20
	}
	pattern := "%" + query + "%"

	var students []*education.Student
	if err := r.scopedQuery(ctx, scope).
		Preload("School").
		Where("is_active = ?", true).
		Where("name ILIKE ? OR roll_number ILIKE ?", pattern, pattern).
		Order("name ASC").
		Limit(limit).
		Find(&students).Error; err != nil {
		return nil, err
	}
	return students, nil
}

// ExistsByRollNumber checks whether a student with the roll number exists
func (r *GormStudentRepository) ExistsByRollNumber(ctx context.Context, rollNumber string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&education.Student{}).
		Where("roll_number = ?", rollNumber).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a student
func (r *GormStudentRepository) Save(ctx context.Context, student *education.Student) error {
	return r.db.WithContext(ctx).Omit("School").Save(student).Error
}

// SaveAll creates students in bulk, all or nothing
func (r *GormStudentRepository) SaveAll(ctx context.Context, students []*education.Student) error {
	if len(students) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, s := range students {
			if err := tx.Omit("School").Save(s).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete deletes a student
func (r *GormStudentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&education.Student{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormStudentRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR roll_number ILIKE ?", pattern, pattern)
	}
	for key, value := range filter.Filters {
		switch key {
		case "school_id":
			query = query.Where("school_id = ?", value)
		case "class":
			query = query.Where("class = ?", value)
		case "section":
			query = query.Where("section = ?", value)
		case "is_active":
			query = query.Where("is_active = ?", value)
		}
	}
	return query
}
