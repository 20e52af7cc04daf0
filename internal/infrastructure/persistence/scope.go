package persistence

import (
	"github.com/schoolkart/backend/internal/domain/education"
	"github.com/schoolkart/backend/internal/domain/identity"
	"gorm.io/gorm"
)

// scoped narrows a query to records created by the scope's admin.
// Unrestricted scopes see everything.
func scoped(query *gorm.DB, scope identity.Scope) *gorm.DB {
	if scope.Unrestricted {
		return query
	}
	return query.Where("created_by = ?", scope.AdminID)
}

// scopedWithGlobal narrows like scoped but also admits records with no
// creator. Used for categories, where nil-creator rows are global.
func scopedWithGlobal(query *gorm.DB, scope identity.Scope) *gorm.DB {
	if scope.Unrestricted {
		return query
	}
	return query.Where("created_by = ? OR created_by IS NULL", scope.AdminID)
}

// ownedSchools returns a subquery selecting the IDs of schools the scope
// can see. School-derived records (students, commissions) are scoped
// through it; an admin who owns no schools matches nothing.
func ownedSchools(db *gorm.DB, scope identity.Scope) *gorm.DB {
	query := db.Model(&education.School{}).Select("id")
	if scope.Unrestricted {
		return query
	}
	return query.Where("created_by = ?", scope.AdminID)
}
