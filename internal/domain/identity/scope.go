package identity

import (
	"github.com/google/uuid"
)

// Scope is the ownership filter applied to every query on owned entities.
// A superadmin's scope is unrestricted; any other admin is restricted to
// records they created (owner-equality), or for school-derived lookups,
// to the set of schools they own.
type Scope struct {
	AdminID      uuid.UUID
	Unrestricted bool
}

// NewScope builds the scope for an authenticated admin
func NewScope(admin *Admin) Scope {
	return Scope{
		AdminID:      admin.ID,
		Unrestricted: admin.IsSuperadmin(),
	}
}

// ScopeFor builds a scope directly from an admin ID and role
func ScopeFor(adminID uuid.UUID, role Role) Scope {
	return Scope{
		AdminID:      adminID,
		Unrestricted: role == RoleSuperadmin,
	}
}

// Owns reports whether the scope permits touching a record created by
// the given admin. A nil creator is only reachable by superadmins.
func (s Scope) Owns(createdBy *uuid.UUID) bool {
	if s.Unrestricted {
		return true
	}
	return createdBy != nil && *createdBy == s.AdminID
}
