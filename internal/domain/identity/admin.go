package identity

import (
	"strings"
	"time"

	"github.com/schoolkart/backend/internal/domain/shared"
)

// Role represents an admin role
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleSuperadmin Role = "superadmin"
)

// IsValid reports whether the role is a known role
func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleSuperadmin
}

// Admin represents a back-office administrator account
type Admin struct {
	shared.BaseEntity
	Username     string `gorm:"type:varchar(100);not null"`
	Email        string `gorm:"type:varchar(200);not null;uniqueIndex"`
	PasswordHash string `gorm:"type:varchar(100);not null"`
	Role         Role   `gorm:"type:varchar(20);not null;default:'admin'"`
	IsActive     bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Admin) TableName() string {
	return "admins"
}

// NewAdmin creates a new admin account. The password hash is produced by
// the auth layer; the domain only stores it.
func NewAdmin(username, email, passwordHash string, role Role) (*Admin, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))
	if username == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Username is required")
	}
	if email == "" || !strings.Contains(email, "@") {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "A valid email is required")
	}
	if passwordHash == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Password is required")
	}
	if role == "" {
		role = RoleAdmin
	}
	if !role.IsValid() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Unknown role")
	}

	return &Admin{
		BaseEntity:   shared.NewBaseEntity(),
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
		IsActive:     true,
	}, nil
}

// IsSuperadmin reports whether the admin bypasses ownership scoping
func (a *Admin) IsSuperadmin() bool {
	return a.Role == RoleSuperadmin
}

// Deactivate disables the account
func (a *Admin) Deactivate() {
	a.IsActive = false
	a.UpdatedAt = time.Now()
}
