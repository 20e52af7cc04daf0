package identity

import (
	"time"

	"github.com/schoolkart/backend/internal/domain/identity"
)

// LoginRequest is the credential payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued token and the authenticated admin
type LoginResponse struct {
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expiresAt"`
	Admin     AdminResponse `json:"admin"`
}

// CreateAdminRequest creates a new admin account
type CreateAdminRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"omitempty,oneof=admin superadmin"`
}

// AdminResponse is the public view of an admin account
type AdminResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToAdminResponse maps an admin to its public view
func ToAdminResponse(admin *identity.Admin) AdminResponse {
	return AdminResponse{
		ID:        admin.ID.String(),
		Username:  admin.Username,
		Email:     admin.Email,
		Role:      string(admin.Role),
		IsActive:  admin.IsActive,
		CreatedAt: admin.CreatedAt,
	}
}
