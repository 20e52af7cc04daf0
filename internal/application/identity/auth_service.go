package identity

import (
	"context"
	"errors"

	"github.com/google/uuid"
	domainidentity "github.com/schoolkart/backend/internal/domain/identity"
	"github.com/schoolkart/backend/internal/domain/shared"
	"github.com/schoolkart/backend/internal/infrastructure/auth"
	"go.uber.org/zap"
)

// AuthService handles authentication and admin account management
type AuthService struct {
	adminRepo domainidentity.AdminRepository
	jwt       *auth.JWTService
	logger    *zap.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(adminRepo domainidentity.AdminRepository, jwt *auth.JWTService, logger *zap.Logger) *AuthService {
	return &AuthService{
		adminRepo: adminRepo,
		jwt:       jwt,
		logger:    logger.Named("auth"),
	}
}

// Login verifies credentials and issues a token. Invalid email and wrong
// password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	admin, err := s.adminRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("UNAUTHORIZED", "Invalid email or password")
		}
		return nil, err
	}

	if !admin.IsActive {
		return nil, shared.NewDomainError("UNAUTHORIZED", "Account is disabled")
	}
	if !auth.CheckPassword(admin.PasswordHash, req.Password) {
		s.logger.Info("failed login attempt", zap.String("email", req.Email))
		return nil, shared.NewDomainError("UNAUTHORIZED", "Invalid email or password")
	}

	token, expiresAt, err := s.jwt.GenerateToken(admin)
	if err != nil {
		return nil, err
	}

	s.logger.Info("admin logged in",
		zap.String("admin_id", admin.ID.String()),
		zap.String("role", string(admin.Role)))

	return &LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		Admin:     ToAdminResponse(admin),
	}, nil
}

// CreateAdmin registers a new admin account. Only superadmins may call it.
func (s *AuthService) CreateAdmin(ctx context.Context, scope domainidentity.Scope, req CreateAdminRequest) (*AdminResponse, error) {
	if !scope.Unrestricted {
		return nil, shared.ErrForbidden
	}

	exists, err := s.adminRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "An admin with this email already exists")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Password cannot be hashed")
	}

	admin, err := domainidentity.NewAdmin(req.Username, req.Email, hash, domainidentity.Role(req.Role))
	if err != nil {
		return nil, err
	}
	if err := s.adminRepo.Save(ctx, admin); err != nil {
		return nil, err
	}

	s.logger.Info("admin created",
		zap.String("admin_id", admin.ID.String()),
		zap.String("role", string(admin.Role)))

	resp := ToAdminResponse(admin)
	return &resp, nil
}

// GetProfile returns the authenticated admin's account
func (s *AuthService) GetProfile(ctx context.Context, adminID uuid.UUID) (*AdminResponse, error) {
	admin, err := s.adminRepo.FindByID(ctx, adminID)
	if err != nil {
		return nil, err
	}
	resp := ToAdminResponse(admin)
	return &resp, nil
}

// ResolveScope loads the admin and builds its query scope
func (s *AuthService) ResolveScope(ctx context.Context, adminID uuid.UUID) (domainidentity.Scope, error) {
	admin, err := s.adminRepo.FindByID(ctx, adminID)
	if err != nil {
		return domainidentity.Scope{}, err
	}
	if !admin.IsActive {
		return domainidentity.Scope{}, shared.ErrUnauthorized
	}
	return domainidentity.NewScope(admin), nil
}
