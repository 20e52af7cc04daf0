package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/schoolkart/backend/internal/domain/identity"
	"github.com/schoolkart/backend/internal/infrastructure/auth"
	"github.com/schoolkart/backend/internal/interfaces/http/dto"
)

// Auth context keys
const (
	ScopeKey      = "auth_scope"
	ClaimsKey     = "auth_claims"
	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "
)

// ScopeResolver resolves an authenticated admin into a query scope
type ScopeResolver interface {
	ResolveScope(ctx context.Context, adminID uuid.UUID) (identity.Scope, error)
}

// Auth validates the bearer token and resolves the caller's scope. The
// scope comes from the database on every request so deactivated admins
// lose access immediately, not at token expiry.
func Auth(jwtService *auth.JWTService, resolver ScopeResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(AuthHeaderKey)
		if header == "" {
			abortUnauthorized(c, "Missing authorization header")
			return
		}
		if !strings.HasPrefix(header, BearerPrefix) {
			abortUnauthorized(c, "Invalid authorization header format")
			return
		}

		tokenString := strings.TrimPrefix(header, BearerPrefix)
		claims, err := jwtService.ValidateToken(tokenString)
		if err != nil {
			if errors.Is(err, auth.ErrExpiredToken) {
				abortUnauthorized(c, "Token has expired")
				return
			}
			abortUnauthorized(c, "Invalid token")
			return
		}

		adminID, err := claims.GetAdminUUID()
		if err != nil {
			abortUnauthorized(c, "Invalid token")
			return
		}

		scope, err := resolver.ResolveScope(c.Request.Context(), adminID)
		if err != nil {
			abortUnauthorized(c, "Account is disabled or no longer exists")
			return
		}

		c.Set(ClaimsKey, claims)
		c.Set(ScopeKey, scope)
		c.Next()
	}
}

// RequireSuperadmin rejects callers without an unrestricted scope
func RequireSuperadmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		scope, ok := GetScope(c)
		if !ok || !scope.Unrestricted {
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponse(dto.ErrCodeForbidden, "Superadmin access required"))
			return
		}
		c.Next()
	}
}

// GetScope returns the resolved scope for the current request
func GetScope(c *gin.Context) (identity.Scope, bool) {
	value, ok := c.Get(ScopeKey)
	if !ok {
		return identity.Scope{}, false
	}
	scope, ok := value.(identity.Scope)
	return scope, ok
}

// GetClaims returns the validated token claims for the current request
func GetClaims(c *gin.Context) (*auth.Claims, bool) {
	value, ok := c.Get(ClaimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := value.(*auth.Claims)
	return claims, ok
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized,
		dto.NewErrorResponse(dto.ErrCodeUnauthorized, message))
}
