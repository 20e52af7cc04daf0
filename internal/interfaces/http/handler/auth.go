package handler

import (
	"github.com/gin-gonic/gin"
	identityapp "github.com/schoolkart/backend/internal/application/identity"
	"github.com/schoolkart/backend/internal/interfaces/http/middleware"
)

// AuthHandler handles authentication and admin management endpoints
type AuthHandler struct {
	BaseHandler
	authService *identityapp.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *identityapp.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterPublicRoutes registers routes that do not require a token
func (h *AuthHandler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/auth/login", h.Login)
}

// RegisterRoutes registers authenticated routes
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/auth/profile", h.Profile)
	rg.POST("/auth/logout", h.Logout)

	admins := rg.Group("/admins", middleware.RequireSuperadmin())
	admins.POST("", h.CreateAdmin)
}

// Login verifies credentials and issues a token
func (h *AuthHandler) Login(c *gin.Context) {
	var req identityapp.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Profile returns the authenticated admin's account
func (h *AuthHandler) Profile(c *gin.Context) {
	scope, ok := h.requestScope(c)
	if !ok {
		return
	}

	result, err := h.authService.GetProfile(c.Request.Context(), scope.AdminID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Logout acknowledges a logout. Tokens are stateless, so the client
// discards the token; expiry bounds its remaining lifetime.
func (h *AuthHandler) Logout(c *gin.Context) {
	if _, ok := h.requestScope(c); !ok {
		return
	}
	h.Success(c, gin.H{"message": "Logged out"})
}

// CreateAdmin registers a new admin account (superadmin only)
func (h *AuthHandler) CreateAdmin(c *gin.Context) {
	scope, ok := h.requestScope(c)
	if !ok {
		return
	}

	var req identityapp.CreateAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.authService.CreateAdmin(c.Request.Context(), scope, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}
