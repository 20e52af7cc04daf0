package router

import (
	"github.com/gin-gonic/gin"
)

// RouteRegistrar registers authenticated routes on a group
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// PublicRouteRegistrar registers routes that bypass authentication
type PublicRouteRegistrar interface {
	RegisterPublicRoutes(rg *gin.RouterGroup)
}

// Router manages HTTP route registration under a versioned API prefix.
// Public routes skip the auth middleware; everything else runs behind
// it.
type Router struct {
	engine     *gin.Engine
	apiVersion string
	authChain  []gin.HandlerFunc
	registrars []RouteRegistrar
	public     []PublicRouteRegistrar
}

// RouterOption configures a Router
type RouterOption func(*Router)

// WithAPIVersion sets the API version prefix (e.g. "v1")
func WithAPIVersion(version string) RouterOption {
	return func(r *Router) {
		r.apiVersion = version
	}
}

// WithAuth sets the middleware chain applied to authenticated routes
func WithAuth(middleware ...gin.HandlerFunc) RouterOption {
	return func(r *Router) {
		r.authChain = middleware
	}
}

// NewRouter creates a new Router
func NewRouter(engine *gin.Engine, opts ...RouterOption) *Router {
	r := &Router{
		engine:     engine,
		apiVersion: "v1",
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds a registrar for authenticated routes. Registrars that
// also implement PublicRouteRegistrar get their public routes mounted
// outside the auth chain.
func (r *Router) Register(registrar RouteRegistrar) *Router {
	r.registrars = append(r.registrars, registrar)
	if public, ok := registrar.(PublicRouteRegistrar); ok {
		r.public = append(r.public, public)
	}
	return r
}

// Setup mounts all registered routes on the engine
func (r *Router) Setup() {
	api := r.engine.Group("/api/" + r.apiVersion)

	for _, registrar := range r.public {
		registrar.RegisterPublicRoutes(api)
	}

	protected := api.Group("", r.authChain...)
	for _, registrar := range r.registrars {
		registrar.RegisterRoutes(protected)
	}
}
