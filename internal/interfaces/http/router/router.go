package router

import (
	"github.com/gin-gonic/gin"
)

// RouteRegistrar defines the interface for registering routes
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Router manages HTTP route registration. API registrars mount under
// /api; root registrars (status endpoint) mount on the engine root.
type Router struct {
	engine         *gin.Engine
	apiRegistrars  []RouteRegistrar
	rootRegistrars []RouteRegistrar
}

// NewRouter creates a new Router instance
func NewRouter(engine *gin.Engine) *Router {
	return &Router{
		engine:         engine,
		apiRegistrars:  make([]RouteRegistrar, 0),
		rootRegistrars: make([]RouteRegistrar, 0),
	}
}

// Register adds a RouteRegistrar under the /api group
func (r *Router) Register(registrar RouteRegistrar) *Router {
	r.apiRegistrars = append(r.apiRegistrars, registrar)
	return r
}

// RegisterRoot adds a RouteRegistrar on the engine root
func (r *Router) RegisterRoot(registrar RouteRegistrar) *Router {
	r.rootRegistrars = append(r.rootRegistrars, registrar)
	return r
}

// Setup registers all routes with the engine
func (r *Router) Setup() {
	root := r.engine.Group("")
	for _, registrar := range r.rootRegistrars {
		registrar.RegisterRoutes(root)
	}

	api := r.engine.Group("/api")
	for _, registrar := range r.apiRegistrars {
		registrar.RegisterRoutes(api)
	}
}
