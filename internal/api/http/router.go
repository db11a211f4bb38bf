package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/angaddubey10/oauth-demo/internal/api/http/handlers"
	"github.com/angaddubey10/oauth-demo/internal/auth"
	"github.com/angaddubey10/oauth-demo/internal/domain"
)

// AuthRouteConfig bundles dependencies for auth-service routes.
type AuthRouteConfig struct {
	Health *handlers.HealthHandler
	Auth   *handlers.AuthHandler
}

// RegisterAuthRoutes wires the auth-service HTTP surface.
func RegisterAuthRoutes(app *fiber.App, cfg AuthRouteConfig) {
	app.Get("/health", cfg.Health.Health)

	group := app.Group("/auth")
	group.Get("/login", cfg.Auth.Login)
	group.Get("/callback", cfg.Auth.Callback)
	group.Post("/verify", cfg.Auth.Verify)
	group.Post("/refresh", cfg.Auth.Refresh)
	group.Get("/config", cfg.Auth.Config)
	group.Get("/debug", cfg.Auth.Debug)
	group.Post("/clear", cfg.Auth.Clear)
}

// ResourceRouteConfig bundles dependencies for resource-service routes.
type ResourceRouteConfig struct {
	Health         *handlers.HealthHandler
	Resources      *handlers.ResourceHandler
	AuthMiddleware *auth.Middleware
}

// RegisterResourceRoutes wires the resource-service HTTP surface. Every
// protected route sits behind the bearer-token gate; admin routes add the
// role gate on top.
func RegisterResourceRoutes(app *fiber.App, cfg ResourceRouteConfig) {
	app.Get("/health", cfg.Health.Health)

	protected := app.Group("", cfg.AuthMiddleware.Handle)
	protected.Get("/resources/user", cfg.Resources.UserResources)
	protected.Get("/resources/all", cfg.Resources.AllResources)
	protected.Get("/user/profile", cfg.Resources.Profile)

	admin := protected.Group("", auth.RequireRole(domain.RoleAdmin))
	admin.Get("/resources/admin", cfg.Resources.AdminResources)
	admin.Get("/admin/stats", cfg.Resources.Stats)
	admin.Get("/admin/users", cfg.Resources.Users)
}

// FrontendRouteConfig bundles dependencies for frontend routes.
type FrontendRouteConfig struct {
	Health   *handlers.HealthHandler
	Frontend *handlers.FrontendHandler
}

// RegisterFrontendRoutes wires the frontend HTTP surface.
func RegisterFrontendRoutes(app *fiber.App, cfg FrontendRouteConfig) {
	app.Get("/health", cfg.Health.Health)

	app.Get("/", cfg.Frontend.Index)
	app.Get("/login", cfg.Frontend.Login)
	app.Get("/auth/initiate", cfg.Frontend.Initiate)
	app.Get("/auth/success", cfg.Frontend.AuthSuccess)
	app.Get("/dashboard", cfg.Frontend.Dashboard)
	app.Get("/logout", cfg.Frontend.Logout)

	api := app.Group("/api")
	api.Get("/user/resources", cfg.Frontend.UserResources)
	api.Get("/admin/resources", cfg.Frontend.AdminResources)
	api.Get("/user/profile", cfg.Frontend.Profile)
	api.Get("/admin/stats", cfg.Frontend.Stats)
	api.Get("/admin/users", cfg.Frontend.Users)
}
