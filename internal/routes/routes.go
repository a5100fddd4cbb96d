package routes

import (
	"nibash_backend/internal/config"
	"nibash_backend/internal/handlers"
	"nibash_backend/internal/middleware"
	"nibash_backend/internal/models"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires every HTTP route. Paths are flat (no version prefix)
// because the HTML front-ends call them directly.
func RegisterRoutes(
	r *gin.Engine,
	appHandlers *handlers.AppHandlers,
	limiter *middleware.RateLimiter,
	cfg *config.Config,
) {
	// Public auth surface, rate limited against credential stuffing.
	r.POST("/login", limiter.Middleware(), appHandlers.AuthHandler.Login)
	r.POST("/signup", limiter.Middleware(), appHandlers.AuthHandler.Signup)

	r.GET("/me", middleware.AuthMiddleware(), appHandlers.AuthHandler.Me)

	admin := r.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
	{
		admin.GET("/users", appHandlers.UserHandler.AdminListUsers)
		admin.PATCH("/users/:id/status", appHandlers.UserHandler.AdminUpdateUserStatus)
	}

	payment := r.Group("/payment")
	{
		payment.POST("/initiate", middleware.AuthMiddleware(), appHandlers.PaymentHandler.Initiate)
		// POST carries the gateway IPN; GET handles the browser redirect.
		payment.POST("/validate", appHandlers.PaymentHandler.HandleIPN)
		payment.GET("/validate", appHandlers.PaymentHandler.Validate)
		payment.POST("/ipn", appHandlers.PaymentHandler.HandleIPN)
	}

	payments := r.Group("/payments")
	payments.Use(middleware.AuthMiddleware())
	{
		payments.POST("/create", appHandlers.PaymentHandler.Create)
		payments.GET("/lookup", appHandlers.PaymentHandler.Lookup)
	}

	servicesGroup := r.Group("/services")
	servicesGroup.Use(middleware.AuthMiddleware())
	{
		servicesGroup.POST("/create", appHandlers.ServiceRequestHandler.Create)
		servicesGroup.GET("/mine", appHandlers.ServiceRequestHandler.Mine)
		servicesGroup.GET("/list",
			middleware.RequireRoles(models.UserRoleProfessional, models.UserRoleAdmin),
			appHandlers.ServiceRequestHandler.List)
	}

	if cfg.Server.PublicDir != "" {
		r.Static("/public", cfg.Server.PublicDir)
	}
}
