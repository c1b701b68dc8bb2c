package route

import (
	authcontroller "onboardku_backend/internals/features/users/auth/controller"
	"onboardku_backend/internals/middlewares"
	authmw "onboardku_backend/internals/middlewares/auth"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AuthRoutes mounts the public auth endpoints plus the token-protected
// session endpoints.
func AuthRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := authcontroller.NewAuthController(db)

	auth := api.Group("/auth")
	auth.Post("/register", middlewares.RegisterRateLimiter(), ctrl.Register)
	auth.Post("/login", middlewares.LoginRateLimiter(), ctrl.Login)
	auth.Post("/login/google", middlewares.LoginRateLimiter(), ctrl.GoogleLogin)
	auth.Post("/refresh-token", ctrl.RefreshToken)

	protected := auth.Group("", authmw.AuthMiddleware(db))
	protected.Post("/logout", ctrl.Logout)
	protected.Get("/me", ctrl.Me)
}
