package route

import (
	"onboardku_backend/internals/constants"
	systemcontroller "onboardku_backend/internals/features/systems/controller"
	authmw "onboardku_backend/internals/middlewares/auth"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SystemRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := systemcontroller.NewSystemController(db)

	systems := api.Group("/systems", authmw.AuthMiddleware(db))
	systems.Get("/", ctrl.List)

	adminOnly := authmw.OnlyRoles(constants.RoleErrorAdmin("system management"), constants.AdminAndAbove...)
	systems.Post("/", adminOnly, ctrl.Create)
	systems.Patch("/:id", adminOnly, ctrl.Update)
}
