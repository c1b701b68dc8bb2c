package route

import (
	"onboardku_backend/internals/constants"
	usercontroller "onboardku_backend/internals/features/users/user/controller"
	authmw "onboardku_backend/internals/middlewares/auth"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func UserRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := usercontroller.NewUserController(db)

	users := api.Group("/users", authmw.AuthMiddleware(db))

	users.Get("/trainers",
		authmw.OnlyRoles(constants.RoleErrorStaff("the trainer list"), constants.SalesAndAbove...),
		ctrl.Trainers)

	adminOnly := authmw.OnlyRoles(constants.RoleErrorAdmin("user management"), constants.AdminAndAbove...)
	users.Get("/", adminOnly, ctrl.List)
	users.Patch("/:id/suspend", adminOnly, ctrl.SetSuspended)
}
