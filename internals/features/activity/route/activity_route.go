package route

import (
	"onboardku_backend/internals/constants"
	activitycontroller "onboardku_backend/internals/features/activity/controller"
	authmw "onboardku_backend/internals/middlewares/auth"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func ActivityRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := activitycontroller.NewActivityController(db)

	activity := api.Group("/activity", authmw.AuthMiddleware(db))
	activity.Get("/my", ctrl.MyActivity)
	activity.Get("/users/:id",
		authmw.OnlyRoles(constants.RoleErrorAdmin("user activity logs"), constants.AdminAndAbove...),
		ctrl.UserActivity)
}
