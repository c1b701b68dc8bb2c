package route

import (
	"onboardku_backend/internals/constants"
	reqcontroller "onboardku_backend/internals/features/onboarding/requests/controller"
	"onboardku_backend/internals/features/onboarding/workflow"
	authmw "onboardku_backend/internals/middlewares/auth"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func RequestRoutes(api fiber.Router, db *gorm.DB, orch *workflow.Orchestrator) {
	ctrl := reqcontroller.NewRequestController(db, orch)

	requests := api.Group("/onboarding/requests", authmw.AuthMiddleware(db))

	requests.Get("/", ctrl.List)
	requests.Get("/dashboard",
		authmw.OnlyRoles(constants.RoleErrorStaff("view the request dashboard"), constants.SalesAndAbove...),
		ctrl.Dashboard)
	requests.Get("/:id", ctrl.GetByID)
	requests.Get("/:id/progress", ctrl.Progress)

	requests.Post("/",
		authmw.OnlyRoles(constants.RoleErrorStaff("create onboarding requests"), constants.SalesAndAbove...),
		ctrl.Create)
	requests.Post("/:id/assign",
		authmw.OnlyRoles(constants.RoleErrorAdmin("assign trainers"), constants.AdminAndAbove...),
		ctrl.Assign)
	requests.Post("/:id/cancel",
		authmw.OnlyRoles(constants.RoleErrorStaff("cancel onboarding requests"), constants.SalesAndAbove...),
		ctrl.Cancel)
}
