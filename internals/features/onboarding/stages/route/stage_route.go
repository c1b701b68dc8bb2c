package route

import (
	"onboardku_backend/internals/constants"
	stagecontroller "onboardku_backend/internals/features/onboarding/stages/controller"
	"onboardku_backend/internals/features/onboarding/workflow"
	authmw "onboardku_backend/internals/middlewares/auth"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func StageRoutes(api fiber.Router, db *gorm.DB, orch *workflow.Orchestrator) {
	ctrl := stagecontroller.NewStageController(db, orch)

	stages := api.Group("/onboarding/stages", authmw.AuthMiddleware(db))
	stages.Get("/", ctrl.List)

	adminOnly := authmw.OnlyRoles(constants.RoleErrorAdmin("stage management"), constants.AdminAndAbove...)
	stages.Post("/", adminOnly, ctrl.Create)
	stages.Patch("/:id", adminOnly, ctrl.Update)
	stages.Delete("/:id", adminOnly, ctrl.Delete)

	progress := api.Group("/onboarding/stage-progress", authmw.AuthMiddleware(db))
	progress.Post("/:id/skip",
		authmw.OnlyRoles(constants.RoleErrorTrainer("stage progress"), constants.TrainerOnly...),
		ctrl.Skip)
}
