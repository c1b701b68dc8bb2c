package route

import (
	"onboardku_backend/internals/constants"
	sesscontroller "onboardku_backend/internals/features/onboarding/sessions/controller"
	"onboardku_backend/internals/features/onboarding/workflow"
	authmw "onboardku_backend/internals/middlewares/auth"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SessionRoutes(api fiber.Router, db *gorm.DB, orch *workflow.Orchestrator) {
	ctrl := sesscontroller.NewSessionController(db, orch)

	sessions := api.Group("/onboarding/sessions", authmw.AuthMiddleware(db))

	sessions.Get("/", ctrl.List)
	sessions.Get("/:id", ctrl.GetByID)

	trainerOnly := authmw.OnlyRoles(constants.RoleErrorTrainer("training sessions"), constants.TrainerOnly...)
	sessions.Post("/", trainerOnly, ctrl.Create)
	sessions.Post("/:id/start", trainerOnly, ctrl.Start)
	sessions.Post("/:id/complete", trainerOnly, ctrl.Complete)
	sessions.Post("/:id/reschedule", trainerOnly, ctrl.Reschedule)
	sessions.Post("/:id/cancel", trainerOnly, ctrl.Cancel)
	sessions.Post("/:id/students", trainerOnly, ctrl.AddStudents)
	sessions.Patch("/attendees/:id", trainerOnly, ctrl.MarkAttendance)
}
