package route

import (
	"onboardku_backend/internals/constants"
	asgcontroller "onboardku_backend/internals/features/onboarding/assignments/controller"
	"onboardku_backend/internals/features/onboarding/workflow"
	authmw "onboardku_backend/internals/middlewares/auth"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func AssignmentRoutes(api fiber.Router, db *gorm.DB, orch *workflow.Orchestrator) {
	ctrl := asgcontroller.NewAssignmentController(db, orch)

	assignments := api.Group("/onboarding/assignments",
		authmw.AuthMiddleware(db),
		authmw.OnlyRoles(constants.RoleErrorTrainer("training assignments"), constants.TrainerOnly...))

	assignments.Get("/my", ctrl.MyAssignments)
	assignments.Get("/dashboard", ctrl.Dashboard)
	assignments.Post("/:id/accept", ctrl.Accept)
	assignments.Post("/:id/reject", ctrl.Reject)
}
