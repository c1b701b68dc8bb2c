// internals/features/onboarding/service/workflow_service.go
package service

import (
	"errors"

	activityservice "onboardku_backend/internals/features/activity/service"
	notifservice "onboardku_backend/internals/features/notifications/service"
	"onboardku_backend/internals/features/onboarding/repository"
	"onboardku_backend/internals/features/onboarding/workflow"
	telegramservice "onboardku_backend/internals/features/telegram/service"
	helper "onboardku_backend/internals/helpers"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// BuildOrchestrator wires the workflow engine to its Postgres store and the
// notification, Telegram, and activity-log side channels.
func BuildOrchestrator(db *gorm.DB) *workflow.Orchestrator {
	return workflow.NewOrchestrator(
		repository.NewStore(db),
		notifservice.NewNotificationService(db),
		telegramservice.NewTelegramService(db),
		activityservice.NewActivityService(db),
		workflow.SystemClock(),
	)
}

// WorkflowError translates the engine's sentinel errors into HTTP responses.
func WorkflowError(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return helper.Error(c, fe.Code, fe.Message)
	}

	switch {
	case errors.Is(err, workflow.ErrRequestNotFound),
		errors.Is(err, workflow.ErrAssignmentNotFound),
		errors.Is(err, workflow.ErrSessionNotFound),
		errors.Is(err, workflow.ErrAttendeeNotFound),
		errors.Is(err, workflow.ErrStageNotFound):
		return helper.Error(c, fiber.StatusNotFound, err.Error())

	case errors.Is(err, workflow.ErrSessionOverlap),
		errors.Is(err, workflow.ErrStageAlreadyTerminal),
		errors.Is(err, workflow.ErrInvalidTransition):
		return helper.Error(c, fiber.StatusConflict, err.Error())

	case errors.Is(err, workflow.ErrInvalidSchedule):
		return helper.Error(c, fiber.StatusBadRequest, err.Error())

	case errors.Is(err, workflow.ErrCodeCollision),
		errors.Is(err, workflow.ErrConcurrentModification):
		return helper.Error(c, fiber.StatusConflict, "The record was modified concurrently, please retry")

	default:
		return helper.Error(c, fiber.StatusInternalServerError, "Internal server error")
	}
}
