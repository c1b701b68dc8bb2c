package controller

import (
	"errors"

	notifservice "onboardku_backend/internals/features/notifications/service"
	helper "onboardku_backend/internals/helpers"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationController struct {
	Service *notifservice.NotificationService
}

func NewNotificationController(db *gorm.DB) *NotificationController {
	return &NotificationController{Service: notifservice.NewNotificationService(db)}
}

// =============================
// GET /api/notifications
// =============================
func (ctrl *NotificationController) List(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	p := helper.ParseFiber(c, "created_at", "desc", helper.DefaultOpts)
	unreadOnly := c.Query("unread_only") == "true"

	rows, total, err := ctrl.Service.ListByUser(c.UserContext(), userID, unreadOnly, p.Limit(), p.Offset())
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to list notifications")
	}

	return helper.Success(c, "OK", fiber.Map{
		"notifications": rows,
		"pagination":    helper.BuildMeta(total, p),
	})
}

// =============================
// GET /api/notifications/unread-count
// =============================
func (ctrl *NotificationController) UnreadCount(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	count, err := ctrl.Service.UnreadCount(c.UserContext(), userID)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to count notifications")
	}
	return helper.Success(c, "OK", fiber.Map{"unread_count": count})
}

// =============================
// POST /api/notifications/:id/read
// =============================
func (ctrl *NotificationController) MarkRead(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid notification ID")
	}

	if err := ctrl.Service.MarkRead(c.UserContext(), id, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "Notification not found")
		}
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to mark notification read")
	}
	return helper.Success(c, "Notification marked as read", nil)
}

// =============================
// POST /api/notifications/read-all
// =============================
func (ctrl *NotificationController) MarkAllRead(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	updated, err := ctrl.Service.MarkAllRead(c.UserContext(), userID)
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to mark notifications read")
	}
	return helper.Success(c, "All notifications marked as read", fiber.Map{"updated": updated})
}
