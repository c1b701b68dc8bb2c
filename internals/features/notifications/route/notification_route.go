package route

import (
	notifcontroller "onboardku_backend/internals/features/notifications/controller"
	authmw "onboardku_backend/internals/middlewares/auth"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func NotificationRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := notifcontroller.NewNotificationController(db)

	notifications := api.Group("/notifications", authmw.AuthMiddleware(db))
	notifications.Get("/", ctrl.List)
	notifications.Get("/unread-count", ctrl.UnreadCount)
	notifications.Post("/read-all", ctrl.MarkAllRead)
	notifications.Post("/:id/read", ctrl.MarkRead)
}
