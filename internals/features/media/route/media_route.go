package route

import (
	mediacontroller "onboardku_backend/internals/features/media/controller"
	authmw "onboardku_backend/internals/middlewares/auth"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func MediaRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := mediacontroller.NewMediaController(db)

	media := api.Group("/media", authmw.AuthMiddleware(db))
	media.Post("/", ctrl.Upload)
	media.Get("/:id", ctrl.GetByID)
	media.Delete("/:id", ctrl.Delete)
}
