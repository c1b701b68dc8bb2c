package route

import (
	"onboardku_backend/internals/constants"
	clientcontroller "onboardku_backend/internals/features/clients/controller"
	authmw "onboardku_backend/internals/middlewares/auth"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func ClientRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := clientcontroller.NewClientController(db)

	clients := api.Group("/clients", authmw.AuthMiddleware(db))

	clients.Get("/", ctrl.List)
	clients.Get("/dropdown", ctrl.Dropdown)
	clients.Get("/:id", ctrl.GetByID)

	staffOnly := authmw.OnlyRoles(constants.RoleErrorStaff("client management"), constants.SalesAndAbove...)
	clients.Post("/", staffOnly, ctrl.Create)
	clients.Patch("/:id", staffOnly, ctrl.Update)
	clients.Post("/:id/contacts", staffOnly, ctrl.AddContact)
	clients.Patch("/contacts/:id", staffOnly, ctrl.UpdateContact)
}
