package controller

import (
	activityservice "onboardku_backend/internals/features/activity/service"
	helper "onboardku_backend/internals/helpers"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ActivityController struct {
	Service *activityservice.ActivityService
}

func NewActivityController(db *gorm.DB) *ActivityController {
	return &ActivityController{Service: activityservice.NewActivityService(db)}
}

// =============================
// GET /api/activity/my
// =============================
func (ctrl *ActivityController) MyActivity(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	p := helper.ParseFiber(c, "created_at", "desc", helper.DefaultOpts)
	rows, total, err := ctrl.Service.ListByUser(c.UserContext(), userID, p.Limit(), p.Offset())
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to list activity")
	}

	return helper.Success(c, "OK", fiber.Map{
		"activities": rows,
		"pagination": helper.BuildMeta(total, p),
	})
}

// =============================
// GET /api/activity/users/:id  (admin audit view)
// =============================
func (ctrl *ActivityController) UserActivity(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid user ID")
	}

	p := helper.ParseFiber(c, "created_at", "desc", helper.AdminOpts)
	rows, total, err := ctrl.Service.ListByUser(c.UserContext(), userID, p.Limit(), p.Offset())
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to list activity")
	}

	return helper.Success(c, "OK", fiber.Map{
		"activities": rows,
		"pagination": helper.BuildMeta(total, p),
	})
}
