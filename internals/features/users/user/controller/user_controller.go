package controller

import (
	usermodel "onboardku_backend/internals/features/users/model"
	userdto "onboardku_backend/internals/features/users/user/dto"
	helper "onboardku_backend/internals/helpers"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserController struct {
	DB *gorm.DB
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db}
}

// =============================
// GET /api/users
// =============================
func (ctrl *UserController) List(c *fiber.Ctx) error {
	p := helper.ParseFiber(c, "created_at", "desc", helper.AdminOpts)

	q := ctrl.DB.Table("users").
		Select(`users.id, users.first_name, users.last_name,
			credentials.email, credentials.username, roles.role,
			users.is_suspended`).
		Joins("JOIN credentials ON credentials.user_id = users.id").
		Joins("JOIN roles ON roles.id = users.role_id").
		Where("users.deleted_at IS NULL")

	if role := c.Query("role"); role != "" {
		q = q.Where("roles.role = ?", role)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to count users")
	}

	var rows []userdto.UserListItem
	if err := q.Order("users.created_at DESC").
		Limit(p.Limit()).Offset(p.Offset()).
		Scan(&rows).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to list users")
	}

	return helper.Success(c, "OK", fiber.Map{
		"users":      rows,
		"pagination": helper.BuildMeta(total, p),
	})
}

// =============================
// GET /api/users/trainers
// =============================
func (ctrl *UserController) Trainers(c *fiber.Ctx) error {
	var rows []userdto.TrainerDropdownItem
	if err := ctrl.DB.Table("users").
		Select("users.id, users.first_name, users.last_name").
		Joins("JOIN roles ON roles.id = users.role_id").
		Where("roles.role = ? AND users.is_suspended = ? AND users.deleted_at IS NULL", "trainer", false).
		Order("users.first_name ASC").
		Scan(&rows).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to list trainers")
	}
	return helper.Success(c, "OK", rows)
}

// =============================
// PATCH /api/users/:id/suspend
// =============================
func (ctrl *UserController) SetSuspended(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid user ID")
	}

	var req userdto.SetSuspendedRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}

	var user usermodel.UserModel
	if err := ctrl.DB.First(&user, "id = ?", id).Error; err != nil {
		return helper.Error(c, fiber.StatusNotFound, "User not found")
	}

	if err := ctrl.DB.Model(&user).Update("is_suspended", req.IsSuspended).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to update user")
	}

	msg := "User unsuspended"
	if req.IsSuspended {
		msg = "User suspended"
	}
	return helper.Success(c, msg, nil)
}
