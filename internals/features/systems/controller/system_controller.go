package controller

import (
	"strings"

	systemdto "onboardku_backend/internals/features/systems/dto"
	systemmodel "onboardku_backend/internals/features/systems/model"
	helper "onboardku_backend/internals/helpers"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SystemController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewSystemController(db *gorm.DB) *SystemController {
	return &SystemController{
		DB:       db,
		Validate: validator.New(),
	}
}

// =============================
// GET /api/systems
// =============================
func (ctrl *SystemController) List(c *fiber.Ctx) error {
	q := ctrl.DB.Model(&systemmodel.SystemModel{})
	if c.Query("include_inactive") != "true" {
		q = q.Where("is_active = ?", true)
	}

	var systems []systemmodel.SystemModel
	if err := q.Order("name ASC").Find(&systems).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to list systems")
	}
	return helper.Success(c, "OK", systems)
}

// =============================
// POST /api/systems
// =============================
func (ctrl *SystemController) Create(c *fiber.Ctx) error {
	var req systemdto.CreateSystemRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	system := systemmodel.SystemModel{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		IsActive:    true,
	}
	if err := ctrl.DB.Create(&system).Error; err != nil {
		return helper.Error(c, fiber.StatusConflict, "System name already exists")
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "System created", system)
}

// =============================
// PATCH /api/systems/:id
// =============================
func (ctrl *SystemController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid system ID")
	}

	var req systemdto.UpdateSystemRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var system systemmodel.SystemModel
	if err := ctrl.DB.First(&system, "id = ?", id).Error; err != nil {
		return helper.Error(c, fiber.StatusNotFound, "System not found")
	}

	updates := map[string]any{}
	if req.Name != nil {
		updates["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if len(updates) == 0 {
		return helper.Error(c, fiber.StatusBadRequest, "No fields to update")
	}

	if err := ctrl.DB.Model(&system).Updates(updates).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to update system")
	}
	return helper.Success(c, "System updated", system)
}
