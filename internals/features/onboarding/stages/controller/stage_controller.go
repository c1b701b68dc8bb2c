package controller

import (
	onboardingsvc "onboardku_backend/internals/features/onboarding/service"
	stagedto "onboardku_backend/internals/features/onboarding/stages/dto"
	stagemodel "onboardku_backend/internals/features/onboarding/stages/model"
	"onboardku_backend/internals/features/onboarding/workflow"
	helper "onboardku_backend/internals/helpers"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StageController struct {
	DB       *gorm.DB
	Orch     *workflow.Orchestrator
	Validate *validator.Validate
}

func NewStageController(db *gorm.DB, orch *workflow.Orchestrator) *StageController {
	return &StageController{
		DB:       db,
		Orch:     orch,
		Validate: validator.New(),
	}
}

// =============================
// GET /api/onboarding/stages?system_id=...
// =============================
func (ctrl *StageController) List(c *fiber.Ctx) error {
	q := ctrl.DB.Model(&stagemodel.OnboardingStageModel{})

	if systemID := c.Query("system_id"); systemID != "" {
		q = q.Where("system_id = ?", systemID)
	}
	if c.Query("include_inactive") != "true" {
		q = q.Where("is_active = ?", true)
	}

	var stages []stagemodel.OnboardingStageModel
	if err := q.Order("sequence_order ASC").Find(&stages).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to list stages")
	}
	return helper.Success(c, "OK", stages)
}

// =============================
// POST /api/onboarding/stages
// =============================
func (ctrl *StageController) Create(c *fiber.Ctx) error {
	var req stagedto.CreateStageRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	stage := stagemodel.OnboardingStageModel{
		Name:                  req.Name,
		Description:           req.Description,
		SequenceOrder:         req.SequenceOrder,
		EstimatedDurationDays: req.EstimatedDurationDays,
		SystemID:              req.SystemID,
		IsActive:              true,
	}
	if err := ctrl.DB.Create(&stage).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to create stage")
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Stage created", stage)
}

// =============================
// PATCH /api/onboarding/stages/:id
// =============================
func (ctrl *StageController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid stage ID")
	}

	var req stagedto.UpdateStageRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var stage stagemodel.OnboardingStageModel
	if err := ctrl.DB.First(&stage, "id = ?", id).Error; err != nil {
		return helper.Error(c, fiber.StatusNotFound, "Stage not found")
	}

	updates := map[string]any{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.SequenceOrder != nil {
		updates["sequence_order"] = *req.SequenceOrder
	}
	if req.EstimatedDurationDays != nil {
		updates["estimated_duration_days"] = *req.EstimatedDurationDays
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if len(updates) == 0 {
		return helper.Error(c, fiber.StatusBadRequest, "No fields to update")
	}

	if err := ctrl.DB.Model(&stage).Updates(updates).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to update stage")
	}
	return helper.Success(c, "Stage updated", stage)
}

// =============================
// DELETE /api/onboarding/stages/:id
// =============================
// Stages referenced by progress rows are deactivated, never removed.
func (ctrl *StageController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid stage ID")
	}

	var stage stagemodel.OnboardingStageModel
	if err := ctrl.DB.First(&stage, "id = ?", id).Error; err != nil {
		return helper.Error(c, fiber.StatusNotFound, "Stage not found")
	}

	var refs int64
	if err := ctrl.DB.Table("stage_progress").
		Where("stage_id = ? AND deleted_at IS NULL", stage.ID).
		Count(&refs).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to check stage usage")
	}
	if refs > 0 {
		if err := ctrl.DB.Model(&stage).Update("is_active", false).Error; err != nil {
			return helper.Error(c, fiber.StatusInternalServerError, "Failed to deactivate stage")
		}
		return helper.Success(c, "Stage is in use and has been deactivated instead", stage)
	}

	if err := ctrl.DB.Delete(&stage).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to delete stage")
	}
	return helper.Success(c, "Stage deleted", nil)
}

// =============================
// POST /api/onboarding/stage-progress/:id/skip
// =============================
func (ctrl *StageController) Skip(c *fiber.Ctx) error {
	actorID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid stage progress ID")
	}

	var req stagedto.SkipStageRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	if err := ctrl.Orch.SkipStage(c.UserContext(), id, actorID, req.Reason); err != nil {
		return onboardingsvc.WorkflowError(c, err)
	}
	return helper.Success(c, "Stage skipped", nil)
}
