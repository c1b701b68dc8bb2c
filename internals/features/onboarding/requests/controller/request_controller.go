package controller

import (
	"strings"

	asgmodel "onboardku_backend/internals/features/onboarding/assignments/model"
	reqdto "onboardku_backend/internals/features/onboarding/requests/dto"
	reqmodel "onboardku_backend/internals/features/onboarding/requests/model"
	onboardingsvc "onboardku_backend/internals/features/onboarding/service"
	"onboardku_backend/internals/features/onboarding/workflow"
	helper "onboardku_backend/internals/helpers"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RequestController struct {
	DB       *gorm.DB
	Orch     *workflow.Orchestrator
	Validate *validator.Validate
}

func NewRequestController(db *gorm.DB, orch *workflow.Orchestrator) *RequestController {
	return &RequestController{
		DB:       db,
		Orch:     orch,
		Validate: validator.New(),
	}
}

var requestSortColumns = map[string]string{
	"created_at":   "onboarding_requests.created_at",
	"request_code": "onboarding_requests.request_code",
	"priority":     "onboarding_requests.priority",
	"status":       "onboarding_requests.status",
}

// =============================
// POST /api/onboarding/requests
// =============================
func (ctrl *RequestController) Create(c *fiber.Ctx) error {
	actorID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req reqdto.CreateRequestRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	created, err := ctrl.Orch.CreateRequest(c.UserContext(), actorID, workflow.CreateRequestInput{
		ClientID:          req.ClientID,
		SystemID:          req.SystemID,
		Priority:          req.Priority,
		Notes:             req.Notes,
		ExpectedStartDate: req.ExpectedStartDate,
		ExpectedEndDate:   req.ExpectedEndDate,
	})
	if err != nil {
		return onboardingsvc.WorkflowError(c, err)
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Onboarding request created", created)
}

// =============================
// GET /api/onboarding/requests
// =============================
func (ctrl *RequestController) List(c *fiber.Ctx) error {
	p := helper.ParseFiber(c, "created_at", "desc", helper.DefaultOpts)

	q := ctrl.DB.Table("onboarding_requests").
		Select(`onboarding_requests.id, onboarding_requests.request_code,
			onboarding_requests.client_id, clients.company_name AS client_name,
			onboarding_requests.system_id, systems.name AS system_name,
			onboarding_requests.priority, onboarding_requests.status,
			onboarding_requests.created_at`).
		Joins("JOIN clients ON clients.id = onboarding_requests.client_id").
		Joins("JOIN systems ON systems.id = onboarding_requests.system_id").
		Where("onboarding_requests.deleted_at IS NULL")

	if status := c.Query("status"); status != "" {
		q = q.Where("onboarding_requests.status = ?", status)
	}
	if priority := c.Query("priority"); priority != "" {
		q = q.Where("onboarding_requests.priority = ?", priority)
	}
	if clientID := c.Query("client_id"); clientID != "" {
		q = q.Where("onboarding_requests.client_id = ?", clientID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to count requests")
	}

	order, err := p.SafeOrderClause(requestSortColumns, "created_at")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid sort key")
	}

	var rows []reqdto.RequestListItem
	if err := q.Order(strings.TrimPrefix(order, "ORDER BY ")).
		Limit(p.Limit()).Offset(p.Offset()).
		Scan(&rows).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to list requests")
	}

	return helper.Success(c, "OK", fiber.Map{
		"requests":   rows,
		"pagination": helper.BuildMeta(total, p),
	})
}

// =============================
// GET /api/onboarding/requests/dashboard
// =============================
func (ctrl *RequestController) Dashboard(c *fiber.Ctx) error {
	var resp reqdto.RequestDashboardResponse

	if err := ctrl.DB.Table("onboarding_requests").
		Select("status, COUNT(*) AS total").
		Where("deleted_at IS NULL").
		Group("status").
		Scan(&resp.ByStatus).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to load status counts")
	}

	if err := ctrl.DB.Table("onboarding_requests").
		Select("priority, COUNT(*) AS total").
		Where("deleted_at IS NULL").
		Group("priority").
		Scan(&resp.ByPriority).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to load priority counts")
	}

	if err := ctrl.DB.Table("onboarding_requests").
		Select(`onboarding_requests.id, onboarding_requests.request_code,
			onboarding_requests.client_id, clients.company_name AS client_name,
			onboarding_requests.system_id, systems.name AS system_name,
			onboarding_requests.priority, onboarding_requests.status,
			onboarding_requests.created_at`).
		Joins("JOIN clients ON clients.id = onboarding_requests.client_id").
		Joins("JOIN systems ON systems.id = onboarding_requests.system_id").
		Where("onboarding_requests.deleted_at IS NULL").
		Order("onboarding_requests.created_at DESC").
		Limit(5).
		Scan(&resp.Recent).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to load recent requests")
	}

	return helper.Success(c, "OK", resp)
}

// =============================
// GET /api/onboarding/requests/:id
// =============================
func (ctrl *RequestController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request ID")
	}

	var req reqmodel.OnboardingRequestModel
	if err := ctrl.DB.First(&req, "id = ?", id).Error; err != nil {
		return helper.Error(c, fiber.StatusNotFound, "Onboarding request not found")
	}

	var assignments []asgmodel.TrainingAssignmentModel
	if err := ctrl.DB.
		Where("onboarding_request_id = ?", req.ID).
		Order("assigned_at DESC").
		Find(&assignments).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to load assignments")
	}

	return helper.Success(c, "OK", fiber.Map{
		"request":     req,
		"assignments": assignments,
	})
}

// =============================
// POST /api/onboarding/requests/:id/assign
// =============================
func (ctrl *RequestController) Assign(c *fiber.Ctx) error {
	actorID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request ID")
	}

	var req reqdto.AssignTrainerRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	assignment, err := ctrl.Orch.AssignTrainer(c.UserContext(), id, req.TrainerID, actorID, req.Notes)
	if err != nil {
		return onboardingsvc.WorkflowError(c, err)
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Trainer assigned", assignment)
}

// =============================
// POST /api/onboarding/requests/:id/cancel
// =============================
func (ctrl *RequestController) Cancel(c *fiber.Ctx) error {
	actorID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request ID")
	}

	var req reqdto.CancelRequestRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if err := ctrl.Orch.CancelRequest(c.UserContext(), id, actorID, req.Reason); err != nil {
		return onboardingsvc.WorkflowError(c, err)
	}
	return helper.Success(c, "Onboarding request cancelled", nil)
}

// =============================
// GET /api/onboarding/requests/:id/progress
// =============================
func (ctrl *RequestController) Progress(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request ID")
	}

	var req reqmodel.OnboardingRequestModel
	if err := ctrl.DB.First(&req, "id = ?", id).Error; err != nil {
		return helper.Error(c, fiber.StatusNotFound, "Onboarding request not found")
	}

	store := ctrl.Orch.Store()
	assignment, err := store.Assignments().FindActiveByRequest(c.UserContext(), req.ID)
	if err != nil {
		return onboardingsvc.WorkflowError(c, err)
	}

	resp := reqdto.RequestProgressResponse{
		RequestID:   req.ID,
		RequestCode: req.RequestCode,
		Status:      req.Status,
		Stages:      []reqdto.StageProgressItem{},
	}
	if assignment == nil {
		return helper.Success(c, "OK", resp)
	}

	overall, err := ctrl.Orch.Progress().AssignmentOverallProgress(c.UserContext(), store, assignment.ID)
	if err != nil {
		return onboardingsvc.WorkflowError(c, err)
	}
	resp.OverallPercentage = overall

	if err := ctrl.DB.Table("stage_progress").
		Select(`stage_progress.id, stage_progress.stage_id,
			onboarding_stages.name AS stage_name, onboarding_stages.sequence_order,
			stage_progress.status, stage_progress.progress_percentage,
			stage_progress.started_at, stage_progress.completed_at, stage_progress.notes`).
		Joins("JOIN onboarding_stages ON onboarding_stages.id = stage_progress.stage_id").
		Where("stage_progress.assignment_id = ? AND stage_progress.deleted_at IS NULL", assignment.ID).
		Order("onboarding_stages.sequence_order ASC").
		Scan(&resp.Stages).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to load stage progress")
	}

	return helper.Success(c, "OK", resp)
}
