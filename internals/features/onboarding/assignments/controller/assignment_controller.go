package controller

import (
	"time"

	asgdto "onboardku_backend/internals/features/onboarding/assignments/dto"
	onboardingsvc "onboardku_backend/internals/features/onboarding/service"
	"onboardku_backend/internals/features/onboarding/workflow"
	helper "onboardku_backend/internals/helpers"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AssignmentController struct {
	DB       *gorm.DB
	Orch     *workflow.Orchestrator
	Validate *validator.Validate
}

func NewAssignmentController(db *gorm.DB, orch *workflow.Orchestrator) *AssignmentController {
	return &AssignmentController{
		DB:       db,
		Orch:     orch,
		Validate: validator.New(),
	}
}

// =============================
// GET /api/onboarding/assignments/my
// =============================
func (ctrl *AssignmentController) MyAssignments(c *fiber.Ctx) error {
	trainerID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	p := helper.ParseFiber(c, "assigned_at", "desc", helper.DefaultOpts)

	q := ctrl.DB.Table("training_assignments").
		Select(`training_assignments.id, training_assignments.onboarding_request_id,
			onboarding_requests.request_code, clients.company_name AS client_name,
			systems.name AS system_name, training_assignments.status,
			training_assignments.assigned_at, training_assignments.accepted_at,
			training_assignments.started_at, training_assignments.completed_at`).
		Joins("JOIN onboarding_requests ON onboarding_requests.id = training_assignments.onboarding_request_id").
		Joins("JOIN clients ON clients.id = onboarding_requests.client_id").
		Joins("JOIN systems ON systems.id = onboarding_requests.system_id").
		Where("training_assignments.trainer_id = ? AND training_assignments.deleted_at IS NULL", trainerID)

	if status := c.Query("status"); status != "" {
		q = q.Where("training_assignments.status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to count assignments")
	}

	var rows []asgdto.AssignmentListItem
	if err := q.Order("training_assignments.assigned_at DESC").
		Limit(p.Limit()).Offset(p.Offset()).
		Scan(&rows).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to list assignments")
	}

	return helper.Success(c, "OK", fiber.Map{
		"assignments": rows,
		"pagination":  helper.BuildMeta(total, p),
	})
}

// =============================
// GET /api/onboarding/assignments/dashboard
// =============================
func (ctrl *AssignmentController) Dashboard(c *fiber.Ctx) error {
	trainerID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var resp asgdto.TrainerDashboardResponse

	if err := ctrl.DB.Table("training_assignments").
		Select(`training_assignments.id, onboarding_requests.request_code,
			clients.company_name AS client_name, systems.name AS system_name,
			training_assignments.status`).
		Joins("JOIN onboarding_requests ON onboarding_requests.id = training_assignments.onboarding_request_id").
		Joins("JOIN clients ON clients.id = onboarding_requests.client_id").
		Joins("JOIN systems ON systems.id = onboarding_requests.system_id").
		Where("training_assignments.trainer_id = ? AND training_assignments.status IN ? AND training_assignments.deleted_at IS NULL",
			trainerID, []string{workflow.AssignmentStatusAssigned, workflow.AssignmentStatusAccepted, workflow.AssignmentStatusInProgress}).
		Order("training_assignments.assigned_at DESC").
		Scan(&resp.ActiveAssignments).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to load assignments")
	}

	store := ctrl.Orch.Store()
	for i := range resp.ActiveAssignments {
		overall, err := ctrl.Orch.Progress().AssignmentOverallProgress(c.UserContext(), store, resp.ActiveAssignments[i].ID)
		if err != nil {
			return onboardingsvc.WorkflowError(c, err)
		}
		resp.ActiveAssignments[i].OverallPercentage = overall
	}

	today := time.Now().Format("2006-01-02")
	var next asgdto.UpcomingSessionItem
	err = ctrl.DB.Table("training_sessions").
		Select(`training_sessions.id, training_sessions.assignment_id,
			training_sessions.session_title, training_sessions.scheduled_date,
			training_sessions.scheduled_start_time, training_sessions.scheduled_end_time,
			training_sessions.location_type, clients.company_name AS client_name`).
		Joins("JOIN training_assignments ON training_assignments.id = training_sessions.assignment_id").
		Joins("JOIN onboarding_requests ON onboarding_requests.id = training_assignments.onboarding_request_id").
		Joins("JOIN clients ON clients.id = onboarding_requests.client_id").
		Where("training_assignments.trainer_id = ? AND training_sessions.status = ? AND training_sessions.scheduled_date >= ? AND training_sessions.deleted_at IS NULL",
			trainerID, workflow.SessionStatusScheduled, today).
		Order("training_sessions.scheduled_date ASC, training_sessions.scheduled_start_time ASC").
		Limit(1).
		Scan(&next).Error
	if err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to load upcoming session")
	}
	if next.ID != uuid.Nil {
		resp.NextSession = &next
	}

	weekEnd := time.Now().AddDate(0, 0, 7).Format("2006-01-02")
	if err := ctrl.DB.Table("training_sessions").
		Joins("JOIN training_assignments ON training_assignments.id = training_sessions.assignment_id").
		Where("training_assignments.trainer_id = ? AND training_sessions.status = ? AND training_sessions.scheduled_date BETWEEN ? AND ? AND training_sessions.deleted_at IS NULL",
			trainerID, workflow.SessionStatusScheduled, today, weekEnd).
		Count(&resp.SessionsThisWeek).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to count sessions")
	}

	return helper.Success(c, "OK", resp)
}

// =============================
// POST /api/onboarding/assignments/:id/accept
// =============================
func (ctrl *AssignmentController) Accept(c *fiber.Ctx) error {
	actorID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid assignment ID")
	}

	if err := ctrl.ensureOwnAssignment(c, id, actorID); err != nil {
		return err
	}

	if err := ctrl.Orch.AcceptAssignment(c.UserContext(), id, actorID); err != nil {
		return onboardingsvc.WorkflowError(c, err)
	}
	return helper.Success(c, "Assignment accepted", nil)
}

// =============================
// POST /api/onboarding/assignments/:id/reject
// =============================
func (ctrl *AssignmentController) Reject(c *fiber.Ctx) error {
	actorID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid assignment ID")
	}

	var req asgdto.RejectAssignmentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	if err := ctrl.ensureOwnAssignment(c, id, actorID); err != nil {
		return err
	}

	if err := ctrl.Orch.RejectAssignment(c.UserContext(), id, actorID, req.Reason); err != nil {
		return onboardingsvc.WorkflowError(c, err)
	}
	return helper.Success(c, "Assignment rejected", nil)
}

// Trainers may only act on their own assignments.
func (ctrl *AssignmentController) ensureOwnAssignment(c *fiber.Ctx, assignmentID, trainerID uuid.UUID) error {
	var count int64
	if err := ctrl.DB.Table("training_assignments").
		Where("id = ? AND trainer_id = ? AND deleted_at IS NULL", assignmentID, trainerID).
		Count(&count).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to load assignment")
	}
	if count == 0 {
		return helper.Error(c, fiber.StatusNotFound, "Training assignment not found")
	}
	return nil
}
