package controller

import (
	onboardingsvc "onboardku_backend/internals/features/onboarding/service"
	sessdto "onboardku_backend/internals/features/onboarding/sessions/dto"
	sessmodel "onboardku_backend/internals/features/onboarding/sessions/model"
	"onboardku_backend/internals/features/onboarding/workflow"
	helper "onboardku_backend/internals/helpers"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SessionController struct {
	DB       *gorm.DB
	Orch     *workflow.Orchestrator
	Validate *validator.Validate
}

func NewSessionController(db *gorm.DB, orch *workflow.Orchestrator) *SessionController {
	return &SessionController{
		DB:       db,
		Orch:     orch,
		Validate: validator.New(),
	}
}

// =============================
// POST /api/onboarding/sessions
// =============================
func (ctrl *SessionController) Create(c *fiber.Ctx) error {
	actorID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req sessdto.CreateSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	session, err := ctrl.Orch.CreateSession(c.UserContext(), req.AssignmentID, actorID, workflow.CreateSessionInput{
		StageID:            req.StageID,
		Title:              req.Title,
		Description:        req.Description,
		ScheduledDate:      req.ScheduledDate,
		ScheduledStartTime: req.ScheduledStartTime,
		ScheduledEndTime:   req.ScheduledEndTime,
		LocationType:       req.LocationType,
		MeetingLink:        req.MeetingLink,
		PhysicalLocation:   req.PhysicalLocation,
		ContactIDs:         req.ContactIDs,
	})
	if err != nil {
		return onboardingsvc.WorkflowError(c, err)
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Session scheduled", session)
}

// =============================
// GET /api/onboarding/sessions
// =============================
func (ctrl *SessionController) List(c *fiber.Ctx) error {
	p := helper.ParseFiber(c, "scheduled_date", "desc", helper.DefaultOpts)

	q := ctrl.DB.Table("training_sessions").
		Select(`training_sessions.id, training_sessions.assignment_id,
			training_sessions.stage_id, onboarding_stages.name AS stage_name,
			training_sessions.session_title, clients.company_name AS client_name,
			training_sessions.scheduled_date, training_sessions.scheduled_start_time,
			training_sessions.scheduled_end_time, training_sessions.location_type,
			training_sessions.status`).
		Joins("JOIN onboarding_stages ON onboarding_stages.id = training_sessions.stage_id").
		Joins("JOIN training_assignments ON training_assignments.id = training_sessions.assignment_id").
		Joins("JOIN onboarding_requests ON onboarding_requests.id = training_assignments.onboarding_request_id").
		Joins("JOIN clients ON clients.id = onboarding_requests.client_id").
		Where("training_sessions.deleted_at IS NULL")

	if assignmentID := c.Query("assignment_id"); assignmentID != "" {
		q = q.Where("training_sessions.assignment_id = ?", assignmentID)
	}
	if status := c.Query("status"); status != "" {
		q = q.Where("training_sessions.status = ?", status)
	}
	if from := c.Query("date_from"); from != "" {
		q = q.Where("training_sessions.scheduled_date >= ?", from)
	}
	if to := c.Query("date_to"); to != "" {
		q = q.Where("training_sessions.scheduled_date <= ?", to)
	}
	// Trainers only see their own calendar.
	if helper.GetUserRoleFromToken(c) == "trainer" {
		trainerID, err := helper.GetUserIDFromToken(c)
		if err != nil {
			return err
		}
		q = q.Where("training_assignments.trainer_id = ?", trainerID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to count sessions")
	}

	var rows []sessdto.SessionListItem
	if err := q.Order("training_sessions.scheduled_date DESC, training_sessions.scheduled_start_time ASC").
		Limit(p.Limit()).Offset(p.Offset()).
		Scan(&rows).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to list sessions")
	}

	return helper.Success(c, "OK", fiber.Map{
		"sessions":   rows,
		"pagination": helper.BuildMeta(total, p),
	})
}

// =============================
// GET /api/onboarding/sessions/:id
// =============================
func (ctrl *SessionController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid session ID")
	}

	var session sessmodel.TrainingSessionModel
	if err := ctrl.DB.First(&session, "id = ?", id).Error; err != nil {
		return helper.Error(c, fiber.StatusNotFound, "Training session not found")
	}

	var attendees []sessmodel.SessionAttendeeModel
	if err := ctrl.DB.Where("session_id = ?", session.ID).Find(&attendees).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to load attendees")
	}
	var students []sessmodel.SessionStudentModel
	if err := ctrl.DB.Where("session_id = ?", session.ID).Find(&students).Error; err != nil {
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to load students")
	}

	return helper.Success(c, "OK", fiber.Map{
		"session":   session,
		"attendees": attendees,
		"students":  students,
	})
}

// =============================
// POST /api/onboarding/sessions/:id/start
// =============================
func (ctrl *SessionController) Start(c *fiber.Ctx) error {
	actorID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid session ID")
	}

	var req sessdto.StartSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	if err := ctrl.Orch.StartSession(c.UserContext(), id, actorID, req.StartProofMediaID, *req.Latitude, *req.Longitude); err != nil {
		return onboardingsvc.WorkflowError(c, err)
	}
	return helper.Success(c, "Session started", nil)
}

// =============================
// POST /api/onboarding/sessions/:id/complete
// =============================
func (ctrl *SessionController) Complete(c *fiber.Ctx) error {
	actorID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid session ID")
	}

	var req sessdto.CompleteSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	if err := ctrl.Orch.CompleteSession(c.UserContext(), id, actorID, workflow.CompleteSessionInput{
		Notes:           req.Notes,
		EndProofMediaID: req.EndProofMediaID,
		StudentCount:    *req.StudentCount,
		EndLatitude:     *req.Latitude,
		EndLongitude:    *req.Longitude,
	}); err != nil {
		return onboardingsvc.WorkflowError(c, err)
	}
	return helper.Success(c, "Session completed", nil)
}

// =============================
// POST /api/onboarding/sessions/:id/reschedule
// =============================
func (ctrl *SessionController) Reschedule(c *fiber.Ctx) error {
	actorID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid session ID")
	}

	var req sessdto.RescheduleSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	newSession, err := ctrl.Orch.RescheduleSession(c.UserContext(), id, actorID, workflow.RescheduleSessionInput{
		ScheduledDate:      req.ScheduledDate,
		ScheduledStartTime: req.ScheduledStartTime,
		ScheduledEndTime:   req.ScheduledEndTime,
		Reason:             req.Reason,
		MeetingLink:        req.MeetingLink,
		PhysicalLocation:   req.PhysicalLocation,
	})
	if err != nil {
		return onboardingsvc.WorkflowError(c, err)
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Session rescheduled", newSession)
}

// =============================
// POST /api/onboarding/sessions/:id/cancel
// =============================
func (ctrl *SessionController) Cancel(c *fiber.Ctx) error {
	actorID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid session ID")
	}

	var req sessdto.CancelSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	if err := ctrl.Orch.CancelSession(c.UserContext(), id, actorID, req.Reason); err != nil {
		return onboardingsvc.WorkflowError(c, err)
	}
	return helper.Success(c, "Session cancelled", nil)
}

// =============================
// PATCH /api/onboarding/sessions/attendees/:id
// =============================
func (ctrl *SessionController) MarkAttendance(c *fiber.Ctx) error {
	actorID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid attendee ID")
	}

	var req sessdto.MarkAttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	if err := ctrl.Orch.MarkAttendance(c.UserContext(), id, actorID, req.Status, req.Notes); err != nil {
		return onboardingsvc.WorkflowError(c, err)
	}
	return helper.Success(c, "Attendance updated", nil)
}

// =============================
// POST /api/onboarding/sessions/:id/students
// =============================
func (ctrl *SessionController) AddStudents(c *fiber.Ctx) error {
	actorID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid session ID")
	}

	var req sessdto.AddStudentsRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	students := make([]workflow.StudentInput, 0, len(req.Students))
	for _, s := range req.Students {
		students = append(students, workflow.StudentInput{
			Name:        s.Name,
			PhoneNumber: s.PhoneNumber,
			Profession:  s.Profession,
		})
	}

	if err := ctrl.Orch.AddStudents(c.UserContext(), id, actorID, students); err != nil {
		return onboardingsvc.WorkflowError(c, err)
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Attendance sheet submitted", nil)
}
