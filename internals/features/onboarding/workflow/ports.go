package workflow

import (
	"context"
	"time"

	asgmodel "onboardku_backend/internals/features/onboarding/assignments/model"
	reqmodel "onboardku_backend/internals/features/onboarding/requests/model"
	sessmodel "onboardku_backend/internals/features/onboarding/sessions/model"
	stagemodel "onboardku_backend/internals/features/onboarding/stages/model"

	"github.com/google/uuid"
)

/* =========================
   Persistence ports
   ========================= */

type RequestRepo interface {
	// FindByID returns ErrRequestNotFound when missing.
	FindByID(ctx context.Context, id uuid.UUID) (*reqmodel.OnboardingRequestModel, error)
	// Create maps a request_code unique violation to ErrCodeCollision.
	Create(ctx context.Context, req *reqmodel.OnboardingRequestModel) error
	Save(ctx context.Context, req *reqmodel.OnboardingRequestModel) error
	// MaxCodeForYear returns the highest request_code with prefix
	// "REQ-<year>-", or "" when the year has none.
	MaxCodeForYear(ctx context.Context, year int) (string, error)
}

type AssignmentRepo interface {
	// FindByID returns ErrAssignmentNotFound when missing. Inside a
	// transaction the row is locked for update.
	FindByID(ctx context.Context, id uuid.UUID) (*asgmodel.TrainingAssignmentModel, error)
	Create(ctx context.Context, a *asgmodel.TrainingAssignmentModel) error
	Save(ctx context.Context, a *asgmodel.TrainingAssignmentModel) error
	// FindActiveByRequest returns the assignment whose status is not
	// completed/rejected, or (nil, nil) when the request has none.
	FindActiveByRequest(ctx context.Context, requestID uuid.UUID) (*asgmodel.TrainingAssignmentModel, error)
}

type SessionRepo interface {
	// FindByID returns ErrSessionNotFound when missing.
	FindByID(ctx context.Context, id uuid.UUID) (*sessmodel.TrainingSessionModel, error)
	Create(ctx context.Context, s *sessmodel.TrainingSessionModel) error
	Save(ctx context.Context, s *sessmodel.TrainingSessionModel) error
	// HasOverlap reports whether the trainer has an active (not cancelled,
	// not rescheduled) session on date whose half-open window intersects
	// [startTime, endTime). excludeID skips the session being replaced.
	HasOverlap(ctx context.Context, trainerID uuid.UUID, date time.Time, startTime, endTime string, excludeID *uuid.UUID) (bool, error)
	// CountByStage returns (active, completed) session counts for one stage
	// of one assignment; active excludes cancelled and rescheduled.
	CountByStage(ctx context.Context, assignmentID, stageID uuid.UUID) (active int64, completed int64, err error)
	// ListScheduledByRequest returns every scheduled session under any
	// assignment of the request (used by request cancellation).
	ListScheduledByRequest(ctx context.Context, requestID uuid.UUID) ([]sessmodel.TrainingSessionModel, error)
}

type StageRepo interface {
	// ListActiveBySystem returns the system's active stages ordered by
	// sequence_order.
	ListActiveBySystem(ctx context.Context, systemID uuid.UUID) ([]stagemodel.OnboardingStageModel, error)
}

type StageProgressRepo interface {
	// FindByID returns ErrStageNotFound when missing.
	FindByID(ctx context.Context, id uuid.UUID) (*stagemodel.StageProgressModel, error)
	// FindByAssignmentAndStage returns (nil, nil) when the pair has no row.
	FindByAssignmentAndStage(ctx context.Context, assignmentID, stageID uuid.UUID) (*stagemodel.StageProgressModel, error)
	ListByAssignment(ctx context.Context, assignmentID uuid.UUID) ([]stagemodel.StageProgressModel, error)
	BulkCreate(ctx context.Context, rows []stagemodel.StageProgressModel) error
	Save(ctx context.Context, sp *stagemodel.StageProgressModel) error
	// AllTerminal reports whether every row of the assignment is completed
	// or skipped. Vacuously true when the assignment has no rows.
	AllTerminal(ctx context.Context, assignmentID uuid.UUID) (bool, error)
}

type AttendeeRepo interface {
	// FindByID returns ErrAttendeeNotFound when missing.
	FindByID(ctx context.Context, id uuid.UUID) (*sessmodel.SessionAttendeeModel, error)
	ListBySession(ctx context.Context, sessionID uuid.UUID) ([]sessmodel.SessionAttendeeModel, error)
	BulkCreate(ctx context.Context, rows []sessmodel.SessionAttendeeModel) error
	Save(ctx context.Context, a *sessmodel.SessionAttendeeModel) error
	// CancelPendingBySessions flips invited/confirmed attendees of the given
	// sessions to cancelled.
	CancelPendingBySessions(ctx context.Context, sessionIDs []uuid.UUID) error
}

type StudentRepo interface {
	BulkCreate(ctx context.Context, rows []sessmodel.SessionStudentModel) error
}

type ClientRepo interface {
	// CompanyName resolves a client's display name for notification copy;
	// implementations fall back to "client" when the row is gone.
	CompanyName(ctx context.Context, clientID uuid.UUID) (string, error)
}

// Store bundles the repos behind one transactional boundary. WithinTx runs
// fn against a Store whose repos share a single transaction; fn returning
// an error rolls everything back.
type Store interface {
	WithinTx(ctx context.Context, fn func(tx Store) error) error

	Requests() RequestRepo
	Assignments() AssignmentRepo
	Sessions() SessionRepo
	Stages() StageRepo
	StageProgress() StageProgressRepo
	Attendees() AttendeeRepo
	Students() StudentRepo
	Clients() ClientRepo
}

/* =========================
   Outbound ports
   ========================= */

// RelatedEntity tags a notification with the record it is about.
type RelatedEntity struct {
	Type string
	ID   uuid.UUID
}

// Notifier delivers in-app notifications. Best effort: failures are logged
// by the caller, never propagated into the workflow transaction.
type Notifier interface {
	Notify(ctx context.Context, userIDs []uuid.UUID, notifType, title, message string, related *RelatedEntity) error
}

// Session message types understood by the Messenger.
const (
	MessageSessionScheduled   = "session_scheduled"
	MessageSessionRescheduled = "session_rescheduled"
	MessageSessionCancelled   = "session_cancelled"
	MessageSessionReminder    = "session_reminder"
)

// Messenger pushes session lifecycle messages to client contacts (Telegram
// in production). Best effort, dispatched after commit.
type Messenger interface {
	SendSessionMessage(ctx context.Context, session *sessmodel.TrainingSessionModel, messageType string) error
}

// ActivityRecorder appends to the audit trail.
type ActivityRecorder interface {
	Record(ctx context.Context, actorID uuid.UUID, action, description string, metadata map[string]any) error
}
