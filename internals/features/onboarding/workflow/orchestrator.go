package workflow

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	asgmodel "onboardku_backend/internals/features/onboarding/assignments/model"
	reqmodel "onboardku_backend/internals/features/onboarding/requests/model"
	sessmodel "onboardku_backend/internals/features/onboarding/sessions/model"
	stagemodel "onboardku_backend/internals/features/onboarding/stages/model"

	"github.com/google/uuid"
)

// Audit-trail actions.
const (
	ActionRequestCreated     = "request_created"
	ActionRequestCancelled   = "request_cancelled"
	ActionTrainerAssigned    = "trainer_assigned"
	ActionAssignmentAccepted = "assignment_accepted"
	ActionAssignmentRejected = "assignment_rejected"
	ActionSessionCreated     = "session_created"
	ActionSessionStarted     = "session_started"
	ActionSessionCompleted   = "session_completed"
	ActionSessionRescheduled = "session_rescheduled"
	ActionSessionCancelled   = "session_cancelled"
	ActionAttendanceMarked   = "attendance_marked"
	ActionStageSkipped       = "stage_skipped"
)

const maxRetries = 3

// Orchestrator exposes every state-changing operation of the onboarding
// workflow. Each operation runs inside one transaction; notification,
// messaging and audit events collected during the transaction are
// dispatched only after commit, and their failures are logged, never
// propagated back to the caller.
type Orchestrator struct {
	store     Store
	notifier  Notifier
	messenger Messenger
	activity  ActivityRecorder
	clock     Clock
	progress  *ProgressAggregator
}

func NewOrchestrator(store Store, notifier Notifier, messenger Messenger, activity ActivityRecorder, clock Clock) *Orchestrator {
	return &Orchestrator{
		store:     store,
		notifier:  notifier,
		messenger: messenger,
		activity:  activity,
		clock:     clock,
		progress:  NewProgressAggregator(clock),
	}
}

// Progress exposes the aggregator for read-side callers (dashboards).
func (o *Orchestrator) Progress() *ProgressAggregator { return o.progress }

// Store exposes the backing store for read-side callers.
func (o *Orchestrator) Store() Store { return o.store }

/* =========================
   Post-commit event buffer
   ========================= */

type notificationEvent struct {
	userIDs []uuid.UUID
	typ     string
	title   string
	message string
	related *RelatedEntity
}

type sessionMessageEvent struct {
	session     *sessmodel.TrainingSessionModel
	messageType string
}

type activityEvent struct {
	actorID     uuid.UUID
	action      string
	description string
	metadata    map[string]any
}

type eventBuffer struct {
	notifications []notificationEvent
	messages      []sessionMessageEvent
	activities    []activityEvent
}

func (b *eventBuffer) notify(userID uuid.UUID, typ, title, message string, related *RelatedEntity) {
	b.notifications = append(b.notifications, notificationEvent{
		userIDs: []uuid.UUID{userID}, typ: typ, title: title, message: message, related: related,
	})
}

func (b *eventBuffer) sendMessage(session *sessmodel.TrainingSessionModel, messageType string) {
	b.messages = append(b.messages, sessionMessageEvent{session: session, messageType: messageType})
}

func (b *eventBuffer) record(actorID uuid.UUID, action, description string, metadata map[string]any) {
	b.activities = append(b.activities, activityEvent{actorID: actorID, action: action, description: description, metadata: metadata})
}

// dispatch flushes the buffer after a successful commit. Best effort only.
func (o *Orchestrator) dispatch(ctx context.Context, buf *eventBuffer) {
	for _, n := range buf.notifications {
		if err := o.notifier.Notify(ctx, n.userIDs, n.typ, n.title, n.message, n.related); err != nil {
			log.Printf("[WORKFLOW] notification %q failed: %v", n.typ, err)
		}
	}
	for _, m := range buf.messages {
		if err := o.messenger.SendSessionMessage(ctx, m.session, m.messageType); err != nil {
			log.Printf("[WORKFLOW] session message %q failed: %v", m.messageType, err)
		}
	}
	for _, a := range buf.activities {
		if err := o.activity.Record(ctx, a.actorID, a.action, a.description, a.metadata); err != nil {
			log.Printf("[WORKFLOW] activity %q failed: %v", a.action, err)
		}
	}
}

/* =========================
   Request operations
   ========================= */

type CreateRequestInput struct {
	ClientID          uuid.UUID
	SystemID          uuid.UUID
	Priority          string
	Notes             *string
	ExpectedStartDate *time.Time
	ExpectedEndDate   *time.Time
}

// CreateRequest generates a request code and opens the engagement in
// pending. Code collisions from concurrent creation are retried with a
// fresh sequence, bounded.
func (o *Orchestrator) CreateRequest(ctx context.Context, actorID uuid.UUID, in CreateRequestInput) (*reqmodel.OnboardingRequestModel, error) {
	priority := in.Priority
	if priority == "" {
		priority = "medium"
	}

	var created *reqmodel.OnboardingRequestModel
	var buf eventBuffer

	var err error
	for attempt := 0; attempt < maxRetries; attempt++ {
		buf = eventBuffer{}
		err = o.store.WithinTx(ctx, func(tx Store) error {
			code, genErr := NewRequestCodeGenerator(tx.Requests()).NextCode(ctx, o.clock.Now().Year())
			if genErr != nil {
				return genErr
			}

			req := &reqmodel.OnboardingRequestModel{
				RequestCode:       code,
				ClientID:          in.ClientID,
				SystemID:          in.SystemID,
				CreatedByUserID:   actorID,
				Priority:          priority,
				Status:            RequestStatusPending,
				Notes:             in.Notes,
				ExpectedStartDate: in.ExpectedStartDate,
				ExpectedEndDate:   in.ExpectedEndDate,
			}
			if createErr := tx.Requests().Create(ctx, req); createErr != nil {
				return createErr
			}
			created = req

			buf.record(actorID, ActionRequestCreated,
				fmt.Sprintf("Onboarding request %s created", req.RequestCode),
				map[string]any{"request_id": req.ID})
			return nil
		})
		if errors.Is(err, ErrCodeCollision) {
			continue
		}
		break
	}
	if err != nil {
		return nil, err
	}

	o.dispatch(ctx, &buf)
	return created, nil
}

// AssignTrainer binds the request to one trainer: the assignment opens in
// assigned, one stage-progress row is materialized per active stage of the
// request's system, and the request moves to assigned.
func (o *Orchestrator) AssignTrainer(ctx context.Context, requestID, trainerID, actorID uuid.UUID, notes *string) (*asgmodel.TrainingAssignmentModel, error) {
	var assignment *asgmodel.TrainingAssignmentModel
	var buf eventBuffer

	err := o.store.WithinTx(ctx, func(tx Store) error {
		req, err := tx.Requests().FindByID(ctx, requestID)
		if err != nil {
			return err
		}
		if err := ValidateTransition(KindRequest, req.Status, RequestStatusAssigned); err != nil {
			return err
		}

		now := o.clock.Now()
		assignment = &asgmodel.TrainingAssignmentModel{
			OnboardingRequestID: req.ID,
			TrainerID:           trainerID,
			AssignedByUserID:    actorID,
			AssignedAt:          now,
			Status:              AssignmentStatusAssigned,
			Notes:               notes,
		}
		if err := tx.Assignments().Create(ctx, assignment); err != nil {
			return err
		}

		req.Status = RequestStatusAssigned
		if err := tx.Requests().Save(ctx, req); err != nil {
			return err
		}

		stages, err := tx.Stages().ListActiveBySystem(ctx, req.SystemID)
		if err != nil {
			return err
		}
		if len(stages) > 0 {
			rows := make([]stagemodel.StageProgressModel, 0, len(stages))
			for _, stage := range stages {
				rows = append(rows, stagemodel.StageProgressModel{
					AssignmentID:       assignment.ID,
					StageID:            stage.ID,
					Status:             StageStatusNotStarted,
					ProgressPercentage: 0.00,
				})
			}
			if err := tx.StageProgress().BulkCreate(ctx, rows); err != nil {
				return err
			}
		}

		buf.notify(trainerID, "assignment_created", "New Training Assignment",
			fmt.Sprintf("You have been assigned to onboarding request %s", req.RequestCode),
			&RelatedEntity{Type: "training_assignment", ID: assignment.ID})
		buf.record(actorID, ActionTrainerAssigned,
			fmt.Sprintf("Trainer assigned to request %s", req.RequestCode),
			map[string]any{"request_id": req.ID, "assignment_id": assignment.ID})
		return nil
	})
	if err != nil {
		return nil, err
	}

	o.dispatch(ctx, &buf)
	return assignment, nil
}

// CancelRequest terminates the engagement: scheduled sessions are
// cancelled, their pending attendees cancelled, the active assignment (if
// any) is closed out, and the request lands in cancelled.
func (o *Orchestrator) CancelRequest(ctx context.Context, requestID, actorID uuid.UUID, reason *string) error {
	var buf eventBuffer

	err := o.store.WithinTx(ctx, func(tx Store) error {
		req, err := tx.Requests().FindByID(ctx, requestID)
		if err != nil {
			return err
		}
		if err := ValidateTransition(KindRequest, req.Status, RequestStatusCancelled); err != nil {
			return err
		}

		now := o.clock.Now()

		sessions, err := tx.Sessions().ListScheduledByRequest(ctx, req.ID)
		if err != nil {
			return err
		}
		sessionIDs := make([]uuid.UUID, 0, len(sessions))
		for i := range sessions {
			s := &sessions[i]
			s.Status = SessionStatusCancelled
			s.CancelledByUserID = &actorID
			s.CancelledAt = &now
			if err := tx.Sessions().Save(ctx, s); err != nil {
				return err
			}
			sessionIDs = append(sessionIDs, s.ID)
		}
		if len(sessionIDs) > 0 {
			if err := tx.Attendees().CancelPendingBySessions(ctx, sessionIDs); err != nil {
				return err
			}
		}

		active, err := tx.Assignments().FindActiveByRequest(ctx, req.ID)
		if err != nil {
			return err
		}
		if active != nil {
			active.Status = AssignmentStatusCompleted
			active.CompletedAt = &now
			if err := tx.Assignments().Save(ctx, active); err != nil {
				return err
			}

			buf.notify(active.TrainerID, "session_cancelled", "Training Cancelled",
				fmt.Sprintf("Onboarding request %s has been cancelled. Reason: %s", req.RequestCode, reasonOrNA(reason)), nil)
		}

		endDate := now
		req.Status = RequestStatusCancelled
		req.ActualEndDate = &endDate
		if err := tx.Requests().Save(ctx, req); err != nil {
			return err
		}

		buf.record(actorID, ActionRequestCancelled,
			fmt.Sprintf("Request %s cancelled. Reason: %s", req.RequestCode, reasonOrNA(reason)),
			map[string]any{"request_id": req.ID})
		return nil
	})
	if err != nil {
		return err
	}

	o.dispatch(ctx, &buf)
	return nil
}

/* =========================
   Assignment operations
   ========================= */

// AcceptAssignment moves the assignment to accepted and tells the
// requester.
func (o *Orchestrator) AcceptAssignment(ctx context.Context, assignmentID, actorID uuid.UUID) error {
	var buf eventBuffer

	err := o.store.WithinTx(ctx, func(tx Store) error {
		assignment, err := tx.Assignments().FindByID(ctx, assignmentID)
		if err != nil {
			return err
		}
		if err := ValidateTransition(KindAssignment, assignment.Status, AssignmentStatusAccepted); err != nil {
			return err
		}

		now := o.clock.Now()
		assignment.Status = AssignmentStatusAccepted
		assignment.AcceptedAt = &now
		if err := tx.Assignments().Save(ctx, assignment); err != nil {
			return err
		}

		req, err := tx.Requests().FindByID(ctx, assignment.OnboardingRequestID)
		if err != nil {
			return err
		}
		buf.notify(req.CreatedByUserID, "assignment_accepted", "Assignment Accepted",
			fmt.Sprintf("Trainer has accepted assignment for request %s", req.RequestCode),
			&RelatedEntity{Type: "training_assignment", ID: assignment.ID})
		buf.record(actorID, ActionAssignmentAccepted,
			fmt.Sprintf("Assignment %s accepted", assignment.ID),
			map[string]any{"assignment_id": assignment.ID})
		return nil
	})
	if err != nil {
		return err
	}

	o.dispatch(ctx, &buf)
	return nil
}

// RejectAssignment closes the assignment with a reason and re-opens the
// request for re-assignment.
func (o *Orchestrator) RejectAssignment(ctx context.Context, assignmentID, actorID uuid.UUID, reason string) error {
	var buf eventBuffer

	err := o.store.WithinTx(ctx, func(tx Store) error {
		assignment, err := tx.Assignments().FindByID(ctx, assignmentID)
		if err != nil {
			return err
		}
		if err := ValidateTransition(KindAssignment, assignment.Status, AssignmentStatusRejected); err != nil {
			return err
		}

		now := o.clock.Now()
		assignment.Status = AssignmentStatusRejected
		assignment.RejectedAt = &now
		assignment.RejectionReason = &reason
		if err := tx.Assignments().Save(ctx, assignment); err != nil {
			return err
		}

		req, err := tx.Requests().FindByID(ctx, assignment.OnboardingRequestID)
		if err != nil {
			return err
		}
		req.Status = RequestStatusPending
		if err := tx.Requests().Save(ctx, req); err != nil {
			return err
		}

		buf.notify(req.CreatedByUserID, "assignment_rejected", "Assignment Rejected",
			fmt.Sprintf("Trainer rejected assignment for request %s. Reason: %s", req.RequestCode, reason),
			&RelatedEntity{Type: "training_assignment", ID: assignment.ID})
		buf.record(actorID, ActionAssignmentRejected,
			fmt.Sprintf("Assignment %s rejected. Reason: %s", assignment.ID, reason),
			map[string]any{"assignment_id": assignment.ID})
		return nil
	})
	if err != nil {
		return err
	}

	o.dispatch(ctx, &buf)
	return nil
}

/* =========================
   Session operations
   ========================= */

type CreateSessionInput struct {
	StageID            uuid.UUID
	Title              string
	Description        *string
	ScheduledDate      time.Time
	ScheduledStartTime string
	ScheduledEndTime   string
	LocationType       string
	MeetingLink        *string
	PhysicalLocation   *string
	ContactIDs         []uuid.UUID
}

// CreateSession schedules a training event under an assignment, after the
// conflict check on the assignment's trainer, and bulk-invites attendees.
func (o *Orchestrator) CreateSession(ctx context.Context, assignmentID, actorID uuid.UUID, in CreateSessionInput) (*sessmodel.TrainingSessionModel, error) {
	if in.ScheduledEndTime <= in.ScheduledStartTime {
		return nil, ErrInvalidSchedule
	}

	var session *sessmodel.TrainingSessionModel
	var buf eventBuffer

	err := o.store.WithinTx(ctx, func(tx Store) error {
		assignment, err := tx.Assignments().FindByID(ctx, assignmentID)
		if err != nil {
			return err
		}

		detector := NewConflictDetector(tx.Sessions())
		if err := detector.Check(ctx, assignment.TrainerID, in.ScheduledDate, in.ScheduledStartTime, in.ScheduledEndTime, nil); err != nil {
			return err
		}

		locationType := in.LocationType
		if locationType == "" {
			locationType = "online"
		}
		session = &sessmodel.TrainingSessionModel{
			AssignmentID:       assignment.ID,
			StageID:            in.StageID,
			SessionTitle:       in.Title,
			SessionDescription: in.Description,
			ScheduledDate:      in.ScheduledDate,
			ScheduledStartTime: in.ScheduledStartTime,
			ScheduledEndTime:   in.ScheduledEndTime,
			LocationType:       locationType,
			MeetingLink:        in.MeetingLink,
			PhysicalLocation:   in.PhysicalLocation,
			Status:             SessionStatusScheduled,
			CreatorID:          &actorID,
		}
		if err := tx.Sessions().Create(ctx, session); err != nil {
			return err
		}

		if err := o.inviteContacts(ctx, tx, session.ID, in.ContactIDs); err != nil {
			return err
		}

		req, err := tx.Requests().FindByID(ctx, assignment.OnboardingRequestID)
		if err != nil {
			return err
		}
		clientName, err := tx.Clients().CompanyName(ctx, req.ClientID)
		if err != nil {
			return err
		}

		buf.sendMessage(session, MessageSessionScheduled)
		buf.notify(req.CreatedByUserID, "session_created", "Session Scheduled",
			fmt.Sprintf("Trainer has scheduled a new session '%s' for %s on %s",
				session.SessionTitle, clientName, session.ScheduledDate.Format("2006-01-02")),
			&RelatedEntity{Type: "training_session", ID: session.ID})
		buf.record(actorID, ActionSessionCreated,
			fmt.Sprintf("Session '%s' created for assignment %s", session.SessionTitle, assignment.ID),
			map[string]any{"session_id": session.ID, "assignment_id": assignment.ID})
		return nil
	})
	if err != nil {
		return nil, err
	}

	o.dispatch(ctx, &buf)
	return session, nil
}

// StartSession opens the session with start proof and geo coordinates. The
// first started session of an assignment cascades the assignment and its
// request into in_progress; the owning stage leaves not_started.
func (o *Orchestrator) StartSession(ctx context.Context, sessionID, actorID, startProofMediaID uuid.UUID, lat, lng float64) error {
	var buf eventBuffer

	err := o.store.WithinTx(ctx, func(tx Store) error {
		session, err := tx.Sessions().FindByID(ctx, sessionID)
		if err != nil {
			return err
		}
		if err := ValidateTransition(KindSession, session.Status, SessionStatusInProgress); err != nil {
			return err
		}

		now := o.clock.Now()
		session.Status = SessionStatusInProgress
		session.ActualStartTime = &now
		session.StartProofMediaID = &startProofMediaID
		session.StartLatitude = &lat
		session.StartLongitude = &lng
		if err := tx.Sessions().Save(ctx, session); err != nil {
			return err
		}

		assignment, err := tx.Assignments().FindByID(ctx, session.AssignmentID)
		if err != nil {
			return err
		}

		req, err := tx.Requests().FindByID(ctx, assignment.OnboardingRequestID)
		if err != nil {
			return err
		}

		// First session of the assignment: cascade statuses upward.
		if assignment.Status == AssignmentStatusAccepted {
			if err := ValidateTransition(KindAssignment, assignment.Status, AssignmentStatusInProgress); err != nil {
				return err
			}
			assignment.Status = AssignmentStatusInProgress
			assignment.StartedAt = &now
			if err := tx.Assignments().Save(ctx, assignment); err != nil {
				return err
			}

			if req.Status == RequestStatusAssigned {
				startDate := now
				req.Status = RequestStatusInProgress
				req.ActualStartDate = &startDate
				if err := tx.Requests().Save(ctx, req); err != nil {
					return err
				}
			}
		}

		sp, err := tx.StageProgress().FindByAssignmentAndStage(ctx, assignment.ID, session.StageID)
		if err != nil {
			return err
		}
		if sp != nil && sp.Status == StageStatusNotStarted {
			sp.Status = StageStatusInProgress
			sp.StartedAt = &now
			if err := tx.StageProgress().Save(ctx, sp); err != nil {
				return err
			}
		}

		clientName, err := tx.Clients().CompanyName(ctx, req.ClientID)
		if err != nil {
			return err
		}
		buf.notify(req.CreatedByUserID, "session_started", "Session Started",
			fmt.Sprintf("Trainer has started session '%s' for %s", session.SessionTitle, clientName),
			&RelatedEntity{Type: "training_session", ID: session.ID})
		buf.record(actorID, ActionSessionStarted,
			fmt.Sprintf("Session '%s' started", session.SessionTitle),
			map[string]any{"session_id": session.ID})
		return nil
	})
	if err != nil {
		return err
	}

	o.dispatch(ctx, &buf)
	return nil
}

type CompleteSessionInput struct {
	Notes           string
	EndProofMediaID uuid.UUID
	StudentCount    int
	EndLatitude     float64
	EndLongitude    float64
}

// CompleteSession closes the session with proof and runs the upward
// completion cascade.
func (o *Orchestrator) CompleteSession(ctx context.Context, sessionID, actorID uuid.UUID, in CompleteSessionInput) error {
	var buf eventBuffer

	err := o.store.WithinTx(ctx, func(tx Store) error {
		session, err := tx.Sessions().FindByID(ctx, sessionID)
		if err != nil {
			return err
		}
		if err := ValidateTransition(KindSession, session.Status, SessionStatusCompleted); err != nil {
			return err
		}

		now := o.clock.Now()
		session.Status = SessionStatusCompleted
		session.ActualEndTime = &now
		session.CompletionNotes = &in.Notes
		session.EndProofMediaID = &in.EndProofMediaID
		session.StudentCount = &in.StudentCount
		session.EndLatitude = &in.EndLatitude
		session.EndLongitude = &in.EndLongitude
		if err := tx.Sessions().Save(ctx, session); err != nil {
			return err
		}

		if err := o.progress.CascadeOnSessionComplete(ctx, tx, session); err != nil {
			return err
		}

		assignment, err := tx.Assignments().FindByID(ctx, session.AssignmentID)
		if err != nil {
			return err
		}
		req, err := tx.Requests().FindByID(ctx, assignment.OnboardingRequestID)
		if err != nil {
			return err
		}
		buf.notify(req.CreatedByUserID, "session_completed", "Session Completed",
			fmt.Sprintf("Session '%s' has been completed with %d student(s)", session.SessionTitle, in.StudentCount),
			&RelatedEntity{Type: "training_session", ID: session.ID})
		buf.record(actorID, ActionSessionCompleted,
			fmt.Sprintf("Session '%s' completed", session.SessionTitle),
			map[string]any{"session_id": session.ID})
		return nil
	})
	if err != nil {
		return err
	}

	o.dispatch(ctx, &buf)
	return nil
}

type RescheduleSessionInput struct {
	ScheduledDate      time.Time
	ScheduledStartTime string
	ScheduledEndTime   string
	Reason             *string
	MeetingLink        *string
	PhysicalLocation   *string
}

// RescheduleSession never mutates the original session's identity: the old
// session becomes rescheduled and a fresh scheduled session is created at
// the new slot, inheriting stage, title and location defaults. Attendees of
// the old session are re-invited on the new one.
func (o *Orchestrator) RescheduleSession(ctx context.Context, sessionID, actorID uuid.UUID, in RescheduleSessionInput) (*sessmodel.TrainingSessionModel, error) {
	if in.ScheduledEndTime <= in.ScheduledStartTime {
		return nil, ErrInvalidSchedule
	}

	var newSession *sessmodel.TrainingSessionModel
	var buf eventBuffer

	err := o.store.WithinTx(ctx, func(tx Store) error {
		session, err := tx.Sessions().FindByID(ctx, sessionID)
		if err != nil {
			return err
		}
		if err := ValidateTransition(KindSession, session.Status, SessionStatusRescheduled); err != nil {
			return err
		}

		assignment, err := tx.Assignments().FindByID(ctx, session.AssignmentID)
		if err != nil {
			return err
		}

		detector := NewConflictDetector(tx.Sessions())
		excludeID := session.ID
		if err := detector.Check(ctx, assignment.TrainerID, in.ScheduledDate, in.ScheduledStartTime, in.ScheduledEndTime, &excludeID); err != nil {
			return err
		}

		oldDate := session.ScheduledDate
		session.Status = SessionStatusRescheduled
		session.RescheduleReason = in.Reason
		if err := tx.Sessions().Save(ctx, session); err != nil {
			return err
		}

		meetingLink := session.MeetingLink
		if in.MeetingLink != nil {
			meetingLink = in.MeetingLink
		}
		physicalLocation := session.PhysicalLocation
		if in.PhysicalLocation != nil {
			physicalLocation = in.PhysicalLocation
		}
		newSession = &sessmodel.TrainingSessionModel{
			AssignmentID:       session.AssignmentID,
			StageID:            session.StageID,
			SessionTitle:       session.SessionTitle,
			SessionDescription: session.SessionDescription,
			ScheduledDate:      in.ScheduledDate,
			ScheduledStartTime: in.ScheduledStartTime,
			ScheduledEndTime:   in.ScheduledEndTime,
			LocationType:       session.LocationType,
			MeetingLink:        meetingLink,
			PhysicalLocation:   physicalLocation,
			Status:             SessionStatusScheduled,
			CreatorID:          &actorID,
		}
		if err := tx.Sessions().Create(ctx, newSession); err != nil {
			return err
		}

		attendees, err := tx.Attendees().ListBySession(ctx, session.ID)
		if err != nil {
			return err
		}
		contactIDs := make([]uuid.UUID, 0, len(attendees))
		for _, att := range attendees {
			contactIDs = append(contactIDs, att.ClientContactID)
		}
		if err := o.inviteContacts(ctx, tx, newSession.ID, contactIDs); err != nil {
			return err
		}

		req, err := tx.Requests().FindByID(ctx, assignment.OnboardingRequestID)
		if err != nil {
			return err
		}

		buf.sendMessage(newSession, MessageSessionRescheduled)
		buf.notify(req.CreatedByUserID, "session_rescheduled", "Session Rescheduled",
			fmt.Sprintf("Trainer rescheduled '%s' — old: %s, new: %s. Reason: %s",
				session.SessionTitle, oldDate.Format("2006-01-02"), in.ScheduledDate.Format("2006-01-02"), reasonOrNA(in.Reason)),
			&RelatedEntity{Type: "training_session", ID: newSession.ID})
		buf.record(actorID, ActionSessionRescheduled,
			fmt.Sprintf("Session '%s' rescheduled", session.SessionTitle),
			map[string]any{"old_session_id": session.ID, "new_session_id": newSession.ID})
		return nil
	})
	if err != nil {
		return nil, err
	}

	o.dispatch(ctx, &buf)
	return newSession, nil
}

// CancelSession cancels the session with reason and actor, and flips its
// invited/confirmed attendees to cancelled.
func (o *Orchestrator) CancelSession(ctx context.Context, sessionID, actorID uuid.UUID, reason string) error {
	var buf eventBuffer

	err := o.store.WithinTx(ctx, func(tx Store) error {
		session, err := tx.Sessions().FindByID(ctx, sessionID)
		if err != nil {
			return err
		}
		if err := ValidateTransition(KindSession, session.Status, SessionStatusCancelled); err != nil {
			return err
		}

		now := o.clock.Now()
		session.Status = SessionStatusCancelled
		session.CancellationReason = &reason
		session.CancelledByUserID = &actorID
		session.CancelledAt = &now
		if err := tx.Sessions().Save(ctx, session); err != nil {
			return err
		}

		if err := tx.Attendees().CancelPendingBySessions(ctx, []uuid.UUID{session.ID}); err != nil {
			return err
		}

		assignment, err := tx.Assignments().FindByID(ctx, session.AssignmentID)
		if err != nil {
			return err
		}
		req, err := tx.Requests().FindByID(ctx, assignment.OnboardingRequestID)
		if err != nil {
			return err
		}

		buf.sendMessage(session, MessageSessionCancelled)
		buf.notify(req.CreatedByUserID, "session_cancelled", "Session Cancelled",
			fmt.Sprintf("Trainer cancelled session '%s' — Reason: %s", session.SessionTitle, reason),
			&RelatedEntity{Type: "training_session", ID: session.ID})
		buf.record(actorID, ActionSessionCancelled,
			fmt.Sprintf("Session '%s' cancelled", session.SessionTitle),
			map[string]any{"session_id": session.ID})
		return nil
	})
	if err != nil {
		return err
	}

	o.dispatch(ctx, &buf)
	return nil
}

// MarkAttendance updates one attendee's attendance status, stamping
// attended_at when marked attended.
func (o *Orchestrator) MarkAttendance(ctx context.Context, attendeeID, actorID uuid.UUID, status string, notes *string) error {
	var buf eventBuffer

	err := o.store.WithinTx(ctx, func(tx Store) error {
		attendee, err := tx.Attendees().FindByID(ctx, attendeeID)
		if err != nil {
			return err
		}

		attendee.AttendanceStatus = status
		attendee.Notes = notes
		if status == AttendanceStatusAttended {
			now := o.clock.Now()
			attendee.AttendedAt = &now
		}
		if err := tx.Attendees().Save(ctx, attendee); err != nil {
			return err
		}

		buf.record(actorID, ActionAttendanceMarked,
			fmt.Sprintf("Attendance marked as '%s' for attendee %s", status, attendee.ID),
			map[string]any{"attendee_id": attendee.ID, "status": status})
		return nil
	})
	if err != nil {
		return err
	}

	o.dispatch(ctx, &buf)
	return nil
}

type StudentInput struct {
	Name        *string
	PhoneNumber *string
	Profession  *string
}

// AddStudents appends the finalized attendance sheet for a completed
// session.
func (o *Orchestrator) AddStudents(ctx context.Context, sessionID, actorID uuid.UUID, students []StudentInput) error {
	var buf eventBuffer

	err := o.store.WithinTx(ctx, func(tx Store) error {
		session, err := tx.Sessions().FindByID(ctx, sessionID)
		if err != nil {
			return err
		}

		rows := make([]sessmodel.SessionStudentModel, 0, len(students))
		for _, s := range students {
			rows = append(rows, sessmodel.SessionStudentModel{
				SessionID:   session.ID,
				Name:        s.Name,
				PhoneNumber: s.PhoneNumber,
				Profession:  s.Profession,
			})
		}
		if len(rows) > 0 {
			if err := tx.Students().BulkCreate(ctx, rows); err != nil {
				return err
			}
		}

		assignment, err := tx.Assignments().FindByID(ctx, session.AssignmentID)
		if err != nil {
			return err
		}
		req, err := tx.Requests().FindByID(ctx, assignment.OnboardingRequestID)
		if err != nil {
			return err
		}

		buf.notify(req.CreatedByUserID, "student_attendance_submitted", "Attendance Details Submitted",
			fmt.Sprintf("Attendance details submitted for '%s' — %d student(s)", session.SessionTitle, len(students)),
			&RelatedEntity{Type: "training_session", ID: session.ID})
		buf.record(actorID, ActionAttendanceMarked,
			fmt.Sprintf("Attendance details submitted for session '%s' — %d student(s)", session.SessionTitle, len(students)),
			map[string]any{"session_id": session.ID, "student_count": len(students)})
		return nil
	})
	if err != nil {
		return err
	}

	o.dispatch(ctx, &buf)
	return nil
}

/* =========================
   Stage operations
   ========================= */

// SkipStage marks a stage skipped with a reason and runs the upward
// completion check (an assignment can finish through skips alone).
func (o *Orchestrator) SkipStage(ctx context.Context, stageProgressID, actorID uuid.UUID, reason string) error {
	var buf eventBuffer

	err := o.store.WithinTx(ctx, func(tx Store) error {
		sp, err := tx.StageProgress().FindByID(ctx, stageProgressID)
		if err != nil {
			return err
		}
		if IsTerminalStageStatus(sp.Status) {
			return ErrStageAlreadyTerminal
		}
		if err := ValidateTransition(KindStageProgress, sp.Status, StageStatusSkipped); err != nil {
			return err
		}

		sp.Status = StageStatusSkipped
		sp.Notes = &reason
		if err := tx.StageProgress().Save(ctx, sp); err != nil {
			return err
		}

		if err := o.progress.CascadeOnStageSkip(ctx, tx, sp); err != nil {
			return err
		}

		buf.record(actorID, ActionStageSkipped,
			fmt.Sprintf("Stage progress %s skipped. Reason: %s", sp.ID, reason),
			map[string]any{"stage_progress_id": sp.ID})
		return nil
	})
	if err != nil {
		return err
	}

	o.dispatch(ctx, &buf)
	return nil
}

/* =========================
   Helpers
   ========================= */

func (o *Orchestrator) inviteContacts(ctx context.Context, tx Store, sessionID uuid.UUID, contactIDs []uuid.UUID) error {
	if len(contactIDs) == 0 {
		return nil
	}
	rows := make([]sessmodel.SessionAttendeeModel, 0, len(contactIDs))
	for _, contactID := range contactIDs {
		rows = append(rows, sessmodel.SessionAttendeeModel{
			SessionID:        sessionID,
			ClientContactID:  contactID,
			AttendanceStatus: AttendanceStatusInvited,
		})
	}
	return tx.Attendees().BulkCreate(ctx, rows)
}

func reasonOrNA(reason *string) string {
	if reason == nil || *reason == "" {
		return "N/A"
	}
	return *reason
}
