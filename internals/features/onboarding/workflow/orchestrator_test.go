package workflow

import (
	"context"
	"testing"
	"time"

	reqmodel "onboardku_backend/internals/features/onboarding/requests/model"
	sessmodel "onboardku_backend/internals/features/onboarding/sessions/model"
	stagemodel "onboardku_backend/internals/features/onboarding/stages/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type orchFixture struct {
	store     *memStore
	notifier  *fakeNotifier
	messenger *fakeMessenger
	activity  *fakeActivity
	orch      *Orchestrator
}

func newOrchFixture(now time.Time) *orchFixture {
	store := newMemStore()
	notifier := &fakeNotifier{}
	messenger := &fakeMessenger{}
	activity := &fakeActivity{}
	return &orchFixture{
		store:     store,
		notifier:  notifier,
		messenger: messenger,
		activity:  activity,
		orch:      NewOrchestrator(store, notifier, messenger, activity, fixedClock{now: now}),
	}
}

func (f *orchFixture) seedStage(systemID uuid.UUID, order int, active bool) uuid.UUID {
	id := uuid.New()
	f.store.stages[id] = stagemodel.OnboardingStageModel{
		ID:            id,
		Name:          "Stage",
		SequenceOrder: order,
		SystemID:      systemID,
		IsActive:      active,
	}
	return id
}

func (f *orchFixture) notificationTypes() []string {
	out := make([]string, 0, len(f.notifier.sent))
	for _, n := range f.notifier.sent {
		out = append(out, n.typ)
	}
	return out
}

func TestCreateRequest(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC)

	t.Run("opens pending with generated code and defaults", func(t *testing.T) {
		f := newOrchFixture(now)
		actor := uuid.New()

		req, err := f.orch.CreateRequest(ctx, actor, CreateRequestInput{
			ClientID: uuid.New(),
			SystemID: uuid.New(),
		})
		require.NoError(t, err)

		assert.Equal(t, "REQ-2026-0001", req.RequestCode)
		assert.Equal(t, RequestStatusPending, req.Status)
		assert.Equal(t, "medium", req.Priority)
		assert.Equal(t, actor, req.CreatedByUserID)

		assert.Equal(t, []string{ActionRequestCreated}, f.activity.actions)
	})

	t.Run("second request takes the next sequence", func(t *testing.T) {
		f := newOrchFixture(now)
		actor := uuid.New()

		_, err := f.orch.CreateRequest(ctx, actor, CreateRequestInput{ClientID: uuid.New(), SystemID: uuid.New()})
		require.NoError(t, err)
		req, err := f.orch.CreateRequest(ctx, actor, CreateRequestInput{ClientID: uuid.New(), SystemID: uuid.New(), Priority: "high"})
		require.NoError(t, err)

		assert.Equal(t, "REQ-2026-0002", req.RequestCode)
		assert.Equal(t, "high", req.Priority)
	})

	t.Run("retries on code collision", func(t *testing.T) {
		f := newOrchFixture(now)
		store := &collideStore{memStore: f.store, failures: 2}
		orch := NewOrchestrator(store, f.notifier, f.messenger, f.activity, fixedClock{now: now})

		req, err := orch.CreateRequest(ctx, uuid.New(), CreateRequestInput{ClientID: uuid.New(), SystemID: uuid.New()})
		require.NoError(t, err)
		assert.Equal(t, "REQ-2026-0001", req.RequestCode)
	})

	t.Run("gives up after exhausting retries", func(t *testing.T) {
		f := newOrchFixture(now)
		store := &collideStore{memStore: f.store, failures: 3}
		orch := NewOrchestrator(store, f.notifier, f.messenger, f.activity, fixedClock{now: now})

		_, err := orch.CreateRequest(ctx, uuid.New(), CreateRequestInput{ClientID: uuid.New(), SystemID: uuid.New()})
		assert.ErrorIs(t, err, ErrCodeCollision)
	})
}

// collideStore fails Create with ErrCodeCollision a fixed number of times
// before delegating, simulating concurrent code generation.
type collideStore struct {
	*memStore
	failures int
}

func (s *collideStore) WithinTx(ctx context.Context, fn func(tx Store) error) error { return fn(s) }

func (s *collideStore) Requests() RequestRepo {
	return &collideRequests{RequestRepo: s.memStore.Requests(), s: s}
}

type collideRequests struct {
	RequestRepo
	s *collideStore
}

func (r *collideRequests) Create(ctx context.Context, req *reqmodel.OnboardingRequestModel) error {
	if r.s.failures > 0 {
		r.s.failures--
		return ErrCodeCollision
	}
	return r.RequestRepo.Create(ctx, req)
}

func TestAssignTrainer(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC)

	t.Run("materializes one progress row per active stage", func(t *testing.T) {
		f := newOrchFixture(now)
		actor := uuid.New()
		trainer := uuid.New()
		systemID := uuid.New()

		f.seedStage(systemID, 1, true)
		f.seedStage(systemID, 2, true)
		f.seedStage(systemID, 3, false)  // inactive, must not materialize
		f.seedStage(uuid.New(), 1, true) // other system

		req, err := f.orch.CreateRequest(ctx, actor, CreateRequestInput{ClientID: uuid.New(), SystemID: systemID})
		require.NoError(t, err)

		assignment, err := f.orch.AssignTrainer(ctx, req.ID, trainer, actor, nil)
		require.NoError(t, err)
		assert.Equal(t, AssignmentStatusAssigned, assignment.Status)
		assert.Equal(t, now, assignment.AssignedAt)

		stored, err := f.store.Requests().FindByID(ctx, req.ID)
		require.NoError(t, err)
		assert.Equal(t, RequestStatusAssigned, stored.Status)

		rows, err := f.store.StageProgress().ListByAssignment(ctx, assignment.ID)
		require.NoError(t, err)
		require.Len(t, rows, 2)
		for _, row := range rows {
			assert.Equal(t, StageStatusNotStarted, row.Status)
			assert.Equal(t, 0.0, row.ProgressPercentage)
		}

		require.Len(t, f.notifier.sent, 1)
		n := f.notifier.sent[0]
		assert.Equal(t, []uuid.UUID{trainer}, n.userIDs)
		assert.Equal(t, "assignment_created", n.typ)
		assert.Contains(t, n.message, req.RequestCode)
	})

	t.Run("rejects a request that is not pending", func(t *testing.T) {
		f := newOrchFixture(now)
		actor := uuid.New()
		req, err := f.orch.CreateRequest(ctx, actor, CreateRequestInput{ClientID: uuid.New(), SystemID: uuid.New()})
		require.NoError(t, err)

		_, err = f.orch.AssignTrainer(ctx, req.ID, uuid.New(), actor, nil)
		require.NoError(t, err)

		_, err = f.orch.AssignTrainer(ctx, req.ID, uuid.New(), actor, nil)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("unknown request", func(t *testing.T) {
		f := newOrchFixture(now)
		_, err := f.orch.AssignTrainer(ctx, uuid.New(), uuid.New(), uuid.New(), nil)
		assert.ErrorIs(t, err, ErrRequestNotFound)
	})
}

func TestAcceptAndRejectAssignment(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 2, 11, 9, 0, 0, 0, time.UTC)

	t.Run("accept stamps accepted_at and notifies requester", func(t *testing.T) {
		f := newOrchFixture(now)
		actor := uuid.New()
		req, _ := f.orch.CreateRequest(ctx, actor, CreateRequestInput{ClientID: uuid.New(), SystemID: uuid.New()})
		assignment, _ := f.orch.AssignTrainer(ctx, req.ID, uuid.New(), actor, nil)

		require.NoError(t, f.orch.AcceptAssignment(ctx, assignment.ID, assignment.TrainerID))

		stored, err := f.store.Assignments().FindByID(ctx, assignment.ID)
		require.NoError(t, err)
		assert.Equal(t, AssignmentStatusAccepted, stored.Status)
		require.NotNil(t, stored.AcceptedAt)
		assert.Equal(t, now, *stored.AcceptedAt)

		assert.Contains(t, f.notificationTypes(), "assignment_accepted")
	})

	t.Run("reject re-opens the request for re-assignment", func(t *testing.T) {
		f := newOrchFixture(now)
		actor := uuid.New()
		req, _ := f.orch.CreateRequest(ctx, actor, CreateRequestInput{ClientID: uuid.New(), SystemID: uuid.New()})
		assignment, _ := f.orch.AssignTrainer(ctx, req.ID, uuid.New(), actor, nil)

		require.NoError(t, f.orch.RejectAssignment(ctx, assignment.ID, assignment.TrainerID, "unavailable"))

		stored, err := f.store.Assignments().FindByID(ctx, assignment.ID)
		require.NoError(t, err)
		assert.Equal(t, AssignmentStatusRejected, stored.Status)
		require.NotNil(t, stored.RejectionReason)
		assert.Equal(t, "unavailable", *stored.RejectionReason)
		require.NotNil(t, stored.RejectedAt)

		storedReq, err := f.store.Requests().FindByID(ctx, req.ID)
		require.NoError(t, err)
		assert.Equal(t, RequestStatusPending, storedReq.Status)

		// A second trainer can now be assigned.
		_, err = f.orch.AssignTrainer(ctx, req.ID, uuid.New(), actor, nil)
		assert.NoError(t, err)
	})

	t.Run("accept after reject is refused", func(t *testing.T) {
		f := newOrchFixture(now)
		actor := uuid.New()
		req, _ := f.orch.CreateRequest(ctx, actor, CreateRequestInput{ClientID: uuid.New(), SystemID: uuid.New()})
		assignment, _ := f.orch.AssignTrainer(ctx, req.ID, uuid.New(), actor, nil)

		require.NoError(t, f.orch.RejectAssignment(ctx, assignment.ID, assignment.TrainerID, "unavailable"))
		err := f.orch.AcceptAssignment(ctx, assignment.ID, assignment.TrainerID)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})
}

// lifecycleFixture drives the happy path up to an accepted assignment with
// one active stage, ready for session scheduling.
type lifecycleFixture struct {
	*orchFixture
	actor     uuid.UUID
	trainer   uuid.UUID
	requestID uuid.UUID
	stageID   uuid.UUID
	asgID     uuid.UUID
}

func newLifecycleFixture(t *testing.T, now time.Time) *lifecycleFixture {
	t.Helper()
	ctx := context.Background()
	f := newOrchFixture(now)
	actor := uuid.New()
	trainer := uuid.New()
	systemID := uuid.New()
	clientID := uuid.New()
	f.store.clientNames[clientID] = "PT Maju Jaya"
	stageID := f.seedStage(systemID, 1, true)

	req, err := f.orch.CreateRequest(ctx, actor, CreateRequestInput{ClientID: clientID, SystemID: systemID})
	require.NoError(t, err)
	assignment, err := f.orch.AssignTrainer(ctx, req.ID, trainer, actor, nil)
	require.NoError(t, err)
	require.NoError(t, f.orch.AcceptAssignment(ctx, assignment.ID, trainer))

	return &lifecycleFixture{
		orchFixture: f,
		actor:       actor,
		trainer:     trainer,
		requestID:   req.ID,
		stageID:     stageID,
		asgID:       assignment.ID,
	}
}

func (lf *lifecycleFixture) schedule(t *testing.T, date time.Time, start, end string, contacts ...uuid.UUID) *sessmodel.TrainingSessionModel {
	t.Helper()
	session, err := lf.orch.CreateSession(context.Background(), lf.asgID, lf.trainer, CreateSessionInput{
		StageID:            lf.stageID,
		Title:              "Intro Training",
		ScheduledDate:      date,
		ScheduledStartTime: start,
		ScheduledEndTime:   end,
		ContactIDs:         contacts,
	})
	require.NoError(t, err)
	return session
}

func TestCreateSession(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 2, 15, 8, 0, 0, 0, time.UTC)
	day := time.Date(2026, 2, 20, 0, 0, 0, 0, time.UTC)

	t.Run("schedules, invites and messages", func(t *testing.T) {
		lf := newLifecycleFixture(t, now)
		contactA, contactB := uuid.New(), uuid.New()

		session := lf.schedule(t, day, "09:00", "12:00", contactA, contactB)
		assert.Equal(t, SessionStatusScheduled, session.Status)
		assert.Equal(t, "online", session.LocationType)

		attendees, err := lf.store.Attendees().ListBySession(ctx, session.ID)
		require.NoError(t, err)
		require.Len(t, attendees, 2)
		for _, att := range attendees {
			assert.Equal(t, AttendanceStatusInvited, att.AttendanceStatus)
		}

		require.Len(t, lf.messenger.sent, 1)
		assert.Equal(t, MessageSessionScheduled, lf.messenger.sent[0].messageType)
		assert.Equal(t, session.ID, lf.messenger.sent[0].sessionID)

		types := lf.notificationTypes()
		require.Contains(t, types, "session_created")
		last := lf.notifier.sent[len(lf.notifier.sent)-1]
		assert.Contains(t, last.message, "PT Maju Jaya")
		assert.Contains(t, last.message, "2026-02-20")
	})

	t.Run("overlapping slot is refused", func(t *testing.T) {
		lf := newLifecycleFixture(t, now)
		lf.schedule(t, day, "09:00", "12:00")

		_, err := lf.orch.CreateSession(ctx, lf.asgID, lf.trainer, CreateSessionInput{
			StageID:            lf.stageID,
			Title:              "Second",
			ScheduledDate:      day,
			ScheduledStartTime: "10:00",
			ScheduledEndTime:   "11:00",
		})
		assert.ErrorIs(t, err, ErrSessionOverlap)
	})

	t.Run("back-to-back slot is allowed", func(t *testing.T) {
		lf := newLifecycleFixture(t, now)
		lf.schedule(t, day, "09:00", "12:00")
		lf.schedule(t, day, "12:00", "13:00")
	})

	t.Run("end before start is invalid", func(t *testing.T) {
		lf := newLifecycleFixture(t, now)
		_, err := lf.orch.CreateSession(ctx, lf.asgID, lf.trainer, CreateSessionInput{
			StageID:            lf.stageID,
			Title:              "Broken",
			ScheduledDate:      day,
			ScheduledStartTime: "12:00",
			ScheduledEndTime:   "09:00",
		})
		assert.ErrorIs(t, err, ErrInvalidSchedule)

		_, err = lf.orch.CreateSession(ctx, lf.asgID, lf.trainer, CreateSessionInput{
			StageID:            lf.stageID,
			Title:              "Zero width",
			ScheduledDate:      day,
			ScheduledStartTime: "09:00",
			ScheduledEndTime:   "09:00",
		})
		assert.ErrorIs(t, err, ErrInvalidSchedule)
	})
}

func TestStartSession(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 2, 20, 9, 0, 0, 0, time.UTC)
	day := time.Date(2026, 2, 20, 0, 0, 0, 0, time.UTC)

	t.Run("first start cascades assignment and request into in_progress", func(t *testing.T) {
		lf := newLifecycleFixture(t, now)
		session := lf.schedule(t, day, "09:00", "12:00")
		proof := uuid.New()

		require.NoError(t, lf.orch.StartSession(ctx, session.ID, lf.trainer, proof, -6.2, 106.8))

		stored, err := lf.store.Sessions().FindByID(ctx, session.ID)
		require.NoError(t, err)
		assert.Equal(t, SessionStatusInProgress, stored.Status)
		require.NotNil(t, stored.StartProofMediaID)
		assert.Equal(t, proof, *stored.StartProofMediaID)
		require.NotNil(t, stored.StartLatitude)
		assert.Equal(t, -6.2, *stored.StartLatitude)

		assignment, err := lf.store.Assignments().FindByID(ctx, lf.asgID)
		require.NoError(t, err)
		assert.Equal(t, AssignmentStatusInProgress, assignment.Status)
		require.NotNil(t, assignment.StartedAt)

		req, err := lf.store.Requests().FindByID(ctx, lf.requestID)
		require.NoError(t, err)
		assert.Equal(t, RequestStatusInProgress, req.Status)
		require.NotNil(t, req.ActualStartDate)
		assert.Equal(t, now, *req.ActualStartDate)

		sp, err := lf.store.StageProgress().FindByAssignmentAndStage(ctx, lf.asgID, lf.stageID)
		require.NoError(t, err)
		assert.Equal(t, StageStatusInProgress, sp.Status)
		require.NotNil(t, sp.StartedAt)
	})

	t.Run("later starts leave the upward statuses alone", func(t *testing.T) {
		lf := newLifecycleFixture(t, now)
		first := lf.schedule(t, day, "09:00", "12:00")
		second := lf.schedule(t, day, "13:00", "15:00")

		require.NoError(t, lf.orch.StartSession(ctx, first.ID, lf.trainer, uuid.New(), 0, 0))
		require.NoError(t, lf.orch.CompleteSession(ctx, first.ID, lf.trainer, CompleteSessionInput{Notes: "ok", EndProofMediaID: uuid.New(), StudentCount: 3}))

		// Second stage still has an open session, so nothing completed yet.
		require.NoError(t, lf.orch.StartSession(ctx, second.ID, lf.trainer, uuid.New(), 0, 0))

		req, err := lf.store.Requests().FindByID(ctx, lf.requestID)
		require.NoError(t, err)
		assert.Equal(t, RequestStatusInProgress, req.Status)
	})

	t.Run("cannot start a cancelled session", func(t *testing.T) {
		lf := newLifecycleFixture(t, now)
		session := lf.schedule(t, day, "09:00", "12:00")
		require.NoError(t, lf.orch.CancelSession(ctx, session.ID, lf.trainer, "client postponed"))

		err := lf.orch.StartSession(ctx, session.ID, lf.trainer, uuid.New(), 0, 0)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})
}

func TestCompleteSession_FullCascade(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 2, 20, 12, 0, 0, 0, time.UTC)
	day := time.Date(2026, 2, 20, 0, 0, 0, 0, time.UTC)

	lf := newLifecycleFixture(t, now)
	session := lf.schedule(t, day, "09:00", "12:00")

	require.NoError(t, lf.orch.StartSession(ctx, session.ID, lf.trainer, uuid.New(), 0, 0))
	require.NoError(t, lf.orch.CompleteSession(ctx, session.ID, lf.trainer, CompleteSessionInput{
		Notes:           "all modules covered",
		EndProofMediaID: uuid.New(),
		StudentCount:    5,
		EndLatitude:     -6.2,
		EndLongitude:    106.8,
	}))

	stored, err := lf.store.Sessions().FindByID(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, SessionStatusCompleted, stored.Status)
	require.NotNil(t, stored.StudentCount)
	assert.Equal(t, 5, *stored.StudentCount)

	// Only session of the only stage: the whole engagement closes.
	sp, err := lf.store.StageProgress().FindByAssignmentAndStage(ctx, lf.asgID, lf.stageID)
	require.NoError(t, err)
	assert.Equal(t, StageStatusCompleted, sp.Status)
	assert.Equal(t, 100.0, sp.ProgressPercentage)

	assignment, err := lf.store.Assignments().FindByID(ctx, lf.asgID)
	require.NoError(t, err)
	assert.Equal(t, AssignmentStatusCompleted, assignment.Status)

	req, err := lf.store.Requests().FindByID(ctx, lf.requestID)
	require.NoError(t, err)
	assert.Equal(t, RequestStatusCompleted, req.Status)
	require.NotNil(t, req.ActualEndDate)
	assert.Equal(t, now, *req.ActualEndDate)

	assert.Contains(t, lf.notificationTypes(), "session_completed")
}

func TestRescheduleSession(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 2, 18, 8, 0, 0, 0, time.UTC)
	day := time.Date(2026, 2, 20, 0, 0, 0, 0, time.UTC)
	newDay := time.Date(2026, 2, 22, 0, 0, 0, 0, time.UTC)

	t.Run("old session is closed and a new one inherits its shape", func(t *testing.T) {
		lf := newLifecycleFixture(t, now)
		contact := uuid.New()
		session := lf.schedule(t, day, "09:00", "12:00", contact)

		reason := "trainer sick"
		newSession, err := lf.orch.RescheduleSession(ctx, session.ID, lf.trainer, RescheduleSessionInput{
			ScheduledDate:      newDay,
			ScheduledStartTime: "13:00",
			ScheduledEndTime:   "16:00",
			Reason:             &reason,
		})
		require.NoError(t, err)

		old, err := lf.store.Sessions().FindByID(ctx, session.ID)
		require.NoError(t, err)
		assert.Equal(t, SessionStatusRescheduled, old.Status)
		require.NotNil(t, old.RescheduleReason)
		assert.Equal(t, reason, *old.RescheduleReason)

		assert.NotEqual(t, session.ID, newSession.ID)
		assert.Equal(t, SessionStatusScheduled, newSession.Status)
		assert.Equal(t, session.SessionTitle, newSession.SessionTitle)
		assert.Equal(t, session.StageID, newSession.StageID)
		assert.Equal(t, "13:00", newSession.ScheduledStartTime)

		// Attendees of the old session are re-invited on the new one.
		attendees, err := lf.store.Attendees().ListBySession(ctx, newSession.ID)
		require.NoError(t, err)
		require.Len(t, attendees, 1)
		assert.Equal(t, contact, attendees[0].ClientContactID)

		// Telegram message goes out for the NEW session.
		last := lf.messenger.sent[len(lf.messenger.sent)-1]
		assert.Equal(t, MessageSessionRescheduled, last.messageType)
		assert.Equal(t, newSession.ID, last.sessionID)
	})

	t.Run("new slot may reuse the old session's window", func(t *testing.T) {
		lf := newLifecycleFixture(t, now)
		session := lf.schedule(t, day, "09:00", "12:00")

		// Same day, overlapping the session being replaced: the exclusion
		// means no conflict.
		newSession, err := lf.orch.RescheduleSession(ctx, session.ID, lf.trainer, RescheduleSessionInput{
			ScheduledDate:      day,
			ScheduledStartTime: "10:00",
			ScheduledEndTime:   "13:00",
		})
		require.NoError(t, err)
		assert.Equal(t, "10:00", newSession.ScheduledStartTime)
	})

	t.Run("new slot conflicting with another session is refused", func(t *testing.T) {
		lf := newLifecycleFixture(t, now)
		lf.schedule(t, day, "09:00", "12:00")
		other := lf.schedule(t, day, "13:00", "15:00")

		_, err := lf.orch.RescheduleSession(ctx, other.ID, lf.trainer, RescheduleSessionInput{
			ScheduledDate:      day,
			ScheduledStartTime: "10:00",
			ScheduledEndTime:   "11:00",
		})
		assert.ErrorIs(t, err, ErrSessionOverlap)
	})

	t.Run("rescheduled session cannot be rescheduled again", func(t *testing.T) {
		lf := newLifecycleFixture(t, now)
		session := lf.schedule(t, day, "09:00", "12:00")
		_, err := lf.orch.RescheduleSession(ctx, session.ID, lf.trainer, RescheduleSessionInput{
			ScheduledDate:      newDay,
			ScheduledStartTime: "09:00",
			ScheduledEndTime:   "12:00",
		})
		require.NoError(t, err)

		_, err = lf.orch.RescheduleSession(ctx, session.ID, lf.trainer, RescheduleSessionInput{
			ScheduledDate:      newDay,
			ScheduledStartTime: "13:00",
			ScheduledEndTime:   "14:00",
		})
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})
}

func TestCancelSession(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 2, 19, 8, 0, 0, 0, time.UTC)
	day := time.Date(2026, 2, 20, 0, 0, 0, 0, time.UTC)

	lf := newLifecycleFixture(t, now)
	contact := uuid.New()
	session := lf.schedule(t, day, "09:00", "12:00", contact)

	require.NoError(t, lf.orch.CancelSession(ctx, session.ID, lf.trainer, "client postponed"))

	stored, err := lf.store.Sessions().FindByID(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, SessionStatusCancelled, stored.Status)
	require.NotNil(t, stored.CancellationReason)
	assert.Equal(t, "client postponed", *stored.CancellationReason)
	require.NotNil(t, stored.CancelledByUserID)
	assert.Equal(t, lf.trainer, *stored.CancelledByUserID)
	require.NotNil(t, stored.CancelledAt)

	attendees, err := lf.store.Attendees().ListBySession(ctx, session.ID)
	require.NoError(t, err)
	require.Len(t, attendees, 1)
	assert.Equal(t, AttendanceStatusCancelled, attendees[0].AttendanceStatus)

	last := lf.messenger.sent[len(lf.messenger.sent)-1]
	assert.Equal(t, MessageSessionCancelled, last.messageType)

	// The slot is free again.
	lf.schedule(t, day, "09:00", "12:00")
}

func TestCancelRequest(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 2, 19, 8, 0, 0, 0, time.UTC)
	day := time.Date(2026, 2, 20, 0, 0, 0, 0, time.UTC)

	t.Run("cancels scheduled sessions and closes the active assignment", func(t *testing.T) {
		lf := newLifecycleFixture(t, now)
		contact := uuid.New()
		session := lf.schedule(t, day, "09:00", "12:00", contact)

		reason := "client churned"
		require.NoError(t, lf.orch.CancelRequest(ctx, lf.requestID, lf.actor, &reason))

		req, err := lf.store.Requests().FindByID(ctx, lf.requestID)
		require.NoError(t, err)
		assert.Equal(t, RequestStatusCancelled, req.Status)
		require.NotNil(t, req.ActualEndDate)

		stored, err := lf.store.Sessions().FindByID(ctx, session.ID)
		require.NoError(t, err)
		assert.Equal(t, SessionStatusCancelled, stored.Status)

		attendees, err := lf.store.Attendees().ListBySession(ctx, session.ID)
		require.NoError(t, err)
		require.Len(t, attendees, 1)
		assert.Equal(t, AttendanceStatusCancelled, attendees[0].AttendanceStatus)

		assignment, err := lf.store.Assignments().FindByID(ctx, lf.asgID)
		require.NoError(t, err)
		assert.Equal(t, AssignmentStatusCompleted, assignment.Status)
		require.NotNil(t, assignment.CompletedAt)

		require.NotEmpty(t, lf.notifier.sent)
		last := lf.notifier.sent[len(lf.notifier.sent)-1]
		assert.Equal(t, []uuid.UUID{lf.trainer}, last.userIDs)
		assert.Contains(t, last.message, "client churned")
	})

	t.Run("completed request cannot be cancelled", func(t *testing.T) {
		lf := newLifecycleFixture(t, now)
		session := lf.schedule(t, day, "09:00", "12:00")
		require.NoError(t, lf.orch.StartSession(ctx, session.ID, lf.trainer, uuid.New(), 0, 0))
		require.NoError(t, lf.orch.CompleteSession(ctx, session.ID, lf.trainer, CompleteSessionInput{Notes: "done", EndProofMediaID: uuid.New(), StudentCount: 1}))

		err := lf.orch.CancelRequest(ctx, lf.requestID, lf.actor, nil)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})
}

func TestMarkAttendance(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 2, 20, 9, 30, 0, 0, time.UTC)
	day := time.Date(2026, 2, 20, 0, 0, 0, 0, time.UTC)

	lf := newLifecycleFixture(t, now)
	session := lf.schedule(t, day, "09:00", "12:00", uuid.New())

	attendees, err := lf.store.Attendees().ListBySession(ctx, session.ID)
	require.NoError(t, err)
	require.Len(t, attendees, 1)
	attendeeID := attendees[0].ID

	t.Run("attended stamps attended_at", func(t *testing.T) {
		require.NoError(t, lf.orch.MarkAttendance(ctx, attendeeID, lf.trainer, AttendanceStatusAttended, nil))

		att, err := lf.store.Attendees().FindByID(ctx, attendeeID)
		require.NoError(t, err)
		assert.Equal(t, AttendanceStatusAttended, att.AttendanceStatus)
		require.NotNil(t, att.AttendedAt)
		assert.Equal(t, now, *att.AttendedAt)
	})

	t.Run("absent leaves attended_at alone", func(t *testing.T) {
		note := "no show"
		require.NoError(t, lf.orch.MarkAttendance(ctx, attendeeID, lf.trainer, AttendanceStatusAbsent, &note))

		att, err := lf.store.Attendees().FindByID(ctx, attendeeID)
		require.NoError(t, err)
		assert.Equal(t, AttendanceStatusAbsent, att.AttendanceStatus)
		require.NotNil(t, att.Notes)
		assert.Equal(t, "no show", *att.Notes)
	})

	t.Run("unknown attendee", func(t *testing.T) {
		err := lf.orch.MarkAttendance(ctx, uuid.New(), lf.trainer, AttendanceStatusAttended, nil)
		assert.ErrorIs(t, err, ErrAttendeeNotFound)
	})
}

func TestAddStudents(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 2, 20, 12, 30, 0, 0, time.UTC)
	day := time.Date(2026, 2, 20, 0, 0, 0, 0, time.UTC)

	lf := newLifecycleFixture(t, now)
	session := lf.schedule(t, day, "09:00", "12:00")

	name := "Budi"
	phone := "+628111111111"
	require.NoError(t, lf.orch.AddStudents(ctx, session.ID, lf.trainer, []StudentInput{
		{Name: &name, PhoneNumber: &phone},
		{Name: &name},
	}))

	require.Len(t, lf.store.students, 2)
	assert.Equal(t, session.ID, lf.store.students[0].SessionID)
	assert.Contains(t, lf.notificationTypes(), "student_attendance_submitted")
}

func TestSkipStage(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 2, 21, 9, 0, 0, 0, time.UTC)

	findProgressID := func(t *testing.T, lf *lifecycleFixture) uuid.UUID {
		t.Helper()
		sp, err := lf.store.StageProgress().FindByAssignmentAndStage(ctx, lf.asgID, lf.stageID)
		require.NoError(t, err)
		require.NotNil(t, sp)
		return sp.ID
	}

	t.Run("skip before any session leaves the assignment in accepted", func(t *testing.T) {
		lf := newLifecycleFixture(t, now)
		spID := findProgressID(t, lf)

		require.NoError(t, lf.orch.SkipStage(ctx, spID, lf.actor, "not applicable for this client"))

		sp, err := lf.store.StageProgress().FindByID(ctx, spID)
		require.NoError(t, err)
		assert.Equal(t, StageStatusSkipped, sp.Status)
		require.NotNil(t, sp.Notes)
		assert.Equal(t, "not applicable for this client", *sp.Notes)

		// The cascade only completes an in_progress assignment.
		assignment, err := lf.store.Assignments().FindByID(ctx, lf.asgID)
		require.NoError(t, err)
		assert.Equal(t, AssignmentStatusAccepted, assignment.Status)
	})

	t.Run("terminal stage cannot be skipped again", func(t *testing.T) {
		lf := newLifecycleFixture(t, now)
		spID := findProgressID(t, lf)

		require.NoError(t, lf.orch.SkipStage(ctx, spID, lf.actor, "n/a"))
		err := lf.orch.SkipStage(ctx, spID, lf.actor, "again")
		assert.ErrorIs(t, err, ErrStageAlreadyTerminal)
	})

	t.Run("unknown stage progress", func(t *testing.T) {
		lf := newLifecycleFixture(t, now)
		err := lf.orch.SkipStage(ctx, uuid.New(), lf.actor, "n/a")
		assert.ErrorIs(t, err, ErrStageNotFound)
	})
}
