package workflow

import (
	"context"
	"testing"
	"time"

	asgmodel "onboardku_backend/internals/features/onboarding/assignments/model"
	reqmodel "onboardku_backend/internals/features/onboarding/requests/model"
	sessmodel "onboardku_backend/internals/features/onboarding/sessions/model"
	stagemodel "onboardku_backend/internals/features/onboarding/stages/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type progressFixture struct {
	store        *memStore
	requestID    uuid.UUID
	assignmentID uuid.UUID
	trainerID    uuid.UUID
}

// seedAssignment wires request → assignment in the given statuses.
func seedAssignment(requestStatus, assignmentStatus string) progressFixture {
	store := newMemStore()
	requestID := uuid.New()
	assignmentID := uuid.New()
	trainerID := uuid.New()

	store.requests[requestID] = reqmodel.OnboardingRequestModel{
		ID:              requestID,
		RequestCode:     "REQ-2026-0001",
		ClientID:        uuid.New(),
		SystemID:        uuid.New(),
		CreatedByUserID: uuid.New(),
		Status:          requestStatus,
		Priority:        "medium",
	}
	store.assignments[assignmentID] = asgmodel.TrainingAssignmentModel{
		ID:                  assignmentID,
		OnboardingRequestID: requestID,
		TrainerID:           trainerID,
		AssignedByUserID:    uuid.New(),
		Status:              assignmentStatus,
	}
	return progressFixture{store: store, requestID: requestID, assignmentID: assignmentID, trainerID: trainerID}
}

func (f progressFixture) addStageRow(status string, pct float64) uuid.UUID {
	id := uuid.New()
	stageID := uuid.New()
	f.store.progress[id] = stagemodel.StageProgressModel{
		ID:                 id,
		AssignmentID:       f.assignmentID,
		StageID:            stageID,
		Status:             status,
		ProgressPercentage: pct,
	}
	return stageID
}

func (f progressFixture) addSession(stageID uuid.UUID, status string) *sessmodel.TrainingSessionModel {
	id := uuid.New()
	s := sessmodel.TrainingSessionModel{
		ID:                 id,
		AssignmentID:       f.assignmentID,
		StageID:            stageID,
		SessionTitle:       "Session",
		ScheduledDate:      time.Date(2026, 2, 20, 0, 0, 0, 0, time.UTC),
		ScheduledStartTime: "09:00",
		ScheduledEndTime:   "12:00",
		Status:             status,
	}
	f.store.sessions[id] = s
	return &s
}

var testNow = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func TestStageProgressPercent(t *testing.T) {
	ctx := context.Background()
	agg := NewProgressAggregator(fixedClock{now: testNow})

	t.Run("zero active sessions yields exactly zero", func(t *testing.T) {
		f := seedAssignment(RequestStatusInProgress, AssignmentStatusInProgress)
		stageID := f.addStageRow(StageStatusNotStarted, 0)

		pct, err := agg.StageProgressPercent(ctx, f.store, f.assignmentID, stageID)
		require.NoError(t, err)
		assert.Equal(t, 0.0, pct)
	})

	t.Run("cancelled and rescheduled sessions are excluded", func(t *testing.T) {
		f := seedAssignment(RequestStatusInProgress, AssignmentStatusInProgress)
		stageID := f.addStageRow(StageStatusInProgress, 0)
		f.addSession(stageID, SessionStatusCompleted)
		f.addSession(stageID, SessionStatusScheduled)
		f.addSession(stageID, SessionStatusCancelled)
		f.addSession(stageID, SessionStatusRescheduled)

		pct, err := agg.StageProgressPercent(ctx, f.store, f.assignmentID, stageID)
		require.NoError(t, err)
		assert.Equal(t, 50.0, pct)
	})

	t.Run("rounds to two decimals and stays within bounds", func(t *testing.T) {
		f := seedAssignment(RequestStatusInProgress, AssignmentStatusInProgress)
		stageID := f.addStageRow(StageStatusInProgress, 0)
		f.addSession(stageID, SessionStatusCompleted)
		f.addSession(stageID, SessionStatusScheduled)
		f.addSession(stageID, SessionStatusScheduled)

		pct, err := agg.StageProgressPercent(ctx, f.store, f.assignmentID, stageID)
		require.NoError(t, err)
		assert.Equal(t, 33.33, pct)
		assert.GreaterOrEqual(t, pct, 0.0)
		assert.LessOrEqual(t, pct, 100.0)
	})
}

func TestAssignmentOverallProgress(t *testing.T) {
	ctx := context.Background()
	agg := NewProgressAggregator(fixedClock{now: testNow})

	t.Run("no rows defaults to zero", func(t *testing.T) {
		f := seedAssignment(RequestStatusInProgress, AssignmentStatusInProgress)
		overall, err := agg.AssignmentOverallProgress(ctx, f.store, f.assignmentID)
		require.NoError(t, err)
		assert.Equal(t, 0.0, overall)
	})

	t.Run("mean across stage rows including skipped", func(t *testing.T) {
		f := seedAssignment(RequestStatusInProgress, AssignmentStatusInProgress)
		f.addStageRow(StageStatusCompleted, 100)
		f.addStageRow(StageStatusInProgress, 50)
		f.addStageRow(StageStatusSkipped, 0)

		overall, err := agg.AssignmentOverallProgress(ctx, f.store, f.assignmentID)
		require.NoError(t, err)
		assert.Equal(t, 50.0, overall)
	})
}

func TestCascadeOnSessionComplete(t *testing.T) {
	ctx := context.Background()
	agg := NewProgressAggregator(fixedClock{now: testNow})

	t.Run("partial completion updates percentage only", func(t *testing.T) {
		f := seedAssignment(RequestStatusInProgress, AssignmentStatusInProgress)
		stageID := f.addStageRow(StageStatusInProgress, 0)
		done := f.addSession(stageID, SessionStatusCompleted)
		f.addSession(stageID, SessionStatusScheduled)

		require.NoError(t, agg.CascadeOnSessionComplete(ctx, f.store, done))

		sp, err := f.store.StageProgress().FindByAssignmentAndStage(ctx, f.assignmentID, stageID)
		require.NoError(t, err)
		assert.Equal(t, StageStatusInProgress, sp.Status)
		assert.Equal(t, 50.0, sp.ProgressPercentage)

		assignment, _ := f.store.Assignments().FindByID(ctx, f.assignmentID)
		assert.Equal(t, AssignmentStatusInProgress, assignment.Status)
	})

	t.Run("last active session completes the stage at 100", func(t *testing.T) {
		f := seedAssignment(RequestStatusInProgress, AssignmentStatusInProgress)
		stageID := f.addStageRow(StageStatusInProgress, 0)
		otherStage := f.addStageRow(StageStatusInProgress, 0)
		_ = otherStage
		done := f.addSession(stageID, SessionStatusCompleted)
		f.addSession(stageID, SessionStatusCancelled) // released slot must not block completion

		require.NoError(t, agg.CascadeOnSessionComplete(ctx, f.store, done))

		sp, err := f.store.StageProgress().FindByAssignmentAndStage(ctx, f.assignmentID, stageID)
		require.NoError(t, err)
		assert.Equal(t, StageStatusCompleted, sp.Status)
		assert.Equal(t, 100.0, sp.ProgressPercentage)
		require.NotNil(t, sp.CompletedAt)
		assert.Equal(t, testNow, *sp.CompletedAt)

		// Second stage still open: assignment must not complete.
		assignment, _ := f.store.Assignments().FindByID(ctx, f.assignmentID)
		assert.Equal(t, AssignmentStatusInProgress, assignment.Status)
	})

	t.Run("all stages terminal completes assignment and request", func(t *testing.T) {
		f := seedAssignment(RequestStatusInProgress, AssignmentStatusInProgress)
		stageID := f.addStageRow(StageStatusInProgress, 0)
		f.addStageRow(StageStatusSkipped, 0)
		done := f.addSession(stageID, SessionStatusCompleted)

		require.NoError(t, agg.CascadeOnSessionComplete(ctx, f.store, done))

		assignment, _ := f.store.Assignments().FindByID(ctx, f.assignmentID)
		assert.Equal(t, AssignmentStatusCompleted, assignment.Status)
		require.NotNil(t, assignment.CompletedAt)

		req, _ := f.store.Requests().FindByID(ctx, f.requestID)
		assert.Equal(t, RequestStatusCompleted, req.Status)
		require.NotNil(t, req.ActualEndDate)
		assert.Equal(t, testNow, *req.ActualEndDate)
	})

	t.Run("terminal cascade targets are never regressed", func(t *testing.T) {
		f := seedAssignment(RequestStatusCancelled, AssignmentStatusCompleted)
		stageID := f.addStageRow(StageStatusInProgress, 0)
		done := f.addSession(stageID, SessionStatusCompleted)

		require.NoError(t, agg.CascadeOnSessionComplete(ctx, f.store, done))

		assignment, _ := f.store.Assignments().FindByID(ctx, f.assignmentID)
		assert.Equal(t, AssignmentStatusCompleted, assignment.Status)
		assert.Nil(t, assignment.CompletedAt)

		req, _ := f.store.Requests().FindByID(ctx, f.requestID)
		assert.Equal(t, RequestStatusCancelled, req.Status)
	})

	t.Run("missing stage row is a no-op", func(t *testing.T) {
		f := seedAssignment(RequestStatusInProgress, AssignmentStatusInProgress)
		done := f.addSession(uuid.New(), SessionStatusCompleted)
		require.NoError(t, agg.CascadeOnSessionComplete(ctx, f.store, done))
	})
}

func TestCascadeOnStageSkip(t *testing.T) {
	ctx := context.Background()
	agg := NewProgressAggregator(fixedClock{now: testNow})

	t.Run("skipping the last open stage completes assignment and request", func(t *testing.T) {
		f := seedAssignment(RequestStatusInProgress, AssignmentStatusInProgress)
		f.addStageRow(StageStatusCompleted, 100)
		stageID := f.addStageRow(StageStatusSkipped, 0)

		sp, err := f.store.StageProgress().FindByAssignmentAndStage(ctx, f.assignmentID, stageID)
		require.NoError(t, err)

		require.NoError(t, agg.CascadeOnStageSkip(ctx, f.store, sp))

		assignment, _ := f.store.Assignments().FindByID(ctx, f.assignmentID)
		assert.Equal(t, AssignmentStatusCompleted, assignment.Status)

		req, _ := f.store.Requests().FindByID(ctx, f.requestID)
		assert.Equal(t, RequestStatusCompleted, req.Status)
	})

	t.Run("open stages keep the assignment running", func(t *testing.T) {
		f := seedAssignment(RequestStatusInProgress, AssignmentStatusInProgress)
		f.addStageRow(StageStatusInProgress, 40)
		stageID := f.addStageRow(StageStatusSkipped, 0)

		sp, err := f.store.StageProgress().FindByAssignmentAndStage(ctx, f.assignmentID, stageID)
		require.NoError(t, err)

		require.NoError(t, agg.CascadeOnStageSkip(ctx, f.store, sp))

		assignment, _ := f.store.Assignments().FindByID(ctx, f.assignmentID)
		assert.Equal(t, AssignmentStatusInProgress, assignment.Status)
	})
}
