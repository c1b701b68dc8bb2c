package workflow

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransition_AllowedEdges(t *testing.T) {
	cases := []struct {
		kind EntityKind
		from string
		to   string
	}{
		{KindRequest, RequestStatusPending, RequestStatusAssigned},
		{KindRequest, RequestStatusPending, RequestStatusCancelled},
		{KindRequest, RequestStatusAssigned, RequestStatusInProgress},
		{KindRequest, RequestStatusAssigned, RequestStatusPending},
		{KindRequest, RequestStatusAssigned, RequestStatusCancelled},
		{KindRequest, RequestStatusInProgress, RequestStatusCompleted},
		{KindRequest, RequestStatusInProgress, RequestStatusCancelled},

		{KindAssignment, AssignmentStatusAssigned, AssignmentStatusAccepted},
		{KindAssignment, AssignmentStatusAssigned, AssignmentStatusRejected},
		{KindAssignment, AssignmentStatusAccepted, AssignmentStatusInProgress},
		{KindAssignment, AssignmentStatusInProgress, AssignmentStatusCompleted},

		{KindSession, SessionStatusScheduled, SessionStatusInProgress},
		{KindSession, SessionStatusScheduled, SessionStatusCancelled},
		{KindSession, SessionStatusScheduled, SessionStatusRescheduled},
		{KindSession, SessionStatusInProgress, SessionStatusCompleted},
		{KindSession, SessionStatusInProgress, SessionStatusCancelled},

		{KindStageProgress, StageStatusNotStarted, StageStatusInProgress},
		{KindStageProgress, StageStatusNotStarted, StageStatusSkipped},
		{KindStageProgress, StageStatusInProgress, StageStatusCompleted},
		{KindStageProgress, StageStatusInProgress, StageStatusSkipped},
	}

	for _, tc := range cases {
		assert.True(t, CanTransition(tc.kind, tc.from, tc.to),
			"%s: %s -> %s should be allowed", tc.kind, tc.from, tc.to)
		assert.NoError(t, ValidateTransition(tc.kind, tc.from, tc.to))
	}
}

// Every (from, to) pair absent from the table must fail, self-loops
// included.
func TestValidateTransition_DeniesEverythingElse(t *testing.T) {
	statuses := map[EntityKind][]string{
		KindRequest:       {RequestStatusPending, RequestStatusAssigned, RequestStatusInProgress, RequestStatusCompleted, RequestStatusCancelled},
		KindAssignment:    {AssignmentStatusAssigned, AssignmentStatusAccepted, AssignmentStatusInProgress, AssignmentStatusCompleted, AssignmentStatusRejected},
		KindSession:       {SessionStatusScheduled, SessionStatusInProgress, SessionStatusCompleted, SessionStatusCancelled, SessionStatusRescheduled},
		KindStageProgress: {StageStatusNotStarted, StageStatusInProgress, StageStatusCompleted, StageStatusSkipped},
	}

	for kind, all := range statuses {
		for _, from := range all {
			for _, to := range all {
				if CanTransition(kind, from, to) {
					continue
				}
				err := ValidateTransition(kind, from, to)
				require.Error(t, err, "%s: %s -> %s", kind, from, to)
				assert.ErrorIs(t, err, ErrInvalidTransition)

				var ite *InvalidTransitionError
				require.ErrorAs(t, err, &ite)
				assert.Equal(t, from, ite.From)
				assert.Equal(t, to, ite.To)
			}
		}
	}
}

func TestValidateTransition_SelfLoopsDenied(t *testing.T) {
	err := ValidateTransition(KindRequest, RequestStatusPending, RequestStatusPending)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	err = ValidateTransition(KindSession, SessionStatusScheduled, SessionStatusScheduled)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestValidateTransition_UnknownKind(t *testing.T) {
	err := ValidateTransition(EntityKind("mystery"), "a", "b")
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestTerminalStatusesHaveNoOutgoingEdges(t *testing.T) {
	terminal := []struct {
		kind   EntityKind
		status string
	}{
		{KindRequest, RequestStatusCompleted},
		{KindRequest, RequestStatusCancelled},
		{KindAssignment, AssignmentStatusCompleted},
		{KindAssignment, AssignmentStatusRejected},
		{KindSession, SessionStatusCompleted},
		{KindSession, SessionStatusCancelled},
		{KindSession, SessionStatusRescheduled},
		{KindStageProgress, StageStatusCompleted},
		{KindStageProgress, StageStatusSkipped},
	}

	every := []string{
		RequestStatusPending, RequestStatusAssigned, RequestStatusInProgress,
		RequestStatusCompleted, RequestStatusCancelled, AssignmentStatusAccepted,
		AssignmentStatusRejected, SessionStatusScheduled, SessionStatusRescheduled,
		StageStatusNotStarted, StageStatusSkipped,
	}

	for _, term := range terminal {
		for _, to := range every {
			assert.False(t, CanTransition(term.kind, term.status, to),
				"%s: terminal %s must not reach %s", term.kind, term.status, to)
		}
	}
}

func TestInvalidTransitionError_Message(t *testing.T) {
	err := ValidateTransition(KindAssignment, AssignmentStatusRejected, AssignmentStatusAccepted)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "training_assignment")
	assert.Contains(t, err.Error(), "rejected")
	assert.Contains(t, err.Error(), "accepted")
	assert.True(t, errors.Is(err, ErrInvalidTransition))
}
