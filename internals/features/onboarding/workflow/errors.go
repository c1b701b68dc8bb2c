package workflow

import (
	"errors"
	"fmt"
)

// Sentinel domain errors. Controllers map these to HTTP statuses; nothing
// in this package ever reaches for fiber.
var (
	ErrRequestNotFound    = errors.New("onboarding request not found")
	ErrAssignmentNotFound = errors.New("training assignment not found")
	ErrSessionNotFound    = errors.New("training session not found")
	ErrAttendeeNotFound   = errors.New("session attendee not found")
	ErrStageNotFound      = errors.New("stage progress not found")

	// ErrSessionOverlap is a hard business rule: the trainer already has an
	// active session overlapping the candidate window.
	ErrSessionOverlap = errors.New("trainer already has a session in this time window")

	ErrStageAlreadyTerminal = errors.New("stage progress is already completed or skipped")

	// ErrInvalidSchedule covers scheduled_end_time <= scheduled_start_time.
	ErrInvalidSchedule = errors.New("scheduled end time must be after start time")

	// ErrCodeCollision is raised by the persistence layer when the generated
	// request code loses a lookup-then-insert race. Safe to retry.
	ErrCodeCollision = errors.New("request code already taken")

	// ErrConcurrentModification maps optimistic-lock / unique-constraint
	// failures other than code collisions. Safe to retry once.
	ErrConcurrentModification = errors.New("concurrent modification detected")
)

// InvalidTransitionError reports a status move absent from the transition
// table. Matches errors.Is(err, ErrInvalidTransition).
type InvalidTransitionError struct {
	Kind EntityKind
	From string
	To   string
}

var ErrInvalidTransition = errors.New("invalid status transition")

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot transition %s from %q to %q", e.Kind, e.From, e.To)
}

func (e *InvalidTransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}
