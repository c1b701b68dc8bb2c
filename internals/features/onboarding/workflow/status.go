// Package workflow is the onboarding workflow engine: the status state
// machines for request / assignment / session / stage-progress, the
// trainer double-booking detector, the progress aggregator with its upward
// completion cascade, and the orchestrator tying them together over
// storage and messaging ports. The engine never talks to GORM or Fiber
// directly, so every rule in here is testable without a database.
//
// Status graphs (terminal states have no outgoing edges):
//
//	request:        pending → assigned → in_progress → completed
//	                   ↑         │            │
//	                   └─────────┴────────────┴──► cancelled
//	assignment:     assigned → accepted → in_progress → completed
//	                   └──► rejected
//	session:        scheduled → in_progress → completed
//	                   │  └──► rescheduled      │
//	                   └───────────────────────┴──► cancelled
//	stage_progress: not_started → in_progress → completed
//	                   └──────────────┴──► skipped
package workflow

// EntityKind selects which transition table applies.
type EntityKind string

const (
	KindRequest       EntityKind = "onboarding_request"
	KindAssignment    EntityKind = "training_assignment"
	KindSession       EntityKind = "training_session"
	KindStageProgress EntityKind = "stage_progress"
)

// Request statuses.
const (
	RequestStatusPending    = "pending"
	RequestStatusAssigned   = "assigned"
	RequestStatusInProgress = "in_progress"
	RequestStatusCompleted  = "completed"
	RequestStatusCancelled  = "cancelled"
)

// Assignment statuses.
const (
	AssignmentStatusAssigned   = "assigned"
	AssignmentStatusAccepted   = "accepted"
	AssignmentStatusInProgress = "in_progress"
	AssignmentStatusCompleted  = "completed"
	AssignmentStatusRejected   = "rejected"
)

// Session statuses.
const (
	SessionStatusScheduled   = "scheduled"
	SessionStatusInProgress  = "in_progress"
	SessionStatusCompleted   = "completed"
	SessionStatusCancelled   = "cancelled"
	SessionStatusRescheduled = "rescheduled"
)

// Stage-progress statuses.
const (
	StageStatusNotStarted = "not_started"
	StageStatusInProgress = "in_progress"
	StageStatusCompleted  = "completed"
	StageStatusSkipped    = "skipped"
)

// Attendee statuses (not state-machine governed, but enumerated here so the
// orchestrator and DTO validation agree on the value set).
const (
	AttendanceStatusInvited   = "invited"
	AttendanceStatusConfirmed = "confirmed"
	AttendanceStatusAttended  = "attended"
	AttendanceStatusAbsent    = "absent"
	AttendanceStatusCancelled = "cancelled"
)

// allowedTransitions lists every permitted (from → to) edge per entity.
// Absent pairs — including self-loops — are denied.
var allowedTransitions = map[EntityKind]map[string][]string{
	KindRequest: {
		RequestStatusPending:    {RequestStatusAssigned, RequestStatusCancelled},
		RequestStatusAssigned:   {RequestStatusInProgress, RequestStatusCancelled, RequestStatusPending},
		RequestStatusInProgress: {RequestStatusCompleted, RequestStatusCancelled},
		RequestStatusCompleted:  {},
		RequestStatusCancelled:  {},
	},
	KindAssignment: {
		AssignmentStatusAssigned:   {AssignmentStatusAccepted, AssignmentStatusRejected},
		AssignmentStatusAccepted:   {AssignmentStatusInProgress},
		AssignmentStatusInProgress: {AssignmentStatusCompleted},
		AssignmentStatusCompleted:  {},
		AssignmentStatusRejected:   {},
	},
	KindSession: {
		SessionStatusScheduled:   {SessionStatusInProgress, SessionStatusCancelled, SessionStatusRescheduled},
		SessionStatusInProgress:  {SessionStatusCompleted, SessionStatusCancelled},
		SessionStatusCompleted:   {},
		SessionStatusCancelled:   {},
		SessionStatusRescheduled: {},
	},
	KindStageProgress: {
		StageStatusNotStarted: {StageStatusInProgress, StageStatusSkipped},
		StageStatusInProgress: {StageStatusCompleted, StageStatusSkipped},
		StageStatusCompleted:  {},
		StageStatusSkipped:    {},
	},
}

// CanTransition reports whether moving from → to is an edge of the entity's
// status graph. Pure lookup, no side effects.
func CanTransition(kind EntityKind, from, to string) bool {
	table, ok := allowedTransitions[kind]
	if !ok {
		return false
	}
	for _, allowed := range table[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// ValidateTransition returns an InvalidTransitionError when the move is not
// in the table.
func ValidateTransition(kind EntityKind, from, to string) error {
	if !CanTransition(kind, from, to) {
		return &InvalidTransitionError{Kind: kind, From: from, To: to}
	}
	return nil
}

// IsTerminalStageStatus reports whether a stage-progress row counts toward
// assignment completion.
func IsTerminalStageStatus(status string) bool {
	return status == StageStatusCompleted || status == StageStatusSkipped
}

// ActiveSessionStatuses are the statuses that occupy a trainer's calendar
// slot and count toward stage progress.
func ActiveSessionStatuses() []string {
	return []string{SessionStatusScheduled, SessionStatusInProgress, SessionStatusCompleted}
}
