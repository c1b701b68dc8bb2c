package dto

import (
	"time"

	"github.com/google/uuid"
)

type RejectAssignmentRequest struct {
	Reason string `json:"reason" validate:"required,min=3"`
}

type ActiveAssignmentItem struct {
	ID                uuid.UUID `json:"id"`
	RequestCode       string    `json:"request_code"`
	ClientName        string    `json:"client_name"`
	SystemName        string    `json:"system_name"`
	Status            string    `json:"status"`
	OverallPercentage float64   `json:"overall_percentage"`
}

type UpcomingSessionItem struct {
	ID                 uuid.UUID `json:"id"`
	AssignmentID       uuid.UUID `json:"assignment_id"`
	SessionTitle       string    `json:"session_title"`
	ScheduledDate      time.Time `json:"scheduled_date"`
	ScheduledStartTime string    `json:"scheduled_start_time"`
	ScheduledEndTime   string    `json:"scheduled_end_time"`
	LocationType       string    `json:"location_type"`
	ClientName         string    `json:"client_name"`
}

type TrainerDashboardResponse struct {
	ActiveAssignments []ActiveAssignmentItem `json:"active_assignments"`
	NextSession       *UpcomingSessionItem   `json:"next_session,omitempty"`
	SessionsThisWeek  int64                  `json:"sessions_this_week"`
}

// AssignmentListItem is the joined row for the trainer dashboard.
type AssignmentListItem struct {
	ID                  uuid.UUID  `json:"id"`
	OnboardingRequestID uuid.UUID  `json:"onboarding_request_id"`
	RequestCode         string     `json:"request_code"`
	ClientName          string     `json:"client_name"`
	SystemName          string     `json:"system_name"`
	Status              string     `json:"status"`
	AssignedAt          time.Time  `json:"assigned_at"`
	AcceptedAt          *time.Time `json:"accepted_at,omitempty"`
	StartedAt           *time.Time `json:"started_at,omitempty"`
	CompletedAt         *time.Time `json:"completed_at,omitempty"`
}
