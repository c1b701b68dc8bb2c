package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateRequestRequest struct {
	ClientID          uuid.UUID  `json:"client_id" validate:"required"`
	SystemID          uuid.UUID  `json:"system_id" validate:"required"`
	Priority          string     `json:"priority"  validate:"omitempty,oneof=low medium high urgent"`
	Notes             *string    `json:"notes"`
	ExpectedStartDate *time.Time `json:"expected_start_date"`
	ExpectedEndDate   *time.Time `json:"expected_end_date"`
}

type AssignTrainerRequest struct {
	TrainerID uuid.UUID `json:"trainer_id" validate:"required"`
	Notes     *string   `json:"notes"`
}

type CancelRequestRequest struct {
	Reason *string `json:"reason"`
}

// RequestListItem is the joined row for list views.
type RequestListItem struct {
	ID          uuid.UUID `json:"id"`
	RequestCode string    `json:"request_code"`
	ClientID    uuid.UUID `json:"client_id"`
	ClientName  string    `json:"client_name"`
	SystemID    uuid.UUID `json:"system_id"`
	SystemName  string    `json:"system_name"`
	Priority    string    `json:"priority"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

type StageProgressItem struct {
	ID                 uuid.UUID  `json:"id"`
	StageID            uuid.UUID  `json:"stage_id"`
	StageName          string     `json:"stage_name"`
	SequenceOrder      int        `json:"sequence_order"`
	Status             string     `json:"status"`
	ProgressPercentage float64    `json:"progress_percentage"`
	StartedAt          *time.Time `json:"started_at,omitempty"`
	CompletedAt        *time.Time `json:"completed_at,omitempty"`
	Notes              *string    `json:"notes,omitempty"`
}

type StatusCount struct {
	Status string `json:"status"`
	Total  int64  `json:"total"`
}

type PriorityCount struct {
	Priority string `json:"priority"`
	Total    int64  `json:"total"`
}

type RequestDashboardResponse struct {
	ByStatus   []StatusCount     `json:"by_status"`
	ByPriority []PriorityCount   `json:"by_priority"`
	Recent     []RequestListItem `json:"recent"`
}

type RequestProgressResponse struct {
	RequestID         uuid.UUID           `json:"request_id"`
	RequestCode       string              `json:"request_code"`
	Status            string              `json:"status"`
	OverallPercentage float64             `json:"overall_percentage"`
	Stages            []StageProgressItem `json:"stages"`
}
