package dto

import "github.com/google/uuid"

type CreateStageRequest struct {
	Name                  string    `json:"name"           validate:"required,max=100"`
	Description           *string   `json:"description"`
	SequenceOrder         int       `json:"sequence_order" validate:"required,min=1"`
	EstimatedDurationDays *int      `json:"estimated_duration_days" validate:"omitempty,min=1"`
	SystemID              uuid.UUID `json:"system_id"      validate:"required"`
}

type UpdateStageRequest struct {
	Name                  *string `json:"name"           validate:"omitempty,max=100"`
	Description           *string `json:"description"`
	SequenceOrder         *int    `json:"sequence_order" validate:"omitempty,min=1"`
	EstimatedDurationDays *int    `json:"estimated_duration_days" validate:"omitempty,min=1"`
	IsActive              *bool   `json:"is_active"`
}

type SkipStageRequest struct {
	Reason string `json:"reason" validate:"required,min=3"`
}
