package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TrainingAssignmentModel struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:id" json:"id"`

	OnboardingRequestID uuid.UUID `gorm:"type:uuid;not null;index;column:onboarding_request_id" json:"onboarding_request_id"`
	TrainerID           uuid.UUID `gorm:"type:uuid;not null;index;column:trainer_id"            json:"trainer_id"`
	AssignedByUserID    uuid.UUID `gorm:"type:uuid;not null;column:assigned_by_user_id"         json:"assigned_by_user_id"`

	Status string  `gorm:"type:varchar(20);not null;default:'assigned';index;column:status" json:"status"`
	Notes  *string `gorm:"column:notes" json:"notes,omitempty"`

	AssignedAt  time.Time  `gorm:"column:assigned_at;not null" json:"assigned_at"`
	AcceptedAt  *time.Time `gorm:"column:accepted_at"          json:"accepted_at,omitempty"`
	StartedAt   *time.Time `gorm:"column:started_at"           json:"started_at,omitempty"`
	CompletedAt *time.Time `gorm:"column:completed_at"         json:"completed_at,omitempty"`
	RejectedAt  *time.Time `gorm:"column:rejected_at"          json:"rejected_at,omitempty"`

	RejectionReason *string `gorm:"column:rejection_reason" json:"rejection_reason,omitempty"`

	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index" json:"deleted_at,omitempty"`
}

func (TrainingAssignmentModel) TableName() string { return "training_assignments" }
