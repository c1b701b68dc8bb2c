package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StageProgressModel is the per-assignment rollup of one onboarding stage.
// Unique per (assignment_id, stage_id).
type StageProgressModel struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:id" json:"id"`

	AssignmentID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_stage_progress_assignment_stage;column:assignment_id" json:"assignment_id"`
	StageID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_stage_progress_assignment_stage;column:stage_id"      json:"stage_id"`

	Status             string  `gorm:"type:varchar(20);not null;default:'not_started';column:status" json:"status"`
	ProgressPercentage float64 `gorm:"type:decimal(5,2);not null;default:0.00;column:progress_percentage" json:"progress_percentage"`

	StartedAt   *time.Time `gorm:"column:started_at"   json:"started_at,omitempty"`
	CompletedAt *time.Time `gorm:"column:completed_at" json:"completed_at,omitempty"`

	Notes *string `gorm:"column:notes" json:"notes,omitempty"`

	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt *time.Time     `gorm:"column:updated_at;autoUpdateTime" json:"updated_at,omitempty"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"          json:"deleted_at,omitempty"`
}

func (StageProgressModel) TableName() string { return "stage_progress" }
