package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TrainingSessionModel struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:id" json:"id"`

	AssignmentID uuid.UUID `gorm:"type:uuid;not null;index;column:assignment_id" json:"assignment_id"`
	StageID      uuid.UUID `gorm:"type:uuid;not null;index;column:stage_id"      json:"stage_id"`

	SessionTitle       string  `gorm:"type:varchar(255);not null;column:session_title" json:"session_title"`
	SessionDescription *string `gorm:"column:session_description" json:"session_description,omitempty"`

	// scheduled_date is a pure date; start/end are times of day stored as
	// zero-padded "HH:MM" so interval comparison stays lexicographic.
	ScheduledDate      time.Time `gorm:"type:date;not null;index;column:scheduled_date" json:"scheduled_date"`
	ScheduledStartTime string    `gorm:"type:time;not null;column:scheduled_start_time" json:"scheduled_start_time"`
	ScheduledEndTime   string    `gorm:"type:time;not null;column:scheduled_end_time"   json:"scheduled_end_time"`

	ActualStartTime *time.Time `gorm:"column:actual_start_time" json:"actual_start_time,omitempty"`
	ActualEndTime   *time.Time `gorm:"column:actual_end_time"   json:"actual_end_time,omitempty"`

	LocationType     string  `gorm:"type:varchar(20);not null;default:'online';column:location_type" json:"location_type"`
	MeetingLink      *string `gorm:"type:varchar(500);column:meeting_link" json:"meeting_link,omitempty"`
	PhysicalLocation *string `gorm:"column:physical_location"              json:"physical_location,omitempty"`

	Status string `gorm:"type:varchar(20);not null;default:'scheduled';index;column:status" json:"status"`

	CompletionNotes *string `gorm:"column:completion_notes" json:"completion_notes,omitempty"`

	StartProofMediaID *uuid.UUID `gorm:"type:uuid;column:start_proof_media_id" json:"start_proof_media_id,omitempty"`
	StartLatitude     *float64   `gorm:"type:decimal(10,7);column:start_latitude"  json:"start_latitude,omitempty"`
	StartLongitude    *float64   `gorm:"type:decimal(10,7);column:start_longitude" json:"start_longitude,omitempty"`
	EndProofMediaID   *uuid.UUID `gorm:"type:uuid;column:end_proof_media_id" json:"end_proof_media_id,omitempty"`
	EndLatitude       *float64   `gorm:"type:decimal(10,7);column:end_latitude"  json:"end_latitude,omitempty"`
	EndLongitude      *float64   `gorm:"type:decimal(10,7);column:end_longitude" json:"end_longitude,omitempty"`

	StudentCount *int `gorm:"column:student_count" json:"student_count,omitempty"`

	CancellationReason *string    `gorm:"column:cancellation_reason" json:"cancellation_reason,omitempty"`
	CancelledByUserID  *uuid.UUID `gorm:"type:uuid;column:cancelled_by_user_id" json:"cancelled_by_user_id,omitempty"`
	CancelledAt        *time.Time `gorm:"column:cancelled_at" json:"cancelled_at,omitempty"`
	RescheduleReason   *string    `gorm:"column:reschedule_reason" json:"reschedule_reason,omitempty"`

	CreatorID *uuid.UUID `gorm:"type:uuid;column:creator_id" json:"creator_id,omitempty"`

	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt *time.Time     `gorm:"column:updated_at;autoUpdateTime" json:"updated_at,omitempty"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"          json:"deleted_at,omitempty"`
}

func (TrainingSessionModel) TableName() string { return "training_sessions" }
