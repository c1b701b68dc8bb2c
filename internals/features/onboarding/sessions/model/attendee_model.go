package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SessionAttendeeModel struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:id" json:"id"`

	SessionID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_session_attendees_session_contact;column:session_id"         json:"session_id"`
	ClientContactID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_session_attendees_session_contact;column:client_contact_id" json:"client_contact_id"`

	AttendanceStatus string     `gorm:"type:varchar(20);not null;default:'invited';column:attendance_status" json:"attendance_status"`
	AttendedAt       *time.Time `gorm:"column:attended_at" json:"attended_at,omitempty"`

	Notes *string `gorm:"column:notes" json:"notes,omitempty"`

	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt *time.Time     `gorm:"column:updated_at;autoUpdateTime" json:"updated_at,omitempty"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"          json:"deleted_at,omitempty"`
}

func (SessionAttendeeModel) TableName() string { return "session_attendees" }
