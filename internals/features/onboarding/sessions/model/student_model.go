package model

import (
	"time"

	"github.com/google/uuid"
)

// SessionStudentModel is the finalized attendance sheet submitted after a
// session completes. Append-only, no status machine.
type SessionStudentModel struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:id" json:"id"`

	SessionID uuid.UUID `gorm:"type:uuid;not null;index;column:session_id" json:"session_id"`

	Name        *string `gorm:"type:varchar(255);column:name"        json:"name,omitempty"`
	PhoneNumber *string `gorm:"type:varchar(20);column:phone_number" json:"phone_number,omitempty"`
	Profession  *string `gorm:"type:varchar(100);column:profession"  json:"profession,omitempty"`

	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt *time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at,omitempty"`
}

func (SessionStudentModel) TableName() string { return "session_students" }
