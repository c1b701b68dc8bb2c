package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type UserActivityLogModel struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:id" json:"id"`

	UserID *uuid.UUID `gorm:"type:uuid;index;column:user_id" json:"user_id,omitempty"`

	Action      string  `gorm:"type:varchar(100);not null;index;column:action" json:"action"`
	Description *string `gorm:"column:description" json:"description,omitempty"`

	IPAddress *string        `gorm:"type:varchar(45);column:ip_address" json:"ip_address,omitempty"`
	UserAgent *string        `gorm:"column:user_agent"                  json:"user_agent,omitempty"`
	Metadata  datatypes.JSON `gorm:"type:jsonb;column:metadata"         json:"metadata,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime;index" json:"created_at"`
}

func (UserActivityLogModel) TableName() string { return "user_activity_logs" }
