package model

import (
	"time"

	"github.com/google/uuid"
)

// NotificationModel is an in-app notification addressed to either an
// internal user or a client contact (exactly one of the two is set).
type NotificationModel struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:id" json:"id"`

	UserID          *uuid.UUID `gorm:"type:uuid;index;column:user_id"           json:"user_id,omitempty"`
	ClientContactID *uuid.UUID `gorm:"type:uuid;index;column:client_contact_id" json:"client_contact_id,omitempty"`

	Type    string `gorm:"type:varchar(50);not null;column:type"   json:"type"`
	Title   string `gorm:"type:varchar(255);not null;column:title" json:"title"`
	Message string `gorm:"not null;column:message"                 json:"message"`

	RelatedEntityType *string    `gorm:"type:varchar(50);column:related_entity_type" json:"related_entity_type,omitempty"`
	RelatedEntityID   *uuid.UUID `gorm:"type:uuid;column:related_entity_id"          json:"related_entity_id,omitempty"`

	IsRead bool       `gorm:"not null;default:false;index;column:is_read" json:"is_read"`
	ReadAt *time.Time `gorm:"column:read_at" json:"read_at,omitempty"`

	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime;index" json:"created_at"`
	UpdatedAt *time.Time `gorm:"column:updated_at;autoUpdateTime"       json:"updated_at,omitempty"`
}

func (NotificationModel) TableName() string { return "notifications" }
