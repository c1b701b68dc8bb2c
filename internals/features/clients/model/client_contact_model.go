package model

import (
	"time"

	"github.com/google/uuid"
)

type ClientContactModel struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:id" json:"id"`

	ClientID uuid.UUID `gorm:"type:uuid;not null;index;column:client_id" json:"client_id"`

	Name        string  `gorm:"type:varchar(255);not null;column:name" json:"name"`
	Email       *string `gorm:"type:varchar(255);index;column:email"   json:"email,omitempty"`
	PhoneNumber *string `gorm:"type:varchar(20);column:phone_number"   json:"phone_number,omitempty"`

	TelegramUsername *string `gorm:"type:varchar(100);column:telegram_username"      json:"telegram_username,omitempty"`
	TelegramChatID   *string `gorm:"type:varchar(255);index;column:telegram_chat_id" json:"telegram_chat_id,omitempty"`

	Position *string `gorm:"type:varchar(100);column:position" json:"position,omitempty"`

	IsPrimaryContact bool `gorm:"not null;default:false;column:is_primary_contact" json:"is_primary_contact"`
	IsActive         bool `gorm:"not null;default:true;column:is_active"           json:"is_active"`

	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt *time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at,omitempty"`
}

func (ClientContactModel) TableName() string { return "client_contacts" }
