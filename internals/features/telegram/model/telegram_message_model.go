package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	DeliveryStatusPending   = "pending"
	DeliveryStatusSent      = "sent"
	DeliveryStatusDelivered = "delivered"
	DeliveryStatusFailed    = "failed"
)

// TelegramMessageModel records every outbound Telegram message so delivery
// failures are visible without ever blocking the workflow that emitted them.
type TelegramMessageModel struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:id" json:"id"`

	ClientContactID uuid.UUID `gorm:"type:uuid;not null;index;column:client_contact_id" json:"client_contact_id"`

	MessageType    string `gorm:"type:varchar(50);not null;column:message_type" json:"message_type"`
	MessageContent string `gorm:"not null;column:message_content"               json:"message_content"`

	TelegramMessageID *string    `gorm:"type:varchar(255);column:telegram_message_id" json:"telegram_message_id,omitempty"`
	SentAt            *time.Time `gorm:"index;column:sent_at" json:"sent_at,omitempty"`

	DeliveryStatus string  `gorm:"type:varchar(20);not null;default:'pending';index;column:delivery_status" json:"delivery_status"`
	ErrorMessage   *string `gorm:"column:error_message" json:"error_message,omitempty"`

	RelatedSessionID *uuid.UUID `gorm:"type:uuid;column:related_session_id" json:"related_session_id,omitempty"`

	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt *time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at,omitempty"`
}

func (TelegramMessageModel) TableName() string { return "telegram_messages" }
