package model

import (
	"time"

	"github.com/google/uuid"
)

type CredentialModel struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:id" json:"id"`

	UserID uuid.UUID `gorm:"type:uuid;not null;index;column:user_id" json:"user_id"`

	Email       string `gorm:"type:varchar(255);not null;uniqueIndex;column:email"        json:"email"`
	Username    string `gorm:"type:varchar(255);not null;uniqueIndex;column:username"     json:"username"`
	PhoneNumber string `gorm:"type:varchar(20);not null;uniqueIndex;column:phone_number"  json:"phone_number"`

	// bcrypt hash, never serialized
	Password string `gorm:"type:varchar(255);not null;column:password" json:"-"`

	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt *time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at,omitempty"`
}

func (CredentialModel) TableName() string { return "credentials" }
