package model

import (
	"time"

	"github.com/google/uuid"
)

// SystemModel is one of the products a client gets onboarded onto.
type SystemModel struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:id" json:"id"`

	Name        string  `gorm:"type:varchar(50);not null;uniqueIndex;column:name" json:"name"`
	Description *string `gorm:"column:description" json:"description,omitempty"`

	IsActive bool `gorm:"not null;default:true;column:is_active" json:"is_active"`

	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt *time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at,omitempty"`
}

func (SystemModel) TableName() string { return "systems" }
