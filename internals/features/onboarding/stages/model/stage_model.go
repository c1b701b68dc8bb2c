package model

import (
	"time"

	"github.com/google/uuid"
)

type OnboardingStageModel struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:id" json:"id"`

	Name        string  `gorm:"type:varchar(100);not null;column:name" json:"name"`
	Description *string `gorm:"column:description" json:"description,omitempty"`

	SequenceOrder         int  `gorm:"not null;index;column:sequence_order" json:"sequence_order"`
	EstimatedDurationDays *int `gorm:"column:estimated_duration_days"       json:"estimated_duration_days,omitempty"`

	SystemID uuid.UUID `gorm:"type:uuid;not null;index;column:system_id" json:"system_id"`
	IsActive bool      `gorm:"not null;default:true;column:is_active"    json:"is_active"`

	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt *time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at,omitempty"`
}

func (OnboardingStageModel) TableName() string { return "onboarding_stages" }
