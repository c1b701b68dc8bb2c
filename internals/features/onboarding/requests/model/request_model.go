package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OnboardingRequestModel struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:id" json:"id"`

	RequestCode     string    `gorm:"type:varchar(50);not null;uniqueIndex;column:request_code" json:"request_code"`
	ClientID        uuid.UUID `gorm:"type:uuid;not null;column:client_id" json:"client_id"`
	SystemID        uuid.UUID `gorm:"type:uuid;not null;column:system_id" json:"system_id"`
	CreatedByUserID uuid.UUID `gorm:"type:uuid;not null;column:created_by_user_id" json:"created_by_user_id"`

	Priority string `gorm:"type:varchar(20);not null;default:'medium';column:priority" json:"priority"`
	Status   string `gorm:"type:varchar(20);not null;default:'pending';index;column:status" json:"status"`

	Notes *string `gorm:"column:notes" json:"notes,omitempty"`

	ExpectedStartDate *time.Time `gorm:"type:date;column:expected_start_date" json:"expected_start_date,omitempty"`
	ExpectedEndDate   *time.Time `gorm:"type:date;column:expected_end_date"   json:"expected_end_date,omitempty"`
	ActualStartDate   *time.Time `gorm:"type:date;column:actual_start_date"   json:"actual_start_date,omitempty"`
	ActualEndDate     *time.Time `gorm:"type:date;column:actual_end_date"     json:"actual_end_date,omitempty"`

	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt *time.Time     `gorm:"column:updated_at;autoUpdateTime" json:"updated_at,omitempty"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"          json:"deleted_at,omitempty"`
}

func (OnboardingRequestModel) TableName() string { return "onboarding_requests" }
