package model

import (
	"time"

	"github.com/google/uuid"
)

type MediaModel struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:id" json:"id"`

	Filename         string `gorm:"type:varchar(255);not null;column:filename"          json:"filename"`
	OriginalFilename string `gorm:"type:varchar(255);not null;column:original_filename" json:"original_filename"`
	FilePath         string `gorm:"type:varchar(500);not null;column:file_path"         json:"file_path"`
	FileURL          string `gorm:"type:varchar(500);not null;column:file_url"          json:"file_url"`

	FileSize *int64  `gorm:"column:file_size" json:"file_size,omitempty"`
	MimeType *string `gorm:"type:varchar(100);column:mime_type" json:"mime_type,omitempty"`

	MediaCategory string `gorm:"type:varchar(20);not null;default:'other';index;column:media_category" json:"media_category"`

	UploadedByUserID *uuid.UUID `gorm:"type:uuid;index;column:uploaded_by_user_id" json:"uploaded_by_user_id,omitempty"`

	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt *time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at,omitempty"`
}

func (MediaModel) TableName() string { return "media" }
