package dto

import (
	"time"

	"github.com/google/uuid"
)

type MediaResponse struct {
	ID               uuid.UUID `json:"id"`
	Filename         string    `json:"filename"`
	OriginalFilename string    `json:"original_filename"`
	FileURL          string    `json:"file_url"`
	FileSize         *int64    `json:"file_size,omitempty"`
	MimeType         *string   `json:"mime_type,omitempty"`
	MediaCategory    string    `json:"media_category"`
	CreatedAt        time.Time `json:"created_at"`
}
