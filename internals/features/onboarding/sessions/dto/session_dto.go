package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateSessionRequest struct {
	AssignmentID       uuid.UUID   `json:"assignment_id" validate:"required"`
	StageID            uuid.UUID   `json:"stage_id"      validate:"required"`
	Title              string      `json:"title"         validate:"required,max=255"`
	Description        *string     `json:"description"`
	ScheduledDate      time.Time   `json:"scheduled_date"       validate:"required"`
	ScheduledStartTime string      `json:"scheduled_start_time" validate:"required,len=5"`
	ScheduledEndTime   string      `json:"scheduled_end_time"   validate:"required,len=5"`
	LocationType       string      `json:"location_type"        validate:"omitempty,oneof=online onsite hybrid"`
	MeetingLink        *string     `json:"meeting_link"`
	PhysicalLocation   *string     `json:"physical_location"`
	ContactIDs         []uuid.UUID `json:"contact_ids"`
}

// Coordinates and the student count are pointers: zero is a legitimate
// value for all three, only a missing field should be rejected.
type StartSessionRequest struct {
	StartProofMediaID uuid.UUID `json:"start_proof_media_id" validate:"required"`
	Latitude          *float64  `json:"latitude"             validate:"required"`
	Longitude         *float64  `json:"longitude"            validate:"required"`
}

type CompleteSessionRequest struct {
	Notes           string    `json:"notes"              validate:"required"`
	EndProofMediaID uuid.UUID `json:"end_proof_media_id" validate:"required"`
	StudentCount    *int      `json:"student_count"      validate:"required,min=0"`
	Latitude        *float64  `json:"latitude"           validate:"required"`
	Longitude       *float64  `json:"longitude"          validate:"required"`
}

type RescheduleSessionRequest struct {
	ScheduledDate      time.Time `json:"scheduled_date"       validate:"required"`
	ScheduledStartTime string    `json:"scheduled_start_time" validate:"required,len=5"`
	ScheduledEndTime   string    `json:"scheduled_end_time"   validate:"required,len=5"`
	Reason             *string   `json:"reason"`
	MeetingLink        *string   `json:"meeting_link"`
	PhysicalLocation   *string   `json:"physical_location"`
}

type CancelSessionRequest struct {
	Reason string `json:"reason" validate:"required,min=3"`
}

type MarkAttendanceRequest struct {
	Status string  `json:"status" validate:"required,oneof=invited confirmed attended absent cancelled"`
	Notes  *string `json:"notes"`
}

type StudentItem struct {
	Name        *string `json:"name"`
	PhoneNumber *string `json:"phone_number"`
	Profession  *string `json:"profession"`
}

type AddStudentsRequest struct {
	Students []StudentItem `json:"students" validate:"required,min=1,dive"`
}

// SessionListItem is the joined row for calendar/list views.
type SessionListItem struct {
	ID                 uuid.UUID `json:"id"`
	AssignmentID       uuid.UUID `json:"assignment_id"`
	StageID            uuid.UUID `json:"stage_id"`
	StageName          string    `json:"stage_name"`
	SessionTitle       string    `json:"session_title"`
	ClientName         string    `json:"client_name"`
	ScheduledDate      time.Time `json:"scheduled_date"`
	ScheduledStartTime string    `json:"scheduled_start_time"`
	ScheduledEndTime   string    `json:"scheduled_end_time"`
	LocationType       string    `json:"location_type"`
	Status             string    `json:"status"`
}
