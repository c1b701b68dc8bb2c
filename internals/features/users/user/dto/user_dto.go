package dto

import "github.com/google/uuid"

// UserListItem joins users with credentials and role for admin views.
type UserListItem struct {
	ID          uuid.UUID `json:"id"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Email       string    `json:"email"`
	Username    string    `json:"username"`
	Role        string    `json:"role"`
	IsSuspended bool      `json:"is_suspended"`
}

// TrainerDropdownItem feeds the assign-trainer select input.
type TrainerDropdownItem struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
}

type SetSuspendedRequest struct {
	IsSuspended bool `json:"is_suspended"`
}
