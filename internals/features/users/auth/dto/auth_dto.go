package dto

import (
	"time"

	"github.com/google/uuid"
)

type RegisterRequest struct {
	FirstName   string    `json:"first_name" validate:"required,max=100"`
	LastName    string    `json:"last_name"  validate:"required,max=100"`
	DOB         time.Time `json:"dob"        validate:"required"`
	Address     string    `json:"address"    validate:"required"`
	Gender      string    `json:"gender"     validate:"required,oneof=male female"`
	Nationality string    `json:"nationality" validate:"required,max=100"`

	Role string `json:"role" validate:"required,oneof=superadmin admin sales trainer"`

	Email       string `json:"email"        validate:"required,email,max=255"`
	Username    string `json:"username"     validate:"required,min=3,max=255"`
	PhoneNumber string `json:"phone_number" validate:"required,max=20"`
	Password    string `json:"password"     validate:"required,min=8,max=72"`
}

type LoginRequest struct {
	// Identifier accepts email, username, or phone number
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password"   validate:"required"`
}

type GoogleLoginRequest struct {
	IDToken string `json:"id_token" validate:"required"`
}

type AuthUserResponse struct {
	ID       uuid.UUID `json:"id"`
	FullName string    `json:"full_name"`
	Email    string    `json:"email"`
	Username string    `json:"username"`
	Role     string    `json:"role"`
}

type LoginResponse struct {
	AccessToken string           `json:"access_token"`
	User        AuthUserResponse `json:"user"`
}
