package dto

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type CreateClientRequest struct {
	Code               string         `json:"code"         validate:"required,max=50"`
	CompanyCode        *string        `json:"company_code" validate:"omitempty,max=100"`
	CompanyName        string         `json:"company_name" validate:"required,max=255"`
	PhoneNumber        *string        `json:"phone_number" validate:"omitempty,max=20"`
	Email              *string        `json:"email"        validate:"omitempty,email"`
	HeadquarterAddress *string        `json:"headquarter_address"`
	SocialLinks        datatypes.JSON `json:"social_links"`
	AssignedSaleID     uuid.UUID      `json:"assigned_sale_id" validate:"required"`
}

type UpdateClientRequest struct {
	CompanyCode        *string        `json:"company_code" validate:"omitempty,max=100"`
	CompanyName        *string        `json:"company_name" validate:"omitempty,max=255"`
	PhoneNumber        *string        `json:"phone_number" validate:"omitempty,max=20"`
	Email              *string        `json:"email"        validate:"omitempty,email"`
	HeadquarterAddress *string        `json:"headquarter_address"`
	SocialLinks        datatypes.JSON `json:"social_links"`
	AssignedSaleID     *uuid.UUID     `json:"assigned_sale_id"`
	IsActive           *bool          `json:"is_active"`
}

type CreateContactRequest struct {
	Name             string  `json:"name"  validate:"required,max=255"`
	Email            *string `json:"email" validate:"omitempty,email"`
	PhoneNumber      *string `json:"phone_number"      validate:"omitempty,max=20"`
	TelegramUsername *string `json:"telegram_username" validate:"omitempty,max=100"`
	TelegramChatID   *string `json:"telegram_chat_id"  validate:"omitempty,max=255"`
	Position         *string `json:"position"          validate:"omitempty,max=100"`
	IsPrimaryContact bool    `json:"is_primary_contact"`
}

type UpdateContactRequest struct {
	Name             *string `json:"name"  validate:"omitempty,max=255"`
	Email            *string `json:"email" validate:"omitempty,email"`
	PhoneNumber      *string `json:"phone_number"      validate:"omitempty,max=20"`
	TelegramUsername *string `json:"telegram_username" validate:"omitempty,max=100"`
	TelegramChatID   *string `json:"telegram_chat_id"  validate:"omitempty,max=255"`
	Position         *string `json:"position"          validate:"omitempty,max=100"`
	IsPrimaryContact *bool   `json:"is_primary_contact"`
	IsActive         *bool   `json:"is_active"`
}

// ClientDropdownItem feeds select inputs on the request form.
type ClientDropdownItem struct {
	ID          uuid.UUID `json:"id"`
	Code        string    `json:"code"`
	CompanyName string    `json:"company_name"`
}
