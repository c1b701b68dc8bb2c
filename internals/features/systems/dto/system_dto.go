package dto

type CreateSystemRequest struct {
	Name        string  `json:"name" validate:"required,max=50"`
	Description *string `json:"description"`
}

type UpdateSystemRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=50"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"is_active"`
}
