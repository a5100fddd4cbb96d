package dto

import "nibash_backend/internal/models"

type LoginRequest struct {
	Email    string `json:"email" binding:"required" validate:"required,email"`
	Password string `json:"password" binding:"required" validate:"required"`
	// Role is optional: when present the lookup is scoped to it, matching
	// the portal-specific login pages.
	Role string `json:"role" validate:"omitempty,is-user-role"`
}

type SignupRequest struct {
	Email    string `json:"email" binding:"required" validate:"required,email"`
	Password string `json:"password" binding:"required" validate:"required,min=6"`
	FullName string `json:"full_name" binding:"required" validate:"required"`
	Phone    string `json:"phone" binding:"required" validate:"required,is-phone"`
	Role     string `json:"role" validate:"omitempty,oneof=customer professional"`
	Address  string `json:"address"`

	// Professional-only fields, enforced in the service layer.
	NIDNumber   string `json:"nid_number"`
	ServiceType string `json:"service_type"`
}

// UserResponse is the sanitized profile shape: never carries the password.
type UserResponse struct {
	ID           string               `json:"id"`
	Email        string               `json:"email"`
	FullName     string               `json:"full_name"`
	Phone        string               `json:"phone"`
	Address      string               `json:"address,omitempty"`
	Role         models.UserRole      `json:"role"`
	Status       models.UserStatus    `json:"status"`
	CreatedAt    string               `json:"created_at"`
	Professional *models.Professional `json:"professional,omitempty"`
}

type LoginResponse struct {
	Token string        `json:"token"`
	User  *UserResponse `json:"user"`
}

type SignupResponse struct {
	Message string        `json:"message"`
	Token   string        `json:"token,omitempty"`
	User    *UserResponse `json:"user"`
}
