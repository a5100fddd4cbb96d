package dto

import "nibash_backend/internal/models"

// AdminUserListResponse mirrors the legacy admin payload: users plus the
// professional rows for that user set, joined client-side by user_id.
type AdminUserListResponse struct {
	Users         []UserResponse        `json:"users"`
	Professionals []models.Professional `json:"professionals"`
}

type UpdateUserStatusRequest struct {
	Status string `json:"status" binding:"required" validate:"required"`
}
