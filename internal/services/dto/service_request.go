package dto

type CreateServiceRequest struct {
	ServiceID     string `json:"service_id" binding:"required" validate:"required"`
	ServiceType   string `json:"service_type" binding:"required" validate:"required"`
	Description   string `json:"description" binding:"required" validate:"required"`
	PreferredDate string `json:"preferred_date" binding:"required" validate:"required"`
	PreferredTime string `json:"preferred_time" binding:"required" validate:"required"`
	Address       string `json:"address" binding:"required" validate:"required"`
	Status        string `json:"status" validate:"omitempty,oneof=pending confirmed in_progress completed cancelled"`
	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone"`
}

type ListServiceRequestsQuery struct {
	Status string `form:"status" validate:"omitempty,oneof=pending confirmed in_progress completed cancelled"`
}
