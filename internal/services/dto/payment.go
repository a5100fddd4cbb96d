package dto

import "nibash_backend/internal/models"

type InitiatePaymentRequest struct {
	TotalAmount float64 `json:"total_amount" binding:"required" validate:"required,gt=0"`
	Currency    string  `json:"currency" validate:"omitempty,len=3"`
	TranID      string  `json:"tran_id"`
	SuccessURL  string  `json:"success_url" validate:"omitempty,url"`
	FailURL     string  `json:"fail_url" validate:"omitempty,url"`
	CancelURL   string  `json:"cancel_url" validate:"omitempty,url"`
	ServiceID   string  `json:"service_id"`
	ProductName string  `json:"product_name"`

	CustomerName    string `json:"cus_name"`
	CustomerEmail   string `json:"cus_email" binding:"required" validate:"required,email"`
	CustomerPhone   string `json:"cus_phone"`
	CustomerAddress string `json:"cus_add1"`
}

type InitiatePaymentResponse struct {
	GatewayPageURL string  `json:"GatewayPageURL"`
	TranID         string  `json:"tran_id"`
	Amount         float64 `json:"amount"`
	Currency       string  `json:"currency"`
	Sandbox        bool    `json:"is_sandbox"`
}

// IPNPayload is the subset of the gateway's server-to-server notification
// this service acts on; the full form body is persisted verbatim.
type IPNPayload struct {
	TranID   string `form:"tran_id" json:"tran_id"`
	ValID    string `form:"val_id" json:"val_id"`
	Status   string `form:"status" json:"status"`
	Amount   string `form:"amount" json:"amount"`
	Currency string `form:"currency" json:"currency"`
}

type ValidatePaymentResponse struct {
	TranID      string               `json:"tran_id"`
	Status      models.PaymentStatus `json:"status"`
	ValID       string               `json:"val_id,omitempty"`
	ValidatedAt string               `json:"validated_at"`
}

type CreatePaymentRequest struct {
	PaymentID   string  `json:"payment_id" binding:"required" validate:"required"`
	ServiceID   string  `json:"service_id" binding:"required" validate:"required"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount" binding:"required" validate:"required,gt=0"`
	Status      string  `json:"status" validate:"omitempty,oneof=pending paid failed cancelled"`
}
