package handlers

import (
	"net/http"

	"nibash_backend/internal/models"
	"nibash_backend/internal/services"
	"nibash_backend/internal/services/dto"
	"nibash_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	*BaseHandler
	paymentService services.PaymentService
}

func NewPaymentHandler(base *BaseHandler, paymentService services.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		BaseHandler:    base,
		paymentService: paymentService,
	}
}

func (h *PaymentHandler) Initiate(c *gin.Context) {
	userID, ok := h.AuthenticatedUserID(c)
	if !ok {
		return
	}

	var req dto.InitiatePaymentRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	response, err := h.paymentService.Initiate(c.Request.Context(), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"GatewayPageURL": response.GatewayPageURL,
		"tran_id":        response.TranID,
		"amount":         response.Amount,
		"currency":       response.Currency,
		"is_sandbox":     response.Sandbox,
	})
}

// HandleIPN receives the gateway's server-to-server form POST. Unauthenticated:
// trust comes from validator re-check, not from a bearer token.
func (h *PaymentHandler) HandleIPN(c *gin.Context) {
	var payload dto.IPNPayload
	if err := c.ShouldBind(&payload); err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid IPN payload: "+err.Error()))
		return
	}

	if err := c.Request.ParseForm(); err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid IPN form"))
		return
	}

	if err := h.paymentService.HandleIPN(c.Request.Context(), &payload, c.Request.PostForm); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"tran_id": payload.TranID,
	})
}

// Validate handles the browser redirect back from the gateway and explicit
// re-validation calls: tran_id plus optional val_id in the query.
func (h *PaymentHandler) Validate(c *gin.Context) {
	tranID := c.Query("tran_id")
	if tranID == "" {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Missing tran_id"))
		return
	}

	response, err := h.paymentService.Validate(c.Request.Context(), tranID, c.Query("val_id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"payment": response,
	})
}

func (h *PaymentHandler) Create(c *gin.Context) {
	userID, ok := h.AuthenticatedUserID(c)
	if !ok {
		return
	}

	var req dto.CreatePaymentRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	record, err := h.paymentService.CreateRecord(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"payment": record,
	})
}

// Lookup fetches one payment by row id or tran id. Owner or admin only.
func (h *PaymentHandler) Lookup(c *gin.Context) {
	userID, ok := h.AuthenticatedUserID(c)
	if !ok {
		return
	}

	id := c.Query("id")
	if id == "" {
		id = c.Query("tran_id")
	}
	if id == "" {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Missing id or tran_id"))
		return
	}

	record, err := h.paymentService.Lookup(id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	role, _ := c.Get("userRole")
	isOwner := record.CustomerID != nil && *record.CustomerID == userID
	if !isOwner && role != string(models.UserRoleAdmin) {
		apperrors.HandleError(c, apperrors.ErrInsufficientPermissions)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"payment": record,
	})
}
