package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"nibash_backend/internal/config"
	"nibash_backend/internal/logger"
	"nibash_backend/internal/models"
	"nibash_backend/internal/pkg/email"
	"nibash_backend/internal/repositories"
	"nibash_backend/internal/services/dto"
	"nibash_backend/internal/services/payment"
	"nibash_backend/pkg/apperrors"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type PaymentService interface {
	Initiate(ctx context.Context, customerID string, req *dto.InitiatePaymentRequest) (*dto.InitiatePaymentResponse, error)
	HandleIPN(ctx context.Context, payload *dto.IPNPayload, rawForm map[string][]string) error
	Validate(ctx context.Context, tranID, valID string) (*dto.ValidatePaymentResponse, error)
	Lookup(idOrTranID string) (*models.Payment, error)
	CreateRecord(customerID string, req *dto.CreatePaymentRequest) (*models.Payment, error)
}

type PaymentServiceImpl struct {
	paymentRepo   repositories.PaymentRepository
	userRepo      repositories.UserRepository
	gateway       *payment.Client
	emailProvider email.Provider
	cfg           *config.Config
}

func NewPaymentService(
	paymentRepo repositories.PaymentRepository,
	userRepo repositories.UserRepository,
	gateway *payment.Client,
	emailProvider email.Provider,
	cfg *config.Config,
) PaymentService {
	return &PaymentServiceImpl{
		paymentRepo:   paymentRepo,
		userRepo:      userRepo,
		gateway:       gateway,
		emailProvider: emailProvider,
		cfg:           cfg,
	}
}

// Initiate opens a gateway session and records the pending payment. The
// transaction id is generated here unless the caller supplies its own; the
// pending row is written before the gateway call so an IPN can never arrive
// for a transaction we have no record of.
func (s *PaymentServiceImpl) Initiate(ctx context.Context, customerID string, req *dto.InitiatePaymentRequest) (*dto.InitiatePaymentResponse, error) {
	if req.TotalAmount <= 0 {
		return nil, apperrors.ErrInvalidPaymentAmount
	}

	tranID := req.TranID
	if tranID == "" {
		tranID = newTranID()
	}
	currency := req.Currency
	if currency == "" {
		currency = "BDT"
	}

	record := &models.Payment{
		TranID:     tranID,
		ServiceID:  req.ServiceID,
		CustomerID: &customerID,
		Amount:     req.TotalAmount,
		Currency:   currency,
		Status:     models.PaymentStatusPending,
	}
	if err := s.paymentRepo.Create(record); err != nil {
		return nil, apperrors.InternalError(err)
	}

	base := s.cfg.Server.BaseURL
	session, err := s.gateway.CreateSession(ctx, payment.SessionRequest{
		Amount:          req.TotalAmount,
		Currency:        currency,
		TranID:          tranID,
		ProductName:     req.ProductName,
		SuccessURL:      orDefault(req.SuccessURL, base+"/payment/success"),
		FailURL:         orDefault(req.FailURL, base+"/payment/fail"),
		CancelURL:       orDefault(req.CancelURL, base+"/payment/cancel"),
		IPNURL:          base + "/payment/ipn",
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		CustomerPhone:   req.CustomerPhone,
		CustomerAddress: req.CustomerAddress,
	})
	if err != nil {
		return nil, apperrors.ErrPaymentGateway(err)
	}

	logger.Info("payment session created",
		"tran_id", tranID, "amount", req.TotalAmount, "sandbox", s.gateway.Sandbox)

	return &dto.InitiatePaymentResponse{
		GatewayPageURL: session.GatewayPageURL,
		TranID:         tranID,
		Amount:         req.TotalAmount,
		Currency:       currency,
		Sandbox:        s.gateway.Sandbox,
	}, nil
}

// HandleIPN processes the gateway's server-to-server notification. The write
// is an upsert keyed on tran_id, so retried IPNs converge on one row. When
// validate_ipn is on, the reported status only counts after the validator
// API confirms it.
func (s *PaymentServiceImpl) HandleIPN(ctx context.Context, payload *dto.IPNPayload, rawForm map[string][]string) error {
	if payload.TranID == "" {
		return apperrors.NewBadRequestError("IPN missing tran_id")
	}

	status := mapGatewayStatus(payload.Status)

	if status == models.PaymentStatusPaid && s.cfg.SSLCommerz.ValidateIPN {
		if payload.ValID == "" {
			return apperrors.NewBadRequestError("IPN missing val_id")
		}
		validation, err := s.gateway.ValidateTransaction(ctx, payload.ValID)
		if err != nil {
			return apperrors.ErrPaymentGateway(err)
		}
		if !validation.IsValid() || validation.TranID != payload.TranID {
			logger.Warn("IPN failed validation",
				"tran_id", payload.TranID, "val_id", payload.ValID, "validator_status", validation.Status)
			status = models.PaymentStatusFailed
		}
	}

	raw, err := json.Marshal(flattenForm(rawForm))
	if err != nil {
		return apperrors.InternalError(err)
	}

	record := &models.Payment{
		TranID:         payload.TranID,
		Amount:         parseAmount(payload.Amount),
		Currency:       orDefault(payload.Currency, "BDT"),
		Status:         status,
		ValID:          payload.ValID,
		GatewayPayload: datatypes.JSON(raw),
	}
	if status == models.PaymentStatusPaid {
		now := time.Now()
		record.PaidAt = &now
	}

	if err := s.paymentRepo.Upsert(record); err != nil {
		return apperrors.InternalError(err)
	}

	logger.Info("IPN processed", "tran_id", payload.TranID, "status", status)

	if status == models.PaymentStatusPaid {
		s.sendConfirmationEmail(payload.TranID)
	}

	return nil
}

// sendConfirmationEmail notifies the paying customer. The IPN itself does
// not identify the customer, so the row written at initiation is consulted.
func (s *PaymentServiceImpl) sendConfirmationEmail(tranID string) {
	if s.emailProvider == nil {
		return
	}
	go func() {
		record, err := s.paymentRepo.FindByTranID(tranID)
		if err != nil || record.CustomerID == nil {
			return
		}
		user, err := s.userRepo.FindByID(*record.CustomerID)
		if err != nil {
			return
		}
		if err := s.emailProvider.SendPaymentConfirmation(user.Email, record.TranID, record.Amount, record.Currency); err != nil {
			logger.Warn("failed to send payment confirmation email", "tran_id", tranID, "error", err)
		}
	}()
}

// Validate re-checks a transaction against the validator API and persists
// the outcome.
func (s *PaymentServiceImpl) Validate(ctx context.Context, tranID, valID string) (*dto.ValidatePaymentResponse, error) {
	record, err := s.paymentRepo.FindByTranID(tranID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrPaymentNotFound) {
			return nil, apperrors.ErrPaymentNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	if valID == "" {
		valID = record.ValID
	}
	if valID == "" {
		return nil, apperrors.NewBadRequestError("No val_id available for this transaction")
	}

	validation, err := s.gateway.ValidateTransaction(ctx, valID)
	if err != nil {
		return nil, apperrors.ErrPaymentGateway(err)
	}

	status := models.PaymentStatusFailed
	if validation.IsValid() && validation.TranID == record.TranID {
		status = models.PaymentStatusPaid
	}

	record.Status = status
	record.ValID = valID
	if status == models.PaymentStatusPaid && record.PaidAt == nil {
		now := time.Now()
		record.PaidAt = &now
	}
	if err := s.paymentRepo.Update(record); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.ValidatePaymentResponse{
		TranID:      record.TranID,
		Status:      status,
		ValID:       valID,
		ValidatedAt: time.Now().UTC().Format(time.RFC3339),
	}, nil
}

// Lookup resolves a payment by row id or gateway transaction id.
func (s *PaymentServiceImpl) Lookup(idOrTranID string) (*models.Payment, error) {
	record, err := s.paymentRepo.FindByIDOrTranID(idOrTranID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrPaymentNotFound) {
			return nil, apperrors.ErrPaymentNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return record, nil
}

// CreateRecord stores a payment row directly, used by trusted clients to
// register transactions settled outside the gateway flow.
func (s *PaymentServiceImpl) CreateRecord(customerID string, req *dto.CreatePaymentRequest) (*models.Payment, error) {
	if req.Amount <= 0 {
		return nil, apperrors.ErrInvalidPaymentAmount
	}

	status := models.PaymentStatus(req.Status)
	if status == "" {
		status = models.PaymentStatusPending
	}

	record := &models.Payment{
		TranID:      req.PaymentID,
		ServiceID:   req.ServiceID,
		CustomerID:  &customerID,
		Description: req.Description,
		Amount:      req.Amount,
		Status:      status,
	}
	if status == models.PaymentStatusPaid {
		now := time.Now()
		record.PaidAt = &now
	}

	if err := s.paymentRepo.Upsert(record); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return record, nil
}

// newTranID builds a gateway transaction id. SSLCommerz caps tran_id at 30
// characters, so only a uuid fragment goes in.
func newTranID() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:8]
	return fmt.Sprintf("NIBASH_%d_%s", time.Now().UnixMilli(), suffix)
}

func mapGatewayStatus(status string) models.PaymentStatus {
	switch strings.ToUpper(status) {
	case "VALID", "VALIDATED":
		return models.PaymentStatusPaid
	case "CANCELLED":
		return models.PaymentStatusCancelled
	default:
		return models.PaymentStatusFailed
	}
}

func parseAmount(amount string) float64 {
	v, err := strconv.ParseFloat(amount, 64)
	if err != nil {
		return 0
	}
	return v
}

func flattenForm(form map[string][]string) map[string]string {
	flat := make(map[string]string, len(form))
	for k, v := range form {
		if len(v) > 0 {
			flat[k] = v[0]
		}
	}
	return flat
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
