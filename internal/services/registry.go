package services

import (
	"nibash_backend/internal/config"
	"nibash_backend/internal/pkg/email"
	"nibash_backend/internal/repositories"
	"nibash_backend/internal/services/payment"

	"gorm.io/gorm"
)

// ServiceContainer holds every service the handlers depend on.
type ServiceContainer struct {
	AuthService           AuthService
	UserService           UserService
	ServiceRequestService ServiceRequestService
	PaymentService        PaymentService
	EmailService          email.Provider
}

func NewServiceContainer(
	db *gorm.DB,
	cfg *config.Config,
	userRepo repositories.UserRepository,
	professionalRepo repositories.ProfessionalRepository,
	requestRepo repositories.ServiceRequestRepository,
	paymentRepo repositories.PaymentRepository,
	emailProvider email.Provider,
) *ServiceContainer {
	gateway := payment.NewClient(cfg)

	return &ServiceContainer{
		AuthService:           NewAuthService(db, userRepo, professionalRepo, emailProvider),
		UserService:           NewUserService(userRepo, professionalRepo, emailProvider),
		ServiceRequestService: NewServiceRequestService(requestRepo, userRepo),
		PaymentService:        NewPaymentService(paymentRepo, userRepo, gateway, emailProvider, cfg),
		EmailService:          emailProvider,
	}
}
