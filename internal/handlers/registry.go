package handlers

import (
	"nibash_backend/internal/services"
	"nibash_backend/internal/validator"
)

// AppHandlers holds every handler the router registers.
type AppHandlers struct {
	AuthHandler           *AuthHandler
	UserHandler           *UserHandler
	ServiceRequestHandler *ServiceRequestHandler
	PaymentHandler        *PaymentHandler
}

func NewAppHandlers(container *services.ServiceContainer, v *validator.Validator) *AppHandlers {
	base := NewBaseHandler(v)

	return &AppHandlers{
		AuthHandler:           NewAuthHandler(base, container.AuthService),
		UserHandler:           NewUserHandler(base, container.UserService),
		ServiceRequestHandler: NewServiceRequestHandler(base, container.ServiceRequestService),
		PaymentHandler:        NewPaymentHandler(base, container.PaymentService),
	}
}
