package services

import (
	"nibash_backend/internal/models"
	"nibash_backend/internal/repositories"
	"nibash_backend/internal/services/dto"
	"nibash_backend/pkg/apperrors"
)

type ServiceRequestService interface {
	Create(customerID string, req *dto.CreateServiceRequest) (*models.ServiceRequest, error)
	List(query *dto.ListServiceRequestsQuery) ([]models.ServiceRequest, error)
	ListByCustomer(customerID string) ([]models.ServiceRequest, error)
}

type ServiceRequestServiceImpl struct {
	requestRepo repositories.ServiceRequestRepository
	userRepo    repositories.UserRepository
}

func NewServiceRequestService(
	requestRepo repositories.ServiceRequestRepository,
	userRepo repositories.UserRepository,
) ServiceRequestService {
	return &ServiceRequestServiceImpl{
		requestRepo: requestRepo,
		userRepo:    userRepo,
	}
}

// Create records a service request for the authenticated customer. Contact
// fields default to the account's own when the form leaves them blank.
func (s *ServiceRequestServiceImpl) Create(customerID string, req *dto.CreateServiceRequest) (*models.ServiceRequest, error) {
	status := models.ServiceRequestStatus(req.Status)
	if status == "" {
		status = models.ServiceRequestStatusPending
	}

	name, phone := req.CustomerName, req.CustomerPhone
	if name == "" || phone == "" {
		if user, err := s.userRepo.FindByID(customerID); err == nil {
			if name == "" {
				name = user.FullName
			}
			if phone == "" {
				phone = user.Phone
			}
		}
	}

	request := &models.ServiceRequest{
		ServiceID:     req.ServiceID,
		ServiceType:   req.ServiceType,
		Description:   req.Description,
		PreferredDate: req.PreferredDate,
		PreferredTime: req.PreferredTime,
		Address:       req.Address,
		Status:        status,
		CustomerID:    customerID,
		CustomerName:  name,
		CustomerPhone: phone,
	}

	if err := s.requestRepo.Create(request); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return request, nil
}

// List returns requests filtered by status, defaulting to pending. The
// pending queue is what professionals poll for open work.
func (s *ServiceRequestServiceImpl) List(query *dto.ListServiceRequestsQuery) ([]models.ServiceRequest, error) {
	status := models.ServiceRequestStatus(query.Status)
	if status == "" {
		status = models.ServiceRequestStatusPending
	}

	requests, err := s.requestRepo.FindByStatus(status)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if requests == nil {
		requests = []models.ServiceRequest{}
	}
	return requests, nil
}

func (s *ServiceRequestServiceImpl) ListByCustomer(customerID string) ([]models.ServiceRequest, error) {
	requests, err := s.requestRepo.FindByCustomerID(customerID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if requests == nil {
		requests = []models.ServiceRequest{}
	}
	return requests, nil
}
