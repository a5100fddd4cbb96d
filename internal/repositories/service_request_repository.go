package repositories

import (
	"errors"

	"nibash_backend/internal/models"

	"gorm.io/gorm"
)

var ErrServiceRequestNotFound = errors.New("service request not found")

type ServiceRequestRepository interface {
	Create(request *models.ServiceRequest) error
	FindByID(id string) (*models.ServiceRequest, error)
	FindByStatus(status models.ServiceRequestStatus) ([]models.ServiceRequest, error)
	FindByCustomerID(customerID string) ([]models.ServiceRequest, error)
}

type ServiceRequestRepositoryImpl struct {
	db *gorm.DB
}

func NewServiceRequestRepository(db *gorm.DB) ServiceRequestRepository {
	return &ServiceRequestRepositoryImpl{db: db}
}

func (r *ServiceRequestRepositoryImpl) Create(request *models.ServiceRequest) error {
	return r.db.Create(request).Error
}

func (r *ServiceRequestRepositoryImpl) FindByID(id string) (*models.ServiceRequest, error) {
	var request models.ServiceRequest
	err := r.db.First(&request, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrServiceRequestNotFound
		}
		return nil, err
	}
	return &request, nil
}

func (r *ServiceRequestRepositoryImpl) FindByStatus(status models.ServiceRequestStatus) ([]models.ServiceRequest, error) {
	var requests []models.ServiceRequest
	err := r.db.Where("status = ?", status).Order("created_at DESC").Find(&requests).Error
	return requests, err
}

func (r *ServiceRequestRepositoryImpl) FindByCustomerID(customerID string) ([]models.ServiceRequest, error) {
	var requests []models.ServiceRequest
	err := r.db.Where("customer_id = ?", customerID).Order("created_at DESC").Find(&requests).Error
	return requests, err
}
