package models

// ServiceRequest is a customer-submitted job, read by professionals and
// admins filtered on status.
type ServiceRequest struct {
	BaseModel
	ServiceID     string               `gorm:"not null" json:"service_id"`
	ServiceType   string               `gorm:"not null" json:"service_type"`
	Description   string               `gorm:"not null" json:"description"`
	PreferredDate string               `gorm:"not null" json:"preferred_date"`
	PreferredTime string               `gorm:"not null" json:"preferred_time"`
	Address       string               `gorm:"not null" json:"address"`
	Status        ServiceRequestStatus `gorm:"type:varchar(20);default:'pending'" json:"status"`
	CustomerID    string               `gorm:"type:uuid;not null;index" json:"customer_id"`
	CustomerName  string               `json:"customer_name"`
	CustomerPhone string               `json:"customer_phone"`
}
