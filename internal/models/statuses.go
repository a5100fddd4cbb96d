package models

type UserRole string
type UserStatus string
type ServiceRequestStatus string
type PaymentStatus string

const (
	UserRoleCustomer     UserRole = "customer"
	UserRoleProfessional UserRole = "professional"
	UserRoleAdmin        UserRole = "admin"

	UserStatusActive    UserStatus = "active"
	UserStatusPending   UserStatus = "pending"
	UserStatusApproved  UserStatus = "approved"
	UserStatusSuspended UserStatus = "suspended"
	UserStatusInactive  UserStatus = "inactive"

	ServiceRequestStatusPending    ServiceRequestStatus = "pending"
	ServiceRequestStatusConfirmed  ServiceRequestStatus = "confirmed"
	ServiceRequestStatusInProgress ServiceRequestStatus = "in_progress"
	ServiceRequestStatusCompleted  ServiceRequestStatus = "completed"
	ServiceRequestStatusCancelled  ServiceRequestStatus = "cancelled"

	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusPaid      PaymentStatus = "paid"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusCancelled PaymentStatus = "cancelled"
)

// AcceptedLoginStatuses are the account states allowed to authenticate.
// Everything else is surfaced to the caller as a 403 with the status.
var AcceptedLoginStatuses = map[UserStatus]bool{
	UserStatusActive:   true,
	UserStatusApproved: true,
}

// ValidUserStatuses lists every status an admin may set.
var ValidUserStatuses = map[UserStatus]bool{
	UserStatusActive:    true,
	UserStatusPending:   true,
	UserStatusApproved:  true,
	UserStatusSuspended: true,
	UserStatusInactive:  true,
}
