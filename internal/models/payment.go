package models

import (
	"time"

	"gorm.io/datatypes"
)

// Payment records one gateway transaction. TranID is the key the gateway
// echoes back on every callback: the unique index plus upsert-by-tran-id
// in the repository is what keeps duplicate IPNs from producing duplicate
// rows.
type Payment struct {
	BaseModel
	TranID         string         `gorm:"uniqueIndex;not null" json:"tran_id"`
	ServiceID      string         `json:"service_id,omitempty"`
	// CustomerID is a pointer: IPN-originated rows have no authenticated
	// customer, and the uuid column only accepts NULL for that, never "".
	CustomerID     *string        `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	Description    string         `json:"description,omitempty"`
	Amount         float64        `gorm:"not null" json:"amount"`
	Currency       string         `gorm:"type:varchar(10);default:'BDT'" json:"currency"`
	Status         PaymentStatus  `gorm:"type:varchar(20);default:'pending'" json:"status"`
	ValID          string         `json:"val_id,omitempty"`
	GatewayPayload datatypes.JSON `json:"-"`
	PaidAt         *time.Time     `json:"paid_at,omitempty"`
}
