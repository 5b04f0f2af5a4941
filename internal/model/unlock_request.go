package model

import (
	"database/sql"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// DeviceType constants
const (
	DeviceIPhone = "iphone"
	DeviceIPad   = "ipad"
	DeviceMac    = "mac"
)

// PaymentMethod constants
const (
	PaymentMethodCard   = "card"
	PaymentMethodPayPal = "paypal"
	PaymentMethodUSDT   = "usdt"
)

// PaymentStatus constants
const (
	PaymentStatusPending   = "pending"
	PaymentStatusPaid      = "paid"
	PaymentStatusFailed    = "failed"
	PaymentStatusCompleted = "completed"
)

// RequestStatus constants (fulfillment, separate from payment)
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

// UnlockRequest represents one customer submission and its payment/fulfillment state.
// Rows are insert-only from the customer flow; only status fields are mutated,
// and only by the admin console.
type UnlockRequest struct {
	BaseModel
	Reference     string          `gorm:"type:varchar(32);index" json:"reference"` // public order id, FS_<year>_<hex>
	DeviceType    string          `gorm:"type:varchar(50);not null" json:"device_type"`
	DeviceVersion string          `gorm:"type:varchar(100)" json:"device_version"`
	IMEISerial    string          `gorm:"column:imei_serial;type:varchar(100);not null" json:"imei_serial"`
	Email         string          `gorm:"type:varchar(255);not null;index:idx_unlock_requests_email" json:"email"`
	Description   string          `gorm:"type:text" json:"description"`
	PaymentMethod string          `gorm:"type:varchar(50);not null" json:"payment_method"`
	PaymentStatus string          `gorm:"type:enum('pending','paid','failed','completed');default:'pending';index:idx_unlock_requests_payment_status" json:"payment_status"`
	PaymentData   datatypes.JSON  `gorm:"type:json" json:"payment_data"`
	// TxHash is only set for USDT payments. The unique index is the
	// authoritative duplicate-hash guard; the application-level pre-check
	// exists only to produce a friendly error message.
	TxHash sql.NullString  `gorm:"type:varchar(64);uniqueIndex:uk_unlock_requests_tx_hash" json:"tx_hash"`
	Amount decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	Status string          `gorm:"type:enum('pending','processing','completed','cancelled');default:'pending';index:idx_unlock_requests_status" json:"status"`
}

// TableName specifies the table name for UnlockRequest model
func (UnlockRequest) TableName() string {
	return "unlock_requests"
}

// ValidDeviceType reports whether t is one of the supported device types.
func ValidDeviceType(t string) bool {
	switch t {
	case DeviceIPhone, DeviceIPad, DeviceMac:
		return true
	}
	return false
}

// ValidPaymentMethod reports whether m is one of the supported payment methods.
func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentMethodCard, PaymentMethodPayPal, PaymentMethodUSDT:
		return true
	}
	return false
}
