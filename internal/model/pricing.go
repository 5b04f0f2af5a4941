package model

import "github.com/shopspring/decimal"

// PricingEntry maps a device type to its canonical price. The validator reads
// this table as the source of truth for client-submitted amounts.
type PricingEntry struct {
	BaseModel
	DeviceType string          `gorm:"type:varchar(50);uniqueIndex:uk_pricing_device_type;not null" json:"device_type"`
	Price      decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
}

// TableName specifies the table name for PricingEntry model
func (PricingEntry) TableName() string {
	return "pricing"
}
