package model

import "github.com/shopspring/decimal"

// DeviceVersion is a selectable model/version of a device type shown on the
// order form (e.g. "iPhone 15 Pro"). Inactive versions are hidden.
type DeviceVersion struct {
	BaseModel
	DeviceType string          `gorm:"type:varchar(50);not null;index" json:"device_type"`
	Name       string          `gorm:"type:varchar(100);not null" json:"name"`
	Price      decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	IsActive   bool            `gorm:"default:true" json:"is_active"`
	SortOrder  int             `gorm:"default:0" json:"sort_order"`
}

// TableName specifies the table name for DeviceVersion model
func (DeviceVersion) TableName() string {
	return "device_versions"
}
