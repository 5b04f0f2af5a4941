package model

// GuaranteeContent holds the service-guarantees HTML shown on the site.
// A single row (id=1) is read by the public API and edited by the admin console.
type GuaranteeContent struct {
	BaseModel
	Content string `gorm:"type:text" json:"content"`
}

// TableName specifies the table name for GuaranteeContent model
func (GuaranteeContent) TableName() string {
	return "guarantees_content"
}
