package model

import "database/sql"

// AdminUserStatus represents admin user status
type AdminUserStatus string

const (
	AdminUserStatusActive   AdminUserStatus = "active"
	AdminUserStatusInactive AdminUserStatus = "inactive"
)

// AdminUser represents an admin console account
type AdminUser struct {
	BaseModel
	Username     string          `gorm:"type:varchar(64);uniqueIndex;not null" json:"username"`
	PasswordHash string          `gorm:"type:varchar(255);not null" json:"-"`
	Email        string          `gorm:"type:varchar(255);not null" json:"email"`
	Status       AdminUserStatus `gorm:"type:enum('active','inactive');default:'active'" json:"status"`
	LastLogin    sql.NullTime    `json:"last_login"`
}

// TableName specifies the table name for AdminUser model
func (AdminUser) TableName() string {
	return "admin_users"
}
