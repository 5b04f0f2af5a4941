package model

// Well-known setting keys
const (
	SettingAdminEmail     = "admin_email"
	SettingSiteName       = "site_name"
	SettingWhatsAppNumber = "whatsapp_number"
	SettingTRC20Address   = "usdt_trc20_address"
	SettingERC20Address   = "usdt_erc20_address"
)

// Setting is a key/value configuration row, mutated only by the admin console.
type Setting struct {
	BaseModel
	SettingKey   string `gorm:"type:varchar(100);uniqueIndex:uk_settings_key;not null" json:"setting_key"`
	SettingValue string `gorm:"type:text" json:"setting_value"`
}

// TableName specifies the table name for Setting model
func (Setting) TableName() string {
	return "settings"
}
