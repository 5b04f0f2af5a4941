package db

import (
	"errors"
	"fmt"
	"log"

	"fixsmart/internal/auth"
	"fixsmart/internal/config"
	"fixsmart/internal/model"
	"fixsmart/internal/settings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Migrate runs database migrations for all models
func Migrate(db *gorm.DB) error {
	log.Println("Starting database migration...")

	// List of all models to migrate
	models := []interface{}{
		&model.AdminUser{},
		&model.UnlockRequest{},
		&model.PricingEntry{},
		&model.Setting{},
		&model.DeviceVersion{},
		&model.GuaranteeContent{},
	}

	// Run AutoMigrate for all models
	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Printf("✓ Database migration completed successfully (%d tables)", len(models))
	return nil
}

// Seed inserts default pricing, settings and the bootstrap admin account.
// Existing rows are never overwritten.
func Seed(db *gorm.DB, cfg *config.Config) error {
	defaultPricing := map[string]string{
		model.DeviceIPhone: "89.00",
		model.DeviceIPad:   "79.00",
		model.DeviceMac:    "149.00",
	}
	for deviceType, price := range defaultPricing {
		var entry model.PricingEntry
		err := db.Where("device_type = ?", deviceType).First(&entry).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			entry = model.PricingEntry{DeviceType: deviceType, Price: decimal.RequireFromString(price)}
			if err := db.Create(&entry).Error; err != nil {
				return fmt.Errorf("failed to seed pricing for %s: %w", deviceType, err)
			}
		} else if err != nil {
			return err
		}
	}

	defaultSettings := map[string]string{
		model.SettingAdminEmail:     cfg.Bootstrap.AdminEmail,
		model.SettingSiteName:       "Fix Smart",
		model.SettingWhatsAppNumber: "",
		model.SettingTRC20Address:   settings.FallbackTRC20Address,
		model.SettingERC20Address:   settings.FallbackERC20Address,
	}
	for key, value := range defaultSettings {
		var setting model.Setting
		err := db.Where("setting_key = ?", key).First(&setting).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			setting = model.Setting{SettingKey: key, SettingValue: value}
			if err := db.Create(&setting).Error; err != nil {
				return fmt.Errorf("failed to seed setting %s: %w", key, err)
			}
		} else if err != nil {
			return err
		}
	}

	// Bootstrap admin: only created when missing and a password is configured.
	if cfg.Bootstrap.AdminPassword != "" {
		var admin model.AdminUser
		err := db.Where("username = ?", cfg.Bootstrap.AdminUsername).First(&admin).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			hash, err := auth.HashPassword(cfg.Bootstrap.AdminPassword)
			if err != nil {
				return fmt.Errorf("failed to hash bootstrap admin password: %w", err)
			}
			admin = model.AdminUser{
				Username:     cfg.Bootstrap.AdminUsername,
				PasswordHash: hash,
				Email:        cfg.Bootstrap.AdminEmail,
				Status:       model.AdminUserStatusActive,
			}
			if err := db.Create(&admin).Error; err != nil {
				return fmt.Errorf("failed to seed admin user: %w", err)
			}
			log.Printf("✓ Bootstrap admin %q created", admin.Username)
		} else if err != nil {
			return err
		}
	}

	log.Println("✓ Default data seeded")
	return nil
}
