package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"fixsmart/internal/model"

	"github.com/go-redis/redis/v8"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Fallback wallet addresses served when the settings table is unreachable,
// so the checkout page never renders without a deposit address.
const (
	FallbackTRC20Address = "TQn9Y2khEsLJW1ChVWFMSMeRDow5KcbLSE"
	FallbackERC20Address = "0x1234567890123456789012345678901234567890"
)

const (
	cacheKeyPricing = "fixsmart:pricing"
	cacheKeyWallets = "fixsmart:wallets"
	cacheTTL        = 5 * time.Minute
)

// ErrUnknownDeviceType is returned when no pricing row exists for a device type.
var ErrUnknownDeviceType = errors.New("unknown device type")

// Wallets holds the USDT deposit addresses shown at checkout.
type Wallets struct {
	TRC20 string `json:"trc20"`
	ERC20 string `json:"erc20"`
}

// Service serves admin-configured state (pricing, wallets, settings, device
// versions) through a Redis read-through cache. Handlers receive the service
// explicitly instead of reaching for ambient state.
type Service struct {
	db     *gorm.DB
	rdb    *redis.Client
	logger *logrus.Entry
}

// NewService creates a settings service. rdb may be nil, in which case every
// read goes to the database.
func NewService(db *gorm.DB, rdb *redis.Client, logger *logrus.Entry) *Service {
	return &Service{db: db, rdb: rdb, logger: logger}
}

// Pricing returns the canonical price per device type.
func (s *Service) Pricing(ctx context.Context) (map[string]decimal.Decimal, error) {
	if cached := s.cacheGet(ctx, cacheKeyPricing); cached != nil {
		var pricing map[string]decimal.Decimal
		if err := json.Unmarshal(cached, &pricing); err == nil {
			return pricing, nil
		}
	}

	var entries []model.PricingEntry
	if err := s.db.WithContext(ctx).Order("device_type").Find(&entries).Error; err != nil {
		return nil, err
	}

	pricing := make(map[string]decimal.Decimal, len(entries))
	for _, e := range entries {
		pricing[e.DeviceType] = e.Price
	}

	s.cacheSet(ctx, cacheKeyPricing, pricing)
	return pricing, nil
}

// Price returns the canonical price for one device type.
func (s *Service) Price(ctx context.Context, deviceType string) (decimal.Decimal, error) {
	pricing, err := s.Pricing(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	price, ok := pricing[deviceType]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrUnknownDeviceType, deviceType)
	}
	return price, nil
}

// UpdatePricing writes new prices and invalidates the cache.
func (s *Service) UpdatePricing(ctx context.Context, prices map[string]decimal.Decimal) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for deviceType, price := range prices {
			if !model.ValidDeviceType(deviceType) {
				return fmt.Errorf("%w: %s", ErrUnknownDeviceType, deviceType)
			}
			res := tx.Model(&model.PricingEntry{}).
				Where("device_type = ?", deviceType).
				Update("price", price)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				if err := tx.Create(&model.PricingEntry{DeviceType: deviceType, Price: price}).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.cacheDel(ctx, cacheKeyPricing)
	return nil
}

// Wallets returns the configured deposit addresses, falling back to the
// built-in defaults when a key is missing or the lookup fails.
func (s *Service) Wallets(ctx context.Context) Wallets {
	wallets := Wallets{TRC20: FallbackTRC20Address, ERC20: FallbackERC20Address}

	if cached := s.cacheGet(ctx, cacheKeyWallets); cached != nil {
		if err := json.Unmarshal(cached, &wallets); err == nil {
			return wallets
		}
	}

	var rows []model.Setting
	err := s.db.WithContext(ctx).
		Where("setting_key IN ?", []string{model.SettingTRC20Address, model.SettingERC20Address}).
		Find(&rows).Error
	if err != nil {
		if s.logger != nil {
			s.logger.WithError(err).Warn("wallet settings lookup failed, serving fallback addresses")
		}
		return wallets
	}

	for _, row := range rows {
		switch row.SettingKey {
		case model.SettingTRC20Address:
			if row.SettingValue != "" {
				wallets.TRC20 = row.SettingValue
			}
		case model.SettingERC20Address:
			if row.SettingValue != "" {
				wallets.ERC20 = row.SettingValue
			}
		}
	}

	s.cacheSet(ctx, cacheKeyWallets, wallets)
	return wallets
}

// UpdateWallets writes the deposit addresses and invalidates the cache.
func (s *Service) UpdateWallets(ctx context.Context, trc20, erc20 string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for key, value := range map[string]string{
			model.SettingTRC20Address: trc20,
			model.SettingERC20Address: erc20,
		} {
			if err := upsertSetting(tx, key, value); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.cacheDel(ctx, cacheKeyWallets)
	return nil
}

// Get returns one setting value, or fallback when the key is absent.
func (s *Service) Get(ctx context.Context, key, fallback string) string {
	var row model.Setting
	err := s.db.WithContext(ctx).Where("setting_key = ?", key).First(&row).Error
	if err != nil || row.SettingValue == "" {
		return fallback
	}
	return row.SettingValue
}

// Set upserts one setting value.
func (s *Service) Set(ctx context.Context, key, value string) error {
	return upsertSetting(s.db.WithContext(ctx), key, value)
}

func upsertSetting(tx *gorm.DB, key, value string) error {
	res := tx.Model(&model.Setting{}).
		Where("setting_key = ?", key).
		Update("setting_value", value)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return tx.Create(&model.Setting{SettingKey: key, SettingValue: value}).Error
	}
	return nil
}

// DeviceVersions lists the active versions for a device type in display order.
func (s *Service) DeviceVersions(ctx context.Context, deviceType string) ([]model.DeviceVersion, error) {
	var versions []model.DeviceVersion
	err := s.db.WithContext(ctx).
		Where("device_type = ? AND is_active = ?", deviceType, true).
		Order("sort_order ASC, name ASC").
		Find(&versions).Error
	return versions, err
}

// Guarantees returns the service-guarantees HTML blob.
func (s *Service) Guarantees(ctx context.Context) (string, error) {
	var row model.GuaranteeContent
	err := s.db.WithContext(ctx).First(&row, 1).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return row.Content, nil
}

// SetGuarantees upserts the single guarantees row.
func (s *Service) SetGuarantees(ctx context.Context, content string) error {
	row := model.GuaranteeContent{Content: content}
	row.ID = 1
	return s.db.WithContext(ctx).Save(&row).Error
}

// cache helpers: Redis failures degrade to database reads, never to errors.

func (s *Service) cacheGet(ctx context.Context, key string) []byte {
	if s.rdb == nil {
		return nil
	}
	data, err := s.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) && s.logger != nil {
			s.logger.WithError(err).WithField("key", key).Debug("cache read failed")
		}
		return nil
	}
	return data
}

func (s *Service) cacheSet(ctx context.Context, key string, value interface{}) {
	if s.rdb == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, key, data, cacheTTL).Err(); err != nil && s.logger != nil {
		s.logger.WithError(err).WithField("key", key).Debug("cache write failed")
	}
}

func (s *Service) cacheDel(ctx context.Context, key string) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, key).Err(); err != nil && s.logger != nil {
		s.logger.WithError(err).WithField("key", key).Debug("cache invalidation failed")
	}
}
