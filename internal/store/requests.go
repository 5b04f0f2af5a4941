package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"fixsmart/internal/intake"
	"fixsmart/internal/model"
	"fixsmart/internal/payment"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Store-level sentinel errors
var (
	ErrRequestNotFound      = errors.New("request not found")
	ErrInvalidTransition    = errors.New("status transition not allowed")
	ErrDuplicateTransaction = errors.New("transaction hash already used")
)

// RequestStore persists unlock requests. Customer-flow rows are insert-only;
// admin updates touch the two status fields and nothing else.
type RequestStore struct {
	db *gorm.DB
}

// NewRequestStore creates a request store
func NewRequestStore(db *gorm.DB) *RequestStore {
	return &RequestStore{db: db}
}

// paymentData is the opaque JSON blob stored alongside each request.
type paymentData struct {
	PaymentMethod  string          `json:"payment_method"`
	PaymentDetails payment.Outcome `json:"payment_details"`
	AmountPaid     decimal.Decimal `json:"amount_paid"`
	Currency       string          `json:"currency"`
	ProcessedAt    string          `json:"processed_at"`
}

// Insert persists a sanitized submission with its payment outcome and returns
// the stored row. A duplicate transaction hash surfaces as
// ErrDuplicateTransaction via the unique index, closing the race the
// application-level pre-check leaves open.
func (s *RequestStore) Insert(ctx context.Context, reference string, sub intake.Sanitized, method string, out payment.Outcome) (*model.UnlockRequest, error) {
	currency := "USD"
	if method == model.PaymentMethodUSDT {
		currency = "USDT"
	}

	blob, err := json.Marshal(paymentData{
		PaymentMethod:  method,
		PaymentDetails: out,
		AmountPaid:     sub.Amount,
		Currency:       currency,
		ProcessedAt:    out.ProcessedAt.Format("2006-01-02 15:04:05"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode payment data: %w", err)
	}

	var txHash sql.NullString
	if out.TxHash != "" {
		txHash = sql.NullString{String: out.TxHash, Valid: true}
	}

	req := model.UnlockRequest{
		Reference:     reference,
		DeviceType:    sub.DeviceType,
		DeviceVersion: sub.DeviceVersion,
		IMEISerial:    sub.IMEISerial,
		Email:         sub.Email,
		Description:   sub.Description,
		PaymentMethod: method,
		PaymentStatus: paymentStatusFor(out.Status),
		PaymentData:   datatypes.JSON(blob),
		TxHash:        txHash,
		Amount:        sub.Amount,
		Status:        model.StatusPending,
	}

	if err := s.db.WithContext(ctx).Create(&req).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateTransaction
		}
		return nil, err
	}

	return &req, nil
}

// paymentStatusFor maps a recorder outcome status onto the stored enum.
func paymentStatusFor(outcome string) string {
	switch outcome {
	case payment.OutcomePaid:
		return model.PaymentStatusPaid
	case payment.OutcomeFailed:
		return model.PaymentStatusFailed
	default:
		return model.PaymentStatusPending
	}
}

// TxHashExists reports whether hash is already claimed by any request.
func (s *RequestStore) TxHashExists(ctx context.Context, hash string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&model.UnlockRequest{}).
		Where("tx_hash = ?", hash).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Get fetches one request by id.
func (s *RequestStore) Get(ctx context.Context, id int) (*model.UnlockRequest, error) {
	var req model.UnlockRequest
	if err := s.db.WithContext(ctx).First(&req, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}
	return &req, nil
}

// Recent returns the newest requests, up to limit.
func (s *RequestStore) Recent(ctx context.Context, limit int) ([]model.UnlockRequest, error) {
	var requests []model.UnlockRequest
	err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&requests).Error
	return requests, err
}

// ListFilter narrows List results; zero values mean no filtering.
type ListFilter struct {
	Status        string
	PaymentStatus string
	Email         string
}

// List returns a page of requests plus the total count.
func (s *RequestStore) List(ctx context.Context, page, pageSize int, filter ListFilter) ([]model.UnlockRequest, int64, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 15
	}

	query := s.db.WithContext(ctx).Model(&model.UnlockRequest{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.PaymentStatus != "" {
		query = query.Where("payment_status = ?", filter.PaymentStatus)
	}
	if filter.Email != "" {
		query = query.Where("email LIKE ?", "%"+filter.Email+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var requests []model.UnlockRequest
	err := query.
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&requests).Error
	if err != nil {
		return nil, 0, err
	}

	return requests, total, nil
}

// UpdateStatus changes the fulfillment and/or payment status of one request,
// enforcing the transition tables. Empty arguments leave a field untouched.
func (s *RequestStore) UpdateStatus(ctx context.Context, id int, status, paymentStatus string) (*model.UnlockRequest, error) {
	var req model.UnlockRequest
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&req, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRequestNotFound
			}
			return err
		}

		updates := map[string]interface{}{}
		if status != "" {
			if !model.CanTransitionStatus(req.Status, status) {
				return fmt.Errorf("%w: status %s -> %s", ErrInvalidTransition, req.Status, status)
			}
			updates["status"] = status
		}
		if paymentStatus != "" {
			if !model.CanTransitionPaymentStatus(req.PaymentStatus, paymentStatus) {
				return fmt.Errorf("%w: payment_status %s -> %s", ErrInvalidTransition, req.PaymentStatus, paymentStatus)
			}
			updates["payment_status"] = paymentStatus
		}
		if len(updates) == 0 {
			return nil
		}

		if err := tx.Model(&req).Updates(updates).Error; err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// Stats carries the admin dashboard counters.
type Stats struct {
	TotalRequests   int64           `json:"total_requests"`
	PendingRequests int64           `json:"pending_requests"`
	PaidRequests    int64           `json:"paid_requests"`
	TotalRevenue    decimal.Decimal `json:"total_revenue"`
}

// Stats computes the dashboard counters in one pass per counter.
func (s *RequestStore) Stats(ctx context.Context) (*Stats, error) {
	var stats Stats
	db := s.db.WithContext(ctx).Model(&model.UnlockRequest{})

	if err := db.Session(&gorm.Session{}).Count(&stats.TotalRequests).Error; err != nil {
		return nil, err
	}
	if err := db.Session(&gorm.Session{}).Where("status = ?", model.StatusPending).Count(&stats.PendingRequests).Error; err != nil {
		return nil, err
	}
	if err := db.Session(&gorm.Session{}).Where("payment_status = ?", model.PaymentStatusPaid).Count(&stats.PaidRequests).Error; err != nil {
		return nil, err
	}

	var revenue sql.NullString
	err := db.Session(&gorm.Session{}).
		Select("SUM(amount)").
		Where("payment_status = ?", model.PaymentStatusPaid).
		Scan(&revenue).Error
	if err != nil {
		return nil, err
	}
	if revenue.Valid {
		total, err := decimal.NewFromString(revenue.String)
		if err != nil {
			return nil, fmt.Errorf("failed to parse revenue sum: %w", err)
		}
		stats.TotalRevenue = total
	}

	return &stats, nil
}
