package payment

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"fixsmart/internal/intake"
	"fixsmart/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// ErrDuplicateTransaction is returned when a USDT transaction hash has already
// been claimed by another request.
var ErrDuplicateTransaction = errors.New("transaction hash already used")

// Outcome status values
const (
	OutcomePaid    = "paid"
	OutcomePending = "pending"
	OutcomeFailed  = "failed"
)

// The canonical transaction hash rule: 10 to 64 characters of the usual
// hash alphabet. The upper bound matches the stored column width. Hashes are
// lowercased before storage so the unique index sees one normalized form
// regardless of submitted casing.
const (
	txHashMinLen = 10
	txHashMaxLen = 64
)

var txHashPattern = regexp.MustCompile(`^[a-zA-Z0-9]+$`)

// Payload carries method-specific fields from the client. Only the fields for
// the selected method are read.
type Payload struct {
	// card
	Token string `json:"token"`
	Last4 string `json:"last4"`
	Brand string `json:"brand"`
	// paypal
	OrderID   string `json:"orderID"`
	PaymentID string `json:"paymentID"`
	PayerID   string `json:"payerID"`
	// usdt
	TransactionHash string `json:"transactionHash"`
	WalletAddress   string `json:"walletAddress"`
}

// Outcome is the normalized result of a payment handler.
type Outcome struct {
	Status        string    `json:"status"`
	Method        string    `json:"method"`
	TransactionID string    `json:"transaction_id,omitempty"`
	TxHash        string    `json:"transaction_hash,omitempty"`
	WalletAddress string    `json:"wallet_address,omitempty"`
	Last4         string    `json:"last4,omitempty"`
	Brand         string    `json:"brand,omitempty"`
	OrderID       string    `json:"order_id,omitempty"`
	PayerID       string    `json:"payer_id,omitempty"`
	Error         string    `json:"error,omitempty"`
	ProcessedAt   time.Time `json:"processed_at"`
}

// HashChecker looks up whether a transaction hash is already claimed. The
// unique index on the stored hash remains the authoritative guard; this
// pre-check only exists to return a friendly message before the insert.
type HashChecker interface {
	TxHashExists(ctx context.Context, hash string) (bool, error)
}

// Recorder dispatches a submission to the handler for its payment method and
// produces a normalized outcome. Handler problems never propagate as errors:
// they fold into a failed outcome so the customer record is still persisted.
// The only exceptions are a duplicate USDT hash and a storage failure during
// the duplicate lookup.
type Recorder struct {
	hashes HashChecker
	logger *logrus.Entry
}

// NewRecorder creates a payment recorder
func NewRecorder(hashes HashChecker, logger *logrus.Entry) *Recorder {
	return &Recorder{hashes: hashes, logger: logger}
}

// Process runs the payment handler for method against the sanitized submission.
func (r *Recorder) Process(ctx context.Context, method string, p Payload, amount decimal.Decimal) (Outcome, error) {
	switch method {
	case model.PaymentMethodCard:
		return r.processCard(p), nil
	case model.PaymentMethodPayPal:
		return r.processPayPal(p), nil
	case model.PaymentMethodUSDT:
		return r.processUSDT(ctx, p)
	default:
		return Outcome{
			Status: OutcomeFailed,
			Method: method,
			Error:  "unsupported payment method",
		}, nil
	}
}

// processCard is a synchronous stub: no real gateway call is made. A missing
// token is the only failure mode.
func (r *Recorder) processCard(p Payload) Outcome {
	out := Outcome{Method: model.PaymentMethodCard, ProcessedAt: time.Now()}

	if p.Token == "" {
		out.Status = OutcomeFailed
		out.Error = "invalid card token"
		return out
	}

	out.Status = OutcomePaid
	out.TransactionID = "stripe_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	out.Last4 = p.Last4
	if out.Last4 == "" {
		out.Last4 = "****"
	}
	out.Brand = p.Brand
	if out.Brand == "" {
		out.Brand = "card"
	}
	return out
}

// processPayPal echoes the gateway identifiers; both must be present.
func (r *Recorder) processPayPal(p Payload) Outcome {
	out := Outcome{Method: model.PaymentMethodPayPal, ProcessedAt: time.Now()}

	if p.OrderID == "" || p.PaymentID == "" {
		out.Status = OutcomeFailed
		out.Error = "invalid PayPal payment data"
		return out
	}

	out.Status = OutcomePaid
	out.TransactionID = p.PaymentID
	out.OrderID = p.OrderID
	out.PayerID = p.PayerID
	return out
}

// processUSDT validates the hash, checks for reuse and always reports pending:
// USDT is never auto-confirmed, an admin verifies the transfer manually.
func (r *Recorder) processUSDT(ctx context.Context, p Payload) (Outcome, error) {
	out := Outcome{Method: model.PaymentMethodUSDT, ProcessedAt: time.Now()}

	hash := strings.TrimSpace(p.TransactionHash)
	if !ValidateUSDTHash(hash) {
		out.Status = OutcomeFailed
		out.Error = "invalid transaction hash format"
		return out, nil
	}
	hash = NormalizeUSDTHash(hash)

	exists, err := r.hashes.TxHashExists(ctx, hash)
	if err != nil {
		return out, fmt.Errorf("transaction hash lookup failed: %w", err)
	}
	if exists {
		if r.logger != nil {
			r.logger.WithField("tx_hash", hash).Warn("duplicate transaction hash submitted")
		}
		return out, ErrDuplicateTransaction
	}

	out.Status = OutcomePending
	out.TxHash = hash
	out.WalletAddress = intake.SanitizeString(p.WalletAddress)
	return out, nil
}

// ValidateUSDTHash reports whether hash satisfies the canonical rule.
func ValidateUSDTHash(hash string) bool {
	hash = strings.TrimSpace(hash)
	return len(hash) >= txHashMinLen && len(hash) <= txHashMaxLen && txHashPattern.MatchString(hash)
}

// NormalizeUSDTHash lowercases a trimmed hash to its stored form.
func NormalizeUSDTHash(hash string) string {
	return strings.ToLower(strings.TrimSpace(hash))
}
