package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"fixsmart/internal/events"
	"fixsmart/internal/httpx"
	"fixsmart/internal/intake"
	"fixsmart/internal/model"
	"fixsmart/internal/payment"
	"fixsmart/internal/settings"
	"fixsmart/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RequestInserter persists a validated submission with its payment outcome.
// *store.RequestStore is the production implementation.
type RequestInserter interface {
	Insert(ctx context.Context, reference string, sub intake.Sanitized, method string, out payment.Outcome) (*model.UnlockRequest, error)
}

// SettingsReader resolves canonical prices and site settings.
type SettingsReader interface {
	Price(ctx context.Context, deviceType string) (decimal.Decimal, error)
	Get(ctx context.Context, key, fallback string) string
}

// Dispatcher enqueues the post-submission notification emails.
type Dispatcher interface {
	Dispatch(req *model.UnlockRequest, siteName, adminEmail, txHash, walletAddress string) bool
}

// Handler serves the customer submission endpoints. Control flow:
// validate → record payment → insert → notify (async, best-effort) → respond.
type Handler struct {
	store    RequestInserter
	settings SettingsReader
	recorder *payment.Recorder
	notifier Dispatcher
}

// NewHandler creates an orders handler
func NewHandler(requestStore RequestInserter, settingsSvc SettingsReader, recorder *payment.Recorder, notifier Dispatcher) *Handler {
	return &Handler{
		store:    requestStore,
		settings: settingsSvc,
		recorder: recorder,
		notifier: notifier,
	}
}

// Submit handles POST /submit-request, the USDT-only path. An invalid or
// reused transaction hash rejects the submission outright: no row is written.
func (h *Handler) Submit(c *gin.Context) {
	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.FailErr(c, httpx.ErrParamInvalid("invalid JSON data"))
		return
	}

	if strings.TrimSpace(req.TransactionHash) == "" {
		httpx.FailErr(c, httpx.ErrValidation("missing required field: transactionHash"))
		return
	}

	sanitized, appErr := h.validate(c, intake.Submission{
		CustomerEmail: req.CustomerEmail,
		DeviceType:    req.DeviceType,
		DeviceVersion: req.DeviceVersion,
		IMEISerial:    req.IMEISerial,
		Description:   req.Description,
		Amount:        req.Amount,
	})
	if appErr != nil {
		httpx.FailErr(c, appErr)
		return
	}

	outcome, err := h.recorder.Process(c.Request.Context(), model.PaymentMethodUSDT, payment.Payload{
		TransactionHash: req.TransactionHash,
		WalletAddress:   req.WalletAddress,
	}, sanitized.Amount)
	if err != nil {
		if errors.Is(err, payment.ErrDuplicateTransaction) {
			httpx.FailErr(c, httpx.ErrDuplicateTransaction(""))
			return
		}
		httpx.FailErr(c, httpx.ErrDatabaseError("failed to check transaction hash", err))
		return
	}
	// On this path a bad hash is a validation failure, not a failed payment:
	// nothing is persisted.
	if outcome.Status == payment.OutcomeFailed {
		httpx.FailErr(c, httpx.ErrValidation(outcome.Error))
		return
	}

	h.persistAndRespond(c, sanitized, model.PaymentMethodUSDT, outcome, false)
}

// ProcessPayment handles POST /process-payment, the method-dispatch path.
// Handler failures (missing card token, bad PayPal ids, malformed hash) still
// persist the request with payment_status=failed so the record is never lost.
func (h *Handler) ProcessPayment(c *gin.Context) {
	var req ProcessPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.FailErr(c, httpx.ErrParamInvalid("invalid JSON data"))
		return
	}

	method := strings.TrimSpace(req.PaymentMethod)
	if method == "" {
		httpx.FailErr(c, httpx.ErrValidation("missing required field: paymentMethod"))
		return
	}
	if !model.ValidPaymentMethod(method) {
		httpx.FailErr(c, httpx.ErrValidation("invalid payment method"))
		return
	}

	sanitized, appErr := h.validate(c, intake.Submission{
		CustomerEmail: req.CustomerEmail,
		DeviceType:    req.DeviceType,
		DeviceVersion: req.DeviceVersion,
		IMEISerial:    req.IMEISerial,
		Description:   req.Description,
		Amount:        req.Amount,
	})
	if appErr != nil {
		httpx.FailErr(c, appErr)
		return
	}

	outcome, err := h.recorder.Process(c.Request.Context(), method, req.PaymentData, sanitized.Amount)
	if err != nil {
		if errors.Is(err, payment.ErrDuplicateTransaction) {
			httpx.FailErr(c, httpx.ErrDuplicateTransaction(""))
			return
		}
		httpx.FailErr(c, httpx.ErrDatabaseError("failed to check transaction hash", err))
		return
	}

	h.persistAndRespond(c, sanitized, method, outcome, true)
}

// validate resolves the canonical price and runs the intake validator.
func (h *Handler) validate(c *gin.Context, raw intake.Submission) (intake.Sanitized, *httpx.AppError) {
	deviceType := intake.SanitizeString(raw.DeviceType)
	if !model.ValidDeviceType(deviceType) {
		return intake.Sanitized{}, httpx.ErrValidation("invalid device type")
	}

	price, err := h.settings.Price(c.Request.Context(), deviceType)
	if err != nil {
		if errors.Is(err, settings.ErrUnknownDeviceType) {
			return intake.Sanitized{}, httpx.ErrValidation("invalid device type")
		}
		return intake.Sanitized{}, httpx.ErrDatabaseError("failed to fetch pricing", err)
	}

	return intake.Validate(raw, price)
}

// persistAndRespond inserts the row, fires notifications and events, and
// writes the success response.
func (h *Handler) persistAndRespond(c *gin.Context, sanitized intake.Sanitized, method string, outcome payment.Outcome, includePaymentStatus bool) {
	reference := generateReference()

	req, err := h.store.Insert(c.Request.Context(), reference, sanitized, method, outcome)
	if err != nil {
		if errors.Is(err, store.ErrDuplicateTransaction) {
			// Lost the race between the pre-check and the insert: the
			// unique index caught the double-spend.
			httpx.FailErr(c, httpx.ErrDuplicateTransaction(""))
			return
		}
		httpx.FailErr(c, httpx.ErrDatabaseError("failed to persist request", err))
		return
	}

	siteName := h.settings.Get(c.Request.Context(), model.SettingSiteName, "Fix Smart")
	adminEmail := h.settings.Get(c.Request.Context(), model.SettingAdminEmail, "admin@fixsmart.com")
	emailSent := h.notifier.Dispatch(req, siteName, adminEmail, outcome.TxHash, outcome.WalletAddress)

	events.PublishRequestCreated(req)

	payload := gin.H{
		"order_id":   req.ID,
		"request_id": req.Reference,
		"email_sent": emailSent,
	}
	if includePaymentStatus {
		payload["payment_status"] = req.PaymentStatus
	}
	httpx.OKMsg(c, "Service request submitted successfully", payload)
}

// generateReference builds the public order id, e.g. FS_2026_9F3A1B2C.
func generateReference() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("FS_%d_%s", time.Now().Year(), suffix)
}
