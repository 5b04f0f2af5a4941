package admin

import (
	"errors"
	"strconv"

	"fixsmart/internal/events"
	"fixsmart/internal/httpx"
	"fixsmart/internal/model"
	"fixsmart/internal/settings"
	"fixsmart/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// Handler serves the admin console API: request review, status transitions
// and configuration (pricing, wallets, guarantees).
type Handler struct {
	store    *store.RequestStore
	settings *settings.Service
}

// NewHandler creates an admin handler
func NewHandler(requestStore *store.RequestStore, settingsSvc *settings.Service) *Handler {
	return &Handler{store: requestStore, settings: settingsSvc}
}

// ListRequestsQuery holds the list filters
type ListRequestsQuery struct {
	Page          int    `form:"page"`
	PageSize      int    `form:"pageSize"`
	Status        string `form:"status"`
	PaymentStatus string `form:"payment_status"`
	Email         string `form:"email"`
}

// ListRequests handles GET /admin/requests
func (h *Handler) ListRequests(c *gin.Context) {
	var q ListRequestsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httpx.FailErr(c, httpx.ErrParamInvalid("invalid query parameters"))
		return
	}
	if q.Page <= 0 {
		q.Page = 1
	}
	if q.PageSize <= 0 {
		q.PageSize = 15
	}

	requests, total, err := h.store.List(c.Request.Context(), q.Page, q.PageSize, store.ListFilter{
		Status:        q.Status,
		PaymentStatus: q.PaymentStatus,
		Email:         q.Email,
	})
	if err != nil {
		httpx.FailErr(c, httpx.ErrDatabaseError("failed to list requests", err))
		return
	}

	httpx.OK(c, gin.H{
		"requests": requests,
		"total":    total,
		"page":     q.Page,
		"pageSize": q.PageSize,
	})
}

// GetRequest handles GET /admin/requests/:id
func (h *Handler) GetRequest(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		httpx.FailErr(c, httpx.ErrParamInvalid("invalid request id"))
		return
	}

	req, err := h.store.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrRequestNotFound) {
			httpx.FailErr(c, httpx.ErrNotFound("request not found"))
			return
		}
		httpx.FailErr(c, httpx.ErrDatabaseError("failed to fetch request", err))
		return
	}

	httpx.OK(c, gin.H{"request": req})
}

// UpdateStatusRequest is the status update body. Empty fields stay untouched.
type UpdateStatusRequest struct {
	RequestID     int    `json:"request_id" binding:"required"`
	Status        string `json:"status"`
	PaymentStatus string `json:"payment_status"`
}

// UpdateRequestStatus handles POST /admin/requests/update-status
func (h *Handler) UpdateRequestStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.FailErr(c, httpx.ErrParamInvalid("invalid request body"))
		return
	}

	if req.Status == "" && req.PaymentStatus == "" {
		httpx.FailErr(c, httpx.ErrValidation("nothing to update"))
		return
	}
	if req.Status != "" && !validStatus(req.Status) {
		httpx.FailErr(c, httpx.ErrValidation("invalid status"))
		return
	}
	if req.PaymentStatus != "" && !validPaymentStatus(req.PaymentStatus) {
		httpx.FailErr(c, httpx.ErrValidation("invalid payment status"))
		return
	}

	updated, err := h.store.UpdateStatus(c.Request.Context(), req.RequestID, req.Status, req.PaymentStatus)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrRequestNotFound):
			httpx.FailErr(c, httpx.ErrNotFound("request not found"))
		case errors.Is(err, store.ErrInvalidTransition):
			httpx.FailErr(c, httpx.ErrStateConflict(err.Error()))
		default:
			httpx.FailErr(c, httpx.ErrDatabaseError("failed to update request", err))
		}
		return
	}

	events.PublishRequestUpdated(updated)

	httpx.OKMsg(c, "Request status updated successfully", gin.H{"request": updated})
}

// Stats handles GET /admin/stats. Returns the dashboard counters plus the
// ten most recent requests.
func (h *Handler) Stats(c *gin.Context) {
	stats, err := h.store.Stats(c.Request.Context())
	if err != nil {
		httpx.FailErr(c, httpx.ErrDatabaseError("failed to compute stats", err))
		return
	}

	recent, err := h.store.Recent(c.Request.Context(), 10)
	if err != nil {
		httpx.FailErr(c, httpx.ErrDatabaseError("failed to fetch recent requests", err))
		return
	}

	httpx.OK(c, gin.H{
		"stats":  stats,
		"recent": recent,
	})
}

// UpdatePricingRequest carries one price per device type.
type UpdatePricingRequest struct {
	IPhonePrice float64 `json:"iphone_price" binding:"required"`
	IPadPrice   float64 `json:"ipad_price" binding:"required"`
	MacPrice    float64 `json:"mac_price" binding:"required"`
}

// UpdatePricing handles POST /admin/pricing/update
func (h *Handler) UpdatePricing(c *gin.Context) {
	var req UpdatePricingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.FailErr(c, httpx.ErrParamInvalid("invalid request body"))
		return
	}

	prices := map[string]decimal.Decimal{
		model.DeviceIPhone: decimal.NewFromFloat(req.IPhonePrice).Round(2),
		model.DeviceIPad:   decimal.NewFromFloat(req.IPadPrice).Round(2),
		model.DeviceMac:    decimal.NewFromFloat(req.MacPrice).Round(2),
	}
	for deviceType, price := range prices {
		if price.LessThanOrEqual(decimal.Zero) {
			httpx.FailErr(c, httpx.ErrValidation("invalid price for "+deviceType))
			return
		}
	}

	if err := h.settings.UpdatePricing(c.Request.Context(), prices); err != nil {
		httpx.FailErr(c, httpx.ErrDatabaseError("failed to update pricing", err))
		return
	}

	httpx.OKMsg(c, "Pricing updated successfully", nil)
}

// UpdateWalletsRequest carries the USDT deposit addresses.
type UpdateWalletsRequest struct {
	TRC20Address string `json:"trc20_address" binding:"required"`
	ERC20Address string `json:"erc20_address" binding:"required"`
}

// UpdateWallets handles POST /admin/wallets/update
func (h *Handler) UpdateWallets(c *gin.Context) {
	var req UpdateWalletsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.FailErr(c, httpx.ErrParamInvalid("invalid request body"))
		return
	}

	if err := h.settings.UpdateWallets(c.Request.Context(), req.TRC20Address, req.ERC20Address); err != nil {
		httpx.FailErr(c, httpx.ErrDatabaseError("failed to update wallet addresses", err))
		return
	}

	httpx.OKMsg(c, "Wallet addresses updated successfully", nil)
}

// UpdateSettingsRequest carries the general site settings. Empty fields are
// left unchanged.
type UpdateSettingsRequest struct {
	SiteName       string `json:"site_name"`
	AdminEmail     string `json:"admin_email"`
	WhatsAppNumber string `json:"whatsapp_number"`
}

// UpdateSettings handles POST /admin/settings/update
func (h *Handler) UpdateSettings(c *gin.Context) {
	var req UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.FailErr(c, httpx.ErrParamInvalid("invalid request body"))
		return
	}

	updates := map[string]string{
		model.SettingSiteName:       req.SiteName,
		model.SettingAdminEmail:     req.AdminEmail,
		model.SettingWhatsAppNumber: req.WhatsAppNumber,
	}
	changed := 0
	for key, value := range updates {
		if value == "" {
			continue
		}
		if err := h.settings.Set(c.Request.Context(), key, value); err != nil {
			httpx.FailErr(c, httpx.ErrDatabaseError("failed to update settings", err))
			return
		}
		changed++
	}
	if changed == 0 {
		httpx.FailErr(c, httpx.ErrValidation("nothing to update"))
		return
	}

	httpx.OKMsg(c, "Settings updated successfully", nil)
}

// UpdateGuaranteesRequest carries the guarantees HTML blob.
type UpdateGuaranteesRequest struct {
	Content string `json:"content" binding:"required"`
}

// UpdateGuarantees handles POST /admin/guarantees
func (h *Handler) UpdateGuarantees(c *gin.Context) {
	var req UpdateGuaranteesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.FailErr(c, httpx.ErrParamInvalid("invalid request body"))
		return
	}

	if err := h.settings.SetGuarantees(c.Request.Context(), req.Content); err != nil {
		httpx.FailErr(c, httpx.ErrDatabaseError("failed to update guarantees content", err))
		return
	}

	httpx.OKMsg(c, "Guarantees content updated successfully", nil)
}

func validStatus(s string) bool {
	switch s {
	case model.StatusPending, model.StatusProcessing, model.StatusCompleted, model.StatusCancelled:
		return true
	}
	return false
}

func validPaymentStatus(s string) bool {
	switch s {
	case model.PaymentStatusPending, model.PaymentStatusPaid, model.PaymentStatusFailed, model.PaymentStatusCompleted:
		return true
	}
	return false
}
