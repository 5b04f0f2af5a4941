package catalog

import (
	"fixsmart/internal/httpx"
	"fixsmart/internal/model"
	"fixsmart/internal/settings"

	"github.com/gin-gonic/gin"
)

// Handler serves the public read-only catalog endpoints: device versions,
// pricing, wallet addresses and the guarantees content.
type Handler struct {
	settings *settings.Service
}

// NewHandler creates a catalog handler
func NewHandler(settingsSvc *settings.Service) *Handler {
	return &Handler{settings: settingsSvc}
}

// DeviceVersionItem is one selectable version on the order form.
type DeviceVersionItem struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Price string `json:"price"`
}

// DeviceVersions handles GET /device-versions?device_type=X
func (h *Handler) DeviceVersions(c *gin.Context) {
	deviceType := c.Query("device_type")
	if deviceType == "" {
		httpx.FailErr(c, httpx.ErrValidation("device type is required"))
		return
	}
	if !model.ValidDeviceType(deviceType) {
		httpx.FailErr(c, httpx.ErrValidation("invalid device type"))
		return
	}

	versions, err := h.settings.DeviceVersions(c.Request.Context(), deviceType)
	if err != nil {
		httpx.FailErr(c, httpx.ErrDatabaseError("failed to fetch device versions", err))
		return
	}

	items := make([]DeviceVersionItem, 0, len(versions))
	for _, v := range versions {
		items = append(items, DeviceVersionItem{
			ID:    v.ID,
			Name:  v.Name,
			Price: v.Price.StringFixed(2),
		})
	}

	httpx.OK(c, gin.H{
		"device_type": deviceType,
		"versions":    items,
	})
}

// Pricing handles GET /pricing
func (h *Handler) Pricing(c *gin.Context) {
	pricing, err := h.settings.Pricing(c.Request.Context())
	if err != nil {
		httpx.FailErr(c, httpx.ErrDatabaseError("failed to fetch pricing", err))
		return
	}

	out := make(map[string]string, len(pricing))
	for deviceType, price := range pricing {
		out[deviceType] = price.StringFixed(2)
	}

	httpx.OK(c, gin.H{"pricing": out})
}

// Wallets handles GET /wallets. The service falls back to built-in addresses
// on lookup failure, so this endpoint never 500s.
func (h *Handler) Wallets(c *gin.Context) {
	wallets := h.settings.Wallets(c.Request.Context())
	httpx.OK(c, gin.H{"wallets": wallets})
}

// Guarantees handles GET /guarantees
func (h *Handler) Guarantees(c *gin.Context) {
	content, err := h.settings.Guarantees(c.Request.Context())
	if err != nil {
		httpx.FailErr(c, httpx.ErrDatabaseError("failed to fetch guarantees content", err))
		return
	}

	httpx.OK(c, gin.H{"content": content})
}
