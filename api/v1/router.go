package v1

import (
	"fixsmart/api/v1/admin"
	"fixsmart/api/v1/auth"
	"fixsmart/api/v1/catalog"
	"fixsmart/api/v1/middleware"
	"fixsmart/api/v1/orders"
	"fixsmart/internal/config"
	"fixsmart/internal/events"
	"fixsmart/internal/httpx"
	"fixsmart/internal/notify"
	"fixsmart/internal/payment"
	"fixsmart/internal/settings"
	"fixsmart/internal/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Deps carries the shared services the route handlers need.
type Deps struct {
	DB       *gorm.DB
	Config   *config.Config
	Store    *store.RequestStore
	Settings *settings.Service
	Recorder *payment.Recorder
	Notifier *notify.Notifier
}

// SetupRouter sets up the API v1 routes
func SetupRouter(r *gin.Engine, deps Deps) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     deps.Config.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
	}))

	catalogHandler := catalog.NewHandler(deps.Settings)
	ordersHandler := orders.NewHandler(deps.Store, deps.Settings, deps.Recorder, deps.Notifier)
	adminHandler := admin.NewHandler(deps.Store, deps.Settings)

	v1 := r.Group("/api/v1")
	{
		// Public routes (no authentication required)
		v1.GET("/ping", pingHandler)

		v1.GET("/device-versions", catalogHandler.DeviceVersions)
		v1.GET("/pricing", catalogHandler.Pricing)
		v1.GET("/wallets", catalogHandler.Wallets)
		v1.GET("/guarantees", catalogHandler.Guarantees)

		v1.POST("/submit-request", ordersHandler.Submit)
		v1.POST("/process-payment", ordersHandler.ProcessPayment)

		// Auth routes
		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/login", auth.LoginHandler(deps.DB, deps.Config))
		}

		// Protected routes (authentication required)
		adminGroup := v1.Group("/admin")
		adminGroup.Use(middleware.AuthRequired())
		{
			adminGroup.GET("/me", meHandler)

			adminGroup.GET("/requests", adminHandler.ListRequests)
			adminGroup.GET("/requests/:id", adminHandler.GetRequest)
			adminGroup.POST("/requests/update-status", adminHandler.UpdateRequestStatus)
			adminGroup.GET("/stats", adminHandler.Stats)

			adminGroup.POST("/pricing/update", adminHandler.UpdatePricing)
			adminGroup.POST("/wallets/update", adminHandler.UpdateWallets)
			adminGroup.POST("/settings/update", adminHandler.UpdateSettings)
			adminGroup.GET("/guarantees", catalogHandler.Guarantees)
			adminGroup.POST("/guarantees", adminHandler.UpdateGuarantees)
		}
	}

	// Socket.IO live feed for the admin dashboard. The handshake carries
	// a JWT, validated before the connection is upgraded.
	if events.Server != nil {
		handler := events.AuthMiddleware(events.Server)
		r.GET("/socket.io/*any", gin.WrapH(handler))
		r.POST("/socket.io/*any", gin.WrapH(handler))
	}
}

// pingHandler handles the ping request using unified response
func pingHandler(c *gin.Context) {
	httpx.OK(c, gin.H{
		"pong": true,
	})
}

// meHandler returns the authenticated admin identity
func meHandler(c *gin.Context) {
	uid, _ := c.Get("uid")
	username, _ := c.Get("username")
	role, _ := c.Get("role")

	httpx.OK(c, gin.H{
		"uid":      uid,
		"username": username,
		"role":     role,
	})
}
