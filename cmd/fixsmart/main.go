package main

import (
	"log"
	"os"

	v1 "fixsmart/api/v1"
	"fixsmart/internal/auth"
	"fixsmart/internal/cache"
	"fixsmart/internal/config"
	"fixsmart/internal/db"
	"fixsmart/internal/events"
	"fixsmart/internal/notify"
	"fixsmart/internal/payment"
	"fixsmart/internal/settings"
	"fixsmart/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
		os.Exit(1)
	}
	log.Println("✓ Configuration loaded")

	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// 2. Initialize MySQL
	if err := db.InitMySQL(cfg.MySQL.DSN); err != nil {
		log.Fatalf("Failed to initialize MySQL: %v", err)
		os.Exit(1)
	}
	defer db.Close()

	if cfg.Migrate {
		if err := db.Migrate(db.Get()); err != nil {
			log.Fatalf("Failed to migrate database: %v", err)
			os.Exit(1)
		}
		if err := db.Seed(db.Get(), cfg); err != nil {
			log.Fatalf("Failed to seed database: %v", err)
			os.Exit(1)
		}
		log.Println("✓ Database migrated")
	}

	// 3. Initialize Redis. The settings cache degrades to direct DB reads
	// without it, so a failure here is not fatal.
	if err := cache.InitRedis(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB); err != nil {
		logger.WithError(err).Warn("Redis unavailable, settings cache disabled")
	} else {
		defer cache.Close()
	}

	// 4. Initialize JWT signing
	auth.InitJWT(cfg.JWT.Secret)

	// 5. Initialize Socket.IO admin live feed
	if err := events.InitServer(); err != nil {
		log.Fatalf("Failed to initialize Socket.IO server: %v", err)
		os.Exit(1)
	}
	defer events.Close()

	// 6. Wire domain services
	requestStore := store.NewRequestStore(db.Get())
	settingsSvc := settings.NewService(db.Get(), cache.Client, logger.WithField("component", "settings"))
	recorder := payment.NewRecorder(requestStore, logger.WithField("component", "payment"))

	var sender notify.Sender
	if cfg.Notifier.Enabled {
		sender = notify.NewSMTPMailer(cfg.SMTP)
	}
	notifier := notify.NewNotifier(notify.Config{
		Sender:    sender,
		Logger:    logger.WithField("component", "notify"),
		QueueSize: cfg.Notifier.QueueSize,
	})
	notifier.Start()
	defer notifier.Stop()

	// 7. Initialize Gin router
	gin.SetMode(gin.ReleaseMode)
	r := gin.Default()

	v1.SetupRouter(r, v1.Deps{
		DB:       db.Get(),
		Config:   cfg,
		Store:    requestStore,
		Settings: settingsSvc,
		Recorder: recorder,
		Notifier: notifier,
	})

	log.Printf("✓ Server starting on %s", cfg.HTTPAddr)

	// Start server
	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
		os.Exit(1)
	}
}
