package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"hearthwick-api/internal/cache"
	"hearthwick-api/internal/config"
	"hearthwick-api/internal/handler"
	"hearthwick-api/internal/mail"
	"hearthwick-api/internal/media"
	"hearthwick-api/internal/middleware"
	"hearthwick-api/internal/router"
	"hearthwick-api/internal/service"
	"hearthwick-api/internal/sheets"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("Starting Hearth & Wick API...")

	// Load configuration
	cfg := config.MustLoad()
	log.Printf("Environment: %s", cfg.App.Environment)

	ctx := context.Background()

	// Google Sheets is the system of record. The server still boots without
	// credentials so local frontend work doesn't need a service account; the
	// storefront then serves empty (fail-open) data and admin writes fail.
	sheetClient, err := sheets.NewClient(ctx, cfg.Sheets)
	if err != nil {
		log.Fatalf("Failed to initialize Sheets client: %v", err)
	}
	switch {
	case sheetClient.Writable():
		log.Println("Sheets client initialized (service account, read/write)")
	case sheetClient.Configured():
		log.Println("Sheets client initialized (API key, read-only)")
	default:
		log.Println("Warning: Sheets client not configured")
	}

	// Snapshot store: in-process memory by default, Redis when running more
	// than one instance so cache invalidation is shared.
	var snapshots cache.SnapshotStore
	if cfg.Cache.Type == "redis" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Cache.RedisAddress(),
			Password: cfg.Cache.RedisPassword,
			DB:       cfg.Cache.RedisDB,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err := redisClient.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			log.Printf("Warning: Redis connection failed, falling back to memory cache: %v", err)
			snapshots = cache.NewMemoryStore()
		} else {
			snapshots = cache.NewRedisStore(redisClient)
			log.Println("Redis snapshot store initialized")
		}
	} else {
		snapshots = cache.NewMemoryStore()
	}

	// Mail
	var mailer mail.Mailer
	if cfg.Mail.SendGridAPIKey != "" {
		mailer = mail.NewSendGridMailer(cfg.Mail.SendGridAPIKey)
		log.Println("SendGrid mailer initialized")
	} else {
		log.Println("Warning: SendGrid not configured, order submission will fail")
		mailer = mail.NewSendGridMailer("")
	}

	// Media library (optional)
	library, err := media.NewLibrary(cfg.Cloudinary.URL, cfg.Cloudinary.Folder)
	if err != nil {
		log.Fatalf("Failed to initialize Cloudinary: %v", err)
	}
	if library != nil {
		log.Println("Cloudinary media library initialized")
	}

	// Services
	inventoryService := service.NewInventoryService(sheetClient, snapshots, cfg.Cache.InventoryTTL)
	promoService := service.NewPromoService(sheetClient, snapshots, cfg.Cache.PromoTTL)
	orderService := service.NewOrderService(inventoryService, promoService, mailer, cfg.Mail)

	// Admin session gate
	sessions := middleware.NewAdminSessions(cfg.Admin.SessionSecret, cfg.Admin.SessionTTL)
	if cfg.Admin.SessionSecret == "" || cfg.Admin.Password == "" {
		log.Println("Warning: admin access not configured (ADMIN_PASSWORD / ADMIN_SESSION_SECRET)")
	}

	// Handlers
	routerCfg := router.Config{
		HealthHandler:         handler.NewHealthHandler(cfg.App.Version),
		InventoryHandler:      handler.NewInventoryHandler(inventoryService),
		PromoHandler:          handler.NewPromoHandler(promoService),
		OrderHandler:          handler.NewOrderHandler(orderService),
		AdminAuthHandler:      handler.NewAdminAuthHandler(sessions, cfg.Admin.Password),
		AdminInventoryHandler: handler.NewAdminInventoryHandler(inventoryService),
		AdminPromoHandler:     handler.NewAdminPromoHandler(promoService),
		AdminAuth:             sessions.Middleware,
	}
	if library != nil {
		routerCfg.AdminMediaHandler = handler.NewAdminMediaHandler(library)
	}

	r := router.New(routerCfg)

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Server listening on %s", cfg.Server.Address())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Server stopped")
}
