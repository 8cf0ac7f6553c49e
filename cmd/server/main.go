package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	httpapi "pawnledger-backend/internal/api/http"
	"pawnledger-backend/internal/config"
	"pawnledger-backend/internal/logger"
	"pawnledger-backend/internal/marketfeed"
	"pawnledger-backend/internal/notify"
	"pawnledger-backend/internal/repository/postgres"
	"pawnledger-backend/internal/security"
	"pawnledger-backend/internal/service"
	"pawnledger-backend/internal/storage"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Pawn Ledger Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress(), "timezone", cfg.Server.Timezone)
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)
	logger.Info("Ledger policy", "interest_policy", cfg.Ledger.InterestPolicy, "revert_overdue_on_payment", cfg.Ledger.RevertOverdueOnPayment)

	// Initialize Database
	logger.Debug("Connecting to database...", "connection_string", fmt.Sprintf("%s@%s:%d/%s", cfg.Database.User, cfg.Database.Host, cfg.Database.Port, cfg.Database.Database))
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	if cfg.Database.MigrateOnStart {
		if err := postgres.Migrate(context.Background(), db); err != nil {
			logger.Error("Failed to migrate schema", "error", err)
			log.Fatalf("Failed to migrate schema: %v", err)
		}
		logger.Info("Schema migrated")
	}

	// Initialize Repositories
	store := postgres.NewStore(db)
	settings := service.SettingsFromConfig(cfg)

	if cfg.Admin.Username != "" {
		if _, err := service.EnsureAdmin(context.Background(), store.Users, cfg.Admin.Username, cfg.Admin.Password, cfg.Admin.FullName); err != nil {
			logger.Error("Failed to bootstrap admin", "error", err)
			log.Fatalf("Failed to bootstrap admin: %v", err)
		}
	}

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.AccessTokenTTL())

	// Initialize Document Storage
	logger.Info("Using local document storage", "upload_dir", cfg.Storage.UploadDir)
	docStore, err := storage.NewLocalStore(storage.Config{
		UploadDir:     cfg.Storage.UploadDir,
		BaseURL:       cfg.Storage.BaseURL,
		MaxFileSizeMB: cfg.Storage.MaxFileSize,
		AllowedTypes:  cfg.Storage.AllowedTypes,
	})
	if err != nil {
		logger.Error("Failed to initialize document storage", "error", err)
		log.Fatalf("Failed to initialize document storage: %v", err)
	}

	// Initialize Services
	svc := httpapi.Services{
		Auth:      service.NewAuthService(store.Users, tokenManager),
		Branches:  service.NewBranchService(store.Branches),
		Schemes:   service.NewSchemeService(store.Schemes),
		Rates:     service.NewRateService(store.GoldRates, newPriceFeed(cfg), settings),
		Customers: service.NewCustomerService(store.Customers, store.Loans),
		Documents: service.NewDocumentService(docStore),
		Pledges:   service.NewPledgeService(store.Repositories, store, settings),
		Payments:  service.NewPaymentService(store.Repositories, store, settings),
		Lifecycle: service.NewLifecycleService(store.Repositories, store, newSender(cfg), settings),
		Vouchers:  service.NewVoucherService(store.Vouchers, settings),
		Staff:     service.NewStaffService(store.Users, store.Branches),
		Reports:   service.NewReportService(store.Repositories, settings),
	}

	router := httpapi.NewRouter(httpapi.NewHandler(svc, cfg.Location()), tokenManager)
	server := &http.Server{
		Addr:              cfg.GetServerAddress(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server error", "error", err)
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down HTTP server...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Graceful shutdown failed", "error", err)
	}
	logger.Info("Server stopped")
}

// newPriceFeed returns nil when no feed URL is configured, so rates are synthesized.
func newPriceFeed(cfg *config.Config) service.PriceFeed {
	if cfg.MarketFeed.URL == "" {
		return nil
	}
	return marketfeed.NewClient(cfg.MarketFeed.URL, time.Duration(cfg.MarketFeed.TimeoutSeconds)*time.Second, cfg.MarketFeed.RequestsPerMinute)
}

func newSender(cfg *config.Config) notify.Sender {
	if cfg.SendGrid.APIKey == "" {
		logger.Info("SendGrid not configured, notices are logged only")
		return notify.LogSender{}
	}
	return notify.NewSendGridSender(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName, "")
}
