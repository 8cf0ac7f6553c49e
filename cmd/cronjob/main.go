package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"pawnledger-backend/internal/config"
	"pawnledger-backend/internal/jobs"
	"pawnledger-backend/internal/logger"
	"pawnledger-backend/internal/marketfeed"
	"pawnledger-backend/internal/notify"
	"pawnledger-backend/internal/repository/postgres"
	"pawnledger-backend/internal/scheduler"
	"pawnledger-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	runOnce := flag.String("run-once", "", "Run a specific job once and exit (e.g., 'ensure-today-rate', 'mark-overdue-loans', 'all-daily')")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Pawn Ledger Cronjob Runner...", "log_level", cfg.Log.Level, "timezone", cfg.Server.Timezone)

	// Initialize Database
	logger.Info("Connecting to database...", "host", cfg.Database.Host, "port", cfg.Database.Port)
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

	// Initialize Repositories
	store := postgres.NewStore(db)
	settings := service.SettingsFromConfig(cfg)

	// Initialize Services
	var feed service.PriceFeed
	if cfg.MarketFeed.URL != "" {
		logger.Info("Market feed enabled", "url", cfg.MarketFeed.URL)
		feed = marketfeed.NewClient(cfg.MarketFeed.URL, time.Duration(cfg.MarketFeed.TimeoutSeconds)*time.Second, cfg.MarketFeed.RequestsPerMinute)
	}

	var sender notify.Sender = notify.LogSender{}
	if cfg.SendGrid.APIKey != "" {
		sender = notify.NewSendGridSender(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName, "")
	}

	jobServices := &jobs.Services{
		Rates:     service.NewRateService(store.GoldRates, feed, settings),
		Lifecycle: service.NewLifecycleService(store.Repositories, store, sender, settings),
	}

	// Initialize Job Runner
	jobRunner := jobs.NewJobRunner(jobServices, cfg)

	// Check if running a single job
	if *runOnce != "" {
		logger.Info("Running job once", "job", *runOnce)
		if err := jobRunner.RunByName(*runOnce); err != nil {
			if errors.Is(err, jobs.ErrUnknownJob) {
				printJobs()
			}
			logger.Error("Job execution failed", "job", *runOnce, "error", err)
			os.Exit(1)
		}
		logger.Info("Job execution completed", "job", *runOnce)
		return
	}

	// Initialize Scheduler
	cronScheduler, err := scheduler.NewScheduler(jobRunner)
	if err != nil {
		log.Fatalf("Failed to initialize scheduler: %v", err)
	}

	// Start scheduler
	cronScheduler.Start()
	logger.Info("Cronjob scheduler is running. Press Ctrl+C to stop.")

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down cronjob scheduler...")
	cronScheduler.Stop()
	logger.Info("Cronjob scheduler stopped. Goodbye!")
}

func printJobs() {
	fmt.Printf("Available jobs:\n")
	for _, name := range []string{jobs.JobEnsureTodayRate, jobs.JobMarkOverdueLoans, jobs.JobSendOverdueNotices, jobs.JobAllDaily} {
		fmt.Printf("  - %s\n", name)
	}
}
