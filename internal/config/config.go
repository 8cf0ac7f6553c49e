package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Interest policies.
const (
	InterestPolicyRevenueOnly   = "revenue_only"
	InterestPolicyExtendDueDate = "extend_due_date"
)

// Config represents the application configuration
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	JWT        JWTConfig        `yaml:"jwt"`
	Storage    StorageConfig    `yaml:"storage"`
	Log        LogConfig        `yaml:"log"`
	SendGrid   SendGridConfig   `yaml:"sendgrid"`
	MarketFeed MarketFeedConfig `yaml:"market_feed"`
	GoldRate   GoldRateConfig   `yaml:"gold_rate"`
	Ledger     LedgerConfig     `yaml:"ledger"`
	Scheduler  SchedulerConfig  `yaml:"scheduler"`
	Admin      AdminConfig      `yaml:"admin"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Timezone string `yaml:"timezone"` // business day boundaries, e.g. "Asia/Kolkata"
}

// DatabaseConfig contains PostgreSQL connection settings
type DatabaseConfig struct {
	Host                string `yaml:"host"`
	Port                int    `yaml:"port"`
	User                string `yaml:"user"`
	Password            string `yaml:"password"`
	Database            string `yaml:"database"`
	SSLMode             string `yaml:"ssl_mode"`
	QueryTimeoutSeconds int    `yaml:"query_timeout_seconds"`
	MigrateOnStart      bool   `yaml:"migrate_on_start"`
}

// JWTConfig contains JWT token settings
type JWTConfig struct {
	Secret            string `yaml:"secret"`
	AccessTokenExpiry int    `yaml:"access_token_expiry_minutes"`
}

// StorageConfig contains document storage settings
type StorageConfig struct {
	UploadDir    string   `yaml:"upload_dir"`
	BaseURL      string   `yaml:"base_url"`
	MaxFileSize  int64    `yaml:"max_file_size_mb"`
	AllowedTypes []string `yaml:"allowed_types"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

// SendGridConfig enables email notices when an API key is present
type SendGridConfig struct {
	APIKey    string `yaml:"api_key"`
	FromEmail string `yaml:"from_email"`
	FromName  string `yaml:"from_name"`
}

// MarketFeedConfig points at an external gold price endpoint. An empty URL disables it.
type MarketFeedConfig struct {
	URL               string `yaml:"url"`
	TimeoutSeconds    int    `yaml:"timeout_seconds"`
	RequestsPerMinute int    `yaml:"requests_per_minute"`
}

// GoldRateConfig drives synthesized rates when no feed is available
type GoldRateConfig struct {
	BaseRate22k float64 `yaml:"base_rate_22k"`
	Variance    float64 `yaml:"variance"`
}

// LedgerConfig carries the loan policy switches
type LedgerConfig struct {
	InterestPolicy         string `yaml:"interest_policy"`
	RevertOverdueOnPayment bool   `yaml:"revert_overdue_on_payment"`
	DemandHorizonDays      int    `yaml:"demand_horizon_days"`
	RedemptionWindowDays   int    `yaml:"redemption_window_days"`
}

// SchedulerConfig contains cron schedule settings
type SchedulerConfig struct {
	EnsureTodayRate    string `yaml:"ensure_today_rate"`
	MarkOverdueLoans   string `yaml:"mark_overdue_loans"`
	SendOverdueNotices string `yaml:"send_overdue_notices"`
}

// AdminConfig seeds the first admin account on server start when set
type AdminConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	FullName string `yaml:"full_name"`
}

// Load reads configuration from a YAML file. A .env file next to the process,
// if present, is loaded first so its values reach the environment overrides.
func Load(configPath string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return Parse(data)
}

// Parse builds a configuration from YAML bytes, applying env overrides and defaults
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.overrideWithEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// overrideWithEnv overrides config values with environment variables
func (c *Config) overrideWithEnv() {
	// Database
	if val := os.Getenv("DB_HOST"); val != "" {
		c.Database.Host = val
	}
	if val := os.Getenv("DB_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Database.Port)
	}
	if val := os.Getenv("DB_USER"); val != "" {
		c.Database.User = val
	}
	if val := os.Getenv("DB_PASSWORD"); val != "" {
		c.Database.Password = val
	}
	if val := os.Getenv("DB_NAME"); val != "" {
		c.Database.Database = val
	}
	if val := os.Getenv("DB_SSL_MODE"); val != "" {
		c.Database.SSLMode = val
	}

	// JWT
	if val := os.Getenv("JWT_SECRET"); val != "" {
		c.JWT.Secret = val
	}

	// Server
	if val := os.Getenv("SERVER_HOST"); val != "" {
		c.Server.Host = val
	}
	if val := os.Getenv("SERVER_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Server.Port)
	}
	if val := os.Getenv("TZ_BUSINESS"); val != "" {
		c.Server.Timezone = val
	}

	// Storage
	if val := os.Getenv("UPLOAD_DIR"); val != "" {
		c.Storage.UploadDir = val
	}

	// SendGrid
	if val := os.Getenv("SENDGRID_API_KEY"); val != "" {
		c.SendGrid.APIKey = val
	}

	// Market feed
	if val := os.Getenv("GOLD_FEED_URL"); val != "" {
		c.MarketFeed.URL = val
	}

	// Ledger
	if val := os.Getenv("INTEREST_POLICY"); val != "" {
		c.Ledger.InterestPolicy = val
	}

	// Admin bootstrap
	if val := os.Getenv("ADMIN_USERNAME"); val != "" {
		c.Admin.Username = val
	}
	if val := os.Getenv("ADMIN_PASSWORD"); val != "" {
		c.Admin.Password = val
	}

	// Log
	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv("LOG_FORMAT"); val != "" {
		c.Log.Format = val
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate checks if the configuration is valid and fills defaults
func (c *Config) Validate() error {
	// Server validation
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Server.Timezone == "" {
		c.Server.Timezone = "UTC"
	}
	if _, err := time.LoadLocation(c.Server.Timezone); err != nil {
		return fmt.Errorf("invalid server timezone %q: %w", c.Server.Timezone, err)
	}

	// Database validation
	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database user is required")
	}
	if c.Database.Database == "" {
		return fmt.Errorf("database name is required")
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Database.QueryTimeoutSeconds <= 0 {
		c.Database.QueryTimeoutSeconds = 5
	}

	// JWT validation
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}
	if len(c.JWT.Secret) < 32 {
		return fmt.Errorf("JWT secret must be at least 32 characters")
	}
	if c.JWT.AccessTokenExpiry <= 0 {
		c.JWT.AccessTokenExpiry = 12 * 60
	}

	// Storage validation
	if c.Storage.UploadDir == "" {
		return fmt.Errorf("upload directory is required")
	}
	if c.Storage.MaxFileSize <= 0 {
		c.Storage.MaxFileSize = 5
	}
	if len(c.Storage.AllowedTypes) == 0 {
		c.Storage.AllowedTypes = []string{"image/jpeg", "image/png", "application/pdf"}
	}

	// SendGrid
	if c.SendGrid.APIKey != "" && c.SendGrid.FromEmail == "" {
		return fmt.Errorf("sendgrid from_email is required when an API key is set")
	}

	// Market feed defaults
	if c.MarketFeed.TimeoutSeconds <= 0 {
		c.MarketFeed.TimeoutSeconds = 10
	}
	if c.MarketFeed.RequestsPerMinute <= 0 {
		c.MarketFeed.RequestsPerMinute = 6
	}

	// Gold rate defaults
	if c.GoldRate.BaseRate22k == 0 {
		c.GoldRate.BaseRate22k = 6750
	}
	if c.GoldRate.Variance == 0 {
		c.GoldRate.Variance = 50
	}
	if c.GoldRate.BaseRate22k < 0 || c.GoldRate.Variance < 0 {
		return fmt.Errorf("gold rate base and variance must not be negative")
	}

	// Ledger policies
	c.Ledger.InterestPolicy = strings.ToLower(c.Ledger.InterestPolicy)
	switch c.Ledger.InterestPolicy {
	case "":
		c.Ledger.InterestPolicy = InterestPolicyRevenueOnly
	case InterestPolicyRevenueOnly, InterestPolicyExtendDueDate:
	default:
		return fmt.Errorf("invalid interest policy: %s", c.Ledger.InterestPolicy)
	}
	if c.Ledger.DemandHorizonDays <= 0 {
		c.Ledger.DemandHorizonDays = 30
	}
	if c.Ledger.RedemptionWindowDays <= 0 {
		c.Ledger.RedemptionWindowDays = 7
	}

	// Admin bootstrap
	if c.Admin.Username != "" && len(c.Admin.Password) < 8 {
		return fmt.Errorf("admin password must be at least 8 characters")
	}
	if c.Admin.Username != "" && c.Admin.FullName == "" {
		c.Admin.FullName = "Administrator"
	}

	// Scheduler defaults
	if c.Scheduler.EnsureTodayRate == "" {
		c.Scheduler.EnsureTodayRate = "0 0 9 * * *" // 9 AM
	}
	if c.Scheduler.MarkOverdueLoans == "" {
		c.Scheduler.MarkOverdueLoans = "0 0 1 * * *" // 1 AM
	}
	if c.Scheduler.SendOverdueNotices == "" {
		c.Scheduler.SendOverdueNotices = "0 0 10 * * *" // 10 AM
	}

	return nil
}

// GetDatabaseConnectionString returns a PostgreSQL connection string
func (c *Config) GetDatabaseConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Database,
		c.Database.SSLMode,
	)
}

// GetServerAddress returns the HTTP listen address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// Location returns the business timezone. Validate guarantees it loads.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Server.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (c *Config) QueryTimeout() time.Duration {
	return time.Duration(c.Database.QueryTimeoutSeconds) * time.Second
}

func (c *Config) AccessTokenTTL() time.Duration {
	return time.Duration(c.JWT.AccessTokenExpiry) * time.Minute
}

func (g GoldRateConfig) Base() decimal.Decimal {
	return decimal.NewFromFloat(g.BaseRate22k)
}

func (g GoldRateConfig) Spread() decimal.Decimal {
	return decimal.NewFromFloat(g.Variance)
}
