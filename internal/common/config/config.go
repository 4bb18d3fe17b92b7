// internal/common/config/config.go
package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App           AppConfig          `mapstructure:"app"`
	Server        ServerConfig       `mapstructure:"server"`
	Database      DatabaseConfig     `mapstructure:"database"`
	Auth          AuthConfig         `mapstructure:"auth"`
	Scoring       ScoringConfig      `mapstructure:"scoring"`
	Analytics     AnalyticsConfig    `mapstructure:"analytics"`
	Payouts       PayoutConfig       `mapstructure:"payouts"`
	Notifications NotificationConfig `mapstructure:"notifications"`
	Logging       LoggingConfig      `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Address         string `mapstructure:"address"`
	MetricsAddress  string `mapstructure:"metrics_address"`
	ShutdownTimeout int    `mapstructure:"shutdown_timeout"` // seconds
}

type DatabaseConfig struct {
	Postgres      PostgresConfig      `mapstructure:"postgres"`
	Redis         RedisConfig         `mapstructure:"redis"`
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type ElasticsearchConfig struct {
	Addresses    []string `mapstructure:"addresses"`
	Username     string   `mapstructure:"username"`
	Password     string   `mapstructure:"password"`
	ProductIndex string   `mapstructure:"product_index"`
}

// AuthConfig holds JWT verification settings for the identity boundary.
type AuthConfig struct {
	JWTSecret   string `mapstructure:"jwt_secret"`
	TokenExpiry int    `mapstructure:"token_expiry"` // minutes
}

// --- Business Rule Configuration ---

// ScoringConfig carries the application-scoring thresholds. The defaults
// reproduce the observed production values; they are configured, not derived.
type ScoringConfig struct {
	AutoApprovalThreshold int `mapstructure:"auto_approval_threshold"` // completeness percent
	LeaderTierThreshold   int `mapstructure:"leader_tier_threshold"`
	EstablishedThreshold  int `mapstructure:"established_tier_threshold"`
	MinDescriptionLength  int `mapstructure:"min_description_length"`
}

type AnalyticsConfig struct {
	ForecastBandPercent int `mapstructure:"forecast_band_percent"` // fixed envelope, not a statistical interval
	ForecastWindow      int `mapstructure:"forecast_window"`       // months of history fed to the regression
	LeaderboardLimit    int `mapstructure:"leaderboard_limit"`
}

type PayoutConfig struct {
	PlatformFeePercent float64 `mapstructure:"platform_fee_percent"`
	DonationPercent    float64 `mapstructure:"donation_percent"`
	MinPayoutCents     int64   `mapstructure:"min_payout_cents"`
}

// NotificationConfig holds settings for decision emails and payout SMS.
type NotificationConfig struct {
	Email struct {
		Enabled   bool   `mapstructure:"enabled"`
		FromEmail string `mapstructure:"from_email"`
	} `mapstructure:"email"`
	SMS struct {
		Enabled  bool   `mapstructure:"enabled"`
		SenderID string `mapstructure:"sender_id"`
	} `mapstructure:"sms"`
	AWS struct {
		Region string `mapstructure:"region"`
	} `mapstructure:"aws"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}
