// internal/common/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

func Load() (*Config, error) {
	loadEnvFile()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("../../configs")
	viper.AddConfigPath(".")

	// Enable ENV override like DATABASE_POSTGRES_PASSWORD
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	// Environment-specific overlay, e.g. config.production.yaml
	viper.SetConfigName(fmt.Sprintf("config.%s", env))
	_ = viper.MergeInConfig() // ignore error if not found

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// loadEnvFile tries .env in a few likely locations so the binary and the
// tests can both find it.
func loadEnvFile() {
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env",
	}

	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "evercraft"
	}
	if cfg.App.Environment == "" {
		cfg.App.Environment = "development"
	}
	if cfg.Server.Address == "" {
		cfg.Server.Address = ":8080"
	}
	if cfg.Server.MetricsAddress == "" {
		cfg.Server.MetricsAddress = ":9090"
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 15
	}
	if cfg.Database.Postgres.Port == 0 {
		cfg.Database.Postgres.Port = 5432
	}
	if cfg.Database.Postgres.MaxConnections == 0 {
		cfg.Database.Postgres.MaxConnections = 25
	}
	if cfg.Database.Postgres.MaxIdle == 0 {
		cfg.Database.Postgres.MaxIdle = 5
	}
	if cfg.Database.Postgres.SSLMode == "" {
		cfg.Database.Postgres.SSLMode = "disable"
	}
	if cfg.Database.Elasticsearch.ProductIndex == "" {
		cfg.Database.Elasticsearch.ProductIndex = "evercraft-products"
	}
	if cfg.Scoring.AutoApprovalThreshold == 0 {
		cfg.Scoring.AutoApprovalThreshold = 90
	}
	if cfg.Scoring.LeaderTierThreshold == 0 {
		cfg.Scoring.LeaderTierThreshold = 80
	}
	if cfg.Scoring.EstablishedThreshold == 0 {
		cfg.Scoring.EstablishedThreshold = 50
	}
	if cfg.Scoring.MinDescriptionLength == 0 {
		cfg.Scoring.MinDescriptionLength = 50
	}
	if cfg.Analytics.ForecastBandPercent == 0 {
		cfg.Analytics.ForecastBandPercent = 15
	}
	if cfg.Analytics.ForecastWindow == 0 {
		cfg.Analytics.ForecastWindow = 12
	}
	if cfg.Analytics.LeaderboardLimit == 0 {
		cfg.Analytics.LeaderboardLimit = 10
	}
	if cfg.Payouts.PlatformFeePercent == 0 {
		cfg.Payouts.PlatformFeePercent = 8.0
	}
	if cfg.Payouts.DonationPercent == 0 {
		cfg.Payouts.DonationPercent = 2.0
	}
	if cfg.Payouts.MinPayoutCents == 0 {
		cfg.Payouts.MinPayoutCents = 1000
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
}

func validateConfig(cfg *Config) error {
	if cfg.Database.Postgres.Host == "" {
		return fmt.Errorf("database.postgres.host is required")
	}
	if cfg.Database.Postgres.Database == "" {
		return fmt.Errorf("database.postgres.database is required")
	}
	if cfg.Auth.JWTSecret == "" {
		return fmt.Errorf("auth.jwt_secret is required")
	}
	if cfg.Scoring.AutoApprovalThreshold < 0 || cfg.Scoring.AutoApprovalThreshold > 100 {
		return fmt.Errorf("scoring.auto_approval_threshold must be 0-100, got %d", cfg.Scoring.AutoApprovalThreshold)
	}
	if cfg.Payouts.PlatformFeePercent+cfg.Payouts.DonationPercent >= 100 {
		return fmt.Errorf("payout split leaves no seller share")
	}
	return nil
}
