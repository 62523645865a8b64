package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	// SkipUnbalancedGroups controls how report computations treat posting
	// groups that fail the balance invariant: exclude them from the totals
	// instead of aborting the whole report.
	SkipUnbalancedGroups bool

	// Rate limiting for the report endpoints.
	ReportRateLimit string

	// SnapshotMaxLines caps how many lines a single report fetch may load.
	SnapshotMaxLines int
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("SKIP_UNBALANCED_GROUPS", false)
	viper.SetDefault("REPORT_RATE_LIMIT", "30-M")
	viper.SetDefault("SNAPSHOT_MAX_LINES", 0)

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080" // Default port
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.SkipUnbalancedGroups = viper.GetBool("SKIP_UNBALANCED_GROUPS")
	cfg.ReportRateLimit = viper.GetString("REPORT_RATE_LIMIT")
	cfg.SnapshotMaxLines = viper.GetInt("SNAPSHOT_MAX_LINES")

	return cfg, nil
}
