package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool

	// DailyWithdrawalLimit is the per-account per-calendar-day ceiling on
	// cumulative debit magnitude. Non-negative.
	DailyWithdrawalLimit decimal.Decimal

	// Kafka event publishing; empty brokers disable it.
	KafkaBrokers []string
	KafkaTopic   string

	// Redis statement-report cache; empty address disables it.
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	ReportCacheTTL time.Duration

	// RateLimit is a ulule/limiter formatted rate, e.g. "100-M".
	RateLimit string
}

// LoadConfig loads configuration from environment variables and a .env file
// if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("DAILY_WITHDRAWAL_LIMIT", "1000.00")
	viper.SetDefault("KAFKA_BROKERS", "")
	viper.SetDefault("KAFKA_TOPIC", "movement_posted")
	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("REPORT_CACHE_TTL", "2m")
	viper.SetDefault("RATE_LIMIT", "100-M")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	limitStr := viper.GetString("DAILY_WITHDRAWAL_LIMIT")
	limit, err := decimal.NewFromString(limitStr)
	if err != nil {
		return nil, fmt.Errorf("invalid DAILY_WITHDRAWAL_LIMIT %q: %w", limitStr, err)
	}
	if limit.IsNegative() {
		return nil, fmt.Errorf("DAILY_WITHDRAWAL_LIMIT must be non-negative, got %s", limit)
	}
	cfg.DailyWithdrawalLimit = limit

	if brokers := viper.GetString("KAFKA_BROKERS"); brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}
	cfg.KafkaTopic = viper.GetString("KAFKA_TOPIC")

	cfg.RedisAddr = viper.GetString("REDIS_ADDR")
	cfg.RedisPassword = viper.GetString("REDIS_PASSWORD")
	cfg.RedisDB = viper.GetInt("REDIS_DB")

	ttlStr := viper.GetString("REPORT_CACHE_TTL")
	ttl, err := time.ParseDuration(ttlStr)
	if err != nil {
		ttl = 2 * time.Minute
		log.Printf("Warning: Invalid value for REPORT_CACHE_TTL (%q). Defaulting to %s.\n", ttlStr, ttl)
	}
	cfg.ReportCacheTTL = ttl

	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	return cfg, nil
}
