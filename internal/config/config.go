package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
)

type Config struct {
	TelegramToken string `mapstructure:"TELEGRAM_TOKEN"`
	DBDSN         string `mapstructure:"DB_DSN"`
	Environment   string `mapstructure:"ENV"`
	LogLevel      string `mapstructure:"LOG_LEVEL"`

	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`

	Timezone       string `mapstructure:"TIMEZONE"`
	MigrationsPath string `mapstructure:"MIGRATIONS_PATH"`

	StatsCacheTTL        time.Duration `mapstructure:"STATS_CACHE_TTL"`
	NoShowGrace          time.Duration `mapstructure:"NO_SHOW_GRACE_MINUTES"`
	NoShowInterval       time.Duration `mapstructure:"NO_SHOW_INTERVAL"`
	BookingRatePerMinute int           `mapstructure:"BOOKING_RATE_PER_MINUTE"`
}

func Load() (*Config, error) {
	// .env необязателен, переменные окружения важнее
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		TelegramToken:  os.Getenv("TELEGRAM_TOKEN"),
		DBDSN:          os.Getenv("DB_DSN"),
		Environment:    getString("ENV", "development"),
		LogLevel:       os.Getenv("LOG_LEVEL"),
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		Timezone:       getString("TIMEZONE", "Europe/Moscow"),
		MigrationsPath: getString("MIGRATIONS_PATH", "migrations"),
	}

	var err error
	if cfg.RedisDB, err = getInt("REDIS_DB", 0); err != nil {
		return nil, err
	}
	if cfg.StatsCacheTTL, err = getDuration("STATS_CACHE_TTL", 5*time.Minute); err != nil {
		return nil, err
	}
	if cfg.NoShowInterval, err = getDuration("NO_SHOW_INTERVAL", 10*time.Minute); err != nil {
		return nil, err
	}
	graceMinutes, err := getInt("NO_SHOW_GRACE_MINUTES", 30)
	if err != nil {
		return nil, err
	}
	cfg.NoShowGrace = time.Duration(graceMinutes) * time.Minute
	if cfg.BookingRatePerMinute, err = getInt("BOOKING_RATE_PER_MINUTE", 5); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.DBDSN == "" {
		return fmt.Errorf("DB_DSN is required but not set")
	}
	if c.TelegramToken == "" {
		return fmt.Errorf("TELEGRAM_TOKEN is required but not set")
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("TIMEZONE %q: %w", c.Timezone, err)
	}
	if c.BookingRatePerMinute < 1 {
		return fmt.Errorf("BOOKING_RATE_PER_MINUTE must be positive")
	}
	if c.NoShowInterval <= 0 {
		return fmt.Errorf("NO_SHOW_INTERVAL must be positive")
	}
	if c.NoShowGrace < 0 {
		return fmt.Errorf("NO_SHOW_GRACE_MINUTES must not be negative")
	}
	// go-redis трактует отрицательный срок как KeepTTL
	if c.StatsCacheTTL <= 0 {
		return fmt.Errorf("STATS_CACHE_TTL must be positive")
	}
	return nil
}

// Location зона, в которой считаются даты и слоты
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (c *Config) GetDBDSN() string {
	return c.DBDSN
}

func getString(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration like 5m: %w", key, err)
	}
	return d, nil
}
