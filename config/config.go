package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultPort            = "8080"
	defaultExchangeRateURL = "https://api.exchangerate-api.com/v4/latest/LKR"
	defaultExchangeRateTTL = time.Hour
)

type Config struct {
	DatabaseURL string
	Port        string
	JWTSecret   string
	LogLevel    string
	GinMode     string

	Redis        RedisConfig
	ExchangeRate ExchangeRateConfig
}

// RedisConfig is optional; an empty Addr disables the exchange rate cache.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type ExchangeRateConfig struct {
	URL      string
	CacheTTL time.Duration
}

// Load reads a .env file when present and then the process environment.
// DATABASE_URL and JWT_SECRET are required.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function so it can be exercised without
// touching the process environment.
func FromEnv(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		DatabaseURL: getenv("DATABASE_URL"),
		Port:        valueOr(getenv("PORT"), defaultPort),
		JWTSecret:   getenv("JWT_SECRET"),
		LogLevel:    valueOr(getenv("LOG_LEVEL"), "info"),
		GinMode:     getenv("GIN_MODE"),
		Redis: RedisConfig{
			Addr:     getenv("REDIS_ADDR"),
			Password: getenv("REDIS_PASSWORD"),
		},
		ExchangeRate: ExchangeRateConfig{
			URL:      valueOr(getenv("EXCHANGE_RATE_URL"), defaultExchangeRateURL),
			CacheTTL: defaultExchangeRateTTL,
		},
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL not set")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET not set")
	}

	if v := getenv("REDIS_DB"); v != "" {
		db, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
		}
		cfg.Redis.DB = db
	}

	if v := getenv("EXCHANGE_RATE_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid EXCHANGE_RATE_TTL: %w", err)
		}
		cfg.ExchangeRate.CacheTTL = ttl
	}

	return cfg, nil
}

func (c *Config) Addr() string {
	return ":" + c.Port
}

func valueOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
