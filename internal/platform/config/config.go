package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go-simpler.org/env"
)

const defaultAdminPassword = "admin"

type Config struct {
	AppEnv      string `env:"APP_ENV" default:"development"`
	Port        string `env:"PORT" default:"8080"`
	DatabaseURL string `env:"DATABASE_URL"`
	RedisURL    string `env:"REDIS_URL"`
	LogLevel    string `env:"LOG_LEVEL" default:"info"`
	LogFormat   string `env:"LOG_FORMAT" default:"text"`

	AdminUsername string `env:"ADMIN_USERNAME" default:"admin"`
	AdminPassword string `env:"ADMIN_PASSWORD" default:"admin"`

	AnalyzeRateLimit float64 `env:"ANALYZE_RATE_LIMIT" default:"5"`
	AnalyzeRateBurst int     `env:"ANALYZE_RATE_BURST" default:"10"`

	ResultCacheTTL       time.Duration `env:"RESULT_CACHE_TTL" default:"1h"`
	ResultMemoryCacheTTL time.Duration `env:"RESULT_MEMORY_CACHE_TTL" default:"10s"`
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	var cfg Config
	if err := env.Load(&cfg, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func validate(cfg *Config) error {
	required := []struct{ name, value string }{
		{"DATABASE_URL", cfg.DatabaseURL},
		{"REDIS_URL", cfg.RedisURL},
		{"ADMIN_USERNAME", cfg.AdminUsername},
		{"ADMIN_PASSWORD", cfg.AdminPassword},
	}
	for _, r := range required {
		if r.value == "" {
			return fmt.Errorf("%s is required", r.name)
		}
	}

	if cfg.AnalyzeRateLimit <= 0 {
		return errors.New("ANALYZE_RATE_LIMIT must be positive")
	}
	if cfg.AnalyzeRateBurst < 1 {
		return errors.New("ANALYZE_RATE_BURST must be at least 1")
	}
	if cfg.ResultCacheTTL <= 0 || cfg.ResultMemoryCacheTTL <= 0 {
		return errors.New("cache TTLs must be positive")
	}

	if !cfg.IsProduction() {
		return nil
	}

	if cfg.AdminPassword == defaultAdminPassword {
		return errors.New("ADMIN_PASSWORD must be changed from the default in production")
	}

	mode, err := sslMode(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("DATABASE_URL is not a valid URL: %w", err)
	}
	if mode == "disable" || mode == "allow" {
		return fmt.Errorf("DATABASE_URL uses sslmode=%s which is not allowed in production", mode)
	}

	return nil
}

func sslMode(databaseURL string) (string, error) {
	u, err := url.Parse(databaseURL)
	if err != nil {
		return "", err
	}
	return strings.ToLower(u.Query().Get("sslmode")), nil
}
