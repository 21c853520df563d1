package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"iss_overhead_notifier/internal/domain/observer"
)

var ErrMissingTelegramChat = errors.New("TELEGRAM_CHAT_ID is required when TELEGRAM_TOKEN is set")

// AppConfig holds all configuration for the application
type AppConfig struct {
	Latitude      int    `envconfig:"MY_LAT" required:"true"`
	Longitude     int    `envconfig:"MY_LNG" required:"true"`
	Email         string `envconfig:"MY_EMAIL" required:"true"`
	EmailPassword string `envconfig:"MY_EMAIL_PASSWORD" required:"true"`

	LogLevel      string `envconfig:"LOG_LEVEL" default:"info"`
	Environment   string `envconfig:"ENVIRONMENT" default:"development"`
	CheckSchedule string `envconfig:"CHECK_SCHEDULE" default:"@every 60s"`
	MetricsAddr   string `envconfig:"METRICS_ADDR"` // Empty disables the metrics server

	// Optional Telegram mirror of the email alert
	TelegramToken  string `envconfig:"TELEGRAM_TOKEN"`
	TelegramChatID int64  `envconfig:"TELEGRAM_CHAT_ID"`
}

// Load reads configuration from environment variables and .env file (if present).
func Load() (*AppConfig, error) {
	// Attempt to load .env file. Errors are ignored if the file doesn't exist.
	// godotenv.Load will not override existing env variables.
	_ = godotenv.Load()

	return fromEnv()
}

func fromEnv() (*AppConfig, error) {
	cfg := &AppConfig{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("invalid environment: %w", err)
	}

	if cfg.Latitude < -90 || cfg.Latitude > 90 {
		return nil, fmt.Errorf("MY_LAT %d out of range [-90, 90]", cfg.Latitude)
	}
	if cfg.Longitude < -180 || cfg.Longitude > 180 {
		return nil, fmt.Errorf("MY_LNG %d out of range [-180, 180]", cfg.Longitude)
	}
	if strings.TrimSpace(cfg.Email) == "" {
		return nil, fmt.Errorf("MY_EMAIL is not set")
	}
	if cfg.EmailPassword == "" {
		return nil, fmt.Errorf("MY_EMAIL_PASSWORD is not set")
	}
	if cfg.TelegramToken != "" && cfg.TelegramChatID == 0 {
		return nil, ErrMissingTelegramChat
	}

	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	cfg.Environment = strings.ToLower(strings.TrimSpace(cfg.Environment))

	return cfg, nil
}

// Observer returns the fixed coordinate the program watches from.
func (c *AppConfig) Observer() observer.Coordinate {
	return observer.Coordinate{Latitude: c.Latitude, Longitude: c.Longitude}
}

// TelegramEnabled reports whether the Telegram mirror is configured.
func (c *AppConfig) TelegramEnabled() bool {
	return c.TelegramToken != ""
}

// String never includes secrets, so the config is safe to log.
func (c *AppConfig) String() string {
	return fmt.Sprintf("observer=%s email=%s password=[redacted] schedule=%q log_level=%s env=%s metrics_addr=%q telegram=%t",
		c.Observer(), c.Email, c.CheckSchedule, c.LogLevel, c.Environment, c.MetricsAddr, c.TelegramEnabled())
}
