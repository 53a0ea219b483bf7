package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	BackendURL      string
	BackendIdentity string
	BackendPassword string
	Environment     string
	LogLevel        string

	TelegramToken  string
	TelegramChatID int64

	// Cron expression for posting the week grid to the chat.
	WeekReportCron string

	RetryBaseDelay time.Duration
	DebounceWindow time.Duration
	ClaimTTL       time.Duration
	ReaperInterval time.Duration
}

func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		BackendURL:      os.Getenv("BACKEND_URL"),
		BackendIdentity: os.Getenv("BACKEND_IDENTITY"),
		BackendPassword: os.Getenv("BACKEND_PASSWORD"),
		Environment:     os.Getenv("ENV"),
		LogLevel:        os.Getenv("LOG_LEVEL"),
		TelegramToken:   os.Getenv("TELEGRAM_TOKEN"),
		WeekReportCron:  os.Getenv("WEEK_REPORT_CRON"),
	}

	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.WeekReportCron == "" {
		cfg.WeekReportCron = "0 7 * * 1-5" // weekday mornings
	}

	if cfg.BackendURL == "" {
		return nil, fmt.Errorf("BACKEND_URL is required but not set")
	}
	if cfg.BackendIdentity == "" {
		return nil, fmt.Errorf("BACKEND_IDENTITY is required but not set")
	}
	if cfg.BackendPassword == "" {
		return nil, fmt.Errorf("BACKEND_PASSWORD is required but not set")
	}

	if chat := os.Getenv("TELEGRAM_CHAT_ID"); chat != "" {
		id, err := strconv.ParseInt(chat, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("TELEGRAM_CHAT_ID must be numeric: %w", err)
		}
		cfg.TelegramChatID = id
	}

	var err error
	if cfg.RetryBaseDelay, err = durationEnv("RETRY_BASE_DELAY", 500*time.Millisecond); err != nil {
		return nil, err
	}
	if cfg.DebounceWindow, err = durationEnv("DEBOUNCE_WINDOW", 250*time.Millisecond); err != nil {
		return nil, err
	}
	if cfg.ClaimTTL, err = durationEnv("CLAIM_TTL", 15*time.Minute); err != nil {
		return nil, err
	}
	if cfg.ReaperInterval, err = durationEnv("REAPER_INTERVAL", 5*time.Minute); err != nil {
		return nil, err
	}

	return cfg, nil
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration like 500ms or 5m: %w", key, err)
	}
	return d, nil
}
