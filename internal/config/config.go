package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port      string
	DBConn    string
	LogLevel  string
	JWTSecret string
	RedisAddr string

	BanguatURL   string
	CronSchedule string

	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	SenderEmail  string
	AlertEmail   string

	TelegramToken  string
	TelegramChatID int64

	CashFlowDefaultDays    int
	CashFlowMaxDays        int
	CashFlowHistoryDays    int
	CashFlowAllOccurrences bool
	AlertDebounce          time.Duration
}

// NewConfig loads configuration from environment variables. A .env file in
// the working directory is read first when present.
func NewConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:         getEnv("PORT", "8080"),
		DBConn:       getEnv("DB_CONN", "host=localhost port=5436 user=test password=test dbname=finance sslmode=disable"),
		LogLevel:     getEnv("LOG_LEVEL", "INFO"),
		JWTSecret:    getEnv("JWT_SECRET", ""),
		RedisAddr:    getEnv("REDIS_ADDR", ""),
		BanguatURL:   getEnv("BANGUAT_URL", "https://www.banguat.gob.gt/variables/ws/TipoCambio.asmx"),
		CronSchedule: getEnv("CRON_SCHEDULE", "0 7 * * *"),
		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     getEnv("SMTP_PORT", "587"),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		SenderEmail:  getEnv("SENDER_EMAIL", ""),
		AlertEmail:   getEnv("ALERT_EMAIL", ""),

		TelegramToken: getEnv("TELEGRAM_TOKEN", ""),
	}

	var err error
	if cfg.TelegramChatID, err = strconv.ParseInt(getEnv("TELEGRAM_CHAT_ID", "0"), 10, 64); err != nil {
		return nil, fmt.Errorf("TELEGRAM_CHAT_ID: %w", err)
	}
	if cfg.CashFlowDefaultDays, err = strconv.Atoi(getEnv("CASHFLOW_DEFAULT_DAYS", "30")); err != nil {
		return nil, fmt.Errorf("CASHFLOW_DEFAULT_DAYS: %w", err)
	}
	if cfg.CashFlowMaxDays, err = strconv.Atoi(getEnv("CASHFLOW_MAX_DAYS", "365")); err != nil {
		return nil, fmt.Errorf("CASHFLOW_MAX_DAYS: %w", err)
	}
	if cfg.CashFlowHistoryDays, err = strconv.Atoi(getEnv("CASHFLOW_HISTORY_DAYS", "90")); err != nil {
		return nil, fmt.Errorf("CASHFLOW_HISTORY_DAYS: %w", err)
	}
	if cfg.CashFlowAllOccurrences, err = strconv.ParseBool(getEnv("CASHFLOW_ALL_OCCURRENCES", "false")); err != nil {
		return nil, fmt.Errorf("CASHFLOW_ALL_OCCURRENCES: %w", err)
	}
	if cfg.AlertDebounce, err = time.ParseDuration(getEnv("ALERT_DEBOUNCE", "10s")); err != nil {
		return nil, fmt.Errorf("ALERT_DEBOUNCE: %w", err)
	}

	if cfg.DBConn == "" {
		return nil, fmt.Errorf("DB_CONN is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.CashFlowDefaultDays <= 0 || cfg.CashFlowDefaultDays > cfg.CashFlowMaxDays {
		return nil, fmt.Errorf("CASHFLOW_DEFAULT_DAYS must be between 1 and %d", cfg.CashFlowMaxDays)
	}
	if cfg.CashFlowHistoryDays <= 0 {
		return nil, fmt.Errorf("CASHFLOW_HISTORY_DAYS must be positive")
	}

	return cfg, nil
}

// EmailEnabled reports whether SMTP alert delivery is configured
func (c *Config) EmailEnabled() bool {
	return c.SMTPHost != "" && c.AlertEmail != ""
}

// TelegramEnabled reports whether Telegram alert delivery is configured
func (c *Config) TelegramEnabled() bool {
	return c.TelegramToken != "" && c.TelegramChatID != 0
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}
