package config

import (
	"os"
	"testing"
	"time"
)

func TestNewConfig_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	cfg, err := NewConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != "8080" || cfg.CashFlowDefaultDays != 30 || cfg.CashFlowHistoryDays != 90 {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if cfg.AlertDebounce != 10*time.Second || cfg.CashFlowAllOccurrences {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if cfg.EmailEnabled() || cfg.TelegramEnabled() {
		t.Error("notifications should be disabled by default")
	}
}

func TestNewConfig_RequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	os.Unsetenv("JWT_SECRET")

	if _, err := NewConfig(); err == nil {
		t.Fatal("expected an error without JWT_SECRET")
	}
}

func TestNewConfig_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("CASHFLOW_DEFAULT_DAYS", "60")
	t.Setenv("CASHFLOW_ALL_OCCURRENCES", "true")
	t.Setenv("TELEGRAM_TOKEN", "123:abc")
	t.Setenv("TELEGRAM_CHAT_ID", "-1001")

	cfg, err := NewConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.CashFlowDefaultDays != 60 || !cfg.CashFlowAllOccurrences {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if !cfg.TelegramEnabled() || cfg.TelegramChatID != -1001 {
		t.Errorf("telegram not configured: %+v", cfg)
	}
}

func TestNewConfig_Invalid(t *testing.T) {
	cases := map[string]string{
		"JWT_SECRET":            "",
		"CASHFLOW_DEFAULT_DAYS": "0",
		"CASHFLOW_MAX_DAYS":     "abc",
		"ALERT_DEBOUNCE":        "soon",
		"TELEGRAM_CHAT_ID":      "chat",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv("JWT_SECRET", "test-secret")
			t.Setenv(key, value)
			if _, err := NewConfig(); err == nil {
				t.Errorf("expected error for %s=%q", key, value)
			}
		})
	}
}
