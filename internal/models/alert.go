package models

import "time"

// AlertType enumerates generated alert kinds
type AlertType string

const (
	AlertPaymentDue AlertType = "PAYMENT_DUE"
	AlertHighUsage  AlertType = "HIGH_USAGE"
	AlertLowBalance AlertType = "LOW_BALANCE"
	AlertExcessDebt AlertType = "EXCESS_DEBT"
)

// Alert is a threshold notification shown on the dashboard
type Alert struct {
	ID          int64          `json:"id"`
	UserID      int64          `json:"user_id"`
	Type        AlertType      `json:"type"`
	Message     string         `json:"message"`
	AccountID   *int64         `json:"account_id,omitempty"`
	Data        map[string]any `json:"data,omitempty"`
	IsDismissed bool           `json:"is_dismissed"`
	CreatedAt   time.Time      `json:"created_at"`
}
