package models

// Settings holds dashboard-wide thresholds and display preferences
type Settings struct {
	DisplayCurrency    string  `json:"display_currency"`
	AlertDaysBefore    int     `json:"alert_days_before"`
	HighUsageThreshold float64 `json:"high_usage_threshold"`
}

// DefaultSettings mirrors the values seeded on first use
func DefaultSettings() Settings {
	return Settings{
		DisplayCurrency:    "GTQ",
		AlertDaysBefore:    3,
		HighUsageThreshold: 80,
	}
}

// SettingsView is the settings together with the USD to GTQ rate in use
type SettingsView struct {
	Settings
	ExchangeRate float64 `json:"exchange_rate"`
}

// ExchangeRate is a conversion rate between two currencies
type ExchangeRate struct {
	FromCurrency string  `json:"from_currency"`
	ToCurrency   string  `json:"to_currency"`
	Rate         float64 `json:"rate"`
	UpdatedAt    string  `json:"updated_at"`
}

// DefaultUSDRate is the USD->GTQ rate used until a reference rate is stored
const DefaultUSDRate = 7.85
