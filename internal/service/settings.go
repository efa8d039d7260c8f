package service

import (
	"context"

	"github.com/Dan9191/finance-dashboard/internal/models"
)

// UpdateSettingsInput is the payload for changing the dashboard settings.
// ExchangeRate, when set, replaces the stored USD to GTQ rate until the
// next scheduled refresh.
type UpdateSettingsInput struct {
	DisplayCurrency    string   `json:"display_currency" validate:"required,oneof=GTQ USD"`
	AlertDaysBefore    int      `json:"alert_days_before" validate:"min=0,max=31"`
	HighUsageThreshold float64  `json:"high_usage_threshold" validate:"gt=0,lte=100"`
	ExchangeRate       *float64 `json:"exchange_rate" validate:"omitempty,gt=0"`
}

// Settings returns the settings and the USD to GTQ rate currently applied
func (s *Service) Settings(ctx context.Context) (*models.SettingsView, error) {
	settings, err := s.repo.GetSettings(ctx)
	if err != nil {
		return nil, err
	}
	conv, err := s.converter(ctx)
	if err != nil {
		return nil, err
	}
	return &models.SettingsView{Settings: settings, ExchangeRate: conv.usdRate.InexactFloat64()}, nil
}

// UpdateSettings stores new settings and, optionally, a manual exchange rate
func (s *Service) UpdateSettings(ctx context.Context, in UpdateSettingsInput) (*models.SettingsView, error) {
	if err := s.check(in); err != nil {
		return nil, err
	}

	settings := models.Settings{
		DisplayCurrency:    in.DisplayCurrency,
		AlertDaysBefore:    in.AlertDaysBefore,
		HighUsageThreshold: in.HighUsageThreshold,
	}
	if err := s.repo.UpdateSettings(ctx, settings); err != nil {
		return nil, err
	}
	if in.ExchangeRate != nil {
		err := s.repo.UpsertExchangeRate(ctx, &models.ExchangeRate{
			FromCurrency: currencyUSD,
			ToCurrency:   currencyGTQ,
			Rate:         *in.ExchangeRate,
		})
		if err != nil {
			return nil, err
		}
	}

	s.log.Infof("Settings updated: currency=%s", settings.DisplayCurrency)
	return s.Settings(ctx)
}
