package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Dan9191/finance-dashboard/internal/models"
)

// GetSettings returns the stored settings, or the defaults when none exist
func (r *Repository) GetSettings(ctx context.Context) (models.Settings, error) {
	s := models.DefaultSettings()
	err := r.db.QueryRowContext(ctx, `
		SELECT display_currency, alert_days_before, high_usage_threshold
		FROM finance.settings
		ORDER BY id
		LIMIT 1`).
		Scan(&s.DisplayCurrency, &s.AlertDaysBefore, &s.HighUsageThreshold)
	if err == sql.ErrNoRows {
		return models.DefaultSettings(), nil
	}
	if err != nil {
		return s, fmt.Errorf("failed to get settings: %w", err)
	}
	return s, nil
}

// GetExchangeRate returns the stored rate for a currency pair.
// ErrNotFound is returned when the pair has never been stored.
func (r *Repository) GetExchangeRate(ctx context.Context, from, to string) (*models.ExchangeRate, error) {
	rate := &models.ExchangeRate{}
	err := r.db.QueryRowContext(ctx, `
		SELECT from_currency, to_currency, rate, updated_at
		FROM finance.exchange_rates
		WHERE from_currency = $1 AND to_currency = $2`, from, to).
		Scan(&rate.FromCurrency, &rate.ToCurrency, &rate.Rate, &rate.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("exchange rate %s/%s: %w", from, to, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get exchange rate: %w", err)
	}
	return rate, nil
}

// UpsertExchangeRate stores the rate for a currency pair
func (r *Repository) UpsertExchangeRate(ctx context.Context, rate *models.ExchangeRate) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO finance.exchange_rates (from_currency, to_currency, rate, updated_at)
		VALUES ($1, $2, $3, CURRENT_TIMESTAMP)
		ON CONFLICT (from_currency, to_currency)
		DO UPDATE SET rate = EXCLUDED.rate, updated_at = EXCLUDED.updated_at
		RETURNING updated_at`, rate.FromCurrency, rate.ToCurrency, rate.Rate).
		Scan(&rate.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to store exchange rate: %w", err)
	}
	return nil
}

// UpdateSettings replaces the stored settings, creating the row on first use
func (r *Repository) UpdateSettings(ctx context.Context, s models.Settings) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE finance.settings
		SET display_currency = $1, alert_days_before = $2, high_usage_threshold = $3
		WHERE id = (SELECT MIN(id) FROM finance.settings)`,
		s.DisplayCurrency, s.AlertDaysBefore, s.HighUsageThreshold)
	if err != nil {
		return fmt.Errorf("failed to update settings: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update settings: %w", err)
	}
	if n > 0 {
		return nil
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO finance.settings (display_currency, alert_days_before, high_usage_threshold)
		VALUES ($1, $2, $3)`,
		s.DisplayCurrency, s.AlertDaysBefore, s.HighUsageThreshold)
	if err != nil {
		return fmt.Errorf("failed to create settings: %w", err)
	}
	return nil
}
