package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Dan9191/finance-dashboard/internal/models"
)

// CreateAlert stores a new alert
func (r *Repository) CreateAlert(ctx context.Context, alert *models.Alert) error {
	data, err := json.Marshal(alert.Data)
	if err != nil {
		return fmt.Errorf("failed to encode alert data: %w", err)
	}
	query := `
		INSERT INTO finance.alerts (user_id, type, message, account_id, data, is_dismissed, created_at)
		VALUES ($1, $2, $3, $4, $5, FALSE, CURRENT_TIMESTAMP)
		RETURNING id, created_at`
	err = r.db.QueryRowContext(ctx, query, alert.UserID, alert.Type, alert.Message, alert.AccountID, data).
		Scan(&alert.ID, &alert.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create alert: %w", err)
	}
	return nil
}

// ListAlertsSince returns the user's alerts created at or after since,
// dismissed ones included
func (r *Repository) ListAlertsSince(ctx context.Context, userID int64, since time.Time) ([]models.Alert, error) {
	return r.queryAlerts(ctx, `
		SELECT id, user_id, type, message, account_id, data, is_dismissed, created_at
		FROM finance.alerts
		WHERE user_id = $1 AND created_at >= $2
		ORDER BY created_at DESC`, userID, since)
}

// ListActiveAlerts returns the user's alerts that were not dismissed
func (r *Repository) ListActiveAlerts(ctx context.Context, userID int64) ([]models.Alert, error) {
	return r.queryAlerts(ctx, `
		SELECT id, user_id, type, message, account_id, data, is_dismissed, created_at
		FROM finance.alerts
		WHERE user_id = $1 AND is_dismissed = FALSE
		ORDER BY created_at DESC`, userID)
}

// CountActiveAlerts returns how many alerts the user has not dismissed
func (r *Repository) CountActiveAlerts(ctx context.Context, userID int64) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM finance.alerts WHERE user_id = $1 AND is_dismissed = FALSE`, userID).
		Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count alerts: %w", err)
	}
	return count, nil
}

// DismissAlert marks one of the user's alerts as dismissed
func (r *Repository) DismissAlert(ctx context.Context, userID, alertID int64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE finance.alerts SET is_dismissed = TRUE WHERE id = $1 AND user_id = $2`, alertID, userID)
	if err != nil {
		return fmt.Errorf("failed to dismiss alert: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to dismiss alert: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("alert %d: %w", alertID, ErrNotFound)
	}
	return nil
}

func (r *Repository) queryAlerts(ctx context.Context, query string, args ...any) ([]models.Alert, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list alerts: %w", err)
	}
	defer rows.Close()

	alerts := make([]models.Alert, 0)
	for rows.Next() {
		var (
			a         models.Alert
			accountID sql.NullInt64
			data      []byte
		)
		if err := rows.Scan(&a.ID, &a.UserID, &a.Type, &a.Message, &accountID, &data, &a.IsDismissed, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan alert: %w", err)
		}
		if accountID.Valid {
			a.AccountID = &accountID.Int64
		}
		if len(data) > 0 {
			if err := json.Unmarshal(data, &a.Data); err != nil {
				return nil, fmt.Errorf("failed to decode alert %d data: %w", a.ID, err)
			}
		}
		alerts = append(alerts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list alerts: %w", err)
	}
	return alerts, nil
}
