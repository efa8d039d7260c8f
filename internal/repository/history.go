package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Dan9191/finance-dashboard/internal/models"
)

// AdjustBalance sets the balance of an active account and records the change
// in balance_history with the given notes.
func (r *Repository) AdjustBalance(ctx context.Context, accountID, userID int64, balance float64, notes string) (*models.BalanceHistory, error) {
	dbTx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer dbTx.Rollback()

	entry := &models.BalanceHistory{
		AccountID:  accountID,
		NewBalance: balance,
		Reason:     models.BalanceAdjustment,
		Notes:      notes,
		UserID:     &userID,
	}
	err = dbTx.QueryRowContext(ctx,
		`SELECT balance FROM finance.accounts WHERE id = $1 AND is_active = TRUE FOR UPDATE`, accountID).
		Scan(&entry.PreviousBalance)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("account %d: %w", accountID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock account %d: %w", accountID, err)
	}
	entry.Change = balance - entry.PreviousBalance

	_, err = dbTx.ExecContext(ctx,
		`UPDATE finance.accounts SET balance = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`,
		balance, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to update balance of account %d: %w", accountID, err)
	}

	err = dbTx.QueryRowContext(ctx, `
		INSERT INTO finance.balance_history (account_id, previous_balance, new_balance, change, reason,
			notes, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, CURRENT_TIMESTAMP)
		RETURNING id, created_at`,
		accountID, entry.PreviousBalance, balance, entry.Change, entry.Reason, notes, userID).
		Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to record balance history: %w", err)
	}

	if err := dbTx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return entry, nil
}

// ListBalanceHistory returns the latest balance changes, newest first.
// A zero accountID lists every account.
func (r *Repository) ListBalanceHistory(ctx context.Context, accountID int64, limit int) ([]models.BalanceHistory, error) {
	query := `
		SELECT h.id, h.account_id, a.name, a.currency, h.previous_balance, h.new_balance, h.change,
			h.reason, COALESCE(h.notes, ''), h.transaction_id, h.user_id, h.created_at
		FROM finance.balance_history h
		JOIN finance.accounts a ON a.id = h.account_id
		WHERE $1::bigint = 0 OR h.account_id = $1
		ORDER BY h.created_at DESC, h.id DESC
		LIMIT $2`
	rows, err := r.db.QueryContext(ctx, query, accountID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list balance history: %w", err)
	}
	defer rows.Close()

	history := make([]models.BalanceHistory, 0)
	for rows.Next() {
		var (
			h    models.BalanceHistory
			txID sql.NullInt64
			user sql.NullInt64
		)
		err := rows.Scan(&h.ID, &h.AccountID, &h.AccountName, &h.Currency, &h.PreviousBalance,
			&h.NewBalance, &h.Change, &h.Reason, &h.Notes, &txID, &user, &h.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan balance history: %w", err)
		}
		if txID.Valid {
			h.TransactionID = &txID.Int64
		}
		if user.Valid {
			h.UserID = &user.Int64
		}
		history = append(history, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list balance history: %w", err)
	}
	return history, nil
}
