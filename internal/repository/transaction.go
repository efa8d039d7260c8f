package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Dan9191/finance-dashboard/internal/models"
)

// CreateTransaction stores a transaction and applies it to the balances of
// its source and destination accounts in a single database transaction.
// Every balance change is written to balance_history.
func (r *Repository) CreateTransaction(ctx context.Context, t *models.Transaction) error {
	dbTx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer dbTx.Rollback()

	query := `
		INSERT INTO finance.transactions (type, amount, description, date, from_account_id, to_account_id,
			user_id, created_at)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7, CURRENT_TIMESTAMP)
		RETURNING id, created_at`
	err = dbTx.QueryRowContext(ctx, query, t.Type, t.Amount, t.Description, t.Date,
		t.FromAccountID, t.ToAccountID, t.UserID).
		Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}

	if t.FromAccountID != nil {
		if err := applyBalance(ctx, dbTx, *t.FromAccountID, t, true); err != nil {
			return err
		}
	}
	if t.ToAccountID != nil {
		if err := applyBalance(ctx, dbTx, *t.ToAccountID, t, false); err != nil {
			return err
		}
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func applyBalance(ctx context.Context, dbTx *sql.Tx, accountID int64, t *models.Transaction, outgoing bool) error {
	account := models.Account{ID: accountID}
	err := dbTx.QueryRowContext(ctx,
		`SELECT type, balance FROM finance.accounts WHERE id = $1 FOR UPDATE`, accountID).
		Scan(&account.Type, &account.Balance)
	if err == sql.ErrNoRows {
		return fmt.Errorf("account %d: %w", accountID, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to lock account %d: %w", accountID, err)
	}

	newBalance := account.BalanceAfter(t.Amount, outgoing)
	_, err = dbTx.ExecContext(ctx,
		`UPDATE finance.accounts SET balance = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`,
		newBalance, accountID)
	if err != nil {
		return fmt.Errorf("failed to update balance of account %d: %w", accountID, err)
	}

	_, err = dbTx.ExecContext(ctx, `
		INSERT INTO finance.balance_history (account_id, previous_balance, new_balance, change, reason,
			transaction_id, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, CURRENT_TIMESTAMP)`,
		accountID, account.Balance, newBalance, newBalance-account.Balance, string(t.Type), t.ID, t.UserID)
	if err != nil {
		return fmt.Errorf("failed to record balance history: %w", err)
	}
	return nil
}

// ListTransactions returns transactions dated within [from, to], newest first
func (r *Repository) ListTransactions(ctx context.Context, from, to time.Time) ([]models.Transaction, error) {
	query := `
		SELECT id, type, amount, COALESCE(description, ''), date, from_account_id, to_account_id,
			user_id, created_at
		FROM finance.transactions
		WHERE date >= $1 AND date <= $2
		ORDER BY date DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	transactions := make([]models.Transaction, 0)
	for rows.Next() {
		var (
			t        models.Transaction
			fromAcct sql.NullInt64
			toAcct   sql.NullInt64
		)
		err := rows.Scan(&t.ID, &t.Type, &t.Amount, &t.Description, &t.Date, &fromAcct, &toAcct,
			&t.UserID, &t.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		if fromAcct.Valid {
			t.FromAccountID = &fromAcct.Int64
		}
		if toAcct.Valid {
			t.ToAccountID = &toAcct.Int64
		}
		transactions = append(transactions, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return transactions, nil
}
