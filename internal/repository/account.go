package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Dan9191/finance-dashboard/internal/models"
)

const accountColumns = `id, name, bank_name, type, currency, balance, credit_limit,
	payment_day, cutoff_day, is_active, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (*models.Account, error) {
	var (
		a           models.Account
		bankName    sql.NullString
		creditLimit sql.NullFloat64
		paymentDay  sql.NullInt64
		cutoffDay   sql.NullInt64
	)
	err := row.Scan(&a.ID, &a.Name, &bankName, &a.Type, &a.Currency, &a.Balance, &creditLimit,
		&paymentDay, &cutoffDay, &a.IsActive, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	a.BankName = bankName.String
	if creditLimit.Valid {
		a.CreditLimit = &creditLimit.Float64
	}
	a.PaymentDay = nullableInt(paymentDay)
	a.CutoffDay = nullableInt(cutoffDay)
	return &a, nil
}

func nullableInt(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int64)
	return &i
}

// CreateAccount creates a new account in the database
func (r *Repository) CreateAccount(ctx context.Context, account *models.Account) error {
	query := `
		INSERT INTO finance.accounts (name, bank_name, type, currency, balance, credit_limit,
			payment_day, cutoff_day, is_active, created_at, updated_at)
		VALUES ($1, NULLIF($2, ''), $3, $4, $5, $6, $7, $8, TRUE, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING id, is_active, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query, account.Name, account.BankName, account.Type, account.Currency,
		account.Balance, account.CreditLimit, account.PaymentDay, account.CutoffDay).
		Scan(&account.ID, &account.IsActive, &account.CreatedAt, &account.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

// GetAccount retrieves an account by id
func (r *Repository) GetAccount(ctx context.Context, id int64) (*models.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM finance.accounts WHERE id = $1`
	account, err := scanAccount(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("account %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return account, nil
}

// ListActiveAccounts returns all active accounts ordered by type and name
func (r *Repository) ListActiveAccounts(ctx context.Context) ([]models.Account, error) {
	query := `SELECT ` + accountColumns + `
		FROM finance.accounts
		WHERE is_active = TRUE
		ORDER BY type, name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	accounts := make([]models.Account, 0)
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

// UpdateAccount stores the editable fields of an active account. The balance
// is left alone; it changes through transactions and adjustments only.
func (r *Repository) UpdateAccount(ctx context.Context, account *models.Account) error {
	query := `
		UPDATE finance.accounts
		SET name = $1, bank_name = NULLIF($2, ''), currency = $3, credit_limit = $4,
			payment_day = $5, cutoff_day = $6, updated_at = CURRENT_TIMESTAMP
		WHERE id = $7 AND is_active = TRUE
		RETURNING updated_at`
	err := r.db.QueryRowContext(ctx, query, account.Name, account.BankName, account.Currency,
		account.CreditLimit, account.PaymentDay, account.CutoffDay, account.ID).
		Scan(&account.UpdatedAt)
	if err == sql.ErrNoRows {
		return fmt.Errorf("account %d: %w", account.ID, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to update account: %w", err)
	}
	return nil
}

// DeactivateAccount hides an account from listings and projections.
// Its transactions and balance history are kept.
func (r *Repository) DeactivateAccount(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE finance.accounts
		SET is_active = FALSE, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1 AND is_active = TRUE`, id)
	if err != nil {
		return fmt.Errorf("failed to deactivate account: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to deactivate account: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("account %d: %w", id, ErrNotFound)
	}
	return nil
}
