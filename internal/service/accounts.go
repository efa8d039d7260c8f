package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Dan9191/finance-dashboard/internal/models"
	"github.com/Dan9191/finance-dashboard/internal/repository"
	"github.com/sirupsen/logrus"
)

// CreateAccountInput is the payload for a new account
type CreateAccountInput struct {
	Name        string             `json:"name" validate:"required,max=100"`
	BankName    string             `json:"bank_name" validate:"max=100"`
	Type        models.AccountType `json:"type" validate:"required,oneof=BANK CREDIT_CARD CASH WALLET"`
	Currency    string             `json:"currency" validate:"required,oneof=GTQ USD"`
	Balance     float64            `json:"balance"`
	CreditLimit *float64           `json:"credit_limit" validate:"omitempty,gt=0"`
	PaymentDay  *int               `json:"payment_day" validate:"omitempty,min=1,max=31"`
	CutoffDay   *int               `json:"cutoff_day" validate:"omitempty,min=1,max=31"`
}

// CreateAccount creates a new account
func (s *Service) CreateAccount(ctx context.Context, in CreateAccountInput) (*models.Account, error) {
	if err := s.check(in); err != nil {
		return nil, err
	}

	account := &models.Account{
		Name:     in.Name,
		BankName: in.BankName,
		Type:     in.Type,
		Currency: in.Currency,
		Balance:  in.Balance,
	}
	// payment schedule only applies to credit cards
	if account.IsCreditCard() {
		account.CreditLimit = in.CreditLimit
		account.PaymentDay = in.PaymentDay
		account.CutoffDay = in.CutoffDay
	}

	if err := s.repo.CreateAccount(ctx, account); err != nil {
		return nil, err
	}

	s.log.Infof("Account created: %s (%s, %s)", account.Name, account.Type, account.Currency)
	return account, nil
}

// GetAccount returns one account
func (s *Service) GetAccount(ctx context.Context, id int64) (*models.Account, error) {
	return s.repo.GetAccount(ctx, id)
}

// ListAccounts returns the active accounts
func (s *Service) ListAccounts(ctx context.Context) ([]models.Account, error) {
	return s.repo.ListActiveAccounts(ctx)
}

// UpdateAccountInput is the payload for editing an account. Type and
// balance are not editable here.
type UpdateAccountInput struct {
	Name        string   `json:"name" validate:"required,max=100"`
	BankName    string   `json:"bank_name" validate:"max=100"`
	Currency    string   `json:"currency" validate:"required,oneof=GTQ USD"`
	CreditLimit *float64 `json:"credit_limit" validate:"omitempty,gt=0"`
	PaymentDay  *int     `json:"payment_day" validate:"omitempty,min=1,max=31"`
	CutoffDay   *int     `json:"cutoff_day" validate:"omitempty,min=1,max=31"`
}

// UpdateAccount edits an active account
func (s *Service) UpdateAccount(ctx context.Context, id int64, in UpdateAccountInput) (*models.Account, error) {
	if err := s.check(in); err != nil {
		return nil, err
	}
	account, err := s.repo.GetAccount(ctx, id)
	if err != nil {
		return nil, err
	}
	if !account.IsActive {
		return nil, fmt.Errorf("account %d: %w", id, repository.ErrNotFound)
	}

	account.Name = in.Name
	account.BankName = in.BankName
	account.Currency = in.Currency
	if account.IsCreditCard() {
		account.CreditLimit = in.CreditLimit
		account.PaymentDay = in.PaymentDay
		account.CutoffDay = in.CutoffDay
	}
	if err := s.repo.UpdateAccount(ctx, account); err != nil {
		return nil, err
	}

	s.log.Infof("Account updated: %d", id)
	return account, nil
}

// DeactivateAccount removes an account from listings, summaries and
// projections. Its history is kept.
func (s *Service) DeactivateAccount(ctx context.Context, id int64) error {
	if err := s.repo.DeactivateAccount(ctx, id); err != nil {
		return err
	}
	s.log.Infof("Account deactivated: %d", id)
	return nil
}

// AdjustBalanceInput is the payload for setting an account balance by hand
type AdjustBalanceInput struct {
	Balance *float64 `json:"balance" validate:"required"`
	Notes   string   `json:"notes" validate:"max=255"`
}

// AdjustBalance sets the balance of an account, e.g. after reconciling it
// with a bank statement, and returns the recorded history entry
func (s *Service) AdjustBalance(ctx context.Context, userID, accountID int64, in AdjustBalanceInput) (*models.BalanceHistory, error) {
	if err := s.check(in); err != nil {
		return nil, err
	}
	entry, err := s.repo.AdjustBalance(ctx, accountID, userID, *in.Balance, in.Notes)
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"account_id": accountID,
		"user_id":    userID,
		"change":     entry.Change,
	}).Info("Balance adjusted")
	return entry, nil
}

// historyLimit caps the balance history listing
const historyLimit = 100

// BalanceHistory returns the latest balance changes of one account, or of
// every account when accountID is zero
func (s *Service) BalanceHistory(ctx context.Context, accountID int64) ([]models.BalanceHistory, error) {
	return s.repo.ListBalanceHistory(ctx, accountID, historyLimit)
}

// CreateTransactionInput is the payload for a new transaction
type CreateTransactionInput struct {
	Type          models.TransactionType `json:"type" validate:"required,oneof=INGRESO EGRESO TRANSFERENCIA PAGO_TARJETA"`
	Amount        float64                `json:"amount" validate:"gt=0"`
	Description   string                 `json:"description" validate:"max=255"`
	Date          time.Time              `json:"date"`
	FromAccountID *int64                 `json:"from_account_id"`
	ToAccountID   *int64                 `json:"to_account_id"`
}

// CreateTransaction records a transaction and updates the affected balances
func (s *Service) CreateTransaction(ctx context.Context, userID int64, in CreateTransactionInput) (*models.Transaction, error) {
	if err := s.check(in); err != nil {
		return nil, err
	}
	if err := checkAccounts(in); err != nil {
		return nil, err
	}

	t := &models.Transaction{
		Type:          in.Type,
		Amount:        in.Amount,
		Description:   in.Description,
		Date:          in.Date,
		FromAccountID: in.FromAccountID,
		ToAccountID:   in.ToAccountID,
		UserID:        userID,
	}
	if t.Date.IsZero() {
		t.Date = s.now()
	}

	if err := s.repo.CreateTransaction(ctx, t); err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"transaction_id": t.ID,
		"type":           t.Type,
		"user_id":        userID,
	}).Info("Transaction created")
	return t, nil
}

func checkAccounts(in CreateTransactionInput) error {
	switch in.Type {
	case models.TxIncome:
		if in.ToAccountID == nil {
			return fmt.Errorf("%w: income requires a destination account", ErrValidation)
		}
	case models.TxExpense:
		if in.FromAccountID == nil {
			return fmt.Errorf("%w: expense requires a source account", ErrValidation)
		}
	case models.TxTransfer, models.TxCardPayment:
		if in.FromAccountID == nil || in.ToAccountID == nil {
			return fmt.Errorf("%w: %s requires source and destination accounts", ErrValidation, in.Type)
		}
		if *in.FromAccountID == *in.ToAccountID {
			return fmt.Errorf("%w: source and destination must differ", ErrValidation)
		}
	}
	return nil
}

// ListTransactions returns transactions dated within [from, to]
func (s *Service) ListTransactions(ctx context.Context, from, to time.Time) ([]models.Transaction, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("%w: range end before start", ErrValidation)
	}
	return s.repo.ListTransactions(ctx, from, to)
}
