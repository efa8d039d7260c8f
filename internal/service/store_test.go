package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/Dan9191/finance-dashboard/internal/config"
	"github.com/Dan9191/finance-dashboard/internal/models"
	"github.com/Dan9191/finance-dashboard/internal/notify"
	"github.com/Dan9191/finance-dashboard/internal/repository"
	"github.com/sirupsen/logrus"
)

// memStore is an in-memory Store for service tests
type memStore struct {
	users        []models.User
	accounts     []models.Account
	transactions []models.Transaction
	alerts       []models.Alert
	settings     models.Settings
	rate         *models.ExchangeRate
	history      []models.BalanceHistory

	// findErr makes FindUserByEmail fail like an unreachable database
	findErr error

	historyFrom, historyTo time.Time
}

func newMemStore() *memStore {
	return &memStore{settings: models.DefaultSettings()}
}

func (m *memStore) CreateUser(_ context.Context, user *models.User) error {
	for _, u := range m.users {
		if u.Email == user.Email {
			return fmt.Errorf("user %s: %w", user.Email, repository.ErrDuplicate)
		}
	}
	user.ID = int64(len(m.users) + 1)
	m.users = append(m.users, *user)
	return nil
}

func (m *memStore) FindUserByEmail(_ context.Context, email string) (*models.User, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	for _, u := range m.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memStore) ListUserIDs(context.Context) ([]int64, error) {
	var ids []int64
	for _, u := range m.users {
		ids = append(ids, u.ID)
	}
	return ids, nil
}

func (m *memStore) CreateAccount(_ context.Context, account *models.Account) error {
	account.ID = int64(len(m.accounts) + 1)
	account.IsActive = true
	m.accounts = append(m.accounts, *account)
	return nil
}

func (m *memStore) GetAccount(_ context.Context, id int64) (*models.Account, error) {
	for _, a := range m.accounts {
		if a.ID == id {
			return &a, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memStore) ListActiveAccounts(context.Context) ([]models.Account, error) {
	var out []models.Account
	for _, a := range m.accounts {
		if a.IsActive {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *memStore) account(id int64) *models.Account {
	for i := range m.accounts {
		if m.accounts[i].ID == id && m.accounts[i].IsActive {
			return &m.accounts[i]
		}
	}
	return nil
}

func (m *memStore) UpdateAccount(_ context.Context, account *models.Account) error {
	a := m.account(account.ID)
	if a == nil {
		return repository.ErrNotFound
	}
	*a = *account
	return nil
}

func (m *memStore) DeactivateAccount(_ context.Context, id int64) error {
	a := m.account(id)
	if a == nil {
		return repository.ErrNotFound
	}
	a.IsActive = false
	return nil
}

func (m *memStore) AdjustBalance(_ context.Context, accountID, userID int64, balance float64, notes string) (*models.BalanceHistory, error) {
	a := m.account(accountID)
	if a == nil {
		return nil, repository.ErrNotFound
	}
	entry := models.BalanceHistory{
		ID:              int64(len(m.history) + 1),
		AccountID:       accountID,
		PreviousBalance: a.Balance,
		NewBalance:      balance,
		Change:          balance - a.Balance,
		Reason:          models.BalanceAdjustment,
		Notes:           notes,
		UserID:          &userID,
	}
	a.Balance = balance
	m.history = append(m.history, entry)
	return &entry, nil
}

func (m *memStore) ListBalanceHistory(_ context.Context, accountID int64, limit int) ([]models.BalanceHistory, error) {
	var out []models.BalanceHistory
	for i := len(m.history) - 1; i >= 0 && len(out) < limit; i-- {
		if accountID == 0 || m.history[i].AccountID == accountID {
			out = append(out, m.history[i])
		}
	}
	return out, nil
}

func (m *memStore) CreateTransaction(_ context.Context, t *models.Transaction) error {
	t.ID = int64(len(m.transactions) + 1)
	m.transactions = append(m.transactions, *t)
	return nil
}

func (m *memStore) ListTransactions(_ context.Context, from, to time.Time) ([]models.Transaction, error) {
	m.historyFrom, m.historyTo = from, to
	var out []models.Transaction
	for _, t := range m.transactions {
		if !t.Date.Before(from) && !t.Date.After(to) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *memStore) CreateAlert(_ context.Context, alert *models.Alert) error {
	alert.ID = int64(len(m.alerts) + 1)
	m.alerts = append(m.alerts, *alert)
	return nil
}

func (m *memStore) ListAlertsSince(_ context.Context, userID int64, since time.Time) ([]models.Alert, error) {
	var out []models.Alert
	for _, a := range m.alerts {
		if a.UserID == userID && !a.CreatedAt.Before(since) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *memStore) ListActiveAlerts(_ context.Context, userID int64) ([]models.Alert, error) {
	var out []models.Alert
	for _, a := range m.alerts {
		if a.UserID == userID && !a.IsDismissed {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *memStore) CountActiveAlerts(ctx context.Context, userID int64) (int, error) {
	alerts, _ := m.ListActiveAlerts(ctx, userID)
	return len(alerts), nil
}

func (m *memStore) DismissAlert(_ context.Context, userID, alertID int64) error {
	for i := range m.alerts {
		if m.alerts[i].ID == alertID && m.alerts[i].UserID == userID {
			m.alerts[i].IsDismissed = true
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *memStore) GetSettings(context.Context) (models.Settings, error) {
	return m.settings, nil
}

func (m *memStore) UpdateSettings(_ context.Context, settings models.Settings) error {
	m.settings = settings
	return nil
}

func (m *memStore) GetExchangeRate(context.Context, string, string) (*models.ExchangeRate, error) {
	if m.rate == nil {
		return nil, repository.ErrNotFound
	}
	return m.rate, nil
}

func (m *memStore) UpsertExchangeRate(_ context.Context, rate *models.ExchangeRate) error {
	m.rate = rate
	return nil
}

type fixedRate float64

func (r fixedRate) ReferenceRate(context.Context) (float64, error) { return float64(r), nil }

type recordingNotifier struct {
	alerts []models.Alert
}

func (r *recordingNotifier) Notify(_ context.Context, alert models.Alert) error {
	r.alerts = append(r.alerts, alert)
	return nil
}

var testNow = time.Date(2026, 10, 17, 10, 30, 0, 0, time.UTC)

func newTestService(store *memStore, rates RateProvider, notifier notify.Notifier) *Service {
	log := logrus.New()
	log.SetOutput(io.Discard)
	cfg := &config.Config{
		JWTSecret:           "secret",
		CashFlowDefaultDays: 30,
		CashFlowMaxDays:     365,
		CashFlowHistoryDays: 90,
	}
	svc := NewService(store, log, cfg, rates, notifier)
	svc.now = func() time.Time { return testNow }
	return svc
}
