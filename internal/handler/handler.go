package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/Dan9191/finance-dashboard/internal/middleware"
	"github.com/Dan9191/finance-dashboard/internal/models"
	"github.com/Dan9191/finance-dashboard/internal/repository"
	"github.com/Dan9191/finance-dashboard/internal/service"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// Service is the business logic the handlers call
type Service interface {
	Register(ctx context.Context, in service.RegisterInput) (*models.User, error)
	Login(ctx context.Context, email, password string) (string, error)

	CreateAccount(ctx context.Context, in service.CreateAccountInput) (*models.Account, error)
	GetAccount(ctx context.Context, id int64) (*models.Account, error)
	ListAccounts(ctx context.Context) ([]models.Account, error)
	UpdateAccount(ctx context.Context, id int64, in service.UpdateAccountInput) (*models.Account, error)
	DeactivateAccount(ctx context.Context, id int64) error
	AdjustBalance(ctx context.Context, userID, accountID int64, in service.AdjustBalanceInput) (*models.BalanceHistory, error)
	BalanceHistory(ctx context.Context, accountID int64) ([]models.BalanceHistory, error)

	CreateTransaction(ctx context.Context, userID int64, in service.CreateTransactionInput) (*models.Transaction, error)
	ListTransactions(ctx context.Context, from, to time.Time) ([]models.Transaction, error)

	Summary(ctx context.Context) (*models.BalanceSummary, error)
	CashFlow(ctx context.Context, days int) (*models.CashFlowReport, error)

	Settings(ctx context.Context) (*models.SettingsView, error)
	UpdateSettings(ctx context.Context, in service.UpdateSettingsInput) (*models.SettingsView, error)

	GenerateAlerts(ctx context.Context, userID int64) ([]models.Alert, error)
	ListAlerts(ctx context.Context, userID int64) ([]models.Alert, error)
	CountAlerts(ctx context.Context, userID int64) (int, error)
	DismissAlert(ctx context.Context, userID, alertID int64) error
}

type Handler struct {
	svc         Service
	log         *logrus.Logger
	defaultDays int
}

func NewHandler(svc Service, log *logrus.Logger, defaultDays int) *Handler {
	return &Handler{svc: svc, log: log, defaultDays: defaultDays}
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register handles user registration
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var in service.RegisterInput
	if !h.decode(w, r, &in) {
		return
	}
	user, err := h.svc.Register(r.Context(), in)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

// Login handles user authentication
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var in credentials
	if !h.decode(w, r, &in) {
		return
	}
	token, err := h.svc.Login(r.Context(), in.Email, in.Password)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

// CreateAccount handles account creation
func (h *Handler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var in service.CreateAccountInput
	if !h.decode(w, r, &in) {
		return
	}
	account, err := h.svc.CreateAccount(r.Context(), in)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, account)
}

// GetAccount returns one account
func (h *Handler) GetAccount(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	account, err := h.svc.GetAccount(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, account)
}

// ListAccounts returns the active accounts
func (h *Handler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.svc.ListAccounts(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, accounts)
}

// UpdateAccount edits an account
func (h *Handler) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	var in service.UpdateAccountInput
	if !h.decode(w, r, &in) {
		return
	}
	account, err := h.svc.UpdateAccount(r.Context(), id, in)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, account)
}

// DeleteAccount deactivates an account
func (h *Handler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	if err := h.svc.DeactivateAccount(r.Context(), id); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AdjustBalance sets an account balance by hand
func (h *Handler) AdjustBalance(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	var in service.AdjustBalanceInput
	if !h.decode(w, r, &in) {
		return
	}
	userID, _ := middleware.UserIDFromContext(r.Context())
	entry, err := h.svc.AdjustBalance(r.Context(), userID, id, in)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

// ListHistory returns the latest balance changes, optionally for ?account_id=
func (h *Handler) ListHistory(w http.ResponseWriter, r *http.Request) {
	var accountID int64
	if v := r.URL.Query().Get("account_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil || id <= 0 {
			http.Error(w, "invalid account_id", http.StatusBadRequest)
			return
		}
		accountID = id
	}
	history, err := h.svc.BalanceHistory(r.Context(), accountID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, history)
}

// GetSettings returns the dashboard settings and exchange rate
func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.svc.Settings(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

// UpdateSettings replaces the dashboard settings
func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var in service.UpdateSettingsInput
	if !h.decode(w, r, &in) {
		return
	}
	settings, err := h.svc.UpdateSettings(r.Context(), in)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

// CreateTransaction records a transaction for the authenticated user
func (h *Handler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	var in service.CreateTransactionInput
	if !h.decode(w, r, &in) {
		return
	}
	userID, _ := middleware.UserIDFromContext(r.Context())
	t, err := h.svc.CreateTransaction(r.Context(), userID, in)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

// ListTransactions returns transactions between ?from= and ?to= (YYYY-MM-DD),
// the last 30 days by default
func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	from, to := now.AddDate(0, 0, -30), now
	var err error
	if v := r.URL.Query().Get("from"); v != "" {
		if from, err = time.ParseInLocation(time.DateOnly, v, time.Local); err != nil {
			http.Error(w, "invalid from date", http.StatusBadRequest)
			return
		}
	}
	if v := r.URL.Query().Get("to"); v != "" {
		if to, err = time.ParseInLocation(time.DateOnly, v, time.Local); err != nil {
			http.Error(w, "invalid to date", http.StatusBadRequest)
			return
		}
		to = to.Add(24*time.Hour - time.Nanosecond)
	}

	transactions, err := h.svc.ListTransactions(r.Context(), from, to)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, transactions)
}

// Summary returns available funds against debt
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.svc.Summary(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

// fail maps service errors to status codes. Unexpected errors are logged
// and answered with a generic message.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrValidation), errors.Is(err, service.ErrInvalidHorizon):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, service.ErrInvalidCredentials):
		http.Error(w, err.Error(), http.StatusUnauthorized)
	case errors.Is(err, repository.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, repository.ErrDuplicate):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		h.log.WithFields(logrus.Fields{
			"module": "handler",
			"method": r.Method,
			"path":   r.URL.Path,
		}).Error(err.Error())
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
