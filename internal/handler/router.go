package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/Dan9191/finance-dashboard/internal/middleware"
	"github.com/gorilla/mux"
)

// RouterConfig carries what the router needs besides the handler
type RouterConfig struct {
	JWTSecret   string
	Debounce    middleware.DebounceStore
	DebounceTTL time.Duration
}

// NewRouter wires every route. Everything but register and login requires
// a bearer token.
func NewRouter(h *Handler, cfg RouterConfig) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.RequestLogger(h.log))

	// Public routes
	r.HandleFunc("/register", h.Register).Methods(http.MethodPost)
	r.HandleFunc("/login", h.Login).Methods(http.MethodPost)

	// Protected routes
	auth := r.PathPrefix("/").Subrouter()
	auth.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	auth.HandleFunc("/accounts", h.ListAccounts).Methods(http.MethodGet)
	auth.HandleFunc("/accounts", h.CreateAccount).Methods(http.MethodPost)
	auth.HandleFunc("/accounts/{id:[0-9]+}", h.GetAccount).Methods(http.MethodGet)
	auth.HandleFunc("/accounts/{id:[0-9]+}", h.UpdateAccount).Methods(http.MethodPut)
	auth.HandleFunc("/accounts/{id:[0-9]+}", h.DeleteAccount).Methods(http.MethodDelete)
	auth.HandleFunc("/accounts/{id:[0-9]+}/balance", h.AdjustBalance).Methods(http.MethodPut)
	auth.HandleFunc("/history", h.ListHistory).Methods(http.MethodGet)
	auth.HandleFunc("/transactions", h.ListTransactions).Methods(http.MethodGet)
	auth.HandleFunc("/transactions", h.CreateTransaction).Methods(http.MethodPost)
	auth.HandleFunc("/summary", h.Summary).Methods(http.MethodGet)
	auth.HandleFunc("/settings", h.GetSettings).Methods(http.MethodGet)
	auth.HandleFunc("/settings", h.UpdateSettings).Methods(http.MethodPut)
	auth.HandleFunc("/cashflow", h.CashFlow).Methods(http.MethodGet)
	auth.HandleFunc("/cashflow/export", h.ExportCashFlow).Methods(http.MethodGet)
	auth.HandleFunc("/alerts", h.ListAlerts).Methods(http.MethodGet)
	auth.HandleFunc("/alerts/count", h.CountAlerts).Methods(http.MethodGet)
	auth.HandleFunc("/alerts/{id:[0-9]+}/dismiss", h.DismissAlert).Methods(http.MethodPatch)

	generate := middleware.Debounce(cfg.Debounce, cfg.DebounceTTL, alertsGenerateKey,
		http.HandlerFunc(h.GenerateAlertsSkipped), h.log)
	auth.Handle("/alerts/generate", generate(http.HandlerFunc(h.GenerateAlerts))).Methods(http.MethodPost)

	return r
}

func alertsGenerateKey(r *http.Request) string {
	userID, _ := middleware.UserIDFromContext(r.Context())
	return fmt.Sprintf("alerts-generate:%d", userID)
}
