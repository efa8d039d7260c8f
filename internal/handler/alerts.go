package handler

import (
	"net/http"

	"github.com/Dan9191/finance-dashboard/internal/middleware"
)

// ListAlerts returns the user's active alerts
func (h *Handler) ListAlerts(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())
	alerts, err := h.svc.ListAlerts(r.Context(), userID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, alerts)
}

// CountAlerts returns the number of active alerts
func (h *Handler) CountAlerts(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())
	count, err := h.svc.CountAlerts(r.Context(), userID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"count": count})
}

// GenerateAlerts evaluates thresholds and stores the new alerts
func (h *Handler) GenerateAlerts(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.UserIDFromContext(r.Context())
	created, err := h.svc.GenerateAlerts(r.Context(), userID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"alerts_created": created, "skipped": false})
}

// GenerateAlertsSkipped answers a generation request that arrived too soon
func (h *Handler) GenerateAlertsSkipped(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"alerts_created": []any{}, "skipped": true})
}

// DismissAlert hides one alert
func (h *Handler) DismissAlert(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	userID, _ := middleware.UserIDFromContext(r.Context())
	if err := h.svc.DismissAlert(r.Context(), userID, id); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
