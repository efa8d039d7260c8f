package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/Dan9191/finance-dashboard/internal/report"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// CashFlow returns the balance projection for ?days= (default from config)
func (h *Handler) CashFlow(w http.ResponseWriter, r *http.Request) {
	days, ok := h.days(w, r)
	if !ok {
		return
	}
	rep, err := h.svc.CashFlow(r.Context(), days)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

// ExportCashFlow returns the balance projection as an XLSX workbook
func (h *Handler) ExportCashFlow(w http.ResponseWriter, r *http.Request) {
	days, ok := h.days(w, r)
	if !ok {
		return
	}
	rep, err := h.svc.CashFlow(r.Context(), days)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	filename := fmt.Sprintf("flujo-caja-%s-%dd.xlsx", time.Now().Format(time.DateOnly), days)
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if err := report.WriteCashFlow(w, rep); err != nil {
		h.log.WithField("module", "handler").Errorf("failed to export cash flow: %v", err)
	}
}

func (h *Handler) days(w http.ResponseWriter, r *http.Request) (int, bool) {
	v := r.URL.Query().Get("days")
	if v == "" {
		return h.defaultDays, true
	}
	days, err := strconv.Atoi(v)
	if err != nil {
		http.Error(w, "days must be an integer", http.StatusBadRequest)
		return 0, false
	}
	return days, true
}
