// Package alerts evaluates account balances against the dashboard thresholds.
package alerts

import (
	"fmt"
	"math"
	"time"

	"github.com/Dan9191/finance-dashboard/internal/models"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	// LowBalanceThreshold flags bank and cash accounts under this amount
	LowBalanceThreshold = 1000
	// ExcessDebtRatio is the debt to available funds percentage that raises an alert
	ExcessDebtRatio = 30
)

var printer = message.NewPrinter(language.English)

// Evaluate returns the alerts that the given accounts currently warrant.
// Balances must already be expressed in settings.DisplayCurrency.
// The returned alerts carry no user and are not deduplicated.
func Evaluate(accounts []models.Account, settings models.Settings, now time.Time) []models.Alert {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	var alerts []models.Alert

	for _, a := range accounts {
		if !a.IsCreditCard() {
			continue
		}
		if a.PaymentDay != nil && a.Balance > 0 {
			days := DaysUntilPayment(today, *a.PaymentDay)
			if days <= settings.AlertDaysBefore {
				alerts = append(alerts, accountAlert(a, models.AlertPaymentDue,
					fmt.Sprintf("Pago de %s vence en %s - %s", a.DisplayName(), plural(days, "día", "días"), money(a.Balance, settings.DisplayCurrency)),
					map[string]any{"days_until": days, "amount": a.Balance}))
			}
		}
		if a.CreditLimit != nil && *a.CreditLimit > 0 {
			usage := a.Balance / *a.CreditLimit * 100
			if usage >= settings.HighUsageThreshold {
				alerts = append(alerts, accountAlert(a, models.AlertHighUsage,
					fmt.Sprintf("%s al %d%% de su límite", a.DisplayName(), int(math.Round(usage))),
					map[string]any{"usage": math.Round(usage), "limit": *a.CreditLimit}))
			}
		}
	}

	for _, a := range accounts {
		if a.Type != models.AccountBank && a.Type != models.AccountCash {
			continue
		}
		if a.Balance >= 0 && a.Balance < LowBalanceThreshold {
			alerts = append(alerts, accountAlert(a, models.AlertLowBalance,
				fmt.Sprintf("%s tiene saldo bajo (%s)", a.Name, money(a.Balance, settings.DisplayCurrency)),
				map[string]any{"balance": a.Balance}))
		}
	}

	var available, debt float64
	for _, a := range accounts {
		if a.IsCreditCard() {
			debt += a.Balance
		} else {
			available += a.Balance
		}
	}
	if available > 0 {
		ratio := debt / available * 100
		if ratio >= ExcessDebtRatio {
			alerts = append(alerts, models.Alert{
				Type: models.AlertExcessDebt,
				Message: fmt.Sprintf("Deuda total (%s) representa el %d%% del disponible",
					money(debt, settings.DisplayCurrency), int(math.Round(ratio))),
				Data: map[string]any{"percentage": math.Round(ratio), "debt": debt, "available": available},
			})
		}
	}

	return alerts
}

// DaysUntilPayment returns the days from today to the next paymentDay,
// zero when the payment is due today.
func DaysUntilPayment(today time.Time, paymentDay int) int {
	due := time.Date(today.Year(), today.Month(), paymentDay, 0, 0, 0, 0, today.Location())
	if due.Before(today) {
		due = time.Date(today.Year(), today.Month()+1, paymentDay, 0, 0, 0, 0, today.Location())
	}
	return int(math.Round(due.Sub(today).Hours() / 24))
}

func accountAlert(a models.Account, typ models.AlertType, msg string, data map[string]any) models.Alert {
	id := a.ID
	data["account_id"] = id
	return models.Alert{Type: typ, Message: msg, AccountID: &id, Data: data}
}

func money(v float64, currency string) string {
	symbol := "Q"
	if currency == "USD" {
		symbol = "$"
	}
	return printer.Sprintf("%s%.2f", symbol, v)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}
