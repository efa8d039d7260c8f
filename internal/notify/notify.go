// Package notify delivers generated alerts outside the dashboard.
package notify

import (
	"context"
	"errors"

	"github.com/Dan9191/finance-dashboard/internal/models"
)

// Notifier delivers an alert to a user-facing channel
type Notifier interface {
	Notify(ctx context.Context, alert models.Alert) error
}

// Multi fans an alert out to every notifier and joins their errors
type Multi []Notifier

// Notify implements Notifier
func (m Multi) Notify(ctx context.Context, alert models.Alert) error {
	var errs []error
	for _, n := range m {
		if err := n.Notify(ctx, alert); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func subject(alert models.Alert) string {
	switch alert.Type {
	case models.AlertPaymentDue:
		return "Recordatorio de pago de tarjeta"
	case models.AlertHighUsage:
		return "Uso alto de tarjeta de crédito"
	case models.AlertLowBalance:
		return "Saldo bajo"
	case models.AlertExcessDebt:
		return "Deuda excesiva"
	default:
		return "Alerta"
	}
}
