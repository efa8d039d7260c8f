package service

import (
	"context"
	"fmt"

	"github.com/Dan9191/finance-dashboard/internal/cashflow"
	"github.com/Dan9191/finance-dashboard/internal/models"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// CashFlow projects balances over the next days. Account balances are
// converted to the display currency before projecting.
func (s *Service) CashFlow(ctx context.Context, days int) (*models.CashFlowReport, error) {
	if days <= 0 || days > s.config.CashFlowMaxDays {
		return nil, fmt.Errorf("%w: days must be between 1 and %d", ErrInvalidHorizon, s.config.CashFlowMaxDays)
	}

	conv, err := s.converter(ctx)
	if err != nil {
		return nil, err
	}
	accounts, err := s.repo.ListActiveAccounts(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	historyStart := now.AddDate(0, 0, -s.config.CashFlowHistoryDays)
	history, err := s.repo.ListTransactions(ctx, historyStart, now)
	if err != nil {
		return nil, err
	}

	report := cashflow.Project(cashflow.Input{
		Accounts:       conv.convertAccounts(accounts),
		History:        history,
		Today:          now,
		Days:           days,
		HistoryDays:    s.config.CashFlowHistoryDays,
		Currency:       conv.display,
		AllOccurrences: s.config.CashFlowAllOccurrences,
	})

	s.log.WithFields(logrus.Fields{
		"days":            days,
		"accounts":        len(accounts),
		"history":         len(history),
		"upcoming_events": len(report.UpcomingEvents),
	}).Debug("Cash flow projected")
	return &report, nil
}

// Summary returns the available funds against the credit card debt
func (s *Service) Summary(ctx context.Context) (*models.BalanceSummary, error) {
	conv, err := s.converter(ctx)
	if err != nil {
		return nil, err
	}
	accounts, err := s.repo.ListActiveAccounts(ctx)
	if err != nil {
		return nil, err
	}

	available, debt := cashflow.Totals(conv.convertAccounts(accounts))
	return &models.BalanceSummary{
		Currency:  conv.display,
		Available: available,
		Debt:      debt,
		Net:       decimal.NewFromFloat(available).Sub(decimal.NewFromFloat(debt)).InexactFloat64(),
	}, nil
}
