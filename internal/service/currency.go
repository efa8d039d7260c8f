package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Dan9191/finance-dashboard/internal/models"
	"github.com/Dan9191/finance-dashboard/internal/repository"
	"github.com/shopspring/decimal"
)

const (
	currencyGTQ = "GTQ"
	currencyUSD = "USD"
)

// converter expresses amounts in a single display currency
type converter struct {
	display string
	usdRate decimal.Decimal // GTQ per USD
}

func (c converter) convert(amount float64, currency string) float64 {
	if currency == c.display || currency == "" {
		return amount
	}
	value := decimal.NewFromFloat(amount)
	switch {
	case currency == currencyUSD && c.display == currencyGTQ:
		value = value.Mul(c.usdRate)
	case currency == currencyGTQ && c.display == currencyUSD:
		value = value.Div(c.usdRate)
	}
	return value.Round(2).InexactFloat64()
}

// convertAccounts returns copies of accounts with balances and credit
// limits in the display currency
func (c converter) convertAccounts(accounts []models.Account) []models.Account {
	out := make([]models.Account, len(accounts))
	for i, a := range accounts {
		a.Balance = c.convert(a.Balance, a.Currency)
		if a.CreditLimit != nil {
			limit := c.convert(*a.CreditLimit, a.Currency)
			a.CreditLimit = &limit
		}
		a.Currency = c.display
		out[i] = a
	}
	return out
}

func (s *Service) converter(ctx context.Context) (converter, error) {
	settings, err := s.repo.GetSettings(ctx)
	if err != nil {
		return converter{}, err
	}
	rate := models.DefaultUSDRate
	stored, err := s.repo.GetExchangeRate(ctx, currencyUSD, currencyGTQ)
	switch {
	case errors.Is(err, repository.ErrNotFound):
	case err != nil:
		return converter{}, err
	case stored.Rate > 0:
		rate = stored.Rate
	}

	display := settings.DisplayCurrency
	if display != currencyUSD {
		display = currencyGTQ
	}
	return converter{display: display, usdRate: decimal.NewFromFloat(rate)}, nil
}

// RefreshExchangeRate stores the current USD to GTQ reference rate
func (s *Service) RefreshExchangeRate(ctx context.Context) error {
	if s.rates == nil {
		return nil
	}
	rate, err := s.rates.ReferenceRate(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch reference rate: %w", err)
	}
	return s.repo.UpsertExchangeRate(ctx, &models.ExchangeRate{
		FromCurrency: currencyUSD,
		ToCurrency:   currencyGTQ,
		Rate:         rate,
	})
}
