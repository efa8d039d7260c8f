package cashflow

import (
	"time"

	"github.com/Dan9191/finance-dashboard/internal/models"
	"github.com/shopspring/decimal"
)

// DefaultHistoryDays is the trailing window used for patterns and baseline
const DefaultHistoryDays = 90

const maxUpcomingEvents = 10

// Input is everything the projection needs. Account balances must already
// be expressed in Currency.
type Input struct {
	Accounts       []models.Account
	History        []models.Transaction
	Today          time.Time
	Days           int
	HistoryDays    int
	Currency       string
	AllOccurrences bool
}

// Project runs the whole pipeline: baseline and pattern extraction over
// history, event projection, then the day by day balance simulation.
// Days must be positive.
func Project(in Input) models.CashFlowReport {
	historyDays := in.HistoryDays
	if historyDays <= 0 {
		historyDays = DefaultHistoryDays
	}

	available, debt := Totals(in.Accounts)
	avgIncome, avgExpense := Baseline(in.History, historyDays)

	patterns := ExtractPatterns(in.History)
	events := ProjectEvents(in.Accounts, patterns, in.Today, in.Days, in.AllOccurrences)
	sim := Simulate(available, events, in.Today, in.Days, avgIncome, avgExpense)

	upcoming := events
	if len(upcoming) > maxUpcomingEvents {
		upcoming = upcoming[:maxUpcomingEvents]
	}

	return models.CashFlowReport{
		Days:                in.Days,
		Currency:            in.Currency,
		CurrentBalance:      available,
		CurrentDebt:         debt,
		ProjectedEndBalance: sim.EndBalance,
		ProjectedIncome:     sim.TotalIncome,
		ProjectedExpenses:   sim.TotalExpense,
		LowestPoint:         sim.Lowest,
		AvgDailyIncome:      round2(avgIncome),
		AvgDailyExpense:     round2(avgExpense),
		DailyProjection:     Downsample(sim.Days),
		UpcomingEvents:      upcoming,
		CreditCardPayments:  cardPayments(in.Accounts),
	}
}

// Totals returns the funds held outside credit cards and the debt owed on
// credit cards, both rounded to cents.
func Totals(accounts []models.Account) (available, debt float64) {
	var avail, owed decimal.Decimal
	for _, a := range accounts {
		balance := decimal.NewFromFloat(a.Balance)
		if a.IsCreditCard() {
			owed = owed.Add(balance)
		} else {
			avail = avail.Add(balance)
		}
	}
	return avail.Round(2).InexactFloat64(), owed.Round(2).InexactFloat64()
}

// Baseline returns the average daily income and expense over a window of
// windowDays. Transfers and card payments move money between own accounts
// and are left out.
func Baseline(history []models.Transaction, windowDays int) (avgIncome, avgExpense float64) {
	if windowDays <= 0 {
		return 0, 0
	}
	var income, expense decimal.Decimal
	for _, t := range history {
		switch t.Type {
		case models.TxIncome:
			income = income.Add(decimal.NewFromFloat(t.Amount))
		case models.TxExpense:
			expense = expense.Add(decimal.NewFromFloat(t.Amount))
		}
	}
	window := decimal.NewFromInt(int64(windowDays))
	return income.Div(window).InexactFloat64(), expense.Div(window).InexactFloat64()
}

func cardPayments(accounts []models.Account) []models.CardPayment {
	payments := make([]models.CardPayment, 0)
	for _, a := range accounts {
		if !a.IsCreditCard() || a.PaymentDay == nil {
			continue
		}
		payments = append(payments, models.CardPayment{
			ID:         a.ID,
			Name:       a.Name,
			BankName:   a.BankName,
			Balance:    a.Balance,
			PaymentDay: a.PaymentDay,
			CutoffDay:  a.CutoffDay,
		})
	}
	return payments
}
