package cashflow

import (
	"math"
	"testing"

	"github.com/Dan9191/finance-dashboard/internal/models"
)

func TestProject(t *testing.T) {
	today := day(2026, 10, 17)
	accounts := []models.Account{
		{ID: 1, Name: "Monetaria", Type: models.AccountBank, Currency: "GTQ", Balance: 15000},
		{ID: 2, Name: "Caja chica", Type: models.AccountCash, Currency: "GTQ", Balance: 500.25},
		card(3, 5000, 25),
	}
	history := []models.Transaction{
		tx("Salario", 9950, models.TxIncome, day(2026, 9, 2)),
		tx("Salario", 10050, models.TxIncome, day(2026, 8, 1)),
		tx("Salario", 10000, models.TxIncome, day(2026, 7, 1)),
		tx("Supermercado", 800, models.TxExpense, day(2026, 9, 9)),
		tx("Pago tarjeta", 1000, models.TxCardPayment, day(2026, 9, 25)),
	}

	report := Project(Input{
		Accounts: accounts,
		History:  history,
		Today:    today,
		Days:     30,
		Currency: "GTQ",
	})

	if report.CurrentBalance != 15500.25 {
		t.Errorf("expected current balance 15500.25, got %f", report.CurrentBalance)
	}
	if report.CurrentDebt != 5000 {
		t.Errorf("expected current debt 5000, got %f", report.CurrentDebt)
	}
	// (10000 + 10050 + 9950) / 90 and 800 / 90
	if report.AvgDailyIncome != 333.33 || report.AvgDailyExpense != 8.89 {
		t.Errorf("unexpected baseline %f / %f", report.AvgDailyIncome, report.AvgDailyExpense)
	}
	if len(report.DailyProjection) != 30 {
		t.Errorf("expected 30 days, got %d", len(report.DailyProjection))
	}
	if len(report.UpcomingEvents) != 2 {
		t.Fatalf("expected card payment and salary, got %+v", report.UpcomingEvents)
	}
	if report.UpcomingEvents[0].Kind != models.EventCardPayment || report.UpcomingEvents[0].Date != "2026-10-25" {
		t.Errorf("unexpected first event %+v", report.UpcomingEvents[0])
	}
	if report.UpcomingEvents[1].Kind != models.EventIncome || report.UpcomingEvents[1].Date != "2026-11-01" {
		t.Errorf("unexpected second event %+v", report.UpcomingEvents[1])
	}
	if len(report.CreditCardPayments) != 1 || report.CreditCardPayments[0].ID != 3 {
		t.Errorf("unexpected card payments %+v", report.CreditCardPayments)
	}

	flow := report.CurrentBalance + report.ProjectedIncome - report.ProjectedExpenses
	if math.Abs(flow-report.ProjectedEndBalance) > 0.005 {
		t.Errorf("balance %f + income %f - expenses %f != end balance %f",
			report.CurrentBalance, report.ProjectedIncome, report.ProjectedExpenses, report.ProjectedEndBalance)
	}
}

func TestProject_EmptyInputs(t *testing.T) {
	report := Project(Input{Today: day(2026, 10, 17), Days: 90, Currency: "GTQ"})

	if report.ProjectedEndBalance != 0 || report.LowestPoint.Date != "2026-10-17" {
		t.Errorf("unexpected empty projection %+v", report)
	}
	if report.UpcomingEvents == nil || report.CreditCardPayments == nil {
		t.Error("lists should be empty, not nil")
	}
	if len(report.DailyProjection) != 14 {
		t.Errorf("expected 14 sampled days, got %d", len(report.DailyProjection))
	}
}

func TestProject_UpcomingEventsCapped(t *testing.T) {
	var accounts []models.Account
	for i := 1; i <= 12; i++ {
		accounts = append(accounts, card(int64(i), 100, i+17))
	}
	report := Project(Input{Accounts: accounts, Today: day(2026, 10, 1), Days: 30})
	if len(report.UpcomingEvents) != 10 {
		t.Fatalf("expected 10 upcoming events, got %d", len(report.UpcomingEvents))
	}
	if report.UpcomingEvents[0].Date != "2026-10-18" {
		t.Errorf("expected earliest event first, got %s", report.UpcomingEvents[0].Date)
	}
}

func TestBaseline(t *testing.T) {
	history := []models.Transaction{
		tx("a", 900, models.TxIncome, day(2026, 9, 1)),
		tx("b", 450, models.TxExpense, day(2026, 9, 2)),
		tx("c", 5000, models.TxTransfer, day(2026, 9, 3)),
	}
	income, expense := Baseline(history, 90)
	if income != 10 || expense != 5 {
		t.Errorf("expected 10/5, got %f/%f", income, expense)
	}
	if income, expense := Baseline(history, 0); income != 0 || expense != 0 {
		t.Errorf("expected zero baseline for empty window, got %f/%f", income, expense)
	}
}
