package cashflow

import (
	"time"

	"github.com/Dan9191/finance-dashboard/internal/models"
	"github.com/shopspring/decimal"
)

// Simulation is the outcome of walking the horizon day by day
type Simulation struct {
	Days         []models.DailyProjection
	EndBalance   float64
	Lowest       models.LowestPoint
	TotalIncome  float64
	TotalExpense float64
}

// Simulate walks days [today, today+days) starting from start. A day with
// projected events applies only those events; a day without events applies
// the average daily income and expense instead. Amounts are rounded to
// cents, so start plus every day's income minus expense equals the final
// balance exactly.
func Simulate(start float64, events []models.ProjectedEvent, today time.Time, days int, avgIncome, avgExpense float64) Simulation {
	today = startOfDay(today)

	byDate := make(map[string][]models.ProjectedEvent)
	for _, e := range events {
		byDate[e.Date] = append(byDate[e.Date], e)
	}

	baseIncome := decimal.NewFromFloat(avgIncome).Round(2)
	baseExpense := decimal.NewFromFloat(avgExpense).Round(2)
	running := decimal.NewFromFloat(start).Round(2)
	totalIncome, totalExpense := decimal.Zero, decimal.Zero

	sim := Simulation{
		Days:       make([]models.DailyProjection, 0, max(days, 0)),
		EndBalance: running.InexactFloat64(),
	}
	var lowest decimal.Decimal

	for i := 0; i < days; i++ {
		date := today.AddDate(0, 0, i)
		key := date.Format(DateLayout)
		dayEvents := byDate[key]

		income, expense := decimal.Zero, decimal.Zero
		if len(dayEvents) == 0 {
			income, expense = baseIncome, baseExpense
			dayEvents = []models.ProjectedEvent{}
		} else {
			for _, e := range dayEvents {
				amount := decimal.NewFromFloat(e.Amount).Round(2)
				if e.Kind == models.EventIncome {
					income = income.Add(amount)
				} else {
					expense = expense.Add(amount)
				}
			}
		}

		running = running.Add(income).Sub(expense).Round(2)
		totalIncome = totalIncome.Add(income)
		totalExpense = totalExpense.Add(expense)

		day := models.DailyProjection{
			Date:    key,
			Label:   Label(date),
			Balance: running.InexactFloat64(),
			Income:  income.InexactFloat64(),
			Expense: expense.InexactFloat64(),
			Events:  dayEvents,
		}
		sim.Days = append(sim.Days, day)

		// strict comparison keeps the first day on ties
		if i == 0 || running.LessThan(lowest) {
			lowest = running
			sim.Lowest = models.LowestPoint{Date: day.Date, Label: day.Label, Balance: day.Balance}
		}
	}

	sim.EndBalance = running.InexactFloat64()
	sim.TotalIncome = totalIncome.InexactFloat64()
	sim.TotalExpense = totalExpense.InexactFloat64()
	return sim
}

const (
	sampleEvery = 7
	maxFullDays = 30
)

// Downsample keeps every 7th day plus the last one when the series covers
// more than 30 days; shorter series are returned unchanged.
func Downsample(series []models.DailyProjection) []models.DailyProjection {
	if len(series) <= maxFullDays {
		return series
	}
	out := make([]models.DailyProjection, 0, len(series)/sampleEvery+2)
	for i, day := range series {
		if i%sampleEvery == 0 || i == len(series)-1 {
			out = append(out, day)
		}
	}
	return out
}
