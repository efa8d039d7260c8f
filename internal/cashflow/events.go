package cashflow

import (
	"math"
	"sort"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/Dan9191/finance-dashboard/internal/models"
	"github.com/shopspring/decimal"
)

// DateLayout is the day format used for event and projection dates
const DateLayout = "2006-01-02"

// ProjectEvents builds the dated events expected between tomorrow and
// today+days: the next payment of every credit card that carries debt and
// the next occurrence of every recurring pattern. With allOccurrences set,
// every monthly occurrence inside the horizon is emitted instead of only the
// first one. The result is sorted by date; events on the same date keep
// card payments first, then patterns in input order.
func ProjectEvents(accounts []models.Account, patterns []models.RecurringPattern, today time.Time, days int, allOccurrences bool) []models.ProjectedEvent {
	today = startOfDay(today)
	events := make([]models.ProjectedEvent, 0)

	for _, a := range accounts {
		if !a.IsCreditCard() || a.PaymentDay == nil || a.Balance <= 0 {
			continue
		}
		for _, date := range occurrences(today, days, *a.PaymentDay, allOccurrences) {
			events = append(events, models.ProjectedEvent{
				Date:        date.Format(DateLayout),
				Kind:        models.EventCardPayment,
				Amount:      round2(a.Balance),
				Description: "Pago " + a.DisplayName(),
				Source:      models.SourceCardDue,
				Confidence:  models.ConfidenceHigh,
			})
		}
	}

	for _, p := range patterns {
		kind := models.EventExpense
		if p.Type == models.TxIncome {
			kind = models.EventIncome
		}
		for _, date := range occurrences(today, days, p.AvgDay, allOccurrences) {
			events = append(events, models.ProjectedEvent{
				Date:        date.Format(DateLayout),
				Kind:        kind,
				Amount:      round2(p.AvgAmount),
				Description: capitalize(p.Key),
				Source:      models.SourceRecurring,
				Confidence:  p.Confidence,
			})
		}
	}

	// ISO dates sort lexicographically in chronological order
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Date < events[j].Date
	})

	return events
}

// occurrences returns the dates with the given day of month that fall in
// (today, today+days]. For the single next occurrence, days past the end of
// a month roll into the next one. When every occurrence is wanted the day is
// clamped to the month's last day instead, so each month gets one date.
func occurrences(today time.Time, days, day int, all bool) []time.Time {
	day = clampDay(day)
	end := today.AddDate(0, 0, days)
	months := int(math.Ceil(float64(days) / 30))

	var dates []time.Time
	for offset := 0; offset <= months; offset++ {
		month := today.Month() + time.Month(offset)
		d := day
		if all {
			d = min(day, lastDay(today.Year(), month, today.Location()))
		}
		date := time.Date(today.Year(), month, d, 0, 0, 0, 0, today.Location())
		if !date.After(today) || date.After(end) {
			continue
		}
		dates = append(dates, date)
		if !all {
			break
		}
	}
	return dates
}

func lastDay(year int, month time.Month, loc *time.Location) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
}

func clampDay(day int) int {
	if day < 1 {
		return 1
	}
	if day > 31 {
		return 31
	}
	return day
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
