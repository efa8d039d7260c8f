// Package cashflow projects future account balances from current balances,
// credit card due dates and recurring transactions found in history.
// Every function in this package is pure: callers fetch the data and
// provide the reference date.
package cashflow

import (
	"math"
	"strings"

	"github.com/Dan9191/finance-dashboard/internal/models"
)

// RecurrenceThreshold is the maximum coefficient of variation (stddev / mean)
// for a description group to count as recurring.
const RecurrenceThreshold = 0.20

const (
	minOccurrences        = 2
	highConfidenceSamples = 3
)

// ExtractPatterns groups history by normalized description and returns the
// groups whose amounts are consistent enough to be treated as recurring.
// Patterns are returned in the order their description was first seen.
func ExtractPatterns(history []models.Transaction) []models.RecurringPattern {
	groups := make(map[string]*models.RecurringPattern)
	var order []string

	for _, t := range history {
		key := normalizeDescription(t.Description)
		if key == "" {
			continue
		}
		g, ok := groups[key]
		if !ok {
			// type of the first member stands for the whole group
			g = &models.RecurringPattern{Key: key, Type: t.Type}
			groups[key] = g
			order = append(order, key)
		}
		g.Amounts = append(g.Amounts, t.Amount)
		g.Days = append(g.Days, t.Date.Day())
	}

	patterns := make([]models.RecurringPattern, 0, len(order))
	for _, key := range order {
		g := groups[key]
		if len(g.Amounts) < minOccurrences {
			continue
		}

		mean, stdDev := meanStdDev(g.Amounts)
		if !isRecurring(mean, stdDev) {
			continue
		}

		g.AvgAmount = mean
		g.StdDev = stdDev
		g.AvgDay = averageDay(g.Days)
		g.Confidence = models.ConfidenceMedium
		if len(g.Amounts) >= highConfidenceSamples {
			g.Confidence = models.ConfidenceHigh
		}
		patterns = append(patterns, *g)
	}

	return patterns
}

func normalizeDescription(description string) string {
	return strings.ToLower(strings.TrimSpace(description))
}

// isRecurring rejects a zero (or negative) mean, where the coefficient of
// variation is undefined.
func isRecurring(mean, stdDev float64) bool {
	if mean <= 0 {
		return false
	}
	return stdDev/mean < RecurrenceThreshold
}

// meanStdDev returns the mean and population standard deviation
func meanStdDev(values []float64) (float64, float64) {
	if len(values) == 0 {
		return 0, 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))

	var variance float64
	for _, v := range values {
		variance += (v - mean) * (v - mean)
	}
	variance /= float64(len(values))

	return mean, math.Sqrt(variance)
}

func averageDay(days []int) int {
	if len(days) == 0 {
		return 1
	}
	var sum int
	for _, d := range days {
		sum += d
	}
	return int(math.Round(float64(sum) / float64(len(days))))
}
