package cashflow

import (
	"math"
	"testing"
	"time"

	"github.com/Dan9191/finance-dashboard/internal/models"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func tx(description string, amount float64, typ models.TransactionType, date time.Time) models.Transaction {
	return models.Transaction{Description: description, Amount: amount, Type: typ, Date: date}
}

func TestExtractPatterns_Threshold(t *testing.T) {
	cases := []struct {
		name      string
		amounts   []float64
		recurring bool
	}{
		{"tight amounts", []float64{100, 102, 98}, true},
		{"identical amounts", []float64{450, 450}, true},
		{"high variance", []float64{100, 500, 50}, false},
		{"zero mean", []float64{0, 0, 0}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var history []models.Transaction
			for i, a := range tc.amounts {
				history = append(history, tx("Netflix", a, models.TxExpense, day(2026, time.Month(7+i), 5)))
			}
			patterns := ExtractPatterns(history)
			if got := len(patterns) == 1; got != tc.recurring {
				t.Fatalf("recurring = %v, want %v (patterns: %+v)", got, tc.recurring, patterns)
			}
		})
	}
}

func TestExtractPatterns_SingleOccurrenceIgnored(t *testing.T) {
	history := []models.Transaction{
		tx("Renta oficina", 3500, models.TxExpense, day(2026, 9, 1)),
		tx("Internet", 300, models.TxExpense, day(2026, 9, 3)),
		tx("Internet", 300, models.TxExpense, day(2026, 8, 3)),
	}
	patterns := ExtractPatterns(history)
	if len(patterns) != 1 {
		t.Fatalf("expected 1 pattern, got %d", len(patterns))
	}
	if patterns[0].Key != "internet" {
		t.Errorf("expected key internet, got %q", patterns[0].Key)
	}
	if patterns[0].Confidence != models.ConfidenceMedium {
		t.Errorf("expected medium confidence with 2 samples, got %s", patterns[0].Confidence)
	}
}

func TestExtractPatterns_NormalizesAndSkipsEmptyDescriptions(t *testing.T) {
	history := []models.Transaction{
		tx("  Luz EEGSA ", 410, models.TxExpense, day(2026, 9, 12)),
		tx("luz eegsa", 400, models.TxExpense, day(2026, 8, 12)),
		tx("", 999, models.TxExpense, day(2026, 9, 1)),
		tx("   ", 999, models.TxExpense, day(2026, 8, 1)),
	}
	patterns := ExtractPatterns(history)
	if len(patterns) != 1 {
		t.Fatalf("expected 1 pattern, got %+v", patterns)
	}
	if patterns[0].Key != "luz eegsa" {
		t.Errorf("unexpected key %q", patterns[0].Key)
	}
	if len(patterns[0].Amounts) != 2 {
		t.Errorf("expected 2 amounts, got %v", patterns[0].Amounts)
	}
}

func TestExtractPatterns_Salary(t *testing.T) {
	history := []models.Transaction{
		tx("Salario", 9950, models.TxIncome, day(2026, 9, 2)),
		tx("Salario", 10050, models.TxIncome, day(2026, 8, 1)),
		tx("Salario", 10000, models.TxIncome, day(2026, 7, 1)),
	}
	patterns := ExtractPatterns(history)
	if len(patterns) != 1 {
		t.Fatalf("expected 1 pattern, got %d", len(patterns))
	}
	p := patterns[0]
	if math.Abs(p.AvgAmount-10000) > 1e-9 {
		t.Errorf("expected mean 10000, got %f", p.AvgAmount)
	}
	if p.Confidence != models.ConfidenceHigh {
		t.Errorf("expected high confidence, got %s", p.Confidence)
	}
	if p.AvgDay != 1 {
		t.Errorf("expected average day 1, got %d", p.AvgDay)
	}
	if p.Type != models.TxIncome {
		t.Errorf("expected INGRESO, got %s", p.Type)
	}
}

func TestExtractPatterns_FirstMemberTypeAndOrder(t *testing.T) {
	history := []models.Transaction{
		tx("Seguro", 200, models.TxExpense, day(2026, 9, 20)),
		tx("Abono", 500, models.TxIncome, day(2026, 9, 15)),
		tx("Seguro", 200, models.TxTransfer, day(2026, 8, 20)),
		tx("Abono", 500, models.TxIncome, day(2026, 8, 15)),
	}
	patterns := ExtractPatterns(history)
	if len(patterns) != 2 {
		t.Fatalf("expected 2 patterns, got %d", len(patterns))
	}
	if patterns[0].Key != "seguro" || patterns[1].Key != "abono" {
		t.Errorf("expected first-seen order, got %q, %q", patterns[0].Key, patterns[1].Key)
	}
	if patterns[0].Type != models.TxExpense {
		t.Errorf("expected group type from first member, got %s", patterns[0].Type)
	}
}
