package report

import (
	"bytes"
	"testing"

	"github.com/Dan9191/finance-dashboard/internal/models"
	"github.com/xuri/excelize/v2"
)

func TestWriteCashFlow(t *testing.T) {
	r := &models.CashFlowReport{
		Days:                2,
		Currency:            "GTQ",
		CurrentBalance:      1000,
		ProjectedEndBalance: 850,
		LowestPoint:         models.LowestPoint{Date: "2026-10-18", Balance: 850},
		DailyProjection: []models.DailyProjection{
			{Date: "2026-10-17", Label: "sáb, 17 oct", Balance: 1000},
			{Date: "2026-10-18", Label: "dom, 18 oct", Balance: 850, Expense: 150,
				Events: []models.ProjectedEvent{{Date: "2026-10-18", Kind: models.EventCardPayment, Amount: 150}}},
		},
		UpcomingEvents: []models.ProjectedEvent{
			{Date: "2026-10-18", Kind: models.EventCardPayment, Description: "Pago Visa", Amount: 150,
				Source: models.SourceCardDue, Confidence: models.ConfidenceHigh},
		},
	}

	var buf bytes.Buffer
	if err := WriteCashFlow(&buf, r); err != nil {
		t.Fatal(err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if got := f.GetSheetList(); len(got) != 3 || got[0] != summarySheet {
		t.Fatalf("unexpected sheets %v", got)
	}
	rows, err := f.GetRows(projectionSheet)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 || rows[2][0] != "2026-10-18" || rows[2][2] != "850" {
		t.Errorf("unexpected projection rows %v", rows)
	}
	desc, err := f.GetCellValue(eventsSheet, "C2")
	if err != nil {
		t.Fatal(err)
	}
	if desc != "Pago Visa" {
		t.Errorf("unexpected event description %q", desc)
	}
}
