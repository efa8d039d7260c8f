// Package report renders cash-flow projections as spreadsheets.
package report

import (
	"fmt"
	"io"

	"github.com/Dan9191/finance-dashboard/internal/models"
	"github.com/xuri/excelize/v2"
)

const (
	summarySheet    = "Resumen"
	projectionSheet = "Proyeccion"
	eventsSheet     = "Eventos"
)

// WriteCashFlow writes the report as an XLSX workbook with a summary sheet,
// the daily projection and the upcoming events.
func WriteCashFlow(w io.Writer, r *models.CashFlowReport) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	for _, name := range []string{projectionSheet, eventsSheet} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("failed to create sheet %s: %w", name, err)
		}
	}

	summary := [][]any{
		{"Concepto", "Monto"},
		{"Moneda", r.Currency},
		{"Horizonte (días)", r.Days},
		{"Saldo actual", r.CurrentBalance},
		{"Deuda actual", r.CurrentDebt},
		{"Saldo final proyectado", r.ProjectedEndBalance},
		{"Ingresos proyectados", r.ProjectedIncome},
		{"Egresos proyectados", r.ProjectedExpenses},
		{"Ingreso diario promedio", r.AvgDailyIncome},
		{"Egreso diario promedio", r.AvgDailyExpense},
		{"Punto más bajo", r.LowestPoint.Balance},
		{"Fecha punto más bajo", r.LowestPoint.Date},
	}
	if err := writeRows(f, summarySheet, summary); err != nil {
		return err
	}

	projection := [][]any{{"Fecha", "Día", "Saldo proyectado", "Ingresos", "Egresos", "Eventos"}}
	for _, d := range r.DailyProjection {
		projection = append(projection, []any{d.Date, d.Label, d.Balance, d.Income, d.Expense, len(d.Events)})
	}
	if err := writeRows(f, projectionSheet, projection); err != nil {
		return err
	}

	events := [][]any{{"Fecha", "Tipo", "Descripción", "Monto", "Origen", "Confianza"}}
	for _, e := range r.UpcomingEvents {
		events = append(events, []any{e.Date, string(e.Kind), e.Description, e.Amount, string(e.Source), string(e.Confidence)})
	}
	if err := writeRows(f, eventsSheet, events); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
