package service

import (
	"bytes"
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"tips-bot/internal/domain"
)

const (
	shiftsSheet  = "Shifts"
	summarySheet = "Summary"
)

// ExportService renders an employee's shifts and summary as an XLSX workbook.
type ExportService struct {
	Shifts domain.ShiftService
}

func NewExportService(shifts domain.ShiftService) *ExportService {
	return &ExportService{Shifts: shifts}
}

func (e *ExportService) Workbook(ctx context.Context, employeeID int64, q domain.Query) (*bytes.Buffer, error) {
	shifts, err := e.Shifts.GetShifts(ctx, employeeID, q)
	if err != nil {
		return nil, err
	}
	// shifts already match q, so an empty query gives the same summary.
	sum := domain.Summarize(shifts, domain.Query{})

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", shiftsSheet); err != nil {
		return nil, fmt.Errorf("renaming sheet: %w", err)
	}
	if _, err := f.NewSheet(summarySheet); err != nil {
		return nil, fmt.Errorf("creating summary sheet: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("creating header style: %w", err)
	}

	if err := writeShiftsSheet(f, shifts, headerStyle); err != nil {
		return nil, err
	}
	if err := writeSummarySheet(f, sum, headerStyle); err != nil {
		return nil, err
	}
	f.SetActiveSheet(0)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("writing workbook: %w", err)
	}
	return buf, nil
}

func writeShiftsSheet(f *excelize.File, shifts []domain.Shift, headerStyle int) error {
	header := []any{"Date", "Weekday", "Venue", "Clock in", "Clock out", "Hours", "Tokes", "Downs", "Notes"}
	if err := f.SetSheetRow(shiftsSheet, "A1", &header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	if err := f.SetCellStyle(shiftsSheet, "A1", "I1", headerStyle); err != nil {
		return fmt.Errorf("styling header: %w", err)
	}
	for i, s := range shifts {
		row := []any{
			s.Date.Format("2006-01-02"),
			s.Date.Weekday().String()[:3],
			s.Venue,
			domain.FormatClock(s.ClockIn),
			domain.FormatClock(s.ClockOut),
			s.Hours(),
			dollars(s.TokesCash),
			s.Downs.InexactFloat64(),
			s.Notes,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(shiftsSheet, cell, &row); err != nil {
			return fmt.Errorf("writing shift row: %w", err)
		}
	}
	return nil
}

func writeSummarySheet(f *excelize.File, sum domain.Summary, headerStyle int) error {
	header := []any{"Venue", "Shifts", "Hours", "Tokes", "Downs", "Per hour", "Per down"}
	if err := f.SetSheetRow(summarySheet, "A1", &header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	if err := f.SetCellStyle(summarySheet, "A1", "G1", headerStyle); err != nil {
		return fmt.Errorf("styling header: %w", err)
	}

	venues := make([]string, 0, len(sum.ByVenue))
	for v := range sum.ByVenue {
		venues = append(venues, v)
	}
	sort.Strings(venues)

	rowNo := 2
	for _, name := range venues {
		v := sum.ByVenue[name]
		if err := summaryRow(f, rowNo, name, v.Count, v.Hours(), v.Total, v.Downs, v.Hourly(), v.PerDown()); err != nil {
			return err
		}
		rowNo++
	}
	total := sum.Hours()
	if err := summaryRow(f, rowNo, "Total", sum.Count, total, sum.Total, sum.Downs, sum.Hourly, sum.PerDown); err != nil {
		return err
	}
	cell, _ := excelize.CoordinatesToCellName(7, rowNo)
	return f.SetCellStyle(summarySheet, fmt.Sprintf("A%d", rowNo), cell, headerStyle)
}

func summaryRow(f *excelize.File, rowNo int, name string, count int, hours float64, total int64, downs decimal.Decimal, hourly, perDown float64) error {
	row := []any{name, count, hours, dollars(total), downs.InexactFloat64(), centsRate(hourly), centsRate(perDown)}
	if err := f.SetSheetRow(summarySheet, fmt.Sprintf("A%d", rowNo), &row); err != nil {
		return fmt.Errorf("writing summary row: %w", err)
	}
	return nil
}

func dollars(cents int64) float64 {
	return decimal.New(cents, -2).InexactFloat64()
}

func centsRate(r float64) float64 {
	return decimal.NewFromFloat(r).Div(decimal.NewFromInt(100)).Round(2).InexactFloat64()
}
