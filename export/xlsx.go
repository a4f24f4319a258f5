package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/warp/payroll/display"
	"github.com/warp/payroll/payroll"
)

const sheetName = "Payroll"

// XLSX writes rep as an Excel workbook with a single sheet.
func XLSX(w io.Writer, rep payroll.Report) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]any, len(columns))
	for i, c := range columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create style: %w", err)
	}
	last, _ := excelize.CoordinatesToCellName(len(columns), 1)
	if err := f.SetCellStyle(sheetName, "A1", last, bold); err != nil {
		return fmt.Errorf("style header: %w", err)
	}

	line := 2
	for _, r := range rep.Rows {
		values := []any{
			r.FromDate, r.ToDate, r.Name,
			r.Hours,
			money(r.Rate), money(r.Gross),
			r.TaxRate,
			money(r.Tax), money(r.Net),
		}
		if err := setRow(f, line, values); err != nil {
			return err
		}
		line++
	}

	t := rep.Totals
	totals := []any{"", "", totalLabel(t), t.Hours, nil, money(t.Gross), nil, money(t.Tax), money(t.Net)}
	if err := setRow(f, line, totals); err != nil {
		return err
	}
	first, _ := excelize.CoordinatesToCellName(1, line)
	end, _ := excelize.CoordinatesToCellName(len(columns), line)
	if err := f.SetCellStyle(sheetName, first, end, bold); err != nil {
		return fmt.Errorf("style totals: %w", err)
	}

	return f.Write(w)
}

func setRow(f *excelize.File, line int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, line)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
		return fmt.Errorf("write row %d: %w", line, err)
	}
	return nil
}

func money(v float64) float64 {
	return display.Cents(v).InexactFloat64()
}
