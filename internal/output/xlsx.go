package output

import (
	"fmt"

	"github.com/rgehrsitz/difal/internal/domain"
	"github.com/xuri/excelize/v2"
)

const (
	simulationsSheet = "Simulations"
	reportSheet      = "Report"
)

// XLSXFormatter exports a report as an Excel workbook. Amounts and rates
// are written as numeric cells.
type XLSXFormatter struct{}

func (XLSXFormatter) Name() string { return "xlsx" }

func (XLSXFormatter) Format(report *Report) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", simulationsSheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}
	// built-in format 2 is "0.00"
	amountStyle, err := f.NewStyle(&excelize.Style{NumFmt: 2})
	if err != nil {
		return nil, fmt.Errorf("failed to create amount style: %w", err)
	}

	cols := report.Columns()
	for i, c := range cols {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(simulationsSheet, cell, c.Label); err != nil {
			return nil, err
		}
		if err := f.SetCellStyle(simulationsSheet, cell, cell, headerStyle); err != nil {
			return nil, err
		}
	}

	for r, row := range report.Rows {
		rec := row.Record()
		for i, c := range cols {
			field, ok := rec.Get(c.Key)
			if !ok {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(i+1, r+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(simulationsSheet, cell, cellValue(field)); err != nil {
				return nil, err
			}
			if field.Kind == domain.FieldAmount {
				if err := f.SetCellStyle(simulationsSheet, cell, cell, amountStyle); err != nil {
					return nil, err
				}
			}
		}
	}

	if len(cols) > 0 {
		last, err := excelize.ColumnNumberToName(len(cols))
		if err != nil {
			return nil, err
		}
		if err := f.SetColWidth(simulationsSheet, "A", last, 22); err != nil {
			return nil, err
		}
	}

	if _, err := f.NewSheet(reportSheet); err != nil {
		return nil, fmt.Errorf("failed to add report sheet: %w", err)
	}
	meta := [][2]any{
		{"Report ID", report.ID},
		{"Simulations", len(report.Rows)},
		{"Failed", report.Failed()},
	}
	for i, kv := range meta {
		if err := f.SetSheetRow(reportSheet, fmt.Sprintf("A%d", i+1), &[]any{kv[0], kv[1]}); err != nil {
			return nil, err
		}
	}
	for i, note := range DefaultAssumptions {
		row := len(meta) + 2 + i
		label := ""
		if i == 0 {
			label = "Assumptions"
		}
		if err := f.SetSheetRow(reportSheet, fmt.Sprintf("A%d", row), &[]any{label, note}); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func cellValue(f domain.Field) any {
	switch f.Kind {
	case domain.FieldAmount, domain.FieldRate:
		return f.Number.InexactFloat64()
	case domain.FieldFlag:
		return f.Flag
	default:
		return f.Text
	}
}
