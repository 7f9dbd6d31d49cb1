package xlsexport

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const (
	dateFormat  = "2006-01-02"
	moneyFormat = "#,##0.00"
)

func writeColumn(f *excelize.File, sheet string, col, row int, value interface{}) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	switch v := value.(type) {
	case decimal.Decimal:
		return f.SetCellFloat(sheet, cell, v.InexactFloat64(), -1, 64)
	case time.Time:
		if v.IsZero() {
			return nil
		}
		return f.SetCellValue(sheet, cell, v.Format(dateFormat))
	case *time.Time:
		if v == nil || v.IsZero() {
			return nil
		}
		return f.SetCellValue(sheet, cell, v.Format(dateFormat))
	}
	return f.SetCellValue(sheet, cell, value)
}

func writeRow(f *excelize.File, sheet string, row int, values ...interface{}) error {
	for idx, value := range values {
		if err := writeColumn(f, sheet, idx+1, row, value); err != nil {
			return err
		}
	}
	return nil
}

func writeHeader(f *excelize.File, sheet string, row int, headers []string) (int, error) {
	row++
	style, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{
			Horizontal: "center",
		},
		Font: &excelize.Font{
			Bold:   true,
			Family: "Calibri",
			Size:   11,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Pattern: 1,
			Color:   []string{"DDEBF7"},
		},
	})
	if err != nil {
		return row, err
	}
	cellFirst, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return row, err
	}
	cellLast, err := excelize.CoordinatesToCellName(len(headers), row)
	if err != nil {
		return row, err
	}
	if err = f.SetCellStyle(sheet, cellFirst, cellLast, style); err != nil {
		return row, err
	}
	lastCol, err := excelize.ColumnNumberToName(len(headers))
	if err != nil {
		return row, err
	}
	if err = f.SetColWidth(sheet, "A", lastCol, 20); err != nil {
		return row, err
	}
	headerValues := make([]interface{}, 0, len(headers))
	for _, value := range headers {
		headerValues = append(headerValues, value)
	}
	return row, writeRow(f, sheet, row, headerValues...)
}

// applyMoneyStyle formats the given columns of data rows as amounts.
func applyMoneyStyle(f *excelize.File, sheet string, rowFrom, rowTo int, cols ...int) error {
	if rowTo < rowFrom {
		return nil
	}
	format := moneyFormat
	style, err := f.NewStyle(&excelize.Style{
		CustomNumFmt: &format,
		Alignment: &excelize.Alignment{
			Horizontal: "right",
		},
	})
	if err != nil {
		return err
	}
	for _, col := range cols {
		cellFirst, err := excelize.CoordinatesToCellName(col, rowFrom)
		if err != nil {
			return err
		}
		cellLast, err := excelize.CoordinatesToCellName(col, rowTo)
		if err != nil {
			return err
		}
		if err = f.SetCellStyle(sheet, cellFirst, cellLast, style); err != nil {
			return err
		}
	}
	return nil
}
