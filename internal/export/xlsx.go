package export

import (
	"fmt"
	"io"
	"slices"

	"farm-dashboard/internal/analytics"
	"farm-dashboard/internal/model"

	"github.com/xuri/excelize/v2"
)

const (
	sheetSummary       = "Summary"
	sheetExpenses      = "Expenses"
	sheetProfitability = "Profitability"
)

// SummaryLine is one labelled figure on the summary sheet
type SummaryLine struct {
	Label string
	Value any
}

// Workbook is the content of an XLSX report
type Workbook struct {
	Title         string
	Summary       []SummaryLine
	Expenses      []model.Expense
	FieldNames    map[string]string
	Profitability map[string]analytics.CropProfitability
}

// WriteXLSX renders wb as a workbook with summary, expense and
// profitability sheets
func WriteXLSX(w io.Writer, wb Workbook) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetSummary); err != nil {
		return err
	}
	for _, name := range []string{sheetExpenses, sheetProfitability} {
		if _, err := f.NewSheet(name); err != nil {
			return err
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9EAD3"}},
	})
	if err != nil {
		return err
	}

	// Summary
	if err := f.SetCellValue(sheetSummary, "A1", wb.Title); err != nil {
		return err
	}
	_ = f.SetCellStyle(sheetSummary, "A1", "A1", headerStyle)
	for i, line := range wb.Summary {
		row := i + 3
		_ = f.SetCellValue(sheetSummary, fmt.Sprintf("A%d", row), line.Label)
		_ = f.SetCellValue(sheetSummary, fmt.Sprintf("B%d", row), line.Value)
	}
	_ = f.SetColWidth(sheetSummary, "A", "A", 28)
	_ = f.SetColWidth(sheetSummary, "B", "B", 16)

	// Expenses
	if err := writeHeader(f, sheetExpenses, expenseHeader, headerStyle); err != nil {
		return err
	}
	for i, e := range wb.Expenses {
		row := i + 2
		_ = f.SetCellValue(sheetExpenses, fmt.Sprintf("A%d", row), e.Date.String())
		_ = f.SetCellValue(sheetExpenses, fmt.Sprintf("B%d", row), e.Description)
		_ = f.SetCellValue(sheetExpenses, fmt.Sprintf("C%d", row), e.Amount.InexactFloat64())
		_ = f.SetCellValue(sheetExpenses, fmt.Sprintf("D%d", row), string(model.NormalizeExpenseCategory(e.Category)))
		_ = f.SetCellValue(sheetExpenses, fmt.Sprintf("E%d", row), fieldName(e.FieldID, wb.FieldNames))
		_ = f.SetCellValue(sheetExpenses, fmt.Sprintf("F%d", row), cropLabel(e))
	}
	_ = f.SetColWidth(sheetExpenses, "B", "B", 36)

	// Profitability, one row per crop in name order
	header := []string{"Crop", "Income", "Expenses", "Profit", "Margin %"}
	if err := writeHeader(f, sheetProfitability, header, headerStyle); err != nil {
		return err
	}
	crops := make([]string, 0, len(wb.Profitability))
	for crop := range wb.Profitability {
		crops = append(crops, crop)
	}
	slices.Sort(crops)
	for i, crop := range crops {
		p := wb.Profitability[crop]
		row := i + 2
		_ = f.SetCellValue(sheetProfitability, fmt.Sprintf("A%d", row), crop)
		_ = f.SetCellValue(sheetProfitability, fmt.Sprintf("B%d", row), p.Income.InexactFloat64())
		_ = f.SetCellValue(sheetProfitability, fmt.Sprintf("C%d", row), p.Expenses.InexactFloat64())
		_ = f.SetCellValue(sheetProfitability, fmt.Sprintf("D%d", row), p.Profit.InexactFloat64())
		_ = f.SetCellValue(sheetProfitability, fmt.Sprintf("E%d", row), p.MarginPercent)
	}

	f.SetActiveSheet(0)
	return f.Write(w)
}

func writeHeader(f *excelize.File, sheet string, header []string, style int) error {
	for i, h := range header {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		cell := fmt.Sprintf("%s1", col)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
		_ = f.SetCellStyle(sheet, cell, cell, style)
	}
	return nil
}
