package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"farm-dashboard/internal/analytics"
	"farm-dashboard/internal/model"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

func sampleExpenses() []model.Expense {
	return []model.Expense{
		{
			Description: "Corn seed, hybrid",
			Amount:      decimal.NewFromInt(11400),
			Category:    model.CategorySeeds,
			FieldID:     "1",
			CropType:    "Corn",
			Date:        model.NewDate(2024, time.April, 2),
		},
		{
			Description: "Diesel",
			Amount:      decimal.RequireFromString("312.5"),
			Category:    "Fuel",
			FieldID:     "",
			Date:        model.NewDate(2024, time.April, 9),
		},
		{
			Description: "Urea",
			Amount:      decimal.NewFromInt(800),
			Category:    "fertilizer",
			FieldID:     "99",
			CropType:    "Wheat",
			Date:        model.NewDate(2024, time.May, 1),
		},
	}
}

var sampleFieldNames = map[string]string{"1": "North Field"}

func TestWriteExpensesCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteExpensesCSV(&buf, sampleExpenses(), sampleFieldNames); err != nil {
		t.Fatalf("WriteExpensesCSV: %v", err)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	want := [][]string{
		{"Date", "Description", "Amount", "Category", "Field", "CropType"},
		{"2024-04-02", "Corn seed, hybrid", "11400.00", "seeds", "North Field", "Corn"},
		{"2024-04-09", "Diesel", "312.50", "fuel", "Unknown Field", "N/A"},
		{"2024-05-01", "Urea", "800.00", "fertilizers", "Unknown Field", "Wheat"},
	}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Errorf("csv mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteExpensesCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteExpensesCSV(&buf, nil, nil); err != nil {
		t.Fatalf("WriteExpensesCSV: %v", err)
	}
	if got := buf.String(); got != "Date,Description,Amount,Category,Field,CropType\n" {
		t.Errorf("unexpected output %q", got)
	}
}

func TestWriteXLSX(t *testing.T) {
	wb := Workbook{
		Title:      "Agricultural report, spring 2024",
		Summary:    []SummaryLine{{Label: "Total expenses", Value: 12512.5}, {Label: "Completed tasks", Value: 3}},
		Expenses:   sampleExpenses(),
		FieldNames: sampleFieldNames,
		Profitability: map[string]analytics.CropProfitability{
			"Wheat": {Income: decimal.NewFromInt(2000), Expenses: decimal.NewFromInt(800), Profit: decimal.NewFromInt(1200), MarginPercent: 60},
			"Corn":  {Income: decimal.NewFromInt(9000), Expenses: decimal.NewFromInt(11400), Profit: decimal.NewFromInt(-2400), MarginPercent: -26.67},
		},
	}

	var buf bytes.Buffer
	if err := WriteXLSX(&buf, wb); err != nil {
		t.Fatalf("WriteXLSX: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	if diff := cmp.Diff([]string{"Summary", "Expenses", "Profitability"}, f.GetSheetList()); diff != "" {
		t.Errorf("sheet list mismatch (-want +got):\n%s", diff)
	}

	title, _ := f.GetCellValue("Summary", "A1")
	if title != wb.Title {
		t.Errorf("title = %q", title)
	}

	rows, err := f.GetRows("Expenses")
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("expected header and 3 rows, got %d", len(rows))
	}
	if diff := cmp.Diff(expenseHeader, rows[0]); diff != "" {
		t.Errorf("header mismatch (-want +got):\n%s", diff)
	}
	if rows[2][1] != "Diesel" || rows[2][4] != "Unknown Field" || rows[2][5] != "N/A" {
		t.Errorf("unexpected row %v", rows[2])
	}

	crop, _ := f.GetCellValue("Profitability", "A2")
	if crop != "Corn" {
		t.Errorf("crops must be sorted by name, first is %q", crop)
	}
}

func TestParseFormatAndFilename(t *testing.T) {
	tests := []struct {
		input       string
		expected    Format
		expectError bool
	}{
		{input: "", expected: FormatCSV},
		{input: "CSV", expected: FormatCSV},
		{input: "xlsx", expected: FormatXLSX},
		{input: "excel", expected: FormatXLSX},
		{input: "pdf", expectError: true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.input)
		if tt.expectError {
			if err == nil {
				t.Errorf("ParseFormat(%q): expected error", tt.input)
			}
			continue
		}
		if err != nil || got != tt.expected {
			t.Errorf("ParseFormat(%q) = %q, %v", tt.input, got, err)
		}
	}

	if got := Filename(analytics.SeasonSpring, 2024, FormatCSV); got != "agricultural-report-spring-2024.csv" {
		t.Errorf("Filename = %q", got)
	}
}
