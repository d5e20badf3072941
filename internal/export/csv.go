package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"farm-dashboard/internal/model"
)

var expenseHeader = []string{"Date", "Description", "Amount", "Category", "Field", "CropType"}

// WriteExpensesCSV writes one row per expense after a header row. Field
// ids are resolved through fieldNames and missing crops print as N/A.
func WriteExpensesCSV(w io.Writer, expenses []model.Expense, fieldNames map[string]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(expenseHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, e := range expenses {
		row := []string{
			e.Date.String(),
			e.Description,
			e.Amount.StringFixed(2),
			string(model.NormalizeExpenseCategory(e.Category)),
			fieldName(e.FieldID, fieldNames),
			cropLabel(e),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
