package model

import "github.com/shopspring/decimal"

func init() {
	// amounts travel as JSON numbers, not strings
	decimal.MarshalJSONWithoutQuotes = true
}

// Money rounds an amount to cents
func Money(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Sum adds amounts
func Sum(amounts ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}
