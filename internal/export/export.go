// Package export renders report data as downloadable files.
package export

import (
	"fmt"
	"strings"

	"farm-dashboard/internal/analytics"
	"farm-dashboard/internal/model"
)

// Format is an export file format
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ParseFormat accepts csv or xlsx; empty means csv
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatCSV, nil
	case FormatCSV, FormatXLSX:
		return f, nil
	case "excel":
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("unsupported export format %q", s)
	}
}

// ContentType returns the MIME type of the format
func (f Format) ContentType() string {
	if f == FormatXLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}

// Filename names a report export, e.g. agricultural-report-spring-2024.csv
func Filename(season analytics.Season, year int, f Format) string {
	return fmt.Sprintf("agricultural-report-%s-%d.%s", season, year, f)
}

func fieldName(id string, names map[string]string) string {
	if name, ok := names[id]; ok {
		return name
	}
	return analytics.UnknownField
}

func cropLabel(e model.Expense) string {
	if crop := strings.TrimSpace(e.CropType); crop != "" {
		return crop
	}
	return "N/A"
}
