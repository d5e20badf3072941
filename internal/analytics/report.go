package analytics

import (
	"fmt"
	"strings"
	"time"

	"farm-dashboard/internal/model"

	"github.com/shopspring/decimal"
)

// Season selects a reporting window within a year
type Season string

const (
	SeasonAll    Season = "all"
	SeasonSpring Season = "spring"
	SeasonSummer Season = "summer"
	SeasonFall   Season = "fall"
	SeasonWinter Season = "winter"
)

// ParseSeason accepts a season name; empty means SeasonAll
func ParseSeason(s string) (Season, error) {
	switch season := Season(strings.ToLower(strings.TrimSpace(s))); season {
	case "":
		return SeasonAll, nil
	case SeasonAll, SeasonSpring, SeasonSummer, SeasonFall, SeasonWinter:
		return season, nil
	case "autumn":
		return SeasonFall, nil
	default:
		return "", fmt.Errorf("unknown season %q: expected all, spring, summer, fall or winter", s)
	}
}

// SeasonRange returns the inclusive date window of season in year.
// Winter runs into the following year; SeasonAll is the calendar year.
func SeasonRange(season Season, year int) (model.Date, model.Date) {
	switch season {
	case SeasonSpring:
		return model.NewDate(year, time.March, 20), model.NewDate(year, time.June, 20)
	case SeasonSummer:
		return model.NewDate(year, time.June, 21), model.NewDate(year, time.September, 22)
	case SeasonFall:
		return model.NewDate(year, time.September, 23), model.NewDate(year, time.December, 20)
	case SeasonWinter:
		return model.NewDate(year, time.December, 21), model.NewDate(year+1, time.March, 19)
	default:
		return model.NewDate(year, time.January, 1), model.NewDate(year, time.December, 31)
	}
}

// ReportFilter narrows report data. Start and End override the season
// only when both are set.
type ReportFilter struct {
	Season   Season     `json:"season"`
	Year     int        `json:"year"`
	Start    model.Date `json:"startDate"`
	End      model.Date `json:"endDate"`
	FieldID  string     `json:"fieldId,omitempty"`
	CropType string     `json:"cropType,omitempty"`
}

// Window returns the inclusive date range the filter selects
func (f ReportFilter) Window() (model.Date, model.Date) {
	if !f.Start.IsZero() && !f.End.IsZero() {
		return f.Start, f.End
	}
	return SeasonRange(f.Season, f.Year)
}

// ReportData is the raw material of a report
type ReportData struct {
	Fields    []model.Field    `json:"fields"`
	Tasks     []model.Task     `json:"tasks"`
	Expenses  []model.Expense  `json:"expenses"`
	Resources []model.Resource `json:"resources"`
	Income    []model.Income   `json:"income"`
}

// FilterReport applies f. Expenses and income are windowed by date, tasks
// by due date. Fields match on id and current crop; tasks inherit the crop
// of their field. Resources are never filtered.
func FilterReport(data ReportData, f ReportFilter) ReportData {
	start, end := f.Window()
	crops := make(map[string]string, len(data.Fields))
	for _, field := range data.Fields {
		crops[field.ID] = field.CurrentCrop
	}

	matchField := func(id string) bool { return f.FieldID == "" || id == f.FieldID }
	matchCrop := func(crop string) bool { return f.CropType == "" || strings.EqualFold(crop, f.CropType) }

	out := ReportData{
		Fields:    []model.Field{},
		Tasks:     []model.Task{},
		Expenses:  []model.Expense{},
		Resources: data.Resources,
		Income:    []model.Income{},
	}
	for _, field := range data.Fields {
		if matchField(field.ID) && matchCrop(field.CurrentCrop) {
			out.Fields = append(out.Fields, field)
		}
	}
	for _, t := range data.Tasks {
		if inRange(t.DueDate, start, end) && matchField(t.FieldID) && matchCrop(crops[t.FieldID]) {
			out.Tasks = append(out.Tasks, t)
		}
	}
	for _, e := range data.Expenses {
		if inRange(e.Date, start, end) && matchField(e.FieldID) && matchCrop(e.CropType) {
			out.Expenses = append(out.Expenses, e)
		}
	}
	for _, i := range data.Income {
		if inRange(i.Date, start, end) && matchField(i.FieldID) && matchCrop(i.CropType) {
			out.Income = append(out.Income, i)
		}
	}
	return out
}

// ReportSummary holds the headline numbers of a report
type ReportSummary struct {
	TotalExpenses      decimal.Decimal `json:"totalExpenses"`
	TotalIncome        decimal.Decimal `json:"totalIncome"`
	CompletedTasks     int             `json:"completedTasks"`
	AvgExpensePerField decimal.Decimal `json:"avgExpensePerField"`
	TotalFields        int             `json:"totalFields"`
	TotalTasks         int             `json:"totalTasks"`
}

// SummarizeReport computes the headline numbers of already filtered data
func SummarizeReport(data ReportData) ReportSummary {
	total := TotalExpenses(data.Expenses)
	income := decimal.Zero
	for _, i := range data.Income {
		income = income.Add(i.Amount)
	}

	summary := ReportSummary{
		TotalExpenses:      model.Money(total),
		TotalIncome:        model.Money(income),
		AvgExpensePerField: decimal.Zero,
		TotalFields:        len(data.Fields),
		TotalTasks:         len(data.Tasks),
	}
	for _, t := range data.Tasks {
		if model.NormalizeTaskStatus(t.Status) == model.TaskCompleted {
			summary.CompletedTasks++
		}
	}
	if len(data.Fields) > 0 {
		summary.AvgExpensePerField = model.Money(total.Div(decimal.NewFromInt(int64(len(data.Fields)))))
	}
	return summary
}

// TaskStatusCounts counts tasks per canonical status; every status is present
func TaskStatusCounts(tasks []model.Task) map[model.TaskStatus]int {
	counts := make(map[model.TaskStatus]int, len(model.TaskStatuses))
	for _, s := range model.TaskStatuses {
		counts[s] = 0
	}
	for _, t := range tasks {
		counts[model.NormalizeTaskStatus(t.Status)]++
	}
	return counts
}

// StockOverviewStats splits resources into below-minimum and normal stock
type StockOverviewStats struct {
	LowStock    int `json:"lowStock"`
	NormalStock int `json:"normalStock"`
}

// StockOverview counts resources whose quantity is below their minimum
func StockOverview(resources []model.Resource) StockOverviewStats {
	var stats StockOverviewStats
	for _, r := range resources {
		if r.Quantity < r.MinimumStock {
			stats.LowStock++
		} else {
			stats.NormalStock++
		}
	}
	return stats
}
