package model

import "testing"

func TestNormalizeTaskStatus(t *testing.T) {
	tests := map[TaskStatus]TaskStatus{
		"":            TaskPending,
		"pending":     TaskPending,
		"in_progress": TaskInProgress,
		"In-Progress": TaskInProgress,
		"inProgress":  TaskInProgress,
		"completed":   TaskCompleted,
		"blocked":     "blocked",
	}
	for input, want := range tests {
		if got := NormalizeTaskStatus(input); got != want {
			t.Errorf("NormalizeTaskStatus(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestTaskStatusNext(t *testing.T) {
	if got := TaskPending.Next(); got != TaskInProgress {
		t.Errorf("pending.Next() = %q", got)
	}
	if got := TaskStatus("in_progress").Next(); got != TaskCompleted {
		t.Errorf("in_progress.Next() = %q", got)
	}
	if got := TaskCompleted.Next(); got != TaskCompleted {
		t.Errorf("completed.Next() = %q", got)
	}
	if got := TaskStatus("blocked").Next(); got != "blocked" {
		t.Errorf("blocked.Next() = %q, want it left alone", got)
	}
}

func TestNormalizeExpenseCategory(t *testing.T) {
	tests := map[ExpenseCategory]ExpenseCategory{
		"fertilizer":  CategoryFertilizers,
		"Fertilizers": CategoryFertilizers,
		" Seeds ":     CategorySeeds,
		"other":       CategoryOther,
	}
	for input, want := range tests {
		if got := NormalizeExpenseCategory(input); got != want {
			t.Errorf("NormalizeExpenseCategory(%q) = %q, want %q", input, got, want)
		}
	}
}
