package model

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		wantErr  bool
	}{
		{name: "plain date", input: "2024-05-15", expected: "2024-05-15"},
		{name: "RFC3339 keeps calendar day", input: "2024-05-15T23:30:00-05:00", expected: "2024-05-15"},
		{name: "RFC3339 UTC", input: "2024-01-02T08:00:00Z", expected: "2024-01-02"},
		{name: "empty is unset", input: "", expected: ""},
		{name: "garbage", input: "15/05/2024", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.String() != tt.expected {
				t.Errorf("ParseDate(%q) = %q, want %q", tt.input, got.String(), tt.expected)
			}
		})
	}
}

func TestDateJSON(t *testing.T) {
	type wrapper struct {
		Due Date `json:"due"`
	}

	data, err := json.Marshal(wrapper{Due: NewDate(2024, time.March, 9)})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `{"due":"2024-03-09"}` {
		t.Errorf("unexpected JSON %s", data)
	}

	data, err = json.Marshal(wrapper{})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `{"due":null}` {
		t.Errorf("zero date should encode as null, got %s", data)
	}

	var w wrapper
	if err := json.Unmarshal([]byte(`{"due":null}`), &w); err != nil {
		t.Fatalf("unmarshal null: %v", err)
	}
	if !w.Due.IsZero() {
		t.Errorf("null should decode to zero date, got %v", w.Due)
	}

	if err := json.Unmarshal([]byte(`{"due":42}`), &w); err == nil {
		t.Error("expected error decoding a number into Date")
	}
}

func TestDateSQL(t *testing.T) {
	v, err := Date{}.Value()
	if err != nil || v != nil {
		t.Errorf("zero date Value() = %v, %v; want nil, nil", v, err)
	}

	v, err = NewDate(2024, time.June, 1).Value()
	if err != nil || v != "2024-06-01" {
		t.Errorf("Value() = %v, %v", v, err)
	}

	sources := []any{
		"2024-06-01",
		[]byte("2024-06-01"),
		time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC),
	}
	for _, src := range sources {
		var d Date
		if err := d.Scan(src); err != nil {
			t.Fatalf("Scan(%T): %v", src, err)
		}
		if d.String() != "2024-06-01" {
			t.Errorf("Scan(%T) = %s", src, d)
		}
	}

	var d Date
	if err := d.Scan(3.14); err == nil {
		t.Error("expected error scanning float")
	}
}

func TestDaysFrom(t *testing.T) {
	today := time.Date(2024, time.May, 10, 15, 45, 0, 0, time.UTC)

	tests := []struct {
		date     Date
		expected int
	}{
		{NewDate(2024, time.May, 10), 0},
		{NewDate(2024, time.May, 13), 3},
		{NewDate(2024, time.April, 30), -10},
		{NewDate(2024, time.July, 9), 60},
	}

	for _, tt := range tests {
		if got := tt.date.DaysFrom(today); got != tt.expected {
			t.Errorf("%s.DaysFrom(%s) = %d, want %d", tt.date, today.Format(time.RFC3339), got, tt.expected)
		}
	}
}
