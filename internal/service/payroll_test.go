package service

import (
	"strings"
	"testing"

	"github.com/talentops/talentops/internal/schema"
)

func TestNextPayslipNumber(t *testing.T) {
	tests := []struct {
		name     string
		existing []string
		year     int
		want     string
	}{
		{"first of year", nil, 2026, "PAY-2026-001"},
		{"continues sequence", []string{"PAY-2026-001", "PAY-2026-007"}, 2026, "PAY-2026-008"},
		{"other years ignored", []string{"PAY-2025-042"}, 2026, "PAY-2026-001"},
		{"unordered input", []string{"PAY-2026-010", "PAY-2026-002"}, 2026, "PAY-2026-011"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NextPayslipNumber(tt.existing, tt.year); got != tt.want {
				t.Errorf("NextPayslipNumber() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNextPayslipNumberMalformedFallsBack(t *testing.T) {
	got := NextPayslipNumber([]string{"PAY-2026-001", "garbage"}, 2026)
	if !strings.HasPrefix(got, "PAY-2026-") {
		t.Fatalf("fallback number = %q, want PAY-2026- prefix", got)
	}
	if got == "PAY-2026-002" {
		t.Error("malformed input produced a sequential number, want timestamp fallback")
	}
}

func TestPresentDays(t *testing.T) {
	clock := "2026-08-03T09:00:00Z"
	rows := []schema.Record{
		{"date": "2026-08-03", "clockIn": clock, "clockOut": clock},
		{"date": "2026-08-04", "clockIn": clock, "clockOut": nil}, // forgot to clock out
		{"date": "2026-08-05", "clockIn": nil, "clockOut": nil},
		{"date": "2026-07-31", "clockIn": clock, "clockOut": clock}, // previous month
	}
	if got := PresentDays(rows, "2026-08"); got != 1 {
		t.Errorf("PresentDays() = %d, want 1", got)
	}
}

func TestLeaveDays(t *testing.T) {
	tests := []struct {
		name string
		rows []schema.Record
		want int
	}{
		{
			"fully inside month",
			[]schema.Record{{"status": "approved", "fromDate": "2026-08-10", "toDate": "2026-08-12"}},
			3,
		},
		{
			"clipped at month start",
			[]schema.Record{{"status": "approved", "fromDate": "2026-07-28", "toDate": "2026-08-02"}},
			2,
		},
		{
			"clipped at month end",
			[]schema.Record{{"status": "approved", "fromDate": "2026-08-30", "toDate": "2026-09-05"}},
			2,
		},
		{
			"pending ignored",
			[]schema.Record{{"status": "pending", "fromDate": "2026-08-10", "toDate": "2026-08-12"}},
			0,
		},
		{
			"outside month",
			[]schema.Record{{"status": "approved", "fromDate": "2026-06-01", "toDate": "2026-06-05"}},
			0,
		},
		{
			"single day",
			[]schema.Record{{"status": "approved", "fromDate": "2026-08-15", "toDate": "2026-08-15"}},
			1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LeaveDays(tt.rows, "2026-08"); got != tt.want {
				t.Errorf("LeaveDays() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMonthDisplay(t *testing.T) {
	if got := MonthDisplay("2026-01"); got != "January 2026" {
		t.Errorf("MonthDisplay() = %q, want January 2026", got)
	}
	if got := MonthDisplay("not-a-month"); got != "not-a-month" {
		t.Errorf("MonthDisplay() on bad input = %q, want input unchanged", got)
	}
}
