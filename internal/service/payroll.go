package service

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/talentops/talentops/internal/domain"
	"github.com/talentops/talentops/internal/gateway"
	"github.com/talentops/talentops/internal/schema"
)

var payslipNumber = regexp.MustCompile(`^PAY-(\d{4})-(\d+)$`)

// PayrollService computes monthly pay from attendance and leave records and
// issues numbered payslips.
type PayrollService struct {
	gw *gateway.Gateway
}

// NewPayrollService creates a PayrollService bound to a gateway.
func NewPayrollService(gw *gateway.Gateway) *PayrollService {
	return &PayrollService{gw: gw}
}

// NextPayslipNumber derives the next sequential payslip number for a year
// from the numbers already issued, formatted PAY-YYYY-NNN. When no existing
// number parses, a timestamp suffix guarantees uniqueness instead of a
// sequence.
func NextPayslipNumber(existing []string, year int) string {
	max := 0
	for _, num := range existing {
		m := payslipNumber.FindStringSubmatch(num)
		if m == nil {
			return fmt.Sprintf("PAY-%d-%d", year, time.Now().UnixMilli())
		}
		if y, _ := strconv.Atoi(m[1]); y != year {
			continue
		}
		if n, err := strconv.Atoi(m[2]); err == nil && n > max {
			max = n
		}
	}
	return fmt.Sprintf("PAY-%d-%03d", year, max+1)
}

// PresentDays counts the attendance rows within a month that have both a
// clock-in and a clock-out. Half-finished days do not count.
func PresentDays(rows []schema.Record, month string) int {
	present := 0
	for _, row := range rows {
		date, _ := row["date"].(string)
		if len(date) < 7 || date[:7] != month {
			continue
		}
		if row["clockIn"] == nil || row["clockOut"] == nil {
			continue
		}
		present++
	}
	return present
}

// LeaveDays counts the approved leave days falling inside a month. Ranges
// are inclusive on both ends and clipped to the month's boundaries.
func LeaveDays(rows []schema.Record, month string) int {
	monthStart, err := time.Parse("2006-01", month)
	if err != nil {
		return 0
	}
	monthEnd := monthStart.AddDate(0, 1, -1)

	days := 0
	for _, row := range rows {
		if status, _ := row["status"].(string); status != "approved" {
			continue
		}
		from, err := time.Parse("2006-01-02", fmt.Sprint(row["fromDate"]))
		if err != nil {
			continue
		}
		to, err := time.Parse("2006-01-02", fmt.Sprint(row["toDate"]))
		if err != nil {
			continue
		}
		if from.Before(monthStart) {
			from = monthStart
		}
		if to.After(monthEnd) {
			to = monthEnd
		}
		if to.Before(from) {
			continue
		}
		days += int(to.Sub(from).Hours()/24) + 1
	}
	return days
}

// MonthDisplay renders a YYYY-MM month as "January 2026" for documents.
func MonthDisplay(month string) string {
	t, err := time.Parse("2006-01", month)
	if err != nil {
		return month
	}
	return t.Format("January 2006")
}

// GeneratePayroll computes one employee-month of pay. Unapproved leave days
// beyond the attendance record reduce net pay proportionally to a 30-day
// month.
func (s *PayrollService) GeneratePayroll(ctx context.Context, employeeID, month string, baseSalary, allowances float64, sess domain.Session) (schema.Record, error) {
	var attendance, leaves []schema.Record
	for _, row := range s.gw.List(ctx, schema.TableAttendance, sess.OrgID) {
		if row["employeeId"] == employeeID {
			attendance = append(attendance, row)
		}
	}
	for _, row := range s.gw.List(ctx, schema.TableLeaves, sess.OrgID) {
		if row["employeeId"] == employeeID {
			leaves = append(leaves, row)
		}
	}

	present := PresentDays(attendance, month)
	onLeave := LeaveDays(leaves, month)

	absent := 30 - present - onLeave
	if absent < 0 {
		absent = 0
	}
	deductions := round2(baseSalary / 30 * float64(absent))
	netPay := round2(baseSalary + allowances - deductions)

	return s.gw.Create(ctx, schema.TablePayroll, schema.Record{
		"employeeId": employeeID,
		"month":      month,
		"baseSalary": baseSalary,
		"allowances": allowances,
		"deductions": deductions,
		"netPay":     netPay,
		"status":     "draft",
	}, sess.UserID, sess.OrgID)
}

// IssuePayslip creates the numbered payslip row for an approved payroll
// record.
func (s *PayrollService) IssuePayslip(ctx context.Context, payrollID string, sess domain.Session) (schema.Record, error) {
	payroll, err := s.gw.Get(ctx, schema.TablePayroll, payrollID, sess.OrgID)
	if err != nil {
		return nil, fmt.Errorf("load payroll %s: %w", payrollID, err)
	}

	var existing []string
	for _, slip := range s.gw.List(ctx, schema.TablePayslips, sess.OrgID) {
		if num, _ := slip["payslipNumber"].(string); num != "" {
			existing = append(existing, num)
		}
	}

	return s.gw.Create(ctx, schema.TablePayslips, schema.Record{
		"employeeId":    payroll["employeeId"],
		"payrollId":     payrollID,
		"payslipNumber": NextPayslipNumber(existing, time.Now().UTC().Year()),
		"month":         payroll["month"],
	}, sess.UserID, sess.OrgID)
}
