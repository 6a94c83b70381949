package payroll

import (
	"github.com/buildpro/backoffice-backend-go/internal/domain/attendance"
	"github.com/buildpro/backoffice-backend-go/internal/domain/payroll"
	"github.com/buildpro/backoffice-backend-go/internal/domain/worker"
	"github.com/shopspring/decimal"
)

var (
	hoursPerDay        = decimal.NewFromInt(8)
	overtimeMultiplier = decimal.NewFromFloat(1.5)
)

func round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// CalculateWage computes gross pay for one worker over one period.
//
//	daily_wages:   wage * presentDays
//	monthly_wages: base * presentDays / workingDays   (base = salary, else wage)
//	hourly:        wage / 8 * totalHours
//
// Overtime is paid on top at 1.5x the hourly equivalent: wage / 8 for daily and
// hourly workers, base / (workingDays * 8) for monthly workers. A period without
// weekdays yields zero pay for monthly workers.
func CalculateWage(w worker.Worker, summary attendance.Summary, period payroll.Period) payroll.Wage {
	workingDays := period.WorkingDays()

	var basePay, hourly decimal.Decimal
	baseRate := w.WageAmount

	switch w.PaymentType {
	case worker.PaymentTypeDaily:
		basePay = w.WageAmount.Mul(summary.PresentDays)
		hourly = w.WageAmount.Div(hoursPerDay)
	case worker.PaymentTypeMonthly:
		baseRate = w.MonthlyBase()
		if workingDays > 0 {
			days := decimal.NewFromInt(int64(workingDays))
			basePay = baseRate.Mul(summary.PresentDays).Div(days)
			hourly = baseRate.Div(days.Mul(hoursPerDay))
		}
	default:
		hourly = w.WageAmount.Div(hoursPerDay)
		basePay = hourly.Mul(summary.TotalHours)
	}

	overtimeRate := hourly.Mul(overtimeMultiplier)
	base := round2(basePay)
	overtime := round2(overtimeRate.Mul(summary.OvertimeHours))

	return payroll.Wage{
		PaymentType:   w.PaymentType,
		PresentDays:   summary.PresentDays,
		TotalHours:    summary.TotalHours,
		OvertimeHours: summary.OvertimeHours,
		WorkingDays:   workingDays,
		BaseRate:      baseRate,
		HourlyRate:    round2(hourly),
		OvertimeRate:  round2(overtimeRate),
		BasePay:       base,
		OvertimePay:   overtime,
		GrossPay:      base.Add(overtime),
	}
}
