package payroll

import (
	"testing"
	"time"

	"github.com/buildpro/backoffice-backend-go/internal/domain/advance"
	"github.com/buildpro/backoffice-backend-go/internal/domain/attendance"
	"github.com/buildpro/backoffice-backend-go/internal/domain/payroll"
	"github.com/buildpro/backoffice-backend-go/internal/domain/worker"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func presentDays(workerID string, from time.Time, n int, overtime string) []attendance.Attendance {
	records := make([]attendance.Attendance, 0, n)
	for i := 0; i < n; i++ {
		records = append(records, attendance.Attendance{
			WorkerID:      workerID,
			Date:          from.AddDate(0, 0, i),
			Status:        attendance.StatusPresent,
			TotalHours:    dec("8"),
			OvertimeHours: dec(overtime),
		})
	}
	return records
}

func TestAssemblePayment_NetPay(t *testing.T) {
	period := monthlyPeriod(t, 2024, time.January)
	w := worker.Worker{
		ID:            "w1",
		Name:          "Ramesh Kumar",
		PaymentType:   worker.PaymentTypeDaily,
		WageAmount:    dec("500"),
		BankName:      "State Bank of India",
		AccountNumber: "123456789012",
		IFSCCode:      "SBIN0001234",
	}
	calculatedAt := time.Date(2024, time.February, 1, 10, 0, 0, 0, time.UTC)

	t.Run("gross minus deductions", func(t *testing.T) {
		result := AssemblePayment(PaymentInput{
			Worker:     w,
			Attendance: presentDays("w1", day(2024, time.January, 1), 20, "0.2"),
			Advances: []advance.Advance{
				{WorkerID: "w1", Amount: dec("2000"), Date: day(2024, time.January, 5), Status: advance.StatusApproved},
			},
			Deductions: []payroll.Deduction{
				{WorkerID: "w1", Type: payroll.DeductionPenalty, Amount: dec("125"), Date: day(2024, time.January, 20)},
			},
			Period: period,
		}, calculatedAt)

		assertDecimal(t, "10375", result.Wage.GrossPay)
		assertDecimal(t, "2000", result.AdvanceDeductions)
		assertDecimal(t, "125", result.OtherDeductions)
		assertDecimal(t, "2125", result.TotalDeductions)
		assertDecimal(t, "8250", result.NetPay)
		assert.Equal(t, "Ramesh Kumar", result.WorkerName)
		assert.Equal(t, "****9012", result.MaskedAccountNumber)
		assert.Equal(t, calculatedAt, result.CalculatedAt)
	})

	t.Run("deductions above gross clamp to zero", func(t *testing.T) {
		result := AssemblePayment(PaymentInput{
			Worker:     w,
			Attendance: presentDays("w1", day(2024, time.January, 1), 2, "0"),
			Advances: []advance.Advance{
				{WorkerID: "w1", Amount: dec("5000"), Date: day(2023, time.December, 1), Status: advance.StatusApproved},
			},
			Period: period,
		}, calculatedAt)

		assertDecimal(t, "1000", result.Wage.GrossPay)
		assertDecimal(t, "5000", result.TotalDeductions)
		assert.True(t, result.NetPay.Equal(decimal.Zero))
	})
}

func TestMaskAccountNumber(t *testing.T) {
	assert.Equal(t, "****9012", worker.MaskAccountNumber("123456789012"))
	assert.Equal(t, "****12", worker.MaskAccountNumber("12"))
	assert.Equal(t, "", worker.MaskAccountNumber(""))
}

func TestValidateInput(t *testing.T) {
	t.Run("missing worker", func(t *testing.T) {
		result := ValidateInput(nil, 0)
		assert.False(t, result.IsValid)
		assert.Equal(t, []string{"worker profile not found"}, result.Errors)
	})

	t.Run("no wage and no attendance", func(t *testing.T) {
		w := worker.Worker{PaymentType: worker.PaymentTypeDaily, UPIID: "ramesh@okaxis"}
		result := ValidateInput(&w, 0)
		assert.False(t, result.IsValid)
		assert.Equal(t, []string{"no wage/salary amount specified"}, result.Errors)
		assert.Equal(t, []string{"no attendance records found for period"}, result.Warnings)
	})

	t.Run("incomplete bank details is only a warning", func(t *testing.T) {
		w := worker.Worker{PaymentType: worker.PaymentTypeHourly, WageAmount: dec("400"), AccountNumber: "123456789012"}
		result := ValidateInput(&w, 5)
		assert.True(t, result.IsValid)
		assert.Empty(t, result.Errors)
		assert.Equal(t, []string{"incomplete bank details"}, result.Warnings)
	})

	t.Run("complete profile", func(t *testing.T) {
		w := worker.Worker{PaymentType: worker.PaymentTypeMonthly, SalaryAmount: decPtr("26000"), AccountNumber: "1234", IFSCCode: "SBIN0001234"}
		result := ValidateInput(&w, 20)
		assert.True(t, result.IsValid)
		assert.Empty(t, result.Warnings)
	})
}
