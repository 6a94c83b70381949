package payroll

import (
	"time"

	"github.com/buildpro/backoffice-backend-go/internal/domain/advance"
	"github.com/buildpro/backoffice-backend-go/internal/domain/attendance"
	"github.com/buildpro/backoffice-backend-go/internal/domain/payroll"
	"github.com/buildpro/backoffice-backend-go/internal/domain/worker"
	"github.com/shopspring/decimal"
)

const (
	msgWorkerNotFound     = "worker profile not found"
	msgNoWageAmount       = "no wage/salary amount specified"
	msgNoAttendance       = "no attendance records found for period"
	msgIncompleteBankInfo = "incomplete bank details"
)

// PaymentInput is everything the assembler needs for one worker.
type PaymentInput struct {
	Worker     worker.Worker
	Attendance []attendance.Attendance
	Advances   []advance.Advance
	Deductions []payroll.Deduction
	Period     payroll.Period

	// Claimed holds installment ids already deducted by another unsettled payment record
	Claimed map[string]bool
}

// AssemblePayment nets gross pay against deductions. Net pay never goes below zero.
func AssemblePayment(in PaymentInput, calculatedAt time.Time) payroll.PaymentResult {
	wage := CalculateWage(in.Worker, attendance.Summarize(in.Attendance), in.Period)
	totals := CalculateDeductions(in.Worker.ID, in.Period, in.Advances, in.Deductions, in.Claimed)

	net := wage.GrossPay.Sub(totals.Total)
	if net.IsNegative() {
		net = decimal.Zero
	}

	return payroll.PaymentResult{
		WorkerID:            in.Worker.ID,
		WorkerName:          in.Worker.Name,
		Period:              in.Period,
		Wage:                wage,
		AdvanceDeductions:   totals.AdvanceTotal,
		AdvanceInstallments: totals.Installments,
		OtherDeductions:     totals.DeductionTotal,
		TotalDeductions:     totals.Total,
		NetPay:              net,
		BankName:            in.Worker.BankName,
		MaskedAccountNumber: worker.MaskAccountNumber(in.Worker.AccountNumber),
		IFSCCode:            in.Worker.IFSCCode,
		UPIID:               in.Worker.UPIID,
		CalculatedAt:        calculatedAt,
	}
}

// ValidateInput reports blocking errors and soft warnings for a payment run.
// A nil profile means the worker could not be found.
func ValidateInput(w *worker.Worker, attendanceCount int) payroll.ValidationResult {
	var result payroll.ValidationResult

	if w == nil {
		result.Errors = append(result.Errors, msgWorkerNotFound)
		return result
	}
	if !w.HasWageAmount() {
		result.Errors = append(result.Errors, msgNoWageAmount)
	}
	if attendanceCount == 0 {
		result.Warnings = append(result.Warnings, msgNoAttendance)
	}
	if !w.HasCompleteBankDetails() {
		result.Warnings = append(result.Warnings, msgIncompleteBankInfo)
	}

	result.IsValid = len(result.Errors) == 0
	return result
}
