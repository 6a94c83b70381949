package payroll

import "errors"

var (
	ErrInvalidPeriod            = errors.New("invalid payment period: start date is after end date")
	ErrInvalidPeriodType        = errors.New("invalid payment period type")
	ErrInvalidDeductionType     = errors.New("invalid deduction type")
	ErrDeductionNotFound        = errors.New("deduction not found")
	ErrPaymentRecordNotFound    = errors.New("payment record not found")
	ErrPaymentRecordAlreadyPaid = errors.New("payment record already paid, cannot modify")
	ErrNoWorkers                = errors.New("no workers selected")
)
