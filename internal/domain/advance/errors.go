package advance

import "errors"

var (
	ErrAdvanceNotFound         = errors.New("advance not found")
	ErrInstallmentNotFound     = errors.New("installment not found")
	ErrInvalidStatusTransition = errors.New("invalid advance status transition")
	ErrAdvanceNotApproved      = errors.New("advance is not approved")
	ErrScheduleHasPayments     = errors.New("installment schedule already has paid installments")
	ErrInstallmentAlreadyPaid  = errors.New("installment already paid")
	ErrInvalidInstallmentCount = errors.New("installment count must be at least 1")
	ErrInvalidAdvanceAmount    = errors.New("advance amount must be greater than 0")
	ErrTooManyInstallments     = errors.New("installment count leaves nothing for the last installment")
	ErrAdvanceLocked           = errors.New("advance is being updated, retry later")
)
