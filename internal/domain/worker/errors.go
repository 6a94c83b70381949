package worker

import "errors"

var (
	ErrWorkerNotFound     = errors.New("worker profile not found")
	ErrNoWageAmount       = errors.New("no wage/salary amount specified")
	ErrInvalidPaymentType = errors.New("invalid payment type")
)
