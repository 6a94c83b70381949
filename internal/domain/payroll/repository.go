package payroll

import (
	"context"
	"time"
)

type DeductionRepository interface {
	Create(ctx context.Context, deduction Deduction) (Deduction, error)
	GetByID(ctx context.Context, id string) (Deduction, error)

	// ListByWorker returns deductions with start <= date <= end
	ListByWorker(ctx context.Context, workerID string, start, end time.Time) ([]Deduction, error)
	Delete(ctx context.Context, id string) error
}

type PaymentRecordRepository interface {
	// Upsert replaces the pending record of (worker, period start, period end).
	// Returns ErrPaymentRecordAlreadyPaid when that record is already paid.
	Upsert(ctx context.Context, record PaymentRecord) (PaymentRecord, error)
	GetByID(ctx context.Context, id string) (PaymentRecord, error)
	List(ctx context.Context, filter PaymentRecordFilter) ([]PaymentRecord, error)
	MarkPaid(ctx context.Context, ids []string, paidAt time.Time) error
}
