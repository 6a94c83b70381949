package advance

import (
	"context"
	"time"
)

type AdvanceService interface {
	CreateAdvance(ctx context.Context, req CreateAdvanceRequest) (AdvanceResponse, error)
	GetAdvance(ctx context.Context, id string) (AdvanceResponse, error)
	ListAdvances(ctx context.Context, filter AdvanceFilter) ([]AdvanceResponse, error)

	ApproveAdvance(ctx context.Context, req ApproveAdvanceRequest) (AdvanceResponse, error)
	RejectAdvance(ctx context.Context, id string) (AdvanceResponse, error)
	AdjustAdvance(ctx context.Context, id string) (AdvanceResponse, error)

	// CreateSchedule splits the advance into installments
	CreateSchedule(ctx context.Context, req CreateScheduleRequest) (AdvanceResponse, error)
	PayInstallment(ctx context.Context, req PayInstallmentRequest) (AdvanceResponse, error)

	// SettleInstallments marks installments recovered through payroll as paid.
	// Installments already paid are skipped.
	SettleInstallments(ctx context.Context, refs []InstallmentRef, paidDate time.Time) (int, error)

	// MarkOverdue is run by the scheduler
	MarkOverdue(ctx context.Context, now time.Time) (int, error)
}
