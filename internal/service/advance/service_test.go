package advance

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/buildpro/backoffice-backend-go/internal/domain/advance"
	"github.com/buildpro/backoffice-backend-go/internal/domain/worker"
	"github.com/buildpro/backoffice-backend-go/internal/pkg/lock"
	"github.com/buildpro/backoffice-backend-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *AdvanceServiceImpl {
	t.Helper()
	workers := memory.NewWorkerRepository()
	_, err := workers.Create(context.Background(), worker.Worker{ID: "w1", Name: "Ramesh", PaymentType: worker.PaymentTypeDaily, WageAmount: dec("500"), Active: true})
	require.NoError(t, err)

	svc := NewAdvanceService(memory.NewAdvanceRepository(), workers, lock.NewLocalLocker()).(*AdvanceServiceImpl)
	svc.now = func() time.Time { return time.Date(2024, time.January, 16, 10, 0, 0, 0, time.UTC) }
	return svc
}

func createApproved(t *testing.T, svc *AdvanceServiceImpl, amount string) advance.AdvanceResponse {
	t.Helper()
	ctx := context.Background()
	created, err := svc.CreateAdvance(ctx, advance.CreateAdvanceRequest{WorkerID: "w1", Amount: dec(amount), Date: "2024-01-15", Reason: "Family function"})
	require.NoError(t, err)
	assert.Equal(t, "pending", created.Status)

	approved, err := svc.ApproveAdvance(ctx, advance.ApproveAdvanceRequest{ID: created.ID, ApprovedBy: "site-manager"})
	require.NoError(t, err)
	return approved
}

func TestAdvanceService_Lifecycle(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	approved := createApproved(t, svc, "15000")
	assert.Equal(t, "approved", approved.Status)
	require.NotNil(t, approved.ApprovedBy)
	assert.Equal(t, "site-manager", *approved.ApprovedBy)

	// Act
	scheduled, err := svc.CreateSchedule(ctx, advance.CreateScheduleRequest{AdvanceID: approved.ID, Count: 3, StartDate: "2024-01-15"})

	// Assert
	require.NoError(t, err)
	require.Len(t, scheduled.Installments, 3)
	assert.Equal(t, "2024-02-15", scheduled.Installments[0].DueDate)
	assert.Equal(t, "2024-04-15", scheduled.Installments[2].DueDate)

	paid, err := svc.PayInstallment(ctx, advance.PayInstallmentRequest{AdvanceID: approved.ID, InstallmentID: scheduled.Installments[0].ID, PaidDate: "2024-02-15"})
	require.NoError(t, err)
	assert.Equal(t, "partially_recovered", paid.Status)
	assert.True(t, dec("5000").Equal(paid.RecoveredAmount))
	assert.True(t, dec("10000").Equal(paid.OutstandingAmount))

	_, err = svc.CreateSchedule(ctx, advance.CreateScheduleRequest{AdvanceID: approved.ID, Count: 2, StartDate: "2024-03-01"})
	assert.ErrorIs(t, err, advance.ErrScheduleHasPayments)

	for _, inst := range scheduled.Installments[1:] {
		paid, err = svc.PayInstallment(ctx, advance.PayInstallmentRequest{AdvanceID: approved.ID, InstallmentID: inst.ID})
		require.NoError(t, err)
	}
	assert.Equal(t, "fully_recovered", paid.Status)
	assert.True(t, paid.OutstandingAmount.IsZero())

	_, err = svc.AdjustAdvance(ctx, approved.ID)
	assert.ErrorIs(t, err, advance.ErrInvalidStatusTransition)
}

func TestAdvanceService_InvalidTransitions(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	_, err := svc.CreateAdvance(ctx, advance.CreateAdvanceRequest{WorkerID: "ghost", Amount: dec("100"), Date: "2024-01-15"})
	assert.ErrorIs(t, err, worker.ErrWorkerNotFound)

	created, err := svc.CreateAdvance(ctx, advance.CreateAdvanceRequest{WorkerID: "w1", Amount: dec("1000"), Date: "2024-01-15"})
	require.NoError(t, err)

	_, err = svc.CreateSchedule(ctx, advance.CreateScheduleRequest{AdvanceID: created.ID, Count: 2, StartDate: "2024-01-15"})
	assert.ErrorIs(t, err, advance.ErrAdvanceNotApproved)

	rejected, err := svc.RejectAdvance(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "rejected", rejected.Status)

	_, err = svc.ApproveAdvance(ctx, advance.ApproveAdvanceRequest{ID: created.ID, ApprovedBy: "x"})
	assert.ErrorIs(t, err, advance.ErrInvalidStatusTransition)

	_, err = svc.GetAdvance(ctx, "missing")
	assert.ErrorIs(t, err, advance.ErrAdvanceNotFound)
}

func TestAdvanceService_AdjustStopsRecovery(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	approved := createApproved(t, svc, "4000")

	adjusted, err := svc.AdjustAdvance(ctx, approved.ID)
	require.NoError(t, err)
	assert.Equal(t, "adjusted", adjusted.Status)

	_, err = svc.CreateSchedule(ctx, advance.CreateScheduleRequest{AdvanceID: approved.ID, Count: 2, StartDate: "2024-01-15"})
	assert.ErrorIs(t, err, advance.ErrAdvanceNotApproved)
}

func TestAdvanceService_ConcurrentPaymentsOnOneAdvance(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	approved := createApproved(t, svc, "12000")

	scheduled, err := svc.CreateSchedule(ctx, advance.CreateScheduleRequest{AdvanceID: approved.ID, Count: 12, StartDate: "2024-01-15"})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for _, inst := range scheduled.Installments {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			_, err := svc.PayInstallment(ctx, advance.PayInstallmentRequest{AdvanceID: approved.ID, InstallmentID: id})
			assert.NoError(t, err)
		}(inst.ID)
	}
	wg.Wait()

	final, err := svc.GetAdvance(ctx, approved.ID)
	require.NoError(t, err)
	assert.Equal(t, "fully_recovered", final.Status)
	assert.True(t, dec("12000").Equal(final.RecoveredAmount))
	for _, inst := range final.Installments {
		assert.Equal(t, "paid", inst.Status)
	}
}

func TestAdvanceService_MarkOverdue(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	approved := createApproved(t, svc, "3000")

	_, err := svc.CreateSchedule(ctx, advance.CreateScheduleRequest{AdvanceID: approved.ID, Count: 3, StartDate: "2024-01-15"})
	require.NoError(t, err)

	n, err := svc.MarkOverdue(ctx, day(2024, time.March, 16))
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = svc.MarkOverdue(ctx, day(2024, time.March, 16))
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	got, err := svc.GetAdvance(ctx, approved.ID)
	require.NoError(t, err)
	assert.Equal(t, "overdue", got.Installments[0].Status)
	assert.Equal(t, "overdue", got.Installments[1].Status)
	assert.Equal(t, "pending", got.Installments[2].Status)
}

func TestAdvanceService_SettleInstallments(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	approved := createApproved(t, svc, "15000")
	scheduled, err := svc.CreateSchedule(ctx, advance.CreateScheduleRequest{AdvanceID: approved.ID, Count: 3, StartDate: "2024-01-15"})
	require.NoError(t, err)

	_, err = svc.PayInstallment(ctx, advance.PayInstallmentRequest{AdvanceID: approved.ID, InstallmentID: scheduled.Installments[0].ID, PaidDate: "2024-02-15"})
	require.NoError(t, err)

	refs := []advance.InstallmentRef{
		{AdvanceID: approved.ID, InstallmentID: scheduled.Installments[0].ID, Amount: dec("5000")},
		{AdvanceID: approved.ID, InstallmentID: scheduled.Installments[1].ID, Amount: dec("5000")},
		{AdvanceID: approved.ID, InstallmentID: "gone", Amount: dec("5000")},
	}

	// Act
	settled, err := svc.SettleInstallments(ctx, refs, time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC))

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 1, settled)

	got, err := svc.GetAdvance(ctx, approved.ID)
	require.NoError(t, err)
	assert.Equal(t, "partially_recovered", got.Status)
	assert.True(t, dec("10000").Equal(got.RecoveredAmount))
	require.NotNil(t, got.Installments[1].PaidDate)
	assert.Equal(t, "2024-03-31", *got.Installments[1].PaidDate)

	_, err = svc.SettleInstallments(ctx, []advance.InstallmentRef{{AdvanceID: "missing", InstallmentID: "x"}}, time.Now())
	assert.ErrorIs(t, err, advance.ErrAdvanceNotFound)
}
