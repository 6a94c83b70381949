package worker

import (
	"context"
	"testing"

	"github.com/buildpro/backoffice-backend-go/internal/domain/worker"
	"github.com/buildpro/backoffice-backend-go/internal/pkg/validator"
	"github.com/buildpro/backoffice-backend-go/internal/repository/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkerService_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	svc := NewWorkerService(memory.NewWorkerRepository())

	created, err := svc.CreateWorker(ctx, worker.CreateWorkerRequest{
		Name:          " Suresh Patil ",
		Phone:         "9876543210",
		PaymentType:   "daily_wages",
		WageAmount:    decimal.NewFromInt(650),
		BankName:      "State Bank of India",
		AccountNumber: "123456789012",
		IFSCCode:      "sbin0001234",
	})
	require.NoError(t, err)

	assert.Equal(t, "Suresh Patil", created.Name)
	assert.Equal(t, "****9012", created.MaskedAccountNumber)
	assert.Equal(t, "SBIN0001234", created.IFSCCode)
	assert.True(t, created.Active)

	got, err := svc.GetWorker(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = svc.GetWorker(ctx, "missing")
	assert.ErrorIs(t, err, worker.ErrWorkerNotFound)
}

func TestWorkerService_CreateValidation(t *testing.T) {
	ctx := context.Background()
	svc := NewWorkerService(memory.NewWorkerRepository())

	_, err := svc.CreateWorker(ctx, worker.CreateWorkerRequest{PaymentType: "weekly", IFSCCode: "XYZ", WageAmount: decimal.NewFromInt(1)})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	fields := verrs.ToMap()
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "payment_type")
	assert.Contains(t, fields, "ifsc_code")

	_, err = svc.CreateWorker(ctx, worker.CreateWorkerRequest{Name: "Anil", PaymentType: "monthly_wages"})
	assert.ErrorIs(t, err, worker.ErrNoWageAmount)
}

func TestWorkerService_UpdateAndList(t *testing.T) {
	ctx := context.Background()
	svc := NewWorkerService(memory.NewWorkerRepository())

	created, err := svc.CreateWorker(ctx, worker.CreateWorkerRequest{Name: "Anil", PaymentType: "hourly", WageAmount: decimal.NewFromInt(80)})
	require.NoError(t, err)

	salary := decimal.NewFromInt(18000)
	paymentType := "monthly_wages"
	inactive := false
	updated, err := svc.UpdateWorker(ctx, worker.UpdateWorkerRequest{ID: created.ID, PaymentType: &paymentType, SalaryAmount: &salary, Active: &inactive})
	require.NoError(t, err)
	assert.Equal(t, "monthly_wages", updated.PaymentType)
	assert.False(t, updated.Active)

	active := true
	list, err := svc.ListWorkers(ctx, worker.WorkerFilter{Active: &active})
	require.NoError(t, err)
	assert.Empty(t, list)

	zero := decimal.Zero
	_, err = svc.UpdateWorker(ctx, worker.UpdateWorkerRequest{ID: created.ID, SalaryAmount: &zero, WageAmount: &zero})
	assert.ErrorIs(t, err, worker.ErrNoWageAmount)
}
