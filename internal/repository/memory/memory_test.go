package memory

import (
	"context"
	"testing"
	"time"

	"github.com/buildpro/backoffice-backend-go/internal/domain/advance"
	"github.com/buildpro/backoffice-backend-go/internal/domain/attendance"
	"github.com/buildpro/backoffice-backend-go/internal/domain/client"
	"github.com/buildpro/backoffice-backend-go/internal/domain/payroll"
	"github.com/buildpro/backoffice-backend-go/internal/domain/quotation"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func january() payroll.Period {
	return payroll.Period{StartDate: day(2024, time.January, 1), EndDate: day(2024, time.January, 31), Type: payroll.PeriodMonthly}
}

func TestPaymentRecordRepository_UpsertReplacesPending(t *testing.T) {
	ctx := context.Background()
	repo := NewPaymentRecordRepository()

	first, err := repo.Upsert(ctx, payroll.PaymentRecord{
		PaymentResult: payroll.PaymentResult{WorkerID: "w1", Period: january(), NetPay: decimal.NewFromInt(900)},
		Status:        payroll.RecordPending,
	})
	require.NoError(t, err)

	second, err := repo.Upsert(ctx, payroll.PaymentRecord{
		PaymentResult: payroll.PaymentResult{WorkerID: "w1", Period: january(), NetPay: decimal.NewFromInt(1200)},
		Status:        payroll.RecordPending,
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	all, err := repo.List(ctx, payroll.PaymentRecordFilter{})
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.True(t, all[0].NetPay.Equal(decimal.NewFromInt(1200)))

	require.NoError(t, repo.MarkPaid(ctx, []string{first.ID}, day(2024, time.February, 5)))

	_, err = repo.Upsert(ctx, payroll.PaymentRecord{
		PaymentResult: payroll.PaymentResult{WorkerID: "w1", Period: january(), NetPay: decimal.NewFromInt(1)},
		Status:        payroll.RecordPending,
	})
	assert.ErrorIs(t, err, payroll.ErrPaymentRecordAlreadyPaid)

	got, err := repo.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, payroll.RecordPaid, got.Status)
	assert.True(t, got.NetPay.Equal(decimal.NewFromInt(1200)))
}

func TestPaymentRecordRepository_MarkPaidIsAllOrNothing(t *testing.T) {
	ctx := context.Background()
	repo := NewPaymentRecordRepository()

	rec, err := repo.Upsert(ctx, payroll.PaymentRecord{
		PaymentResult: payroll.PaymentResult{WorkerID: "w1", Period: january()},
		Status:        payroll.RecordPending,
	})
	require.NoError(t, err)

	err = repo.MarkPaid(ctx, []string{rec.ID, "missing"}, day(2024, time.February, 5))
	assert.ErrorIs(t, err, payroll.ErrPaymentRecordNotFound)

	got, err := repo.GetByID(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, payroll.RecordPending, got.Status)
	assert.Nil(t, got.PaidAt)
}

func TestAdvanceRepository_ReturnsDetachedCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewAdvanceRepository()

	created, err := repo.Create(ctx, advance.Advance{
		WorkerID:     "w1",
		Amount:       decimal.NewFromInt(3000),
		Status:       advance.StatusApproved,
		Installments: []advance.Installment{{ID: "i1", Amount: decimal.NewFromInt(3000), Status: advance.InstallmentPending}},
	})
	require.NoError(t, err)

	created.Installments[0].Status = advance.InstallmentPaid

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, advance.InstallmentPending, got.Installments[0].Status)

	err = repo.Update(ctx, advance.Advance{ID: "missing"})
	assert.ErrorIs(t, err, advance.ErrAdvanceNotFound)
}

func TestAttendanceRepository_OnePerWorkerAndDay(t *testing.T) {
	ctx := context.Background()
	repo := NewAttendanceRepository()

	_, err := repo.Create(ctx, attendance.Attendance{WorkerID: "w1", Date: time.Date(2024, time.January, 2, 9, 0, 0, 0, time.UTC), Status: attendance.StatusPresent})
	require.NoError(t, err)
	_, err = repo.Create(ctx, attendance.Attendance{WorkerID: "w1", Date: time.Date(2024, time.January, 2, 17, 0, 0, 0, time.UTC), Status: attendance.StatusLate})
	assert.ErrorIs(t, err, attendance.ErrAttendanceAlreadyExists)

	_, err = repo.Create(ctx, attendance.Attendance{WorkerID: "w1", Date: day(2024, time.February, 1), Status: attendance.StatusPresent})
	require.NoError(t, err)

	got, err := repo.ListByWorker(ctx, "w1", day(2024, time.January, 1), day(2024, time.January, 31))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, day(2024, time.January, 2), got[0].Date)
}

func TestClientRepository_EmailIsUniqueIgnoringCase(t *testing.T) {
	ctx := context.Background()
	repo := NewClientRepository()

	email := "office@sharma.in"
	first, err := repo.Create(ctx, client.Client{Name: "Sharma", Email: &email})
	require.NoError(t, err)

	upper := "OFFICE@SHARMA.IN"
	_, err = repo.Create(ctx, client.Client{Name: "Other", Email: &upper})
	assert.ErrorIs(t, err, client.ErrClientEmailExists)

	// a client keeps its own email on update
	first.Name = "Sharma Builders"
	require.NoError(t, repo.Update(ctx, first))

	require.NoError(t, repo.Delete(ctx, first.ID))
	assert.ErrorIs(t, repo.Delete(ctx, first.ID), client.ErrClientNotFound)
}

func TestQuotationRepository_NumbersAndCounts(t *testing.T) {
	ctx := context.Background()
	repo := NewQuotationRepository()

	for want := 1; want <= 3; want++ {
		n, err := repo.NextNumber(ctx, 2024)
		require.NoError(t, err)
		assert.Equal(t, want, n)
	}
	n, err := repo.NextNumber(ctx, 2025)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	q, err := repo.Create(ctx, quotation.Quotation{ClientID: "c1", Number: "QT-2024-0001", LineItems: []quotation.LineItem{{ID: "l1"}}})
	require.NoError(t, err)
	_, err = repo.Create(ctx, quotation.Quotation{ClientID: "c2", Number: "QT-2024-0002"})
	require.NoError(t, err)

	q.LineItems[0].Description = "mutated"
	stored, err := repo.GetByID(ctx, q.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.LineItems[0].Description)

	count, err := repo.CountByClient(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
