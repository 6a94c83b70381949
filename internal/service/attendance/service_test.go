package attendance

import (
	"context"
	"testing"

	"github.com/buildpro/backoffice-backend-go/internal/domain/attendance"
	"github.com/buildpro/backoffice-backend-go/internal/domain/worker"
	"github.com/buildpro/backoffice-backend-go/internal/pkg/validator"
	"github.com/buildpro/backoffice-backend-go/internal/repository/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) attendance.AttendanceService {
	t.Helper()
	workers := memory.NewWorkerRepository()
	_, err := workers.Create(context.Background(), worker.Worker{ID: "w1", Name: "Ramesh", PaymentType: worker.PaymentTypeDaily, WageAmount: decimal.NewFromInt(500), Active: true})
	require.NoError(t, err)
	return NewAttendanceService(memory.NewAttendanceRepository(), workers)
}

func record(t *testing.T, svc attendance.AttendanceService, date, status string, hours, overtime int64) attendance.AttendanceResponse {
	t.Helper()
	resp, err := svc.RecordAttendance(context.Background(), attendance.RecordAttendanceRequest{
		WorkerID:      "w1",
		Date:          date,
		Status:        status,
		TotalHours:    decimal.NewFromInt(hours),
		OvertimeHours: decimal.NewFromInt(overtime),
	})
	require.NoError(t, err)
	return resp
}

func TestAttendanceService_ListWithSummary(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	record(t, svc, "2024-01-02", "present", 8, 2)
	record(t, svc, "2024-01-03", "late", 7, 0)
	record(t, svc, "2024-01-04", "half_day", 4, 0)
	record(t, svc, "2024-01-05", "absent", 0, 0)
	record(t, svc, "2024-02-01", "present", 8, 0)

	got, err := svc.ListAttendance(ctx, attendance.AttendanceFilter{WorkerID: "w1", StartDate: "2024-01-01", EndDate: "2024-01-31"})
	require.NoError(t, err)

	require.Len(t, got.Records, 4)
	assert.Equal(t, "2024-01-02", got.Records[0].Date)
	assert.True(t, decimal.RequireFromString("2.5").Equal(got.Summary.PresentDays))
	assert.True(t, decimal.NewFromInt(19).Equal(got.Summary.TotalHours))
	assert.True(t, decimal.NewFromInt(2).Equal(got.Summary.OvertimeHours))
	assert.Equal(t, 4, got.Summary.RecordCount)
}

func TestAttendanceService_RecordRules(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	record(t, svc, "2024-01-02", "present", 8, 0)

	_, err := svc.RecordAttendance(ctx, attendance.RecordAttendanceRequest{WorkerID: "w1", Date: "2024-01-02", Status: "late"})
	assert.ErrorIs(t, err, attendance.ErrAttendanceAlreadyExists)

	_, err = svc.RecordAttendance(ctx, attendance.RecordAttendanceRequest{WorkerID: "ghost", Date: "2024-01-03", Status: "present"})
	assert.ErrorIs(t, err, worker.ErrWorkerNotFound)

	_, err = svc.RecordAttendance(ctx, attendance.RecordAttendanceRequest{WorkerID: "w1", Date: "2024-01-04", Status: "absent", TotalHours: decimal.NewFromInt(3)})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "must be 0 for an absent day", verrs.ToMap()["total_hours"])
}

func TestAttendanceService_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	created := record(t, svc, "2024-01-02", "present", 8, 0)

	halfDay := "half_day"
	four := decimal.NewFromInt(4)
	updated, err := svc.UpdateAttendance(ctx, attendance.UpdateAttendanceRequest{ID: created.ID, Status: &halfDay, TotalHours: &four})
	require.NoError(t, err)
	assert.Equal(t, "half_day", updated.Status)
	assert.Equal(t, "2024-01-02", updated.Date)

	absent := "absent"
	_, err = svc.UpdateAttendance(ctx, attendance.UpdateAttendanceRequest{ID: created.ID, Status: &absent})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)

	require.NoError(t, svc.DeleteAttendance(ctx, created.ID))
	assert.ErrorIs(t, svc.DeleteAttendance(ctx, created.ID), attendance.ErrAttendanceNotFound)
}
