package attendance

import (
	"context"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// RecordAttendance stores one day of attendance for a worker
	RecordAttendance(ctx context.Context, req RecordAttendanceRequest) (AttendanceResponse, error)

	// UpdateAttendance fixes a wrongly captured record
	UpdateAttendance(ctx context.Context, req UpdateAttendanceRequest) (AttendanceResponse, error)

	// ListAttendance lists a worker's records inside a date range along with the summary
	ListAttendance(ctx context.Context, filter AttendanceFilter) (ListAttendanceResponse, error)

	DeleteAttendance(ctx context.Context, id string) error
}
