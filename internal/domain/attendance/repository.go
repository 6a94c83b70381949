package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for attendance records.
type AttendanceRepository interface {
	// Create fails with ErrAttendanceAlreadyExists when the worker already has a record for the date
	Create(ctx context.Context, attendance Attendance) (Attendance, error)

	GetByID(ctx context.Context, id string) (Attendance, error)

	// ListByWorker returns records with start <= date <= end ordered by date
	ListByWorker(ctx context.Context, workerID string, start, end time.Time) ([]Attendance, error)

	Update(ctx context.Context, attendance Attendance) error
	Delete(ctx context.Context, id string) error
}
