package attendance

import "errors"

var (
	ErrAttendanceNotFound      = errors.New("attendance record not found")
	ErrAttendanceAlreadyExists = errors.New("attendance already recorded for this worker and date")
	ErrInvalidStatus           = errors.New("invalid attendance status")
)
