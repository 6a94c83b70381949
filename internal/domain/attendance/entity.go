package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status enum
type Status string

const (
	StatusPresent Status = "present"
	StatusLate    Status = "late"
	StatusHalfDay Status = "half_day"
	StatusAbsent  Status = "absent"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPresent, StatusLate, StatusHalfDay, StatusAbsent:
		return true
	}
	return false
}

// DayWeight is the fraction of a working day the status counts for.
func (s Status) DayWeight() decimal.Decimal {
	switch s {
	case StatusPresent, StatusLate:
		return decimal.NewFromInt(1)
	case StatusHalfDay:
		return decimal.NewFromFloat(0.5)
	default:
		return decimal.Zero
	}
}

type Attendance struct {
	ID            string
	WorkerID      string
	Date          time.Time
	Status        Status
	TotalHours    decimal.Decimal
	OvertimeHours decimal.Decimal
	Notes         *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Summary aggregates attendance records of one worker over a period.
type Summary struct {
	PresentDays   decimal.Decimal
	TotalHours    decimal.Decimal
	OvertimeHours decimal.Decimal
	RecordCount   int
}

func Summarize(records []Attendance) Summary {
	s := Summary{
		PresentDays:   decimal.Zero,
		TotalHours:    decimal.Zero,
		OvertimeHours: decimal.Zero,
	}
	for _, r := range records {
		s.PresentDays = s.PresentDays.Add(r.Status.DayWeight())
		s.TotalHours = s.TotalHours.Add(r.TotalHours)
		s.OvertimeHours = s.OvertimeHours.Add(r.OvertimeHours)
		s.RecordCount++
	}
	return s
}
