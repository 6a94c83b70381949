package attendance

import (
	"time"

	"github.com/buildpro/backoffice-backend-go/internal/pkg/utils"
	"github.com/buildpro/backoffice-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

type RecordAttendanceRequest struct {
	WorkerID      string          `json:"worker_id" validate:"required"`
	Date          string          `json:"date" validate:"required,date"`
	Status        string          `json:"status" validate:"required,oneof=present late half_day absent"`
	TotalHours    decimal.Decimal `json:"total_hours" validate:"gte=0,lte=24"`
	OvertimeHours decimal.Decimal `json:"overtime_hours" validate:"gte=0,lte=24"`
	Notes         *string         `json:"notes,omitempty"`
}

func (r *RecordAttendanceRequest) Validate() error {
	errs := validator.Struct(r)

	if Status(r.Status) == StatusAbsent && (r.TotalHours.IsPositive() || r.OvertimeHours.IsPositive()) {
		errs = errs.Add("total_hours", "must be 0 for an absent day")
	}

	return errs.OrNil()
}

type UpdateAttendanceRequest struct {
	ID            string           `json:"-"`
	Status        *string          `json:"status,omitempty"`
	TotalHours    *decimal.Decimal `json:"total_hours,omitempty"`
	OvertimeHours *decimal.Decimal `json:"overtime_hours,omitempty"`
	Notes         *string          `json:"notes,omitempty"`
}

func (r *UpdateAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = errs.Add("id", "is required")
	}
	if r.Status != nil && !Status(*r.Status).Valid() {
		errs = errs.Add("status", "must be one of: present, late, half_day, absent")
	}
	if r.TotalHours != nil && (r.TotalHours.IsNegative() || r.TotalHours.GreaterThan(decimal.NewFromInt(24))) {
		errs = errs.Add("total_hours", "must be between 0 and 24")
	}
	if r.OvertimeHours != nil && (r.OvertimeHours.IsNegative() || r.OvertimeHours.GreaterThan(decimal.NewFromInt(24))) {
		errs = errs.Add("overtime_hours", "must be between 0 and 24")
	}

	return errs.OrNil()
}

type AttendanceFilter struct {
	WorkerID  string
	StartDate string
	EndDate   string
}

func (f *AttendanceFilter) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(f.WorkerID) {
		errs = errs.Add("worker_id", "is required")
	}
	start, startOK := validator.IsValidDate(f.StartDate)
	if !startOK {
		errs = errs.Add("start_date", "must be a date in YYYY-MM-DD format")
	}
	end, endOK := validator.IsValidDate(f.EndDate)
	if !endOK {
		errs = errs.Add("end_date", "must be a date in YYYY-MM-DD format")
	}
	if startOK && endOK && end.Before(start) {
		errs = errs.Add("end_date", "must not be before start_date")
	}

	return errs.OrNil()
}

type AttendanceResponse struct {
	ID            string          `json:"id"`
	WorkerID      string          `json:"worker_id"`
	Date          string          `json:"date"`
	Status        string          `json:"status"`
	TotalHours    decimal.Decimal `json:"total_hours"`
	OvertimeHours decimal.Decimal `json:"overtime_hours"`
	Notes         *string         `json:"notes,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

type SummaryResponse struct {
	PresentDays   decimal.Decimal `json:"present_days"`
	TotalHours    decimal.Decimal `json:"total_hours"`
	OvertimeHours decimal.Decimal `json:"overtime_hours"`
	RecordCount   int             `json:"record_count"`
}

type ListAttendanceResponse struct {
	Records []AttendanceResponse `json:"records"`
	Summary SummaryResponse      `json:"summary"`
}

func ToResponse(a Attendance) AttendanceResponse {
	return AttendanceResponse{
		ID:            a.ID,
		WorkerID:      a.WorkerID,
		Date:          utils.FormatDate(a.Date),
		Status:        string(a.Status),
		TotalHours:    a.TotalHours,
		OvertimeHours: a.OvertimeHours,
		Notes:         a.Notes,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

func ToSummaryResponse(s Summary) SummaryResponse {
	return SummaryResponse{
		PresentDays:   s.PresentDays,
		TotalHours:    s.TotalHours,
		OvertimeHours: s.OvertimeHours,
		RecordCount:   s.RecordCount,
	}
}
