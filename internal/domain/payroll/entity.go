package payroll

import (
	"time"

	"github.com/buildpro/backoffice-backend-go/internal/domain/advance"
	"github.com/buildpro/backoffice-backend-go/internal/domain/worker"
	"github.com/buildpro/backoffice-backend-go/internal/pkg/utils"
	"github.com/shopspring/decimal"
)

// PeriodType enum
type PeriodType string

const (
	PeriodWeekly   PeriodType = "weekly"
	PeriodBiWeekly PeriodType = "bi-weekly"
	PeriodMonthly  PeriodType = "monthly"
)

func (t PeriodType) Valid() bool {
	return t == PeriodWeekly || t == PeriodBiWeekly || t == PeriodMonthly
}

// Period is the inclusive date window attendance is aggregated over.
type Period struct {
	StartDate time.Time
	EndDate   time.Time
	Type      PeriodType
}

// NewPeriod builds the period of the given type that starts at anchor.
// Monthly periods cover the calendar month containing anchor.
func NewPeriod(t PeriodType, anchor time.Time) (Period, error) {
	start := utils.TruncateDay(anchor)
	switch t {
	case PeriodWeekly:
		return Period{StartDate: start, EndDate: start.AddDate(0, 0, 6), Type: t}, nil
	case PeriodBiWeekly:
		return Period{StartDate: start, EndDate: start.AddDate(0, 0, 13), Type: t}, nil
	case PeriodMonthly:
		first := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC)
		return Period{StartDate: first, EndDate: first.AddDate(0, 1, -1), Type: t}, nil
	}
	return Period{}, ErrInvalidPeriodType
}

// NewCustomPeriod keeps explicit bounds; start must not be after end.
func NewCustomPeriod(t PeriodType, start, end time.Time) (Period, error) {
	if !t.Valid() {
		return Period{}, ErrInvalidPeriodType
	}
	start, end = utils.TruncateDay(start), utils.TruncateDay(end)
	if end.Before(start) {
		return Period{}, ErrInvalidPeriod
	}
	return Period{StartDate: start, EndDate: end, Type: t}, nil
}

// WorkingDays counts weekdays in the period, both ends inclusive.
func (p Period) WorkingDays() int {
	return utils.WorkingDaysBetween(p.StartDate, p.EndDate)
}

func (p Period) Contains(t time.Time) bool {
	return utils.WithinRange(t, p.StartDate, p.EndDate)
}

// DeductionType enum
type DeductionType string

const (
	DeductionAdvance  DeductionType = "advance"
	DeductionPenalty  DeductionType = "penalty"
	DeductionMaterial DeductionType = "material"
	DeductionOther    DeductionType = "other"
)

func (t DeductionType) Valid() bool {
	switch t {
	case DeductionAdvance, DeductionPenalty, DeductionMaterial, DeductionOther:
		return true
	}
	return false
}

// Deduction is an ad hoc amount taken off a worker's pay.
type Deduction struct {
	ID          string
	WorkerID    string
	Type        DeductionType
	Amount      decimal.Decimal
	Description string
	Date        time.Time
	CreatedAt   time.Time
}

// Wage is the gross pay breakdown for one worker over one period.
type Wage struct {
	PaymentType   worker.PaymentType
	PresentDays   decimal.Decimal
	TotalHours    decimal.Decimal
	OvertimeHours decimal.Decimal
	WorkingDays   int
	BaseRate      decimal.Decimal // per day, per month or per hour depending on PaymentType
	HourlyRate    decimal.Decimal // hourly equivalent used for overtime
	OvertimeRate  decimal.Decimal
	BasePay       decimal.Decimal
	OvertimePay   decimal.Decimal
	GrossPay      decimal.Decimal
}

// DeductionTotals is the ledger output for one worker and period.
type DeductionTotals struct {
	AdvanceTotal   decimal.Decimal
	DeductionTotal decimal.Decimal
	Total          decimal.Decimal
	Installments   []advance.InstallmentRef
}

// PaymentResult is the computed payment for one worker and period.
// It is recomputed on every run and never patched in place.
type PaymentResult struct {
	WorkerID            string
	WorkerName          string
	Period              Period
	Wage                Wage
	AdvanceDeductions   decimal.Decimal
	AdvanceInstallments []advance.InstallmentRef // settled when the record is marked paid
	OtherDeductions     decimal.Decimal
	TotalDeductions     decimal.Decimal
	NetPay              decimal.Decimal
	BankName            string
	MaskedAccountNumber string
	IFSCCode            string
	UPIID               string
	CalculatedAt        time.Time
}

// RecordStatus enum
type RecordStatus string

const (
	RecordPending RecordStatus = "pending"
	RecordPaid    RecordStatus = "paid"
)

// PaymentRecord is a stored PaymentResult. One per worker and period.
type PaymentRecord struct {
	PaymentResult

	ID        string
	Status    RecordStatus
	PaidAt    *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

type ValidationResult struct {
	IsValid  bool
	Errors   []string
	Warnings []string
}

type WorkerFailure struct {
	WorkerID string
	Err      error
}

type BatchResult struct {
	Payments []PaymentResult
	Failures []WorkerFailure
}
