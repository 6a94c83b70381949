package payroll

import (
	"time"

	"github.com/buildpro/backoffice-backend-go/internal/pkg/utils"
	"github.com/buildpro/backoffice-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========== PERIOD ==========

type PeriodRequest struct {
	Type      string `json:"type" validate:"required,oneof=weekly bi-weekly monthly"`
	StartDate string `json:"start_date" validate:"required,date"`
	EndDate   string `json:"end_date,omitempty" validate:"omitempty,date"` // derived from type when empty
}

func (p PeriodRequest) ToPeriod() (Period, error) {
	start, err := utils.ParseDate(p.StartDate)
	if err != nil {
		return Period{}, ErrInvalidPeriod
	}
	if p.EndDate == "" {
		return NewPeriod(PeriodType(p.Type), start)
	}
	end, err := utils.ParseDate(p.EndDate)
	if err != nil {
		return Period{}, ErrInvalidPeriod
	}
	return NewCustomPeriod(PeriodType(p.Type), start, end)
}

func validatePeriod(errs validator.ValidationErrors, p PeriodRequest) validator.ValidationErrors {
	if p.EndDate == "" {
		return errs
	}
	start, okStart := validator.IsValidDate(p.StartDate)
	end, okEnd := validator.IsValidDate(p.EndDate)
	if okStart && okEnd && end.Before(start) {
		errs = errs.Add("period.end_date", "must not be before start_date")
	}
	return errs
}

type PeriodResponse struct {
	Type      string `json:"type"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func ToPeriodResponse(p Period) PeriodResponse {
	return PeriodResponse{
		Type:      string(p.Type),
		StartDate: utils.FormatDate(p.StartDate),
		EndDate:   utils.FormatDate(p.EndDate),
	}
}

// ========== CALCULATION DTOs ==========

type CalculatePaymentRequest struct {
	WorkerID string        `json:"worker_id" validate:"required"`
	Period   PeriodRequest `json:"period"`
}

func (r *CalculatePaymentRequest) Validate() error {
	errs := validator.Struct(r)
	errs = validatePeriod(errs, r.Period)
	return errs.OrNil()
}

type BatchPaymentRequest struct {
	WorkerIDs []string      `json:"worker_ids" validate:"dive,required"` // empty means all active workers
	Period    PeriodRequest `json:"period"`
}

func (r *BatchPaymentRequest) Validate() error {
	errs := validator.Struct(r)
	errs = validatePeriod(errs, r.Period)
	return errs.OrNil()
}

type PaymentResponse struct {
	WorkerID            string                         `json:"worker_id"`
	WorkerName          string                         `json:"worker_name"`
	PaymentType         string                         `json:"payment_type"`
	Period              PeriodResponse                 `json:"period"`
	PresentDays         decimal.Decimal                `json:"present_days"`
	TotalHours          decimal.Decimal                `json:"total_hours"`
	OvertimeHours       decimal.Decimal                `json:"overtime_hours"`
	WorkingDays         int                            `json:"working_days"`
	BaseRate            decimal.Decimal                `json:"base_rate"`
	HourlyRate          decimal.Decimal                `json:"hourly_rate"`
	OvertimeRate        decimal.Decimal                `json:"overtime_rate"`
	BasePay             decimal.Decimal                `json:"base_pay"`
	OvertimePay         decimal.Decimal                `json:"overtime_pay"`
	GrossPay            decimal.Decimal                `json:"gross_pay"`
	AdvanceDeductions   decimal.Decimal                `json:"advance_deductions"`
	AdvanceInstallments []InstallmentDeductionResponse `json:"advance_installments"`
	OtherDeductions     decimal.Decimal                `json:"other_deductions"`
	TotalDeductions     decimal.Decimal                `json:"total_deductions"`
	NetPay              decimal.Decimal                `json:"net_pay"`
	BankName            string                         `json:"bank_name"`
	MaskedAccountNumber string                         `json:"masked_account_number"`
	IFSCCode            string                         `json:"ifsc_code"`
	UPIID               string                         `json:"upi_id"`
	CalculatedAt        time.Time                      `json:"calculated_at"`
}

type InstallmentDeductionResponse struct {
	AdvanceID     string          `json:"advance_id"`
	InstallmentID string          `json:"installment_id"`
	Amount        decimal.Decimal `json:"amount"`
}

type WorkerFailureResponse struct {
	WorkerID string `json:"worker_id"`
	Error    string `json:"error"`
}

type BatchPaymentResponse struct {
	Payments        []PaymentResponse       `json:"payments"`
	Failures        []WorkerFailureResponse `json:"failures"`
	TotalGross      decimal.Decimal         `json:"total_gross"`
	TotalDeductions decimal.Decimal         `json:"total_deductions"`
	TotalNet        decimal.Decimal         `json:"total_net"`
}

type ValidationResponse struct {
	IsValid  bool     `json:"is_valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func ToPaymentResponse(r PaymentResult) PaymentResponse {
	installments := make([]InstallmentDeductionResponse, 0, len(r.AdvanceInstallments))
	for _, ref := range r.AdvanceInstallments {
		installments = append(installments, InstallmentDeductionResponse{
			AdvanceID:     ref.AdvanceID,
			InstallmentID: ref.InstallmentID,
			Amount:        ref.Amount,
		})
	}

	return PaymentResponse{
		WorkerID:            r.WorkerID,
		WorkerName:          r.WorkerName,
		PaymentType:         string(r.Wage.PaymentType),
		Period:              ToPeriodResponse(r.Period),
		PresentDays:         r.Wage.PresentDays,
		TotalHours:          r.Wage.TotalHours,
		OvertimeHours:       r.Wage.OvertimeHours,
		WorkingDays:         r.Wage.WorkingDays,
		BaseRate:            r.Wage.BaseRate,
		HourlyRate:          r.Wage.HourlyRate,
		OvertimeRate:        r.Wage.OvertimeRate,
		BasePay:             r.Wage.BasePay,
		OvertimePay:         r.Wage.OvertimePay,
		GrossPay:            r.Wage.GrossPay,
		AdvanceDeductions:   r.AdvanceDeductions,
		AdvanceInstallments: installments,
		OtherDeductions:     r.OtherDeductions,
		TotalDeductions:     r.TotalDeductions,
		NetPay:              r.NetPay,
		BankName:            r.BankName,
		MaskedAccountNumber: r.MaskedAccountNumber,
		IFSCCode:            r.IFSCCode,
		UPIID:               r.UPIID,
		CalculatedAt:        r.CalculatedAt,
	}
}

func ToBatchResponse(b BatchResult) BatchPaymentResponse {
	resp := BatchPaymentResponse{
		Payments:        make([]PaymentResponse, 0, len(b.Payments)),
		Failures:        make([]WorkerFailureResponse, 0, len(b.Failures)),
		TotalGross:      decimal.Zero,
		TotalDeductions: decimal.Zero,
		TotalNet:        decimal.Zero,
	}
	for _, p := range b.Payments {
		resp.Payments = append(resp.Payments, ToPaymentResponse(p))
		resp.TotalGross = resp.TotalGross.Add(p.Wage.GrossPay)
		resp.TotalDeductions = resp.TotalDeductions.Add(p.TotalDeductions)
		resp.TotalNet = resp.TotalNet.Add(p.NetPay)
	}
	for _, f := range b.Failures {
		resp.Failures = append(resp.Failures, WorkerFailureResponse{WorkerID: f.WorkerID, Error: f.Err.Error()})
	}
	return resp
}

func ToValidationResponse(v ValidationResult) ValidationResponse {
	resp := ValidationResponse{IsValid: v.IsValid, Errors: v.Errors, Warnings: v.Warnings}
	if resp.Errors == nil {
		resp.Errors = []string{}
	}
	if resp.Warnings == nil {
		resp.Warnings = []string{}
	}
	return resp
}

// ========== RECORD DTOs ==========

type PaymentRecordFilter struct {
	WorkerID  *string
	Status    *string
	StartDate *time.Time // period start on or after
	EndDate   *time.Time // period end on or before
}

// Matches applies the filter in memory.
func (f PaymentRecordFilter) Matches(r PaymentRecord) bool {
	if f.WorkerID != nil && *f.WorkerID != "" && r.WorkerID != *f.WorkerID {
		return false
	}
	if f.Status != nil && *f.Status != "" && string(r.Status) != *f.Status {
		return false
	}
	if f.StartDate != nil && r.Period.StartDate.Before(utils.TruncateDay(*f.StartDate)) {
		return false
	}
	if f.EndDate != nil && r.Period.EndDate.After(utils.TruncateDay(*f.EndDate)) {
		return false
	}
	return true
}

type PaymentRecordResponse struct {
	PaymentResponse

	ID        string     `json:"id"`
	Status    string     `json:"status"`
	PaidAt    *time.Time `json:"paid_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func ToRecordResponse(r PaymentRecord) PaymentRecordResponse {
	return PaymentRecordResponse{
		ID:              r.ID,
		PaymentResponse: ToPaymentResponse(r.PaymentResult),
		Status:          string(r.Status),
		PaidAt:          r.PaidAt,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

type MarkPaidRequest struct {
	IDs      []string `json:"ids" validate:"min=1,dive,required"`
	PaidDate string   `json:"paid_date,omitempty" validate:"omitempty,date"`
}

func (r *MarkPaidRequest) Validate() error {
	return validator.Struct(r).OrNil()
}

// ========== DEDUCTION DTOs ==========

type CreateDeductionRequest struct {
	WorkerID    string          `json:"worker_id" validate:"required"`
	Type        string          `json:"type" validate:"required,oneof=advance penalty material other"`
	Amount      decimal.Decimal `json:"amount" validate:"gt=0"`
	Description string          `json:"description" validate:"max=500"`
	Date        string          `json:"date" validate:"required,date"`
}

func (r *CreateDeductionRequest) Validate() error {
	return validator.Struct(r).OrNil()
}

type DeductionFilter struct {
	WorkerID  string
	StartDate string
	EndDate   string
}

func (f *DeductionFilter) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(f.WorkerID) {
		errs = errs.Add("worker_id", "is required")
	}
	start, okStart := validator.IsValidDate(f.StartDate)
	if !okStart {
		errs = errs.Add("start_date", "must be a date in YYYY-MM-DD format")
	}
	end, okEnd := validator.IsValidDate(f.EndDate)
	if !okEnd {
		errs = errs.Add("end_date", "must be a date in YYYY-MM-DD format")
	}
	if okStart && okEnd && end.Before(start) {
		errs = errs.Add("end_date", "must not be before start_date")
	}

	return errs.OrNil()
}

type DeductionResponse struct {
	ID          string          `json:"id"`
	WorkerID    string          `json:"worker_id"`
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Date        string          `json:"date"`
	CreatedAt   time.Time       `json:"created_at"`
}

func ToDeductionResponse(d Deduction) DeductionResponse {
	return DeductionResponse{
		ID:          d.ID,
		WorkerID:    d.WorkerID,
		Type:        string(d.Type),
		Amount:      d.Amount,
		Description: d.Description,
		Date:        utils.FormatDate(d.Date),
		CreatedAt:   d.CreatedAt,
	}
}
