package worker

import (
	"time"

	"github.com/buildpro/backoffice-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type WorkerFilter struct {
	PaymentType *string
	Active      *bool
	Search      *string
}

type CreateWorkerRequest struct {
	Name          string           `json:"name" validate:"required,max=255"`
	Phone         string           `json:"phone"`
	PaymentType   string           `json:"payment_type" validate:"required,oneof=daily_wages monthly_wages hourly"`
	WageAmount    decimal.Decimal  `json:"wage_amount" validate:"gte=0"`
	SalaryAmount  *decimal.Decimal `json:"salary_amount,omitempty"`
	BankName      string           `json:"bank_name"`
	AccountNumber string           `json:"account_number"`
	IFSCCode      string           `json:"ifsc_code"`
	UPIID         string           `json:"upi_id"`
}

func (r *CreateWorkerRequest) Validate() error {
	errs := validator.Struct(r)

	if r.Phone != "" && !validator.IsValidPhoneNumber(r.Phone) {
		errs = errs.Add("phone", "must be a valid mobile number")
	}
	if r.SalaryAmount != nil && r.SalaryAmount.IsNegative() {
		errs = errs.Add("salary_amount", "must be non-negative")
	}
	if r.AccountNumber != "" && !validator.IsNumeric(r.AccountNumber) {
		errs = errs.Add("account_number", "must contain digits only")
	}
	if r.IFSCCode != "" && !validator.IsValidIFSC(r.IFSCCode) {
		errs = errs.Add("ifsc_code", "must be a valid IFSC code")
	}
	if r.UPIID != "" && !validator.IsValidUPI(r.UPIID) {
		errs = errs.Add("upi_id", "must be a valid UPI id")
	}

	return errs.OrNil()
}

type UpdateWorkerRequest struct {
	ID            string           `json:"-"`
	Name          *string          `json:"name,omitempty"`
	Phone         *string          `json:"phone,omitempty"`
	PaymentType   *string          `json:"payment_type,omitempty"`
	WageAmount    *decimal.Decimal `json:"wage_amount,omitempty"`
	SalaryAmount  *decimal.Decimal `json:"salary_amount,omitempty"`
	BankName      *string          `json:"bank_name,omitempty"`
	AccountNumber *string          `json:"account_number,omitempty"`
	IFSCCode      *string          `json:"ifsc_code,omitempty"`
	UPIID         *string          `json:"upi_id,omitempty"`
	Active        *bool            `json:"active,omitempty"`
}

func (r *UpdateWorkerRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = errs.Add("id", "is required")
	}
	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = errs.Add("name", "must not be empty")
	}
	if r.Phone != nil && *r.Phone != "" && !validator.IsValidPhoneNumber(*r.Phone) {
		errs = errs.Add("phone", "must be a valid mobile number")
	}
	if r.PaymentType != nil && !PaymentType(*r.PaymentType).Valid() {
		errs = errs.Add("payment_type", "must be one of: daily_wages, monthly_wages, hourly")
	}
	if r.WageAmount != nil && r.WageAmount.IsNegative() {
		errs = errs.Add("wage_amount", "must be non-negative")
	}
	if r.SalaryAmount != nil && r.SalaryAmount.IsNegative() {
		errs = errs.Add("salary_amount", "must be non-negative")
	}
	if r.IFSCCode != nil && *r.IFSCCode != "" && !validator.IsValidIFSC(*r.IFSCCode) {
		errs = errs.Add("ifsc_code", "must be a valid IFSC code")
	}
	if r.UPIID != nil && *r.UPIID != "" && !validator.IsValidUPI(*r.UPIID) {
		errs = errs.Add("upi_id", "must be a valid UPI id")
	}

	return errs.OrNil()
}

type WorkerResponse struct {
	ID                  string           `json:"id"`
	Name                string           `json:"name"`
	Phone               string           `json:"phone"`
	PaymentType         string           `json:"payment_type"`
	WageAmount          decimal.Decimal  `json:"wage_amount"`
	SalaryAmount        *decimal.Decimal `json:"salary_amount,omitempty"`
	BankName            string           `json:"bank_name"`
	MaskedAccountNumber string           `json:"masked_account_number"`
	IFSCCode            string           `json:"ifsc_code"`
	UPIID               string           `json:"upi_id"`
	Active              bool             `json:"active"`
	CreatedAt           time.Time        `json:"created_at"`
	UpdatedAt           time.Time        `json:"updated_at"`
}

func ToResponse(w Worker) WorkerResponse {
	return WorkerResponse{
		ID:                  w.ID,
		Name:                w.Name,
		Phone:               w.Phone,
		PaymentType:         string(w.PaymentType),
		WageAmount:          w.WageAmount,
		SalaryAmount:        w.SalaryAmount,
		BankName:            w.BankName,
		MaskedAccountNumber: MaskAccountNumber(w.AccountNumber),
		IFSCCode:            w.IFSCCode,
		UPIID:               w.UPIID,
		Active:              w.Active,
		CreatedAt:           w.CreatedAt,
		UpdatedAt:           w.UpdatedAt,
	}
}
