package advance

import (
	"time"

	"github.com/buildpro/backoffice-backend-go/internal/pkg/utils"
	"github.com/buildpro/backoffice-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type AdvanceFilter struct {
	WorkerID *string
	Status   *string
}

type CreateAdvanceRequest struct {
	WorkerID string          `json:"worker_id" validate:"required"`
	Amount   decimal.Decimal `json:"amount" validate:"gt=0"`
	Date     string          `json:"date" validate:"required,date"`
	Reason   string          `json:"reason" validate:"max=500"`
}

func (r *CreateAdvanceRequest) Validate() error {
	return validator.Struct(r).OrNil()
}

type ApproveAdvanceRequest struct {
	ID         string `json:"-"`
	ApprovedBy string `json:"approved_by" validate:"required"`
}

func (r *ApproveAdvanceRequest) Validate() error {
	errs := validator.Struct(r)
	if validator.IsEmpty(r.ID) {
		errs = errs.Add("id", "is required")
	}
	return errs.OrNil()
}

type CreateScheduleRequest struct {
	AdvanceID string `json:"-"`
	Count     int    `json:"installment_count" validate:"gte=1,lte=120"`
	StartDate string `json:"start_date" validate:"required,date"`
}

func (r *CreateScheduleRequest) Validate() error {
	errs := validator.Struct(r)
	if validator.IsEmpty(r.AdvanceID) {
		errs = errs.Add("id", "is required")
	}
	return errs.OrNil()
}

type PayInstallmentRequest struct {
	AdvanceID     string `json:"-"`
	InstallmentID string `json:"-"`
	PaidDate      string `json:"paid_date" validate:"omitempty,date"`
}

func (r *PayInstallmentRequest) Validate() error {
	errs := validator.Struct(r)
	if validator.IsEmpty(r.AdvanceID) {
		errs = errs.Add("id", "is required")
	}
	if validator.IsEmpty(r.InstallmentID) {
		errs = errs.Add("installment_id", "is required")
	}
	return errs.OrNil()
}

type InstallmentResponse struct {
	ID       string          `json:"id"`
	Number   int             `json:"number"`
	Amount   decimal.Decimal `json:"amount"`
	DueDate  string          `json:"due_date"`
	PaidDate *string         `json:"paid_date,omitempty"`
	Status   string          `json:"status"`
}

type AdvanceResponse struct {
	ID                string                `json:"id"`
	WorkerID          string                `json:"worker_id"`
	Amount            decimal.Decimal       `json:"amount"`
	Date              string                `json:"date"`
	Reason            string                `json:"reason"`
	Status            string                `json:"status"`
	RecoveredAmount   decimal.Decimal       `json:"recovered_amount"`
	OutstandingAmount decimal.Decimal       `json:"outstanding_amount"`
	Installments      []InstallmentResponse `json:"installments"`
	ApprovedBy        *string               `json:"approved_by,omitempty"`
	ApprovedAt        *time.Time            `json:"approved_at,omitempty"`
	CreatedAt         time.Time             `json:"created_at"`
	UpdatedAt         time.Time             `json:"updated_at"`
}

func ToResponse(a Advance) AdvanceResponse {
	installments := make([]InstallmentResponse, 0, len(a.Installments))
	for _, inst := range a.Installments {
		var paid *string
		if inst.PaidDate != nil {
			s := utils.FormatDate(*inst.PaidDate)
			paid = &s
		}
		installments = append(installments, InstallmentResponse{
			ID:       inst.ID,
			Number:   inst.Number,
			Amount:   inst.Amount,
			DueDate:  utils.FormatDate(inst.DueDate),
			PaidDate: paid,
			Status:   string(inst.Status),
		})
	}

	return AdvanceResponse{
		ID:                a.ID,
		WorkerID:          a.WorkerID,
		Amount:            a.Amount,
		Date:              utils.FormatDate(a.Date),
		Reason:            a.Reason,
		Status:            string(a.Status),
		RecoveredAmount:   a.RecoveredAmount,
		OutstandingAmount: a.Outstanding(),
		Installments:      installments,
		ApprovedBy:        a.ApprovedBy,
		ApprovedAt:        a.ApprovedAt,
		CreatedAt:         a.CreatedAt,
		UpdatedAt:         a.UpdatedAt,
	}
}
