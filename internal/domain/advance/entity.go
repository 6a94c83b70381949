package advance

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status enum
type Status string

const (
	StatusPending            Status = "pending"
	StatusApproved           Status = "approved"
	StatusRejected           Status = "rejected"
	StatusAdjusted           Status = "adjusted"
	StatusPartiallyRecovered Status = "partially_recovered"
	StatusFullyRecovered     Status = "fully_recovered"
)

// InstallmentStatus enum
type InstallmentStatus string

const (
	InstallmentPending InstallmentStatus = "pending"
	InstallmentPaid    InstallmentStatus = "paid"
	InstallmentOverdue InstallmentStatus = "overdue"
)

type Advance struct {
	ID              string
	WorkerID        string
	Amount          decimal.Decimal
	Date            time.Time
	Reason          string
	Status          Status
	Installments    []Installment
	RecoveredAmount decimal.Decimal
	ApprovedBy      *string
	ApprovedAt      *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

type Installment struct {
	ID        string
	AdvanceID string
	Number    int // 1-based position in the schedule
	Amount    decimal.Decimal
	DueDate   time.Time
	PaidDate  *time.Time
	Status    InstallmentStatus
}

// InstallmentRef names one installment that a payment record deducted from wages.
type InstallmentRef struct {
	AdvanceID     string
	InstallmentID string
	Amount        decimal.Decimal
}

func (a Advance) HasInstallmentPlan() bool {
	return len(a.Installments) > 0
}

// InRecovery reports whether the advance still reduces pay through its installments.
func (a Advance) InRecovery() bool {
	return a.Status == StatusApproved || a.Status == StatusPartiallyRecovered
}

// Outstanding is the amount not yet recovered, never negative.
func (a Advance) Outstanding() decimal.Decimal {
	rest := a.Amount.Sub(a.RecoveredAmount)
	if rest.IsNegative() {
		return decimal.Zero
	}
	return rest
}

func (a Advance) FindInstallment(id string) (int, bool) {
	for i, inst := range a.Installments {
		if inst.ID == id {
			return i, true
		}
	}
	return -1, false
}
