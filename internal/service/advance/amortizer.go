package advance

import (
	"slices"
	"time"

	"github.com/buildpro/backoffice-backend-go/internal/domain/advance"
	"github.com/buildpro/backoffice-backend-go/internal/pkg/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BuildSchedule splits total into count installments of ceil(total/count).
// The last installment takes the remainder so the amounts sum to total exactly.
// Installment i (0-based) is due i+1 months after start, clamped to month end.
func BuildSchedule(advanceID string, total decimal.Decimal, count int, start time.Time) ([]advance.Installment, error) {
	if count < 1 {
		return nil, advance.ErrInvalidInstallmentCount
	}
	if !total.IsPositive() {
		return nil, advance.ErrInvalidAdvanceAmount
	}

	per := total.Div(decimal.NewFromInt(int64(count))).Ceil()
	last := total.Sub(per.Mul(decimal.NewFromInt(int64(count - 1))))
	if count > 1 && !last.IsPositive() {
		return nil, advance.ErrTooManyInstallments
	}

	start = utils.TruncateDay(start)
	installments := make([]advance.Installment, count)
	for i := 0; i < count; i++ {
		amount := per
		if i == count-1 {
			amount = last
		}
		installments[i] = advance.Installment{
			ID:        uuid.New().String(),
			AdvanceID: advanceID,
			Number:    i + 1,
			Amount:    amount,
			DueDate:   utils.AddMonthsClamped(start, i+1),
			Status:    advance.InstallmentPending,
		}
	}
	return installments, nil
}

// RecomputeRecovery derives RecoveredAmount from paid installments and moves the
// status to partially or fully recovered. Before any payment the status is kept.
func RecomputeRecovery(a advance.Advance) advance.Advance {
	recovered := decimal.Zero
	for _, inst := range a.Installments {
		if inst.Status == advance.InstallmentPaid {
			recovered = recovered.Add(inst.Amount)
		}
	}
	a.RecoveredAmount = recovered

	switch {
	case recovered.GreaterThanOrEqual(a.Amount):
		a.Status = advance.StatusFullyRecovered
	case recovered.IsPositive():
		a.Status = advance.StatusPartiallyRecovered
	}
	return a
}

// ApplyInstallmentPayment marks one installment paid and recomputes the aggregate
// status. The input advance is left untouched.
func ApplyInstallmentPayment(a advance.Advance, installmentID string, paidDate time.Time) (advance.Advance, error) {
	if !a.InRecovery() {
		return advance.Advance{}, advance.ErrAdvanceNotApproved
	}
	i, ok := a.FindInstallment(installmentID)
	if !ok {
		return advance.Advance{}, advance.ErrInstallmentNotFound
	}
	if a.Installments[i].Status == advance.InstallmentPaid {
		return advance.Advance{}, advance.ErrInstallmentAlreadyPaid
	}

	a.Installments = slices.Clone(a.Installments)
	paid := utils.TruncateDay(paidDate)
	a.Installments[i].Status = advance.InstallmentPaid
	a.Installments[i].PaidDate = &paid

	return RecomputeRecovery(a), nil
}

// MarkOverdue flips pending installments due before today. Returns the number changed.
func MarkOverdue(a advance.Advance, today time.Time) (advance.Advance, int) {
	if !a.InRecovery() {
		return a, 0
	}
	today = utils.TruncateDay(today)

	changed := 0
	a.Installments = slices.Clone(a.Installments)
	for i, inst := range a.Installments {
		if inst.Status == advance.InstallmentPending && inst.DueDate.Before(today) {
			a.Installments[i].Status = advance.InstallmentOverdue
			changed++
		}
	}
	return a, changed
}
