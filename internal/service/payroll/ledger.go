package payroll

import (
	"github.com/buildpro/backoffice-backend-go/internal/domain/advance"
	"github.com/buildpro/backoffice-backend-go/internal/domain/payroll"
	"github.com/buildpro/backoffice-backend-go/internal/pkg/utils"
	"github.com/shopspring/decimal"
)

// CalculateDeductions sums what is taken off a worker's pay for the period.
//
// Advances without an installment plan count with their full amount while
// approved and dated on or before the period end. Advances with a plan are
// recovered only through installments, so an advance is never deducted both
// as a lump sum and by installment. Every unpaid installment due on or before
// the period end is deducted, which picks up installments an earlier run
// missed, unless claimed holds its id because another unsettled payment
// record already deducts it. The deducted installments are returned so they
// can be settled once the payment goes out.
// Ad hoc deductions count when dated inside the period.
func CalculateDeductions(workerID string, period payroll.Period, advances []advance.Advance, deductions []payroll.Deduction, claimed map[string]bool) payroll.DeductionTotals {
	advanceTotal := decimal.Zero
	var refs []advance.InstallmentRef
	for _, a := range advances {
		if a.WorkerID != workerID {
			continue
		}
		if a.HasInstallmentPlan() {
			due := installmentsDue(a, period, claimed)
			for _, ref := range due {
				advanceTotal = advanceTotal.Add(ref.Amount)
			}
			refs = append(refs, due...)
			continue
		}
		if a.Status == advance.StatusApproved && !utils.TruncateDay(a.Date).After(period.EndDate) {
			advanceTotal = advanceTotal.Add(a.Amount)
		}
	}

	deductionTotal := decimal.Zero
	for _, d := range deductions {
		if d.WorkerID != workerID || !period.Contains(d.Date) {
			continue
		}
		deductionTotal = deductionTotal.Add(d.Amount)
	}

	return payroll.DeductionTotals{
		AdvanceTotal:   advanceTotal,
		DeductionTotal: deductionTotal,
		Total:          advanceTotal.Add(deductionTotal),
		Installments:   refs,
	}
}

func installmentsDue(a advance.Advance, period payroll.Period, claimed map[string]bool) []advance.InstallmentRef {
	if !a.InRecovery() {
		return nil
	}

	var refs []advance.InstallmentRef
	for _, inst := range a.Installments {
		if inst.Status == advance.InstallmentPaid || claimed[inst.ID] {
			continue
		}
		if utils.TruncateDay(inst.DueDate).After(period.EndDate) {
			continue
		}
		refs = append(refs, advance.InstallmentRef{AdvanceID: a.ID, InstallmentID: inst.ID, Amount: inst.Amount})
	}
	return refs
}
