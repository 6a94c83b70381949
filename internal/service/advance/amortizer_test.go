package advance

import (
	"fmt"
	"testing"
	"time"

	"github.com/buildpro/backoffice-backend-go/internal/domain/advance"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func amounts(installments []advance.Installment) []string {
	out := make([]string, len(installments))
	for i, inst := range installments {
		out[i] = inst.Amount.String()
	}
	return out
}

func TestBuildSchedule_EvenSplit(t *testing.T) {
	installments, err := BuildSchedule("adv-1", dec("15000"), 3, day(2024, time.January, 15))
	require.NoError(t, err)

	assert.Equal(t, []string{"5000", "5000", "5000"}, amounts(installments))
	assert.Equal(t, day(2024, time.February, 15), installments[0].DueDate)
	assert.Equal(t, day(2024, time.March, 15), installments[1].DueDate)
	assert.Equal(t, day(2024, time.April, 15), installments[2].DueDate)
	for i, inst := range installments {
		assert.Equal(t, i+1, inst.Number)
		assert.Equal(t, "adv-1", inst.AdvanceID)
		assert.Equal(t, advance.InstallmentPending, inst.Status)
		assert.NotEmpty(t, inst.ID)
	}
}

func TestBuildSchedule_LastAbsorbsRounding(t *testing.T) {
	installments, err := BuildSchedule("adv-1", dec("10000"), 3, day(2024, time.January, 15))
	require.NoError(t, err)
	assert.Equal(t, []string{"3334", "3334", "3332"}, amounts(installments))
}

func TestBuildSchedule_SumIsExact(t *testing.T) {
	totals := []string{"1", "99", "1000.50", "10000", "12345.67", "250000"}
	for _, total := range totals {
		for count := 1; count <= 12; count++ {
			t.Run(fmt.Sprintf("%s/%d", total, count), func(t *testing.T) {
				installments, err := BuildSchedule("adv", dec(total), count, day(2024, time.January, 31))
				if err != nil {
					require.ErrorIs(t, err, advance.ErrTooManyInstallments)
					return
				}
				require.Len(t, installments, count)

				sum := decimal.Zero
				for _, inst := range installments {
					sum = sum.Add(inst.Amount)
					assert.True(t, inst.Amount.IsPositive())
				}
				assert.True(t, dec(total).Equal(sum), "sum %s != %s", sum, total)

				for i := 0; i < count-2; i++ {
					assert.True(t, installments[i].Amount.Equal(installments[i+1].Amount))
				}
			})
		}
	}
}

func TestBuildSchedule_MonthEndClamp(t *testing.T) {
	installments, err := BuildSchedule("adv-1", dec("3000"), 3, day(2024, time.January, 31))
	require.NoError(t, err)
	assert.Equal(t, day(2024, time.February, 29), installments[0].DueDate)
	assert.Equal(t, day(2024, time.March, 31), installments[1].DueDate)
	assert.Equal(t, day(2024, time.April, 30), installments[2].DueDate)
}

func TestBuildSchedule_InvalidInput(t *testing.T) {
	_, err := BuildSchedule("adv", dec("1000"), 0, day(2024, time.January, 1))
	assert.ErrorIs(t, err, advance.ErrInvalidInstallmentCount)

	_, err = BuildSchedule("adv", dec("0"), 3, day(2024, time.January, 1))
	assert.ErrorIs(t, err, advance.ErrInvalidAdvanceAmount)

	// ceil(5/4) = 2, which leaves -1 for the last installment
	_, err = BuildSchedule("adv", dec("5"), 4, day(2024, time.January, 1))
	assert.ErrorIs(t, err, advance.ErrTooManyInstallments)
}

// A ceil split that leaves nothing for the last installment is refused rather
// than producing a zero or negative installment.
func TestBuildSchedule_LastInstallmentBoundary(t *testing.T) {
	cases := []struct {
		total string
		count int
		want  []string
	}{
		{"4", 3, nil},
		{"5", 3, []string{"2", "2", "1"}},
		{"6", 3, []string{"2", "2", "2"}},
		{"7", 4, []string{"2", "2", "2", "1"}},
		{"8", 4, []string{"2", "2", "2", "2"}},
		{"10", 6, nil},
		{"10", 5, []string{"2", "2", "2", "2", "2"}},
		{"1", 1, []string{"1"}},
		{"1", 2, nil},
	}
	for _, c := range cases {
		t.Run(fmt.Sprintf("%s/%d", c.total, c.count), func(t *testing.T) {
			installments, err := BuildSchedule("adv", dec(c.total), c.count, day(2024, time.January, 1))
			if c.want == nil {
				assert.ErrorIs(t, err, advance.ErrTooManyInstallments)
				assert.Nil(t, installments)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, c.want, amounts(installments))
		})
	}
}

func scheduledAdvance(t *testing.T) advance.Advance {
	t.Helper()
	installments, err := BuildSchedule("adv-1", dec("10000"), 3, day(2024, time.January, 15))
	require.NoError(t, err)
	return advance.Advance{
		ID:              "adv-1",
		WorkerID:        "w1",
		Amount:          dec("10000"),
		Status:          advance.StatusApproved,
		Installments:    installments,
		RecoveredAmount: decimal.Zero,
	}
}

func TestApplyInstallmentPayment_StatusTransitions(t *testing.T) {
	a := scheduledAdvance(t)

	first, err := ApplyInstallmentPayment(a, a.Installments[0].ID, day(2024, time.February, 15))
	require.NoError(t, err)
	assert.Equal(t, advance.StatusPartiallyRecovered, first.Status)
	assert.True(t, dec("3334").Equal(first.RecoveredAmount))
	assert.Equal(t, advance.InstallmentPending, a.Installments[0].Status, "input must not be mutated")

	second, err := ApplyInstallmentPayment(first, first.Installments[2].ID, day(2024, time.March, 1))
	require.NoError(t, err)
	assert.Equal(t, advance.StatusPartiallyRecovered, second.Status)
	assert.True(t, dec("6666").Equal(second.RecoveredAmount))

	third, err := ApplyInstallmentPayment(second, second.Installments[1].ID, day(2024, time.March, 15))
	require.NoError(t, err)
	assert.Equal(t, advance.StatusFullyRecovered, third.Status)
	assert.True(t, dec("10000").Equal(third.RecoveredAmount))
	require.NotNil(t, third.Installments[1].PaidDate)
	assert.Equal(t, day(2024, time.March, 15), *third.Installments[1].PaidDate)

	_, err = ApplyInstallmentPayment(third, third.Installments[0].ID, day(2024, time.April, 1))
	assert.ErrorIs(t, err, advance.ErrAdvanceNotApproved)

	_, err = ApplyInstallmentPayment(second, second.Installments[0].ID, day(2024, time.April, 1))
	assert.ErrorIs(t, err, advance.ErrInstallmentAlreadyPaid)

	_, err = ApplyInstallmentPayment(a, "nope", day(2024, time.April, 1))
	assert.ErrorIs(t, err, advance.ErrInstallmentNotFound)
}

func TestApplyInstallmentPayment_OverdueCanBePaid(t *testing.T) {
	a := scheduledAdvance(t)
	a, changed := MarkOverdue(a, day(2024, time.March, 20))
	assert.Equal(t, 2, changed)
	assert.Equal(t, advance.InstallmentOverdue, a.Installments[0].Status)
	assert.Equal(t, advance.InstallmentOverdue, a.Installments[1].Status)
	assert.Equal(t, advance.InstallmentPending, a.Installments[2].Status)

	paid, err := ApplyInstallmentPayment(a, a.Installments[0].ID, day(2024, time.March, 21))
	require.NoError(t, err)
	assert.Equal(t, advance.InstallmentPaid, paid.Installments[0].Status)
	assert.Equal(t, advance.StatusPartiallyRecovered, paid.Status)
}

func TestMarkOverdue_DueTodayIsNotOverdue(t *testing.T) {
	a := scheduledAdvance(t)
	_, changed := MarkOverdue(a, day(2024, time.February, 15))
	assert.Equal(t, 0, changed)

	a.Status = advance.StatusAdjusted
	_, changed = MarkOverdue(a, day(2025, time.January, 1))
	assert.Equal(t, 0, changed)
}
