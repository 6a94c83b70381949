package quotation

import (
	"testing"

	"github.com/buildpro/backoffice-backend-go/internal/domain/quotation"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), "want %s, got %s", want, got)
}

func TestComputeTotals_TwoLineItemsWithTax(t *testing.T) {
	items := []quotation.LineItem{
		{Description: "Waterproofing", Unit: "sqft", Quantity: dec("800"), Rate: dec("12")},
		{Description: "Tiling", Unit: "sqft", Quantity: dec("600"), Rate: dec("45")},
	}

	got, totals := ComputeTotals(items, dec("18"), decimal.Zero)

	require.Len(t, got, 2)
	assertDecimal(t, "9600", got[0].Amount)
	assertDecimal(t, "27000", got[1].Amount)
	assertDecimal(t, "36600", totals.Subtotal)
	assertDecimal(t, "6588", totals.TaxAmount)
	assertDecimal(t, "43188", totals.TotalAmount)
	assert.True(t, items[0].Amount.IsZero(), "input must not be mutated")
}

func TestComputeTotals_FlatDiscountAfterTax(t *testing.T) {
	items := []quotation.LineItem{{Quantity: dec("10"), Rate: dec("100")}}

	_, totals := ComputeTotals(items, dec("18"), dec("180"))

	assertDecimal(t, "1000", totals.Subtotal)
	assertDecimal(t, "180", totals.TaxAmount)
	assertDecimal(t, "1000", totals.TotalAmount)
}

func TestComputeTotals_LineDiscountReducesSubtotal(t *testing.T) {
	items := []quotation.LineItem{
		{Quantity: dec("4"), Rate: dec("250"), DiscountPercent: decPtr("10")},
		{Quantity: dec("1"), Rate: dec("500")},
	}

	got, totals := ComputeTotals(items, dec("5"), decimal.Zero)

	assertDecimal(t, "1000", got[0].Amount)
	assertDecimal(t, "900", LineNet(got[0]))
	assertDecimal(t, "1400", totals.Subtotal)
	assertDecimal(t, "70", totals.TaxAmount)
	assertDecimal(t, "1470", totals.TotalAmount)
}

func TestComputeTotals_TaxIsRoundedToPaise(t *testing.T) {
	items := []quotation.LineItem{{Quantity: dec("3"), Rate: dec("33.33")}}

	_, totals := ComputeTotals(items, dec("18"), decimal.Zero)

	assertDecimal(t, "99.99", totals.Subtotal)
	assertDecimal(t, "18", totals.TaxAmount)
	assertDecimal(t, "117.99", totals.TotalAmount)
}

func TestComputeTotals_Invariant(t *testing.T) {
	cases := []struct {
		qty, rate, tax, discount string
	}{
		{"1", "0", "0", "0"},
		{"12.5", "399.99", "18", "100"},
		{"0.75", "1234.56", "12", "0"},
		{"1000", "7.77", "28", "50.50"},
	}
	for _, c := range cases {
		items := []quotation.LineItem{{Quantity: dec(c.qty), Rate: dec(c.rate)}}
		_, totals := ComputeTotals(items, dec(c.tax), dec(c.discount))

		wantTax := totals.Subtotal.Mul(dec(c.tax)).Div(hundred).Round(2)
		assert.True(t, wantTax.Equal(totals.TaxAmount))
		assert.True(t, totals.Subtotal.Add(totals.TaxAmount).Sub(dec(c.discount)).Equal(totals.TotalAmount))
	}
}

func TestComputeTotals_Empty(t *testing.T) {
	got, totals := ComputeTotals(nil, dec("18"), decimal.Zero)
	assert.Empty(t, got)
	assert.True(t, totals.Subtotal.IsZero())
	assert.True(t, totals.TotalAmount.IsZero())
}
