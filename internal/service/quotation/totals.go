package quotation

import (
	"github.com/buildpro/backoffice-backend-go/internal/domain/quotation"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

func round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// LineNet is the line amount after its own discount percentage.
func LineNet(item quotation.LineItem) decimal.Decimal {
	if item.DiscountPercent == nil || item.DiscountPercent.IsZero() {
		return item.Amount
	}
	keep := hundred.Sub(*item.DiscountPercent).Div(hundred)
	return round2(item.Amount.Mul(keep))
}

// ComputeTotals re-derives every line amount and the quotation money block.
// The returned slice is a fresh copy; items is not modified.
func ComputeTotals(items []quotation.LineItem, taxPercentage, totalDiscount decimal.Decimal) ([]quotation.LineItem, quotation.Totals) {
	out := make([]quotation.LineItem, len(items))
	subtotal := decimal.Zero
	for i, item := range items {
		item.Amount = round2(item.Quantity.Mul(item.Rate))
		out[i] = item
		subtotal = subtotal.Add(LineNet(item))
	}

	tax := round2(subtotal.Mul(taxPercentage).Div(hundred))
	return out, quotation.Totals{
		Subtotal:    subtotal,
		TaxAmount:   tax,
		TotalAmount: subtotal.Add(tax).Sub(totalDiscount),
	}
}

// applyTotals recomputes q in place from its line items, tax and discount.
func applyTotals(q *quotation.Quotation) {
	items, totals := ComputeTotals(q.LineItems, q.TaxPercentage, q.TotalDiscount)
	q.LineItems = items
	q.Subtotal = totals.Subtotal
	q.TaxAmount = totals.TaxAmount
	q.TotalAmount = totals.TotalAmount
}

func toLineItems(reqs []quotation.LineItemRequest) []quotation.LineItem {
	items := make([]quotation.LineItem, 0, len(reqs))
	for _, r := range reqs {
		items = append(items, quotation.LineItem{
			ID:              uuid.New().String(),
			Category:        r.Category,
			Description:     r.Description,
			Unit:            r.Unit,
			Quantity:        r.Quantity,
			Rate:            r.Rate,
			DiscountPercent: r.DiscountPercent,
		})
	}
	return items
}
