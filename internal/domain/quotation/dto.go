package quotation

import (
	"fmt"
	"time"

	"github.com/buildpro/backoffice-backend-go/internal/pkg/utils"
	"github.com/buildpro/backoffice-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type QuotationFilter struct {
	ClientID *string
	Status   *string
}

type LineItemRequest struct {
	Category        string           `json:"category" validate:"required"`
	Description     string           `json:"description" validate:"required"`
	Unit            string           `json:"unit" validate:"required"`
	Quantity        decimal.Decimal  `json:"quantity" validate:"gt=0"`
	Rate            decimal.Decimal  `json:"rate" validate:"gte=0"`
	DiscountPercent *decimal.Decimal `json:"discount_percent,omitempty"`
}

var hundred = decimal.NewFromInt(100)

func validateDiscounts(errs validator.ValidationErrors, items []LineItemRequest) validator.ValidationErrors {
	for i, item := range items {
		if item.DiscountPercent == nil {
			continue
		}
		if item.DiscountPercent.IsNegative() || item.DiscountPercent.GreaterThan(hundred) {
			errs = errs.Add(fmt.Sprintf("line_items[%d].discount_percent", i), "must be between 0 and 100")
		}
	}
	return errs
}

type CreateQuotationRequest struct {
	ClientID       string            `json:"client_id" validate:"required"`
	Title          string            `json:"title" validate:"required,max=255"`
	LineItems      []LineItemRequest `json:"line_items" validate:"min=1,dive"`
	TaxPercentage  decimal.Decimal   `json:"tax_percentage" validate:"gte=0,lte=100"`
	TotalDiscount  decimal.Decimal   `json:"total_discount" validate:"gte=0"`
	ValidityPeriod int               `json:"validity_period" validate:"gte=1,lte=365"`
	Notes          *string           `json:"notes,omitempty"`
	CreatedBy      string            `json:"created_by" validate:"required"`
}

func (r *CreateQuotationRequest) Validate() error {
	errs := validator.Struct(r)
	errs = validateDiscounts(errs, r.LineItems)
	return errs.OrNil()
}

type UpdateQuotationRequest struct {
	ID             string            `json:"-"`
	Title          *string           `json:"title,omitempty"`
	LineItems      []LineItemRequest `json:"line_items,omitempty" validate:"omitempty,dive"`
	TaxPercentage  *decimal.Decimal  `json:"tax_percentage,omitempty"`
	TotalDiscount  *decimal.Decimal  `json:"total_discount,omitempty"`
	ValidityPeriod *int              `json:"validity_period,omitempty"`
	Notes          *string           `json:"notes,omitempty"`
	ModifiedBy     string            `json:"modified_by" validate:"required"`
	Changes        string            `json:"changes"`
}

func (r *UpdateQuotationRequest) Validate() error {
	errs := validator.Struct(r)

	if validator.IsEmpty(r.ID) {
		errs = errs.Add("id", "is required")
	}
	if r.Title != nil && validator.IsEmpty(*r.Title) {
		errs = errs.Add("title", "must not be empty")
	}
	if r.TaxPercentage != nil && (r.TaxPercentage.IsNegative() || r.TaxPercentage.GreaterThan(hundred)) {
		errs = errs.Add("tax_percentage", "must be between 0 and 100")
	}
	if r.TotalDiscount != nil && r.TotalDiscount.IsNegative() {
		errs = errs.Add("total_discount", "must be non-negative")
	}
	if r.ValidityPeriod != nil && (*r.ValidityPeriod < 1 || *r.ValidityPeriod > 365) {
		errs = errs.Add("validity_period", "must be between 1 and 365")
	}
	errs = validateDiscounts(errs, r.LineItems)

	return errs.OrNil()
}

type UpdateStatusRequest struct {
	ID     string `json:"-"`
	Status string `json:"status" validate:"required,oneof=draft finalized sent accepted rejected expired"`
}

func (r *UpdateStatusRequest) Validate() error {
	errs := validator.Struct(r)
	if validator.IsEmpty(r.ID) {
		errs = errs.Add("id", "is required")
	}
	return errs.OrNil()
}

type PreviewTotalsRequest struct {
	LineItems     []LineItemRequest `json:"line_items" validate:"dive"`
	TaxPercentage decimal.Decimal   `json:"tax_percentage" validate:"gte=0,lte=100"`
	TotalDiscount decimal.Decimal   `json:"total_discount" validate:"gte=0"`
}

func (r *PreviewTotalsRequest) Validate() error {
	errs := validator.Struct(r)
	errs = validateDiscounts(errs, r.LineItems)
	return errs.OrNil()
}

type LineItemResponse struct {
	ID              string           `json:"id"`
	Category        string           `json:"category"`
	Description     string           `json:"description"`
	Unit            string           `json:"unit"`
	Quantity        decimal.Decimal  `json:"quantity"`
	Rate            decimal.Decimal  `json:"rate"`
	Amount          decimal.Decimal  `json:"amount"`
	DiscountPercent *decimal.Decimal `json:"discount_percent,omitempty"`
}

type VersionResponse struct {
	Version     int                `json:"version"`
	ModifiedBy  string             `json:"modified_by"`
	ModifiedAt  time.Time          `json:"modified_at"`
	Changes     string             `json:"changes"`
	LineItems   []LineItemResponse `json:"line_items"`
	TotalAmount decimal.Decimal    `json:"total_amount"`
}

type TotalsResponse struct {
	LineItems   []LineItemResponse `json:"line_items"`
	Subtotal    decimal.Decimal    `json:"subtotal"`
	TaxAmount   decimal.Decimal    `json:"tax_amount"`
	TotalAmount decimal.Decimal    `json:"total_amount"`
}

type QuotationResponse struct {
	ID             string             `json:"id"`
	Number         string             `json:"number"`
	ClientID       string             `json:"client_id"`
	ClientName     *string            `json:"client_name,omitempty"`
	Title          string             `json:"title"`
	LineItems      []LineItemResponse `json:"line_items"`
	Subtotal       decimal.Decimal    `json:"subtotal"`
	TaxPercentage  decimal.Decimal    `json:"tax_percentage"`
	TaxAmount      decimal.Decimal    `json:"tax_amount"`
	TotalDiscount  decimal.Decimal    `json:"total_discount"`
	TotalAmount    decimal.Decimal    `json:"total_amount"`
	Status         string             `json:"status"`
	ValidityPeriod int                `json:"validity_period"`
	ValidUntil     string             `json:"valid_until"`
	ExpiryStatus   string             `json:"expiry_status"`
	DaysRemaining  int                `json:"days_remaining"`
	VersionCount   int                `json:"version_count"`
	Notes          *string            `json:"notes,omitempty"`
	CreatedBy      string             `json:"created_by"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
}

func ToLineItemResponses(items []LineItem) []LineItemResponse {
	out := make([]LineItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, LineItemResponse{
			ID:              item.ID,
			Category:        item.Category,
			Description:     item.Description,
			Unit:            item.Unit,
			Quantity:        item.Quantity,
			Rate:            item.Rate,
			Amount:          item.Amount,
			DiscountPercent: item.DiscountPercent,
		})
	}
	return out
}

func ToVersionResponses(versions []Version) []VersionResponse {
	out := make([]VersionResponse, 0, len(versions))
	for _, v := range versions {
		out = append(out, VersionResponse{
			Version:     v.Version,
			ModifiedBy:  v.ModifiedBy,
			ModifiedAt:  v.ModifiedAt,
			Changes:     v.Changes,
			LineItems:   ToLineItemResponses(v.LineItems),
			TotalAmount: v.TotalAmount,
		})
	}
	return out
}

func ToResponse(q Quotation, now time.Time) QuotationResponse {
	expiry, days := q.Expiry(now)
	return QuotationResponse{
		ID:             q.ID,
		Number:         q.Number,
		ClientID:       q.ClientID,
		ClientName:     q.ClientName,
		Title:          q.Title,
		LineItems:      ToLineItemResponses(q.LineItems),
		Subtotal:       q.Subtotal,
		TaxPercentage:  q.TaxPercentage,
		TaxAmount:      q.TaxAmount,
		TotalDiscount:  q.TotalDiscount,
		TotalAmount:    q.TotalAmount,
		Status:         string(q.Status),
		ValidityPeriod: q.ValidityPeriod,
		ValidUntil:     utils.FormatDate(q.ValidUntil),
		ExpiryStatus:   string(expiry),
		DaysRemaining:  days,
		VersionCount:   len(q.Versions),
		Notes:          q.Notes,
		CreatedBy:      q.CreatedBy,
		CreatedAt:      q.CreatedAt,
		UpdatedAt:      q.UpdatedAt,
	}
}
