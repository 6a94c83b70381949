package quotation

import (
	"context"
	"time"
)

type QuotationService interface {
	CreateQuotation(ctx context.Context, req CreateQuotationRequest) (QuotationResponse, error)
	GetQuotation(ctx context.Context, id string) (QuotationResponse, error)
	ListQuotations(ctx context.Context, filter QuotationFilter) ([]QuotationResponse, error)

	// UpdateQuotation edits a draft in place, or appends a version to a finalized quotation
	UpdateQuotation(ctx context.Context, req UpdateQuotationRequest) (QuotationResponse, error)
	UpdateStatus(ctx context.Context, req UpdateStatusRequest) (QuotationResponse, error)
	ListVersions(ctx context.Context, id string) ([]VersionResponse, error)

	// PreviewTotals computes totals without storing anything
	PreviewTotals(ctx context.Context, req PreviewTotalsRequest) (TotalsResponse, error)

	// ExpireOverdue is run by the scheduler
	ExpireOverdue(ctx context.Context, now time.Time) (int, error)
}
