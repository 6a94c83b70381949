package quotation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/buildpro/backoffice-backend-go/internal/domain/client"
	"github.com/buildpro/backoffice-backend-go/internal/domain/quotation"
	"github.com/buildpro/backoffice-backend-go/internal/pkg/utils"
	"github.com/google/uuid"
)

type QuotationServiceImpl struct {
	quotationRepo quotation.QuotationRepository
	clientRepo    client.ClientRepository
	now           func() time.Time
}

func NewQuotationService(
	quotationRepo quotation.QuotationRepository,
	clientRepo client.ClientRepository,
) quotation.QuotationService {
	return &QuotationServiceImpl{
		quotationRepo: quotationRepo,
		clientRepo:    clientRepo,
		now:           time.Now,
	}
}

func formatNumber(year, seq int) string {
	return fmt.Sprintf("QT-%d-%04d", year, seq)
}

func validUntil(createdAt time.Time, days int) time.Time {
	return utils.TruncateDay(createdAt).AddDate(0, 0, days)
}

func (s *QuotationServiceImpl) response(ctx context.Context, q quotation.Quotation) quotation.QuotationResponse {
	if q.ClientName == nil {
		c, err := s.clientRepo.GetByID(ctx, q.ClientID)
		if err == nil {
			q.ClientName = &c.Name
		} else if !errors.Is(err, client.ErrClientNotFound) {
			slog.Warn("Failed to load client for quotation", "quotation_id", q.ID, "error", err)
		}
	}
	return quotation.ToResponse(q, s.now())
}

func (s *QuotationServiceImpl) CreateQuotation(ctx context.Context, req quotation.CreateQuotationRequest) (quotation.QuotationResponse, error) {
	if err := req.Validate(); err != nil {
		return quotation.QuotationResponse{}, err
	}

	if len(req.LineItems) == 0 {
		return quotation.QuotationResponse{}, quotation.ErrNoLineItems
	}

	c, err := s.clientRepo.GetByID(ctx, req.ClientID)
	if err != nil {
		return quotation.QuotationResponse{}, err
	}

	now := s.now()
	seq, err := s.quotationRepo.NextNumber(ctx, now.Year())
	if err != nil {
		return quotation.QuotationResponse{}, fmt.Errorf("failed to reserve quotation number: %w", err)
	}

	q := quotation.Quotation{
		ID:             uuid.New().String(),
		Number:         formatNumber(now.Year(), seq),
		ClientID:       c.ID,
		Title:          req.Title,
		LineItems:      toLineItems(req.LineItems),
		TaxPercentage:  req.TaxPercentage,
		TotalDiscount:  req.TotalDiscount,
		Status:         quotation.StatusDraft,
		ValidityPeriod: req.ValidityPeriod,
		Notes:          req.Notes,
		CreatedBy:      req.CreatedBy,
		CreatedAt:      now,
		UpdatedAt:      now,
		ValidUntil:     validUntil(now, req.ValidityPeriod),
	}
	applyTotals(&q)

	created, err := s.quotationRepo.Create(ctx, q)
	if err != nil {
		return quotation.QuotationResponse{}, fmt.Errorf("failed to create quotation: %w", err)
	}
	created.ClientName = &c.Name

	slog.Info("Quotation created", "quotation_id", created.ID, "number", created.Number, "total", created.TotalAmount.String())
	return s.response(ctx, created), nil
}

func (s *QuotationServiceImpl) GetQuotation(ctx context.Context, id string) (quotation.QuotationResponse, error) {
	q, err := s.quotationRepo.GetByID(ctx, id)
	if err != nil {
		return quotation.QuotationResponse{}, err
	}
	return s.response(ctx, q), nil
}

func (s *QuotationServiceImpl) ListQuotations(ctx context.Context, filter quotation.QuotationFilter) ([]quotation.QuotationResponse, error) {
	quotations, err := s.quotationRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list quotations: %w", err)
	}

	responses := make([]quotation.QuotationResponse, 0, len(quotations))
	for _, q := range quotations {
		responses = append(responses, s.response(ctx, q))
	}
	return responses, nil
}

func (s *QuotationServiceImpl) UpdateQuotation(ctx context.Context, req quotation.UpdateQuotationRequest) (quotation.QuotationResponse, error) {
	if err := req.Validate(); err != nil {
		return quotation.QuotationResponse{}, err
	}

	q, err := s.quotationRepo.GetByID(ctx, req.ID)
	if err != nil {
		return quotation.QuotationResponse{}, err
	}
	if !q.Status.Editable() {
		return quotation.QuotationResponse{}, quotation.ErrQuotationLocked
	}

	if req.Title != nil {
		q.Title = *req.Title
	}
	if req.LineItems != nil {
		if len(req.LineItems) == 0 {
			return quotation.QuotationResponse{}, quotation.ErrNoLineItems
		}
		q.LineItems = toLineItems(req.LineItems)
	}
	if req.TaxPercentage != nil {
		q.TaxPercentage = *req.TaxPercentage
	}
	if req.TotalDiscount != nil {
		q.TotalDiscount = *req.TotalDiscount
	}
	if req.ValidityPeriod != nil {
		q.ValidityPeriod = *req.ValidityPeriod
		q.ValidUntil = validUntil(q.CreatedAt, q.ValidityPeriod)
	}
	if req.Notes != nil {
		q.Notes = req.Notes
	}
	applyTotals(&q)

	now := s.now()
	q.UpdatedAt = now

	// Finalized quotations keep an append-only history; drafts change in place.
	if q.Status == quotation.StatusFinalized {
		q.Versions = append(q.Versions, quotation.Version{
			Version:     len(q.Versions) + 1,
			ModifiedBy:  req.ModifiedBy,
			ModifiedAt:  now,
			Changes:     req.Changes,
			LineItems:   slices.Clone(q.LineItems),
			TotalAmount: q.TotalAmount,
		})
	}

	if err := s.quotationRepo.Update(ctx, q); err != nil {
		return quotation.QuotationResponse{}, fmt.Errorf("failed to update quotation: %w", err)
	}
	return s.response(ctx, q), nil
}

func (s *QuotationServiceImpl) UpdateStatus(ctx context.Context, req quotation.UpdateStatusRequest) (quotation.QuotationResponse, error) {
	if err := req.Validate(); err != nil {
		return quotation.QuotationResponse{}, err
	}

	q, err := s.quotationRepo.GetByID(ctx, req.ID)
	if err != nil {
		return quotation.QuotationResponse{}, err
	}

	next := quotation.Status(req.Status)
	if !quotation.CanTransition(q.Status, next) {
		return quotation.QuotationResponse{}, fmt.Errorf("%w: %s -> %s", quotation.ErrInvalidStatusTransition, q.Status, next)
	}

	q.Status = next
	q.UpdatedAt = s.now()
	if err := s.quotationRepo.Update(ctx, q); err != nil {
		return quotation.QuotationResponse{}, fmt.Errorf("failed to update quotation status: %w", err)
	}
	return s.response(ctx, q), nil
}

func (s *QuotationServiceImpl) ListVersions(ctx context.Context, id string) ([]quotation.VersionResponse, error) {
	q, err := s.quotationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return quotation.ToVersionResponses(q.Versions), nil
}

func (s *QuotationServiceImpl) PreviewTotals(ctx context.Context, req quotation.PreviewTotalsRequest) (quotation.TotalsResponse, error) {
	if err := req.Validate(); err != nil {
		return quotation.TotalsResponse{}, err
	}

	items, totals := ComputeTotals(toLineItems(req.LineItems), req.TaxPercentage, req.TotalDiscount)
	return quotation.TotalsResponse{
		LineItems:   quotation.ToLineItemResponses(items),
		Subtotal:    totals.Subtotal,
		TaxAmount:   totals.TaxAmount,
		TotalAmount: totals.TotalAmount,
	}, nil
}

// ExpireOverdue moves sent quotations with no days remaining to expired.
func (s *QuotationServiceImpl) ExpireOverdue(ctx context.Context, now time.Time) (int, error) {
	status := string(quotation.StatusSent)
	sent, err := s.quotationRepo.List(ctx, quotation.QuotationFilter{Status: &status})
	if err != nil {
		return 0, fmt.Errorf("failed to list sent quotations: %w", err)
	}

	expired := 0
	for _, q := range sent {
		if bucket, _ := q.Expiry(now); bucket != quotation.ExpiryExpired {
			continue
		}
		q.Status = quotation.StatusExpired
		q.UpdatedAt = now
		if err := s.quotationRepo.Update(ctx, q); err != nil {
			slog.Error("Failed to expire quotation", "quotation_id", q.ID, "error", err)
			continue
		}
		expired++
	}
	return expired, nil
}
