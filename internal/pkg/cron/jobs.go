package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/buildpro/backoffice-backend-go/internal/domain/advance"
	"github.com/buildpro/backoffice-backend-go/internal/domain/quotation"
)

// BackofficeJobs holds the periodic maintenance over advances and quotations.
type BackofficeJobs struct {
	advanceSvc   advance.AdvanceService
	quotationSvc quotation.QuotationService
	now          func() time.Time
}

func NewBackofficeJobs(advanceSvc advance.AdvanceService, quotationSvc quotation.QuotationService) *BackofficeJobs {
	return &BackofficeJobs{
		advanceSvc:   advanceSvc,
		quotationSvc: quotationSvc,
		now:          time.Now,
	}
}

func (j *BackofficeJobs) RegisterJobs(scheduler *Scheduler, interval time.Duration) {
	scheduler.AddJob("mark_overdue_installments", interval, j.MarkOverdueInstallments)
	scheduler.AddJob("expire_quotations", interval, j.ExpireQuotations)
}

func (j *BackofficeJobs) MarkOverdueInstallments(ctx context.Context) error {
	n, err := j.advanceSvc.MarkOverdue(ctx, j.now().UTC())
	if err != nil {
		return fmt.Errorf("failed to mark overdue installments: %w", err)
	}
	if n > 0 {
		slog.Info("Cron: marked advances with overdue installments", "count", n)
	}
	return nil
}

func (j *BackofficeJobs) ExpireQuotations(ctx context.Context) error {
	n, err := j.quotationSvc.ExpireOverdue(ctx, j.now().UTC())
	if err != nil {
		return fmt.Errorf("failed to expire quotations: %w", err)
	}
	if n > 0 {
		slog.Info("Cron: expired quotations", "count", n)
	}
	return nil
}
