package memory

import (
	"context"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/buildpro/backoffice-backend-go/internal/domain/payroll"
	"github.com/buildpro/backoffice-backend-go/internal/pkg/utils"
	"github.com/google/uuid"
)

type deductionRepository struct {
	mu         sync.RWMutex
	deductions map[string]payroll.Deduction
}

func NewDeductionRepository() payroll.DeductionRepository {
	return &deductionRepository{deductions: make(map[string]payroll.Deduction)}
}

func (r *deductionRepository) Create(ctx context.Context, d payroll.Deduction) (payroll.Deduction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if d.ID == "" {
		d.ID = uuid.New().String()
	}
	if d.CreatedAt.IsZero() {
		d.CreatedAt = time.Now()
	}
	d.Date = utils.TruncateDay(d.Date)
	r.deductions[d.ID] = d
	return d, nil
}

func (r *deductionRepository) GetByID(ctx context.Context, id string) (payroll.Deduction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	d, ok := r.deductions[id]
	if !ok {
		return payroll.Deduction{}, payroll.ErrDeductionNotFound
	}
	return d, nil
}

func (r *deductionRepository) ListByWorker(ctx context.Context, workerID string, start, end time.Time) ([]payroll.Deduction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []payroll.Deduction
	for _, d := range r.deductions {
		if d.WorkerID == workerID && utils.WithinRange(d.Date, start, end) {
			result = append(result, d)
		}
	}

	sort.Slice(result, func(i, j int) bool { return result[i].Date.Before(result[j].Date) })
	return result, nil
}

func (r *deductionRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.deductions[id]; !ok {
		return payroll.ErrDeductionNotFound
	}
	delete(r.deductions, id)
	return nil
}

type paymentRecordRepository struct {
	mu      sync.RWMutex
	records map[string]payroll.PaymentRecord
}

func NewPaymentRecordRepository() payroll.PaymentRecordRepository {
	return &paymentRecordRepository{records: make(map[string]payroll.PaymentRecord)}
}

func samePeriod(a, b payroll.Period) bool {
	return a.StartDate.Equal(b.StartDate) && a.EndDate.Equal(b.EndDate)
}

func (r *paymentRecordRepository) Upsert(ctx context.Context, record payroll.PaymentRecord) (payroll.PaymentRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	record.AdvanceInstallments = slices.Clone(record.AdvanceInstallments)
	now := time.Now()
	for id, existing := range r.records {
		if existing.WorkerID != record.WorkerID || !samePeriod(existing.Period, record.Period) {
			continue
		}
		if existing.Status == payroll.RecordPaid {
			return payroll.PaymentRecord{}, payroll.ErrPaymentRecordAlreadyPaid
		}
		record.ID = id
		record.CreatedAt = existing.CreatedAt
		record.UpdatedAt = now
		r.records[id] = record
		return record, nil
	}

	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	record.CreatedAt, record.UpdatedAt = now, now
	r.records[record.ID] = record
	return record, nil
}

func (r *paymentRecordRepository) GetByID(ctx context.Context, id string) (payroll.PaymentRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.records[id]
	if !ok {
		return payroll.PaymentRecord{}, payroll.ErrPaymentRecordNotFound
	}
	return record, nil
}

func (r *paymentRecordRepository) List(ctx context.Context, filter payroll.PaymentRecordFilter) ([]payroll.PaymentRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []payroll.PaymentRecord
	for _, record := range r.records {
		if filter.Matches(record) {
			result = append(result, record)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].Period.StartDate.Equal(result[j].Period.StartDate) {
			return result[i].Period.StartDate.Before(result[j].Period.StartDate)
		}
		return result[i].WorkerName < result[j].WorkerName
	})
	return result, nil
}

// MarkPaid is all or nothing: unknown or already paid ids leave every record untouched.
func (r *paymentRecordRepository) MarkPaid(ctx context.Context, ids []string, paidAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, id := range ids {
		record, ok := r.records[id]
		if !ok {
			return payroll.ErrPaymentRecordNotFound
		}
		if record.Status == payroll.RecordPaid {
			return payroll.ErrPaymentRecordAlreadyPaid
		}
	}

	now := time.Now()
	for _, id := range ids {
		record := r.records[id]
		record.Status = payroll.RecordPaid
		record.PaidAt = &paidAt
		record.UpdatedAt = now
		r.records[id] = record
	}
	return nil
}
