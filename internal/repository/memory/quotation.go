package memory

import (
	"context"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/buildpro/backoffice-backend-go/internal/domain/quotation"
	"github.com/google/uuid"
)

type quotationRepository struct {
	mu         sync.RWMutex
	quotations map[string]quotation.Quotation
	sequences  map[int]int
}

func NewQuotationRepository() quotation.QuotationRepository {
	return &quotationRepository{
		quotations: make(map[string]quotation.Quotation),
		sequences:  make(map[int]int),
	}
}

func cloneQuotation(q quotation.Quotation) quotation.Quotation {
	q.LineItems = slices.Clone(q.LineItems)
	versions := make([]quotation.Version, len(q.Versions))
	for i, v := range q.Versions {
		v.LineItems = slices.Clone(v.LineItems)
		versions[i] = v
	}
	q.Versions = versions
	return q
}

func (r *quotationRepository) Create(ctx context.Context, q quotation.Quotation) (quotation.Quotation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if q.ID == "" {
		q.ID = uuid.New().String()
	}
	r.quotations[q.ID] = cloneQuotation(q)
	return cloneQuotation(q), nil
}

func (r *quotationRepository) GetByID(ctx context.Context, id string) (quotation.Quotation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	q, ok := r.quotations[id]
	if !ok {
		return quotation.Quotation{}, quotation.ErrQuotationNotFound
	}
	return cloneQuotation(q), nil
}

func (r *quotationRepository) List(ctx context.Context, filter quotation.QuotationFilter) ([]quotation.Quotation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []quotation.Quotation
	for _, q := range r.quotations {
		if filter.ClientID != nil && *filter.ClientID != "" && q.ClientID != *filter.ClientID {
			continue
		}
		if filter.Status != nil && *filter.Status != "" && string(q.Status) != *filter.Status {
			continue
		}
		result = append(result, cloneQuotation(q))
	}

	sort.Slice(result, func(i, j int) bool { return result[i].Number < result[j].Number })
	return result, nil
}

func (r *quotationRepository) Update(ctx context.Context, q quotation.Quotation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.quotations[q.ID]; !ok {
		return quotation.ErrQuotationNotFound
	}
	if q.UpdatedAt.IsZero() {
		q.UpdatedAt = time.Now()
	}
	r.quotations[q.ID] = cloneQuotation(q)
	return nil
}

func (r *quotationRepository) NextNumber(ctx context.Context, year int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sequences[year]++
	return r.sequences[year], nil
}

func (r *quotationRepository) CountByClient(ctx context.Context, clientID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, q := range r.quotations {
		if q.ClientID == clientID {
			count++
		}
	}
	return count, nil
}
