package memory

import (
	"context"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/buildpro/backoffice-backend-go/internal/domain/advance"
	"github.com/google/uuid"
)

type advanceRepository struct {
	mu       sync.RWMutex
	advances map[string]advance.Advance
}

func NewAdvanceRepository() advance.AdvanceRepository {
	return &advanceRepository{advances: make(map[string]advance.Advance)}
}

// cloneAdvance detaches the installment slice so callers never share backing arrays with the store.
func cloneAdvance(a advance.Advance) advance.Advance {
	a.Installments = slices.Clone(a.Installments)
	return a
}

func (r *advanceRepository) Create(ctx context.Context, a advance.Advance) (advance.Advance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	now := time.Now()
	a.CreatedAt, a.UpdatedAt = now, now
	r.advances[a.ID] = cloneAdvance(a)
	return cloneAdvance(a), nil
}

func (r *advanceRepository) GetByID(ctx context.Context, id string) (advance.Advance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.advances[id]
	if !ok {
		return advance.Advance{}, advance.ErrAdvanceNotFound
	}
	return cloneAdvance(a), nil
}

func (r *advanceRepository) ListByWorker(ctx context.Context, workerID string) ([]advance.Advance, error) {
	return r.List(ctx, advance.AdvanceFilter{WorkerID: &workerID})
}

func (r *advanceRepository) List(ctx context.Context, filter advance.AdvanceFilter) ([]advance.Advance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []advance.Advance
	for _, a := range r.advances {
		if filter.WorkerID != nil && *filter.WorkerID != "" && a.WorkerID != *filter.WorkerID {
			continue
		}
		if filter.Status != nil && *filter.Status != "" && string(a.Status) != *filter.Status {
			continue
		}
		result = append(result, cloneAdvance(a))
	}

	sort.Slice(result, func(i, j int) bool { return result[i].Date.Before(result[j].Date) })
	return result, nil
}

func (r *advanceRepository) Update(ctx context.Context, a advance.Advance) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.advances[a.ID]
	if !ok {
		return advance.ErrAdvanceNotFound
	}
	a.CreatedAt = existing.CreatedAt
	a.UpdatedAt = time.Now()
	r.advances[a.ID] = cloneAdvance(a)
	return nil
}
