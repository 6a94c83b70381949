package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/buildpro/backoffice-backend-go/internal/domain/worker"
	"github.com/google/uuid"
)

type workerRepository struct {
	mu      sync.RWMutex
	workers map[string]worker.Worker
}

func NewWorkerRepository() worker.WorkerRepository {
	return &workerRepository{workers: make(map[string]worker.Worker)}
}

func (r *workerRepository) Create(ctx context.Context, w worker.Worker) (worker.Worker, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if w.ID == "" {
		w.ID = uuid.New().String()
	}
	now := time.Now()
	w.CreatedAt, w.UpdatedAt = now, now
	r.workers[w.ID] = w
	return w, nil
}

func (r *workerRepository) GetByID(ctx context.Context, id string) (worker.Worker, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	w, ok := r.workers[id]
	if !ok {
		return worker.Worker{}, worker.ErrWorkerNotFound
	}
	return w, nil
}

func (r *workerRepository) List(ctx context.Context, filter worker.WorkerFilter) ([]worker.Worker, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var search string
	if filter.Search != nil {
		search = strings.ToLower(strings.TrimSpace(*filter.Search))
	}

	result := make([]worker.Worker, 0, len(r.workers))
	for _, w := range r.workers {
		if filter.PaymentType != nil && *filter.PaymentType != "" && string(w.PaymentType) != *filter.PaymentType {
			continue
		}
		if filter.Active != nil && w.Active != *filter.Active {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(w.Name), search) {
			continue
		}
		result = append(result, w)
	}

	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (r *workerRepository) Update(ctx context.Context, w worker.Worker) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.workers[w.ID]
	if !ok {
		return worker.ErrWorkerNotFound
	}
	w.CreatedAt = existing.CreatedAt
	w.UpdatedAt = time.Now()
	r.workers[w.ID] = w
	return nil
}
