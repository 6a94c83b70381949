package worker

import "context"

// WorkerRepository is the worker directory consumed by payroll.
type WorkerRepository interface {
	Create(ctx context.Context, worker Worker) (Worker, error)
	GetByID(ctx context.Context, id string) (Worker, error)
	List(ctx context.Context, filter WorkerFilter) ([]Worker, error)
	Update(ctx context.Context, worker Worker) error
}
