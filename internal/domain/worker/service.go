package worker

import "context"

type WorkerService interface {
	CreateWorker(ctx context.Context, req CreateWorkerRequest) (WorkerResponse, error)
	GetWorker(ctx context.Context, id string) (WorkerResponse, error)
	ListWorkers(ctx context.Context, filter WorkerFilter) ([]WorkerResponse, error)
	UpdateWorker(ctx context.Context, req UpdateWorkerRequest) (WorkerResponse, error)
}
