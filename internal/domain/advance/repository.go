package advance

import "context"

type AdvanceRepository interface {
	// Create stores the advance together with its installments
	Create(ctx context.Context, advance Advance) (Advance, error)
	GetByID(ctx context.Context, id string) (Advance, error)
	ListByWorker(ctx context.Context, workerID string) ([]Advance, error)
	List(ctx context.Context, filter AdvanceFilter) ([]Advance, error)

	// Update replaces the advance row and its whole installment set in one step
	Update(ctx context.Context, advance Advance) error
}
