package quotation

import "context"

type QuotationRepository interface {
	// Create stores the quotation with its line items and versions
	Create(ctx context.Context, quotation Quotation) (Quotation, error)
	GetByID(ctx context.Context, id string) (Quotation, error)
	List(ctx context.Context, filter QuotationFilter) ([]Quotation, error)

	// Update replaces header, line items and version log
	Update(ctx context.Context, quotation Quotation) error

	// NextNumber reserves the next sequence value for the given year
	NextNumber(ctx context.Context, year int) (int, error)
	CountByClient(ctx context.Context, clientID string) (int, error)
}
