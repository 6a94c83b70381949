package fixtures

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/buildpro/backoffice-backend-go/internal/domain/client"
	"github.com/buildpro/backoffice-backend-go/internal/domain/worker"
	"github.com/shopspring/decimal"
)

func strPtr(s string) *string { return &s }

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

// SeededDataIDs holds IDs of the seeded demo data, keyed by name
type SeededDataIDs struct {
	WorkerIDs map[string]string
	ClientIDs map[string]string
}

func NewSeededDataIDs() *SeededDataIDs {
	return &SeededDataIDs{
		WorkerIDs: make(map[string]string),
		ClientIDs: make(map[string]string),
	}
}

// DefaultWorkers covers one worker per payment type.
func DefaultWorkers() []worker.CreateWorkerRequest {
	return []worker.CreateWorkerRequest{
		{
			Name:          "Ramesh Kumar",
			Phone:         "9876543210",
			PaymentType:   string(worker.PaymentTypeDaily),
			WageAmount:    decimal.NewFromInt(750),
			BankName:      "State Bank of India",
			AccountNumber: "30211456789",
			IFSCCode:      "SBIN0001234",
		},
		{
			Name:         "Suresh Patil",
			Phone:        "9823012345",
			PaymentType:  string(worker.PaymentTypeMonthly),
			WageAmount:   decimal.Zero,
			SalaryAmount: decPtr("26000"),
			UPIID:        "suresh.patil@okaxis",
		},
		{
			Name:        "Imran Shaikh",
			Phone:       "9765401234",
			PaymentType: string(worker.PaymentTypeHourly),
			WageAmount:  decimal.NewFromInt(110),
		},
	}
}

func DefaultClients() []client.CreateClientRequest {
	return []client.CreateClientRequest{
		{
			Name:      "Anita Deshmukh",
			Company:   strPtr("Deshmukh Constructions"),
			Email:     strPtr("anita@deshmukh.example"),
			Phone:     "9890011223",
			Address:   strPtr("Baner Road, Pune"),
			GSTNumber: strPtr("27AAPFU0939F1ZV"),
			Status:    string(client.StatusActive),
		},
		{
			Name:  "Vikram Rao",
			Phone: "9900112233",
			Notes: strPtr("Asked for a bungalow renovation estimate"),
		},
	}
}

// SeedDemo creates the default workers and clients through the services so they pass
// the same validation as API input.
func SeedDemo(ctx context.Context, workerSvc worker.WorkerService, clientSvc client.ClientService) (*SeededDataIDs, error) {
	ids := NewSeededDataIDs()

	for _, req := range DefaultWorkers() {
		w, err := workerSvc.CreateWorker(ctx, req)
		if err != nil {
			return nil, fmt.Errorf("failed to seed worker %s: %w", req.Name, err)
		}
		ids.WorkerIDs[w.Name] = w.ID
	}

	for _, req := range DefaultClients() {
		c, err := clientSvc.CreateClient(ctx, req)
		if err != nil {
			return nil, fmt.Errorf("failed to seed client %s: %w", req.Name, err)
		}
		ids.ClientIDs[c.Name] = c.ID
	}

	slog.Info("Seeded demo data", "workers", len(ids.WorkerIDs), "clients", len(ids.ClientIDs))
	return ids, nil
}
