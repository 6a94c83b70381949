package fixtures

import (
	"context"
	"testing"

	"github.com/buildpro/backoffice-backend-go/internal/domain/client"
	"github.com/buildpro/backoffice-backend-go/internal/domain/worker"
	"github.com/buildpro/backoffice-backend-go/internal/repository/memory"
	clientService "github.com/buildpro/backoffice-backend-go/internal/service/client"
	workerService "github.com/buildpro/backoffice-backend-go/internal/service/worker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedDemo(t *testing.T) {
	ctx := context.Background()
	workerSvc := workerService.NewWorkerService(memory.NewWorkerRepository())
	clientSvc := clientService.NewClientService(memory.NewClientRepository(), memory.NewQuotationRepository())

	ids, err := SeedDemo(ctx, workerSvc, clientSvc)
	require.NoError(t, err)
	assert.Len(t, ids.WorkerIDs, 3)
	assert.Len(t, ids.ClientIDs, 2)

	workers, err := workerSvc.ListWorkers(ctx, worker.WorkerFilter{})
	require.NoError(t, err)
	assert.Len(t, workers, 3)

	lead := string(client.StatusLead)
	leads, err := clientSvc.ListClients(ctx, client.ClientFilter{Status: &lead})
	require.NoError(t, err)
	require.Len(t, leads, 1)
	assert.Equal(t, "Vikram Rao", leads[0].Name)

	// seeding twice trips the unique client email
	_, err = SeedDemo(ctx, workerSvc, clientSvc)
	assert.ErrorIs(t, err, client.ErrClientEmailExists)
}
