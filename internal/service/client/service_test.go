package client

import (
	"context"
	"testing"

	"github.com/buildpro/backoffice-backend-go/internal/domain/client"
	"github.com/buildpro/backoffice-backend-go/internal/domain/quotation"
	"github.com/buildpro/backoffice-backend-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestClientService_CRUD(t *testing.T) {
	ctx := context.Background()
	svc := NewClientService(memory.NewClientRepository(), memory.NewQuotationRepository())

	created, err := svc.CreateClient(ctx, client.CreateClientRequest{
		Name:      "Sharma Constructions",
		Company:   strPtr("Sharma Constructions Pvt Ltd"),
		Email:     strPtr(" Accounts@Sharma.in "),
		Phone:     "9876543210",
		GSTNumber: strPtr("27AAPFU0939F1ZV"),
	})
	require.NoError(t, err)
	assert.Equal(t, "lead", created.Status)
	require.NotNil(t, created.Email)
	assert.Equal(t, "accounts@sharma.in", *created.Email)

	_, err = svc.CreateClient(ctx, client.CreateClientRequest{Name: "Copycat", Phone: "9876543211", Email: strPtr("ACCOUNTS@sharma.in")})
	assert.ErrorIs(t, err, client.ErrClientEmailExists)

	updated, err := svc.UpdateClient(ctx, client.UpdateClientRequest{ID: created.ID, Status: strPtr("active"), Notes: strPtr("Pays on time")})
	require.NoError(t, err)
	assert.Equal(t, "active", updated.Status)

	list, err := svc.ListClients(ctx, client.ClientFilter{Search: strPtr("sharma")})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, svc.DeleteClient(ctx, created.ID))
	_, err = svc.GetClient(ctx, created.ID)
	assert.ErrorIs(t, err, client.ErrClientNotFound)
}

func TestClientService_DeleteRefusedWithQuotations(t *testing.T) {
	ctx := context.Background()
	quotations := memory.NewQuotationRepository()
	svc := NewClientService(memory.NewClientRepository(), quotations)

	created, err := svc.CreateClient(ctx, client.CreateClientRequest{Name: "Mehta Builders", Phone: "9123456780"})
	require.NoError(t, err)
	_, err = quotations.Create(ctx, quotation.Quotation{ClientID: created.ID, Number: "QT-2024-0001", Status: quotation.StatusDraft})
	require.NoError(t, err)

	err = svc.DeleteClient(ctx, created.ID)
	assert.ErrorIs(t, err, client.ErrClientHasQuotations)

	err = svc.DeleteClient(ctx, "missing")
	assert.ErrorIs(t, err, client.ErrClientNotFound)
}
