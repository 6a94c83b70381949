package client

import "context"

type ClientService interface {
	CreateClient(ctx context.Context, req CreateClientRequest) (ClientResponse, error)
	GetClient(ctx context.Context, id string) (ClientResponse, error)
	ListClients(ctx context.Context, filter ClientFilter) ([]ClientResponse, error)
	UpdateClient(ctx context.Context, req UpdateClientRequest) (ClientResponse, error)
	DeleteClient(ctx context.Context, id string) error
}
