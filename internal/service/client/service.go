package client

import (
	"context"
	"fmt"
	"strings"

	"github.com/buildpro/backoffice-backend-go/internal/domain/client"
	"github.com/buildpro/backoffice-backend-go/internal/domain/quotation"
	"github.com/google/uuid"
)

type ClientServiceImpl struct {
	clientRepo    client.ClientRepository
	quotationRepo quotation.QuotationRepository
}

func NewClientService(clientRepo client.ClientRepository, quotationRepo quotation.QuotationRepository) client.ClientService {
	return &ClientServiceImpl{
		clientRepo:    clientRepo,
		quotationRepo: quotationRepo,
	}
}

func normalizeEmail(email *string) *string {
	if email == nil {
		return nil
	}
	e := strings.ToLower(strings.TrimSpace(*email))
	if e == "" {
		return nil
	}
	return &e
}

func (s *ClientServiceImpl) CreateClient(ctx context.Context, req client.CreateClientRequest) (client.ClientResponse, error) {
	if err := req.Validate(); err != nil {
		return client.ClientResponse{}, err
	}

	status := client.StatusLead
	if req.Status != "" {
		status = client.Status(req.Status)
	}

	created, err := s.clientRepo.Create(ctx, client.Client{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(req.Name),
		Company:   req.Company,
		Email:     normalizeEmail(req.Email),
		Phone:     req.Phone,
		Address:   req.Address,
		GSTNumber: req.GSTNumber,
		Status:    status,
		Notes:     req.Notes,
	})
	if err != nil {
		return client.ClientResponse{}, err
	}
	return client.ToResponse(created), nil
}

func (s *ClientServiceImpl) GetClient(ctx context.Context, id string) (client.ClientResponse, error) {
	c, err := s.clientRepo.GetByID(ctx, id)
	if err != nil {
		return client.ClientResponse{}, err
	}
	return client.ToResponse(c), nil
}

func (s *ClientServiceImpl) ListClients(ctx context.Context, filter client.ClientFilter) ([]client.ClientResponse, error) {
	clients, err := s.clientRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}

	responses := make([]client.ClientResponse, 0, len(clients))
	for _, c := range clients {
		responses = append(responses, client.ToResponse(c))
	}
	return responses, nil
}

func (s *ClientServiceImpl) UpdateClient(ctx context.Context, req client.UpdateClientRequest) (client.ClientResponse, error) {
	if err := req.Validate(); err != nil {
		return client.ClientResponse{}, err
	}

	c, err := s.clientRepo.GetByID(ctx, req.ID)
	if err != nil {
		return client.ClientResponse{}, err
	}

	if req.Name != nil {
		c.Name = strings.TrimSpace(*req.Name)
	}
	if req.Company != nil {
		c.Company = req.Company
	}
	if req.Email != nil {
		c.Email = normalizeEmail(req.Email)
	}
	if req.Phone != nil {
		c.Phone = *req.Phone
	}
	if req.Address != nil {
		c.Address = req.Address
	}
	if req.GSTNumber != nil {
		c.GSTNumber = req.GSTNumber
	}
	if req.Status != nil {
		c.Status = client.Status(*req.Status)
	}
	if req.Notes != nil {
		c.Notes = req.Notes
	}

	if err := s.clientRepo.Update(ctx, c); err != nil {
		return client.ClientResponse{}, err
	}

	updated, err := s.clientRepo.GetByID(ctx, c.ID)
	if err != nil {
		return client.ClientResponse{}, err
	}
	return client.ToResponse(updated), nil
}

// DeleteClient refuses to remove a client that still has quotations.
func (s *ClientServiceImpl) DeleteClient(ctx context.Context, id string) error {
	if _, err := s.clientRepo.GetByID(ctx, id); err != nil {
		return err
	}

	count, err := s.quotationRepo.CountByClient(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to count client quotations: %w", err)
	}
	if count > 0 {
		return client.ErrClientHasQuotations
	}

	return s.clientRepo.Delete(ctx, id)
}
