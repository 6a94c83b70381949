package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/buildpro/backoffice-backend-go/internal/domain/client"
	"github.com/google/uuid"
)

type clientRepository struct {
	mu      sync.RWMutex
	clients map[string]client.Client
}

func NewClientRepository() client.ClientRepository {
	return &clientRepository{clients: make(map[string]client.Client)}
}

// emailTaken must be called with the lock held.
func (r *clientRepository) emailTaken(email *string, exceptID string) bool {
	if email == nil || *email == "" {
		return false
	}
	for id, c := range r.clients {
		if id != exceptID && c.Email != nil && strings.EqualFold(*c.Email, *email) {
			return true
		}
	}
	return false
}

func (r *clientRepository) Create(ctx context.Context, c client.Client) (client.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.emailTaken(c.Email, "") {
		return client.Client{}, client.ErrClientEmailExists
	}
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	now := time.Now()
	c.CreatedAt, c.UpdatedAt = now, now
	r.clients[c.ID] = c
	return c, nil
}

func (r *clientRepository) GetByID(ctx context.Context, id string) (client.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.clients[id]
	if !ok {
		return client.Client{}, client.ErrClientNotFound
	}
	return c, nil
}

func (r *clientRepository) List(ctx context.Context, filter client.ClientFilter) ([]client.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]client.Client, 0, len(r.clients))
	for _, c := range r.clients {
		if filter.Matches(c) {
			result = append(result, c)
		}
	}

	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (r *clientRepository) Update(ctx context.Context, c client.Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.clients[c.ID]
	if !ok {
		return client.ErrClientNotFound
	}
	if r.emailTaken(c.Email, c.ID) {
		return client.ErrClientEmailExists
	}
	c.CreatedAt = existing.CreatedAt
	c.UpdatedAt = time.Now()
	r.clients[c.ID] = c
	return nil
}

func (r *clientRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.clients[id]; !ok {
		return client.ErrClientNotFound
	}
	delete(r.clients, id)
	return nil
}
