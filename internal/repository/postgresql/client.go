package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/buildpro/backoffice-backend-go/internal/domain/client"
	"github.com/buildpro/backoffice-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type clientRepository struct {
	db *database.DB
}

func NewClientRepository(db *database.DB) client.ClientRepository {
	return &clientRepository{db: db}
}

const clientColumns = `id, name, company, email, phone, address, gst_number, status, notes, created_at, updated_at`

func scanClient(row pgx.Row) (client.Client, error) {
	var c client.Client
	err := row.Scan(&c.ID, &c.Name, &c.Company, &c.Email, &c.Phone, &c.Address, &c.GSTNumber, &c.Status, &c.Notes, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

func (r *clientRepository) Create(ctx context.Context, c client.Client) (client.Client, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO clients (id, name, company, email, phone, address, gst_number, status, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + clientColumns

	created, err := scanClient(q.QueryRow(ctx, query, c.ID, c.Name, c.Company, c.Email, c.Phone, c.Address, c.GSTNumber, c.Status, c.Notes))
	if err != nil {
		if strings.Contains(err.Error(), "uk_clients_email") {
			return client.Client{}, client.ErrClientEmailExists
		}
		return client.Client{}, fmt.Errorf("failed to create client: %w", err)
	}
	return created, nil
}

func (r *clientRepository) GetByID(ctx context.Context, id string) (client.Client, error) {
	q := GetQuerier(ctx, r.db)

	c, err := scanClient(q.QueryRow(ctx, `SELECT `+clientColumns+` FROM clients WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return client.Client{}, client.ErrClientNotFound
		}
		return client.Client{}, fmt.Errorf("failed to get client: %w", err)
	}
	return c, nil
}

func (r *clientRepository) List(ctx context.Context, filter client.ClientFilter) ([]client.Client, error) {
	q := GetQuerier(ctx, r.db)

	var conditions []string
	var args []interface{}
	argIdx := 1

	if filter.Status != nil && *filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.Search != nil && strings.TrimSpace(*filter.Search) != "" {
		conditions = append(conditions, fmt.Sprintf("(name ILIKE $%d OR company ILIKE $%d OR email ILIKE $%d)", argIdx, argIdx, argIdx))
		args = append(args, "%"+strings.TrimSpace(*filter.Search)+"%")
		argIdx++
	}

	query := `SELECT ` + clientColumns + ` FROM clients`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY name"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	defer rows.Close()

	var clients []client.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan client: %w", err)
		}
		clients = append(clients, c)
	}
	return clients, rows.Err()
}

func (r *clientRepository) Update(ctx context.Context, c client.Client) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE clients SET
			name = $2, company = $3, email = $4, phone = $5, address = $6,
			gst_number = $7, status = $8, notes = $9, updated_at = NOW()
		WHERE id = $1
	`
	tag, err := q.Exec(ctx, query, c.ID, c.Name, c.Company, c.Email, c.Phone, c.Address, c.GSTNumber, c.Status, c.Notes)
	if err != nil {
		if strings.Contains(err.Error(), "uk_clients_email") {
			return client.ErrClientEmailExists
		}
		return fmt.Errorf("failed to update client: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return client.ErrClientNotFound
	}
	return nil
}

func (r *clientRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete client: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return client.ErrClientNotFound
	}
	return nil
}
