package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/buildpro/backoffice-backend-go/internal/domain/quotation"
	"github.com/buildpro/backoffice-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type quotationRepository struct {
	db *database.DB
}

func NewQuotationRepository(db *database.DB) quotation.QuotationRepository {
	return &quotationRepository{db: db}
}

const quotationColumns = `q.id, q.number, q.client_id, q.title, q.subtotal, q.tax_percentage, q.tax_amount,
	q.total_discount, q.total_amount, q.status, q.validity_period, q.valid_until, q.notes,
	q.created_by, q.created_at, q.updated_at, c.name`

const quotationFrom = ` FROM quotations q LEFT JOIN clients c ON c.id = q.client_id`

func scanQuotation(row pgx.Row) (quotation.Quotation, error) {
	var q quotation.Quotation
	err := row.Scan(
		&q.ID, &q.Number, &q.ClientID, &q.Title, &q.Subtotal, &q.TaxPercentage, &q.TaxAmount,
		&q.TotalDiscount, &q.TotalAmount, &q.Status, &q.ValidityPeriod, &q.ValidUntil, &q.Notes,
		&q.CreatedBy, &q.CreatedAt, &q.UpdatedAt, &q.ClientName,
	)
	return q, err
}

func (r *quotationRepository) Create(ctx context.Context, quo quotation.Quotation) (quotation.Quotation, error) {
	err := WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO quotations (id, number, client_id, title, subtotal, tax_percentage, tax_amount,
				total_discount, total_amount, status, validity_period, valid_until, notes, created_by, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
			quo.ID, quo.Number, quo.ClientID, quo.Title, quo.Subtotal, quo.TaxPercentage, quo.TaxAmount,
			quo.TotalDiscount, quo.TotalAmount, quo.Status, quo.ValidityPeriod, quo.ValidUntil, quo.Notes,
			quo.CreatedBy, quo.CreatedAt, quo.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to create quotation: %w", err)
		}
		return writeChildren(ctx, tx, quo)
	})
	if err != nil {
		return quotation.Quotation{}, err
	}
	return quo, nil
}

func writeChildren(ctx context.Context, tx pgx.Tx, quo quotation.Quotation) error {
	batch := &pgx.Batch{}
	for i, item := range quo.LineItems {
		batch.Queue(`
			INSERT INTO quotation_line_items (id, quotation_id, position, category, description, unit, quantity, rate, amount, discount_percent)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			item.ID, quo.ID, i, item.Category, item.Description, item.Unit, item.Quantity, item.Rate, item.Amount, item.DiscountPercent,
		)
	}
	for _, v := range quo.Versions {
		batch.Queue(`
			INSERT INTO quotation_versions (quotation_id, version, modified_by, modified_at, changes, line_items, total_amount)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (quotation_id, version) DO NOTHING`,
			quo.ID, v.Version, v.ModifiedBy, v.ModifiedAt, v.Changes, v.LineItems, v.TotalAmount,
		)
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()
	for i := 0; i < batch.Len(); i++ {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to write quotation children: %w", err)
		}
	}
	return nil
}

func (r *quotationRepository) loadChildren(ctx context.Context, quo *quotation.Quotation) error {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT id, category, description, unit, quantity, rate, amount, discount_percent
		FROM quotation_line_items
		WHERE quotation_id = $1
		ORDER BY position`, quo.ID)
	if err != nil {
		return fmt.Errorf("failed to list line items: %w", err)
	}
	for rows.Next() {
		var item quotation.LineItem
		if err := rows.Scan(&item.ID, &item.Category, &item.Description, &item.Unit, &item.Quantity, &item.Rate, &item.Amount, &item.DiscountPercent); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan line item: %w", err)
		}
		quo.LineItems = append(quo.LineItems, item)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	rows, err = q.Query(ctx, `
		SELECT version, modified_by, modified_at, changes, line_items, total_amount
		FROM quotation_versions
		WHERE quotation_id = $1
		ORDER BY version`, quo.ID)
	if err != nil {
		return fmt.Errorf("failed to list versions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		// line_items is the JSON snapshot of []quotation.LineItem
		var v quotation.Version
		if err := rows.Scan(&v.Version, &v.ModifiedBy, &v.ModifiedAt, &v.Changes, &v.LineItems, &v.TotalAmount); err != nil {
			return fmt.Errorf("failed to scan version: %w", err)
		}
		quo.Versions = append(quo.Versions, v)
	}
	return rows.Err()
}

func (r *quotationRepository) GetByID(ctx context.Context, id string) (quotation.Quotation, error) {
	q := GetQuerier(ctx, r.db)

	quo, err := scanQuotation(q.QueryRow(ctx, `SELECT `+quotationColumns+quotationFrom+` WHERE q.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return quotation.Quotation{}, quotation.ErrQuotationNotFound
		}
		return quotation.Quotation{}, fmt.Errorf("failed to get quotation: %w", err)
	}

	if err := r.loadChildren(ctx, &quo); err != nil {
		return quotation.Quotation{}, err
	}
	return quo, nil
}

func (r *quotationRepository) List(ctx context.Context, filter quotation.QuotationFilter) ([]quotation.Quotation, error) {
	q := GetQuerier(ctx, r.db)

	var conditions []string
	var args []interface{}
	argIdx := 1

	if filter.ClientID != nil && *filter.ClientID != "" {
		conditions = append(conditions, fmt.Sprintf("q.client_id = $%d", argIdx))
		args = append(args, *filter.ClientID)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("q.status = $%d", argIdx))
		args = append(args, *filter.Status)
		argIdx++
	}

	query := `SELECT ` + quotationColumns + quotationFrom
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY q.number"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list quotations: %w", err)
	}

	var quotations []quotation.Quotation
	for rows.Next() {
		quo, err := scanQuotation(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan quotation: %w", err)
		}
		quotations = append(quotations, quo)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// TODO: load line items for the whole page with ANY($1) like advances do
	for i := range quotations {
		if err := r.loadChildren(ctx, &quotations[i]); err != nil {
			return nil, err
		}
	}
	return quotations, nil
}

// Update rewrites the header and line items. Versions are append-only, so
// existing rows are kept and only new version numbers are inserted.
func (r *quotationRepository) Update(ctx context.Context, quo quotation.Quotation) error {
	return WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
			UPDATE quotations SET
				title = $2, subtotal = $3, tax_percentage = $4, tax_amount = $5, total_discount = $6,
				total_amount = $7, status = $8, validity_period = $9, valid_until = $10, notes = $11,
				updated_at = NOW()
			WHERE id = $1`,
			quo.ID, quo.Title, quo.Subtotal, quo.TaxPercentage, quo.TaxAmount, quo.TotalDiscount,
			quo.TotalAmount, quo.Status, quo.ValidityPeriod, quo.ValidUntil, quo.Notes,
		)
		if err != nil {
			return fmt.Errorf("failed to update quotation: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return quotation.ErrQuotationNotFound
		}

		if _, err := tx.Exec(ctx, `DELETE FROM quotation_line_items WHERE quotation_id = $1`, quo.ID); err != nil {
			return fmt.Errorf("failed to clear line items: %w", err)
		}
		return writeChildren(ctx, tx, quo)
	})
}

// NextNumber bumps the per-year counter atomically.
func (r *quotationRepository) NextNumber(ctx context.Context, year int) (int, error) {
	q := GetQuerier(ctx, r.db)

	var seq int
	err := q.QueryRow(ctx, `
		INSERT INTO quotation_sequences (year, last_seq) VALUES ($1, 1)
		ON CONFLICT (year) DO UPDATE SET last_seq = quotation_sequences.last_seq + 1
		RETURNING last_seq`, year).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("failed to reserve quotation number: %w", err)
	}
	return seq, nil
}

func (r *quotationRepository) CountByClient(ctx context.Context, clientID string) (int, error) {
	q := GetQuerier(ctx, r.db)

	var count int
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM quotations WHERE client_id = $1`, clientID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count quotations: %w", err)
	}
	return count, nil
}
