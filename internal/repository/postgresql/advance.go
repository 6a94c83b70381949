package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/buildpro/backoffice-backend-go/internal/domain/advance"
	"github.com/buildpro/backoffice-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type advanceRepository struct {
	db *database.DB
}

func NewAdvanceRepository(db *database.DB) advance.AdvanceRepository {
	return &advanceRepository{db: db}
}

const advanceColumns = `id, worker_id, amount, date, reason, status, recovered_amount,
	approved_by, approved_at, created_at, updated_at`

func scanAdvance(row pgx.Row) (advance.Advance, error) {
	var a advance.Advance
	err := row.Scan(
		&a.ID, &a.WorkerID, &a.Amount, &a.Date, &a.Reason, &a.Status, &a.RecoveredAmount,
		&a.ApprovedBy, &a.ApprovedAt, &a.CreatedAt, &a.UpdatedAt,
	)
	return a, err
}

func (r *advanceRepository) Create(ctx context.Context, a advance.Advance) (advance.Advance, error) {
	var created advance.Advance
	err := WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		query := `
			INSERT INTO advances (id, worker_id, amount, date, reason, status, recovered_amount, approved_by, approved_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING ` + advanceColumns

		var err error
		created, err = scanAdvance(tx.QueryRow(ctx, query,
			a.ID, a.WorkerID, a.Amount, a.Date, a.Reason, a.Status, a.RecoveredAmount, a.ApprovedBy, a.ApprovedAt,
		))
		if err != nil {
			return fmt.Errorf("failed to create advance: %w", err)
		}

		if err := insertInstallments(ctx, tx, a.ID, a.Installments); err != nil {
			return err
		}
		created.Installments = a.Installments
		return nil
	})
	if err != nil {
		return advance.Advance{}, err
	}
	return created, nil
}

func insertInstallments(ctx context.Context, tx pgx.Tx, advanceID string, installments []advance.Installment) error {
	if len(installments) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, inst := range installments {
		batch.Queue(`
			INSERT INTO advance_installments (id, advance_id, number, amount, due_date, paid_date, status)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			inst.ID, advanceID, inst.Number, inst.Amount, inst.DueDate, inst.PaidDate, inst.Status,
		)
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()
	for range installments {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to insert installment: %w", err)
		}
	}
	return nil
}

// loadInstallments fills Installments for every advance in one query.
func (r *advanceRepository) loadInstallments(ctx context.Context, advances []advance.Advance) error {
	if len(advances) == 0 {
		return nil
	}
	q := GetQuerier(ctx, r.db)

	ids := make([]string, len(advances))
	index := make(map[string]int, len(advances))
	for i, a := range advances {
		ids[i] = a.ID
		index[a.ID] = i
	}

	rows, err := q.Query(ctx, `
		SELECT id, advance_id, number, amount, due_date, paid_date, status
		FROM advance_installments
		WHERE advance_id = ANY($1)
		ORDER BY advance_id, number`, ids)
	if err != nil {
		return fmt.Errorf("failed to list installments: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var inst advance.Installment
		if err := rows.Scan(&inst.ID, &inst.AdvanceID, &inst.Number, &inst.Amount, &inst.DueDate, &inst.PaidDate, &inst.Status); err != nil {
			return fmt.Errorf("failed to scan installment: %w", err)
		}
		i := index[inst.AdvanceID]
		advances[i].Installments = append(advances[i].Installments, inst)
	}
	return rows.Err()
}

func (r *advanceRepository) GetByID(ctx context.Context, id string) (advance.Advance, error) {
	q := GetQuerier(ctx, r.db)

	a, err := scanAdvance(q.QueryRow(ctx, `SELECT `+advanceColumns+` FROM advances WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return advance.Advance{}, advance.ErrAdvanceNotFound
		}
		return advance.Advance{}, fmt.Errorf("failed to get advance: %w", err)
	}

	advances := []advance.Advance{a}
	if err := r.loadInstallments(ctx, advances); err != nil {
		return advance.Advance{}, err
	}
	return advances[0], nil
}

func (r *advanceRepository) ListByWorker(ctx context.Context, workerID string) ([]advance.Advance, error) {
	return r.List(ctx, advance.AdvanceFilter{WorkerID: &workerID})
}

func (r *advanceRepository) List(ctx context.Context, filter advance.AdvanceFilter) ([]advance.Advance, error) {
	q := GetQuerier(ctx, r.db)

	var conditions []string
	var args []interface{}
	argIdx := 1

	if filter.WorkerID != nil && *filter.WorkerID != "" {
		conditions = append(conditions, fmt.Sprintf("worker_id = $%d", argIdx))
		args = append(args, *filter.WorkerID)
		argIdx++
	}
	if filter.Status != nil && *filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, *filter.Status)
		argIdx++
	}

	query := `SELECT ` + advanceColumns + ` FROM advances`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY date, created_at"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list advances: %w", err)
	}

	var advances []advance.Advance
	for rows.Next() {
		a, err := scanAdvance(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan advance: %w", err)
		}
		advances = append(advances, a)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.loadInstallments(ctx, advances); err != nil {
		return nil, err
	}
	return advances, nil
}

// Update rewrites the advance row and replaces its installments in one transaction.
func (r *advanceRepository) Update(ctx context.Context, a advance.Advance) error {
	return WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
			UPDATE advances SET
				amount = $2, date = $3, reason = $4, status = $5, recovered_amount = $6,
				approved_by = $7, approved_at = $8, updated_at = NOW()
			WHERE id = $1`,
			a.ID, a.Amount, a.Date, a.Reason, a.Status, a.RecoveredAmount, a.ApprovedBy, a.ApprovedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to update advance: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return advance.ErrAdvanceNotFound
		}

		if _, err := tx.Exec(ctx, `DELETE FROM advance_installments WHERE advance_id = $1`, a.ID); err != nil {
			return fmt.Errorf("failed to clear installments: %w", err)
		}
		return insertInstallments(ctx, tx, a.ID, a.Installments)
	})
}
