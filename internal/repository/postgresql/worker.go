package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/buildpro/backoffice-backend-go/internal/domain/worker"
	"github.com/buildpro/backoffice-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type workerRepository struct {
	db *database.DB
}

func NewWorkerRepository(db *database.DB) worker.WorkerRepository {
	return &workerRepository{db: db}
}

const workerColumns = `id, name, phone, payment_type, wage_amount, salary_amount, bank_name,
	account_number, ifsc_code, upi_id, active, created_at, updated_at`

func scanWorker(row pgx.Row) (worker.Worker, error) {
	var w worker.Worker
	err := row.Scan(
		&w.ID, &w.Name, &w.Phone, &w.PaymentType, &w.WageAmount, &w.SalaryAmount, &w.BankName,
		&w.AccountNumber, &w.IFSCCode, &w.UPIID, &w.Active, &w.CreatedAt, &w.UpdatedAt,
	)
	return w, err
}

func (r *workerRepository) Create(ctx context.Context, w worker.Worker) (worker.Worker, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO workers (id, name, phone, payment_type, wage_amount, salary_amount, bank_name,
			account_number, ifsc_code, upi_id, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + workerColumns

	created, err := scanWorker(q.QueryRow(ctx, query,
		w.ID, w.Name, w.Phone, w.PaymentType, w.WageAmount, w.SalaryAmount, w.BankName,
		w.AccountNumber, w.IFSCCode, w.UPIID, w.Active,
	))
	if err != nil {
		return worker.Worker{}, fmt.Errorf("failed to create worker: %w", err)
	}
	return created, nil
}

func (r *workerRepository) GetByID(ctx context.Context, id string) (worker.Worker, error) {
	q := GetQuerier(ctx, r.db)

	w, err := scanWorker(q.QueryRow(ctx, `SELECT `+workerColumns+` FROM workers WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return worker.Worker{}, worker.ErrWorkerNotFound
		}
		return worker.Worker{}, fmt.Errorf("failed to get worker: %w", err)
	}
	return w, nil
}

func (r *workerRepository) List(ctx context.Context, filter worker.WorkerFilter) ([]worker.Worker, error) {
	q := GetQuerier(ctx, r.db)

	var conditions []string
	var args []interface{}
	argIdx := 1

	if filter.PaymentType != nil && *filter.PaymentType != "" {
		conditions = append(conditions, fmt.Sprintf("payment_type = $%d", argIdx))
		args = append(args, *filter.PaymentType)
		argIdx++
	}
	if filter.Active != nil {
		conditions = append(conditions, fmt.Sprintf("active = $%d", argIdx))
		args = append(args, *filter.Active)
		argIdx++
	}
	if filter.Search != nil && strings.TrimSpace(*filter.Search) != "" {
		conditions = append(conditions, fmt.Sprintf("name ILIKE $%d", argIdx))
		args = append(args, "%"+strings.TrimSpace(*filter.Search)+"%")
		argIdx++
	}

	query := `SELECT ` + workerColumns + ` FROM workers`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY name"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list workers: %w", err)
	}
	defer rows.Close()

	var workers []worker.Worker
	for rows.Next() {
		w, err := scanWorker(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan worker: %w", err)
		}
		workers = append(workers, w)
	}
	return workers, rows.Err()
}

func (r *workerRepository) Update(ctx context.Context, w worker.Worker) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE workers SET
			name = $2, phone = $3, payment_type = $4, wage_amount = $5, salary_amount = $6,
			bank_name = $7, account_number = $8, ifsc_code = $9, upi_id = $10, active = $11,
			updated_at = NOW()
		WHERE id = $1
	`
	tag, err := q.Exec(ctx, query,
		w.ID, w.Name, w.Phone, w.PaymentType, w.WageAmount, w.SalaryAmount,
		w.BankName, w.AccountNumber, w.IFSCCode, w.UPIID, w.Active,
	)
	if err != nil {
		return fmt.Errorf("failed to update worker: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return worker.ErrWorkerNotFound
	}
	return nil
}
