package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/buildpro/backoffice-backend-go/internal/domain/payroll"
	"github.com/buildpro/backoffice-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

// ========== DEDUCTIONS ==========

type deductionRepository struct {
	db *database.DB
}

func NewDeductionRepository(db *database.DB) payroll.DeductionRepository {
	return &deductionRepository{db: db}
}

const deductionColumns = `id, worker_id, type, amount, description, date, created_at`

func scanDeduction(row pgx.Row) (payroll.Deduction, error) {
	var d payroll.Deduction
	err := row.Scan(&d.ID, &d.WorkerID, &d.Type, &d.Amount, &d.Description, &d.Date, &d.CreatedAt)
	return d, err
}

func (r *deductionRepository) Create(ctx context.Context, d payroll.Deduction) (payroll.Deduction, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO deductions (id, worker_id, type, amount, description, date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + deductionColumns

	created, err := scanDeduction(q.QueryRow(ctx, query, d.ID, d.WorkerID, d.Type, d.Amount, d.Description, d.Date))
	if err != nil {
		return payroll.Deduction{}, fmt.Errorf("failed to create deduction: %w", err)
	}
	return created, nil
}

func (r *deductionRepository) GetByID(ctx context.Context, id string) (payroll.Deduction, error) {
	q := GetQuerier(ctx, r.db)

	d, err := scanDeduction(q.QueryRow(ctx, `SELECT `+deductionColumns+` FROM deductions WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Deduction{}, payroll.ErrDeductionNotFound
		}
		return payroll.Deduction{}, fmt.Errorf("failed to get deduction: %w", err)
	}
	return d, nil
}

func (r *deductionRepository) ListByWorker(ctx context.Context, workerID string, start, end time.Time) ([]payroll.Deduction, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT `+deductionColumns+`
		FROM deductions
		WHERE worker_id = $1 AND date BETWEEN $2 AND $3
		ORDER BY date`, workerID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list deductions: %w", err)
	}
	defer rows.Close()

	var deductions []payroll.Deduction
	for rows.Next() {
		d, err := scanDeduction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan deduction: %w", err)
		}
		deductions = append(deductions, d)
	}
	return deductions, rows.Err()
}

func (r *deductionRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM deductions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete deduction: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrDeductionNotFound
	}
	return nil
}

// ========== PAYMENT RECORDS ==========

type paymentRecordRepository struct {
	db *database.DB
}

func NewPaymentRecordRepository(db *database.DB) payroll.PaymentRecordRepository {
	return &paymentRecordRepository{db: db}
}

// The calculation result is kept whole in a JSONB column; the columns beside it exist for filtering.
const paymentRecordColumns = `id, result, status, paid_at, created_at, updated_at`

func scanPaymentRecord(row pgx.Row) (payroll.PaymentRecord, error) {
	var rec payroll.PaymentRecord
	err := row.Scan(&rec.ID, &rec.PaymentResult, &rec.Status, &rec.PaidAt, &rec.CreatedAt, &rec.UpdatedAt)
	return rec, err
}

// Upsert replaces a pending record of the same worker and period. A paid record is left alone.
func (r *paymentRecordRepository) Upsert(ctx context.Context, record payroll.PaymentRecord) (payroll.PaymentRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payment_records (id, worker_id, period_type, period_start, period_end, result, net_pay, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (worker_id, period_start, period_end) DO UPDATE SET
			period_type = EXCLUDED.period_type,
			result = EXCLUDED.result,
			net_pay = EXCLUDED.net_pay,
			updated_at = NOW()
		WHERE payment_records.status = 'pending'
		RETURNING ` + paymentRecordColumns

	saved, err := scanPaymentRecord(q.QueryRow(ctx, query,
		record.ID, record.WorkerID, record.Period.Type, record.Period.StartDate, record.Period.EndDate,
		record.PaymentResult, record.NetPay, record.Status,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PaymentRecord{}, payroll.ErrPaymentRecordAlreadyPaid
		}
		return payroll.PaymentRecord{}, fmt.Errorf("failed to upsert payment record: %w", err)
	}
	return saved, nil
}

func (r *paymentRecordRepository) GetByID(ctx context.Context, id string) (payroll.PaymentRecord, error) {
	q := GetQuerier(ctx, r.db)

	rec, err := scanPaymentRecord(q.QueryRow(ctx, `SELECT `+paymentRecordColumns+` FROM payment_records WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PaymentRecord{}, payroll.ErrPaymentRecordNotFound
		}
		return payroll.PaymentRecord{}, fmt.Errorf("failed to get payment record: %w", err)
	}
	return rec, nil
}

func (r *paymentRecordRepository) List(ctx context.Context, filter payroll.PaymentRecordFilter) ([]payroll.PaymentRecord, error) {
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
	if filter.StartDate != nil {
		conditions = append(conditions, fmt.Sprintf("period_start >= $%d", argIdx))
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil {
		conditions = append(conditions, fmt.Sprintf("period_end <= $%d", argIdx))
		args = append(args, *filter.EndDate)
		argIdx++
	}

	query := `SELECT ` + paymentRecordColumns + ` FROM payment_records`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY period_start, result->>'WorkerName'"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list payment records: %w", err)
	}
	defer rows.Close()

	var records []payroll.PaymentRecord
	for rows.Next() {
		rec, err := scanPaymentRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment record: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *paymentRecordRepository) countByIDs(ctx context.Context, ids []string) (int, error) {
	q := GetQuerier(ctx, r.db)

	var found int
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM payment_records WHERE id = ANY($1)`, ids).Scan(&found); err != nil {
		return 0, fmt.Errorf("failed to count payment records: %w", err)
	}
	return found, nil
}

// MarkPaid flips every id or none of them.
func (r *paymentRecordRepository) MarkPaid(ctx context.Context, ids []string, paidAt time.Time) error {
	return WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
			UPDATE payment_records
			SET status = 'paid', paid_at = $2, updated_at = NOW()
			WHERE id = ANY($1) AND status = 'pending'`, ids, paidAt)
		if err != nil {
			return fmt.Errorf("failed to mark payment records paid: %w", err)
		}
		if int(tag.RowsAffected()) == len(ids) {
			return nil
		}

		found, err := r.countByIDs(ctx, ids)
		if err != nil {
			return err
		}
		if found < len(ids) {
			return payroll.ErrPaymentRecordNotFound
		}
		return payroll.ErrPaymentRecordAlreadyPaid
	})
}
