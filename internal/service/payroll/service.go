package payroll

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/buildpro/backoffice-backend-go/internal/domain/advance"
	"github.com/buildpro/backoffice-backend-go/internal/domain/attendance"
	"github.com/buildpro/backoffice-backend-go/internal/domain/payroll"
	"github.com/buildpro/backoffice-backend-go/internal/domain/worker"
	"github.com/buildpro/backoffice-backend-go/internal/pkg/utils"
	"github.com/google/uuid"
)

// InstallmentSettler marks advance installments recovered through payroll as paid.
type InstallmentSettler interface {
	SettleInstallments(ctx context.Context, refs []advance.InstallmentRef, paidDate time.Time) (int, error)
}

type PayrollServiceImpl struct {
	workerRepo     worker.WorkerRepository
	attendanceRepo attendance.AttendanceRepository
	advanceRepo    advance.AdvanceRepository
	deductionRepo  payroll.DeductionRepository
	recordRepo     payroll.PaymentRecordRepository
	settler        InstallmentSettler
	now            func() time.Time
}

func NewPayrollService(
	workerRepo worker.WorkerRepository,
	attendanceRepo attendance.AttendanceRepository,
	advanceRepo advance.AdvanceRepository,
	deductionRepo payroll.DeductionRepository,
	recordRepo payroll.PaymentRecordRepository,
	settler InstallmentSettler,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		workerRepo:     workerRepo,
		attendanceRepo: attendanceRepo,
		advanceRepo:    advanceRepo,
		deductionRepo:  deductionRepo,
		recordRepo:     recordRepo,
		settler:        settler,
		now:            time.Now,
	}
}

// ========== CALCULATION ==========

func (s *PayrollServiceImpl) CalculatePayment(ctx context.Context, req payroll.CalculatePaymentRequest) (payroll.PaymentResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PaymentResponse{}, err
	}

	period, err := req.Period.ToPeriod()
	if err != nil {
		return payroll.PaymentResponse{}, err
	}

	result, err := s.calculate(ctx, req.WorkerID, period)
	if err != nil {
		return payroll.PaymentResponse{}, err
	}

	return payroll.ToPaymentResponse(result), nil
}

func (s *PayrollServiceImpl) CalculateBatch(ctx context.Context, req payroll.BatchPaymentRequest) (payroll.BatchPaymentResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.BatchPaymentResponse{}, err
	}

	period, err := req.Period.ToPeriod()
	if err != nil {
		return payroll.BatchPaymentResponse{}, err
	}

	batch, err := s.calculateBatch(ctx, req.WorkerIDs, period)
	if err != nil {
		return payroll.BatchPaymentResponse{}, err
	}

	return payroll.ToBatchResponse(batch), nil
}

func (s *PayrollServiceImpl) ValidatePayment(ctx context.Context, req payroll.CalculatePaymentRequest) (payroll.ValidationResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.ValidationResponse{}, err
	}

	period, err := req.Period.ToPeriod()
	if err != nil {
		return payroll.ValidationResponse{}, err
	}

	w, err := s.workerRepo.GetByID(ctx, req.WorkerID)
	if err != nil {
		if errors.Is(err, worker.ErrWorkerNotFound) {
			return payroll.ToValidationResponse(ValidateInput(nil, 0)), nil
		}
		return payroll.ValidationResponse{}, fmt.Errorf("failed to get worker: %w", err)
	}

	records, err := s.attendanceRepo.ListByWorker(ctx, w.ID, period.StartDate, period.EndDate)
	if err != nil {
		return payroll.ValidationResponse{}, fmt.Errorf("failed to list attendance: %w", err)
	}

	return payroll.ToValidationResponse(ValidateInput(&w, len(records))), nil
}

// calculate runs the single-worker path. Missing profile and missing pay basis are hard errors.
func (s *PayrollServiceImpl) calculate(ctx context.Context, workerID string, period payroll.Period) (payroll.PaymentResult, error) {
	w, err := s.workerRepo.GetByID(ctx, workerID)
	if err != nil {
		if errors.Is(err, worker.ErrWorkerNotFound) {
			return payroll.PaymentResult{}, worker.ErrWorkerNotFound
		}
		return payroll.PaymentResult{}, fmt.Errorf("failed to get worker: %w", err)
	}
	if !w.HasWageAmount() {
		return payroll.PaymentResult{}, worker.ErrNoWageAmount
	}

	records, err := s.attendanceRepo.ListByWorker(ctx, w.ID, period.StartDate, period.EndDate)
	if err != nil {
		return payroll.PaymentResult{}, fmt.Errorf("failed to list attendance: %w", err)
	}
	if len(records) == 0 {
		slog.Warn("No attendance records found for period",
			"worker_id", w.ID,
			"start_date", utils.FormatDate(period.StartDate),
			"end_date", utils.FormatDate(period.EndDate),
		)
	}

	advances, err := s.advanceRepo.ListByWorker(ctx, w.ID)
	if err != nil {
		return payroll.PaymentResult{}, fmt.Errorf("failed to list advances: %w", err)
	}

	deductions, err := s.deductionRepo.ListByWorker(ctx, w.ID, period.StartDate, period.EndDate)
	if err != nil {
		return payroll.PaymentResult{}, fmt.Errorf("failed to list deductions: %w", err)
	}

	claimed, err := s.claimedInstallments(ctx, w.ID, period)
	if err != nil {
		return payroll.PaymentResult{}, err
	}

	return AssemblePayment(PaymentInput{
		Worker:     w,
		Attendance: records,
		Advances:   advances,
		Deductions: deductions,
		Period:     period,
		Claimed:    claimed,
	}, s.now()), nil
}

// claimedInstallments collects installments deducted by the worker's pending
// records of other periods. A pending record of the same period is about to be
// replaced, so its installments stay available.
func (s *PayrollServiceImpl) claimedInstallments(ctx context.Context, workerID string, period payroll.Period) (map[string]bool, error) {
	pending := string(payroll.RecordPending)
	records, err := s.recordRepo.List(ctx, payroll.PaymentRecordFilter{WorkerID: &workerID, Status: &pending})
	if err != nil {
		return nil, fmt.Errorf("failed to list pending payment records: %w", err)
	}

	claimed := make(map[string]bool)
	for _, r := range records {
		if r.Period.StartDate.Equal(period.StartDate) && r.Period.EndDate.Equal(period.EndDate) {
			continue
		}
		for _, ref := range r.AdvanceInstallments {
			claimed[ref.InstallmentID] = true
		}
	}
	return claimed, nil
}

// calculateBatch maps worker ids through calculate. Workers that cannot be paid
// are left out of Payments and listed in Failures; any other error aborts the batch.
func (s *PayrollServiceImpl) calculateBatch(ctx context.Context, workerIDs []string, period payroll.Period) (payroll.BatchResult, error) {
	ids, err := s.resolveWorkerIDs(ctx, workerIDs)
	if err != nil {
		return payroll.BatchResult{}, err
	}

	var batch payroll.BatchResult
	for _, id := range ids {
		result, err := s.calculate(ctx, id, period)
		if err != nil {
			if errors.Is(err, worker.ErrWorkerNotFound) || errors.Is(err, worker.ErrNoWageAmount) {
				slog.Warn("Worker omitted from payment batch", "worker_id", id, "reason", err.Error())
				batch.Failures = append(batch.Failures, payroll.WorkerFailure{WorkerID: id, Err: err})
				continue
			}
			return payroll.BatchResult{}, err
		}
		batch.Payments = append(batch.Payments, result)
	}

	return batch, nil
}

func (s *PayrollServiceImpl) resolveWorkerIDs(ctx context.Context, workerIDs []string) ([]string, error) {
	if len(workerIDs) > 0 {
		return workerIDs, nil
	}

	active := true
	workers, err := s.workerRepo.List(ctx, worker.WorkerFilter{Active: &active})
	if err != nil {
		return nil, fmt.Errorf("failed to list workers: %w", err)
	}
	if len(workers) == 0 {
		return nil, payroll.ErrNoWorkers
	}

	ids := make([]string, 0, len(workers))
	for _, w := range workers {
		ids = append(ids, w.ID)
	}
	return ids, nil
}

// ========== RECORDS ==========

func (s *PayrollServiceImpl) GeneratePayments(ctx context.Context, req payroll.BatchPaymentRequest) (payroll.BatchPaymentResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.BatchPaymentResponse{}, err
	}

	period, err := req.Period.ToPeriod()
	if err != nil {
		return payroll.BatchPaymentResponse{}, err
	}

	batch, err := s.calculateBatch(ctx, req.WorkerIDs, period)
	if err != nil {
		return payroll.BatchPaymentResponse{}, err
	}

	stored := payroll.BatchResult{Failures: batch.Failures}
	for _, result := range batch.Payments {
		_, err := s.recordRepo.Upsert(ctx, payroll.PaymentRecord{
			PaymentResult: result,
			ID:            uuid.New().String(),
			Status:        payroll.RecordPending,
		})
		if err != nil {
			if errors.Is(err, payroll.ErrPaymentRecordAlreadyPaid) {
				stored.Failures = append(stored.Failures, payroll.WorkerFailure{WorkerID: result.WorkerID, Err: err})
				continue
			}
			return payroll.BatchPaymentResponse{}, fmt.Errorf("failed to store payment record: %w", err)
		}
		stored.Payments = append(stored.Payments, result)
	}

	slog.Info("Payments generated",
		"period_type", string(period.Type),
		"start_date", utils.FormatDate(period.StartDate),
		"stored", len(stored.Payments),
		"failed", len(stored.Failures),
	)

	return payroll.ToBatchResponse(stored), nil
}

func (s *PayrollServiceImpl) GetPaymentRecord(ctx context.Context, id string) (payroll.PaymentRecordResponse, error) {
	record, err := s.recordRepo.GetByID(ctx, id)
	if err != nil {
		return payroll.PaymentRecordResponse{}, err
	}
	return payroll.ToRecordResponse(record), nil
}

func (s *PayrollServiceImpl) ListPaymentRecords(ctx context.Context, filter payroll.PaymentRecordFilter) ([]payroll.PaymentRecordResponse, error) {
	records, err := s.recordRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list payment records: %w", err)
	}

	responses := make([]payroll.PaymentRecordResponse, 0, len(records))
	for _, r := range records {
		responses = append(responses, payroll.ToRecordResponse(r))
	}
	return responses, nil
}

func (s *PayrollServiceImpl) MarkPaid(ctx context.Context, req payroll.MarkPaidRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	paidAt := s.now()
	if req.PaidDate != "" {
		d, err := utils.ParseDate(req.PaidDate)
		if err != nil {
			return err
		}
		paidAt = d
	}

	var refs []advance.InstallmentRef
	for _, id := range req.IDs {
		record, err := s.recordRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		refs = append(refs, record.AdvanceInstallments...)
	}

	if err := s.recordRepo.MarkPaid(ctx, req.IDs, paidAt); err != nil {
		return err
	}

	if len(refs) == 0 || s.settler == nil {
		return nil
	}
	settled, err := s.settler.SettleInstallments(ctx, refs, paidAt)
	if err != nil {
		return fmt.Errorf("failed to settle advance installments: %w", err)
	}
	slog.Info("Advance installments settled through payroll", "records", len(req.IDs), "installments", settled)
	return nil
}

// ========== DEDUCTIONS ==========

func (s *PayrollServiceImpl) CreateDeduction(ctx context.Context, req payroll.CreateDeductionRequest) (payroll.DeductionResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.DeductionResponse{}, err
	}

	if _, err := s.workerRepo.GetByID(ctx, req.WorkerID); err != nil {
		return payroll.DeductionResponse{}, err
	}

	date, err := utils.ParseDate(req.Date)
	if err != nil {
		return payroll.DeductionResponse{}, err
	}

	d, err := s.deductionRepo.Create(ctx, payroll.Deduction{
		ID:          uuid.New().String(),
		WorkerID:    req.WorkerID,
		Type:        payroll.DeductionType(req.Type),
		Amount:      req.Amount,
		Description: req.Description,
		Date:        date,
		CreatedAt:   s.now(),
	})
	if err != nil {
		return payroll.DeductionResponse{}, fmt.Errorf("failed to create deduction: %w", err)
	}

	return payroll.ToDeductionResponse(d), nil
}

func (s *PayrollServiceImpl) ListDeductions(ctx context.Context, filter payroll.DeductionFilter) ([]payroll.DeductionResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	start, err := utils.ParseDate(filter.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := utils.ParseDate(filter.EndDate)
	if err != nil {
		return nil, err
	}

	deductions, err := s.deductionRepo.ListByWorker(ctx, filter.WorkerID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list deductions: %w", err)
	}

	responses := make([]payroll.DeductionResponse, 0, len(deductions))
	for _, d := range deductions {
		responses = append(responses, payroll.ToDeductionResponse(d))
	}
	return responses, nil
}

func (s *PayrollServiceImpl) DeleteDeduction(ctx context.Context, id string) error {
	return s.deductionRepo.Delete(ctx, id)
}
