package advance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/buildpro/backoffice-backend-go/internal/domain/advance"
	"github.com/buildpro/backoffice-backend-go/internal/domain/worker"
	"github.com/buildpro/backoffice-backend-go/internal/pkg/lock"
	"github.com/buildpro/backoffice-backend-go/internal/pkg/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type AdvanceServiceImpl struct {
	advanceRepo advance.AdvanceRepository
	workerRepo  worker.WorkerRepository
	locker      lock.Locker
	now         func() time.Time
}

func NewAdvanceService(
	advanceRepo advance.AdvanceRepository,
	workerRepo worker.WorkerRepository,
	locker lock.Locker,
) advance.AdvanceService {
	return &AdvanceServiceImpl{
		advanceRepo: advanceRepo,
		workerRepo:  workerRepo,
		locker:      locker,
		now:         time.Now,
	}
}

// withAdvance loads the advance under its lock, applies fn and stores the result.
// Every state change of an advance and its installments goes through here.
func (s *AdvanceServiceImpl) withAdvance(ctx context.Context, id string, fn func(a advance.Advance) (advance.Advance, error)) (advance.Advance, error) {
	unlock, err := s.locker.Lock(ctx, id)
	if err != nil {
		if errors.Is(err, lock.ErrNotObtained) {
			return advance.Advance{}, advance.ErrAdvanceLocked
		}
		return advance.Advance{}, fmt.Errorf("failed to lock advance: %w", err)
	}
	defer unlock()

	current, err := s.advanceRepo.GetByID(ctx, id)
	if err != nil {
		return advance.Advance{}, err
	}

	updated, err := fn(current)
	if err != nil {
		return advance.Advance{}, err
	}

	if err := s.advanceRepo.Update(ctx, updated); err != nil {
		return advance.Advance{}, fmt.Errorf("failed to update advance: %w", err)
	}
	return updated, nil
}

func (s *AdvanceServiceImpl) CreateAdvance(ctx context.Context, req advance.CreateAdvanceRequest) (advance.AdvanceResponse, error) {
	if err := req.Validate(); err != nil {
		return advance.AdvanceResponse{}, err
	}

	if _, err := s.workerRepo.GetByID(ctx, req.WorkerID); err != nil {
		return advance.AdvanceResponse{}, err
	}

	date, err := utils.ParseDate(req.Date)
	if err != nil {
		return advance.AdvanceResponse{}, err
	}

	created, err := s.advanceRepo.Create(ctx, advance.Advance{
		ID:              uuid.New().String(),
		WorkerID:        req.WorkerID,
		Amount:          req.Amount,
		Date:            date,
		Reason:          req.Reason,
		Status:          advance.StatusPending,
		RecoveredAmount: decimal.Zero,
	})
	if err != nil {
		return advance.AdvanceResponse{}, fmt.Errorf("failed to create advance: %w", err)
	}

	return advance.ToResponse(created), nil
}

func (s *AdvanceServiceImpl) GetAdvance(ctx context.Context, id string) (advance.AdvanceResponse, error) {
	a, err := s.advanceRepo.GetByID(ctx, id)
	if err != nil {
		return advance.AdvanceResponse{}, err
	}
	return advance.ToResponse(a), nil
}

func (s *AdvanceServiceImpl) ListAdvances(ctx context.Context, filter advance.AdvanceFilter) ([]advance.AdvanceResponse, error) {
	advances, err := s.advanceRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list advances: %w", err)
	}

	responses := make([]advance.AdvanceResponse, 0, len(advances))
	for _, a := range advances {
		responses = append(responses, advance.ToResponse(a))
	}
	return responses, nil
}

func (s *AdvanceServiceImpl) ApproveAdvance(ctx context.Context, req advance.ApproveAdvanceRequest) (advance.AdvanceResponse, error) {
	if err := req.Validate(); err != nil {
		return advance.AdvanceResponse{}, err
	}

	updated, err := s.withAdvance(ctx, req.ID, func(a advance.Advance) (advance.Advance, error) {
		if a.Status != advance.StatusPending {
			return advance.Advance{}, advance.ErrInvalidStatusTransition
		}
		now := s.now()
		a.Status = advance.StatusApproved
		a.ApprovedBy = &req.ApprovedBy
		a.ApprovedAt = &now
		return a, nil
	})
	if err != nil {
		return advance.AdvanceResponse{}, err
	}
	return advance.ToResponse(updated), nil
}

func (s *AdvanceServiceImpl) RejectAdvance(ctx context.Context, id string) (advance.AdvanceResponse, error) {
	updated, err := s.withAdvance(ctx, id, func(a advance.Advance) (advance.Advance, error) {
		if a.Status != advance.StatusPending {
			return advance.Advance{}, advance.ErrInvalidStatusTransition
		}
		a.Status = advance.StatusRejected
		return a, nil
	})
	if err != nil {
		return advance.AdvanceResponse{}, err
	}
	return advance.ToResponse(updated), nil
}

// AdjustAdvance writes off the rest of an advance so payroll stops deducting it.
func (s *AdvanceServiceImpl) AdjustAdvance(ctx context.Context, id string) (advance.AdvanceResponse, error) {
	updated, err := s.withAdvance(ctx, id, func(a advance.Advance) (advance.Advance, error) {
		if !a.InRecovery() {
			return advance.Advance{}, advance.ErrInvalidStatusTransition
		}
		a.Status = advance.StatusAdjusted
		return a, nil
	})
	if err != nil {
		return advance.AdvanceResponse{}, err
	}
	return advance.ToResponse(updated), nil
}

func (s *AdvanceServiceImpl) CreateSchedule(ctx context.Context, req advance.CreateScheduleRequest) (advance.AdvanceResponse, error) {
	if err := req.Validate(); err != nil {
		return advance.AdvanceResponse{}, err
	}

	start, err := utils.ParseDate(req.StartDate)
	if err != nil {
		return advance.AdvanceResponse{}, err
	}

	updated, err := s.withAdvance(ctx, req.AdvanceID, func(a advance.Advance) (advance.Advance, error) {
		if a.Status != advance.StatusApproved {
			if a.Status == advance.StatusPartiallyRecovered || a.Status == advance.StatusFullyRecovered {
				return advance.Advance{}, advance.ErrScheduleHasPayments
			}
			return advance.Advance{}, advance.ErrAdvanceNotApproved
		}

		installments, err := BuildSchedule(a.ID, a.Amount, req.Count, start)
		if err != nil {
			return advance.Advance{}, err
		}
		a.Installments = installments
		a.RecoveredAmount = decimal.Zero
		return a, nil
	})
	if err != nil {
		return advance.AdvanceResponse{}, err
	}
	return advance.ToResponse(updated), nil
}

func (s *AdvanceServiceImpl) PayInstallment(ctx context.Context, req advance.PayInstallmentRequest) (advance.AdvanceResponse, error) {
	if err := req.Validate(); err != nil {
		return advance.AdvanceResponse{}, err
	}

	paidDate := s.now()
	if req.PaidDate != "" {
		d, err := utils.ParseDate(req.PaidDate)
		if err != nil {
			return advance.AdvanceResponse{}, err
		}
		paidDate = d
	}

	updated, err := s.withAdvance(ctx, req.AdvanceID, func(a advance.Advance) (advance.Advance, error) {
		return ApplyInstallmentPayment(a, req.InstallmentID, paidDate)
	})
	if err != nil {
		return advance.AdvanceResponse{}, err
	}
	return advance.ToResponse(updated), nil
}

// SettleInstallments pays the installments a payroll run deducted from wages.
// Installments are grouped per advance and applied under that advance's lock.
// Paid installments and advances no longer in recovery are skipped.
func (s *AdvanceServiceImpl) SettleInstallments(ctx context.Context, refs []advance.InstallmentRef, paidDate time.Time) (int, error) {
	var order []string
	byAdvance := make(map[string][]string)
	for _, ref := range refs {
		if _, ok := byAdvance[ref.AdvanceID]; !ok {
			order = append(order, ref.AdvanceID)
		}
		byAdvance[ref.AdvanceID] = append(byAdvance[ref.AdvanceID], ref.InstallmentID)
	}

	settled := 0
	for _, advanceID := range order {
		count := 0
		_, err := s.withAdvance(ctx, advanceID, func(a advance.Advance) (advance.Advance, error) {
			count = 0
			for _, installmentID := range byAdvance[advanceID] {
				updated, err := ApplyInstallmentPayment(a, installmentID, paidDate)
				switch {
				case err == nil:
					a = updated
					count++
				case errors.Is(err, advance.ErrInstallmentAlreadyPaid),
					errors.Is(err, advance.ErrInstallmentNotFound),
					errors.Is(err, advance.ErrAdvanceNotApproved):
					slog.Warn("Installment not settled", "advance_id", advanceID, "installment_id", installmentID, "reason", err.Error())
				default:
					return advance.Advance{}, err
				}
			}
			return a, nil
		})
		if err != nil {
			return settled, fmt.Errorf("failed to settle installments of advance %s: %w", advanceID, err)
		}
		settled += count
	}
	return settled, nil
}

// MarkOverdue flags pending installments whose due date has passed.
func (s *AdvanceServiceImpl) MarkOverdue(ctx context.Context, now time.Time) (int, error) {
	advances, err := s.advanceRepo.List(ctx, advance.AdvanceFilter{})
	if err != nil {
		return 0, fmt.Errorf("failed to list advances: %w", err)
	}

	total := 0
	for _, a := range advances {
		if _, n := MarkOverdue(a, now); n == 0 {
			continue
		}

		changed := 0
		_, err := s.withAdvance(ctx, a.ID, func(current advance.Advance) (advance.Advance, error) {
			updated, n := MarkOverdue(current, now)
			changed = n
			return updated, nil
		})
		if err != nil {
			slog.Error("Failed to mark installments overdue", "advance_id", a.ID, "error", err)
			continue
		}
		total += changed
	}
	return total, nil
}
