package worker

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/buildpro/backoffice-backend-go/internal/domain/worker"
	"github.com/google/uuid"
)

type WorkerServiceImpl struct {
	workerRepo worker.WorkerRepository
}

func NewWorkerService(workerRepo worker.WorkerRepository) worker.WorkerService {
	return &WorkerServiceImpl{workerRepo: workerRepo}
}

func (s *WorkerServiceImpl) CreateWorker(ctx context.Context, req worker.CreateWorkerRequest) (worker.WorkerResponse, error) {
	if err := req.Validate(); err != nil {
		return worker.WorkerResponse{}, err
	}

	w := worker.Worker{
		ID:            uuid.New().String(),
		Name:          strings.TrimSpace(req.Name),
		Phone:         req.Phone,
		PaymentType:   worker.PaymentType(req.PaymentType),
		WageAmount:    req.WageAmount,
		SalaryAmount:  req.SalaryAmount,
		BankName:      req.BankName,
		AccountNumber: req.AccountNumber,
		IFSCCode:      strings.ToUpper(req.IFSCCode),
		UPIID:         req.UPIID,
		Active:        true,
	}
	if !w.HasWageAmount() {
		return worker.WorkerResponse{}, worker.ErrNoWageAmount
	}
	if !w.HasCompleteBankDetails() {
		slog.Warn("Worker created without complete bank details", "name", w.Name)
	}

	created, err := s.workerRepo.Create(ctx, w)
	if err != nil {
		return worker.WorkerResponse{}, fmt.Errorf("failed to create worker: %w", err)
	}
	return worker.ToResponse(created), nil
}

func (s *WorkerServiceImpl) GetWorker(ctx context.Context, id string) (worker.WorkerResponse, error) {
	w, err := s.workerRepo.GetByID(ctx, id)
	if err != nil {
		return worker.WorkerResponse{}, err
	}
	return worker.ToResponse(w), nil
}

func (s *WorkerServiceImpl) ListWorkers(ctx context.Context, filter worker.WorkerFilter) ([]worker.WorkerResponse, error) {
	workers, err := s.workerRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list workers: %w", err)
	}

	responses := make([]worker.WorkerResponse, 0, len(workers))
	for _, w := range workers {
		responses = append(responses, worker.ToResponse(w))
	}
	return responses, nil
}

func (s *WorkerServiceImpl) UpdateWorker(ctx context.Context, req worker.UpdateWorkerRequest) (worker.WorkerResponse, error) {
	if err := req.Validate(); err != nil {
		return worker.WorkerResponse{}, err
	}

	w, err := s.workerRepo.GetByID(ctx, req.ID)
	if err != nil {
		return worker.WorkerResponse{}, err
	}

	if req.Name != nil {
		w.Name = strings.TrimSpace(*req.Name)
	}
	if req.Phone != nil {
		w.Phone = *req.Phone
	}
	if req.PaymentType != nil {
		w.PaymentType = worker.PaymentType(*req.PaymentType)
	}
	if req.WageAmount != nil {
		w.WageAmount = *req.WageAmount
	}
	if req.SalaryAmount != nil {
		w.SalaryAmount = req.SalaryAmount
	}
	if req.BankName != nil {
		w.BankName = *req.BankName
	}
	if req.AccountNumber != nil {
		w.AccountNumber = *req.AccountNumber
	}
	if req.IFSCCode != nil {
		w.IFSCCode = strings.ToUpper(*req.IFSCCode)
	}
	if req.UPIID != nil {
		w.UPIID = *req.UPIID
	}
	if req.Active != nil {
		w.Active = *req.Active
	}

	if !w.HasWageAmount() {
		return worker.WorkerResponse{}, worker.ErrNoWageAmount
	}

	if err := s.workerRepo.Update(ctx, w); err != nil {
		return worker.WorkerResponse{}, fmt.Errorf("failed to update worker: %w", err)
	}
	return worker.ToResponse(w), nil
}
