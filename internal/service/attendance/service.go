package attendance

import (
	"context"
	"errors"
	"fmt"

	"github.com/buildpro/backoffice-backend-go/internal/domain/attendance"
	"github.com/buildpro/backoffice-backend-go/internal/domain/worker"
	"github.com/buildpro/backoffice-backend-go/internal/pkg/utils"
	"github.com/buildpro/backoffice-backend-go/internal/pkg/validator"
	"github.com/google/uuid"
)

type AttendanceServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	workerRepo     worker.WorkerRepository
}

func NewAttendanceService(attendanceRepo attendance.AttendanceRepository, workerRepo worker.WorkerRepository) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		attendanceRepo: attendanceRepo,
		workerRepo:     workerRepo,
	}
}

// RecordAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) RecordAttendance(ctx context.Context, req attendance.RecordAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if _, err := s.workerRepo.GetByID(ctx, req.WorkerID); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	date, err := utils.ParseDate(req.Date)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	created, err := s.attendanceRepo.Create(ctx, attendance.Attendance{
		ID:            uuid.New().String(),
		WorkerID:      req.WorkerID,
		Date:          date,
		Status:        attendance.Status(req.Status),
		TotalHours:    req.TotalHours,
		OvertimeHours: req.OvertimeHours,
		Notes:         req.Notes,
	})
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceAlreadyExists) {
			return attendance.AttendanceResponse{}, err
		}
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to record attendance: %w", err)
	}

	return attendance.ToResponse(created), nil
}

// UpdateAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) UpdateAttendance(ctx context.Context, req attendance.UpdateAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	a, err := s.attendanceRepo.GetByID(ctx, req.ID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if req.Status != nil {
		a.Status = attendance.Status(*req.Status)
	}
	if req.TotalHours != nil {
		a.TotalHours = *req.TotalHours
	}
	if req.OvertimeHours != nil {
		a.OvertimeHours = *req.OvertimeHours
	}
	if req.Notes != nil {
		a.Notes = req.Notes
	}

	if a.Status == attendance.StatusAbsent && (a.TotalHours.IsPositive() || a.OvertimeHours.IsPositive()) {
		return attendance.AttendanceResponse{}, validator.ValidationErrors{}.Add("total_hours", "must be 0 for an absent day")
	}

	if err := s.attendanceRepo.Update(ctx, a); err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to update attendance: %w", err)
	}

	updated, err := s.attendanceRepo.GetByID(ctx, a.ID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	return attendance.ToResponse(updated), nil
}

// ListAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListAttendance(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	start, err := utils.ParseDate(filter.StartDate)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}
	end, err := utils.ParseDate(filter.EndDate)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	records, err := s.attendanceRepo.ListByWorker(ctx, filter.WorkerID, start, end)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to list attendance: %w", err)
	}

	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, r := range records {
		responses = append(responses, attendance.ToResponse(r))
	}

	return attendance.ListAttendanceResponse{
		Records: responses,
		Summary: attendance.ToSummaryResponse(attendance.Summarize(records)),
	}, nil
}

// DeleteAttendance implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) DeleteAttendance(ctx context.Context, id string) error {
	return s.attendanceRepo.Delete(ctx, id)
}
