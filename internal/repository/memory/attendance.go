package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/buildpro/backoffice-backend-go/internal/domain/attendance"
	"github.com/buildpro/backoffice-backend-go/internal/pkg/utils"
	"github.com/google/uuid"
)

type attendanceRepository struct {
	mu      sync.RWMutex
	records map[string]attendance.Attendance
}

func NewAttendanceRepository() attendance.AttendanceRepository {
	return &attendanceRepository{records: make(map[string]attendance.Attendance)}
}

func (r *attendanceRepository) Create(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a.Date = utils.TruncateDay(a.Date)
	for _, existing := range r.records {
		if existing.WorkerID == a.WorkerID && existing.Date.Equal(a.Date) {
			return attendance.Attendance{}, attendance.ErrAttendanceAlreadyExists
		}
	}

	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	now := time.Now()
	a.CreatedAt, a.UpdatedAt = now, now
	r.records[a.ID] = a
	return a, nil
}

func (r *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.records[id]
	if !ok {
		return attendance.Attendance{}, attendance.ErrAttendanceNotFound
	}
	return a, nil
}

func (r *attendanceRepository) ListByWorker(ctx context.Context, workerID string, start, end time.Time) ([]attendance.Attendance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []attendance.Attendance
	for _, a := range r.records {
		if a.WorkerID == workerID && utils.WithinRange(a.Date, start, end) {
			result = append(result, a)
		}
	}

	sort.Slice(result, func(i, j int) bool { return result[i].Date.Before(result[j].Date) })
	return result, nil
}

func (r *attendanceRepository) Update(ctx context.Context, a attendance.Attendance) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.records[a.ID]
	if !ok {
		return attendance.ErrAttendanceNotFound
	}
	a.WorkerID, a.Date, a.CreatedAt = existing.WorkerID, existing.Date, existing.CreatedAt
	a.UpdatedAt = time.Now()
	r.records[a.ID] = a
	return nil
}

func (r *attendanceRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.records[id]; !ok {
		return attendance.ErrAttendanceNotFound
	}
	delete(r.records, id)
	return nil
}
