// Package memory holds process-lifetime repository implementations.
// Nothing survives a restart.
package memory

import (
	"alcyxob/fitness-assistant/internal/domain"
	"alcyxob/fitness-assistant/internal/repository"
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// memoryWorkoutRepository implements repository.WorkoutRepository with a slice.
type memoryWorkoutRepository struct {
	mu      sync.RWMutex
	records []domain.WorkoutRecord
}

// NewWorkoutRepository creates an empty in-memory workout repository.
func NewWorkoutRepository() repository.WorkoutRepository {
	return &memoryWorkoutRepository{}
}

// Create appends a copy of the record with fresh ids.
func (r *memoryWorkoutRepository) Create(ctx context.Context, record *domain.WorkoutRecord) (*domain.WorkoutRecord, error) {
	if record == nil || record.UserID == "" {
		return nil, errors.New("workout requires a userId")
	}
	stored := cloneRecord(*record)
	stored.ID = uuid.NewString()
	for i := range stored.Exercises {
		if stored.Exercises[i].ID == "" {
			stored.Exercises[i].ID = uuid.NewString()
		}
	}
	now := time.Now().UTC()
	stored.CreatedAt = now
	stored.UpdatedAt = now

	r.mu.Lock()
	r.records = append(r.records, stored)
	r.mu.Unlock()

	out := cloneRecord(stored)
	return &out, nil
}

// GetByExactDate returns the first non-canceled record on the same day as date.
func (r *memoryWorkoutRepository) GetByExactDate(ctx context.Context, userID string, date time.Time) (*domain.WorkoutRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, rec := range r.records {
		if rec.UserID != userID || rec.Canceled {
			continue
		}
		if domain.SameDay(date, rec.Date) {
			out := cloneRecord(rec)
			return &out, nil
		}
	}
	return nil, repository.ErrNotFound
}

// GetInRange filters non-canceled records between from and to, inclusive.
func (r *memoryWorkoutRepository) GetInRange(ctx context.Context, userID string, from, to time.Time) ([]domain.WorkoutRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []domain.WorkoutRecord{}
	for _, rec := range r.records {
		if rec.UserID != userID || rec.Canceled {
			continue
		}
		if rec.Date.Before(from) || rec.Date.After(to) {
			continue
		}
		out = append(out, cloneRecord(rec))
	}
	return out, nil
}

// List returns every record owned by the user.
func (r *memoryWorkoutRepository) List(ctx context.Context, userID string) ([]domain.WorkoutRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []domain.WorkoutRecord{}
	for _, rec := range r.records {
		if rec.UserID == userID {
			out = append(out, cloneRecord(rec))
		}
	}
	return out, nil
}

// Cancel flags the record as canceled. Already-canceled records still report true.
func (r *memoryWorkoutRepository) Cancel(ctx context.Context, userID, id string) (bool, error) {
	return r.mutate(userID, id, func(rec *domain.WorkoutRecord) {
		rec.Canceled = true
	}), nil
}

// Reschedule moves the record and always clears the canceled flag.
func (r *memoryWorkoutRepository) Reschedule(ctx context.Context, userID, id string, newDate time.Time) (bool, error) {
	return r.mutate(userID, id, func(rec *domain.WorkoutRecord) {
		rec.Date = newDate
		rec.Canceled = false
	}), nil
}

// Complete marks the record as done.
func (r *memoryWorkoutRepository) Complete(ctx context.Context, userID, id string) (bool, error) {
	return r.mutate(userID, id, func(rec *domain.WorkoutRecord) {
		rec.Completed = true
	}), nil
}

func (r *memoryWorkoutRepository) mutate(userID, id string, fn func(*domain.WorkoutRecord)) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.records {
		if r.records[i].ID == id && r.records[i].UserID == userID {
			fn(&r.records[i])
			r.records[i].UpdatedAt = time.Now().UTC()
			return true
		}
	}
	return false
}

// cloneRecord copies the exercise slice so callers cannot mutate stored state.
func cloneRecord(rec domain.WorkoutRecord) domain.WorkoutRecord {
	if rec.Exercises != nil {
		rec.Exercises = append([]domain.ExerciseSpec(nil), rec.Exercises...)
	}
	return rec
}
