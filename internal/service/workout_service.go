package service

import (
	"alcyxob/fitness-assistant/internal/domain"
	"alcyxob/fitness-assistant/internal/repository"
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"
)

// WorkoutStore is one user's schedule. "Today" comes from the service clock.
// Cancel, Reschedule and Complete report unknown ids as false, never as an error.
type WorkoutStore interface {
	// GetByExactDate returns the first non-canceled workout on date's calendar day, or nil.
	GetByExactDate(ctx context.Context, date time.Time) (*domain.WorkoutRecord, error)
	// GetUpcoming returns non-canceled workouts dated within [now, now+windowDays], in store order.
	GetUpcoming(ctx context.Context, windowDays int) ([]domain.WorkoutRecord, error)
	Cancel(ctx context.Context, id string) (bool, error)
	Reschedule(ctx context.Context, id string, newDate time.Time) (bool, error)
	Complete(ctx context.Context, id string) (bool, error)
	Add(ctx context.Context, record domain.WorkoutRecord) (*domain.WorkoutRecord, error)
	List(ctx context.Context) ([]domain.WorkoutRecord, error)
}

// WorkoutService hands out per-user views of the shared workout repository.
type WorkoutService interface {
	ForUser(userID string) WorkoutStore
	Now() time.Time
}

type workoutService struct {
	repo repository.WorkoutRepository
	now  func() time.Time
}

// NewWorkoutService creates a WorkoutService. A nil now uses time.Now.
func NewWorkoutService(repo repository.WorkoutRepository, now func() time.Time) WorkoutService {
	if now == nil {
		now = time.Now
	}
	return &workoutService{repo: repo, now: now}
}

func (s *workoutService) ForUser(userID string) WorkoutStore {
	return &userWorkoutStore{repo: s.repo, userID: userID, now: s.now}
}

func (s *workoutService) Now() time.Time {
	return s.now()
}

// userWorkoutStore implements WorkoutStore for a single user.
type userWorkoutStore struct {
	repo   repository.WorkoutRepository
	userID string
	now    func() time.Time
}

func (w *userWorkoutStore) GetByExactDate(ctx context.Context, date time.Time) (*domain.WorkoutRecord, error) {
	rec, err := w.repo.GetByExactDate(ctx, w.userID, date)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		log.Printf("ERROR: WorkoutStore: lookup for user %s on %s failed: %v", w.userID, date.Format("2006-01-02"), err)
		return nil, err
	}
	return rec, nil
}

func (w *userWorkoutStore) GetUpcoming(ctx context.Context, windowDays int) ([]domain.WorkoutRecord, error) {
	if windowDays < 0 {
		windowDays = 0
	}
	from := w.now()
	return w.repo.GetInRange(ctx, w.userID, from, from.AddDate(0, 0, windowDays))
}

func (w *userWorkoutStore) Cancel(ctx context.Context, id string) (bool, error) {
	ok, err := w.repo.Cancel(ctx, w.userID, id)
	if ok {
		log.Printf("INFO: Workout %s canceled for user %s", id, w.userID)
	}
	return ok, err
}

func (w *userWorkoutStore) Reschedule(ctx context.Context, id string, newDate time.Time) (bool, error) {
	if newDate.IsZero() {
		return false, fmt.Errorf("%w: new date is required", ErrInvalidWorkout)
	}
	return w.repo.Reschedule(ctx, w.userID, id, newDate)
}

func (w *userWorkoutStore) Complete(ctx context.Context, id string) (bool, error) {
	return w.repo.Complete(ctx, w.userID, id)
}

// Add validates and stores record for the user. Duplicate dates are allowed;
// GetByExactDate returns whichever was added first.
func (w *userWorkoutStore) Add(ctx context.Context, record domain.WorkoutRecord) (*domain.WorkoutRecord, error) {
	record.Name = strings.TrimSpace(record.Name)
	switch {
	case record.Name == "":
		return nil, fmt.Errorf("%w: name is required", ErrInvalidWorkout)
	case record.Date.IsZero():
		return nil, fmt.Errorf("%w: date is required", ErrInvalidWorkout)
	case record.DurationMinutes < 0:
		return nil, fmt.Errorf("%w: duration cannot be negative", ErrInvalidWorkout)
	}
	for i, ex := range record.Exercises {
		if strings.TrimSpace(ex.Name) == "" {
			return nil, fmt.Errorf("%w: exercise %d has no name", ErrInvalidWorkout, i+1)
		}
	}
	record.UserID = w.userID
	record.Completed = false
	record.Canceled = false
	return w.repo.Create(ctx, &record)
}

func (w *userWorkoutStore) List(ctx context.Context) ([]domain.WorkoutRecord, error) {
	return w.repo.List(ctx, w.userID)
}
