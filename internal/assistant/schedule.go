package assistant

import (
	"context"
	"time"

	"alcyxob/fitness-assistant/internal/domain"
)

// Schedule is the slice of a user's workout store the assistant needs.
type Schedule interface {
	// GetByExactDate returns the first non-canceled workout on date's
	// calendar day, or nil when there is none.
	GetByExactDate(ctx context.Context, date time.Time) (*domain.WorkoutRecord, error)
	// GetUpcoming returns non-canceled workouts dated within
	// [now, now+windowDays], in store order.
	GetUpcoming(ctx context.Context, windowDays int) ([]domain.WorkoutRecord, error)
	// Cancel reports false for unknown ids.
	Cancel(ctx context.Context, id string) (bool, error)
}
