package repository

import (
	"alcyxob/fitness-assistant/internal/domain" // Import our defined domain models
	"context"                                   // Standard for request-scoped deadlines, cancellation signals, etc.
	"time"
)

// Error constants for repository layer
var (
	ErrNotFound      = RepositoryError("not found")
	ErrDuplicateUser = RepositoryError("user with this email already exists")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (string, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	UpdateProfile(ctx context.Context, id string, profile *domain.UserProfile) error
}

// WorkoutRepository holds every user's workout records in store order
// (insertion order). All methods are scoped to a single user.
//
// Unknown ids are not errors: Cancel, Reschedule and Complete return
// false with a nil error. A non-nil error always means the backend failed.
type WorkoutRepository interface {
	// Create assigns a fresh id (and exercise ids where missing) and appends the record.
	Create(ctx context.Context, record *domain.WorkoutRecord) (*domain.WorkoutRecord, error)
	// GetByExactDate returns the first non-canceled record on the calendar day of date,
	// or ErrNotFound.
	GetByExactDate(ctx context.Context, userID string, date time.Time) (*domain.WorkoutRecord, error)
	// GetInRange returns non-canceled records with from <= date <= to, in store order.
	GetInRange(ctx context.Context, userID string, from, to time.Time) ([]domain.WorkoutRecord, error)
	// List returns all of the user's records, canceled ones included, in store order.
	List(ctx context.Context, userID string) ([]domain.WorkoutRecord, error)
	Cancel(ctx context.Context, userID, id string) (bool, error)
	Reschedule(ctx context.Context, userID, id string, newDate time.Time) (bool, error)
	Complete(ctx context.Context, userID, id string) (bool, error)
}
