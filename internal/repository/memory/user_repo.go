package memory

import (
	"alcyxob/fitness-assistant/internal/domain"
	"alcyxob/fitness-assistant/internal/repository"
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// memoryUserRepository implements repository.UserRepository keyed by id.
type memoryUserRepository struct {
	mu      sync.RWMutex
	byID    map[string]*domain.User
	byEmail map[string]string // lowercased email -> id
}

// NewUserRepository creates an empty in-memory user repository.
func NewUserRepository() repository.UserRepository {
	return &memoryUserRepository{
		byID:    make(map[string]*domain.User),
		byEmail: make(map[string]string),
	}
}

// Create stores a new user. Emails are unique, case-insensitively.
func (r *memoryUserRepository) Create(ctx context.Context, user *domain.User) (string, error) {
	if user.Email == "" || user.PasswordHash == "" {
		return "", errors.New("user email and password hash are required")
	}
	key := strings.ToLower(user.Email)

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, taken := r.byEmail[key]; taken {
		return "", repository.ErrDuplicateUser
	}

	user.ID = uuid.NewString()
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	stored := *user
	r.byID[user.ID] = &stored
	r.byEmail[key] = user.ID
	return user.ID, nil
}

// GetByEmail retrieves a user by their email address.
func (r *memoryUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, repository.ErrNotFound
	}
	u := *r.byID[id]
	return &u, nil
}

// GetByID retrieves a user by id.
func (r *memoryUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	stored, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	u := *stored
	return &u, nil
}

// UpdateProfile replaces the user's profile snapshot.
func (r *memoryUserRepository) UpdateProfile(ctx context.Context, id string, profile *domain.UserProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.byID[id]
	if !ok {
		return repository.ErrNotFound
	}
	if profile != nil {
		p := *profile
		stored.Profile = &p
	} else {
		stored.Profile = nil
	}
	stored.UpdatedAt = time.Now().UTC()
	return nil
}
