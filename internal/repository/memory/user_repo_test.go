package memory

import (
	"context"
	"errors"
	"testing"

	"alcyxob/fitness-assistant/internal/domain"
	"alcyxob/fitness-assistant/internal/repository"
)

// TestUserCreateAndLookup verifies users can be found by id and by email
// regardless of email case.
func TestUserCreateAndLookup(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()

	id, err := repo.Create(ctx, &domain.User{Name: "Ana", Email: "Ana@Example.com", PasswordHash: "hash"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	byEmail, err := repo.GetByEmail(ctx, "ana@example.com")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if byEmail.ID != id {
		t.Errorf("id = %q, want %q", byEmail.ID, id)
	}
	if _, err := repo.GetByID(ctx, "missing"); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

// TestUserDuplicateEmail verifies the email uniqueness constraint.
func TestUserDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()
	if _, err := repo.Create(ctx, &domain.User{Email: "a@b.c", PasswordHash: "h"}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := repo.Create(ctx, &domain.User{Email: "A@B.C", PasswordHash: "h"}); !errors.Is(err, repository.ErrDuplicateUser) {
		t.Errorf("err = %v, want ErrDuplicateUser", err)
	}
}

// TestUserUpdateProfile verifies profile replacement and the not-found path.
func TestUserUpdateProfile(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()
	id, _ := repo.Create(ctx, &domain.User{Email: "a@b.c", PasswordHash: "h"})

	profile := &domain.UserProfile{Name: "Ana", FitnessLevel: domain.FitnessBeginner}
	if err := repo.UpdateProfile(ctx, id, profile); err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	u, _ := repo.GetByID(ctx, id)
	if !u.HasProfile() || u.Profile.Name != "Ana" {
		t.Errorf("profile = %+v, want Name Ana", u.Profile)
	}
	if err := repo.UpdateProfile(ctx, "missing", profile); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}
