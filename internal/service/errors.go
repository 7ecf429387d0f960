package service

import (
	"errors"

	"alcyxob/fitness-assistant/internal/assistant"
)

// --- Error Definitions ---
var (
	ErrUserAlreadyExists    = errors.New("user with this email already exists")
	ErrAuthenticationFailed = errors.New("authentication failed: invalid email or password")
	ErrHashingFailed        = errors.New("failed to hash password")
	ErrTokenGeneration      = errors.New("failed to generate authentication token")
	ErrInvalidWorkout       = errors.New("invalid workout")
	ErrEmptyMessage         = assistant.ErrEmptyMessage
	ErrExportUnavailable    = errors.New("transcript export is not configured")
	ErrProfileInvalid       = errors.New("invalid profile")
	ErrUserNotFound         = errors.New("user not found")
)
