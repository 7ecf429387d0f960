package domain

import (
	"time"
)

// User is an account that owns a workout schedule and an assistant session.
type User struct {
	ID           string    `bson:"_id" json:"id"`
	Name         string    `bson:"name" json:"name"`
	Email        string    `bson:"email" json:"email"`    // Should be unique
	PasswordHash string    `bson:"passwordHash" json:"-"` // Never expose this via JSON
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`

	// Profile is optional until the user fills it in.
	Profile *UserProfile `bson:"profile,omitempty" json:"profile,omitempty"`
}

// HasProfile reports whether the user has completed their fitness profile.
func (u *User) HasProfile() bool {
	return u.Profile != nil
}
