package domain

import (
	"time"
)

// WorkoutRecord is one scheduled training session for a user.
// The ID is assigned once when the record is stored and never changes.
type WorkoutRecord struct {
	ID              string         `bson:"_id" json:"id"`
	UserID          string         `bson:"userId" json:"userId"`     // Owner of the schedule entry
	Date            time.Time      `bson:"date" json:"date"`         // Matched at day granularity
	Name            string         `bson:"name" json:"name"`         // e.g., "Leg Day"
	Type            string         `bson:"type" json:"type"`         // Free-form category, e.g., "strength", "cardio"
	DurationMinutes int            `bson:"durationMinutes" json:"durationMinutes"`
	Exercises       []ExerciseSpec `bson:"exercises" json:"exercises"`
	Completed       bool           `bson:"completed" json:"completed"`
	Canceled        bool           `bson:"canceled" json:"canceled"`
	CreatedAt       time.Time      `bson:"createdAt" json:"createdAt"` // Store order
	UpdatedAt       time.Time      `bson:"updatedAt" json:"updatedAt"`
}

// SameDay reports whether a and b fall on the same calendar day,
// using the location of a.
func SameDay(a, b time.Time) bool {
	b = b.In(a.Location())
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
