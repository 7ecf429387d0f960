// internal/domain/exercise.go
package domain

// ExerciseSpec describes one exercise inside a WorkoutRecord.
type ExerciseSpec struct {
	ID   string `bson:"id" json:"id"`
	Name string `bson:"name" json:"name"`
	Sets int    `bson:"sets" json:"sets"`

	// Reps is free-form; per-set values may be comma-separated ("8,8,6,6").
	Reps            string `bson:"reps" json:"reps"`
	Weight          string `bson:"weight,omitempty" json:"weight,omitempty"`                   // e.g., "60kg", "bodyweight"
	DurationSeconds *int   `bson:"durationSeconds,omitempty" json:"durationSeconds,omitempty"` // Timed exercises (planks, intervals)
	RestSeconds     *int   `bson:"restSeconds,omitempty" json:"restSeconds,omitempty"`
}
