package domain

// FitnessLevel is the self-reported training experience of a user.
type FitnessLevel string

const (
	FitnessBeginner     FitnessLevel = "beginner"
	FitnessIntermediate FitnessLevel = "intermediate"
	FitnessAdvanced     FitnessLevel = "advanced"
)

// Valid reports whether the level is one of the known values.
func (l FitnessLevel) Valid() bool {
	switch l {
	case FitnessBeginner, FitnessIntermediate, FitnessAdvanced:
		return true
	}
	return false
}

// UserProfile is the snapshot embedded into the assistant's system prompt.
type UserProfile struct {
	Name                   string       `bson:"name" json:"name"`
	Age                    int          `bson:"age" json:"age"`
	WeightKg               float64      `bson:"weightKg" json:"weightKg"`
	HeightCm               float64      `bson:"heightCm" json:"heightCm"`
	FitnessLevel           FitnessLevel `bson:"fitnessLevel" json:"fitnessLevel"`
	FitnessGoals           []string     `bson:"fitnessGoals" json:"fitnessGoals"`
	HealthConditions       []string     `bson:"healthConditions,omitempty" json:"healthConditions,omitempty"`
	PreferredWorkoutDays   []int        `bson:"preferredWorkoutDays" json:"preferredWorkoutDays"` // 0 = Sunday ... 6 = Saturday
	WorkoutDurationMinutes int          `bson:"workoutDurationMinutes" json:"workoutDurationMinutes"`
}
