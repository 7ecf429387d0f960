package assistant

import (
	"strconv"
	"strings"
	"time"

	"alcyxob/fitness-assistant/internal/domain"
)

const basePersona = "You are FitCoach, a friendly and knowledgeable AI fitness and wellness assistant. " +
	"You help users with workout planning, exercise technique, nutrition, recovery, and motivation. " +
	"Keep answers practical, encouraging, and safe, and recommend consulting a healthcare professional " +
	"for medical concerns."

const actionsTrailer = "You can directly perform these actions for the user:\n" +
	"1. View workouts: show today's workout, a specific day's workout, or the upcoming schedule.\n" +
	"2. Cancel workouts: cancel today's or tomorrow's scheduled workout.\n" +
	"3. Reschedule workouts: move a scheduled workout to another day.\n\n" +
	"When the user asks for one of these actions, perform it directly instead of only describing how to do it."

// SystemPrompt renders the system instruction, embedding profile when set.
// The output is deterministic for a given profile.
func SystemPrompt(profile *domain.UserProfile) string {
	var b strings.Builder
	b.WriteString(basePersona)
	b.WriteString("\n\n")
	if profile != nil {
		b.WriteString("User Profile:\n")
		b.WriteString("- Name: " + profile.Name + "\n")
		b.WriteString("- Age: " + strconv.Itoa(profile.Age) + "\n")
		b.WriteString("- Weight: " + formatNumber(profile.WeightKg) + " kg\n")
		b.WriteString("- Height: " + formatNumber(profile.HeightCm) + " cm\n")
		b.WriteString("- Fitness Level: " + string(profile.FitnessLevel) + "\n")
		b.WriteString("- Fitness Goals: " + strings.Join(profile.FitnessGoals, ", ") + "\n")
		if len(profile.HealthConditions) > 0 {
			b.WriteString("- Health Conditions: " + strings.Join(profile.HealthConditions, ", ") + "\n")
		}
		b.WriteString("- Preferred Workout Days: " + strings.Join(weekdayNames(profile.PreferredWorkoutDays), ", ") + "\n")
		b.WriteString("- Workout Duration: " + strconv.Itoa(profile.WorkoutDurationMinutes) + " minutes\n\n")
	}
	b.WriteString(actionsTrailer)
	return b.String()
}

// weekdayNames maps 0..6 to Sunday..Saturday, dropping out-of-range values.
func weekdayNames(days []int) []string {
	names := make([]string, 0, len(days))
	for _, d := range days {
		if d < 0 || d > 6 {
			continue
		}
		names = append(names, time.Weekday(d).String())
	}
	return names
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
