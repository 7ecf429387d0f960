package assistant

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"alcyxob/fitness-assistant/internal/domain"
)

const dateLayout = "Monday, January 2"

const (
	noWorkoutTodayReply = "You don't have any workouts scheduled for today. Would you like me to help you schedule one?"
	noWorkoutDateReply  = "You don't have any workouts scheduled for that date. Would you like me to help you schedule one?"
	noUpcomingReply     = "You don't have any upcoming workouts scheduled. Would you like me to help you create a workout plan?"
	cancelFailedReply   = "I'm sorry, I wasn't able to cancel your workout. Please try again or contact support."
)

func renderTodaysWorkout(w *domain.WorkoutRecord) string {
	if w == nil {
		return noWorkoutTodayReply
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Today you have %s scheduled, a %d-minute %s workout with these exercises:\n\n",
		w.Name, w.DurationMinutes, w.Type)
	writeExercises(&b, w.Exercises)
	b.WriteString("\n\nWould you like to start this workout now, reschedule it, or cancel it?")
	return b.String()
}

func renderWorkoutForDate(w *domain.WorkoutRecord, date time.Time) string {
	if w == nil {
		return noWorkoutDateReply
	}
	var b strings.Builder
	fmt.Fprintf(&b, "On %s you have %s scheduled, a %d-minute %s workout with these exercises:\n\n",
		date.Format(dateLayout), w.Name, w.DurationMinutes, w.Type)
	writeExercises(&b, w.Exercises)
	b.WriteString("\n\nWould you like to reschedule or cancel this workout?")
	return b.String()
}

func renderUpcoming(workouts []domain.WorkoutRecord, loc *time.Location) string {
	if len(workouts) == 0 {
		return noUpcomingReply
	}
	lines := make([]string, 0, len(workouts))
	for _, w := range workouts {
		lines = append(lines, fmt.Sprintf("%s: %s (%d minutes)", w.Date.In(loc).Format(dateLayout), w.Name, w.DurationMinutes))
	}
	return "Here are your upcoming workouts:\n\n" +
		strings.Join(lines, "\n") +
		"\n\nWould you like more details about any of these workouts?"
}

// renderCancel covers the three outcomes of a cancel intent. dayLabel is
// "today" or "tomorrow".
func renderCancel(w *domain.WorkoutRecord, canceled bool, dayLabel string) string {
	switch {
	case w == nil:
		return fmt.Sprintf("You don't have any workouts scheduled for %s.", dayLabel)
	case canceled:
		return fmt.Sprintf("I've canceled your %s workout scheduled for %s. Would you like to reschedule it for another day?", w.Name, dayLabel)
	default:
		return cancelFailedReply
	}
}

func writeExercises(b *strings.Builder, exercises []domain.ExerciseSpec) {
	for i, ex := range exercises {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(strconv.Itoa(i+1) + ". " + formatExercise(ex))
	}
}

func formatExercise(ex domain.ExerciseSpec) string {
	line := fmt.Sprintf("%s: %d sets of %s reps", ex.Name, ex.Sets, ex.Reps)
	if ex.Weight != "" {
		line += " at " + ex.Weight
	}
	return line
}
