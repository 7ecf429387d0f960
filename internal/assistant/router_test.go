package assistant

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"alcyxob/fitness-assistant/internal/domain"
)

// TestRouterMatch verifies each rule's keywords and the evaluation order.
func TestRouterMatch(t *testing.T) {
	r := NewRouter(clock)
	tests := []struct {
		utterance string
		want      Intent
	}{
		{"What workout do I have today?", IntentTodaysWorkout},
		{"what workout is scheduled today", IntentTodaysWorkout},
		{"WHAT WORKOUT tomorrow", IntentTomorrowsWorkout},
		{"what workout is scheduled tomorrow", IntentTomorrowsWorkout},
		{"show my upcoming workouts", IntentUpcomingWorkouts},
		{"when is my next workout", IntentUpcomingWorkouts},
		{"what's on this week", IntentUpcomingWorkouts},
		{"can you show my schedule", IntentUpcomingWorkouts},
		{"cancel today please", IntentCancelToday},
		{"skip my workout", IntentCancelToday},
		{"cancel my workout tomorrow", IntentCancelToday},
		{"skip tomorrow", IntentCancelTomorrow},
		{"cancel tomorrow", IntentCancelTomorrow},
		{"tell me about protein", IntentNone},
		{"cancel", IntentNone},
		{"", IntentNone},
	}
	for _, tt := range tests {
		if got := r.Match(tt.utterance); got != tt.want {
			t.Errorf("Match(%q) = %q, want %q", tt.utterance, got, tt.want)
		}
	}
}

// TestRouteTodaysWorkout verifies the today reply names the workout and
// numbers every exercise.
func TestRouteTodaysWorkout(t *testing.T) {
	s := &fakeSchedule{records: []domain.WorkoutRecord{legDay(fixedNow.Add(2 * time.Hour))}}
	reply, matched, err := NewRouter(clock).Route(context.Background(), "what workout do I have today", s)
	if err != nil || !matched {
		t.Fatalf("Route() matched=%v err=%v", matched, err)
	}
	for _, want := range []string{
		"Leg Day",
		"45-minute strength",
		"1. Squats: 4 sets of 8 reps at 80kg",
		"2. Lunges: 3 sets of 10 reps",
		"3. Calf Raises: 3 sets of 15 reps",
		"Would you like to start this workout now, reschedule it, or cancel it?",
	} {
		if !strings.Contains(reply, want) {
			t.Errorf("reply missing %q:\n%s", want, reply)
		}
	}
}

// TestRouteTodaysWorkoutEmpty verifies the exact empty-day reply.
func TestRouteTodaysWorkoutEmpty(t *testing.T) {
	reply, matched, err := NewRouter(clock).Route(context.Background(), "what workout is scheduled today", &fakeSchedule{})
	if err != nil || !matched {
		t.Fatalf("Route() matched=%v err=%v", matched, err)
	}
	want := "You don't have any workouts scheduled for today. Would you like me to help you schedule one?"
	if reply != want {
		t.Errorf("reply = %q, want %q", reply, want)
	}
}

// TestRouteTomorrowsWorkout verifies the date-specific reply carries the
// formatted date.
func TestRouteTomorrowsWorkout(t *testing.T) {
	s := &fakeSchedule{records: []domain.WorkoutRecord{legDay(fixedNow.AddDate(0, 0, 1))}}
	reply, _, err := NewRouter(clock).Route(context.Background(), "what workout tomorrow?", s)
	if err != nil {
		t.Fatalf("Route() error = %v", err)
	}
	if !strings.HasPrefix(reply, "On Thursday, March 13 you have Leg Day scheduled") {
		t.Errorf("reply = %q", reply)
	}
	if !strings.HasSuffix(reply, "Would you like to reschedule or cancel this workout?") {
		t.Errorf("reply = %q", reply)
	}

	reply, _, _ = NewRouter(clock).Route(context.Background(), "what workout tomorrow?", &fakeSchedule{})
	if reply != noWorkoutDateReply {
		t.Errorf("empty reply = %q, want %q", reply, noWorkoutDateReply)
	}
}

// TestRouteUpcoming verifies one line per record in store order.
func TestRouteUpcoming(t *testing.T) {
	later := legDay(fixedNow.AddDate(0, 0, 3))
	later.ID, later.Name = "w-2", "Upper Body"
	soon := legDay(fixedNow.AddDate(0, 0, 1))
	s := &fakeSchedule{records: []domain.WorkoutRecord{later, soon}}

	reply, _, err := NewRouter(clock).Route(context.Background(), "show my upcoming workouts", s)
	if err != nil {
		t.Fatalf("Route() error = %v", err)
	}
	want := "Here are your upcoming workouts:\n\n" +
		"Saturday, March 15: Upper Body (45 minutes)\n" +
		"Thursday, March 13: Leg Day (45 minutes)\n\n" +
		"Would you like more details about any of these workouts?"
	if reply != want {
		t.Errorf("reply = %q, want %q", reply, want)
	}

	reply, _, _ = NewRouter(clock).Route(context.Background(), "this week", &fakeSchedule{})
	if reply != noUpcomingReply {
		t.Errorf("empty reply = %q, want %q", reply, noUpcomingReply)
	}
}

// TestRouteCancelToday verifies the cancel intent mutates the schedule.
func TestRouteCancelToday(t *testing.T) {
	s := &fakeSchedule{records: []domain.WorkoutRecord{legDay(fixedNow)}}
	reply, _, err := NewRouter(clock).Route(context.Background(), "cancel today", s)
	if err != nil {
		t.Fatalf("Route() error = %v", err)
	}
	want := "I've canceled your Leg Day workout scheduled for today. Would you like to reschedule it for another day?"
	if reply != want {
		t.Errorf("reply = %q, want %q", reply, want)
	}
	if len(s.canceled) != 1 || s.canceled[0] != "w-leg" {
		t.Errorf("canceled = %v, want [w-leg]", s.canceled)
	}

	reply, _, _ = NewRouter(clock).Route(context.Background(), "cancel today", s)
	if reply != "You don't have any workouts scheduled for today." {
		t.Errorf("second cancel reply = %q", reply)
	}
}

// TestRouteCancelPrecedence verifies "cancel my workout tomorrow" targets
// today's workout, not tomorrow's.
func TestRouteCancelPrecedence(t *testing.T) {
	tomorrow := legDay(fixedNow.AddDate(0, 0, 1))
	s := &fakeSchedule{records: []domain.WorkoutRecord{tomorrow}}
	reply, _, err := NewRouter(clock).Route(context.Background(), "cancel my workout tomorrow", s)
	if err != nil {
		t.Fatalf("Route() error = %v", err)
	}
	if reply != "You don't have any workouts scheduled for today." {
		t.Errorf("reply = %q", reply)
	}
	if len(s.canceled) != 0 {
		t.Errorf("canceled = %v, want none", s.canceled)
	}

	reply, _, _ = NewRouter(clock).Route(context.Background(), "skip tomorrow", s)
	if !strings.Contains(reply, "scheduled for tomorrow") || len(s.canceled) != 1 {
		t.Errorf("skip tomorrow reply = %q canceled = %v", reply, s.canceled)
	}
}

// TestRouteNoMatch verifies unmatched utterances do not touch the schedule.
func TestRouteNoMatch(t *testing.T) {
	s := &fakeSchedule{err: errStoreDown}
	reply, matched, err := NewRouter(clock).Route(context.Background(), "how much protein should I eat", s)
	if matched || reply != "" || err != nil {
		t.Errorf("Route() = %q, %v, %v; want no match", reply, matched, err)
	}
}

// TestRouteStoreError verifies store failures are wrapped with the intent.
func TestRouteStoreError(t *testing.T) {
	s := &fakeSchedule{err: errStoreDown}
	_, matched, err := NewRouter(clock).Route(context.Background(), "what workout today", s)
	if !matched {
		t.Error("matched = false, want true")
	}
	if !errors.Is(err, errStoreDown) {
		t.Fatalf("err = %v, want %v", err, errStoreDown)
	}
	if !strings.HasPrefix(err.Error(), string(IntentTodaysWorkout)) {
		t.Errorf("err = %q, want intent prefix", err)
	}
}
