package assistant

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Intent names a request the router answers without the provider.
type Intent string

const (
	IntentNone             Intent = ""
	IntentTodaysWorkout    Intent = "todays_workout"
	IntentTomorrowsWorkout Intent = "tomorrows_workout"
	IntentUpcomingWorkouts Intent = "upcoming_workouts"
	IntentCancelToday      Intent = "cancel_today"
	IntentCancelTomorrow   Intent = "cancel_tomorrow"
)

// upcomingWindowDays is how far ahead the upcoming-workouts reply looks.
const upcomingWindowDays = 7

type rule struct {
	intent Intent
	match  func(text string) bool
	reply  func(ctx context.Context, r *Router, s Schedule) (string, error)
}

// directRules is evaluated top to bottom and the first match wins.
// "cancel my workout tomorrow" hits cancel-today because the cancel-today
// rule also accepts "workout" and comes first.
var directRules = []rule{
	{
		intent: IntentTodaysWorkout,
		match: func(t string) bool {
			return strings.Contains(t, "what workout") && containsAny(t, "today", "scheduled today")
		},
		reply: func(ctx context.Context, r *Router, s Schedule) (string, error) {
			w, err := s.GetByExactDate(ctx, r.today())
			if err != nil {
				return "", err
			}
			return renderTodaysWorkout(w), nil
		},
	},
	{
		intent: IntentTomorrowsWorkout,
		match: func(t string) bool {
			return strings.Contains(t, "what workout") && containsAny(t, "tomorrow", "scheduled tomorrow")
		},
		reply: func(ctx context.Context, r *Router, s Schedule) (string, error) {
			tomorrow := r.tomorrow()
			w, err := s.GetByExactDate(ctx, tomorrow)
			if err != nil {
				return "", err
			}
			return renderWorkoutForDate(w, tomorrow), nil
		},
	},
	{
		intent: IntentUpcomingWorkouts,
		match: func(t string) bool {
			return containsAny(t, "upcoming workout", "next workout", "this week", "schedule")
		},
		reply: func(ctx context.Context, r *Router, s Schedule) (string, error) {
			ws, err := s.GetUpcoming(ctx, upcomingWindowDays)
			if err != nil {
				return "", err
			}
			return renderUpcoming(ws, r.today().Location()), nil
		},
	},
	{
		intent: IntentCancelToday,
		match: func(t string) bool {
			return containsAny(t, "cancel", "skip") && containsAny(t, "today", "workout")
		},
		reply: func(ctx context.Context, r *Router, s Schedule) (string, error) {
			return cancelOn(ctx, s, r.today(), "today")
		},
	},
	{
		intent: IntentCancelTomorrow,
		match: func(t string) bool {
			return containsAny(t, "cancel", "skip") && strings.Contains(t, "tomorrow")
		},
		reply: func(ctx context.Context, r *Router, s Schedule) (string, error) {
			return cancelOn(ctx, s, r.tomorrow(), "tomorrow")
		},
	},
}

// Router short-circuits recognised schedule requests.
type Router struct {
	now   func() time.Time
	rules []rule
}

// NewRouter returns a router that resolves "today" with now.
// A nil now uses time.Now.
func NewRouter(now func() time.Time) *Router {
	if now == nil {
		now = time.Now
	}
	return &Router{now: now, rules: directRules}
}

// Match returns the first intent whose keywords appear in utterance,
// ignoring case.
func (r *Router) Match(utterance string) Intent {
	if rl := r.find(utterance); rl != nil {
		return rl.intent
	}
	return IntentNone
}

// Route answers utterance from the schedule. matched is false when no rule
// applies and the caller should ask the provider. Cancel intents mutate the
// schedule.
func (r *Router) Route(ctx context.Context, utterance string, s Schedule) (reply string, matched bool, err error) {
	rl := r.find(utterance)
	if rl == nil {
		return "", false, nil
	}
	reply, err = rl.reply(ctx, r, s)
	if err != nil {
		return "", true, fmt.Errorf("%s: %w", rl.intent, err)
	}
	return reply, true, nil
}

func (r *Router) find(utterance string) *rule {
	text := strings.ToLower(utterance)
	for i := range r.rules {
		if r.rules[i].match(text) {
			return &r.rules[i]
		}
	}
	return nil
}

func (r *Router) today() time.Time {
	return r.now()
}

func (r *Router) tomorrow() time.Time {
	return r.now().AddDate(0, 0, 1)
}

func cancelOn(ctx context.Context, s Schedule, day time.Time, dayLabel string) (string, error) {
	w, err := s.GetByExactDate(ctx, day)
	if err != nil {
		return "", err
	}
	if w == nil {
		return renderCancel(nil, false, dayLabel), nil
	}
	ok, err := s.Cancel(ctx, w.ID)
	if err != nil {
		return "", err
	}
	return renderCancel(w, ok, dayLabel), nil
}

func containsAny(text string, values ...string) bool {
	for _, v := range values {
		if strings.Contains(text, v) {
			return true
		}
	}
	return false
}
