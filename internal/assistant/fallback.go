package assistant

import (
	"context"
	"strings"
)

// QuotaNotice is appended to every fallback reply.
const QuotaNotice = "(Note: API quota exceeded — using fallback responses)"

type cannedReply struct {
	keywords []string
	text     string
}

var cannedReplies = []cannedReply{
	{
		keywords: []string{"workout", "exercise"},
		text: "A well-rounded routine combines strength training two to three times a week, " +
			"150 minutes of moderate cardio, and some mobility work. Start each session with a " +
			"5-10 minute warm-up, focus on good form before adding weight, and leave at least one " +
			"rest day between hard sessions for the same muscle group.",
	},
	{
		keywords: []string{"diet", "nutrition", "eat"},
		text: "Good nutrition starts with whole foods: lean protein at every meal, plenty of " +
			"vegetables and fruit, whole grains, and healthy fats. Aim for roughly 1.6 g of protein " +
			"per kg of body weight if you train regularly, stay hydrated, and keep processed foods " +
			"and sugary drinks to a minimum.",
	},
	{
		keywords: []string{"weight", "fat", "lose"},
		text: "Sustainable fat loss comes from a moderate calorie deficit of about 300-500 calories " +
			"a day, combined with strength training to preserve muscle and regular cardio. Prioritize " +
			"protein and fibre to stay full, sleep 7-9 hours, and aim for 0.5-1 kg of loss per week.",
	},
	{
		keywords: []string{"muscle", "strength", "gain"},
		text: "To build muscle and strength, train each muscle group about twice a week with " +
			"compound lifts like squats, deadlifts, presses, and rows. Use progressive overload by " +
			"adding weight or reps over time, eat in a slight calorie surplus with enough protein, " +
			"and give your muscles 48 hours to recover.",
	},
	{
		keywords: []string{"pain", "injury", "hurt"},
		text: "Sharp or persistent pain is a signal to stop the movement that causes it. Rest the " +
			"area, use ice for acute injuries, and avoid training through pain. If it lasts more than " +
			"a few days or is severe, please consult a doctor or physiotherapist before resuming.",
	},
}

const genericFallback = "I'm here to help with your fitness journey! I can share guidance on workouts, " +
	"nutrition and protein intake, weight management, building muscle, and recovery. Could you tell me " +
	"a bit more about what you'd like help with?"

// Fallback answers when the provider is out of quota. It is a separate,
// looser layer than Router: it also accepts plain "workout" + day phrasings
// before falling back to canned topic paragraphs.
type Fallback struct {
	router *Router
}

func NewFallback(router *Router) *Fallback {
	return &Fallback{router: router}
}

// Respond always produces a reply; an error means the schedule lookup failed.
func (f *Fallback) Respond(ctx context.Context, text string, s Schedule) (string, error) {
	lower := strings.ToLower(text)

	if strings.Contains(lower, "workout") && strings.Contains(lower, "today") {
		w, err := s.GetByExactDate(ctx, f.router.today())
		if err != nil {
			return "", err
		}
		return withNotice(renderTodaysWorkout(w)), nil
	}
	if strings.Contains(lower, "workout") && strings.Contains(lower, "tomorrow") {
		tomorrow := f.router.tomorrow()
		w, err := s.GetByExactDate(ctx, tomorrow)
		if err != nil {
			return "", err
		}
		return withNotice(renderWorkoutForDate(w, tomorrow)), nil
	}

	for _, c := range cannedReplies {
		if containsAny(lower, c.keywords...) {
			return withNotice(c.text), nil
		}
	}
	return withNotice(genericFallback), nil
}

func withNotice(text string) string {
	return text + "\n\n" + QuotaNotice
}
