package mcp

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"alcyxob/fitness-assistant/internal/domain"
	"alcyxob/fitness-assistant/internal/llm"
	"alcyxob/fitness-assistant/internal/service"

	"github.com/mark3labs/mcp-go/mcp"
)

const errUnauthenticated = "no authenticated user"

// parseDay accepts "today", "tomorrow" or YYYY-MM-DD in now's location.
func parseDay(s string, now time.Time) (time.Time, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "today":
		return now, nil
	case "tomorrow":
		return now.AddDate(0, 0, 1), nil
	}
	return time.ParseInLocation("2006-01-02", strings.TrimSpace(s), now.Location())
}

// --- Tool definitions ---

var toolGetWorkoutForDate = mcp.NewTool("get_workout_for_date",
	mcp.WithDescription("Get the workout scheduled on a day. Returns the workout with its exercises, or a note when nothing is scheduled."),
	mcp.WithString("date", mcp.Description("Day as YYYY-MM-DD, 'today' or 'tomorrow'. Defaults to today.")),
)

var toolGetUpcomingWorkouts = mcp.NewTool("get_upcoming_workouts",
	mcp.WithDescription("List non-canceled workouts from now through the next N days."),
	mcp.WithNumber("days", mcp.Description("Window in days. Defaults to 7.")),
)

var toolCancelWorkout = mcp.NewTool("cancel_workout",
	mcp.WithDescription("Cancel a scheduled workout by id."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Workout id")),
)

var toolRescheduleWorkout = mcp.NewTool("reschedule_workout",
	mcp.WithDescription("Move a workout to another day, keeping its time of day. Rescheduling also restores a canceled workout."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Workout id")),
	mcp.WithString("date", mcp.Required(), mcp.Description("New day as YYYY-MM-DD, 'today' or 'tomorrow'")),
)

var toolCompleteWorkout = mcp.NewTool("complete_workout",
	mcp.WithDescription("Mark a workout as completed."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Workout id")),
)

var toolAskAssistant = mcp.NewTool("ask_assistant",
	mcp.WithDescription("Send a message to the fitness coach in the user's ongoing conversation and return its reply."),
	mcp.WithString("message", mcp.Required(), mcp.Description("What to ask the coach")),
)

// --- Tool handlers ---

func (h *handlers) getWorkoutForDate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	store, ok := h.store(ctx)
	if !ok {
		return mcp.NewToolResultError(errUnauthenticated), nil
	}
	day, err := parseDay(req.GetString("date", ""), h.workouts.Now())
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}

	w, err := store.GetByExactDate(ctx, day)
	if err != nil {
		log.Printf("ERROR: mcp get_workout_for_date: %v", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	if w == nil {
		return mcp.NewToolResultText("No workout scheduled on " + day.Format("2006-01-02") + "."), nil
	}

	result, err := mcp.NewToolResultJSON(w)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getUpcomingWorkouts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	store, ok := h.store(ctx)
	if !ok {
		return mcp.NewToolResultError(errUnauthenticated), nil
	}
	days := req.GetInt("days", 7)
	if days < 0 {
		return mcp.NewToolResultError("days cannot be negative"), nil
	}

	ws, err := store.GetUpcoming(ctx, days)
	if err != nil {
		log.Printf("ERROR: mcp get_upcoming_workouts: %v", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(map[string]any{"workouts": ws})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) cancelWorkout(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return h.mutate(ctx, req, "cancel_workout", "Workout canceled.", func(s service.WorkoutStore, id string) (bool, error) {
		return s.Cancel(ctx, id)
	})
}

func (h *handlers) completeWorkout(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return h.mutate(ctx, req, "complete_workout", "Workout marked as completed.", func(s service.WorkoutStore, id string) (bool, error) {
		return s.Complete(ctx, id)
	})
}

func (h *handlers) rescheduleWorkout(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	dateStr, err := req.RequireString("date")
	if err != nil {
		return mcp.NewToolResultError("date parameter is required"), nil
	}
	day, err := parseDay(dateStr, h.workouts.Now())
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}
	return h.mutate(ctx, req, "reschedule_workout", "Workout moved to "+day.Format("2006-01-02")+".", func(s service.WorkoutStore, id string) (bool, error) {
		current, err := findWorkout(ctx, s, id)
		if err != nil || current == nil {
			return false, err
		}
		// Keep the original time of day.
		hr, mn, sec := current.Date.In(day.Location()).Clock()
		y, mo, d := day.Date()
		return s.Reschedule(ctx, id, time.Date(y, mo, d, hr, mn, sec, 0, day.Location()))
	})
}

func (h *handlers) mutate(ctx context.Context, req mcp.CallToolRequest, tool, done string, fn func(service.WorkoutStore, string) (bool, error)) (*mcp.CallToolResult, error) {
	store, ok := h.store(ctx)
	if !ok {
		return mcp.NewToolResultError(errUnauthenticated), nil
	}
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("id parameter is required"), nil
	}

	ok, err = fn(store, id)
	if err != nil {
		log.Printf("ERROR: mcp %s: %v", tool, err)
		return mcp.NewToolResultError(tool + " failed: " + err.Error()), nil
	}
	if !ok {
		return mcp.NewToolResultError("workout " + id + " not found"), nil
	}
	return mcp.NewToolResultText(done), nil
}

// findWorkout returns the user's workout with id, canceled or not, or nil.
func findWorkout(ctx context.Context, s service.WorkoutStore, id string) (*domain.WorkoutRecord, error) {
	list, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range list {
		if list[i].ID == id {
			return &list[i], nil
		}
	}
	return nil, nil
}

func (h *handlers) askAssistant(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	userID, ok := service.UserIDFromContext(ctx)
	if !ok {
		return mcp.NewToolResultError(errUnauthenticated), nil
	}
	message, err := req.RequireString("message")
	if err != nil {
		return mcp.NewToolResultError("message parameter is required"), nil
	}

	turn, err := h.assistant.SendMessage(ctx, userID, message)
	if err != nil {
		var perr *llm.ProviderError
		if errors.As(err, &perr) {
			return mcp.NewToolResultError("the assistant provider failed: " + perr.Message), nil
		}
		return mcp.NewToolResultError("ask_assistant failed: " + err.Error()), nil
	}
	return mcp.NewToolResultText(turn.Content), nil
}
