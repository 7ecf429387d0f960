// Package mcp exposes the workout schedule and the assistant as MCP tools.
package mcp

import (
	"context"
	"net/http"

	"alcyxob/fitness-assistant/internal/service"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// New creates an MCP server with all tools and resources registered.
func New(workouts service.WorkoutService, assistant service.AssistantService, version string) *server.MCPServer {
	s := server.NewMCPServer("FitCoach", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("FitCoach workout assistant. Look up, cancel, reschedule and complete scheduled workouts, or ask the coach a question. All data is scoped to the authenticated user."),
	)

	h := &handlers{workouts: workouts, assistant: assistant}

	s.AddTools(
		server.ServerTool{Tool: toolGetWorkoutForDate, Handler: h.getWorkoutForDate},
		server.ServerTool{Tool: toolGetUpcomingWorkouts, Handler: h.getUpcomingWorkouts},
		server.ServerTool{Tool: toolCancelWorkout, Handler: h.cancelWorkout},
		server.ServerTool{Tool: toolRescheduleWorkout, Handler: h.rescheduleWorkout},
		server.ServerTool{Tool: toolCompleteWorkout, Handler: h.completeWorkout},
		server.ServerTool{Tool: toolAskAssistant, Handler: h.askAssistant},
	)

	s.AddResources(
		server.ServerResource{Resource: resTodaysWorkout, Handler: h.todaysWorkout},
	)

	return s
}

// NewHTTPHandler serves s over streamable HTTP. The user id placed on the
// request context by the API's auth middleware is carried into tool calls.
func NewHTTPHandler(s *server.MCPServer) http.Handler {
	return server.NewStreamableHTTPServer(s,
		server.WithStateLess(true),
		server.WithHTTPContextFunc(func(ctx context.Context, r *http.Request) context.Context {
			if id, ok := service.UserIDFromContext(r.Context()); ok {
				return service.WithUserID(ctx, id)
			}
			return ctx
		}),
	)
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	workouts  service.WorkoutService
	assistant service.AssistantService
}

func (h *handlers) store(ctx context.Context) (service.WorkoutStore, bool) {
	id, ok := service.UserIDFromContext(ctx)
	if !ok {
		return nil, false
	}
	return h.workouts.ForUser(id), true
}

// --- Resource definitions ---

var resTodaysWorkout = mcp.NewResource(
	"fitcoach://todays_workout",
	"Today's Workout",
	mcp.WithResourceDescription("The workout scheduled for today, or null when the day is free"),
	mcp.WithMIMEType("application/json"),
)
