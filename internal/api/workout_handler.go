package api

import (
	"alcyxob/fitness-assistant/internal/domain"
	"alcyxob/fitness-assistant/internal/service"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

const dayLayout = "2006-01-02"

type WorkoutHandler struct {
	workouts service.WorkoutService
}

func NewWorkoutHandler(workouts service.WorkoutService) *WorkoutHandler {
	return &WorkoutHandler{workouts: workouts}
}

// --- DTOs ---

type ExerciseRequest struct {
	Name            string `json:"name" binding:"required"`
	Sets            int    `json:"sets" binding:"min=0"`
	Reps            string `json:"reps"`
	Weight          string `json:"weight"`
	DurationSeconds *int   `json:"durationSeconds"`
	RestSeconds     *int   `json:"restSeconds"`
}

type CreateWorkoutRequest struct {
	Name            string            `json:"name" binding:"required"`
	Type            string            `json:"type"`
	Date            time.Time         `json:"date" binding:"required"`
	DurationMinutes int               `json:"durationMinutes" binding:"min=0"`
	Exercises       []ExerciseRequest `json:"exercises" binding:"dive"`
}

type RescheduleRequest struct {
	Date time.Time `json:"date" binding:"required"`
}

// --- Handlers ---

// ListWorkouts returns every workout of the user, canceled ones included.
// @Router /workouts [get]
func (h *WorkoutHandler) ListWorkouts(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	list, err := h.workouts.ForUser(userID).List(c.Request.Context())
	if err != nil {
		respondServiceError(c, "ListWorkouts", err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// CreateWorkout godoc
// @Summary Schedule a workout
// @Tags Workouts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param workout body CreateWorkoutRequest true "Workout details"
// @Success 201 {object} domain.WorkoutRecord
// @Failure 400 {object} gin.H "Invalid input"
// @Router /workouts [post]
func (h *WorkoutHandler) CreateWorkout(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req CreateWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	record := domain.WorkoutRecord{
		Name:            req.Name,
		Type:            req.Type,
		Date:            req.Date,
		DurationMinutes: req.DurationMinutes,
	}
	for _, ex := range req.Exercises {
		record.Exercises = append(record.Exercises, domain.ExerciseSpec{
			Name:            ex.Name,
			Sets:            ex.Sets,
			Reps:            ex.Reps,
			Weight:          ex.Weight,
			DurationSeconds: ex.DurationSeconds,
			RestSeconds:     ex.RestSeconds,
		})
	}

	created, err := h.workouts.ForUser(userID).Add(c.Request.Context(), record)
	if err != nil {
		respondServiceError(c, "CreateWorkout", err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// GetTodaysWorkout returns today's workout or 404.
// @Router /workouts/today [get]
func (h *WorkoutHandler) GetTodaysWorkout(c *gin.Context) {
	h.workoutOn(c, h.workouts.Now())
}

// GetWorkoutForDate returns the workout on :date (YYYY-MM-DD) or 404.
// @Router /workouts/date/{date} [get]
func (h *WorkoutHandler) GetWorkoutForDate(c *gin.Context) {
	day, err := time.ParseInLocation(dayLayout, c.Param("date"), h.workouts.Now().Location())
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid date format, expected YYYY-MM-DD")
		return
	}
	h.workoutOn(c, day)
}

func (h *WorkoutHandler) workoutOn(c *gin.Context, day time.Time) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	w, err := h.workouts.ForUser(userID).GetByExactDate(c.Request.Context(), day)
	if err != nil {
		respondServiceError(c, "GetWorkoutForDate", err)
		return
	}
	if w == nil {
		abortWithError(c, http.StatusNotFound, fmt.Sprintf("No workout scheduled on %s", day.Format(dayLayout)))
		return
	}
	c.JSON(http.StatusOK, w)
}

// GetUpcomingWorkouts lists workouts in the next ?days= days (default 7).
// @Router /workouts/upcoming [get]
func (h *WorkoutHandler) GetUpcomingWorkouts(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	days, err := strconv.Atoi(c.DefaultQuery("days", "7"))
	if err != nil || days < 0 {
		abortWithError(c, http.StatusBadRequest, "days must be a non-negative integer")
		return
	}
	list, err := h.workouts.ForUser(userID).GetUpcoming(c.Request.Context(), days)
	if err != nil {
		respondServiceError(c, "GetUpcomingWorkouts", err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// CancelWorkout marks :id canceled.
// @Router /workouts/{id}/cancel [post]
func (h *WorkoutHandler) CancelWorkout(c *gin.Context) {
	h.mutate(c, "CancelWorkout", func(s service.WorkoutStore) (bool, error) {
		return s.Cancel(c.Request.Context(), c.Param("id"))
	})
}

// CompleteWorkout marks :id completed.
// @Router /workouts/{id}/complete [post]
func (h *WorkoutHandler) CompleteWorkout(c *gin.Context) {
	h.mutate(c, "CompleteWorkout", func(s service.WorkoutStore) (bool, error) {
		return s.Complete(c.Request.Context(), c.Param("id"))
	})
}

// RescheduleWorkout moves :id to the date in the body.
// @Router /workouts/{id}/reschedule [post]
func (h *WorkoutHandler) RescheduleWorkout(c *gin.Context) {
	var req RescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	h.mutate(c, "RescheduleWorkout", func(s service.WorkoutStore) (bool, error) {
		return s.Reschedule(c.Request.Context(), c.Param("id"), req.Date)
	})
}

func (h *WorkoutHandler) mutate(c *gin.Context, op string, fn func(service.WorkoutStore) (bool, error)) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	ok, err := fn(h.workouts.ForUser(userID))
	if err != nil {
		respondServiceError(c, op, err)
		return
	}
	if !ok {
		abortWithError(c, http.StatusNotFound, "Workout not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": c.Param("id"), "updated": true})
}
