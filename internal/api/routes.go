package api

import (
	"alcyxob/fitness-assistant/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

// SetupRoutes registers every endpoint. mcpHandler is mounted at /mcp behind
// authentication when non-nil.
func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	workoutService service.WorkoutService,
	assistantService service.AssistantService,
	mcpHandler http.Handler,
) {
	authHandler := NewAuthHandler(authService)
	workoutHandler := NewWorkoutHandler(workoutService)
	assistantHandler := NewAssistantHandler(assistantService)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", func(c *gin.Context) {
			userID, ok := requireUserID(c)
			if !ok {
				return
			}
			c.JSON(http.StatusOK, gin.H{"userId": userID})
		})

		protected.GET("/profile", assistantHandler.GetProfile)
		protected.PUT("/profile", assistantHandler.UpdateProfile)

		// --- Assistant Routes ---
		assistantGroup := protected.Group("/assistant")
		{
			assistantGroup.POST("/messages", assistantHandler.SendMessage)
			assistantGroup.GET("/history", assistantHandler.GetHistory)
			assistantGroup.DELETE("/history", assistantHandler.ResetHistory)
			assistantGroup.POST("/transcripts", assistantHandler.ExportTranscript)
		}

		// --- Workout Routes ---
		workoutGroup := protected.Group("/workouts")
		{
			workoutGroup.GET("", workoutHandler.ListWorkouts)
			workoutGroup.POST("", workoutHandler.CreateWorkout)
			workoutGroup.GET("/today", workoutHandler.GetTodaysWorkout)
			workoutGroup.GET("/upcoming", workoutHandler.GetUpcomingWorkouts)
			workoutGroup.GET("/date/:date", workoutHandler.GetWorkoutForDate)
			workoutGroup.POST("/:id/cancel", workoutHandler.CancelWorkout)
			workoutGroup.POST("/:id/complete", workoutHandler.CompleteWorkout)
			workoutGroup.POST("/:id/reschedule", workoutHandler.RescheduleWorkout)
		}
	}

	if mcpHandler != nil {
		mcpGroup := router.Group("/mcp")
		mcpGroup.Use(authMiddleware)
		mcpGroup.Any("", gin.WrapH(mcpHandler))
	}
}
