package main

import (
	"alcyxob/fitness-assistant/internal/api"
	"alcyxob/fitness-assistant/internal/assistant"
	"alcyxob/fitness-assistant/internal/config"
	"alcyxob/fitness-assistant/internal/llm"
	"alcyxob/fitness-assistant/internal/mcp"
	"alcyxob/fitness-assistant/internal/repository"
	"alcyxob/fitness-assistant/internal/repository/memory"
	"alcyxob/fitness-assistant/internal/repository/mongo"
	"alcyxob/fitness-assistant/internal/seed"
	"alcyxob/fitness-assistant/internal/service"
	"alcyxob/fitness-assistant/internal/storage"
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

const version = "1.0.0"

// @title Fitness Assistant API
// @version 1.0
// @description Workout schedule and conversational fitness coach.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	log.Println("Starting Fitness Assistant Server...")

	// A missing .env is normal outside local development.
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env")
	}

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}
	log.Println("Configuration loaded.")

	// --- Repositories ---
	var (
		userRepo    repository.UserRepository
		workoutRepo repository.WorkoutRepository
	)
	switch cfg.Database.Driver {
	case config.DriverMongo:
		dbClient, err := mongo.ConnectDB(context.Background(), cfg.Database.URI)
		if err != nil {
			log.Fatalf("FATAL: Could not connect to MongoDB: %v", err)
		}
		defer func() {
			log.Println("Disconnecting MongoDB...")
			if err := mongo.DisconnectDB(dbClient); err != nil {
				log.Printf("ERROR: Failed to disconnect MongoDB: %v", err)
			}
		}()
		appDB := dbClient.Database(cfg.Database.Name)
		log.Println("Database connection established.")

		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
			defer cancel()
			mongo.EnsureIndexes(ctx, appDB)
			log.Println("Index creation process completed.")
		}()

		userRepo = mongo.NewMongoUserRepository(appDB)
		workoutRepo = mongo.NewMongoWorkoutRepository(appDB)
	default:
		log.Println("WARN: Using in-memory storage; data is lost on restart.")
		userRepo = memory.NewUserRepository()
		workoutRepo = memory.NewWorkoutRepository()
	}

	// --- Storage ---
	var fileStorage storage.FileStorage
	if cfg.S3.Enabled() {
		fileStorage, err = storage.NewS3Storage(context.Background(), cfg.S3)
		if err != nil {
			log.Fatalf("FATAL: Failed to initialize S3 storage: %v", err)
		}
	} else {
		log.Println("WARN: No S3 bucket configured; transcript export is disabled.")
	}

	// --- Seed plan ---
	var plan *seed.Plan
	if cfg.Seed.Enabled {
		plan, err = seed.Load(cfg.Seed.File)
		if err != nil {
			log.Fatalf("FATAL: Could not load seed plan: %v", err)
		}
		log.Printf("Seed plan loaded with %d workouts.", len(plan.Workouts))
	}

	// --- Services ---
	if cfg.LLM.APIKey == "" {
		log.Println("WARN: llm.api_key is empty; provider calls will likely fail.")
	}
	llmClient := llm.NewOpenAIClient(cfg.LLM)
	workoutService := service.NewWorkoutService(workoutRepo, time.Now)
	authService := service.NewAuthService(userRepo, workoutService, plan, cfg.JWT.Secret, cfg.JWT.Expiration)
	assistantService := service.NewAssistantService(userRepo, workoutService, llmClient, fileStorage, assistant.Options{
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		MaxTokens:   cfg.LLM.MaxTokens,
		Timeout:     cfg.LLM.Timeout,
	})

	var mcpHandler http.Handler
	if cfg.MCP.Enabled {
		mcpHandler = mcp.NewHTTPHandler(mcp.New(workoutService, assistantService, version))
		log.Println("MCP endpoint enabled at /mcp")
	}

	// --- Gin Engine ---
	router := gin.Default() // Includes Logger and Recovery middleware
	api.SetupRoutes(router, cfg.JWT.Secret, authService, workoutService, assistantService, mcpHandler)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE"},
		AllowedHeaders: []string{"*"},
	}).Handler(router)

	// Provider calls can take up to llm.timeout, so writes get that much headroom.
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      corsHandler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10*time.Second + cfg.LLM.Timeout,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("Server starting on %s", cfg.Server.Address)

	// --- Graceful Shutdown ---
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("FATAL: ListenAndServe Error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Printf("ERROR: Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting.")
}
