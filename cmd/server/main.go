package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	redisClient "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/yashi-star/InterviewManagementSystem/config"
	"github.com/yashi-star/InterviewManagementSystem/internal/ai"
	"github.com/yashi-star/InterviewManagementSystem/internal/handler"
	"github.com/yashi-star/InterviewManagementSystem/internal/repository"
	"github.com/yashi-star/InterviewManagementSystem/internal/resume"
	"github.com/yashi-star/InterviewManagementSystem/internal/security"
	"github.com/yashi-star/InterviewManagementSystem/internal/service"
	"github.com/yashi-star/InterviewManagementSystem/internal/worker"
	"github.com/yashi-star/InterviewManagementSystem/pkg/database"
	"github.com/yashi-star/InterviewManagementSystem/pkg/redis"
	router "github.com/yashi-star/InterviewManagementSystem/routes"
)

type App struct {
	config *config.Config
	router *router.Router
	server *http.Server

	db          *sql.DB
	redisClient *redisClient.Client
	pool        *worker.Pool
}

func main() {
	app, err := initializeApp()
	if err != nil {
		log.Fatal("Failed to initialize app:", err)
	}
	defer app.cleanup()

	if err := app.start(); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

func initializeApp() (*App, error) {
	cfg := config.Load()
	log.Printf("Loaded configuration for environment: %s", cfg.Environment)

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if cfg.Environment != "production" {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stdout})
	}

	// Database connection
	db, err := database.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}
	log.Println("Connected to PostgreSQL database")

	// Run migrations
	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}
	log.Println("Database migrations completed")

	// Redis connection
	cache, err := redis.NewRedisClient(cfg.RedisURL)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}
	log.Println("Connected to Redis")

	rateLimiter := security.NewRateLimiter(cache, cfg.RateLimitPerMinute, cfg.RateLimitInterval)

	// Resume storage and parsing
	resumeStorage, err := resume.NewStorage(cfg.ResumeUploadDir, cfg.MaxResumeBytes, logger)
	if err != nil {
		db.Close()
		cache.Close()
		return nil, fmt.Errorf("resume storage init failed: %w", err)
	}
	resumeParser := resume.NewParser(logger)

	// LLM analyzer
	llmClient := ai.NewClient(cfg.LLMBaseURL, cfg.LLMTimeout)
	analyzer := ai.NewAnalyzer(llmClient, cfg.LLMModel, logger)
	if !llmClient.IsRunning(context.Background()) {
		log.Printf("Warning: LLM endpoint %s not reachable, screenings will use fallback analysis", cfg.LLMBaseURL)
	}

	// Screening worker pool
	pool := worker.NewPool(worker.Config{
		CoreWorkers: cfg.ScreeningPoolCore,
		MaxWorkers:  cfg.ScreeningPoolMax,
		QueueSize:   cfg.ScreeningPoolQueue,
	}, logger)

	// Data store
	store := repository.NewStore(db)

	// Services
	candidateService := service.NewCandidateService(store, resumeStorage, logger)
	interviewerService := service.NewInterviewerService(store, logger)
	interviewService := service.NewInterviewService(store, logger)
	feedbackService := service.NewFeedbackService(store, logger)
	screeningService := service.NewScreeningService(store, resumeParser, analyzer, pool, logger)
	historyService := service.NewHistoryService(store, logger)
	dashboardService := service.NewDashboardService(store, cache, logger)

	// Handlers
	candidateHandler := handler.NewCandidateHandler(candidateService)
	interviewerHandler := handler.NewInterviewerHandler(interviewerService, feedbackService)
	interviewHandler := handler.NewInterviewHandler(interviewService)
	feedbackHandler := handler.NewFeedbackHandler(feedbackService)
	screeningHandler := handler.NewScreeningHandler(screeningService)
	historyHandler := handler.NewHistoryHandler(historyService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)

	appRouter := router.NewRouter(
		candidateHandler,
		interviewerHandler,
		interviewHandler,
		feedbackHandler,
		screeningHandler,
		historyHandler,
		dashboardHandler,
		cfg,
		rateLimiter,
		logger,
	)

	return &App{
		config:      cfg,
		router:      appRouter,
		db:          db,
		redisClient: cache,
		pool:        pool,
	}, nil
}

func (app *App) start() error {
	handler := app.router.SetupRoutes()

	app.server = &http.Server{
		Addr:         ":" + app.config.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Starting server on port %s...", app.config.Port)
		if err := app.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server startup failed: %s", err)
		}
	}()

	log.Printf("Server successfully started")
	log.Printf("   Environment: %s", app.config.Environment)
	log.Printf("   Port: %s", app.config.Port)
	log.Printf("   LLM model: %s at %s", app.config.LLMModel, app.config.LLMBaseURL)
	log.Printf("   Screening pool: core=%d max=%d queue=%d",
		app.config.ScreeningPoolCore, app.config.ScreeningPoolMax, app.config.ScreeningPoolQueue)

	return app.waitForShutdown()
}

func (app *App) waitForShutdown() error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	sig := <-quit
	log.Printf("Received signal: %v. Shutting down server...", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	// Queued screenings get the drain window before the process exits.
	app.pool.Shutdown()

	log.Println("Server gracefully stopped")
	return nil
}

func (app *App) cleanup() {
	log.Println("Cleaning up resources...")

	if app.db != nil {
		app.db.Close()
		log.Println("Database connection closed")
	}

	if app.redisClient != nil {
		app.redisClient.Close()
		log.Println("Redis connection closed")
	}
}
