package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/yashi-star/InterviewManagementSystem/config"
	"github.com/yashi-star/InterviewManagementSystem/internal/handler"
	"github.com/yashi-star/InterviewManagementSystem/internal/middleware"
	"github.com/yashi-star/InterviewManagementSystem/internal/security"
)

type Router struct {
	candidateHandler   *handler.CandidateHandler
	interviewerHandler *handler.InterviewerHandler
	interviewHandler   *handler.InterviewHandler
	feedbackHandler    *handler.FeedbackHandler
	screeningHandler   *handler.ScreeningHandler
	historyHandler     *handler.HistoryHandler
	dashboardHandler   *handler.DashboardHandler
	config             *config.Config
	rateLimiter        *security.RateLimiter
	logger             zerolog.Logger
}

func NewRouter(
	candidateHandler *handler.CandidateHandler,
	interviewerHandler *handler.InterviewerHandler,
	interviewHandler *handler.InterviewHandler,
	feedbackHandler *handler.FeedbackHandler,
	screeningHandler *handler.ScreeningHandler,
	historyHandler *handler.HistoryHandler,
	dashboardHandler *handler.DashboardHandler,
	cfg *config.Config,
	rateLimiter *security.RateLimiter,
	logger zerolog.Logger,
) *Router {
	return &Router{
		candidateHandler:   candidateHandler,
		interviewerHandler: interviewerHandler,
		interviewHandler:   interviewHandler,
		feedbackHandler:    feedbackHandler,
		screeningHandler:   screeningHandler,
		historyHandler:     historyHandler,
		dashboardHandler:   dashboardHandler,
		config:             cfg,
		rateLimiter:        rateLimiter,
		logger:             logger,
	}
}

func (r *Router) SetupRoutes() *gin.Engine {
	if r.config.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	if r.config.Environment == "production" {
		router.Use(middleware.RequestLogger(r.logger))
		router.Use(middleware.Recovery(r.logger))
	} else {
		router.Use(gin.Logger())
		router.Use(gin.Recovery())
	}

	router.Use(middleware.CORS(r.config.CORSAllowedOrigins))

	router.GET("/api/v1/health", r.healthCheck)

	api := router.Group("/api")
	{
		r.candidateHandler.RegisterRoutes(api)
		r.interviewerHandler.RegisterRoutes(api)
		r.interviewHandler.RegisterRoutes(api)
		r.feedbackHandler.RegisterRoutes(api)
		r.historyHandler.RegisterRoutes(api)
		r.dashboardHandler.RegisterRoutes(api)

		// Screening fronts the model call; it gets the tight limiter.
		screenings := api.Group("/")
		if r.rateLimiter != nil {
			screenings.Use(r.rateLimiter.GinMiddleware())
		}
		r.screeningHandler.RegisterRoutes(screenings)
	}

	return router
}

func (r *Router) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Unix(),
		"version":   "1.0.0",
	})
}
