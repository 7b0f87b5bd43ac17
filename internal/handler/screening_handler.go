package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yashi-star/InterviewManagementSystem/internal/domain"
	"github.com/yashi-star/InterviewManagementSystem/internal/service"
)

type ScreeningHandler struct {
	service *service.ScreeningService
}

func NewScreeningHandler(service *service.ScreeningService) *ScreeningHandler {
	return &ScreeningHandler{service: service}
}

// RegisterRoutes registers all screening-related routes
func (h *ScreeningHandler) RegisterRoutes(router *gin.RouterGroup) {
	screenings := router.Group("/screenings")

	screenings.POST("/candidate/:id", h.ScreenCandidate)
	screenings.POST("/candidate/:id/async", h.ScreenCandidateAsync)
	screenings.POST("/bulk", h.BulkScreen)
	screenings.GET("/high-score", h.HighScoreCandidates)
	screenings.GET("/statistics", h.ScreeningStatistics)
	screenings.GET("/:id", h.GetScreening)
	screenings.GET("/candidate/:id", h.ScreeningsByCandidate)
	screenings.GET("/candidate/:id/latest", h.LatestScreening)
}

func (h *ScreeningHandler) ScreenCandidate(c *gin.Context) {
	id, err := extractID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	screening, err := h.service.Screen(c.Request.Context(), id, c.Query("jobDescription"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, screening)
}

func (h *ScreeningHandler) ScreenCandidateAsync(c *gin.Context) {
	id, err := extractID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.service.ScreenAsync(c.Request.Context(), id, c.Query("jobDescription")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"candidateId": id,
		"status":      "PROCESSING",
	})
}

func (h *ScreeningHandler) BulkScreen(c *gin.Context) {
	var req domain.BulkScreeningRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	enqueued, err := h.service.BulkScreenAsync(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"totalCandidates": len(req.CandidateIDs),
		"enqueued":        enqueued,
		"status":          "PROCESSING",
	})
}

func (h *ScreeningHandler) GetScreening(c *gin.Context) {
	id, err := extractID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	screening, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, screening)
}

func (h *ScreeningHandler) ScreeningsByCandidate(c *gin.Context) {
	id, err := extractID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	screenings, err := h.service.ByCandidate(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"screenings": screenings,
		"count":      len(screenings),
	})
}

func (h *ScreeningHandler) LatestScreening(c *gin.Context) {
	id, err := extractID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	screening, err := h.service.LatestForCandidate(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, screening)
}

func (h *ScreeningHandler) HighScoreCandidates(c *gin.Context) {
	minScore := 80
	if raw := c.Query("minScore"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			respondError(c, &domain.ValidationError{Field: "minScore", Message: "must be an integer"})
			return
		}
		minScore = parsed
	}

	screenings, err := h.service.HighScoreCandidates(c.Request.Context(), minScore)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"screenings": screenings,
		"count":      len(screenings),
		"minScore":   minScore,
	})
}

func (h *ScreeningHandler) ScreeningStatistics(c *gin.Context) {
	stats, err := h.service.Statistics(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
