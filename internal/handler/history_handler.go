package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yashi-star/InterviewManagementSystem/internal/domain"
	"github.com/yashi-star/InterviewManagementSystem/internal/service"
)

type HistoryHandler struct {
	service *service.HistoryService
}

func NewHistoryHandler(service *service.HistoryService) *HistoryHandler {
	return &HistoryHandler{service: service}
}

// RegisterRoutes registers all audit-trail routes
func (h *HistoryHandler) RegisterRoutes(router *gin.RouterGroup) {
	history := router.Group("/history")

	history.GET("/candidates/:id", h.CandidateStageHistory)
	history.GET("/interviews/:id", h.InterviewStatusHistory)
	history.GET("/recent", h.RecentActivity)
	history.GET("/stages/average-time", h.AverageStageDurations)
}

func (h *HistoryHandler) CandidateStageHistory(c *gin.Context) {
	id, err := extractID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	history, err := h.service.StageHistory(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"history": history,
		"count":   len(history),
	})
}

func (h *HistoryHandler) InterviewStatusHistory(c *gin.Context) {
	id, err := extractID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	history, err := h.service.StatusHistory(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"history": history,
		"count":   len(history),
	})
}

func (h *HistoryHandler) RecentActivity(c *gin.Context) {
	days, limit := 0, 0
	var err error
	if raw := c.Query("days"); raw != "" {
		if days, err = strconv.Atoi(raw); err != nil {
			respondError(c, &domain.ValidationError{Field: "days", Message: "must be an integer"})
			return
		}
	}
	if raw := c.Query("limit"); raw != "" {
		if limit, err = strconv.Atoi(raw); err != nil {
			respondError(c, &domain.ValidationError{Field: "limit", Message: "must be an integer"})
			return
		}
	}

	activity, err := h.service.RecentActivity(c.Request.Context(), days, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"activity": activity,
		"count":    len(activity),
	})
}

func (h *HistoryHandler) AverageStageDurations(c *gin.Context) {
	durations, err := h.service.AverageStageDurations(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"stages": durations,
	})
}
