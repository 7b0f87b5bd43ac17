package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yashi-star/InterviewManagementSystem/internal/domain"
	"github.com/yashi-star/InterviewManagementSystem/internal/service"
)

type InterviewerHandler struct {
	service  *service.InterviewerService
	feedback *service.FeedbackService
}

func NewInterviewerHandler(service *service.InterviewerService, feedback *service.FeedbackService) *InterviewerHandler {
	return &InterviewerHandler{service: service, feedback: feedback}
}

// RegisterRoutes registers all interviewer-related routes
func (h *InterviewerHandler) RegisterRoutes(router *gin.RouterGroup) {
	interviewers := router.Group("/interviewers")

	interviewers.POST("", h.CreateInterviewer)
	interviewers.GET("", h.ListInterviewers)
	interviewers.GET("/:id", h.GetInterviewer)
	interviewers.GET("/:id/stats", h.GetInterviewerStats)
	interviewers.PUT("/:id", h.UpdateInterviewer)
	interviewers.PUT("/:id/archive", h.ArchiveInterviewer)
	interviewers.DELETE("/:id", h.DeleteInterviewer)
}

func (h *InterviewerHandler) CreateInterviewer(c *gin.Context) {
	var req domain.CreateInterviewerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	interviewer, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, interviewer)
}

func (h *InterviewerHandler) ListInterviewers(c *gin.Context) {
	activeOnly := c.Query("active") == "true"

	interviewers, err := h.service.List(c.Request.Context(), activeOnly)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"interviewers": interviewers,
		"count":        len(interviewers),
	})
}

func (h *InterviewerHandler) GetInterviewer(c *gin.Context) {
	id, err := extractID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	interviewer, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, interviewer)
}

func (h *InterviewerHandler) GetInterviewerStats(c *gin.Context) {
	id, err := extractID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	stats, err := h.feedback.StatsForInterviewer(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *InterviewerHandler) UpdateInterviewer(c *gin.Context) {
	id, err := extractID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	var req domain.UpdateInterviewerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	interviewer, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, interviewer)
}

func (h *InterviewerHandler) ArchiveInterviewer(c *gin.Context) {
	id, err := extractID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	interviewer, err := h.service.Archive(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, interviewer)
}

func (h *InterviewerHandler) DeleteInterviewer(c *gin.Context) {
	id, err := extractID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
