package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yashi-star/InterviewManagementSystem/internal/domain"
	"github.com/yashi-star/InterviewManagementSystem/internal/service"
)

type FeedbackHandler struct {
	service *service.FeedbackService
}

func NewFeedbackHandler(service *service.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{service: service}
}

// RegisterRoutes registers all feedback-related routes
func (h *FeedbackHandler) RegisterRoutes(router *gin.RouterGroup) {
	feedback := router.Group("/feedback")

	feedback.POST("", h.SubmitFeedback)
	feedback.GET("/positive", h.PositiveFeedback)
	feedback.GET("/:id", h.GetFeedback)
	feedback.PUT("/:id", h.UpdateFeedback)
	feedback.DELETE("/:id", h.DeleteFeedback)
	feedback.GET("/interview/:id", h.FeedbackByInterview)
	feedback.GET("/interviewer/:id", h.FeedbackByInterviewer)
	feedback.GET("/candidate/:id/average", h.AveragesForCandidate)
}

func (h *FeedbackHandler) SubmitFeedback(c *gin.Context) {
	var req domain.SubmitFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	feedback, err := h.service.Submit(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, feedback)
}

func (h *FeedbackHandler) GetFeedback(c *gin.Context) {
	id, err := extractID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	feedback, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, feedback)
}

func (h *FeedbackHandler) UpdateFeedback(c *gin.Context) {
	id, err := extractID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	var req domain.SubmitFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	feedback, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, feedback)
}

func (h *FeedbackHandler) DeleteFeedback(c *gin.Context) {
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

func (h *FeedbackHandler) FeedbackByInterview(c *gin.Context) {
	id, err := extractID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	feedback, err := h.service.ByInterview(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"feedback": feedback,
		"count":    len(feedback),
	})
}

func (h *FeedbackHandler) FeedbackByInterviewer(c *gin.Context) {
	id, err := extractID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	feedback, err := h.service.ByInterviewer(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"feedback": feedback,
		"count":    len(feedback),
	})
}

func (h *FeedbackHandler) PositiveFeedback(c *gin.Context) {
	feedback, err := h.service.Positive(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"feedback": feedback,
		"count":    len(feedback),
	})
}

func (h *FeedbackHandler) AveragesForCandidate(c *gin.Context) {
	id, err := extractID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	averages, err := h.service.AveragesForCandidate(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, averages)
}
