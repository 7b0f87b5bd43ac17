package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yashi-star/InterviewManagementSystem/internal/domain"
	"github.com/yashi-star/InterviewManagementSystem/internal/service"
)

type InterviewHandler struct {
	service *service.InterviewService
}

func NewInterviewHandler(service *service.InterviewService) *InterviewHandler {
	return &InterviewHandler{service: service}
}

// RegisterRoutes registers all interview-related routes
func (h *InterviewHandler) RegisterRoutes(router *gin.RouterGroup) {
	interviews := router.Group("/interviews")

	interviews.POST("", h.ScheduleInterview)
	interviews.GET("/available", h.FindAvailableInterviewers)
	interviews.GET("/pending-feedback", h.CompletedWithoutFeedback)
	interviews.GET("/overdue", h.OverdueInterviews)
	interviews.GET("/range", h.InterviewsInRange)
	interviews.GET("/:id", h.GetInterview)
	interviews.GET("/candidate/:id", h.InterviewsByCandidate)
	interviews.GET("/interviewer/:id", h.InterviewsByInterviewer)
	interviews.PUT("/:id/status", h.UpdateStatus)
	interviews.PUT("/:id/reschedule", h.RescheduleInterview)
	interviews.PUT("/:id/cancel", h.CancelInterview)
}

func (h *InterviewHandler) ScheduleInterview(c *gin.Context) {
	var req domain.ScheduleInterviewRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBindError(c, err)
		return
	}

	interview, err := h.service.Schedule(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, interview)
}

func (h *InterviewHandler) GetInterview(c *gin.Context) {
	id, err := extractID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	interview, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, interview)
}

func (h *InterviewHandler) InterviewsByCandidate(c *gin.Context) {
	id, err := extractID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	interviews, err := h.service.ByCandidate(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"interviews": interviews,
		"count":      len(interviews),
	})
}

func (h *InterviewHandler) InterviewsByInterviewer(c *gin.Context) {
	id, err := extractID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	interviews, err := h.service.ByInterviewer(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"interviews": interviews,
		"count":      len(interviews),
	})
}

func (h *InterviewHandler) InterviewsInRange(c *gin.Context) {
	start, err := parseTime(c.Query("start"), "start")
	if err != nil {
		respondError(c, err)
		return
	}
	end, err := parseTime(c.Query("end"), "end")
	if err != nil {
		respondError(c, err)
		return
	}

	interviews, err := h.service.ScheduledBetween(c.Request.Context(), start, end)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"interviews": interviews,
		"count":      len(interviews),
	})
}

func (h *InterviewHandler) CompletedWithoutFeedback(c *gin.Context) {
	interviews, err := h.service.CompletedWithoutFeedback(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"interviews": interviews,
		"count":      len(interviews),
	})
}

func (h *InterviewHandler) OverdueInterviews(c *gin.Context) {
	interviews, err := h.service.Overdue(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"interviews": interviews,
		"count":      len(interviews),
	})
}

func (h *InterviewHandler) FindAvailableInterviewers(c *gin.Context) {
	start, err := parseTime(c.Query("start"), "start")
	if err != nil {
		respondError(c, err)
		return
	}

	duration := 0
	if raw := c.Query("durationMinutes"); raw != "" {
		duration, err = strconv.Atoi(raw)
		if err != nil {
			respondError(c, &domain.ValidationError{Field: "durationMinutes", Message: "must be an integer"})
			return
		}
	}
	// An explicit end bounds the whole window and wins over durationMinutes.
	if raw := c.Query("end"); raw != "" {
		end, err := parseTime(raw, "end")
		if err != nil {
			respondError(c, err)
			return
		}
		if !end.After(start) {
			respondError(c, &domain.ValidationError{Field: "end", Message: "must be after start"})
			return
		}
		duration = int(end.Sub(start) / time.Minute)
	}

	interviewers, err := h.service.FindAvailable(c.Request.Context(), start, duration, c.Query("expertise"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"interviewers": interviewers,
		"count":        len(interviewers),
	})
}

func (h *InterviewHandler) UpdateStatus(c *gin.Context) {
	id, err := extractID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	newStatus := c.Query("newStatus")
	changedBy := c.Query("changedBy")
	if newStatus == "" {
		respondError(c, &domain.ValidationError{Field: "newStatus", Message: "is required"})
		return
	}
	if changedBy == "" {
		respondError(c, &domain.ValidationError{Field: "changedBy", Message: "is required"})
		return
	}

	interview, err := h.service.UpdateStatus(c.Request.Context(), id,
		domain.InterviewStatus(newStatus), changedBy, c.Query("notes"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, interview)
}

func (h *InterviewHandler) RescheduleInterview(c *gin.Context) {
	id, err := extractID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	newTime, err := parseTime(c.Query("newScheduledAt"), "newScheduledAt")
	if err != nil {
		respondError(c, err)
		return
	}

	duration := 0
	if raw := c.Query("newDuration"); raw != "" {
		duration, err = strconv.Atoi(raw)
		if err != nil {
			respondError(c, &domain.ValidationError{Field: "newDuration", Message: "must be an integer"})
			return
		}
	}

	rescheduledBy := c.Query("rescheduledBy")
	if rescheduledBy == "" {
		respondError(c, &domain.ValidationError{Field: "rescheduledBy", Message: "is required"})
		return
	}

	interview, err := h.service.Reschedule(c.Request.Context(), id, newTime, duration,
		rescheduledBy, c.Query("reason"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, interview)
}

func (h *InterviewHandler) CancelInterview(c *gin.Context) {
	id, err := extractID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	cancelledBy := c.Query("cancelledBy")
	if cancelledBy == "" {
		respondError(c, &domain.ValidationError{Field: "cancelledBy", Message: "is required"})
		return
	}

	interview, err := h.service.Cancel(c.Request.Context(), id, cancelledBy, c.Query("reason"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, interview)
}

// parseTime parses an RFC3339 query parameter.
func parseTime(raw, field string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, &domain.ValidationError{Field: field, Message: "is required"}
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, &domain.ValidationError{Field: field, Message: "must be an RFC3339 timestamp"}
	}
	return t, nil
}
