package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yashi-star/InterviewManagementSystem/internal/domain"
	"github.com/yashi-star/InterviewManagementSystem/internal/service"
	"github.com/yashi-star/InterviewManagementSystem/pkg/utils"
)

type CandidateHandler struct {
	service *service.CandidateService
}

func NewCandidateHandler(service *service.CandidateService) *CandidateHandler {
	return &CandidateHandler{service: service}
}

// RegisterRoutes registers all candidate-related routes
func (h *CandidateHandler) RegisterRoutes(router *gin.RouterGroup) {
	candidates := router.Group("/candidates")

	candidates.POST("", h.CreateCandidate)
	candidates.GET("", h.ListCandidates)
	candidates.GET("/search", h.SearchCandidates)
	candidates.GET("/without-screening", h.CandidatesWithoutScreening)
	candidates.GET("/:id", h.GetCandidate)
	candidates.PUT("/:id", h.UpdateCandidate)
	candidates.PUT("/:id/stage", h.UpdateStage)
	candidates.DELETE("/:id", h.DeleteCandidate)
}

func (h *CandidateHandler) CreateCandidate(c *gin.Context) {
	var req domain.CreateCandidateRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBindError(c, err)
		return
	}

	// Resume is optional at intake; screening requires it later.
	resume, err := c.FormFile("resume")
	if err != nil && err != http.ErrMissingFile {
		respondBindError(c, err)
		return
	}

	candidate, err := h.service.Create(c.Request.Context(), &req, resume)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, candidate)
}

func (h *CandidateHandler) GetCandidate(c *gin.Context) {
	id, err := extractID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	candidate, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, candidate)
}

func (h *CandidateHandler) ListCandidates(c *gin.Context) {
	page, err := h.service.List(c.Request.Context(), utils.ParsePageRequest(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

func (h *CandidateHandler) SearchCandidates(c *gin.Context) {
	filter := domain.CandidateSearchFilter{
		Name:  c.Query("name"),
		Email: c.Query("email"),
	}
	if stage := c.Query("stage"); stage != "" {
		s := domain.CandidateStage(stage)
		filter.Stage = &s
	}

	page, err := h.service.Search(c.Request.Context(), filter, utils.ParsePageRequest(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

func (h *CandidateHandler) CandidatesWithoutScreening(c *gin.Context) {
	candidates, err := h.service.WithoutScreening(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"candidates": candidates,
		"count":      len(candidates),
	})
}

func (h *CandidateHandler) UpdateCandidate(c *gin.Context) {
	id, err := extractID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	var req domain.UpdateCandidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	candidate, err := h.service.UpdateProfile(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, candidate)
}

func (h *CandidateHandler) UpdateStage(c *gin.Context) {
	id, err := extractID(c, "id")
	if err != nil {
		respondError(c, err)
		return
	}

	newStage := c.Query("newStage")
	changedBy := c.Query("changedBy")
	if newStage == "" {
		respondError(c, &domain.ValidationError{Field: "newStage", Message: "is required"})
		return
	}
	if changedBy == "" {
		respondError(c, &domain.ValidationError{Field: "changedBy", Message: "is required"})
		return
	}

	candidate, err := h.service.UpdateStage(c.Request.Context(), id,
		domain.CandidateStage(newStage), changedBy, c.Query("reason"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, candidate)
}

func (h *CandidateHandler) DeleteCandidate(c *gin.Context) {
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

// extractID parses a UUID path parameter.
func extractID(c *gin.Context, param string) (uuid.UUID, error) {
	raw := c.Param(param)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, &domain.ValidationError{
			Field:   param,
			Message: fmt.Sprintf("invalid UUID %q", raw),
		}
	}
	return id, nil
}
