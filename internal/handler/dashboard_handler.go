package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yashi-star/InterviewManagementSystem/internal/service"
)

type DashboardHandler struct {
	service *service.DashboardService
}

func NewDashboardHandler(service *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// RegisterRoutes registers the dashboard routes
func (h *DashboardHandler) RegisterRoutes(router *gin.RouterGroup) {
	dashboard := router.Group("/dashboard")

	dashboard.GET("", h.GetDashboard)
	dashboard.GET("/funnel", h.GetFunnel)
}

func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *DashboardHandler) GetFunnel(c *gin.Context) {
	funnel, err := h.service.Funnel(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, funnel)
}
