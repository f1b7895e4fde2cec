package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lacson1/UK-property-management/internal/services"
)

// DashboardHandler serves the portfolio overview.
type DashboardHandler struct {
	service services.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler instance.
func NewDashboardHandler(service services.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// Overview handles GET /api/v1/dashboard.
func (h *DashboardHandler) Overview(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Overview(c.Request.Context()))
}
