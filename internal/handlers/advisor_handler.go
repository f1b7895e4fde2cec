package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/lacson1/UK-property-management/internal/errors"
	"github.com/lacson1/UK-property-management/internal/services"
)

// AdvisorHandler serves AI guidance and portfolio suggestions.
type AdvisorHandler struct {
	service services.AdvisorService
}

// NewAdvisorHandler creates a new AdvisorHandler instance.
func NewAdvisorHandler(service services.AdvisorService) *AdvisorHandler {
	return &AdvisorHandler{service: service}
}

// GuidanceRequest is the body of POST /guidance.
type GuidanceRequest struct {
	Question string `json:"question" binding:"required"`
}

// GuidanceResponse carries the Markdown answer.
type GuidanceResponse struct {
	Answer string `json:"answer"`
}

// Guidance handles POST /api/v1/guidance.
func (h *AdvisorHandler) Guidance(c *gin.Context) {
	var req GuidanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BindError(c, err, "Invalid guidance request")
		return
	}

	answer, err := h.service.Guidance(c.Request.Context(), req.Question)
	if err != nil {
		respondError(c, err, "Guidance is unavailable right now")
		return
	}
	c.JSON(http.StatusOK, GuidanceResponse{Answer: answer})
}

// Suggestions handles POST /api/v1/suggestions.
func (h *AdvisorHandler) Suggestions(c *gin.Context) {
	suggestions, err := h.service.Suggestions(c.Request.Context())
	if err != nil {
		respondError(c, err, "Suggestions are unavailable right now")
		return
	}
	c.JSON(http.StatusOK, list(suggestions))
}
