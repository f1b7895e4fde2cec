package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/lacson1/UK-property-management/internal/errors"
	"github.com/lacson1/UK-property-management/internal/services"
)

// TradespersonHandler handles the tradesperson directory.
type TradespersonHandler struct {
	service services.TradespersonService
}

// NewTradespersonHandler creates a new TradespersonHandler instance.
func NewTradespersonHandler(service services.TradespersonService) *TradespersonHandler {
	return &TradespersonHandler{service: service}
}

// List handles GET /api/v1/tradespeople.
func (h *TradespersonHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, list(h.service.List(c.Request.Context())))
}

// Create handles POST /api/v1/tradespeople.
func (h *TradespersonHandler) Create(c *gin.Context) {
	var req services.TradespersonInput
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BindError(c, err, "Invalid tradesperson")
		return
	}

	tp, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to create tradesperson")
		return
	}
	c.JSON(http.StatusCreated, tp)
}
