package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/lacson1/UK-property-management/internal/errors"
	"github.com/lacson1/UK-property-management/internal/models"
	"github.com/lacson1/UK-property-management/internal/services"
)

// MaintenanceHandler handles maintenance requests and their quotes.
type MaintenanceHandler struct {
	service services.MaintenanceService
}

// NewMaintenanceHandler creates a new MaintenanceHandler instance.
func NewMaintenanceHandler(service services.MaintenanceService) *MaintenanceHandler {
	return &MaintenanceHandler{service: service}
}

// PropertyFilter is the optional ?propertyId= filter of list endpoints.
type PropertyFilter struct {
	PropertyID string `form:"propertyId"`
}

// StatusRequest is the body of POST /maintenance/:id/status.
type StatusRequest struct {
	Status models.MaintenanceStatus `json:"status" binding:"required"`
}

// AssignRequest is the body of POST /maintenance/:id/assign.
type AssignRequest struct {
	TradespersonID string `json:"tradespersonId" binding:"required"`
}

// DecisionRequest is the body of POST /maintenance/:id/quotes/:quoteId/decision.
type DecisionRequest struct {
	Decision string `json:"decision" binding:"required,oneof=approve reject"`
}

// List handles GET /api/v1/maintenance.
func (h *MaintenanceHandler) List(c *gin.Context) {
	var filter PropertyFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		apierrors.BindError(c, err, "Invalid query parameters")
		return
	}
	c.JSON(http.StatusOK, list(h.service.List(c.Request.Context(), filter.PropertyID)))
}

// Create handles POST /api/v1/maintenance. The issue is triaged before the
// request is stored; triage never fails the request.
func (h *MaintenanceHandler) Create(c *gin.Context) {
	var req services.MaintenanceInput
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BindError(c, err, "Invalid maintenance request")
		return
	}

	request, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to create maintenance request")
		return
	}
	c.JSON(http.StatusCreated, request)
}

// Advance handles POST /api/v1/maintenance/:id/status.
func (h *MaintenanceHandler) Advance(c *gin.Context) {
	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BindError(c, err, "Invalid status")
		return
	}

	request, err := h.service.Advance(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		respondError(c, err, "Failed to update maintenance status")
		return
	}
	c.JSON(http.StatusOK, request)
}

// Assign handles POST /api/v1/maintenance/:id/assign.
func (h *MaintenanceHandler) Assign(c *gin.Context) {
	var req AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BindError(c, err, "Invalid assignment")
		return
	}

	request, err := h.service.Assign(c.Request.Context(), c.Param("id"), req.TradespersonID)
	if err != nil {
		respondError(c, err, "Failed to assign tradesperson")
		return
	}
	c.JSON(http.StatusOK, request)
}

// AddQuote handles POST /api/v1/maintenance/:id/quotes.
func (h *MaintenanceHandler) AddQuote(c *gin.Context) {
	var req services.QuoteInput
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BindError(c, err, "Invalid quote")
		return
	}

	request, err := h.service.AddQuote(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err, "Failed to add quote")
		return
	}
	c.JSON(http.StatusCreated, request)
}

// DecideQuote handles POST /api/v1/maintenance/:id/quotes/:quoteId/decision.
func (h *MaintenanceHandler) DecideQuote(c *gin.Context) {
	var req DecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BindError(c, err, "Invalid quote decision")
		return
	}

	request, err := h.service.DecideQuote(c.Request.Context(), c.Param("id"), c.Param("quoteId"), req.Decision == "approve")
	if err != nil {
		respondError(c, err, "Failed to decide quote")
		return
	}
	c.JSON(http.StatusOK, request)
}

// Complete handles POST /api/v1/maintenance/:id/complete. A positive cost
// books a linked expense.
func (h *MaintenanceHandler) Complete(c *gin.Context) {
	var req services.CompletionInput
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BindError(c, err, "Invalid completion details")
		return
	}

	request, err := h.service.Complete(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err, "Failed to complete maintenance request")
		return
	}
	c.JSON(http.StatusOK, request)
}
