package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/lacson1/UK-property-management/internal/errors"
	"github.com/lacson1/UK-property-management/internal/services"
)

// PropertyHandler handles property-related HTTP requests.
type PropertyHandler struct {
	service services.PropertyService
}

// NewPropertyHandler creates a new PropertyHandler instance.
func NewPropertyHandler(service services.PropertyService) *PropertyHandler {
	return &PropertyHandler{service: service}
}

// List handles GET /api/v1/properties.
func (h *PropertyHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, list(h.service.List(c.Request.Context())))
}

// Get handles GET /api/v1/properties/:id.
func (h *PropertyHandler) Get(c *gin.Context) {
	property, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to load property")
		return
	}
	c.JSON(http.StatusOK, property)
}

// Create handles POST /api/v1/properties.
func (h *PropertyHandler) Create(c *gin.Context) {
	var req services.PropertyInput
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BindError(c, err, "Invalid property")
		return
	}

	property, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to create property")
		return
	}
	c.JSON(http.StatusCreated, property)
}

// Update handles PATCH /api/v1/properties/:id. Absent fields are left as they are.
func (h *PropertyHandler) Update(c *gin.Context) {
	var req services.PropertyPatch
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BindError(c, err, "Invalid property update")
		return
	}

	property, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err, "Failed to update property")
		return
	}
	c.JSON(http.StatusOK, property)
}

// Detail handles GET /api/v1/properties/:id/detail: the property with its
// tenant, maintenance, transactions, documents and totals.
func (h *PropertyHandler) Detail(c *gin.Context) {
	detail, err := h.service.Detail(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to load property detail")
		return
	}
	c.JSON(http.StatusOK, detail)
}
