package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/lacson1/UK-property-management/internal/errors"
	"github.com/lacson1/UK-property-management/internal/middleware"
	"github.com/lacson1/UK-property-management/internal/services"
)

// TenantHandler handles tenant-related HTTP requests.
type TenantHandler struct {
	service services.TenantService
}

// NewTenantHandler creates a new TenantHandler instance.
func NewTenantHandler(service services.TenantService) *TenantHandler {
	return &TenantHandler{service: service}
}

// List handles GET /api/v1/tenants.
func (h *TenantHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, list(h.service.List(c.Request.Context())))
}

// Create handles POST /api/v1/tenants. The property must be lettable and
// without a tenant; it becomes Occupied.
func (h *TenantHandler) Create(c *gin.Context) {
	var req services.TenantInput
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BindError(c, err, "Invalid tenant")
		return
	}

	tenant, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to create tenant")
		return
	}

	if log := middleware.GetLogger(c); log != nil {
		log.Info("Tenant added", map[string]interface{}{
			"tenant_id":   tenant.ID,
			"property_id": tenant.PropertyID,
		})
	}
	c.JSON(http.StatusCreated, tenant)
}
