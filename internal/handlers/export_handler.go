package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/lacson1/UK-property-management/internal/export"
	"github.com/lacson1/UK-property-management/internal/services"
)

// ExportHandler serves collection downloads.
type ExportHandler struct {
	service services.ExportService
}

// NewExportHandler creates a new ExportHandler instance.
func NewExportHandler(service services.ExportService) *ExportHandler {
	return &ExportHandler{service: service}
}

// Export handles GET /api/v1/exports/:entity?format=csv|pdf|xlsx.
// The format defaults to csv.
func (h *ExportHandler) Export(c *gin.Context) {
	format := c.DefaultQuery("format", string(export.FormatCSV))

	file, err := h.service.Export(c.Request.Context(), c.Param("entity"), format)
	if err != nil {
		respondError(c, err, "Failed to build export")
		return
	}
	attachment(c, file.FileName, file.ContentType, file.Data)
}
