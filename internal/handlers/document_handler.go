package handlers

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	apierrors "github.com/lacson1/UK-property-management/internal/errors"
	"github.com/lacson1/UK-property-management/internal/services"
)

// DocumentHandler handles compliance document uploads.
type DocumentHandler struct {
	service services.DocumentService
}

// NewDocumentHandler creates a new DocumentHandler instance.
func NewDocumentHandler(service services.DocumentService) *DocumentHandler {
	return &DocumentHandler{service: service}
}

// List handles GET /api/v1/documents. Each document carries its compliance
// status as of today.
func (h *DocumentHandler) List(c *gin.Context) {
	var filter PropertyFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		apierrors.BindError(c, err, "Invalid query parameters")
		return
	}
	c.JSON(http.StatusOK, list(h.service.List(c.Request.Context(), filter.PropertyID)))
}

// Get handles GET /api/v1/documents/:id.
func (h *DocumentHandler) Get(c *gin.Context) {
	view, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to load document")
		return
	}
	c.JSON(http.StatusOK, view)
}

// Upload handles POST /api/v1/documents. It accepts a multipart form with
// "file" and "propertyId", or JSON with a data URL. The document is stored
// as pending and answered with 202; extraction completes in the background.
func (h *DocumentHandler) Upload(c *gin.Context) {
	mediaType, _, _ := mime.ParseMediaType(c.GetHeader("Content-Type"))
	if mediaType == "multipart/form-data" {
		h.uploadMultipart(c)
		return
	}

	var req services.DataURLInput
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BindError(c, err, "Invalid document upload")
		return
	}

	doc, err := h.service.UploadDataURL(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to store document")
		return
	}
	c.JSON(http.StatusAccepted, doc)
}

func (h *DocumentHandler) uploadMultipart(c *gin.Context) {
	propertyID := strings.TrimSpace(c.PostForm("propertyId"))
	header, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			apierrors.BadRequest(c, "Uploaded file is too large", map[string]interface{}{"limitBytes": tooLarge.Limit})
			return
		}
		apierrors.BadRequest(c, "A file is required in the \"file\" field", nil)
		return
	}
	if propertyID == "" {
		apierrors.BadRequest(c, "propertyId is required", nil)
		return
	}

	f, err := header.Open()
	if err != nil {
		apierrors.InternalServerError(c, "Failed to read uploaded file", err)
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		apierrors.InternalServerError(c, "Failed to read uploaded file", err)
		return
	}

	mimeType, _, _ := mime.ParseMediaType(header.Header.Get("Content-Type"))
	if mimeType == "" || mimeType == "application/octet-stream" {
		mimeType, _, _ = mime.ParseMediaType(http.DetectContentType(data))
	}

	doc, err := h.service.Upload(c.Request.Context(), services.UploadInput{
		PropertyID: propertyID,
		FileName:   header.Filename,
		MimeType:   mimeType,
		Data:       data,
	})
	if err != nil {
		respondError(c, err, "Failed to store document")
		return
	}
	c.JSON(http.StatusAccepted, doc)
}
