// Package handlers exposes the portfolio services over HTTP.
package handlers

import (
	"errors"
	"mime"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	apierrors "github.com/lacson1/UK-property-management/internal/errors"
	"github.com/lacson1/UK-property-management/internal/services"
)

func init() {
	// Report validation failures under the JSON or form name the client sent.
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(requestFieldName)
	}
}

func requestFieldName(field reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name, _, _ := strings.Cut(field.Tag.Get(tag), ",")
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return field.Name
}

// respondError maps a service error to the API error envelope.
func respondError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, services.ErrInvalidInput), errors.Is(err, services.ErrInvalidDataURL):
		apierrors.BadRequest(c, err.Error(), nil)
	case errors.Is(err, services.ErrPropertyNotFound):
		apierrors.NotFound(c, "Property not found")
	case errors.Is(err, services.ErrMaintenanceNotFound):
		apierrors.NotFound(c, "Maintenance request not found")
	case errors.Is(err, services.ErrTradespersonNotFound):
		apierrors.NotFound(c, "Tradesperson not found")
	case errors.Is(err, services.ErrQuoteNotFound):
		apierrors.NotFound(c, "Quote not found")
	case errors.Is(err, services.ErrDocumentNotFound):
		apierrors.NotFound(c, "Document not found")
	case errors.Is(err, services.ErrNoTransactions):
		apierrors.NotFound(c, "No transactions found for the selected tax year and property")
	case errors.Is(err, services.ErrPropertyUnavailable):
		apierrors.Conflict(c, "Property already has a tenant or is under offer")
	case errors.Is(err, services.ErrInvalidStatusTransition):
		apierrors.Conflict(c, "Maintenance status cannot move backwards or to Completed without completion details")
	case errors.Is(err, services.ErrQuoteDecided):
		apierrors.Conflict(c, "Quote has already been decided")
	case errors.Is(err, services.ErrAIService):
		apierrors.AIServiceError(c, fallback, err)
	default:
		apierrors.InternalServerError(c, fallback, err)
	}
}

// attachment serves data as a file download.
func attachment(c *gin.Context, fileName, contentType string, data []byte) {
	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": fileName}))
	c.Data(http.StatusOK, contentType, data)
}

// listResponse wraps a collection so list endpoints share one shape.
type listResponse[T any] struct {
	Items []T `json:"items"`
	Count int `json:"count"`
}

func list[T any](items []T) listResponse[T] {
	if items == nil {
		items = []T{}
	}
	return listResponse[T]{Items: items, Count: len(items)}
}
