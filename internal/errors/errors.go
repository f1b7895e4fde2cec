// Package errors writes the API's JSON error envelope.
package errors

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/lacson1/UK-property-management/internal/middleware"
)

// Error code constants for standardized error responses
const (
	ErrNotFound           = "NOT_FOUND"
	ErrBadRequest         = "BAD_REQUEST"
	ErrValidation         = "VALIDATION_ERROR"
	ErrConflict           = "CONFLICT"
	ErrAIService          = "AI_SERVICE_ERROR"
	ErrServiceUnavailable = "SERVICE_UNAVAILABLE"
	ErrInternalServer     = "INTERNAL_SERVER_ERROR"
)

// ErrorResponse is the top-level error response structure.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains the error information.
type ErrorDetail struct {
	Code      string                 `json:"code"`
	Message   string                 `json:"message"`
	Details   map[string]interface{} `json:"details,omitempty"`
	Retryable bool                   `json:"retryable,omitempty"`
	RequestID string                 `json:"request_id,omitempty"`
}

// NotFound returns a 404 Not Found error response.
func NotFound(c *gin.Context, message string) {
	warn(c, "Resource not found", message, nil)
	respond(c, http.StatusNotFound, ErrorDetail{Code: ErrNotFound, Message: message})
}

// BadRequest returns a 400 Bad Request error response with optional details.
func BadRequest(c *gin.Context, message string, details map[string]interface{}) {
	warn(c, "Bad request", message, details)
	respond(c, http.StatusBadRequest, ErrorDetail{Code: ErrBadRequest, Message: message, Details: details})
}

// Conflict returns a 409 Conflict response for requests that clash with the
// current state, such as a forbidden status change.
func Conflict(c *gin.Context, message string) {
	warn(c, "Conflict", message, nil)
	respond(c, http.StatusConflict, ErrorDetail{Code: ErrConflict, Message: message})
}

// AIServiceError returns a 502 Bad Gateway response when the generative model
// failed. The client may retry.
func AIServiceError(c *gin.Context, message string, err error) {
	if log := middleware.GetLogger(c); log != nil {
		log.Warn("AI service error", map[string]interface{}{
			"message": message,
			"error":   err,
			"path":    c.Request.URL.Path,
		})
	}
	respond(c, http.StatusBadGateway, ErrorDetail{Code: ErrAIService, Message: message, Retryable: true})
}

// ServiceUnavailable returns a 503 response when a dependency is down.
func ServiceUnavailable(c *gin.Context, message string) {
	warn(c, "Service unavailable", message, nil)
	respond(c, http.StatusServiceUnavailable, ErrorDetail{Code: ErrServiceUnavailable, Message: message, Retryable: true})
}

// InternalServerError returns a 500 Internal Server Error response.
// The cause is logged but never sent to the client.
func InternalServerError(c *gin.Context, message string, err error) {
	if log := middleware.GetLogger(c); log != nil {
		log.Error("Internal server error", err, map[string]interface{}{
			"message": message,
			"path":    c.Request.URL.Path,
			"method":  c.Request.Method,
		})
	}
	_ = c.Error(err)
	respond(c, http.StatusInternalServerError, ErrorDetail{Code: ErrInternalServer, Message: message})
}

// ValidationError returns a 400 Bad Request error response with field-specific validation errors.
func ValidationError(c *gin.Context, validationErrors validator.ValidationErrors) {
	details := make(map[string]interface{}, len(validationErrors))
	for _, err := range validationErrors {
		details[err.Field()] = formatValidationError(err)
	}

	if log := middleware.GetLogger(c); log != nil {
		log.Warn("Validation error", map[string]interface{}{
			"path":   c.Request.URL.Path,
			"fields": details,
		})
	}

	respond(c, http.StatusBadRequest, ErrorDetail{
		Code:    ErrValidation,
		Message: "Validation failed for one or more fields",
		Details: details,
	})
}

// BindError reports a failed ShouldBind call: field errors become a
// validation response, anything else a plain bad request.
func BindError(c *gin.Context, err error, message string) {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		ValidationError(c, validationErrors)
		return
	}
	BadRequest(c, message, map[string]interface{}{"cause": err.Error()})
}

func respond(c *gin.Context, status int, detail ErrorDetail) {
	detail.RequestID = middleware.GetRequestID(c)
	c.AbortWithStatusJSON(status, ErrorResponse{Error: detail})
}

func warn(c *gin.Context, msg, message string, details map[string]interface{}) {
	log := middleware.GetLogger(c)
	if log == nil {
		return
	}
	fields := map[string]interface{}{
		"message": message,
		"path":    c.Request.URL.Path,
	}
	if details != nil {
		fields["details"] = details
	}
	log.Warn(msg, fields)
}

// formatValidationError converts a validator.FieldError to a human-readable message.
func formatValidationError(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Must be a valid email address"
	case "min":
		return "Value is too short or small (minimum: " + err.Param() + ")"
	case "max":
		return "Value is too long or large (maximum: " + err.Param() + ")"
	case "gt":
		return "Must be greater than " + err.Param()
	case "gte":
		return "Must be greater than or equal to " + err.Param()
	case "oneof":
		return "Must be one of: " + err.Param()
	case "url":
		return "Must be a valid URL"
	case "uuid":
		return "Must be a valid UUID"
	default:
		return "Validation failed for tag: " + err.Tag()
	}
}
