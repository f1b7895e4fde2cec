package errors

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lacson1/UK-property-management/internal/logger"
	"github.com/lacson1/UK-property-management/internal/middleware"
)

func init() {
	// Set Gin to test mode to suppress logs during tests
	gin.SetMode(gin.TestMode)
}

// setupTestContext creates a test Gin context with logger and request ID in context.
func setupTestContext() (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/test", nil)
	c.Set(middleware.LoggerKey, logger.New("test"))
	c.Set(middleware.RequestIDKey, "test-request-id")
	return c, w
}

// parseErrorResponse parses the JSON response into an ErrorResponse struct.
func parseErrorResponse(t *testing.T, body *bytes.Buffer) ErrorResponse {
	t.Helper()
	var response ErrorResponse
	require.NoError(t, json.Unmarshal(body.Bytes(), &response), "Failed to parse error response JSON")
	return response
}

type tenantRequest struct {
	Name  string `validate:"required"`
	Email string `validate:"required,email"`
	Rent  int    `validate:"gte=0"`
}

func validationErrorsFor(t *testing.T, req tenantRequest) validator.ValidationErrors {
	t.Helper()
	err := validator.New().Struct(req)
	var validationErrors validator.ValidationErrors
	require.True(t, errors.As(err, &validationErrors))
	return validationErrors
}

func TestHelpers(t *testing.T) {
	tests := []struct {
		name          string
		write         func(c *gin.Context)
		wantStatus    int
		wantCode      string
		wantMessage   string
		wantRetryable bool
	}{
		{"not found", func(c *gin.Context) { NotFound(c, "Property not found") }, http.StatusNotFound, ErrNotFound, "Property not found", false},
		{"bad request", func(c *gin.Context) { BadRequest(c, "Invalid input", nil) }, http.StatusBadRequest, ErrBadRequest, "Invalid input", false},
		{"conflict", func(c *gin.Context) { Conflict(c, "Property already has a tenant") }, http.StatusConflict, ErrConflict, "Property already has a tenant", false},
		{"ai service", func(c *gin.Context) { AIServiceError(c, "Guidance is unavailable", errors.New("quota")) }, http.StatusBadGateway, ErrAIService, "Guidance is unavailable", true},
		{"unavailable", func(c *gin.Context) { ServiceUnavailable(c, "Store is unreachable") }, http.StatusServiceUnavailable, ErrServiceUnavailable, "Store is unreachable", true},
		{"internal", func(c *gin.Context) { InternalServerError(c, "Failed to build export", errors.New("disk full")) }, http.StatusInternalServerError, ErrInternalServer, "Failed to build export", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := setupTestContext()

			tt.write(c)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.True(t, c.IsAborted())
			response := parseErrorResponse(t, w.Body)
			assert.Equal(t, tt.wantCode, response.Error.Code)
			assert.Equal(t, tt.wantMessage, response.Error.Message)
			assert.Equal(t, tt.wantRetryable, response.Error.Retryable)
			assert.Equal(t, "test-request-id", response.Error.RequestID)
		})
	}
}

func TestInternalServerError_HidesCause(t *testing.T) {
	c, w := setupTestContext()

	InternalServerError(c, "Failed to build export", errors.New("pq: password authentication failed"))

	assert.NotContains(t, w.Body.String(), "password")
	assert.Len(t, c.Errors, 1)
}

func TestBadRequest_WithDetails(t *testing.T) {
	c, w := setupTestContext()

	BadRequest(c, "Invalid format", map[string]interface{}{"format": "docx"})

	response := parseErrorResponse(t, w.Body)
	assert.Equal(t, "docx", response.Error.Details["format"])
}

func TestValidationError(t *testing.T) {
	c, w := setupTestContext()

	ValidationError(c, validationErrorsFor(t, tenantRequest{Email: "not-an-email", Rent: -1}))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	response := parseErrorResponse(t, w.Body)
	assert.Equal(t, ErrValidation, response.Error.Code)
	assert.Equal(t, "This field is required", response.Error.Details["Name"])
	assert.Equal(t, "Must be a valid email address", response.Error.Details["Email"])
	assert.Equal(t, "Must be greater than or equal to 0", response.Error.Details["Rent"])
}

func TestBindError(t *testing.T) {
	t.Run("validation errors", func(t *testing.T) {
		c, w := setupTestContext()

		BindError(c, validationErrorsFor(t, tenantRequest{Email: "a@b.co"}), "Invalid request body")

		assert.Equal(t, ErrValidation, parseErrorResponse(t, w.Body).Error.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		c, w := setupTestContext()
		var target map[string]interface{}
		err := json.Unmarshal([]byte(`{"name":`), &target)

		BindError(c, err, "Invalid request body")

		response := parseErrorResponse(t, w.Body)
		assert.Equal(t, ErrBadRequest, response.Error.Code)
		assert.Equal(t, "Invalid request body", response.Error.Message)
		assert.NotEmpty(t, response.Error.Details["cause"])
	})
}

func TestErrorResponseWithoutContext(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/test", nil)

	NotFound(c, "Not found")

	response := parseErrorResponse(t, w.Body)
	assert.Equal(t, ErrNotFound, response.Error.Code)
	assert.Empty(t, response.Error.RequestID)
}
