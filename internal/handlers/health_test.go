package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockPinger is a Pinger returning a fixed error.
type mockPinger struct {
	pingErr error
	calls   int
}

func (m *mockPinger) Ping(ctx context.Context) error {
	m.calls++
	if _, ok := ctx.Deadline(); !ok {
		return errors.New("ping called without a deadline")
	}
	return m.pingErr
}

// setupHealthRouter creates a test Gin router with the health routes.
func setupHealthRouter(handler *HealthHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/health", handler.Health)
	router.GET("/health/ready", handler.Ready)
	router.GET("/api/v1/info", handler.Info)
	return router
}

func TestHealthHandler_Health(t *testing.T) {
	router := setupHealthRouter(NewHealthHandler(&mockPinger{pingErr: errors.New("down")}, "postgres", "test"))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	var response HealthResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, HealthResponse{Status: "healthy"}, response)
}

func TestHealthHandler_Ready(t *testing.T) {
	tests := []struct {
		name           string
		pingErr        error
		expectedStatus int
		expectedBody   ReadyResponse
	}{
		{
			name:           "store reachable",
			expectedStatus: http.StatusOK,
			expectedBody:   ReadyResponse{Status: "ready", Store: "connected", Backend: "postgres"},
		},
		{
			name:           "store unreachable",
			pingErr:        errors.New("connection refused"),
			expectedStatus: http.StatusServiceUnavailable,
			expectedBody:   ReadyResponse{Status: "not_ready", Store: "disconnected", Backend: "postgres"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pinger := &mockPinger{pingErr: tt.pingErr}
			router := setupHealthRouter(NewHealthHandler(pinger, "postgres", "test"))

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, 1, pinger.calls)
			var response ReadyResponse
			require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
			assert.Equal(t, tt.expectedBody, response)
		})
	}
}

func TestHealthHandler_Info(t *testing.T) {
	handler := NewHealthHandler(&mockPinger{}, "memory", "development")
	handler.startTime = time.Now().Add(-2 * time.Hour)
	router := setupHealthRouter(handler)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/info", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	var response InfoResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, APIVersion, response.Version)
	assert.Equal(t, "development", response.Environment)
	assert.Equal(t, "memory", response.Backend)
	assert.Contains(t, response.Uptime, "2h")
}

func TestFormatUptime(t *testing.T) {
	tests := []struct {
		name     string
		duration time.Duration
		expected string
	}{
		{name: "formats seconds only", duration: 45 * time.Second, expected: "0h 0m 45s"},
		{name: "formats minutes and seconds", duration: 5*time.Minute + 30*time.Second, expected: "0h 5m 30s"},
		{name: "formats hours, minutes and seconds", duration: 2*time.Hour + 15*time.Minute + 45*time.Second, expected: "2h 15m 45s"},
		{name: "formats days", duration: 3*24*time.Hour + 5*time.Hour + 30*time.Minute + 15*time.Second, expected: "3d 5h 30m 15s"},
		{name: "formats exactly one day", duration: 24 * time.Hour, expected: "1d 0h 0m 0s"},
		{name: "formats zero duration", duration: 0, expected: "0h 0m 0s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatUptime(tt.duration))
		})
	}
}

func BenchmarkFormatUptime(b *testing.B) {
	duration := 3*24*time.Hour + 5*time.Hour + 30*time.Minute + 15*time.Second

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = formatUptime(duration)
	}
}
