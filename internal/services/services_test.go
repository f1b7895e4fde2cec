package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/lacson1/UK-property-management/internal/ai"
	"github.com/lacson1/UK-property-management/internal/logger"
	"github.com/lacson1/UK-property-management/internal/models"
	"github.com/lacson1/UK-property-management/internal/store"
	"github.com/lacson1/UK-property-management/internal/worker"
)

// MockAssistant is a mock implementation of Assistant for testing
type MockAssistant struct {
	mock.Mock
}

func (m *MockAssistant) Triage(ctx context.Context, issue string) ai.TriageResult {
	args := m.Called(ctx, issue)
	return args.Get(0).(ai.TriageResult)
}

func (m *MockAssistant) ExtractDocument(ctx context.Context, data []byte, mimeType string) (ai.DocumentInfo, error) {
	args := m.Called(ctx, data, mimeType)
	return args.Get(0).(ai.DocumentInfo), args.Error(1)
}

func (m *MockAssistant) Guidance(ctx context.Context, question string) (string, error) {
	args := m.Called(ctx, question)
	return args.String(0), args.Error(1)
}

func (m *MockAssistant) Suggestions(ctx context.Context, portfolio ai.Portfolio, today models.Date) ([]ai.Suggestion, error) {
	args := m.Called(ctx, portfolio, today)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ai.Suggestion), args.Error(1)
}

func (m *MockAssistant) TaxSummary(ctx context.Context, txs []models.Transaction, propertyLabel, taxYear string) (string, error) {
	args := m.Called(ctx, txs, propertyLabel, taxYear)
	return args.String(0), args.Error(1)
}

// MockQueue is a mock implementation of JobQueue for testing
type MockQueue struct {
	mock.Mock
}

func (m *MockQueue) Push(job worker.ExtractionJob) error {
	args := m.Called(job)
	return args.Error(0)
}

var today = models.NewDate(2026, 10, 15)

// newDemoStore returns a store loaded with the demo portfolio for today.
func newDemoStore(t *testing.T) *store.Store {
	t.Helper()
	st := store.New(logger.New("test"))
	require.NoError(t, st.Load(context.Background(), true, today))
	return st
}
