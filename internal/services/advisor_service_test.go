package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/lacson1/UK-property-management/internal/ai"
	"github.com/lacson1/UK-property-management/internal/logger"
)

func TestAdvisorService_Guidance(t *testing.T) {
	st := newDemoStore(t)
	assistant := new(MockAssistant)
	service := NewAdvisorService(st, assistant, FixedClock(today), logger.New("test"))
	assistant.On("Guidance", mock.Anything, "How often is a gas safety check due?").Return("Every **12 months**.", nil)
	assistant.On("Guidance", mock.Anything, "Is a HMO licence needed?").Return("", ai.ErrUnavailable)

	answer, err := service.Guidance(context.Background(), " How often is a gas safety check due? ")
	require.NoError(t, err)
	assert.Equal(t, "Every **12 months**.", answer)

	_, err = service.Guidance(context.Background(), "Is a HMO licence needed?")
	assert.ErrorIs(t, err, ErrAIService)

	_, err = service.Guidance(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestAdvisorService_Suggestions(t *testing.T) {
	st := newDemoStore(t)
	assistant := new(MockAssistant)
	service := NewAdvisorService(st, assistant, FixedClock(today), logger.New("test"))
	assistant.On("Suggestions", mock.Anything, mock.MatchedBy(func(p ai.Portfolio) bool {
		return len(p.Properties) == 5 && len(p.Tenants) == 3 && len(p.Maintenance) == 5
	}), today).Return([]ai.Suggestion{{Title: "Review rent", Suggestion: "22 Baker Street is overdue."}}, nil).Once()
	assistant.On("Suggestions", mock.Anything, mock.Anything, today).Return(nil, errors.New("bad schema"))

	suggestions, err := service.Suggestions(context.Background())
	require.NoError(t, err)
	require.Len(t, suggestions, 1)
	assert.Equal(t, "Review rent", suggestions[0].Title)

	_, err = service.Suggestions(context.Background())
	assert.ErrorIs(t, err, ErrAIService)
}
