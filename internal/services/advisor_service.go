package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/lacson1/UK-property-management/internal/ai"
	"github.com/lacson1/UK-property-management/internal/logger"
	"github.com/lacson1/UK-property-management/internal/store"
)

// AdvisorService answers landlord questions and reviews the portfolio.
type AdvisorService interface {
	// Guidance returns a markdown answer. Returns ErrInvalidInput or ErrAIService.
	Guidance(ctx context.Context, question string) (string, error)

	// Suggestions reviews the current portfolio. Returns ErrAIService.
	Suggestions(ctx context.Context) ([]ai.Suggestion, error)
}

type advisorService struct {
	store     *store.Store
	assistant Assistant
	today     Clock
	log       *logger.Logger
}

// NewAdvisorService creates a new instance of AdvisorService.
func NewAdvisorService(st *store.Store, assistant Assistant, today Clock, log *logger.Logger) AdvisorService {
	return &advisorService{store: st, assistant: assistant, today: today, log: log}
}

func (s *advisorService) Guidance(ctx context.Context, question string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", fmt.Errorf("%w: question is required", ErrInvalidInput)
	}

	answer, err := s.assistant.Guidance(ctx, question)
	if err != nil {
		s.log.Warn("Guidance request failed", map[string]interface{}{"error": err.Error()})
		return "", fmt.Errorf("%w: %v", ErrAIService, err)
	}
	return answer, nil
}

func (s *advisorService) Suggestions(ctx context.Context) ([]ai.Suggestion, error) {
	state := s.store.Snapshot()
	portfolio := ai.Portfolio{
		Properties:  state.Properties,
		Tenants:     state.Tenants,
		Maintenance: state.Maintenance,
	}

	suggestions, err := s.assistant.Suggestions(ctx, portfolio, s.today())
	if err != nil {
		s.log.Warn("Portfolio suggestions failed", map[string]interface{}{"error": err.Error()})
		return nil, fmt.Errorf("%w: %v", ErrAIService, err)
	}
	return suggestions, nil
}
