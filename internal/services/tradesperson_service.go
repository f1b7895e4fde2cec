package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/lacson1/UK-property-management/internal/logger"
	"github.com/lacson1/UK-property-management/internal/models"
	"github.com/lacson1/UK-property-management/internal/store"
)

// TradespersonInput is the payload for registering a contractor.
type TradespersonInput struct {
	Name    string `json:"name" binding:"required"`
	Trade   string `json:"trade" binding:"required"`
	Contact string `json:"contact" binding:"required"`
}

// TradespersonService defines the contractor directory operations.
type TradespersonService interface {
	List(ctx context.Context) []models.Tradesperson
	Create(ctx context.Context, in TradespersonInput) (*models.Tradesperson, error)
}

type tradespersonService struct {
	store *store.Store
	log   *logger.Logger
}

// NewTradespersonService creates a new instance of TradespersonService.
func NewTradespersonService(st *store.Store, log *logger.Logger) TradespersonService {
	return &tradespersonService{store: st, log: log}
}

func (s *tradespersonService) List(ctx context.Context) []models.Tradesperson {
	return s.store.Snapshot().Tradespeople
}

func (s *tradespersonService) Create(ctx context.Context, in TradespersonInput) (*models.Tradesperson, error) {
	tp := models.Tradesperson{
		ID:      newID(),
		Name:    strings.TrimSpace(in.Name),
		Trade:   strings.TrimSpace(in.Trade),
		Contact: strings.TrimSpace(in.Contact),
	}
	if tp.Name == "" || tp.Trade == "" {
		return nil, fmt.Errorf("%w: name and trade are required", ErrInvalidInput)
	}

	_, err := s.store.Update(ctx, func(st store.State) (store.State, error) {
		st.Tradespeople = append(st.Tradespeople, tp)
		return st, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add tradesperson: %w", err)
	}

	s.log.Info("Tradesperson added", map[string]interface{}{
		"tradesperson_id": tp.ID,
		"trade":           tp.Trade,
	})
	return &tp, nil
}
