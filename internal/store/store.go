// Package store holds the application state of the portfolio.
//
// State is replaced, never edited in place: writers receive a copy, return
// the next state and the store swaps it in atomically.
package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/lacson1/UK-property-management/internal/logger"
	"github.com/lacson1/UK-property-management/internal/models"
)

// State is every collection of the portfolio.
type State struct {
	Properties   []models.Property           `json:"properties"`
	Tenants      []models.Tenant             `json:"tenants"`
	Maintenance  []models.MaintenanceRequest `json:"maintenanceRequests"`
	Transactions []models.Transaction        `json:"transactions"`
	Documents    []models.Document           `json:"documents"`
	Tradespeople []models.Tradesperson       `json:"tradespeople"`
}

// Empty returns a state with every collection initialised.
func Empty() State {
	return State{
		Properties:   []models.Property{},
		Tenants:      []models.Tenant{},
		Maintenance:  []models.MaintenanceRequest{},
		Transactions: []models.Transaction{},
		Documents:    []models.Document{},
		Tradespeople: []models.Tradesperson{},
	}
}

// Clone returns a copy of s that shares no slices with it.
func (s State) Clone() State {
	out := State{
		Properties:   make([]models.Property, len(s.Properties)),
		Tenants:      make([]models.Tenant, len(s.Tenants)),
		Maintenance:  make([]models.MaintenanceRequest, len(s.Maintenance)),
		Transactions: make([]models.Transaction, len(s.Transactions)),
		Documents:    make([]models.Document, len(s.Documents)),
		Tradespeople: make([]models.Tradesperson, len(s.Tradespeople)),
	}
	copy(out.Properties, s.Properties)
	copy(out.Tenants, s.Tenants)
	for i, m := range s.Maintenance {
		out.Maintenance[i] = m.Clone()
	}
	copy(out.Transactions, s.Transactions)
	copy(out.Documents, s.Documents)
	copy(out.Tradespeople, s.Tradespeople)
	return out
}

// PropertyIndex returns the position of the property with id, or -1.
func (s State) PropertyIndex(id string) int {
	for i, p := range s.Properties {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// MaintenanceIndex returns the position of the request with id, or -1.
func (s State) MaintenanceIndex(id string) int {
	for i, m := range s.Maintenance {
		if m.ID == id {
			return i
		}
	}
	return -1
}

// DocumentIndex returns the position of the document with id, or -1.
func (s State) DocumentIndex(id string) int {
	for i, d := range s.Documents {
		if d.ID == id {
			return i
		}
	}
	return -1
}

// TradespersonIndex returns the position of the tradesperson with id, or -1.
func (s State) TradespersonIndex(id string) int {
	for i, tp := range s.Tradespeople {
		if tp.ID == id {
			return i
		}
	}
	return -1
}

// TenantFor returns the tenant of a property, if any.
func (s State) TenantFor(propertyID string) (models.Tenant, bool) {
	for _, t := range s.Tenants {
		if t.PropertyID == propertyID {
			return t, true
		}
	}
	return models.Tenant{}, false
}

// DefaultSaveTimeout bounds one snapshot write.
const DefaultSaveTimeout = 10 * time.Second

// Persister saves and restores state snapshots.
type Persister interface {
	Save(ctx context.Context, state State) error
	// Load returns the latest snapshot, or nil when none exists.
	Load(ctx context.Context) (*State, error)
	Ping(ctx context.Context) error
}

// Store guards the current state. Readers take snapshots; writers are
// serialised through Update.
type Store struct {
	mu          sync.RWMutex
	state       State
	persister   Persister
	saveTimeout time.Duration
	log         *logger.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithPersister saves every new state through p.
func WithPersister(p Persister) Option {
	return func(s *Store) {
		s.persister = p
	}
}

// WithSaveTimeout bounds each snapshot write. Writes outlive the request
// that caused them.
func WithSaveTimeout(d time.Duration) Option {
	return func(s *Store) {
		s.saveTimeout = d
	}
}

// New creates an empty store.
func New(log *logger.Logger, opts ...Option) *Store {
	s := &Store{state: Empty(), saveTimeout: DefaultSaveTimeout, log: log}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// Update applies fn to a copy of the current state and swaps the result in
// when fn succeeds. The snapshot write ignores cancellation of ctx and is
// bounded by the save timeout instead. A persistence failure is logged; the
// in-memory state stays authoritative.
func (s *Store) Update(ctx context.Context, fn func(State) (State, error)) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := fn(s.state.Clone())
	if err != nil {
		return State{}, err
	}
	s.state = next

	if s.persister != nil {
		saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.saveTimeout)
		defer cancel()
		if err := s.persister.Save(saveCtx, next); err != nil {
			s.log.Error("Failed to persist state snapshot", err, nil)
		}
	}

	return next.Clone(), nil
}

// Load initialises the store. A persisted snapshot wins; otherwise the demo
// portfolio is loaded when seed is set.
func (s *Store) Load(ctx context.Context, seed bool, today models.Date) error {
	if s.persister != nil {
		restored, err := s.persister.Load(ctx)
		if err != nil {
			return fmt.Errorf("failed to load state snapshot: %w", err)
		}
		if restored != nil {
			s.replace(normalise(*restored))
			s.log.Info("Restored state snapshot", map[string]interface{}{
				"properties":   len(restored.Properties),
				"transactions": len(restored.Transactions),
			})
			return nil
		}
	}

	if !seed {
		return nil
	}

	demo := Demo(today)
	s.replace(demo)
	if s.persister != nil {
		if err := s.persister.Save(ctx, demo); err != nil {
			return fmt.Errorf("failed to persist demo data: %w", err)
		}
	}
	s.log.Info("Loaded demo portfolio", map[string]interface{}{
		"properties":   len(demo.Properties),
		"tenants":      len(demo.Tenants),
		"maintenance":  len(demo.Maintenance),
		"transactions": len(demo.Transactions),
	})
	return nil
}

// Ping checks the persistence backend. It is a no-op without one.
func (s *Store) Ping(ctx context.Context) error {
	if s.persister == nil {
		return nil
	}
	return s.persister.Ping(ctx)
}

func (s *Store) replace(state State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
}

// normalise replaces nil collections from an older snapshot with empty ones.
func normalise(s State) State {
	if s.Properties == nil {
		s.Properties = []models.Property{}
	}
	if s.Tenants == nil {
		s.Tenants = []models.Tenant{}
	}
	if s.Maintenance == nil {
		s.Maintenance = []models.MaintenanceRequest{}
	}
	if s.Transactions == nil {
		s.Transactions = []models.Transaction{}
	}
	if s.Documents == nil {
		s.Documents = []models.Document{}
	}
	if s.Tradespeople == nil {
		s.Tradespeople = []models.Tradesperson{}
	}
	for i := range s.Maintenance {
		if s.Maintenance[i].Quotes == nil {
			s.Maintenance[i].Quotes = []models.Quote{}
		}
	}
	return s
}
