// Package services holds the business logic of the portfolio: every write
// goes through the application-state store, every AI call through the
// gateway.
package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/lacson1/UK-property-management/internal/ai"
	"github.com/lacson1/UK-property-management/internal/models"
	"github.com/lacson1/UK-property-management/internal/worker"
)

// Service-level errors
var (
	ErrInvalidInput            = errors.New("invalid input")
	ErrPropertyNotFound        = errors.New("property not found")
	ErrPropertyUnavailable     = errors.New("property cannot take a new tenant")
	ErrMaintenanceNotFound     = errors.New("maintenance request not found")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
	ErrTradespersonNotFound    = errors.New("tradesperson not found")
	ErrQuoteNotFound           = errors.New("quote not found")
	ErrQuoteDecided            = errors.New("quote has already been decided")
	ErrDocumentNotFound        = errors.New("document not found")
	ErrNoTransactions          = errors.New("no transactions match the filter")
	ErrAIService               = errors.New("ai service error")
)

// Clock returns today's calendar date.
type Clock func() models.Date

// NewClock returns a Clock that reads the wall clock in loc.
func NewClock(loc *time.Location) Clock {
	return func() models.Date {
		return models.DateOf(time.Now().In(loc))
	}
}

// FixedClock always returns d.
func FixedClock(d models.Date) Clock {
	return func() models.Date {
		return d
	}
}

// Assistant is the AI capability the services depend on.
// *ai.Gateway implements it.
type Assistant interface {
	Triage(ctx context.Context, issue string) ai.TriageResult
	ExtractDocument(ctx context.Context, data []byte, mimeType string) (ai.DocumentInfo, error)
	Guidance(ctx context.Context, question string) (string, error)
	Suggestions(ctx context.Context, portfolio ai.Portfolio, today models.Date) ([]ai.Suggestion, error)
	TaxSummary(ctx context.Context, txs []models.Transaction, propertyLabel, taxYear string) (string, error)
}

// JobQueue accepts extraction jobs. *worker.ExtractionQueue implements it.
type JobQueue interface {
	Push(job worker.ExtractionJob) error
}

func newID() string {
	return uuid.NewString()
}

func stringPtr(s string) *string {
	return &s
}
