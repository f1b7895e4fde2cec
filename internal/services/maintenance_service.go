package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/lacson1/UK-property-management/internal/logger"
	"github.com/lacson1/UK-property-management/internal/models"
	"github.com/lacson1/UK-property-management/internal/store"
)

// MaintenanceInput is the payload for reporting an issue.
type MaintenanceInput struct {
	PropertyID string `json:"propertyId" binding:"required"`
	Issue      string `json:"issue" binding:"required"`
}

// QuoteInput is a tradesperson's priced offer.
type QuoteInput struct {
	TradespersonID string          `json:"tradespersonId" binding:"required"`
	Amount         decimal.Decimal `json:"amount"`
	Details        string          `json:"details"`
}

// CompletionInput closes a request with its final cost.
type CompletionInput struct {
	Cost            decimal.Decimal `json:"cost"`
	FinalInvoiceURL *string         `json:"finalInvoiceUrl" binding:"omitempty,url"`
}

// MaintenanceService defines the maintenance request lifecycle.
type MaintenanceService interface {
	// List returns requests newest first, optionally for one property.
	List(ctx context.Context, propertyID string) []models.MaintenanceRequest

	// Create triages the issue and records a New request.
	// Returns ErrPropertyNotFound or ErrInvalidInput.
	Create(ctx context.Context, in MaintenanceInput) (*models.MaintenanceRequest, error)

	// Advance moves a request forward in its lifecycle. Completed is only
	// reachable through Complete.
	// Returns ErrMaintenanceNotFound or ErrInvalidStatusTransition.
	Advance(ctx context.Context, id string, status models.MaintenanceStatus) (*models.MaintenanceRequest, error)

	// Assign gives an open request to a tradesperson.
	// Returns ErrMaintenanceNotFound, ErrTradespersonNotFound or ErrInvalidStatusTransition.
	Assign(ctx context.Context, id, tradespersonID string) (*models.MaintenanceRequest, error)

	// AddQuote records a pending quote and moves a fresh request to Awaiting Quote.
	AddQuote(ctx context.Context, id string, in QuoteInput) (*models.MaintenanceRequest, error)

	// DecideQuote approves or rejects a pending quote. Approving rejects
	// every other pending quote and assigns the quoting tradesperson.
	// Returns ErrQuoteNotFound or ErrQuoteDecided.
	DecideQuote(ctx context.Context, id, quoteID string, approve bool) (*models.MaintenanceRequest, error)

	// Complete records the cost, marks the request Completed and books the
	// cost as an Expense transaction linked to the request.
	Complete(ctx context.Context, id string, in CompletionInput) (*models.MaintenanceRequest, error)
}

type maintenanceService struct {
	store     *store.Store
	assistant Assistant
	today     Clock
	log       *logger.Logger
}

// NewMaintenanceService creates a new instance of MaintenanceService.
func NewMaintenanceService(st *store.Store, assistant Assistant, today Clock, log *logger.Logger) MaintenanceService {
	return &maintenanceService{store: st, assistant: assistant, today: today, log: log}
}

func (s *maintenanceService) List(ctx context.Context, propertyID string) []models.MaintenanceRequest {
	requests := s.store.Snapshot().Maintenance
	if propertyID == "" {
		return requests
	}

	filtered := make([]models.MaintenanceRequest, 0)
	for _, m := range requests {
		if m.PropertyID == propertyID {
			filtered = append(filtered, m)
		}
	}
	return filtered
}

func (s *maintenanceService) Create(ctx context.Context, in MaintenanceInput) (*models.MaintenanceRequest, error) {
	issue := strings.TrimSpace(in.Issue)
	if issue == "" {
		return nil, fmt.Errorf("%w: issue is required", ErrInvalidInput)
	}
	if s.store.Snapshot().PropertyIndex(in.PropertyID) < 0 {
		return nil, ErrPropertyNotFound
	}

	// Triage runs outside the store lock; the property is checked again on write.
	triage := s.assistant.Triage(ctx, issue)

	var request models.MaintenanceRequest
	_, err := s.store.Update(ctx, func(st store.State) (store.State, error) {
		i := st.PropertyIndex(in.PropertyID)
		if i < 0 {
			return st, ErrPropertyNotFound
		}

		request = models.MaintenanceRequest{
			ID:                    newID(),
			PropertyID:            in.PropertyID,
			PropertyAddress:       st.Properties[i].Address,
			Issue:                 issue,
			Status:                models.MaintenanceStatusNew,
			Urgency:               triage.Urgency,
			SuggestedTradesperson: triage.SuggestedTradesperson,
			Quotes:                []models.Quote{},
			ReportedDate:          s.today(),
			Cost:                  decimal.Zero,
		}
		st.Maintenance = append([]models.MaintenanceRequest{request}, st.Maintenance...)
		return st, nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Maintenance request created", map[string]interface{}{
		"request_id":   request.ID,
		"property_id":  request.PropertyID,
		"urgency":      request.Urgency,
		"tradesperson": request.SuggestedTradesperson,
	})
	return &request, nil
}

func (s *maintenanceService) Advance(ctx context.Context, id string, status models.MaintenanceStatus) (*models.MaintenanceRequest, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, status)
	}
	if status == models.MaintenanceStatusCompleted {
		return nil, fmt.Errorf("%w: completing a request requires its cost", ErrInvalidStatusTransition)
	}

	return s.modify(ctx, id, func(st *store.State, m *models.MaintenanceRequest) error {
		if status.Rank() <= m.Status.Rank() {
			return fmt.Errorf("%w: %s to %s", ErrInvalidStatusTransition, m.Status, status)
		}
		m.Status = status
		return nil
	})
}

func (s *maintenanceService) Assign(ctx context.Context, id, tradespersonID string) (*models.MaintenanceRequest, error) {
	return s.modify(ctx, id, func(st *store.State, m *models.MaintenanceRequest) error {
		if !m.IsOpen() {
			return fmt.Errorf("%w: request is completed", ErrInvalidStatusTransition)
		}
		if st.TradespersonIndex(tradespersonID) < 0 {
			return ErrTradespersonNotFound
		}
		m.AssignedTradespersonID = stringPtr(tradespersonID)
		return nil
	})
}

func (s *maintenanceService) AddQuote(ctx context.Context, id string, in QuoteInput) (*models.MaintenanceRequest, error) {
	if !in.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: quote amount must be positive", ErrInvalidInput)
	}

	return s.modify(ctx, id, func(st *store.State, m *models.MaintenanceRequest) error {
		if m.Status.Rank() >= models.MaintenanceStatusQuoteApproved.Rank() {
			return fmt.Errorf("%w: request no longer takes quotes", ErrInvalidStatusTransition)
		}
		j := st.TradespersonIndex(in.TradespersonID)
		if j < 0 {
			return ErrTradespersonNotFound
		}

		m.Quotes = append(m.Quotes, models.Quote{
			ID:               newID(),
			TradespersonID:   in.TradespersonID,
			TradespersonName: st.Tradespeople[j].Name,
			Amount:           in.Amount,
			Details:          strings.TrimSpace(in.Details),
			Status:           models.QuoteStatusPending,
		})
		if m.Status.Rank() < models.MaintenanceStatusAwaitingQuote.Rank() {
			m.Status = models.MaintenanceStatusAwaitingQuote
		}
		return nil
	})
}

func (s *maintenanceService) DecideQuote(ctx context.Context, id, quoteID string, approve bool) (*models.MaintenanceRequest, error) {
	return s.modify(ctx, id, func(st *store.State, m *models.MaintenanceRequest) error {
		q := -1
		for i := range m.Quotes {
			if m.Quotes[i].ID == quoteID {
				q = i
				break
			}
		}
		if q < 0 {
			return ErrQuoteNotFound
		}
		if m.Quotes[q].Status != models.QuoteStatusPending {
			return ErrQuoteDecided
		}

		if !approve {
			m.Quotes[q].Status = models.QuoteStatusRejected
			return nil
		}

		if m.Status.Rank() >= models.MaintenanceStatusQuoteApproved.Rank() {
			return fmt.Errorf("%w: a quote was already approved", ErrInvalidStatusTransition)
		}
		for i := range m.Quotes {
			if i != q && m.Quotes[i].Status == models.QuoteStatusPending {
				m.Quotes[i].Status = models.QuoteStatusRejected
			}
		}
		m.Quotes[q].Status = models.QuoteStatusApproved
		m.Status = models.MaintenanceStatusQuoteApproved
		m.AssignedTradespersonID = stringPtr(m.Quotes[q].TradespersonID)
		return nil
	})
}

func (s *maintenanceService) Complete(ctx context.Context, id string, in CompletionInput) (*models.MaintenanceRequest, error) {
	if in.Cost.IsNegative() {
		return nil, fmt.Errorf("%w: cost must not be negative", ErrInvalidInput)
	}

	var expenseID string
	request, err := s.modify(ctx, id, func(st *store.State, m *models.MaintenanceRequest) error {
		if !m.IsOpen() {
			return fmt.Errorf("%w: request is already completed", ErrInvalidStatusTransition)
		}

		m.Status = models.MaintenanceStatusCompleted
		m.Cost = in.Cost
		if in.FinalInvoiceURL != nil {
			m.FinalInvoiceURL = stringPtr(*in.FinalInvoiceURL)
		}
		if !in.Cost.IsPositive() {
			return nil
		}

		expense := models.Transaction{
			ID:                   newID(),
			PropertyID:           m.PropertyID,
			PropertyAddress:      m.PropertyAddress,
			Type:                 models.TransactionTypeExpense,
			Description:          "Maintenance: " + m.Issue,
			Amount:               in.Cost,
			Date:                 s.today(),
			MaintenanceRequestID: stringPtr(m.ID),
		}
		st.Transactions = prependTransaction(st.Transactions, expense)
		m.ExpenseTransactionID = stringPtr(expense.ID)
		expenseID = expense.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Maintenance request completed", map[string]interface{}{
		"request_id":     request.ID,
		"cost":           request.Cost.StringFixed(2),
		"transaction_id": expenseID,
	})
	return request, nil
}

// modify runs fn against the request with id inside a store update.
func (s *maintenanceService) modify(ctx context.Context, id string, fn func(st *store.State, m *models.MaintenanceRequest) error) (*models.MaintenanceRequest, error) {
	var updated models.MaintenanceRequest
	_, err := s.store.Update(ctx, func(st store.State) (store.State, error) {
		i := st.MaintenanceIndex(id)
		if i < 0 {
			return st, ErrMaintenanceNotFound
		}

		m := st.Maintenance[i]
		if err := fn(&st, &m); err != nil {
			return st, err
		}
		st.Maintenance[i] = m
		updated = m.Clone()
		return st, nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}
