package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/lacson1/UK-property-management/internal/compliance"
	"github.com/lacson1/UK-property-management/internal/finance"
	"github.com/lacson1/UK-property-management/internal/logger"
	"github.com/lacson1/UK-property-management/internal/models"
	"github.com/lacson1/UK-property-management/internal/store"
)

// PropertyInput is the payload for creating a property.
type PropertyInput struct {
	Address     string                `json:"address" binding:"required"`
	Type        models.PropertyType   `json:"type" binding:"required"`
	Status      models.PropertyStatus `json:"status" binding:"required"`
	RentStatus  models.RentStatus     `json:"rentStatus"`
	CurrentRent decimal.Decimal       `json:"currentRent"`
}

// PropertyPatch holds the property fields to change. Nil fields are kept.
type PropertyPatch struct {
	Address     *string                `json:"address"`
	Type        *models.PropertyType   `json:"type"`
	Status      *models.PropertyStatus `json:"status"`
	RentStatus  *models.RentStatus     `json:"rentStatus"`
	CurrentRent *decimal.Decimal       `json:"currentRent"`
}

// DocumentView is a document with its document-table compliance badge.
type DocumentView struct {
	Document   models.Document   `json:"document"`
	Compliance compliance.Result `json:"compliance"`
}

// PropertyDetail is everything known about one property.
type PropertyDetail struct {
	Property     models.Property             `json:"property"`
	Tenant       *models.Tenant              `json:"tenant"`
	Maintenance  []models.MaintenanceRequest `json:"maintenanceRequests"`
	Transactions []models.Transaction        `json:"transactions"`
	Documents    []DocumentView              `json:"documents"`
	Totals       finance.Totals              `json:"totals"`
}

// PropertyService defines the property operations.
type PropertyService interface {
	List(ctx context.Context) []models.Property

	// Get returns ErrPropertyNotFound for an unknown id.
	Get(ctx context.Context, id string) (*models.Property, error)

	// Create returns ErrInvalidInput when an enum or the rent is out of range.
	Create(ctx context.Context, in PropertyInput) (*models.Property, error)

	// Update applies the non-nil fields of patch.
	// Returns ErrPropertyNotFound or ErrInvalidInput.
	Update(ctx context.Context, id string, patch PropertyPatch) (*models.Property, error)

	// Detail returns the property with its tenant, maintenance, transactions
	// and documents. Returns ErrPropertyNotFound for an unknown id.
	Detail(ctx context.Context, id string) (*PropertyDetail, error)
}

type propertyService struct {
	store *store.Store
	today Clock
	log   *logger.Logger
}

// NewPropertyService creates a new instance of PropertyService.
func NewPropertyService(st *store.Store, today Clock, log *logger.Logger) PropertyService {
	return &propertyService{store: st, today: today, log: log}
}

func (s *propertyService) List(ctx context.Context) []models.Property {
	return s.store.Snapshot().Properties
}

func (s *propertyService) Get(ctx context.Context, id string) (*models.Property, error) {
	state := s.store.Snapshot()
	i := state.PropertyIndex(id)
	if i < 0 {
		return nil, ErrPropertyNotFound
	}
	return &state.Properties[i], nil
}

func (s *propertyService) Create(ctx context.Context, in PropertyInput) (*models.Property, error) {
	if in.RentStatus == "" {
		in.RentStatus = models.RentStatusPaid
	}
	property := models.Property{
		ID:          newID(),
		Address:     strings.TrimSpace(in.Address),
		Type:        in.Type,
		Status:      in.Status,
		RentStatus:  in.RentStatus,
		CurrentRent: in.CurrentRent,
	}
	if err := validateProperty(property); err != nil {
		return nil, err
	}
	property = property.Normalize()

	_, err := s.store.Update(ctx, func(st store.State) (store.State, error) {
		st.Properties = append(st.Properties, property)
		return st, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create property: %w", err)
	}

	s.log.Info("Property created", map[string]interface{}{
		"property_id": property.ID,
		"address":     property.Address,
	})
	return &property, nil
}

func (s *propertyService) Update(ctx context.Context, id string, patch PropertyPatch) (*models.Property, error) {
	var updated models.Property
	_, err := s.store.Update(ctx, func(st store.State) (store.State, error) {
		i := st.PropertyIndex(id)
		if i < 0 {
			return st, ErrPropertyNotFound
		}

		p := st.Properties[i]
		if patch.Address != nil {
			p.Address = strings.TrimSpace(*patch.Address)
		}
		if patch.Type != nil {
			p.Type = *patch.Type
		}
		if patch.Status != nil {
			p.Status = *patch.Status
		}
		if patch.RentStatus != nil {
			p.RentStatus = *patch.RentStatus
		}
		if patch.CurrentRent != nil {
			p.CurrentRent = *patch.CurrentRent
		}
		if err := validateProperty(p); err != nil {
			return st, err
		}

		updated = p.Normalize()
		st.Properties[i] = updated
		return st, nil
	})
	if err != nil {
		return nil, err
	}

	return &updated, nil
}

func (s *propertyService) Detail(ctx context.Context, id string) (*PropertyDetail, error) {
	state := s.store.Snapshot()
	i := state.PropertyIndex(id)
	if i < 0 {
		return nil, ErrPropertyNotFound
	}

	detail := &PropertyDetail{
		Property:     state.Properties[i],
		Maintenance:  make([]models.MaintenanceRequest, 0),
		Transactions: make([]models.Transaction, 0),
		Documents:    make([]DocumentView, 0),
	}
	if tenant, ok := state.TenantFor(id); ok {
		detail.Tenant = &tenant
	}
	for _, m := range state.Maintenance {
		if m.PropertyID == id {
			detail.Maintenance = append(detail.Maintenance, m)
		}
	}
	for _, tx := range state.Transactions {
		if tx.PropertyID == id {
			detail.Transactions = append(detail.Transactions, tx)
		}
	}
	finance.SortNewestFirst(detail.Transactions)
	detail.Totals = finance.ComputeTotals(detail.Transactions)

	today := s.today()
	for _, doc := range state.Documents {
		if doc.PropertyID == id {
			detail.Documents = append(detail.Documents, viewDocument(doc, today))
		}
	}

	return detail, nil
}

func validateProperty(p models.Property) error {
	if p.Address == "" {
		return fmt.Errorf("%w: address is required", ErrInvalidInput)
	}
	if !p.Type.Valid() {
		return fmt.Errorf("%w: unknown property type %q", ErrInvalidInput, p.Type)
	}
	if !p.Status.Valid() {
		return fmt.Errorf("%w: unknown property status %q", ErrInvalidInput, p.Status)
	}
	if !p.RentStatus.Valid() {
		return fmt.Errorf("%w: unknown rent status %q", ErrInvalidInput, p.RentStatus)
	}
	if p.CurrentRent.IsNegative() {
		return fmt.Errorf("%w: rent must not be negative", ErrInvalidInput)
	}
	return nil
}

// viewDocument attaches the document-table badge. Unresolved documents have
// no usable expiry and read as N/A.
func viewDocument(doc models.Document, today models.Date) DocumentView {
	var expiry *models.Date
	if doc.Extraction == models.ExtractionReady {
		expiry = doc.ExpiryDate
	}
	return DocumentView{Document: doc, Compliance: compliance.DocumentStatus(expiry, today)}
}
