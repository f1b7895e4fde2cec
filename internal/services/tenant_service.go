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

// TenantInput is the payload for placing a tenant in a property.
type TenantInput struct {
	Name           string               `json:"name" binding:"required"`
	Email          string               `json:"email" binding:"required,email"`
	Phone          string               `json:"phone" binding:"required"`
	PropertyID     string               `json:"propertyId" binding:"required"`
	LeaseStartDate models.Date          `json:"leaseStartDate"`
	LeaseEndDate   models.Date          `json:"leaseEndDate"`
	DepositAmount  decimal.Decimal      `json:"depositAmount"`
	DepositScheme  models.DepositScheme `json:"depositScheme" binding:"required"`
}

// TenantService defines the tenant operations.
type TenantService interface {
	List(ctx context.Context) []models.Tenant

	// Create places a tenant and marks the property Occupied.
	// Returns ErrPropertyNotFound, ErrPropertyUnavailable when the property
	// already has a tenant or is under offer, or ErrInvalidInput.
	Create(ctx context.Context, in TenantInput) (*models.Tenant, error)
}

type tenantService struct {
	store *store.Store
	log   *logger.Logger
}

// NewTenantService creates a new instance of TenantService.
func NewTenantService(st *store.Store, log *logger.Logger) TenantService {
	return &tenantService{store: st, log: log}
}

func (s *tenantService) List(ctx context.Context) []models.Tenant {
	return s.store.Snapshot().Tenants
}

func (s *tenantService) Create(ctx context.Context, in TenantInput) (*models.Tenant, error) {
	if err := validateTenant(in); err != nil {
		return nil, err
	}

	var tenant models.Tenant
	_, err := s.store.Update(ctx, func(st store.State) (store.State, error) {
		i := st.PropertyIndex(in.PropertyID)
		if i < 0 {
			return st, ErrPropertyNotFound
		}
		property := st.Properties[i]
		if _, taken := st.TenantFor(property.ID); taken || !property.IsLettable() {
			return st, fmt.Errorf("%w: %s", ErrPropertyUnavailable, property.Address)
		}

		tenant = models.Tenant{
			ID:              newID(),
			Name:            strings.TrimSpace(in.Name),
			Email:           strings.TrimSpace(in.Email),
			Phone:           strings.TrimSpace(in.Phone),
			PropertyID:      property.ID,
			PropertyAddress: property.Address,
			LeaseStartDate:  in.LeaseStartDate,
			LeaseEndDate:    in.LeaseEndDate,
			DepositAmount:   in.DepositAmount,
			DepositScheme:   in.DepositScheme,
		}
		st.Tenants = append(st.Tenants, tenant)

		property.Status = models.PropertyStatusOccupied
		st.Properties[i] = property.Normalize()
		return st, nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Tenant added", map[string]interface{}{
		"tenant_id":   tenant.ID,
		"property_id": tenant.PropertyID,
	})
	return &tenant, nil
}

func validateTenant(in TenantInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if in.LeaseStartDate.IsZero() || in.LeaseEndDate.IsZero() {
		return fmt.Errorf("%w: lease start and end dates are required", ErrInvalidInput)
	}
	if !in.LeaseEndDate.After(in.LeaseStartDate) {
		return fmt.Errorf("%w: lease must end after it starts", ErrInvalidInput)
	}
	if in.DepositAmount.IsNegative() {
		return fmt.Errorf("%w: deposit must not be negative", ErrInvalidInput)
	}
	if !in.DepositScheme.Valid() {
		return fmt.Errorf("%w: unknown deposit scheme %q", ErrInvalidInput, in.DepositScheme)
	}
	return nil
}
