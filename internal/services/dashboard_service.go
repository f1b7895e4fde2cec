package services

import (
	"context"
	"math"

	"github.com/lacson1/UK-property-management/internal/compliance"
	"github.com/lacson1/UK-property-management/internal/models"
	"github.com/lacson1/UK-property-management/internal/store"
)

// Dashboard limits.
const (
	RecentMaintenanceCount = 5
	ComplianceHorizonDays  = compliance.DashboardNoticeDays
)

// Overview is the dashboard summary of the portfolio.
type Overview struct {
	TotalProperties    int                         `json:"totalProperties"`
	OccupiedProperties int                         `json:"occupiedProperties"`
	OccupancyRate      int                         `json:"occupancyRate"`
	OpenMaintenance    int                         `json:"openMaintenance"`
	RentOverdue        int                         `json:"rentOverdue"`
	RecentMaintenance  []models.MaintenanceRequest `json:"recentMaintenance"`
	ComplianceAlerts   []compliance.Alert          `json:"complianceAlerts"`
}

// DashboardService builds the dashboard overview.
type DashboardService interface {
	Overview(ctx context.Context) Overview
}

type dashboardService struct {
	store *store.Store
	today Clock
}

// NewDashboardService creates a new instance of DashboardService.
func NewDashboardService(st *store.Store, today Clock) DashboardService {
	return &dashboardService{store: st, today: today}
}

func (s *dashboardService) Overview(ctx context.Context) Overview {
	state := s.store.Snapshot()

	overview := Overview{TotalProperties: len(state.Properties)}
	addresses := make(map[string]string, len(state.Properties))
	for _, p := range state.Properties {
		addresses[p.ID] = p.Address
		if p.Status == models.PropertyStatusOccupied {
			overview.OccupiedProperties++
		}
		if p.RentStatus == models.RentStatusOverdue {
			overview.RentOverdue++
		}
	}
	if overview.TotalProperties > 0 {
		rate := float64(overview.OccupiedProperties) / float64(overview.TotalProperties) * 100
		overview.OccupancyRate = int(math.Round(rate))
	}

	for _, m := range state.Maintenance {
		if m.IsOpen() {
			overview.OpenMaintenance++
		}
	}
	recent := state.Maintenance
	if len(recent) > RecentMaintenanceCount {
		recent = recent[:RecentMaintenanceCount]
	}
	overview.RecentMaintenance = recent

	overview.ComplianceAlerts = compliance.Alerts(state.Documents, addresses, s.today(), ComplianceHorizonDays)
	return overview
}
