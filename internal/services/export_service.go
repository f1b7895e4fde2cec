package services

import (
	"context"
	"fmt"

	"github.com/lacson1/UK-property-management/internal/export"
	"github.com/lacson1/UK-property-management/internal/finance"
	"github.com/lacson1/UK-property-management/internal/logger"
	"github.com/lacson1/UK-property-management/internal/store"
)

// ExportFile is a rendered download.
type ExportFile struct {
	FileName    string
	ContentType string
	Data        []byte
}

// ExportService renders portfolio collections and tax summaries as files.
type ExportService interface {
	// Export renders an entity collection. Unknown entities or formats
	// return ErrInvalidInput.
	Export(ctx context.Context, entity, format string) (*ExportFile, error)
	TaxSummaryPDF(ctx context.Context, summary export.TaxSummary) (*ExportFile, error)
}

type exportService struct {
	store *store.Store
	today Clock
	log   *logger.Logger
}

// NewExportService creates a new instance of ExportService.
func NewExportService(st *store.Store, today Clock, log *logger.Logger) ExportService {
	return &exportService{store: st, today: today, log: log}
}

func (s *exportService) Export(ctx context.Context, entity, format string) (*ExportFile, error) {
	e, err := export.ParseEntity(entity)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	f, err := export.ParseFormat(format)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	state := s.store.Snapshot()
	var ds export.Dataset
	switch e {
	case export.EntityProperties:
		ds = export.PropertiesDataset(state.Properties)
	case export.EntityTransactions:
		ds = export.TransactionsDataset(state.Transactions)
	case export.EntityMaintenance:
		ds = export.MaintenanceDataset(state.Maintenance, state.Tradespeople)
	case export.EntityTenants:
		ds = export.TenantsDataset(state.Tenants)
	}

	data, err := export.Render(ds, f)
	if err != nil {
		return nil, fmt.Errorf("failed to render %s export: %w", e, err)
	}

	s.log.Debug("Rendered export", map[string]interface{}{
		"entity": e,
		"format": f,
		"rows":   len(ds.Rows),
		"bytes":  len(data),
	})

	return &ExportFile{
		FileName:    export.FileName(e, f, s.today()),
		ContentType: f.ContentType(),
		Data:        data,
	}, nil
}

func (s *exportService) TaxSummaryPDF(ctx context.Context, summary export.TaxSummary) (*ExportFile, error) {
	if summary.TaxYear == "" || summary.Body == "" {
		return nil, fmt.Errorf("%w: tax year and summary are required", ErrInvalidInput)
	}
	ty, err := finance.ParseTaxYear(summary.TaxYear)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	summary.TaxYear = ty.Label()

	if summary.PropertyID == "" {
		summary.PropertyID = finance.AllProperties
	}
	if summary.PropertyID != finance.AllProperties && s.store.Snapshot().PropertyIndex(summary.PropertyID) < 0 {
		return nil, fmt.Errorf("%w: unknown property %q", ErrInvalidInput, summary.PropertyID)
	}

	data, err := export.TaxSummaryPDF(summary)
	if err != nil {
		return nil, err
	}
	return &ExportFile{
		FileName:    export.TaxSummaryFileName(summary.TaxYear, summary.PropertyID),
		ContentType: export.FormatPDF.ContentType(),
		Data:        data,
	}, nil
}
