// Package export renders tabular datasets as CSV, PDF and XLSX files.
package export

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lacson1/UK-property-management/internal/models"
)

// ErrUnknownEntity is returned for an export entity that does not exist.
var ErrUnknownEntity = errors.New("unknown export entity")

// ErrUnknownFormat is returned for an unsupported file format.
var ErrUnknownFormat = errors.New("unknown export format")

// Entity names an exportable collection.
type Entity string

const (
	EntityProperties   Entity = "properties"
	EntityTransactions Entity = "transactions"
	EntityMaintenance  Entity = "maintenance"
	EntityTenants      Entity = "tenants"
)

// ParseEntity validates an entity name.
func ParseEntity(s string) (Entity, error) {
	switch e := Entity(strings.ToLower(s)); e {
	case EntityProperties, EntityTransactions, EntityMaintenance, EntityTenants:
		return e, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownEntity, s)
}

// Format is an output file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatPDF  Format = "pdf"
	FormatXLSX Format = "xlsx"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatCSV, FormatPDF, FormatXLSX:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// ContentType is the MIME type served for the format.
func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatPDF:
		return "application/pdf"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "application/octet-stream"
}

// Column is one field of a dataset. Key heads CSV output and Label heads
// the PDF and XLSX tables.
type Column struct {
	Key   string
	Label string
}

// Cell holds a raw value for CSV and its display form for documents.
type Cell struct {
	Raw     string
	Display string
}

// Dataset is a titled table ready to be rendered.
type Dataset struct {
	Entity  Entity
	Title   string
	Columns []Column
	Rows    [][]Cell
}

func textCell(s string) Cell {
	return Cell{Raw: s, Display: s}
}

// PropertiesDataset lists properties without their ids.
func PropertiesDataset(properties []models.Property) Dataset {
	ds := Dataset{
		Entity: EntityProperties,
		Title:  "Property List",
		Columns: []Column{
			{Key: "address", Label: "Address"},
			{Key: "type", Label: "Type"},
			{Key: "status", Label: "Status"},
			{Key: "rentStatus", Label: "Rent Status"},
			{Key: "currentRent", Label: "Current Rent"},
		},
		Rows: make([][]Cell, 0, len(properties)),
	}
	for _, p := range properties {
		ds.Rows = append(ds.Rows, []Cell{
			textCell(p.Address),
			textCell(string(p.Type)),
			textCell(string(p.Status)),
			textCell(string(p.RentStatus)),
			{Raw: p.CurrentRent.String(), Display: models.FormatGBP(p.CurrentRent)},
		})
	}
	return ds
}

// TransactionsDataset lists transactions without transaction or property ids.
func TransactionsDataset(txs []models.Transaction) Dataset {
	ds := Dataset{
		Entity: EntityTransactions,
		Title:  "Transaction History",
		Columns: []Column{
			{Key: "date", Label: "Date"},
			{Key: "propertyAddress", Label: "Property"},
			{Key: "description", Label: "Description"},
			{Key: "type", Label: "Type"},
			{Key: "amount", Label: "Amount"},
		},
		Rows: make([][]Cell, 0, len(txs)),
	}
	for _, tx := range txs {
		ds.Rows = append(ds.Rows, []Cell{
			textCell(tx.Date.String()),
			textCell(tx.PropertyAddress),
			textCell(tx.Description),
			textCell(string(tx.Type)),
			{Raw: tx.Amount.String(), Display: models.FormatGBP(tx.Amount)},
		})
	}
	return ds
}

// MaintenanceDataset lists maintenance requests with the assigned
// tradesperson resolved to a name, or N/A.
func MaintenanceDataset(requests []models.MaintenanceRequest, tradespeople []models.Tradesperson) Dataset {
	names := make(map[string]string, len(tradespeople))
	for _, tp := range tradespeople {
		names[tp.ID] = tp.Name
	}

	ds := Dataset{
		Entity: EntityMaintenance,
		Title:  "Maintenance Records",
		Columns: []Column{
			{Key: "reportedDate", Label: "Date"},
			{Key: "property", Label: "Property"},
			{Key: "issue", Label: "Issue"},
			{Key: "status", Label: "Status"},
			{Key: "urgency", Label: "Urgency"},
			{Key: "assignedTo", Label: "Assigned To"},
			{Key: "cost", Label: "Cost"},
		},
		Rows: make([][]Cell, 0, len(requests)),
	}
	for _, r := range requests {
		assigned := "N/A"
		if r.AssignedTradespersonID != nil {
			if name, ok := names[*r.AssignedTradespersonID]; ok {
				assigned = name
			}
		}
		ds.Rows = append(ds.Rows, []Cell{
			textCell(r.ReportedDate.String()),
			textCell(r.PropertyAddress),
			textCell(r.Issue),
			textCell(string(r.Status)),
			textCell(string(r.Urgency)),
			textCell(assigned),
			textCell(models.FormatGBP(r.Cost)),
		})
	}
	return ds
}

// TenantsDataset lists tenants without their ids.
func TenantsDataset(tenants []models.Tenant) Dataset {
	ds := Dataset{
		Entity: EntityTenants,
		Title:  "Tenant List",
		Columns: []Column{
			{Key: "name", Label: "Name"},
			{Key: "email", Label: "Email"},
			{Key: "phone", Label: "Phone"},
			{Key: "propertyAddress", Label: "Property"},
			{Key: "leaseStartDate", Label: "Lease Start"},
			{Key: "leaseEndDate", Label: "Lease End"},
			{Key: "depositAmount", Label: "Deposit"},
			{Key: "depositScheme", Label: "Deposit Scheme"},
		},
		Rows: make([][]Cell, 0, len(tenants)),
	}
	for _, t := range tenants {
		ds.Rows = append(ds.Rows, []Cell{
			textCell(t.Name),
			textCell(t.Email),
			textCell(t.Phone),
			textCell(t.PropertyAddress),
			textCell(t.LeaseStartDate.String()),
			textCell(t.LeaseEndDate.String()),
			{Raw: t.DepositAmount.String(), Display: models.FormatGBP(t.DepositAmount)},
			textCell(string(t.DepositScheme)),
		})
	}
	return ds
}

// Render encodes ds in the requested format.
func Render(ds Dataset, format Format) ([]byte, error) {
	switch format {
	case FormatCSV:
		return CSV(ds)
	case FormatPDF:
		return PDF(ds)
	case FormatXLSX:
		return XLSX(ds)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// FileName is the download name of an export made today.
func FileName(entity Entity, format Format, today models.Date) string {
	return fmt.Sprintf("%s-%s.%s", entity, today, format)
}
