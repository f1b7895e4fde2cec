package export

import (
	"fmt"
	"strings"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

const (
	titleRowHeight  = 12.0
	headerRowHeight = 8.0
	bodyRowHeight   = 7.0
)

var (
	titleStyle  = props.Text{Size: 16, Style: fontstyle.Bold}
	headerStyle = props.Text{Size: 9, Style: fontstyle.Bold, Top: 1}
	cellStyle   = props.Text{Size: 8, Top: 1}
	lineStyle   = props.Text{Size: 11, Top: 1}
)

// PDF renders a titled table with one column per dataset column.
// A dataset without rows still carries its title and header.
func PDF(ds Dataset) ([]byte, error) {
	grid := len(ds.Columns)
	if grid == 0 {
		grid = 1
	}

	m := maroto.New(config.NewBuilder().
		WithMaxGridSize(grid).
		WithLeftMargin(14).
		WithRightMargin(14).
		WithTopMargin(14).
		Build())

	m.AddRows(text.NewRow(titleRowHeight, ds.Title, titleStyle))

	header := make([]core.Col, 0, len(ds.Columns))
	for _, col := range ds.Columns {
		header = append(header, text.NewCol(1, col.Label, headerStyle))
	}
	m.AddRow(headerRowHeight, header...)

	for _, row := range ds.Rows {
		cols := make([]core.Col, 0, len(ds.Columns))
		for i := range ds.Columns {
			value := ""
			if i < len(row) {
				value = row[i].Display
			}
			cols = append(cols, text.NewCol(1, value, cellStyle))
		}
		m.AddAutoRow(cols...)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate %s pdf: %w", ds.Entity, err)
	}
	return doc.GetBytes(), nil
}

// TaxSummary is an AI-written tax summary ready for download.
type TaxSummary struct {
	PropertyID    string `json:"propertyId"`
	PropertyLabel string `json:"propertyLabel"`
	TaxYear       string `json:"taxYear"`
	Body          string `json:"summary"`
}

var markdownStripper = strings.NewReplacer("#### ", "", "### ", "", "**", "", "*", "")

// StripMarkdown removes the heading and emphasis markers a summary uses.
func StripMarkdown(s string) string {
	return markdownStripper.Replace(s)
}

// TaxSummaryPDF renders the summary under a fixed title with property and
// tax year lines.
func TaxSummaryPDF(summary TaxSummary) ([]byte, error) {
	m := maroto.New(config.NewBuilder().
		WithLeftMargin(14).
		WithRightMargin(14).
		WithTopMargin(14).
		Build())

	m.AddRows(
		text.NewRow(titleRowHeight, "Property Tax Summary Report", titleStyle),
		text.NewRow(headerRowHeight, "Property: "+summary.PropertyLabel, lineStyle),
		text.NewRow(headerRowHeight, "Tax Year: "+summary.TaxYear, lineStyle),
	)

	for _, line := range strings.Split(StripMarkdown(summary.Body), "\n") {
		if strings.TrimSpace(line) == "" {
			m.AddRow(4)
			continue
		}
		m.AddAutoRow(text.NewCol(12, line, lineStyle))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate tax summary pdf: %w", err)
	}
	return doc.GetBytes(), nil
}

// TaxSummaryFileName is "tax-summary-<YYYY-YY>-<propertyId|all>.pdf".
func TaxSummaryFileName(taxYear, propertyID string) string {
	if propertyID == "" {
		propertyID = "all"
	}
	return fmt.Sprintf("tax-summary-%s-%s.pdf", strings.ReplaceAll(taxYear, "/", "-"), propertyID)
}
