package ai

import (
	"fmt"
	"strings"

	"github.com/lacson1/UK-property-management/internal/models"
)

const guidanceSystem = "You are an expert on UK landlord and property management regulations. " +
	"Provide clear, concise, and accurate guidance. Use markdown for formatting."

const taxSummarySystem = "You are a UK property tax assistant preparing summaries for a landlord's " +
	"Self Assessment. Be accurate about allowable expenses and use markdown headings and bullet lists."

const extractionPrompt = "Analyze this document and find the expiration date, 'valid until' date, or expiry date. " +
	"Return the date in YYYY-MM-DD format. If no specific expiry date is found, return null for the expiryDate field. " +
	"Also classify the document as one of: %s."

func triagePrompt(issue string) string {
	return fmt.Sprintf("A tenant has reported the following issue: %q.\n"+
		"Based on this, determine the urgency and suggest an appropriate tradesperson.\n"+
		"Urgency must be one of: %s.", issue, joinUrgencies())
}

func joinUrgencies() string {
	names := make([]string, len(models.Urgencies))
	for i, u := range models.Urgencies {
		names[i] = string(u)
	}
	return strings.Join(names, ", ")
}

func documentTypeNames() []interface{} {
	names := make([]interface{}, len(models.DocumentTypes))
	for i, t := range models.DocumentTypes {
		names[i] = string(t)
	}
	return names
}

func urgencyNames() []interface{} {
	names := make([]interface{}, len(models.Urgencies))
	for i, u := range models.Urgencies {
		names[i] = string(u)
	}
	return names
}

func triageSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "OBJECT",
		"properties": map[string]interface{}{
			"urgency": map[string]interface{}{
				"type":        "STRING",
				"description": "The urgency of the maintenance request.",
				"enum":        urgencyNames(),
			},
			"suggestedTradesperson": map[string]interface{}{
				"type":        "STRING",
				"description": "The type of tradesperson needed, e.g., Plumber, Electrician, General Handyman.",
			},
		},
		"required": []interface{}{"urgency", "suggestedTradesperson"},
	}
}

func extractionSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "OBJECT",
		"properties": map[string]interface{}{
			"expiryDate": map[string]interface{}{
				"type":        "STRING",
				"nullable":    true,
				"description": "The expiry date of the document in YYYY-MM-DD format. If no date is found, this should be null.",
			},
			"documentType": map[string]interface{}{
				"type":        "STRING",
				"description": "The compliance category of the document.",
				"enum":        documentTypeNames(),
			},
		},
		"required": []interface{}{"expiryDate", "documentType"},
	}
}

func suggestionsSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "ARRAY",
		"items": map[string]interface{}{
			"type": "OBJECT",
			"properties": map[string]interface{}{
				"title": map[string]interface{}{
					"type":        "STRING",
					"description": "A short, concise title for the suggestion.",
				},
				"suggestion": map[string]interface{}{
					"type":        "STRING",
					"description": "A detailed, actionable suggestion for the property manager.",
				},
			},
			"required": []interface{}{"title", "suggestion"},
		},
	}
}

func suggestionsPrompt(summary string, today models.Date) string {
	return fmt.Sprintf(`Based on the following UK property portfolio summary, act as an expert property management consultant.
Identify potential risks, opportunities for improvement, and upcoming deadlines.
Provide exactly %d actionable and insightful suggestions to help me manage my portfolio more effectively.
Focus on things like preventative maintenance, tenant relations, compliance, and financial optimization.
Today's date is %s.

%s`, SuggestionCount, today, summary)
}

func taxSummaryPrompt(ledger, propertyLabel, taxYear string) string {
	return fmt.Sprintf(`Prepare a tax summary for the UK tax year %s covering %s.
Group income and expenses by category, give the totals and the net profit, and flag any
expenses that may not be allowable against rental income. Amounts are in GBP.

Transactions:
%s`, taxYear, propertyLabel, ledger)
}
