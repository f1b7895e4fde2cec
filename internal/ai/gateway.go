package ai

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/lacson1/UK-property-management/internal/logger"
	"github.com/lacson1/UK-property-management/internal/models"
)

// Fallback triage applied whenever the model cannot be used.
const (
	FallbackUrgency      = models.UrgencyMedium
	FallbackTradesperson = "General Handyman"
)

// SuggestionCount is the number of suggestions requested from the model.
const SuggestionCount = 10

var (
	// ErrEmptyDocument is returned when there is nothing to extract from.
	ErrEmptyDocument = errors.New("document payload is empty")
	// ErrUnsupportedMimeType is returned for files the model cannot read.
	ErrUnsupportedMimeType = errors.New("unsupported document mime type")
	// ErrInvalidResponse is returned when a structured answer fails validation.
	ErrInvalidResponse = errors.New("invalid response from ai service")
)

var supportedMimeTypes = map[string]bool{
	"application/pdf": true,
	"image/png":       true,
	"image/jpeg":      true,
	"image/webp":      true,
	"image/heic":      true,
	"image/heif":      true,
}

// Cache stores narrative answers keyed by request hash.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// TriageResult is the model's classification of a maintenance issue.
type TriageResult struct {
	Urgency               models.MaintenanceUrgency `json:"urgency" validate:"required,urgency"`
	SuggestedTradesperson string                    `json:"suggestedTradesperson" validate:"required"`
}

// DocumentInfo is what the model read from an uploaded document.
type DocumentInfo struct {
	ExpiryDate   *models.Date        `json:"expiryDate"`
	DocumentType models.DocumentType `json:"documentType"`
}

// Suggestion is one portfolio recommendation.
type Suggestion struct {
	Title      string `json:"title" validate:"required"`
	Suggestion string `json:"suggestion" validate:"required"`
}

// Portfolio is the state summarised for suggestions.
type Portfolio struct {
	Properties  []models.Property           `json:"properties"`
	Tenants     []models.Tenant             `json:"tenants"`
	Maintenance []models.MaintenanceRequest `json:"maintenanceRequests"`
}

// Gateway adapts the completion capability to the operations the
// application needs, with fallbacks where a failure must not surface.
type Gateway struct {
	completer Completer
	cache     Cache
	log       *logger.Logger
	validate  *validator.Validate
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithCache serves narrative answers from c when possible.
func WithCache(c Cache) Option {
	return func(g *Gateway) {
		g.cache = c
	}
}

// NewGateway creates a gateway over completer.
func NewGateway(completer Completer, log *logger.Logger, opts ...Option) *Gateway {
	v := validator.New()
	_ = v.RegisterValidation("urgency", func(fl validator.FieldLevel) bool {
		return models.MaintenanceUrgency(fl.Field().String()).Valid()
	})

	g := &Gateway{completer: completer, log: log, validate: v}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Triage classifies a maintenance issue. It never fails: any problem with
// the call or the answer yields the Medium / General Handyman fallback.
func (g *Gateway) Triage(ctx context.Context, issue string) TriageResult {
	fallback := TriageResult{Urgency: FallbackUrgency, SuggestedTradesperson: FallbackTradesperson}

	text, err := g.completer.Complete(ctx, Request{
		Prompt: triagePrompt(issue),
		Schema: triageSchema(),
	})
	if err != nil {
		g.log.Warn("Triage failed, using fallback", map[string]interface{}{"error": err.Error()})
		return fallback
	}

	var result TriageResult
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &result); err != nil {
		g.log.Warn("Triage response was not JSON, using fallback", map[string]interface{}{"error": err.Error()})
		return fallback
	}
	result.SuggestedTradesperson = strings.TrimSpace(result.SuggestedTradesperson)

	if err := g.validate.Struct(result); err != nil {
		g.log.Warn("Triage response failed validation, using fallback", map[string]interface{}{
			"error":   err.Error(),
			"urgency": string(result.Urgency),
		})
		return fallback
	}

	return result
}

// ExtractDocument reads the expiry date and category of a document.
// Model failures are absorbed into an unknown date of type Other. An error
// is returned only when the input cannot be sent at all.
func (g *Gateway) ExtractDocument(ctx context.Context, data []byte, mimeType string) (DocumentInfo, error) {
	if len(data) == 0 {
		return DocumentInfo{}, ErrEmptyDocument
	}
	mimeType = strings.ToLower(strings.TrimSpace(mimeType))
	if !supportedMimeTypes[mimeType] {
		return DocumentInfo{}, fmt.Errorf("%w: %q", ErrUnsupportedMimeType, mimeType)
	}

	fallback := DocumentInfo{DocumentType: models.DocumentTypeOther}

	text, err := g.completer.Complete(ctx, Request{
		Prompt:     fmt.Sprintf(extractionPrompt, strings.Join(documentTypeStrings(), ", ")),
		Attachment: &Attachment{MimeType: mimeType, Data: data},
		Schema:     extractionSchema(),
	})
	if err != nil {
		g.log.Warn("Document extraction failed, using fallback", map[string]interface{}{"error": err.Error()})
		return fallback, nil
	}

	info, ok := parseDocumentInfo(text)
	if !ok {
		g.log.Warn("Document extraction response was not in the expected format", map[string]interface{}{
			"response": truncate(text, 200),
		})
		return fallback, nil
	}
	return info, nil
}

// parseDocumentInfo coerces a loosely shaped answer into DocumentInfo.
// An unknown category becomes Other and anything that is not a date string
// becomes a null date.
func parseDocumentInfo(text string) (DocumentInfo, bool) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &raw); err != nil {
		return DocumentInfo{}, false
	}

	info := DocumentInfo{DocumentType: models.DocumentTypeOther}

	var docType string
	if err := json.Unmarshal(raw["documentType"], &docType); err == nil && models.DocumentType(docType).Valid() {
		info.DocumentType = models.DocumentType(docType)
	}

	var expiry string
	if err := json.Unmarshal(raw["expiryDate"], &expiry); err == nil {
		if d, err := models.ParseDate(strings.TrimSpace(expiry)); err == nil {
			info.ExpiryDate = &d
		}
	}

	return info, true
}

// Guidance answers a free-form regulation question in markdown.
func (g *Gateway) Guidance(ctx context.Context, question string) (string, error) {
	return g.narrative(ctx, Request{System: guidanceSystem, Prompt: question})
}

// Suggestions asks for portfolio recommendations. A malformed answer is an error.
func (g *Gateway) Suggestions(ctx context.Context, portfolio Portfolio, today models.Date) ([]Suggestion, error) {
	summary, err := summarisePortfolio(portfolio)
	if err != nil {
		return nil, err
	}

	text, err := g.completer.Complete(ctx, Request{
		Prompt: suggestionsPrompt(summary, today),
		Schema: suggestionsSchema(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch suggestions: %w", err)
	}

	var suggestions []Suggestion
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &suggestions); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	for i := range suggestions {
		if err := g.validate.Struct(suggestions[i]); err != nil {
			return nil, fmt.Errorf("%w: suggestion %d: %v", ErrInvalidResponse, i, err)
		}
	}
	if suggestions == nil {
		suggestions = []Suggestion{}
	}
	return suggestions, nil
}

// TaxSummary writes a markdown tax summary of txs for one tax year.
func (g *Gateway) TaxSummary(ctx context.Context, txs []models.Transaction, propertyLabel, taxYear string) (string, error) {
	var ledger strings.Builder
	for _, tx := range txs {
		fmt.Fprintf(&ledger, "- %s | %s | %s | %s | %s\n",
			tx.Date, tx.PropertyAddress, tx.Type, tx.Description, models.FormatGBP(tx.Amount))
	}
	return g.narrative(ctx, Request{
		System: taxSummarySystem,
		Prompt: taxSummaryPrompt(ledger.String(), propertyLabel, taxYear),
	})
}

// narrative completes a free-text request, consulting the cache first.
func (g *Gateway) narrative(ctx context.Context, req Request) (string, error) {
	key := g.cacheKey(req)
	if g.cache != nil {
		if cached, ok, err := g.cache.Get(ctx, key); err != nil {
			g.log.Warn("Narrative cache read failed", map[string]interface{}{"error": err.Error()})
		} else if ok {
			return cached, nil
		}
	}

	text, err := g.completer.Complete(ctx, req)
	if err != nil {
		return "", err
	}

	if g.cache != nil {
		if err := g.cache.Set(ctx, key, text); err != nil {
			g.log.Warn("Narrative cache write failed", map[string]interface{}{"error": err.Error()})
		}
	}
	return text, nil
}

// cacheKey hashes everything that determines a narrative answer.
func (g *Gateway) cacheKey(req Request) string {
	model := ""
	if named, ok := g.completer.(interface{ Model() string }); ok {
		model = named.Model()
	}
	sum := sha256.Sum256([]byte(model + "\x00" + req.System + "\x00" + req.Prompt))
	return hex.EncodeToString(sum[:])
}

func summarisePortfolio(p Portfolio) (string, error) {
	properties, err := json.MarshalIndent(p.Properties, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode properties: %w", err)
	}
	tenants, err := json.MarshalIndent(p.Tenants, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode tenants: %w", err)
	}
	maintenance, err := json.MarshalIndent(p.Maintenance, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode maintenance requests: %w", err)
	}

	return fmt.Sprintf(`Here is a summary of my UK property portfolio:
- Total Properties: %d
- Properties Details: %s
- Active Tenants: %d
- Tenants Details: %s
- Maintenance Requests: %d
- Maintenance Details: %s`,
		len(p.Properties), properties, len(p.Tenants), tenants, len(p.Maintenance), maintenance), nil
}

func documentTypeStrings() []string {
	names := make([]string, len(models.DocumentTypes))
	for i, t := range models.DocumentTypes {
		names[i] = string(t)
	}
	return names
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
