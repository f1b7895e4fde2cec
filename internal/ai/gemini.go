package ai

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/lacson1/UK-property-management/internal/logger"
)

// DefaultBaseURL is the public Gemini REST endpoint.
const DefaultBaseURL = "https://generativelanguage.googleapis.com"

// GeminiConfig configures a GeminiClient.
type GeminiConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	// Timeout bounds a single call. Zero means no client timeout.
	Timeout time.Duration
}

// GeminiClient implements Completer over the generateContent endpoint.
// Calls are made once; there is no retry.
type GeminiClient struct {
	http  *resty.Client
	model string
	log   *logger.Logger
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inlineData,omitempty"`
}

type geminiInlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiGenerationConfig struct {
	ResponseMimeType string                 `json:"responseMimeType,omitempty"`
	ResponseSchema   map[string]interface{} `json:"responseSchema,omitempty"`
}

type geminiRequest struct {
	Contents          []geminiContent         `json:"contents"`
	SystemInstruction *geminiContent          `json:"systemInstruction,omitempty"`
	GenerationConfig  *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content      geminiContent `json:"content"`
		FinishReason string        `json:"finishReason"`
	} `json:"candidates"`
}

type geminiError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// NewGeminiClient creates a client for the configured model.
func NewGeminiClient(cfg GeminiConfig, log *logger.Logger) *GeminiClient {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetHeader("x-goog-api-key", cfg.APIKey)
	if cfg.Timeout > 0 {
		client.SetTimeout(cfg.Timeout)
	}

	return &GeminiClient{http: client, model: cfg.Model, log: log}
}

// Model returns the model name used for every call.
func (c *GeminiClient) Model() string {
	return c.model
}

// Complete sends req and returns the concatenated text of the first candidate.
func (c *GeminiClient) Complete(ctx context.Context, req Request) (string, error) {
	parts := make([]geminiPart, 0, 2)
	if req.Attachment != nil {
		parts = append(parts, geminiPart{InlineData: &geminiInlineData{
			MimeType: req.Attachment.MimeType,
			Data:     base64.StdEncoding.EncodeToString(req.Attachment.Data),
		}})
	}
	parts = append(parts, geminiPart{Text: req.Prompt})

	body := geminiRequest{
		Contents: []geminiContent{{Role: "user", Parts: parts}},
	}
	if req.System != "" {
		body.SystemInstruction = &geminiContent{Parts: []geminiPart{{Text: req.System}}}
	}
	if req.Schema != nil {
		body.GenerationConfig = &geminiGenerationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   req.Schema,
		}
	}

	var result geminiResponse
	var apiErr geminiError
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&result).
		SetError(&apiErr).
		Post(fmt.Sprintf("/v1beta/models/%s:generateContent", c.model))
	if err != nil {
		return "", fmt.Errorf("failed to call generateContent: %w", err)
	}

	if resp.IsError() {
		c.log.Warn("Gemini API returned error", map[string]interface{}{
			"status_code": resp.StatusCode(),
			"status":      apiErr.Error.Status,
			"model":       c.model,
		})
		if apiErr.Error.Message != "" {
			return "", fmt.Errorf("generateContent error: %s (status: %d)", apiErr.Error.Message, resp.StatusCode())
		}
		return "", fmt.Errorf("generateContent error: status %d", resp.StatusCode())
	}

	if len(result.Candidates) == 0 {
		return "", ErrEmptyCompletion
	}

	var text strings.Builder
	for _, part := range result.Candidates[0].Content.Parts {
		text.WriteString(part.Text)
	}
	if strings.TrimSpace(text.String()) == "" {
		return "", ErrEmptyCompletion
	}

	c.log.Debug("Gemini completion received", map[string]interface{}{
		"model":         c.model,
		"finish_reason": result.Candidates[0].FinishReason,
		"length":        text.Len(),
	})

	return text.String(), nil
}
