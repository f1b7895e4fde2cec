// Package ai talks to the generative model behind triage, document
// extraction and the narrative advisors.
package ai

import (
	"context"
	"errors"
)

// ErrUnavailable is returned by every call when AI is disabled.
var ErrUnavailable = errors.New("ai service unavailable")

// ErrEmptyCompletion is returned when the model answers with no text.
var ErrEmptyCompletion = errors.New("ai service returned an empty completion")

// Attachment is binary content sent alongside the prompt.
type Attachment struct {
	MimeType string
	Data     []byte
}

// Request is a single completion call.
type Request struct {
	System     string
	Prompt     string
	Attachment *Attachment
	// Schema, when set, asks for a JSON answer shaped by it.
	Schema map[string]interface{}
}

// Completer is the opaque completion capability.
type Completer interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// Unavailable is the Completer used when AI is switched off.
type Unavailable struct{}

// Complete always fails with ErrUnavailable.
func (Unavailable) Complete(context.Context, Request) (string, error) {
	return "", ErrUnavailable
}
