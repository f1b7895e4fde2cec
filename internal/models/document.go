package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// Wire sentinels for a document's expiry date while it is not yet known.
const (
	ExpiryExtracting       = "extracting..."
	ExpiryExtractionFailed = "extraction-failed"
)

// ExtractionState tracks the asynchronous AI extraction of a document.
type ExtractionState string

const (
	ExtractionPending ExtractionState = "pending"
	ExtractionReady   ExtractionState = "ready"
	ExtractionFailed  ExtractionState = "failed"
)

// Document is an uploaded file attached to a property.
// It is created as a pending placeholder on upload and updated exactly once
// when extraction resolves. The ID never changes between the two writes.
type Document struct {
	ID           string
	PropertyID   string
	FileName     string
	FileType     string
	DocumentType *DocumentType
	FileDataURL  string
	Extraction   ExtractionState
	ExpiryDate   *Date
	UploadedAt   time.Time
}

// documentJSON is the wire representation of a Document.
// ExpiryDate and DocumentType carry sentinels while extraction is unresolved.
type documentJSON struct {
	ID           string          `json:"id"`
	PropertyID   string          `json:"propertyId"`
	FileName     string          `json:"fileName"`
	FileType     string          `json:"fileType"`
	DocumentType *string         `json:"documentType"`
	FileDataURL  string          `json:"fileDataUrl"`
	Extraction   ExtractionState `json:"extraction"`
	ExpiryDate   *string         `json:"expiryDate"`
	UploadedAt   time.Time       `json:"uploadedAt"`
}

// ExpiryLabel returns the wire value of the expiry date, or nil when unknown.
func (d Document) ExpiryLabel() *string {
	var label string
	switch d.Extraction {
	case ExtractionPending:
		label = ExpiryExtracting
	case ExtractionFailed:
		label = ExpiryExtractionFailed
	default:
		if d.ExpiryDate == nil {
			return nil
		}
		label = d.ExpiryDate.String()
	}
	return &label
}

// MarshalJSON implements json.Marshaler.
func (d Document) MarshalJSON() ([]byte, error) {
	out := documentJSON{
		ID:          d.ID,
		PropertyID:  d.PropertyID,
		FileName:    d.FileName,
		FileType:    d.FileType,
		FileDataURL: d.FileDataURL,
		Extraction:  d.Extraction,
		ExpiryDate:  d.ExpiryLabel(),
		UploadedAt:  d.UploadedAt,
	}

	switch {
	case d.Extraction == ExtractionPending:
		sentinel := ExpiryExtracting
		out.DocumentType = &sentinel
	case d.DocumentType != nil:
		docType := string(*d.DocumentType)
		out.DocumentType = &docType
	}

	return json.Marshal(out)
}

// UnmarshalJSON implements json.Unmarshaler.
// It accepts the sentinel strings and restores the extraction state from them
// when the explicit extraction field is absent.
func (d *Document) UnmarshalJSON(data []byte) error {
	var in documentJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return fmt.Errorf("failed to unmarshal document: %w", err)
	}

	doc := Document{
		ID:          in.ID,
		PropertyID:  in.PropertyID,
		FileName:    in.FileName,
		FileType:    in.FileType,
		FileDataURL: in.FileDataURL,
		Extraction:  in.Extraction,
		UploadedAt:  in.UploadedAt,
	}

	if in.ExpiryDate != nil {
		switch *in.ExpiryDate {
		case ExpiryExtracting:
			if doc.Extraction == "" {
				doc.Extraction = ExtractionPending
			}
		case ExpiryExtractionFailed:
			if doc.Extraction == "" {
				doc.Extraction = ExtractionFailed
			}
		default:
			expiry, err := ParseDate(*in.ExpiryDate)
			if err != nil {
				return err
			}
			doc.ExpiryDate = &expiry
		}
	}
	if doc.Extraction == "" {
		doc.Extraction = ExtractionReady
	}

	if in.DocumentType != nil && *in.DocumentType != ExpiryExtracting {
		docType := DocumentType(*in.DocumentType)
		doc.DocumentType = &docType
	}

	*d = doc
	return nil
}
