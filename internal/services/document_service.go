package services

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lacson1/UK-property-management/internal/ai"
	"github.com/lacson1/UK-property-management/internal/logger"
	"github.com/lacson1/UK-property-management/internal/models"
	"github.com/lacson1/UK-property-management/internal/store"
	"github.com/lacson1/UK-property-management/internal/worker"
)

// ErrInvalidDataURL is returned when an upload's data URL cannot be decoded.
var ErrInvalidDataURL = errors.New("invalid data URL")

// UploadInput is a raw file upload.
type UploadInput struct {
	PropertyID string
	FileName   string
	MimeType   string
	Data       []byte
}

// DataURLInput is a file upload encoded as a data URL.
type DataURLInput struct {
	PropertyID string `json:"propertyId" binding:"required"`
	FileName   string `json:"fileName" binding:"required"`
	DataURL    string `json:"fileDataUrl" binding:"required"`
}

// DocumentService defines the document operations.
type DocumentService interface {
	// List returns documents with their compliance badge, optionally for one property.
	List(ctx context.Context, propertyID string) []DocumentView

	// Get returns ErrDocumentNotFound for an unknown id.
	Get(ctx context.Context, id string) (*DocumentView, error)

	// Upload stores a pending placeholder and queues its extraction.
	// The placeholder is returned straight away; if the job cannot be queued
	// it comes back already marked failed.
	// Returns ErrPropertyNotFound or ErrInvalidInput.
	Upload(ctx context.Context, in UploadInput) (*models.Document, error)

	// UploadDataURL is Upload for a data URL payload. A payload that does not
	// decode is stored as failed rather than rejected.
	UploadDataURL(ctx context.Context, in DataURLInput) (*models.Document, error)

	// HandleExtraction resolves the placeholder named by the job.
	HandleExtraction(ctx context.Context, job worker.ExtractionJob) error
}

type documentService struct {
	store     *store.Store
	assistant Assistant
	queue     JobQueue
	today     Clock
	log       *logger.Logger
}

// NewDocumentService creates a new instance of DocumentService.
func NewDocumentService(st *store.Store, assistant Assistant, queue JobQueue, today Clock, log *logger.Logger) DocumentService {
	return &documentService{store: st, assistant: assistant, queue: queue, today: today, log: log}
}

func (s *documentService) List(ctx context.Context, propertyID string) []DocumentView {
	today := s.today()
	views := make([]DocumentView, 0)
	for _, doc := range s.store.Snapshot().Documents {
		if propertyID == "" || doc.PropertyID == propertyID {
			views = append(views, viewDocument(doc, today))
		}
	}
	return views
}

func (s *documentService) Get(ctx context.Context, id string) (*DocumentView, error) {
	state := s.store.Snapshot()
	i := state.DocumentIndex(id)
	if i < 0 {
		return nil, ErrDocumentNotFound
	}
	view := viewDocument(state.Documents[i], s.today())
	return &view, nil
}

func (s *documentService) Upload(ctx context.Context, in UploadInput) (*models.Document, error) {
	doc, err := s.createPlaceholder(ctx, in.PropertyID, in.FileName, in.MimeType, encodeDataURL(in.MimeType, in.Data), models.ExtractionPending)
	if err != nil {
		return nil, err
	}

	job := worker.ExtractionJob{
		DocumentID: doc.ID,
		PropertyID: doc.PropertyID,
		MimeType:   in.MimeType,
		Data:       in.Data,
	}
	if err := s.queue.Push(job); err != nil {
		s.log.Warn("Extraction job rejected", map[string]interface{}{
			"document_id": doc.ID,
			"error":       err.Error(),
		})
		return s.resolve(ctx, doc.ID, nil)
	}

	s.log.Info("Document uploaded", map[string]interface{}{
		"document_id": doc.ID,
		"property_id": doc.PropertyID,
		"mime_type":   in.MimeType,
		"size_bytes":  len(in.Data),
	})
	return doc, nil
}

func (s *documentService) UploadDataURL(ctx context.Context, in DataURLInput) (*models.Document, error) {
	mimeType, data, err := parseDataURL(in.DataURL)
	if err != nil {
		s.log.Warn("Document payload could not be decoded", map[string]interface{}{
			"property_id": in.PropertyID,
			"file_name":   in.FileName,
			"error":       err.Error(),
		})
		return s.createPlaceholder(ctx, in.PropertyID, in.FileName, mimeType, in.DataURL, models.ExtractionFailed)
	}

	return s.Upload(ctx, UploadInput{
		PropertyID: in.PropertyID,
		FileName:   in.FileName,
		MimeType:   mimeType,
		Data:       data,
	})
}

func (s *documentService) HandleExtraction(ctx context.Context, job worker.ExtractionJob) error {
	info, err := s.assistant.ExtractDocument(ctx, job.Data, job.MimeType)
	if err != nil {
		s.log.Warn("Document could not be sent for extraction", map[string]interface{}{
			"document_id": job.DocumentID,
			"error":       err.Error(),
		})
		_, err = s.resolve(ctx, job.DocumentID, nil)
		return err
	}

	_, err = s.resolve(ctx, job.DocumentID, &info)
	return err
}

func (s *documentService) createPlaceholder(ctx context.Context, propertyID, fileName, mimeType, dataURL string, state models.ExtractionState) (*models.Document, error) {
	fileName = strings.TrimSpace(fileName)
	if fileName == "" {
		return nil, fmt.Errorf("%w: file name is required", ErrInvalidInput)
	}

	doc := models.Document{
		ID:          newID(),
		PropertyID:  propertyID,
		FileName:    fileName,
		FileType:    mimeType,
		FileDataURL: dataURL,
		Extraction:  state,
		UploadedAt:  time.Now().UTC(),
	}
	_, err := s.store.Update(ctx, func(st store.State) (store.State, error) {
		if st.PropertyIndex(propertyID) < 0 {
			return st, ErrPropertyNotFound
		}
		st.Documents = append([]models.Document{doc}, st.Documents...)
		return st, nil
	})
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// resolve writes the extraction outcome onto the placeholder with id. A nil
// info marks it failed. A document that is no longer pending is left alone.
func (s *documentService) resolve(ctx context.Context, id string, info *ai.DocumentInfo) (*models.Document, error) {
	var resolved models.Document
	_, err := s.store.Update(ctx, func(st store.State) (store.State, error) {
		i := st.DocumentIndex(id)
		if i < 0 {
			return st, ErrDocumentNotFound
		}

		doc := st.Documents[i]
		if doc.Extraction == models.ExtractionPending {
			if info == nil {
				doc.Extraction = models.ExtractionFailed
			} else {
				docType := info.DocumentType
				doc.Extraction = models.ExtractionReady
				doc.DocumentType = &docType
				doc.ExpiryDate = info.ExpiryDate
			}
			st.Documents[i] = doc
		}
		resolved = doc
		return st, nil
	})
	if err != nil {
		s.log.Warn("Extraction result could not be stored", map[string]interface{}{
			"document_id": id,
			"error":       err.Error(),
		})
		return nil, err
	}

	fields := map[string]interface{}{
		"document_id": id,
		"extraction":  resolved.Extraction,
	}
	if label := resolved.ExpiryLabel(); label != nil {
		fields["expiry_date"] = *label
	}
	s.log.Info("Document extraction resolved", fields)
	return &resolved, nil
}

func encodeDataURL(mimeType string, data []byte) string {
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// parseDataURL splits a base64 data URL into its mime type and payload.
// The mime type is returned even when the payload is unusable.
func parseDataURL(s string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(s, "data:")
	if !ok {
		return "", nil, fmt.Errorf("%w: missing data: prefix", ErrInvalidDataURL)
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, fmt.Errorf("%w: missing payload", ErrInvalidDataURL)
	}
	mimeType, ok := strings.CutSuffix(meta, ";base64")
	if !ok {
		return meta, nil, fmt.Errorf("%w: payload is not base64", ErrInvalidDataURL)
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return mimeType, nil, fmt.Errorf("%w: %v", ErrInvalidDataURL, err)
	}
	return mimeType, data, nil
}
