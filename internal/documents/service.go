package documents

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"leadbot-backend/internal/companies"
	"leadbot-backend/internal/scan"
	"leadbot-backend/internal/shared/metrics"
	"leadbot-backend/internal/shared/storage/object"
	"leadbot-backend/internal/shared/telemetry"
	"leadbot-backend/internal/shared/util"
)

// CompanyLookup resolves the owner of an upload.
type CompanyLookup interface {
	Get(ctx context.Context, id string) (companies.Company, bool)
}

// Scanner inspects file content before it is stored.
type Scanner interface {
	Scan(ctx context.Context, r io.Reader) error
}

// UploadInput is one file destined for a company folder.
type UploadInput struct {
	CompanyID   string
	UserID      string
	FileName    string
	ContentType string
	Size        int64
	Body        io.ReadSeeker
}

// Service contains business logic for documents.
type Service struct {
	Store     object.ObjectStore
	Repo      DocumentsRepo
	Companies CompanyLookup
	Scanner   Scanner
}

// Upload stores the file under the company folder and records its metadata.
// A metadata failure after a successful storage write is not compensated.
func (s *Service) Upload(ctx context.Context, in UploadInput) (Document, error) {
	fileName, err := util.SanitizeFileName(in.FileName)
	if err != nil {
		return Document{}, &UploadError{FileName: in.FileName, Reason: err.Error()}
	}
	if err := ValidateUpload(fileName, in.Size); err != nil {
		return Document{}, err
	}
	if in.Body == nil {
		return Document{}, &UploadError{FileName: fileName, Reason: "empty body"}
	}
	if in.UserID != "" {
		if _, err := uuid.Parse(in.UserID); err != nil {
			return Document{}, &UploadError{FileName: fileName, Reason: "invalid user id"}
		}
	}

	company, ok := s.Companies.Get(ctx, in.CompanyID)
	if !ok {
		return Document{}, ErrCompanyNotFound
	}

	if err := s.scan(ctx, fileName, in.Body); err != nil {
		metrics.IncDocumentUploadFailed("scan")
		return Document{}, err
	}

	id := uuid.NewString()
	doc := Document{
		ID:          id,
		UserID:      in.UserID,
		CompanyID:   company.ID,
		FilePath:    fmt.Sprintf("%s/%s_%s", company.FolderPath, id, fileName),
		FileName:    fileName,
		ContentType: contentTypeOrDefault(in.ContentType),
		Status:      StatusUploaded,
		UploadedAt:  time.Now().UTC(),
	}

	written, err := s.Store.Put(ctx, doc.FilePath, doc.ContentType, in.Body, in.Size)
	if err != nil {
		metrics.IncDocumentUploadFailed("storage")
		return Document{}, fmt.Errorf("store %s: %w", fileName, err)
	}
	doc.SizeBytes = written

	if err := s.Repo.Insert(ctx, doc); err != nil {
		metrics.IncDocumentUploadFailed("metadata")
		telemetry.Error("document.upload.partial_failure", map[string]any{
			"company_id": company.ID,
			"file_path":  doc.FilePath,
			"error":      err,
		})
		return Document{}, fmt.Errorf("record %s: %w", fileName, err)
	}

	metrics.IncDocumentUploaded()
	telemetry.Info("document.uploaded", map[string]any{
		"company_id":  company.ID,
		"document_id": doc.ID,
		"size_bytes":  doc.SizeBytes,
	})
	return doc, nil
}

func (s *Service) scan(ctx context.Context, fileName string, body io.ReadSeeker) error {
	if s.Scanner == nil {
		return nil
	}
	err := s.Scanner.Scan(ctx, body)
	if _, seekErr := body.Seek(0, io.SeekStart); seekErr != nil {
		return fmt.Errorf("rewind %s: %w", fileName, seekErr)
	}
	switch {
	case err == nil:
		return nil
	case errors.Is(err, scan.ErrInfected):
		telemetry.Warn("document.upload.infected", map[string]any{
			"file_name": fileName,
			"error":     err,
		})
		return err
	default:
		telemetry.Warn("document.scan.skipped", map[string]any{
			"file_name": fileName,
			"error":     err,
		})
		return nil
	}
}

// ListByCompany returns a company's documents. Backend failures yield an empty list.
func (s *Service) ListByCompany(ctx context.Context, companyID string) []Document {
	docs, err := s.Repo.ListByCompany(ctx, strings.TrimSpace(companyID))
	if err != nil {
		telemetry.Error("document.list.failed", map[string]any{
			"company_id": companyID,
			"error":      err,
		})
		return []Document{}
	}
	if docs == nil {
		return []Document{}
	}
	return docs
}

// Open returns the document and a reader over its stored content. The caller
// closes the reader.
func (s *Service) Open(ctx context.Context, documentID string) (Document, io.ReadCloser, error) {
	id, err := parseDocumentID(documentID)
	if err != nil {
		return Document{}, nil, err
	}
	doc, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return Document{}, nil, err
	}
	rc, err := s.Store.Open(ctx, doc.FilePath)
	if err != nil {
		if errors.Is(err, object.ErrNotFound) {
			telemetry.Warn("document.object_missing", map[string]any{
				"company_id":  doc.CompanyID,
				"document_id": doc.ID,
				"file_path":   doc.FilePath,
			})
			return Document{}, nil, fmt.Errorf("%w: object %s missing", ErrNotFound, doc.FilePath)
		}
		return Document{}, nil, fmt.Errorf("open object %s: %w", doc.FilePath, err)
	}
	return doc, rc, nil
}

// Delete removes the stored object and then the metadata row.
func (s *Service) Delete(ctx context.Context, documentID string) error {
	id, err := parseDocumentID(documentID)
	if err != nil {
		return err
	}
	doc, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	return s.remove(ctx, doc)
}

func (s *Service) remove(ctx context.Context, doc Document) error {
	if err := s.Store.Remove(ctx, doc.FilePath); err != nil {
		return fmt.Errorf("remove object %s: %w", doc.FilePath, err)
	}
	if err := s.Repo.Delete(ctx, doc.ID); err != nil {
		return err
	}
	telemetry.Info("document.deleted", map[string]any{
		"company_id":  doc.CompanyID,
		"document_id": doc.ID,
	})
	return nil
}

// UpdateStatus moves a document to another lifecycle state.
func (s *Service) UpdateStatus(ctx context.Context, documentID, status string) error {
	status = NormalizeStatus(status)
	if !ValidStatus(status) {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidInput, status)
	}
	id, err := parseDocumentID(documentID)
	if err != nil {
		return err
	}
	return s.Repo.UpdateStatus(ctx, id, status)
}

// DeleteAllForCompany removes every document of a company, stopping at the first failure.
func (s *Service) DeleteAllForCompany(ctx context.Context, companyID string) error {
	docs, err := s.Repo.ListByCompany(ctx, companyID)
	if err != nil {
		return err
	}
	for _, doc := range docs {
		if err := s.remove(ctx, doc); err != nil {
			return err
		}
	}
	return nil
}

// parseDocumentID maps ids that cannot name a document to ErrNotFound
// before they reach the uuid column.
func parseDocumentID(raw string) (string, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", ErrNotFound
	}
	return id.String(), nil
}

func contentTypeOrDefault(ct string) string {
	ct = strings.TrimSpace(ct)
	if ct == "" {
		return "application/octet-stream"
	}
	return ct
}

var _ companies.DocumentPurger = (*Service)(nil)
