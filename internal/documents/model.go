package documents

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrNotFound        = errors.New("document not found")
	ErrInvalidInput    = errors.New("invalid input")
	ErrCompanyNotFound = errors.New("company not found")
)

// Document lifecycle states.
const (
	StatusUploaded   = "uploaded"
	StatusProcessing = "processing"
	StatusProcessed  = "processed"
	StatusFailed     = "failed"
)

// NormalizeStatus lowercases and trims a status value.
func NormalizeStatus(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// ValidStatus reports whether s is a known lifecycle state.
func ValidStatus(s string) bool {
	switch s {
	case StatusUploaded, StatusProcessing, StatusProcessed, StatusFailed:
		return true
	}
	return false
}

// Document is a row of document_metadata. FilePath is always prefixed by the
// owning company's folder path.
type Document struct {
	ID          string
	UserID      string
	CompanyID   string
	FilePath    string
	FileName    string
	ContentType string
	SizeBytes   int64
	Status      string
	UploadedAt  time.Time
}
