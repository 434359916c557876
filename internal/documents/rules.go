package documents

import (
	"fmt"
	"path/filepath"
	"strings"

	"leadbot-backend/internal/shared/util"
)

const (
	// MaxFileSize is the per-file upload limit.
	MaxFileSize = 10 << 20
	// MaxFiles is the number of files accepted in one submission.
	MaxFiles = 10
)

var allowedExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
	".txt":  true,
	".csv":  true,
}

// UploadError names the file a rule rejected.
type UploadError struct {
	FileName string
	Reason   string
}

func (e *UploadError) Error() string {
	if e.FileName == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.FileName, e.Reason)
}

func (e *UploadError) Is(target error) bool {
	return target == ErrInvalidInput
}

// ValidateUpload checks the name, extension and size of one file.
func ValidateUpload(fileName string, size int64) error {
	if _, err := util.SanitizeFileName(fileName); err != nil {
		return &UploadError{FileName: fileName, Reason: "nom de fichier invalide"}
	}
	ext := strings.ToLower(filepath.Ext(fileName))
	if !allowedExtensions[ext] {
		return &UploadError{FileName: fileName, Reason: "type de fichier non autorisé"}
	}
	if size > MaxFileSize {
		return &UploadError{FileName: fileName, Reason: "fichier trop volumineux (max 10MB)"}
	}
	return nil
}

// ValidateFileCount checks the number of files in a submission.
func ValidateFileCount(n int) error {
	if n > MaxFiles {
		return &UploadError{Reason: fmt.Sprintf("maximum %d fichiers autorisés", MaxFiles)}
	}
	return nil
}
