package documents

import "time"

// DocumentResponse is the outward-facing representation of a document.
type DocumentResponse struct {
	ID          string    `json:"id"`
	CompanyID   string    `json:"companyId"`
	UserID      string    `json:"userId,omitempty"`
	FilePath    string    `json:"filePath"`
	FileName    string    `json:"fileName"`
	ContentType string    `json:"contentType"`
	SizeBytes   int64     `json:"sizeBytes"`
	Status      string    `json:"status"`
	UploadedAt  time.Time `json:"uploadedAt"`
}

// ToResponse maps a Document to its JSON shape.
func ToResponse(doc Document) DocumentResponse {
	return DocumentResponse{
		ID:          doc.ID,
		CompanyID:   doc.CompanyID,
		UserID:      doc.UserID,
		FilePath:    doc.FilePath,
		FileName:    doc.FileName,
		ContentType: doc.ContentType,
		SizeBytes:   doc.SizeBytes,
		Status:      doc.Status,
		UploadedAt:  doc.UploadedAt,
	}
}

type statusRequest struct {
	Status string `json:"status"`
}
