package documents

import "context"

// DocumentsRepo defines persistence operations for document metadata.
type DocumentsRepo interface {
	Insert(ctx context.Context, doc Document) error
	FindByID(ctx context.Context, id string) (Document, error)
	ListByCompany(ctx context.Context, companyID string) ([]Document, error)
	UpdateStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
}
