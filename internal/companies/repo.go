package companies

import "context"

// Repo defines table operations on companies.
type Repo interface {
	// Insert stores c. A nil row with a nil error means the backend accepted the
	// write but did not echo the stored row back.
	Insert(ctx context.Context, c Company) (*Company, error)
	FindByID(ctx context.Context, id string) (Company, error)
	List(ctx context.Context) ([]Company, error)
	Update(ctx context.Context, c Company) error
	Delete(ctx context.Context, id string) error
}
