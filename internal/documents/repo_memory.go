package documents

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory implementation of DocumentsRepo.
type MemoryRepo struct {
	mu    sync.RWMutex
	data  map[string]Document // id -> document
	paths map[string]string   // file path -> id
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		data:  make(map[string]Document),
		paths: make(map[string]string),
	}
}

// Insert stores a document. File paths are unique.
func (r *MemoryRepo) Insert(ctx context.Context, doc Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.paths[doc.FilePath]; exists {
		return fmt.Errorf("duplicate file path %s", doc.FilePath)
	}
	r.data[doc.ID] = doc
	r.paths[doc.FilePath] = doc.ID
	return nil
}

// FindByID returns a document by ID.
func (r *MemoryRepo) FindByID(ctx context.Context, id string) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	doc, ok := r.data[id]
	if !ok {
		return Document{}, ErrNotFound
	}
	return doc, nil
}

// ListByCompany returns the documents of a company, newest first.
func (r *MemoryRepo) ListByCompany(ctx context.Context, companyID string) ([]Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	docs := make([]Document, 0)
	for _, doc := range r.data {
		if doc.CompanyID == companyID {
			docs = append(docs, doc)
		}
	}
	r.mu.RUnlock()

	sort.Slice(docs, func(i, j int) bool {
		return docs[i].UploadedAt.After(docs[j].UploadedAt)
	})
	return docs, nil
}

// UpdateStatus sets the status of a document.
func (r *MemoryRepo) UpdateStatus(ctx context.Context, id, status string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.data[id]
	if !ok {
		return ErrNotFound
	}
	doc.Status = status
	r.data[id] = doc
	return nil
}

// Delete removes a document.
func (r *MemoryRepo) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.data[id]
	if !ok {
		return ErrNotFound
	}
	delete(r.data, id)
	delete(r.paths, doc.FilePath)
	return nil
}

var _ DocumentsRepo = (*MemoryRepo)(nil)
