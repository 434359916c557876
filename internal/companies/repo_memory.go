package companies

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu   sync.RWMutex
	data map[string]Company
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{data: make(map[string]Company)}
}

// Insert stores a new company and echoes it back.
func (r *MemoryRepo) Insert(ctx context.Context, c Company) (*Company, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.data[c.ID]; exists {
		return nil, fmt.Errorf("duplicate company id %s", c.ID)
	}
	r.data[c.ID] = c
	out := c
	return &out, nil
}

// FindByID returns a company by ID.
func (r *MemoryRepo) FindByID(ctx context.Context, id string) (Company, error) {
	if err := ctx.Err(); err != nil {
		return Company{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.data[id]
	if !ok {
		return Company{}, ErrNotFound
	}
	return c, nil
}

// List returns all companies, newest first.
func (r *MemoryRepo) List(ctx context.Context) ([]Company, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	out := make([]Company, 0, len(r.data))
	for _, c := range r.data {
		out = append(out, c)
	}
	r.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// Update overwrites the mutable fields of an existing company.
func (r *MemoryRepo) Update(ctx context.Context, c Company) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.data[c.ID]
	if !ok {
		return ErrNotFound
	}
	c.FolderPath = existing.FolderPath
	c.CreatedAt = existing.CreatedAt
	r.data[c.ID] = c
	return nil
}

// Delete removes a company.
func (r *MemoryRepo) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[id]; !ok {
		return ErrNotFound
	}
	delete(r.data, id)
	return nil
}

var _ Repo = (*MemoryRepo)(nil)
