package categories

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Update carries the editable category fields. Nil means unchanged.
type Update struct {
	Name        *string
	Description *string
	Color       *string
}

// Repository is the category collection.
type Repository interface {
	List(ctx context.Context) ([]Category, error)
	Get(ctx context.Context, id string) (Category, error)
	Create(ctx context.Context, c Category) error
	Update(ctx context.Context, id string, updates Update) (Category, error)
	Delete(ctx context.Context, id string) error
}

// MemoryRepository keeps categories in process memory.
type MemoryRepository struct {
	mu         sync.RWMutex
	categories map[string]Category
}

// NewMemoryRepository builds an in-memory repository holding seed.
func NewMemoryRepository(seed []Category) *MemoryRepository {
	r := &MemoryRepository{categories: make(map[string]Category, len(seed))}
	for _, c := range seed {
		if c.ID == "" {
			c.ID = uuid.NewString()
		}
		r.categories[c.ID] = c
	}
	return r
}

// List returns every category ordered by name.
func (r *MemoryRepository) List(ctx context.Context) ([]Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Category, 0, len(r.categories))
	for _, c := range r.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Get returns the category by id.
func (r *MemoryRepository) Get(ctx context.Context, id string) (Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.categories[id]
	if !ok {
		return Category{}, ErrNotFound
	}
	return c, nil
}

// Create inserts a new category.
func (r *MemoryRepository) Create(ctx context.Context, c Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.categories[c.ID] = c
	return nil
}

// Update overwrites the editable fields.
func (r *MemoryRepository) Update(ctx context.Context, id string, updates Update) (Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.categories[id]
	if !ok {
		return Category{}, ErrNotFound
	}
	if updates.Name != nil {
		c.Name = *updates.Name
	}
	if updates.Description != nil {
		c.Description = *updates.Description
	}
	if updates.Color != nil {
		c.Color = *updates.Color
	}
	c.UpdatedAt = time.Now().UTC()
	r.categories[id] = c
	return c, nil
}

// Delete removes the category.
func (r *MemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.categories[id]; !ok {
		return ErrNotFound
	}
	delete(r.categories, id)
	return nil
}
