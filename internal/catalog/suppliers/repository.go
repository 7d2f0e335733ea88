package suppliers

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Update carries the editable supplier fields. Nil means unchanged.
type Update struct {
	Name          *string
	ContactPerson *string
	Email         *string
	Phone         *string
	Address       *string
}

// Repository is the supplier collection.
type Repository interface {
	List(ctx context.Context) ([]Supplier, error)
	Get(ctx context.Context, id string) (Supplier, error)
	Create(ctx context.Context, s Supplier) error
	Update(ctx context.Context, id string, updates Update) (Supplier, error)
	Delete(ctx context.Context, id string) error
}

// MemoryRepository keeps suppliers in process memory.
type MemoryRepository struct {
	mu        sync.RWMutex
	suppliers map[string]Supplier
}

// NewMemoryRepository builds an in-memory repository holding seed.
func NewMemoryRepository(seed []Supplier) *MemoryRepository {
	r := &MemoryRepository{suppliers: make(map[string]Supplier, len(seed))}
	for _, s := range seed {
		if s.ID == "" {
			s.ID = uuid.NewString()
		}
		r.suppliers[s.ID] = s
	}
	return r
}

// List returns every supplier ordered by name.
func (r *MemoryRepository) List(ctx context.Context) ([]Supplier, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Supplier, 0, len(r.suppliers))
	for _, s := range r.suppliers {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Get returns the supplier by id.
func (r *MemoryRepository) Get(ctx context.Context, id string) (Supplier, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.suppliers[id]
	if !ok {
		return Supplier{}, ErrNotFound
	}
	return s, nil
}

// Create inserts a new supplier.
func (r *MemoryRepository) Create(ctx context.Context, s Supplier) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.suppliers[s.ID] = s
	return nil
}

// Update overwrites the editable fields.
func (r *MemoryRepository) Update(ctx context.Context, id string, updates Update) (Supplier, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.suppliers[id]
	if !ok {
		return Supplier{}, ErrNotFound
	}
	applyUpdate(&s, updates)
	s.UpdatedAt = time.Now().UTC()
	r.suppliers[id] = s
	return s, nil
}

// Delete removes the supplier.
func (r *MemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.suppliers[id]; !ok {
		return ErrNotFound
	}
	delete(r.suppliers, id)
	return nil
}

func applyUpdate(s *Supplier, updates Update) {
	if updates.Name != nil {
		s.Name = *updates.Name
	}
	if updates.ContactPerson != nil {
		s.ContactPerson = *updates.ContactPerson
	}
	if updates.Email != nil {
		s.Email = *updates.Email
	}
	if updates.Phone != nil {
		s.Phone = *updates.Phone
	}
	if updates.Address != nil {
		s.Address = *updates.Address
	}
}
