package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/flowspec/flowspec/internal/core/spec"
	"github.com/flowspec/flowspec/pkg/validation"
)

// SpecRegistry provides an in-memory store for graph declarations
// PRINCIPLES:
// - KISS: Simple map-based storage
// - SRP: Only responsible for declaration persistence
// - Thread-safe
type SpecRegistry struct {
	mu    sync.RWMutex
	specs map[string]*spec.GraphSpec
}

// NewSpecRegistry creates an empty in-memory registry
func NewSpecRegistry() *SpecRegistry {
	return &SpecRegistry{
		specs: make(map[string]*spec.GraphSpec),
	}
}

// Save stores a declaration after gating its shape. The stored copy is
// detached from the caller's value.
func (r *SpecRegistry) Save(ctx context.Context, g *spec.GraphSpec) error {
	if err := validation.CheckSpec(g); err != nil {
		return fmt.Errorf("invalid graph spec: %w", err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.specs[g.ID] = g.Clone()
	return nil
}

// Get returns a copy of the stored declaration
func (r *SpecRegistry) Get(ctx context.Context, id string) (*spec.GraphSpec, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	g, ok := r.specs[id]
	if !ok {
		return nil, spec.ErrSpecNotFound
	}
	return g.Clone(), nil
}

// List returns copies of every stored declaration ordered by id
func (r *SpecRegistry) List(ctx context.Context) ([]*spec.GraphSpec, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*spec.GraphSpec, 0, len(r.specs))
	for _, g := range r.specs {
		out = append(out, g.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Delete removes a declaration
func (r *SpecRegistry) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.specs[id]; !ok {
		return spec.ErrSpecNotFound
	}
	delete(r.specs, id)
	return nil
}
