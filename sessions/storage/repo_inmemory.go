package storage

import (
	"fmt"
	"slices"
	"sync"
)

var _ Repo = (*InMemoryRepo)(nil)

// InMemoryRepo is an in-memory implementation of Repo
type InMemoryRepo struct {
	mu     sync.RWMutex
	values map[string]map[string][]byte // namespace -> key -> value
}

// NewInMemoryRepo creates a new in-memory storage repository
func NewInMemoryRepo() *InMemoryRepo {
	return &InMemoryRepo{
		values: make(map[string]map[string][]byte),
	}
}

// Put creates or replaces a value
func (r *InMemoryRepo) Put(namespace, key string, value []byte) error {
	if namespace == "" {
		return fmt.Errorf("namespace is required")
	}
	if key == "" {
		return fmt.Errorf("key is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.values[namespace]; !ok {
		r.values[namespace] = make(map[string][]byte)
	}

	// Copy so the caller can reuse its buffer
	r.values[namespace][key] = slices.Clone(value)
	return nil
}

// Get retrieves a value by namespace and key
func (r *InMemoryRepo) Get(namespace, key string) ([]byte, error) {
	if namespace == "" {
		return nil, fmt.Errorf("namespace is required")
	}
	if key == "" {
		return nil, fmt.Errorf("key is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	value, ok := r.values[namespace][key]
	if !ok {
		return nil, ErrNotFound
	}
	return slices.Clone(value), nil
}

// Delete removes a value
func (r *InMemoryRepo) Delete(namespace, key string) error {
	if namespace == "" {
		return fmt.Errorf("namespace is required")
	}
	if key == "" {
		return fmt.Errorf("key is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	nsValues, ok := r.values[namespace]
	if !ok {
		return nil // Already doesn't exist, no error
	}

	delete(nsValues, key)

	// Clean up empty namespace map
	if len(nsValues) == 0 {
		delete(r.values, namespace)
	}

	return nil
}
