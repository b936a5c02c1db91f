package authflowrepo

import (
	"sync"
	"time"

	"github.com/jrsteele09/promptshare/internal/errors"
)

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

// InMemoryRepo is a thread-safe in-memory implementation of the Repo interface.
// States older than the ttl are treated as absent and pruned on write.
type InMemoryRepo struct {
	mu     sync.Mutex
	ttl    time.Duration
	states map[string]*AuthFlowState
}

// NewInMemoryRepo creates a new in-memory auth flow state repository
func NewInMemoryRepo(ttl time.Duration) *InMemoryRepo {
	return &InMemoryRepo{
		ttl:    ttl,
		states: make(map[string]*AuthFlowState),
	}
}

// Upsert stores or updates an auth flow state
func (r *InMemoryRepo) Upsert(state string, authState *AuthFlowState) error {
	if state == "" {
		return errors.Wrapf(errors.ErrInvalidInput, "state cannot be empty")
	}
	if authState == nil {
		return errors.Wrapf(errors.ErrInvalidInput, "authState cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.pruneLocked()

	// Create a copy to prevent external modifications
	stored := *authState
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = NowTimeFunc()
	}
	r.states[state] = &stored

	return nil
}

// Consume retrieves an auth flow state and deletes it in the same step
func (r *InMemoryRepo) Consume(state string) (*AuthFlowState, error) {
	if state == "" {
		return nil, errors.Wrapf(ErrStateNotFound, "state cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	authState, exists := r.states[state]
	if !exists {
		return nil, errors.Wrapf(ErrStateNotFound, "state not found")
	}
	delete(r.states, state)

	if r.expired(authState) {
		return nil, errors.Wrapf(ErrStateNotFound, "state expired")
	}

	found := *authState
	return &found, nil
}

// Delete removes an auth flow state
func (r *InMemoryRepo) Delete(state string) error {
	if state == "" {
		return errors.Wrapf(errors.ErrInvalidInput, "state cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.states, state)
	return nil
}

// Len returns the number of pending states, expired ones included until pruned
func (r *InMemoryRepo) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.states)
}

func (r *InMemoryRepo) expired(s *AuthFlowState) bool {
	return r.ttl > 0 && NowTimeFunc().Sub(s.CreatedAt) > r.ttl
}

func (r *InMemoryRepo) pruneLocked() {
	for state, s := range r.states {
		if r.expired(s) {
			delete(r.states, state)
		}
	}
}
