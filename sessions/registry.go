package sessions

import (
	"sync"
	"time"

	"github.com/jrsteele09/promptshare/sessions/storage"
)

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

type entry struct {
	store    *Store
	hook     *Hook
	lastUsed time.Time
}

// Registry hands out one Store and Hook per signed in browser so concurrent
// requests from the same browser share state. Browsers without a stored token
// get a fresh store per call and are only cached once the store gains a token.
type Registry struct {
	repo     storage.Repo
	profiles ProfileFetcher

	mu      sync.Mutex
	entries map[string]*entry
}

func NewRegistry(repo storage.Repo, profiles ProfileFetcher) *Registry {
	return &Registry{
		repo:     repo,
		profiles: profiles,
		entries:  make(map[string]*entry),
	}
}

func (r *Registry) get(namespace string) *entry {
	r.mu.Lock()
	if e, ok := r.entries[namespace]; ok {
		e.lastUsed = NowTimeFunc()
		r.mu.Unlock()
		return e
	}
	r.mu.Unlock()

	// Opened outside the lock, storage reads may be slow
	store := Open(r.repo, namespace)
	e := &entry{store: store, hook: NewHook(store, r.profiles)}
	if !store.Snapshot().HasToken() {
		store.Subscribe(func(s Session) {
			if s.HasToken() {
				r.adopt(namespace, e)
			}
		})
		return e
	}
	return r.adopt(namespace, e)
}

// adopt caches e unless another request cached the namespace first
func (r *Registry) adopt(namespace string, e *entry) *entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cached, ok := r.entries[namespace]; ok {
		cached.lastUsed = NowTimeFunc()
		return cached
	}
	e.lastUsed = NowTimeFunc()
	r.entries[namespace] = e
	return e
}

// Store returns the store for a browser
func (r *Registry) Store(namespace string) *Store {
	return r.get(namespace).store
}

// Hook returns the hook bound to the browser's store
func (r *Registry) Hook(namespace string) *Hook {
	return r.get(namespace).hook
}

// Prune drops browsers not seen for longer than idle and returns how many were dropped.
// Their sessions stay in storage and are reopened on the next request.
func (r *Registry) Prune(idle time.Duration) int {
	cutoff := NowTimeFunc().Add(-idle)

	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for namespace, e := range r.entries {
		if e.lastUsed.Before(cutoff) {
			delete(r.entries, namespace)
			removed++
		}
	}
	return removed
}

// Len is the number of cached browsers
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}
