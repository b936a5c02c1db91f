package sessions

import (
	"encoding/json"
	"sync"

	"github.com/jrsteele09/promptshare/internal/errors"
	"github.com/jrsteele09/promptshare/sessions/storage"
	"github.com/jrsteele09/promptshare/users"
	"github.com/rs/zerolog/log"
)

// Store holds one browser's session and writes the persisted subset to storage
// after every mutation. All mutations replace whole fields under the lock.
type Store struct {
	namespace string
	repo      storage.Repo

	mu      sync.RWMutex
	session Session

	listenersMu sync.Mutex
	listeners   map[int]func(Session)
	nextID      int
}

// Open creates the store for a browser namespace, restoring the persisted session once.
// A missing or unreadable record starts an empty session.
func Open(repo storage.Repo, namespace string) *Store {
	s := &Store{
		namespace: namespace,
		repo:      repo,
		listeners: make(map[int]func(Session)),
	}
	s.session = s.restore()
	return s
}

func (s *Store) restore() Session {
	data, err := s.repo.Get(s.namespace, StorageKey)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			log.Err(err).Str("namespace", s.namespace).Msg("Failed to read persisted session")
		}
		return Session{}
	}
	var p Persisted
	if err := json.Unmarshal(data, &p); err != nil {
		log.Err(err).Str("namespace", s.namespace).Msg("Discarding corrupt persisted session")
		return Session{}
	}
	return fromPersisted(p)
}

// Namespace identifies the browser this store belongs to
func (s *Store) Namespace() string {
	return s.namespace
}

// Snapshot returns a copy of the current session
func (s *Store) Snapshot() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snapshot := s.session
	snapshot.User = s.session.User.Clone()
	return snapshot
}

// AccessToken returns the stored access token, empty when signed out
func (s *Store) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.AccessToken
}

// SetAuth replaces user and both tokens in one step. No validation is performed.
func (s *Store) SetAuth(user *users.User, accessToken, refreshToken string) {
	s.update(func(session *Session) {
		session.User = user.Clone()
		session.AccessToken = accessToken
		session.RefreshToken = refreshToken
	})
}

// SetUser replaces only the user
func (s *Store) SetUser(user *users.User) {
	s.update(func(session *Session) {
		session.User = user.Clone()
	})
}

// Logout clears the user and both tokens
func (s *Store) Logout() {
	s.update(func(session *Session) {
		session.User = nil
		session.AccessToken = ""
		session.RefreshToken = ""
	})
}

// SetLoading sets the transient loading flag
func (s *Store) SetLoading(loading bool) {
	s.update(func(session *Session) {
		session.IsLoading = loading
	})
}

// Subscribe registers fn to be called with the new session after every mutation
func (s *Store) Subscribe(fn func(Session)) (unsubscribe func()) {
	s.listenersMu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.listenersMu.Unlock()

	return func() {
		s.listenersMu.Lock()
		delete(s.listeners, id)
		s.listenersMu.Unlock()
	}
}

func (s *Store) update(mutate func(*Session)) {
	s.mu.Lock()
	mutate(&s.session)
	snapshot := s.session
	snapshot.User = s.session.User.Clone()
	// Written under the lock so storage sees mutations in order
	s.persist(snapshot)
	s.mu.Unlock()

	s.notify(snapshot)
}

// persist never fails the mutation, the in-memory session stays authoritative
func (s *Store) persist(session Session) {
	data, err := json.Marshal(toPersisted(session))
	if err != nil {
		log.Err(err).Str("namespace", s.namespace).Msg("Failed to encode session")
		return
	}
	if err := s.repo.Put(s.namespace, StorageKey, data); err != nil {
		log.Err(err).Str("namespace", s.namespace).Msg("Failed to persist session")
	}
}

func (s *Store) notify(session Session) {
	s.listenersMu.Lock()
	listeners := make([]func(Session), 0, len(s.listeners))
	for _, fn := range s.listeners {
		listeners = append(listeners, fn)
	}
	s.listenersMu.Unlock()

	for _, fn := range listeners {
		fn(session)
	}
}
