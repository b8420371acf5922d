// Package session holds the per-(tenant, session) routing state: the
// active audio route and the provider the session is locked to.
package session

import (
	"sync"

	"github.com/tjfontaine/halo-conversation-gateway/internal/domain"
)

// Key identifies one conversation session within a tenant.
type Key struct {
	Tenant  string
	Session string
}

// State is the mutable routing record for one session. A zero
// LockedProvider means the session has not pinned a provider yet.
// State is owned by the Store; callers mutate it through Store.Update.
type State struct {
	AudioRoute     domain.AudioRoute
	LockedProvider domain.ProviderID
}

// Store is the process-wide session registry. One mutex serializes all
// get-or-create-then-mutate sequences; sessions live for the process
// lifetime and are never evicted.
type Store struct {
	mu       sync.Mutex
	sessions map[Key]*State
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{sessions: make(map[Key]*State)}
}

// GetOrCreate returns the state for key, materializing the default
// state on first use. Idempotent: the same key always yields the same
// instance, with any prior mutations intact.
func (s *Store) GetOrCreate(key Key) *State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getOrCreateLocked(key)
}

// Update runs fn against the state for key while holding the store
// lock, so the whole read-modify-write resolves atomically with respect
// to concurrent requests for the same session.
func (s *Store) Update(key Key, fn func(*State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.getOrCreateLocked(key))
}

// Len reports the number of materialized sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *Store) getOrCreateLocked(key Key) *State {
	if st, ok := s.sessions[key]; ok {
		return st
	}
	st := &State{AudioRoute: domain.DefaultAudioRoute}
	s.sessions[key] = st
	return st
}
