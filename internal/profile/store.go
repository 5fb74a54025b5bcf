// Package profile holds the active user profile shared by every view. The
// store is created once at the application root, travels in a
// context.Context and is loaded once from the API.
package profile

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/skillswap/skillswap/pkg/types"
)

// Fetcher loads a user by id.
type Fetcher interface {
	FetchUser(ctx context.Context, id int64) (*types.User, error)
}

// State is a snapshot of the store.
type State struct {
	Profile *types.User
	Loading bool
	Err     error
}

// Store holds the active profile. The zero value is not usable; use NewStore.
type Store struct {
	id      int64
	fetcher Fetcher

	mu      sync.RWMutex
	profile *types.User
	loading bool
	loaded  bool
	err     error
}

// NewStore creates a store for the profile with the given id.
func NewStore(fetcher Fetcher, id int64) *Store {
	return &Store{id: id, fetcher: fetcher}
}

// ID returns the id of the active profile.
func (s *Store) ID() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.profile != nil {
		return s.profile.ID
	}
	return s.id
}

// Load fetches the profile the first time it is called. Later calls return
// the outcome of the first one, or nil while it is still in flight. A failed
// load leaves the profile absent and keeps the error for display.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	if s.loaded || s.loading {
		err := s.err
		s.mu.Unlock()
		return err
	}
	s.loading = true
	id := s.id
	s.mu.Unlock()

	user, err := s.fetcher.FetchUser(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	s.loaded = true
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Int64("profile_id", id).Msg("profile load failed")
		s.err = err
		return err
	}
	// A Set that raced the load wins.
	if s.profile == nil {
		s.profile = user
	}
	return nil
}

// Profile returns the active profile, or nil while absent.
func (s *Store) Profile() *types.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile
}

// Set replaces the active profile. The last writer wins.
func (s *Store) Set(u *types.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile = u
	s.loaded = true
	s.err = nil
	if u != nil {
		s.id = u.ID
	}
}

// State returns a snapshot of the store.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return State{Profile: s.profile, Loading: s.loading, Err: s.err}
}

type storeContextKey struct{}

// NewContext returns a context carrying s.
func NewContext(ctx context.Context, s *Store) context.Context {
	return context.WithValue(ctx, storeContextKey{}, s)
}

// FromContext returns the store carried by ctx, or nil.
func FromContext(ctx context.Context) *Store {
	s, _ := ctx.Value(storeContextKey{}).(*Store)
	return s
}
