// Package session owns the canonical representation of "who is logged in":
// it normalizes raw server user payloads, persists the session through a
// pluggable durable backend, and exposes the bearer token to the gateway.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
)

// ErrNoSession is returned by Store.Load when no durable session exists.
// Corrupt stored data is reported the same way: a session that cannot be
// decoded is treated as absent rather than surfaced as a failure.
var ErrNoSession = errors.New("session: no session")

// Storage is the durable backend behind a Store. Read returns ErrNoSession
// when the slot is empty.
type Storage interface {
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, data []byte) error
	Delete(ctx context.Context) error
}

// Store defines a public type used by loomclient APIs.
//
// Store serializes sessions into a single durable slot and keeps an
// in-memory copy so AccessToken never touches the backend on the hot path.
type Store struct {
	storage Storage

	mu      sync.RWMutex
	current *Session
}

// NewStore wraps a Storage backend. A nil backend falls back to an
// in-memory slot.
func NewStore(storage Storage) *Store {
	if storage == nil {
		storage = NewMemoryStorage()
	}
	return &Store{storage: storage}
}

// Persist normalizes and writes the session, replacing the in-memory copy.
func (s *Store) Persist(ctx context.Context, sess Session) error {
	sess = Normalize(sess)

	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	if err := s.storage.Write(ctx, data); err != nil {
		return err
	}

	s.mu.Lock()
	s.current = &sess
	s.mu.Unlock()
	return nil
}

// Load reads the durable slot. Parse failures fail soft as ErrNoSession; a
// successful load refreshes the in-memory copy.
func (s *Store) Load(ctx context.Context) (Session, error) {
	data, err := s.storage.Read(ctx)
	if err != nil {
		return Session{}, err
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return Session{}, ErrNoSession
	}
	sess = Normalize(sess)

	s.mu.Lock()
	s.current = &sess
	s.mu.Unlock()
	return sess, nil
}

// Clear deletes the durable slot and the in-memory copy.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()
	return s.storage.Delete(ctx)
}

// Current returns the in-memory session without touching the backend.
func (s *Store) Current() (Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return Session{}, false
	}
	return *s.current, true
}

// HasDurable reports whether a durable session exists in the backend right
// now, independent of the in-memory copy.
func (s *Store) HasDurable(ctx context.Context) bool {
	_, err := s.storage.Read(ctx)
	return err == nil
}

// AccessToken implements the gateway's TokenSource against the in-memory
// copy. It returns "" when no session is loaded.
func (s *Store) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return ""
	}
	return s.current.AccessToken
}
