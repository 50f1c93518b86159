// Package session keeps admin sessions in memory with a fixed lifetime.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

const pruneInterval = 10 * time.Minute

// Session is the server-side state behind one session cookie.
type Session struct {
	IsAdmin   bool
	ExpiresAt time.Time
}

// Store holds sessions keyed by id. Expired sessions are rejected on read
// and pruned periodically by a janitor goroutine.
type Store struct {
	mu       sync.Mutex
	sessions map[string]Session
	ttl      time.Duration
	done     chan struct{}
}

// NewStore creates a Store whose sessions live for ttl from creation and
// starts the janitor.
func NewStore(ttl time.Duration) *Store {
	s := &Store{
		sessions: make(map[string]Session),
		ttl:      ttl,
		done:     make(chan struct{}),
	}
	go s.janitor()
	return s
}

// Create registers a new session and returns its id.
func (s *Store) Create(isAdmin bool) string {
	id := uuid.NewString()

	s.mu.Lock()
	s.sessions[id] = Session{
		IsAdmin:   isAdmin,
		ExpiresAt: time.Now().Add(s.ttl),
	}
	s.mu.Unlock()

	return id
}

// Get returns the session for id. Expired sessions are removed and reported
// as absent.
func (s *Store) Get(id string) (Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return Session{}, false
	}
	if time.Now().After(sess.ExpiresAt) {
		delete(s.sessions, id)
		return Session{}, false
	}
	return sess, true
}

// Destroy removes the session for id, invalidating it immediately.
// Destroying an unknown id is a no-op.
func (s *Store) Destroy(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

// Stop shuts down the janitor. The store remains usable.
func (s *Store) Stop() {
	close(s.done)
}

func (s *Store) janitor() {
	ticker := time.NewTicker(pruneInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case now := <-ticker.C:
			s.mu.Lock()
			for id, sess := range s.sessions {
				if now.After(sess.ExpiresAt) {
					delete(s.sessions, id)
				}
			}
			s.mu.Unlock()
		}
	}
}
