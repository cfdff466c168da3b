// Package session holds the process-wide bearer token shared by every
// API call. It is injected into the client rather than read from
// ambient storage so tests can substitute their own store.
package session

import "sync"

// Store keeps the current bearer token. Expire clears it and fires the
// registered hook exactly once per token generation, no matter how many
// requests observe a 401 concurrently.
type Store struct {
	mu         sync.Mutex
	token      string
	generation uint64
	expired    uint64 // generation at which OnExpired last fired
	onExpired  func()
}

func NewStore() *Store {
	return &Store{}
}

// OnExpired registers the hook invoked when the session expires,
// typically navigation to the login route. Replaces any previous hook.
func (s *Store) OnExpired(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onExpired = fn
}

// SetToken installs a fresh token and starts a new generation.
func (s *Store) SetToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.generation++
}

// Token returns the current token, or "" when logged out.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// Expire clears the token and fires the OnExpired hook. Concurrent
// calls within the same generation fire the hook only once.
func (s *Store) Expire() {
	s.mu.Lock()
	if s.expired == s.generation {
		s.mu.Unlock()
		return
	}
	s.expired = s.generation
	s.token = ""
	fn := s.onExpired
	s.mu.Unlock()

	if fn != nil {
		fn()
	}
}

// Clear removes the token without firing the hook (explicit logout).
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.expired = s.generation
}
