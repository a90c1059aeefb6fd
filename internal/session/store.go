// Package session keeps per-browser dashboard state in memory.
package session

import (
	"context"
	"fmt"
	"io"
	"log"
	"sync"
	"time"

	"crypto-tracker/internal/auth"
	"crypto-tracker/internal/detail"
	"crypto-tracker/internal/idhash"
	"crypto-tracker/internal/market"
	"crypto-tracker/internal/navbar"
	"crypto-tracker/internal/observability"
)

// DefaultTTL is how long an idle session is kept.
const DefaultTTL = 30 * time.Minute

// Session is the state of one browser: the coin list provider, the navbar,
// the login widget and the detail view.
type Session struct {
	ID     string
	Market *market.Provider
	Navbar *navbar.Navbar
	Auth   *auth.Widget
	Detail *detail.View

	mu       sync.Mutex
	created  time.Time
	lastSeen time.Time
}

// LastSeen returns when the session was last used.
func (s *Session) LastSeen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

// Dependencies are shared by every session the store creates.
type Dependencies struct {
	Markets market.Lister
	Details detail.Fetcher
	Options market.ProviderOptions // Client is replaced by Markets
	Logger  *log.Logger
}

// Store is an in-memory session store with idle expiry.
type Store struct {
	deps   Dependencies
	ttl    time.Duration
	now    func() time.Time
	logger *log.Logger

	mu   sync.RWMutex
	data map[string]*Session // keyed by session id
}

// Option configures a Store.
type Option func(*Store)

// WithTTL sets the idle expiry. Non-positive values keep DefaultTTL.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// NewStore creates a new session store.
func NewStore(deps Dependencies, opts ...Option) *Store {
	logger := deps.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	s := &Store{
		deps:   deps,
		ttl:    DefaultTTL,
		now:    time.Now,
		logger: logger,
		data:   make(map[string]*Session),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create starts a new session. Its coin list is not loaded yet.
func (s *Store) Create(_ context.Context) (*Session, error) {
	id, err := idhash.NewSessionID()
	if err != nil {
		return nil, fmt.Errorf("new session id: %w", err)
	}

	opts := s.deps.Options
	opts.Client = s.deps.Markets
	if opts.Logger == nil {
		opts.Logger = s.logger
	}
	provider := market.NewProvider(opts)

	now := s.now()
	sess := &Session{
		ID:       id,
		Market:   provider,
		Navbar:   navbar.New(provider),
		Auth:     auth.NewWidget(),
		Detail:   detail.NewView(s.deps.Details, s.logger),
		created:  now,
		lastSeen: now,
	}

	s.mu.Lock()
	s.data[id] = sess
	n := len(s.data)
	s.mu.Unlock()

	observability.UpdateActiveSessions(n)
	return sess, nil
}

// Get returns a live session and marks it used.
// Returns ErrInvalidInput for malformed ids and ErrNotFound for unknown or expired ones.
func (s *Store) Get(_ context.Context, id string) (*Session, error) {
	if !idhash.ValidSessionID(id) {
		return nil, ErrInvalidInput
	}

	s.mu.RLock()
	sess, ok := s.data[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}

	now := s.now()
	if now.Sub(sess.LastSeen()) > s.ttl {
		s.Delete(context.Background(), id)
		return nil, ErrNotFound
	}
	sess.touch(now)
	return sess, nil
}

// Delete drops a session. Unknown ids are ignored.
func (s *Store) Delete(_ context.Context, id string) {
	s.mu.Lock()
	delete(s.data, id)
	n := len(s.data)
	s.mu.Unlock()
	observability.UpdateActiveSessions(n)
}

// Len returns the number of stored sessions, expired ones included until swept.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

// Sweep evicts sessions idle for longer than the TTL and returns how many were removed.
func (s *Store) Sweep() int {
	now := s.now()

	s.mu.Lock()
	evicted := 0
	for id, sess := range s.data {
		if now.Sub(sess.LastSeen()) > s.ttl {
			delete(s.data, id)
			evicted++
		}
	}
	n := len(s.data)
	s.mu.Unlock()

	observability.UpdateActiveSessions(n)
	if evicted > 0 {
		observability.RecordSessionsEvicted(evicted)
		s.logger.Printf("Evicted %d idle sessions, %d active", evicted, n)
	}
	return evicted
}

// RunSweeper calls Sweep every interval until ctx is done.
func (s *Store) RunSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = s.ttl / 2
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}
