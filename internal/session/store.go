// Package session holds active game sessions in memory. The store is
// the single authority on session state: callers read a snapshot,
// mutate it, and write it back whole.
package session

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lexiquest/lexiquest/pkg/game"
)

// Clock supplies the current time. Injected so tests can drive
// expiry without sleeping.
type Clock func() time.Time

// Config bounds the store. Zero values fall back to defaults.
type Config struct {
	MaxSessions     int
	SessionTimeout  time.Duration
	CleanupInterval time.Duration
}

const (
	DefaultMaxSessions     = 1000
	DefaultSessionTimeout  = 60 * time.Minute
	DefaultCleanupInterval = 5 * time.Minute
)

func (c Config) withDefaults() Config {
	if c.MaxSessions <= 0 {
		c.MaxSessions = DefaultMaxSessions
	}
	if c.SessionTimeout <= 0 {
		c.SessionTimeout = DefaultSessionTimeout
	}
	if c.CleanupInterval <= 0 {
		c.CleanupInterval = DefaultCleanupInterval
	}
	return c
}

// Stats is a point-in-time summary of the store.
type Stats struct {
	Active       int     `json:"active_games"`
	Completed    int     `json:"completed_games"`
	AverageTurns float64 `json:"average_turns"`
}

// Store is a concurrency-safe in-memory session store with lazy
// expiry and oldest-first eviction at capacity.
type Store struct {
	mu          sync.RWMutex
	sessions    map[uuid.UUID]*game.GameState
	cfg         Config
	now         Clock
	lastCleanup time.Time

	// Completion counters survive deletion of the finished sessions.
	completedGames int
	completedTurns int
}

func NewStore(cfg Config, now Clock) *Store {
	if now == nil {
		now = time.Now
	}
	return &Store{
		sessions:    make(map[uuid.UUID]*game.GameState),
		cfg:         cfg.withDefaults(),
		now:         now,
		lastCleanup: now(),
	}
}

// Create stores a new session. At capacity the oldest tenth of
// sessions is evicted to make room.
func (s *Store) Create(gs *game.GameState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.maybeExpireLocked()

	if _, exists := s.sessions[gs.SessionID]; exists {
		return fmt.Errorf("session %s already exists", gs.SessionID)
	}
	if len(s.sessions) >= s.cfg.MaxSessions {
		s.evictOldestLocked()
	}

	s.sessions[gs.SessionID] = gs.Clone()
	return nil
}

// Get returns a snapshot of the session and refreshes its activity
// timestamp.
func (s *Store) Get(id uuid.UUID) (*game.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	gs, ok := s.sessions[id]
	if !ok {
		return nil, game.ErrNotFound
	}
	gs.LastActive = s.now()
	return gs.Clone(), nil
}

// Update replaces the stored session with the given state.
func (s *Store) Update(gs *game.GameState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, ok := s.sessions[gs.SessionID]
	if !ok {
		return game.ErrNotFound
	}

	if !prev.GameOver && gs.GameOver {
		s.completedGames++
		s.completedTurns += gs.Turn
	}

	cp := gs.Clone()
	cp.LastActive = s.now()
	s.sessions[gs.SessionID] = cp
	return nil
}

// End marks the session finished. The session stays readable until
// it expires or is deleted.
func (s *Store) End(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	gs, ok := s.sessions[id]
	if !ok {
		return game.ErrNotFound
	}
	if !gs.GameOver {
		gs.GameOver = true
		s.completedGames++
		s.completedTurns += gs.Turn
	}
	gs.LastActive = s.now()
	return nil
}

// Delete removes the session outright.
func (s *Store) Delete(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return game.ErrNotFound
	}
	delete(s.sessions, id)
	return nil
}

// ExpireStale removes sessions idle past the timeout. Returns the
// number removed.
func (s *Store) ExpireStale() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.expireLocked()
}

// Count returns the number of stored sessions.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Stats summarizes the store. Completed counts include finished
// sessions that have since been removed.
func (s *Store) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := Stats{Completed: s.completedGames}
	for _, gs := range s.sessions {
		if !gs.GameOver {
			st.Active++
		}
	}
	if s.completedGames > 0 {
		avg := float64(s.completedTurns) / float64(s.completedGames)
		st.AverageTurns = math.Round(avg*100) / 100
	}
	return st
}

// maybeExpireLocked runs the expiry sweep at most once per cleanup
// interval. Callers hold the write lock.
func (s *Store) maybeExpireLocked() {
	now := s.now()
	if now.Sub(s.lastCleanup) < s.cfg.CleanupInterval {
		return
	}
	s.expireLocked()
}

func (s *Store) expireLocked() int {
	now := s.now()
	s.lastCleanup = now

	removed := 0
	for id, gs := range s.sessions {
		if now.Sub(gs.LastActive) > s.cfg.SessionTimeout {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// evictOldestLocked removes the tenth of sessions with the oldest
// activity, at least one. Callers hold the write lock.
func (s *Store) evictOldestLocked() {
	n := len(s.sessions) / 10
	if n < 1 {
		n = 1
	}
	for i := 0; i < n; i++ {
		var oldest uuid.UUID
		var oldestAt time.Time
		first := true
		for id, gs := range s.sessions {
			if first || gs.LastActive.Before(oldestAt) {
				oldest = id
				oldestAt = gs.LastActive
				first = false
			}
		}
		if first {
			return
		}
		delete(s.sessions, oldest)
	}
}
