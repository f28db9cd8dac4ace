// internal/store/memory.go
//
// In-memory session store for Hangman games.
//
// Characteristics:
//   - Stores one *game.Game per session ID in a map.
//   - Update runs the caller's function under the write lock, so requests for
//     the same session are applied one at a time.
//   - Sessions idle longer than the configured TTL are swept by Run.
//   - State is lost when the process restarts.

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/hangman/apps/go-server/internal/game"
)

// ErrNotFound is returned for an unknown or expired session ID.
var ErrNotFound = errors.New("session not found")

// Store defines the persistence interface for game sessions.
type Store interface {
	// Save creates the session or replaces its game.
	Save(ctx context.Context, id string, g *game.Game) error

	// Update applies fn to the session's game while holding the session lock.
	// Returns ErrNotFound if the session does not exist.
	Update(ctx context.Context, id string, fn func(g *game.Game) error) error

	// Sweep removes sessions idle for longer than ttl and returns how many.
	Sweep(ttl time.Duration) int

	// Len reports the number of live sessions.
	Len() int
}

type session struct {
	game     *game.Game
	lastSeen time.Time
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu       sync.RWMutex        // guards sessions
	sessions map[string]*session // keyed by session ID
	now      func() time.Time
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{sessions: make(map[string]*session), now: time.Now}
}

func (m *memory) Save(ctx context.Context, id string, g *game.Game) error {
	if id == "" {
		return errors.New("store: empty session id")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[id] = &session{game: g, lastSeen: m.now()}
	return nil
}

func (m *memory) Update(ctx context.Context, id string, fn func(g *game.Game) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return ErrNotFound
	}
	s.lastSeen = m.now()
	return fn(s.game)
}

func (m *memory) Sweep(ttl time.Duration) int {
	cutoff := m.now().Add(-ttl)
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, s := range m.sessions {
		if s.lastSeen.Before(cutoff) {
			delete(m.sessions, id)
			n++
		}
	}
	return n
}

func (m *memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Run sweeps st every interval until ctx is done.
func Run(ctx context.Context, st Store, interval, ttl time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := st.Sweep(ttl); n > 0 {
				log.Debug().Int("expired", n).Int("live", st.Len()).Msg("swept idle sessions")
			}
		}
	}
}
