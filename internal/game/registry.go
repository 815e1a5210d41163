package game

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// DefaultIdleTimeout is how long a game may go untouched before the
// registry forgets it.
const DefaultIdleTimeout = 2 * time.Hour

type entry struct {
	game     *Game
	lastSeen atomic.Int64 // unix nanos
}

// Registry keys live games by id. The registry lock covers the map only;
// each Game serializes its own operations, so requests for one id run one
// at a time while different ids proceed in parallel.
//
// Games idle for longer than the idle timeout are evicted on the next
// Create.
type Registry struct {
	mu    sync.RWMutex
	games map[string]*entry
	cfg   Config
	idle  time.Duration
}

// NewRegistry creates a registry whose games share cfg. cfg.Rand is
// ignored because games run concurrently.
func NewRegistry(cfg Config) *Registry {
	cfg.Rand = nil
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Log == nil {
		cfg.Log = zap.NewNop()
	}
	return &Registry{games: make(map[string]*entry), cfg: cfg, idle: DefaultIdleTimeout}
}

// SetIdleTimeout changes the eviction age. Zero or less disables eviction.
func (r *Registry) SetIdleTimeout(d time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.idle = d
}

// Create registers a new game for player and poses its first question.
// A game whose first question fails is not registered.
func (r *Registry) Create(ctx context.Context, player string) (*Game, Status, error) {
	cfg := r.cfg
	cfg.Player = player
	g := New("", cfg)

	st, err := g.Start(ctx)
	if err != nil {
		return nil, st, err
	}

	now := r.cfg.Now()
	e := &entry{game: g}
	e.lastSeen.Store(now.UnixNano())

	r.mu.Lock()
	r.evictLocked(now)
	r.games[g.ID()] = e
	r.mu.Unlock()
	return g, st, nil
}

func (r *Registry) evictLocked(now time.Time) {
	if r.idle <= 0 {
		return
	}
	cutoff := now.Add(-r.idle).UnixNano()
	for id, e := range r.games {
		if e.lastSeen.Load() < cutoff {
			delete(r.games, id)
			r.cfg.Log.Debug("evicted idle game", zap.String("game", id))
		}
	}
}

// Get returns the game registered under id and marks it as used.
func (r *Registry) Get(id string) (*Game, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.games[id]
	if !ok {
		return nil, ErrUnknownSession
	}
	e.lastSeen.Store(r.cfg.Now().UnixNano())
	return e.game, nil
}

// Remove forgets the game registered under id.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.games, id)
}

// Len returns the number of registered games.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.games)
}
