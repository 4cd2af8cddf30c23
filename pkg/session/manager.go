package session

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/aretw0/storyline/internal/logging"
	"github.com/aretw0/storyline/internal/runtime"
	"github.com/aretw0/storyline/pkg/domain"
	"github.com/aretw0/storyline/pkg/ports"
	"github.com/google/uuid"
)

// Factory builds the playthrough of a new session.
type Factory func(graph *domain.Graph) ports.Playthrough

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Manager orchestrates session access, ensuring safe concurrent operations.
// It uses Reference Counting to garbage collect unused locks.
type Manager struct {
	graph   *domain.Graph
	factory Factory

	mu    sync.Mutex            // Global lock for the lock map
	locks map[string]*lockEntry // Map of active locks

	sessionsMu sync.RWMutex
	sessions   map[string]ports.Playthrough

	logger *slog.Logger
}

// Option configures the Manager.
type Option func(*Manager)

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithFactory overrides how session playthroughs are built.
// The default is a plain engine over the shared graph.
func WithFactory(factory Factory) Option {
	return func(m *Manager) {
		if factory != nil {
			m.factory = factory
		}
	}
}

// NewManager creates a Session Manager over the given story graph.
func NewManager(graph *domain.Graph, opts ...Option) *Manager {
	m := &Manager{
		graph: graph,
		factory: func(g *domain.Graph) ports.Playthrough {
			return runtime.NewEngine(g)
		},
		locks:    make(map[string]*lockEntry),
		sessions: make(map[string]ports.Playthrough),
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Graph returns the story shared by every session.
func (m *Manager) Graph() *domain.Graph {
	return m.graph
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller MUST Lock the entry.mu, and then call release(sessionID) after unlocking.
func (m *Manager) acquire(sessionID string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[sessionID]
	if !exists {
		entry = &lockEntry{}
		m.locks[sessionID] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry if it reaches zero.
func (m *Manager) release(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[sessionID]
	if !exists {
		return
	}

	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, sessionID)
	}
}

// WithLock executes a function while holding the lock for the session.
func (m *Manager) WithLock(ctx context.Context, sessionID string, fn func(context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	entry := m.acquire(sessionID)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(sessionID)
	}()

	return fn(ctx)
}

func (m *Manager) lookup(sessionID string) (ports.Playthrough, error) {
	m.sessionsMu.RLock()
	defer m.sessionsMu.RUnlock()

	pt, ok := m.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("session '%s': %w", sessionID, domain.ErrSessionNotFound)
	}
	return pt, nil
}

// Start opens a session positioned at the story root and returns its ID.
// An empty sessionID gets a random UUID. Starting an existing session
// returns its current state untouched.
func (m *Manager) Start(ctx context.Context, sessionID string) (string, domain.State, error) {
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	var state domain.State
	err := m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		if pt, err := m.lookup(sessionID); err == nil {
			state = pt.Snapshot()
			return nil
		}

		pt := m.factory(m.graph)

		m.sessionsMu.Lock()
		m.sessions[sessionID] = pt
		m.sessionsMu.Unlock()

		m.logger.Debug("session started", "session_id", sessionID, "node_id", m.graph.RootID())
		state = pt.Snapshot()
		return nil
	})
	return sessionID, state, err
}

// Get returns a snapshot of the session state.
func (m *Manager) Get(ctx context.Context, sessionID string) (domain.State, error) {
	var state domain.State
	err := m.Do(ctx, sessionID, func(pt ports.Playthrough) error {
		state = pt.Snapshot()
		return nil
	})
	return state, err
}

// Choose selects one of the choices offered by the session's current node.
func (m *Manager) Choose(ctx context.Context, sessionID, choiceID string) (domain.State, error) {
	var state domain.State
	err := m.Do(ctx, sessionID, func(pt ports.Playthrough) error {
		if err := pt.Choose(choiceID); err != nil {
			return err
		}
		state = pt.Snapshot()
		return nil
	})
	return state, err
}

// Restart rewinds the session to the story root.
func (m *Manager) Restart(ctx context.Context, sessionID string) (domain.State, error) {
	var state domain.State
	err := m.Do(ctx, sessionID, func(pt ports.Playthrough) error {
		pt.Restart()
		state = pt.Snapshot()
		return nil
	})
	return state, err
}

// Do runs fn against the session's playthrough while holding the session lock.
func (m *Manager) Do(ctx context.Context, sessionID string, fn func(ports.Playthrough) error) error {
	return m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		pt, err := m.lookup(sessionID)
		if err != nil {
			return err
		}
		return fn(pt)
	})
}

// Delete removes the session.
func (m *Manager) Delete(ctx context.Context, sessionID string) error {
	return m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		m.sessionsMu.Lock()
		defer m.sessionsMu.Unlock()

		if _, ok := m.sessions[sessionID]; !ok {
			return fmt.Errorf("session '%s': %w", sessionID, domain.ErrSessionNotFound)
		}
		delete(m.sessions, sessionID)
		m.logger.Debug("session deleted", "session_id", sessionID)
		return nil
	})
}

// List returns the IDs of the open sessions, sorted.
func (m *Manager) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.sessionsMu.RLock()
	ids := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	m.sessionsMu.RUnlock()

	sort.Strings(ids)
	return ids, nil
}
