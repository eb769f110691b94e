package session

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/HendryAvila/listkeeper/internal/storage"
)

// Manager hands out sessions that share one backend. Each session id owns
// a private namespace on the gateway, so two sessions never see each
// other's lists.
type Manager struct {
	mu       sync.Mutex
	gateway  storage.Gateway
	key      string
	logger   *zap.Logger
	sessions map[string]*Session
	opts     []Option
}

// NewManager creates a Manager over gateway. Every session stores its
// snapshot under "<id>/<key>".
func NewManager(gateway storage.Gateway, key string, logger *zap.Logger, opts ...Option) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		gateway:  gateway,
		key:      key,
		logger:   logger.Named("session"),
		sessions: make(map[string]*Session),
		opts:     opts,
	}
}

// NewID returns a fresh random session id.
func NewID() string {
	return uuid.NewString()
}

// Open returns the enabled session for id, creating and enabling it on
// first use.
func (m *Manager) Open(ctx context.Context, id string) (*Session, error) {
	if id == "" {
		return nil, fmt.Errorf("session: id is required")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[id]; ok {
		return s, nil
	}

	s := New(storage.Prefixed(m.gateway, id), m.key, m.logger.With(zap.String("session", id)), m.opts...)
	if err := s.Enable(ctx); err != nil {
		return nil, fmt.Errorf("opening session %s: %w", id, err)
	}
	m.sessions[id] = s
	return s, nil
}

// Close disables and forgets the session. Unknown ids are ignored.
func (m *Manager) Close(id string) {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if ok {
		s.Disable()
	}
}

// CloseAll disables every open session.
func (m *Manager) CloseAll() {
	for _, id := range m.IDs() {
		m.Close(id)
	}
}

// IDs returns the open session ids, sorted.
func (m *Manager) IDs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
