// Package session owns the per-session list store and its lifecycle.
//
// A Session is enabled once, which loads the snapshot (or writes an empty
// one), and then processes actions one at a time until it is disabled.
// Disabling drops the store without flushing; the last successful save is
// the durable state.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/HendryAvila/listkeeper/internal/actions"
	"github.com/HendryAvila/listkeeper/internal/lists"
	"github.com/HendryAvila/listkeeper/internal/storage"
	"github.com/HendryAvila/listkeeper/internal/templates"
	"github.com/HendryAvila/listkeeper/internal/wildcard"
)

// ErrDisabled is returned by Execute when the session has no store.
var ErrDisabled = errors.New("session: list capability is not enabled")

// Session holds one store, the gateway it persists to and the snapshot key.
type Session struct {
	mu         sync.Mutex
	gateway    storage.Gateway
	key        string
	store      *lists.Store
	dispatcher *actions.Dispatcher
	initErr    error
	logger     *zap.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithDispatcher replaces the default dispatcher.
func WithDispatcher(d *actions.Dispatcher) Option {
	return func(s *Session) { s.dispatcher = d }
}

// New creates a disabled session. An empty key means lists.DefaultSnapshotKey.
// Without WithDispatcher a dispatcher over the embedded templates is built;
// if that fails the error is reported by Enable.
func New(gateway storage.Gateway, key string, logger *zap.Logger, opts ...Option) *Session {
	if key == "" {
		key = lists.DefaultSnapshotKey
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Session{gateway: gateway, key: key, logger: logger}
	for _, o := range opts {
		o(s)
	}
	if s.dispatcher == nil {
		r, err := templates.NewRenderer()
		if err != nil {
			s.initErr = fmt.Errorf("creating template renderer: %w", err)
		} else {
			s.dispatcher = actions.NewDispatcher(r, logger)
		}
	}
	return s
}

// Enable loads the snapshot into a fresh store. When no snapshot exists an
// empty one is written before Enable returns, so the key always exists
// afterwards. Enabling an enabled session is a no-op.
func (s *Session) Enable(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.store != nil {
		return nil
	}
	if s.initErr != nil {
		return s.initErr
	}
	if s.gateway == nil {
		return errors.New("session: no gateway configured")
	}

	ok, err := s.gateway.Exists(ctx, s.key)
	if err != nil {
		return fmt.Errorf("checking snapshot %s: %w", s.key, err)
	}

	var store *lists.Store
	if ok {
		store, err = lists.Load(ctx, s.gateway, s.key)
		if err != nil {
			return err
		}
		s.logger.Info("loaded lists", zap.String("key", s.key), zap.Int("lists", store.Len()))
	} else {
		store = lists.New(s.gateway, s.key)
		if err := store.Save(ctx); err != nil {
			return fmt.Errorf("initializing snapshot %s: %w", s.key, err)
		}
		s.logger.Info("initialized empty lists", zap.String("key", s.key))
	}

	s.store = store
	return nil
}

// Disable drops the store reference. Nothing is written.
func (s *Session) Disable() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.store != nil {
		s.logger.Info("disabled lists", zap.String("key", s.key))
	}
	s.store = nil
}

// Enabled reports whether the session currently holds a store.
func (s *Session) Enabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store != nil
}

// Store returns the current store. Callers must not use it concurrently
// with Execute.
func (s *Session) Store() (*lists.Store, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store, s.store != nil
}

// Key returns the snapshot key.
func (s *Session) Key() string {
	return s.key
}

// Execute dispatches one action against the session's store. Calls are
// serialized: one action runs to completion, save included, before the
// next begins.
func (s *Session) Execute(ctx context.Context, action actions.Action) (*actions.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.store == nil {
		return nil, ErrDisabled
	}
	return s.dispatcher.Dispatch(ctx, s.store, action)
}

// Snapshot returns the current JSON snapshot under the session lock.
func (s *Session) Snapshot() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.store == nil {
		return nil, ErrDisabled
	}
	return s.store.Marshal()
}

// ValidateWildcard reports whether the action's items are simple enough to
// have come from a wildcard match.
func (s *Session) ValidateWildcard(action actions.Action) bool {
	return wildcard.ValidateAction(action)
}
