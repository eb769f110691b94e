package storage

import (
	"fmt"
	"path/filepath"

	"go.uber.org/zap"
)

// Backend names a Gateway implementation.
type Backend string

const (
	BackendFile   Backend = "file"
	BackendSQLite Backend = "sqlite"
	BackendMemory Backend = "memory"
)

// validBackends is the set of allowed backends.
var validBackends = map[Backend]bool{
	BackendFile:   true,
	BackendSQLite: true,
	BackendMemory: true,
}

// ParseBackend returns an error if the backend is not recognized.
func ParseBackend(s string) (Backend, error) {
	b := Backend(s)
	if !validBackends[b] {
		return "", fmt.Errorf("invalid backend %q: must be one of: file, sqlite, memory", s)
	}
	return b, nil
}

// Open creates the gateway for backend rooted at dataDir.
//
// The returned close function releases backend resources and must be called
// on shutdown. It is always non-nil.
func Open(backend Backend, dataDir string, logger *zap.Logger) (Gateway, func() error, error) {
	switch backend {
	case BackendFile:
		g, err := NewFileGateway(filepath.Join(dataDir, "lists"), logger)
		if err != nil {
			return nil, noop, err
		}
		return g, noop, nil
	case BackendSQLite:
		g, err := NewSQLiteGateway(filepath.Join(dataDir, DefaultDBName), logger)
		if err != nil {
			return nil, noop, err
		}
		return g, g.Close, nil
	case BackendMemory:
		return NewMemoryGateway(), noop, nil
	default:
		return nil, noop, fmt.Errorf("invalid backend %q", backend)
	}
}

func noop() error { return nil }
