// Package storage implements the durable blob layer the list store persists
// its snapshot through.
//
// A Gateway is deliberately small: it knows how to tell whether a named blob
// exists, read it whole and overwrite it whole. Nothing here retries; every
// failure is returned to the caller with context attached.
//
// Backends:
//   - FileGateway: one file per key under a directory, atomic durable writes
//   - SQLiteGateway: a single blobs table in a SQLite database (WAL mode)
//   - MemoryGateway: process-local map for tests and ephemeral runs
package storage

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
)

// ErrNotFound is returned by Read when no blob is stored under the key.
var ErrNotFound = errors.New("storage: key not found")

// Gateway is the read/write/exists contract for a named blob.
type Gateway interface {
	Exists(ctx context.Context, key string) (bool, error)
	Read(ctx context.Context, key string) (string, error)
	Write(ctx context.Context, key, content string) error
}

// validateKey rejects keys that cannot be mapped safely onto any backend.
// Keys are slash-separated relative paths; "." and ".." segments are refused
// so a key can never escape the gateway's namespace.
func validateKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return errors.New("storage: key is required")
	}
	if strings.HasPrefix(key, "/") || strings.Contains(key, "\\") {
		return fmt.Errorf("storage: invalid key %q", key)
	}
	for _, seg := range strings.Split(key, "/") {
		if seg == "" || seg == "." || seg == ".." {
			return fmt.Errorf("storage: invalid key %q", key)
		}
	}
	return nil
}

// PrefixedGateway namespaces every key of an underlying gateway.
type PrefixedGateway struct {
	inner  Gateway
	prefix string
}

// Prefixed returns a gateway that stores key under "<prefix>/<key>" on inner.
// Sessions use it to own a private snapshot key on a shared backend.
func Prefixed(inner Gateway, prefix string) *PrefixedGateway {
	return &PrefixedGateway{inner: inner, prefix: strings.Trim(prefix, "/")}
}

func (p *PrefixedGateway) key(key string) string {
	if p.prefix == "" {
		return key
	}
	return path.Join(p.prefix, key)
}

// Exists reports whether the namespaced key exists.
func (p *PrefixedGateway) Exists(ctx context.Context, key string) (bool, error) {
	if err := validateKey(key); err != nil {
		return false, err
	}
	return p.inner.Exists(ctx, p.key(key))
}

// Read returns the namespaced blob.
func (p *PrefixedGateway) Read(ctx context.Context, key string) (string, error) {
	if err := validateKey(key); err != nil {
		return "", err
	}
	return p.inner.Read(ctx, p.key(key))
}

// Write overwrites the namespaced blob.
func (p *PrefixedGateway) Write(ctx context.Context, key, content string) error {
	if err := validateKey(key); err != nil {
		return err
	}
	return p.inner.Write(ctx, p.key(key), content)
}
