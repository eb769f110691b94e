package storage

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Interface compliance (compile-time assertions)
var (
	_ Gateway = (*FileGateway)(nil)
	_ Gateway = (*SQLiteGateway)(nil)
	_ Gateway = (*MemoryGateway)(nil)
	_ Gateway = (*PrefixedGateway)(nil)
)

// backends returns a fresh instance of every gateway, each isolated in its
// own temp directory.
func backends(t *testing.T) map[string]Gateway {
	t.Helper()

	fg, err := NewFileGateway(t.TempDir(), nil)
	require.NoError(t, err)

	sg, err := NewSQLiteGateway(filepath.Join(t.TempDir(), DefaultDBName), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sg.Close() })

	return map[string]Gateway{
		"file":     fg,
		"sqlite":   sg,
		"memory":   NewMemoryGateway(),
		"prefixed": Prefixed(NewMemoryGateway(), "session-1"),
	}
}

// ─── Contract ───────────────────────────────────────────────────────────────

func TestGateway_ExistsReadWrite(t *testing.T) {
	ctx := context.Background()
	for name, gw := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ok, err := gw.Exists(ctx, "lists.json")
			require.NoError(t, err)
			assert.False(t, ok, "fresh gateway should not have the key")

			_, err = gw.Read(ctx, "lists.json")
			assert.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, gw.Write(ctx, "lists.json", "[]"))

			ok, err = gw.Exists(ctx, "lists.json")
			require.NoError(t, err)
			assert.True(t, ok)

			got, err := gw.Read(ctx, "lists.json")
			require.NoError(t, err)
			assert.Equal(t, "[]", got)
		})
	}
}

func TestGateway_WriteOverwrites(t *testing.T) {
	ctx := context.Background()
	for name, gw := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, gw.Write(ctx, "lists.json", `[{"name":"a","items":[]}]`))
			require.NoError(t, gw.Write(ctx, "lists.json", "[]"))

			got, err := gw.Read(ctx, "lists.json")
			require.NoError(t, err)
			assert.Equal(t, "[]", got)
		})
	}
}

func TestGateway_PreservesUTF8(t *testing.T) {
	ctx := context.Background()
	content := `[{"name":"épicerie","items":["café","crème brûlée","日本茶"]}]`
	for name, gw := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, gw.Write(ctx, "lists.json", content))
			got, err := gw.Read(ctx, "lists.json")
			require.NoError(t, err)
			assert.Equal(t, content, got)
		})
	}
}

func TestGateway_InvalidKeys(t *testing.T) {
	ctx := context.Background()
	bad := []string{"", "   ", "/abs", "../escape", "a/../b", "a//b", `a\b`, "./x"}
	for name, gw := range backends(t) {
		t.Run(name, func(t *testing.T) {
			for _, key := range bad {
				_, err := gw.Exists(ctx, key)
				assert.Error(t, err, "Exists(%q)", key)
				_, err = gw.Read(ctx, key)
				assert.Error(t, err, "Read(%q)", key)
				assert.Error(t, gw.Write(ctx, key, "x"), "Write(%q)", key)
			}
		})
	}
}

// ─── FileGateway ────────────────────────────────────────────────────────────

func TestFileGateway_RequiresDir(t *testing.T) {
	_, err := NewFileGateway("", nil)
	assert.Error(t, err)
}

func TestFileGateway_WriteCreatesNestedDirs(t *testing.T) {
	dir := t.TempDir()
	fg, err := NewFileGateway(filepath.Join(dir, "data"), nil)
	require.NoError(t, err)

	require.NoError(t, fg.Write(context.Background(), "sessions/abc/lists.json", "[]"))

	data, err := os.ReadFile(filepath.Join(dir, "data", "sessions", "abc", "lists.json"))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestFileGateway_NoTempFilesLeftBehind(t *testing.T) {
	dir := t.TempDir()
	fg, err := NewFileGateway(dir, nil)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		require.NoError(t, fg.Write(context.Background(), "lists.json", strings.Repeat("x", i)))
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "lists.json", entries[0].Name())
}

func TestFileGateway_ExistsOnDirectoryIsError(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "lists.json"), 0o755))
	fg, err := NewFileGateway(dir, nil)
	require.NoError(t, err)

	_, err = fg.Exists(context.Background(), "lists.json")
	assert.Error(t, err)
}

// ─── SQLiteGateway ──────────────────────────────────────────────────────────

func TestSQLiteGateway_PersistsAcrossReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), DefaultDBName)
	ctx := context.Background()

	g1, err := NewSQLiteGateway(dbPath, nil)
	require.NoError(t, err)
	require.NoError(t, g1.Write(ctx, "lists.json", `[{"name":"todo","items":["a"]}]`))
	require.NoError(t, g1.Close())

	g2, err := NewSQLiteGateway(dbPath, nil)
	require.NoError(t, err)
	defer g2.Close()

	got, err := g2.Read(ctx, "lists.json")
	require.NoError(t, err)
	assert.Equal(t, `[{"name":"todo","items":["a"]}]`, got)
}

func TestSQLiteGateway_OpenFailure(t *testing.T) {
	orig := openDB
	t.Cleanup(func() { openDB = orig })
	openDB = func(string, string) (*sql.DB, error) {
		return nil, errors.New("boom")
	}

	_, err := NewSQLiteGateway(filepath.Join(t.TempDir(), DefaultDBName), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open database")
}

func TestSQLiteGateway_CancelledContext(t *testing.T) {
	g, err := NewSQLiteGateway(filepath.Join(t.TempDir(), DefaultDBName), nil)
	require.NoError(t, err)
	defer g.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Error(t, g.Write(ctx, "lists.json", "[]"))
}

// ─── Prefixed ───────────────────────────────────────────────────────────────

func TestPrefixed_IsolatesNamespaces(t *testing.T) {
	ctx := context.Background()
	shared := NewMemoryGateway()
	a := Prefixed(shared, "a")
	b := Prefixed(shared, "b")

	require.NoError(t, a.Write(ctx, "lists.json", "A"))

	ok, err := b.Exists(ctx, "lists.json")
	require.NoError(t, err)
	assert.False(t, ok, "session b must not see session a's snapshot")

	require.NoError(t, b.Write(ctx, "lists.json", "B"))
	got, err := a.Read(ctx, "lists.json")
	require.NoError(t, err)
	assert.Equal(t, "A", got)

	assert.ElementsMatch(t, []string{"a/lists.json", "b/lists.json"}, shared.Keys())
}

func TestPrefixed_EmptyPrefixPassesThrough(t *testing.T) {
	ctx := context.Background()
	shared := NewMemoryGateway()
	require.NoError(t, Prefixed(shared, "").Write(ctx, "lists.json", "[]"))
	assert.Equal(t, []string{"lists.json"}, shared.Keys())
}

// ─── Open ───────────────────────────────────────────────────────────────────

func TestParseBackend(t *testing.T) {
	for _, s := range []string{"file", "sqlite", "memory"} {
		b, err := ParseBackend(s)
		require.NoError(t, err)
		assert.Equal(t, Backend(s), b)
	}
	_, err := ParseBackend("redis")
	assert.Error(t, err)
}

func TestOpen_EachBackend(t *testing.T) {
	for _, b := range []Backend{BackendFile, BackendSQLite, BackendMemory} {
		t.Run(string(b), func(t *testing.T) {
			gw, closeFn, err := Open(b, t.TempDir(), nil)
			require.NoError(t, err)
			require.NotNil(t, closeFn)
			defer func() { assert.NoError(t, closeFn()) }()

			require.NoError(t, gw.Write(context.Background(), "lists.json", "[]"))
		})
	}
}

func TestOpen_UnknownBackend(t *testing.T) {
	_, closeFn, err := Open(Backend("nope"), t.TempDir(), nil)
	assert.Error(t, err)
	assert.NotNil(t, closeFn)
}
