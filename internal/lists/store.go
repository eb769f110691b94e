// Package lists implements the named-list store: an in-memory collection of
// uniquely named, deduplicated item sets persisted as a whole snapshot.
//
// Both the name→list mapping and every list's item set keep explicit
// insertion order, so the serialized snapshot is deterministic: lists in
// creation order, items in first-insertion order.
//
// A Store is not safe for concurrent use. Callers serialize access at the
// session boundary (see package session).
package lists

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/HendryAvila/listkeeper/internal/storage"
)

// DefaultSnapshotKey is the gateway key the snapshot is written under.
const DefaultSnapshotKey = "lists.json"

// List is a named, deduplicated, insertion-ordered set of items.
type List struct {
	Name  string
	items *orderedmap.OrderedMap[string, struct{}]
}

func newList(name string) *List {
	return &List{Name: name, items: orderedmap.New[string, struct{}]()}
}

// Items returns the items in insertion order. The slice is a copy.
func (l *List) Items() []string {
	out := make([]string, 0, l.items.Len())
	for p := l.items.Oldest(); p != nil; p = p.Next() {
		out = append(out, p.Key)
	}
	return out
}

// Len returns the number of items.
func (l *List) Len() int {
	return l.items.Len()
}

// Contains reports whether item is in the list.
func (l *List) Contains(item string) bool {
	_, ok := l.items.Get(item)
	return ok
}

func (l *List) add(item string) {
	if _, ok := l.items.Get(item); ok {
		return
	}
	l.items.Set(item, struct{}{})
}

func (l *List) remove(item string) {
	l.items.Delete(item)
}

func (l *List) clear() {
	l.items = orderedmap.New[string, struct{}]()
}

// Store maps list names to lists and saves itself through a gateway.
type Store struct {
	lists   *orderedmap.OrderedMap[string, *List]
	gateway storage.Gateway
	key     string
}

// New creates an empty store that saves to key on gateway.
func New(gateway storage.Gateway, key string) *Store {
	if key == "" {
		key = DefaultSnapshotKey
	}
	return &Store{
		lists:   orderedmap.New[string, *List](),
		gateway: gateway,
		key:     key,
	}
}

// FromSnapshot rebuilds a store from a snapshot. Records without a name are
// skipped; a name that appears twice merges into one list.
func FromSnapshot(snap Snapshot, gateway storage.Gateway, key string) *Store {
	s := New(gateway, key)
	for _, rec := range snap {
		if rec.Name == "" {
			continue
		}
		s.AddItems(rec.Name, rec.Items)
	}
	return s
}

// Key returns the snapshot key this store saves to.
func (s *Store) Key() string {
	return s.key
}

// CreateList creates an empty list. It returns true only when the name was
// absent before the call; an existing list is never touched.
func (s *Store) CreateList(name string) bool {
	if _, ok := s.lists.Get(name); ok {
		return false
	}
	s.lists.Set(name, newList(name))
	return true
}

// AddItems ensures the list exists, then inserts each item.
// Items already present are skipped.
func (s *Store) AddItems(name string, items []string) {
	s.CreateList(name)
	l, _ := s.lists.Get(name)
	for _, item := range items {
		l.add(item)
	}
}

// RemoveItems removes each item from the list. An absent list makes the
// whole call a no-op; it is never created as a side effect.
func (s *Store) RemoveItems(name string, items []string) {
	l, ok := s.lists.Get(name)
	if !ok {
		return
	}
	for _, item := range items {
		l.remove(item)
	}
}

// GetList returns the named list. The boolean separates "exists with zero
// items" from "does not exist".
func (s *Store) GetList(name string) (*List, bool) {
	return s.lists.Get(name)
}

// ClearList empties an existing list and reports whether it existed.
// An absent list is left absent.
func (s *Store) ClearList(name string) bool {
	l, ok := s.lists.Get(name)
	if !ok {
		return false
	}
	l.clear()
	return true
}

// Names returns list names in creation order.
func (s *Store) Names() []string {
	out := make([]string, 0, s.lists.Len())
	for p := s.lists.Oldest(); p != nil; p = p.Next() {
		out = append(out, p.Key)
	}
	return out
}

// Len returns the number of lists.
func (s *Store) Len() int {
	return s.lists.Len()
}

// Serialize returns the whole store as a snapshot.
func (s *Store) Serialize() Snapshot {
	snap := make(Snapshot, 0, s.lists.Len())
	for p := s.lists.Oldest(); p != nil; p = p.Next() {
		snap = append(snap, Record{Name: p.Key, Items: p.Value.Items()})
	}
	return snap
}

// Marshal returns the JSON encoding of the current snapshot.
func (s *Store) Marshal() ([]byte, error) {
	return s.Serialize().Marshal()
}

// Save overwrites the persisted snapshot with the current state.
// The gateway's error is returned wrapped and is never retried; the
// in-memory state is left as is.
func (s *Store) Save(ctx context.Context) error {
	if s.gateway == nil {
		return errors.New("lists: store has no gateway")
	}
	data, err := s.Marshal()
	if err != nil {
		return fmt.Errorf("marshaling lists: %w", err)
	}
	if err := s.gateway.Write(ctx, s.key, string(data)); err != nil {
		return fmt.Errorf("saving lists: %w", err)
	}
	return nil
}

// Load reads the snapshot under key from gateway and builds a store from it.
func Load(ctx context.Context, gateway storage.Gateway, key string) (*Store, error) {
	if key == "" {
		key = DefaultSnapshotKey
	}
	data, err := gateway.Read(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("loading lists: %w", err)
	}
	snap, err := Unmarshal([]byte(data))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", key, err)
	}
	return FromSnapshot(snap, gateway, key), nil
}

// Record is one list in the persisted snapshot.
type Record struct {
	Name  string   `json:"name"`
	Items []string `json:"items"`
}

// Snapshot is the full persisted state: every list, in order.
type Snapshot []Record

// Marshal encodes the snapshot as a JSON array. An empty snapshot encodes
// as "[]" and a list with no items as "items":[]. Names and items are
// written as given, without HTML escaping.
func (snap Snapshot) Marshal() ([]byte, error) {
	out := make([]Record, len(snap))
	for i, rec := range snap {
		items := rec.Items
		if items == nil {
			items = []string{}
		}
		out[i] = Record{Name: rec.Name, Items: items}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(out); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Unmarshal decodes a JSON snapshot.
func Unmarshal(data []byte) (Snapshot, error) {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, err
	}
	return snap, nil
}
