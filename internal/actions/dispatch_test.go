package actions

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/HendryAvila/listkeeper/internal/lists"
	"github.com/HendryAvila/listkeeper/internal/storage"
	"github.com/HendryAvila/listkeeper/internal/templates"
	"github.com/HendryAvila/listkeeper/internal/testutil"
)

// ─── Test helpers ────────────────────────────────────────────────────────────

type fixture struct {
	d     *Dispatcher
	store *lists.Store
	gw    *testutil.FaultyGateway
	logs  *observer.ObservedLogs
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	renderer, err := templates.NewRenderer()
	require.NoError(t, err)

	core, logs := observer.New(zap.InfoLevel)
	gw := testutil.NewFaultyGateway(storage.NewMemoryGateway())
	return &fixture{
		d:     NewDispatcher(renderer, zap.New(core)),
		store: lists.New(gw, lists.DefaultSnapshotKey),
		gw:    gw,
		logs:  logs,
	}
}

func (f *fixture) dispatch(t *testing.T, a Action) *Result {
	t.Helper()
	r, err := f.d.Dispatch(context.Background(), f.store, a)
	require.NoError(t, err)
	return r
}

func (f *fixture) persisted(t *testing.T) string {
	t.Helper()
	got, err := f.gw.Read(context.Background(), lists.DefaultSnapshotKey)
	require.NoError(t, err)
	return got
}

func entity(name, typ string) Entity {
	return Entity{Name: name, Type: []string{typ}}
}

// ─── addItems ────────────────────────────────────────────────────────────────

func TestDispatch_AddItems_GroceriesScenario(t *testing.T) {
	f := newFixture(t)

	r := f.dispatch(t, AddItems{ListName: "groceries", Items: []string{"milk", "eggs"}})

	assert.Equal(t, "Added items: milk,eggs to list groceries", r.DisplayText)
	assert.Equal(t, DisplayTypeText, r.DisplayType)
	assert.True(t, r.Found)
	assert.Equal(t, []Entity{
		entity("groceries", EntityList),
		entity("milk", EntityItem),
		entity("eggs", EntityItem),
	}, r.Entities)

	assert.Equal(t, `[{"name":"groceries","items":["milk","eggs"]}]`, f.persisted(t))
	assert.Equal(t, 1, f.gw.Writes())
}

func TestDispatch_AddItems_EntitiesKeepDuplicatesInProcessingOrder(t *testing.T) {
	f := newFixture(t)
	r := f.dispatch(t, AddItems{ListName: "l", Items: []string{"a", "a"}})

	assert.Equal(t, []Entity{entity("l", EntityList), entity("a", EntityItem), entity("a", EntityItem)}, r.Entities)
	l, _ := f.store.GetList("l")
	assert.Equal(t, []string{"a"}, l.Items())
}

func TestDispatch_ValidationFailures(t *testing.T) {
	tests := []struct {
		name    string
		action  Action
		field   string
		message string
	}{
		{"add no items", AddItems{ListName: "l"}, "items", "No items to add"},
		{"add empty items slice", AddItems{ListName: "l", Items: []string{}}, "items", "No items to add"},
		{"add empty name", AddItems{Items: []string{"a"}}, "listName", "List name is empty"},
		{"remove no items", RemoveItems{ListName: "l"}, "items", "No items to remove"},
		{"remove empty name", RemoveItems{Items: []string{"a"}}, "listName", "List name is empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			r, err := f.d.Dispatch(context.Background(), f.store, tt.action)
			require.Error(t, err)
			assert.Nil(t, r)

			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
			assert.Equal(t, tt.action.Kind(), ve.Kind)
			assert.Equal(t, tt.message, err.Error())
			assert.True(t, IsValidation(err))

			assert.Zero(t, f.store.Len(), "validation failure must not touch the store")
			assert.Zero(t, f.gw.Writes(), "validation failure must not save")
		})
	}
}

// ─── removeItems ─────────────────────────────────────────────────────────────

func TestDispatch_RemoveItems_GroceriesScenario(t *testing.T) {
	f := newFixture(t)
	f.dispatch(t, AddItems{ListName: "groceries", Items: []string{"milk", "eggs"}})

	r := f.dispatch(t, RemoveItems{ListName: "groceries", Items: []string{"milk", "bread"}})

	assert.Equal(t, "Removed items: milk,bread from list groceries", r.DisplayText)
	assert.Equal(t, []Entity{
		entity("groceries", EntityList),
		entity("milk", EntityItem),
		entity("bread", EntityItem),
	}, r.Entities)

	l, _ := f.store.GetList("groceries")
	assert.Equal(t, []string{"eggs"}, l.Items())
	assert.Equal(t, `[{"name":"groceries","items":["eggs"]}]`, f.persisted(t))
}

func TestDispatch_RemoveItems_MissingListStillSucceeds(t *testing.T) {
	f := newFixture(t)

	r := f.dispatch(t, RemoveItems{ListName: "ghost", Items: []string{"a"}})

	require.NotNil(t, r)
	_, ok := f.store.GetList("ghost")
	assert.False(t, ok)
	assert.Equal(t, 1, f.gw.Writes(), "removeItems saves unconditionally")
	assert.Equal(t, "[]", f.persisted(t))
}

// ─── createList ──────────────────────────────────────────────────────────────

func TestDispatch_CreateList(t *testing.T) {
	f := newFixture(t)

	r := f.dispatch(t, CreateList{ListName: "todo"})
	assert.Equal(t, "Created list: todo", r.DisplayText)
	assert.Equal(t, []Entity{entity("todo", EntityList)}, r.Entities)
	assert.Equal(t, 1, f.gw.Writes())

	r = f.dispatch(t, CreateList{ListName: "todo"})
	assert.Equal(t, "List already exists: todo", r.DisplayText)
	assert.Equal(t, []Entity{entity("todo", EntityList)}, r.Entities)
	assert.True(t, r.Found)
	assert.Equal(t, 1, f.gw.Writes(), "already-existing list must not save")
}

// ─── getList ─────────────────────────────────────────────────────────────────

func TestDispatch_GetList_Found(t *testing.T) {
	f := newFixture(t)
	f.dispatch(t, AddItems{ListName: "groceries", Items: []string{"milk", "eggs"}})
	writes := f.gw.Writes()

	r := f.dispatch(t, GetList{ListName: "groceries"})

	assert.True(t, r.Found)
	assert.Equal(t, DisplayTypeHTML, r.DisplayType)
	assert.Equal(t, "<ul><li>milk</li><li>eggs</li></ul>", r.DisplayText)
	assert.Equal(t, "List groceries has items: milk,eggs", r.HistoryText)
	assert.Equal(t, []Entity{
		entity("groceries", EntityList),
		entity("milk", EntityItem),
		entity("eggs", EntityItem),
	}, r.Entities)
	assert.Equal(t, writes, f.gw.Writes(), "getList must not save")
}

func TestDispatch_GetList_FoundEmpty(t *testing.T) {
	f := newFixture(t)
	f.dispatch(t, CreateList{ListName: "empty"})

	r := f.dispatch(t, GetList{ListName: "empty"})

	assert.True(t, r.Found)
	assert.Equal(t, "<ul></ul>", r.DisplayText)
	assert.Equal(t, []Entity{entity("empty", EntityList)}, r.Entities)
}

func TestDispatch_GetList_NotFound(t *testing.T) {
	f := newFixture(t)

	r := f.dispatch(t, GetList{ListName: "nonexistent"})

	require.NotNil(t, r)
	assert.False(t, r.Found)
	assert.Empty(t, r.Entities)
	assert.Equal(t, "List nonexistent not found", r.DisplayText)
	assert.Zero(t, f.gw.Writes())
	_, ok := f.store.GetList("nonexistent")
	assert.False(t, ok)
}

func TestDispatch_GetList_RendererFailure(t *testing.T) {
	f := newFixture(t)
	f.store.CreateList("l")
	d := NewDispatcher(nil, nil)

	_, err := d.Dispatch(context.Background(), f.store, GetList{ListName: "l"})
	assert.Error(t, err)
}

// ─── clearList ───────────────────────────────────────────────────────────────

func TestDispatch_ClearList_Existing(t *testing.T) {
	f := newFixture(t)
	f.dispatch(t, AddItems{ListName: "l", Items: []string{"a", "b"}})

	r := f.dispatch(t, ClearList{ListName: "l"})

	assert.Equal(t, "Cleared list: l", r.DisplayText)
	assert.Equal(t, []Entity{entity("l", EntityList)}, r.Entities)
	assert.Equal(t, `[{"name":"l","items":[]}]`, f.persisted(t))
	assert.Equal(t, 2, f.gw.Writes())
}

func TestDispatch_ClearList_MissingProducesNoResult(t *testing.T) {
	f := newFixture(t)

	r, err := f.d.Dispatch(context.Background(), f.store, ClearList{ListName: "ghost"})

	assert.NoError(t, err)
	assert.Nil(t, r)
	assert.Zero(t, f.gw.Writes())
	_, ok := f.store.GetList("ghost")
	assert.False(t, ok, "clearList must not create a list")
}

// ─── Persistence failure ─────────────────────────────────────────────────────

func TestDispatch_SaveFailureLeavesMutationApplied(t *testing.T) {
	f := newFixture(t)
	boom := errors.New("disk on fire")
	f.gw.FailWrites(boom)

	r, err := f.d.Dispatch(context.Background(), f.store, AddItems{ListName: "l", Items: []string{"a"}})

	require.Error(t, err)
	assert.Nil(t, r)
	assert.ErrorIs(t, err, boom)
	assert.False(t, IsValidation(err))

	l, ok := f.store.GetList("l")
	require.True(t, ok)
	assert.Equal(t, []string{"a"}, l.Items())
}

func TestDispatch_SaveFailurePerKind(t *testing.T) {
	for _, a := range []Action{
		AddItems{ListName: "l", Items: []string{"a"}},
		RemoveItems{ListName: "l", Items: []string{"a"}},
		CreateList{ListName: "new"},
		ClearList{ListName: "l"},
	} {
		t.Run(string(a.Kind()), func(t *testing.T) {
			f := newFixture(t)
			f.store.AddItems("l", []string{"a"})
			f.gw.FailWrites(errors.New("boom"))

			_, err := f.d.Dispatch(context.Background(), f.store, a)
			assert.Error(t, err)
		})
	}
}

// ─── Unknown / nil ───────────────────────────────────────────────────────────

func TestDispatch_NilStore(t *testing.T) {
	f := newFixture(t)
	_, err := f.d.Dispatch(context.Background(), nil, GetList{ListName: "x"})
	assert.ErrorIs(t, err, ErrNoStore)
}

func TestDispatch_NilAction(t *testing.T) {
	f := newFixture(t)
	_, err := f.d.Dispatch(context.Background(), f.store, nil)
	assert.ErrorIs(t, err, ErrUnknownAction)
}

func TestDispatch_PointerActions(t *testing.T) {
	f := newFixture(t)

	r := f.dispatch(t, &AddItems{ListName: "groceries", Items: []string{"milk"}})
	assert.Equal(t, "Added items: milk to list groceries", r.DisplayText)

	r = f.dispatch(t, &GetList{ListName: "groceries"})
	assert.True(t, r.Found)

	var nilAdd *AddItems
	_, err := f.d.Dispatch(context.Background(), f.store, nilAdd)
	assert.ErrorIs(t, err, ErrUnknownAction)
}

// ─── Logging ─────────────────────────────────────────────────────────────────

func TestDispatch_LogsActions(t *testing.T) {
	f := newFixture(t)
	f.dispatch(t, AddItems{ListName: "groceries", Items: []string{"milk"}})

	entries := f.logs.FilterMessage("adding items").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "groceries", fields["list"])
}
