package actions

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/HendryAvila/listkeeper/internal/lists"
	"github.com/HendryAvila/listkeeper/internal/templates"
)

// Dispatcher routes actions to store operations. It holds no state between
// calls beyond its collaborators.
type Dispatcher struct {
	renderer templates.Renderer
	logger   *zap.Logger
}

// NewDispatcher creates a Dispatcher. A nil logger disables logging.
func NewDispatcher(renderer templates.Renderer, logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{renderer: renderer, logger: logger.Named("dispatch")}
}

// Dispatch applies action to store and builds its result.
//
// Each call performs at most one mutation and at most one save. When the
// save fails the mutation has already been applied in memory and stays
// applied; the error is returned and no result is produced.
//
// A clearList on a missing list returns (nil, nil): no result at all.
func (d *Dispatcher) Dispatch(ctx context.Context, store *lists.Store, action Action) (*Result, error) {
	if store == nil {
		return nil, ErrNoStore
	}

	switch a := Value(action).(type) {
	case AddItems:
		return d.addItems(ctx, store, a)
	case RemoveItems:
		return d.removeItems(ctx, store, a)
	case CreateList:
		return d.createList(ctx, store, a)
	case GetList:
		return d.getList(store, a)
	case ClearList:
		return d.clearList(ctx, store, a)
	default:
		return nil, &UnknownActionError{Name: fmt.Sprintf("%T", action)}
	}
}

func validateItemsAction(kind Kind, listName string, items []string, verb string) error {
	if len(items) == 0 {
		return &ValidationError{Kind: kind, Field: "items", Message: fmt.Sprintf("No items to %s", verb)}
	}
	if listName == "" {
		return &ValidationError{Kind: kind, Field: "listName", Message: "List name is empty"}
	}
	return nil
}

func (d *Dispatcher) addItems(ctx context.Context, store *lists.Store, a AddItems) (*Result, error) {
	if err := validateItemsAction(KindAddItems, a.ListName, a.Items, "add"); err != nil {
		return nil, err
	}
	d.logger.Info("adding items", zap.String("list", a.ListName), zap.Strings("items", a.Items))

	store.AddItems(a.ListName, a.Items)
	if err := store.Save(ctx); err != nil {
		return nil, fmt.Errorf("adding items to %q: %w", a.ListName, err)
	}

	r := textResult(fmt.Sprintf("Added items: %s to list %s", joinItems(a.Items), a.ListName))
	r.Entities = listEntities(a.ListName, a.Items)
	return r, nil
}

func (d *Dispatcher) removeItems(ctx context.Context, store *lists.Store, a RemoveItems) (*Result, error) {
	if err := validateItemsAction(KindRemoveItems, a.ListName, a.Items, "remove"); err != nil {
		return nil, err
	}
	d.logger.Info("removing items", zap.String("list", a.ListName), zap.Strings("items", a.Items))

	store.RemoveItems(a.ListName, a.Items)
	if err := store.Save(ctx); err != nil {
		return nil, fmt.Errorf("removing items from %q: %w", a.ListName, err)
	}

	r := textResult(fmt.Sprintf("Removed items: %s from list %s", joinItems(a.Items), a.ListName))
	r.Entities = listEntities(a.ListName, a.Items)
	return r, nil
}

func (d *Dispatcher) createList(ctx context.Context, store *lists.Store, a CreateList) (*Result, error) {
	var text string
	if store.CreateList(a.ListName) {
		d.logger.Info("created list", zap.String("list", a.ListName))
		if err := store.Save(ctx); err != nil {
			return nil, fmt.Errorf("creating list %q: %w", a.ListName, err)
		}
		text = fmt.Sprintf("Created list: %s", a.ListName)
	} else {
		d.logger.Info("list already exists", zap.String("list", a.ListName))
		text = fmt.Sprintf("List already exists: %s", a.ListName)
	}

	r := textResult(text)
	r.Entities = listEntities(a.ListName, nil)
	return r, nil
}

func (d *Dispatcher) getList(store *lists.Store, a GetList) (*Result, error) {
	l, ok := store.GetList(a.ListName)
	if !ok {
		d.logger.Info("list not found", zap.String("list", a.ListName))
		r := textResult(fmt.Sprintf("List %s not found", a.ListName))
		r.Found = false
		return r, nil
	}

	items := l.Items()
	html, err := d.renderList(a.ListName, items)
	if err != nil {
		return nil, err
	}

	r := htmlResult(html, fmt.Sprintf("List %s has items: %s", a.ListName, joinItems(items)))
	r.Entities = listEntities(a.ListName, items)
	return r, nil
}

func (d *Dispatcher) clearList(ctx context.Context, store *lists.Store, a ClearList) (*Result, error) {
	if !store.ClearList(a.ListName) {
		d.logger.Info("clear skipped, list not found", zap.String("list", a.ListName))
		return nil, nil
	}
	d.logger.Info("cleared list", zap.String("list", a.ListName))
	if err := store.Save(ctx); err != nil {
		return nil, fmt.Errorf("clearing list %q: %w", a.ListName, err)
	}

	r := textResult(fmt.Sprintf("Cleared list: %s", a.ListName))
	r.Entities = listEntities(a.ListName, nil)
	return r, nil
}

func (d *Dispatcher) renderList(name string, items []string) (string, error) {
	if d.renderer == nil {
		return "", fmt.Errorf("rendering list %q: no renderer", name)
	}
	html, err := d.renderer.Render(templates.ListItems, templates.ListData{Name: name, Items: items})
	if err != nil {
		return "", fmt.Errorf("rendering list %q: %w", name, err)
	}
	return html, nil
}
